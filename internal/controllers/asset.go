package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	"asset-system/pkg/utils"
)

type AssetController struct {
	assetService services.AssetServiceInterface
	logger       *zap.Logger
}

func NewAssetController(assetService services.AssetServiceInterface, logger *zap.Logger) *AssetController {
	return &AssetController{assetService: assetService, logger: logger}
}

func (c *AssetController) GetAssets(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	assets, total, err := c.assetService.GetAssets(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if assets == nil {
		assets = make([]dto.PopulatedAssetDTO, 0)
	}
	return utils.SuccessResponse(ctx, assets, "Successfully", http.StatusOK, total)
}

func (c *AssetController) FindAsset(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	asset, err := c.assetService.FindAsset(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "Successfully", http.StatusOK)
}

func (c *AssetController) GetMyAssets(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	assets, err := c.assetService.GetMyAssets(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if assets == nil {
		assets = make([]dto.PopulatedAssetDTO, 0)
	}
	return utils.SuccessResponse(ctx, assets, "Successfully", http.StatusOK)
}

func (c *AssetController) GetUserAssets(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	assets, err := c.assetService.GetUserAssets(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if assets == nil {
		assets = make([]dto.PopulatedAssetDTO, 0)
	}
	return utils.SuccessResponse(ctx, assets, "Successfully", http.StatusOK)
}

func (c *AssetController) GetLocationAssets(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	assets, err := c.assetService.GetLocationAssets(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if assets == nil {
		assets = make([]dto.PopulatedAssetDTO, 0)
	}
	return utils.SuccessResponse(ctx, assets, "Successfully", http.StatusOK)
}

func (c *AssetController) CreateAsset(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateAssetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.assetService.CreateAsset(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "Asset created", http.StatusCreated)
}

func (c *AssetController) UpdateAsset(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.UpdateAssetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.assetService.UpdateAsset(reqCtx, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "Asset updated", http.StatusOK)
}

func (c *AssetController) DeleteAsset(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if err := c.assetService.DeleteAsset(reqCtx, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Asset deleted", http.StatusOK)
}
