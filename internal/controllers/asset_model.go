package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	"asset-system/pkg/utils"
)

type AssetModelController struct {
	modelService services.AssetModelServiceInterface
	logger       *zap.Logger
}

func NewAssetModelController(modelService services.AssetModelServiceInterface, logger *zap.Logger) *AssetModelController {
	return &AssetModelController{modelService: modelService, logger: logger}
}

func (c *AssetModelController) GetAssetModels(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	models, err := c.modelService.GetAssetModels(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if models == nil {
		models = make([]dto.AssetModelDTO, 0)
	}
	return utils.SuccessResponse(ctx, models, "Successfully", http.StatusOK)
}

func (c *AssetModelController) FindAssetModel(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	model, err := c.modelService.FindAssetModel(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, model, "Successfully", http.StatusOK)
}

func (c *AssetModelController) CreateAssetModel(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateAssetModelDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	model, err := c.modelService.CreateAssetModel(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, model, "Asset model created", http.StatusCreated)
}
