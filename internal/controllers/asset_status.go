package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	"asset-system/pkg/utils"
)

type AssetStatusController struct {
	statusService services.AssetStatusServiceInterface
	logger        *zap.Logger
}

func NewAssetStatusController(statusService services.AssetStatusServiceInterface, logger *zap.Logger) *AssetStatusController {
	return &AssetStatusController{statusService: statusService, logger: logger}
}

func (c *AssetStatusController) GetAssetStatuses(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	statuses, err := c.statusService.GetAssetStatuses(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if statuses == nil {
		statuses = make([]dto.AssetStatusDTO, 0)
	}
	return utils.SuccessResponse(ctx, statuses, "Successfully", http.StatusOK)
}

func (c *AssetStatusController) FindAssetStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	status, err := c.statusService.FindAssetStatus(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, status, "Successfully", http.StatusOK)
}

func (c *AssetStatusController) CreateAssetStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateAssetStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	status, err := c.statusService.CreateAssetStatus(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, status, "Asset status created", http.StatusCreated)
}
