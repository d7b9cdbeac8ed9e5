package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	"asset-system/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (c *DashboardController) GetStats(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	stats, err := c.dashboardService.GetStats(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Successfully", http.StatusOK)
}

func (c *DashboardController) GetAssetsByStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	rows, err := c.dashboardService.AssetsByStatus(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if rows == nil {
		rows = make([]dto.GroupCountDTO, 0)
	}
	return utils.SuccessResponse(ctx, rows, "Successfully", http.StatusOK)
}

func (c *DashboardController) GetAssetsByType(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	rows, err := c.dashboardService.AssetsByType(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if rows == nil {
		rows = make([]dto.GroupCountDTO, 0)
	}
	return utils.SuccessResponse(ctx, rows, "Successfully", http.StatusOK)
}

func (c *DashboardController) GetAssetsByLocation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	rows, err := c.dashboardService.AssetsByLocation(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if rows == nil {
		rows = make([]dto.LocationAssetCountDTO, 0)
	}
	return utils.SuccessResponse(ctx, rows, "Successfully", http.StatusOK)
}

func (c *DashboardController) GetMonthlyTransfers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	rows, err := c.dashboardService.MonthlyTransfers(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if rows == nil {
		rows = make([]dto.MonthlyTransferCountDTO, 0)
	}
	return utils.SuccessResponse(ctx, rows, "Successfully", http.StatusOK)
}

func (c *DashboardController) GetWarrantyExpiring(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	days, _ := strconv.Atoi(ctx.QueryParam("days"))
	report, err := c.dashboardService.WarrantyExpiring(reqCtx, days)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "Successfully", http.StatusOK)
}

func (c *DashboardController) GetUserAssetAllocation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	rows, err := c.dashboardService.UserAssetAllocation(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if rows == nil {
		rows = make([]dto.UserAssetCountDTO, 0)
	}
	return utils.SuccessResponse(ctx, rows, "Successfully", http.StatusOK)
}

func (c *DashboardController) GetRecentActivities(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	activities, err := c.dashboardService.RecentActivities(reqCtx, limit)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if activities == nil {
		activities = make([]dto.ActivityDTO, 0)
	}
	return utils.SuccessResponse(ctx, activities, "Successfully", http.StatusOK)
}
