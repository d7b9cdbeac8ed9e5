package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	"asset-system/pkg/utils"
)

type LocationController struct {
	locationService services.LocationServiceInterface
	logger          *zap.Logger
}

func NewLocationController(locationService services.LocationServiceInterface, logger *zap.Logger) *LocationController {
	return &LocationController{locationService: locationService, logger: logger}
}

func (c *LocationController) GetLocations(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	locations, err := c.locationService.GetLocations(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if locations == nil {
		locations = make([]dto.LocationDTO, 0)
	}
	return utils.SuccessResponse(ctx, locations, "Successfully", http.StatusOK)
}

func (c *LocationController) FindLocation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	location, err := c.locationService.FindLocation(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, location, "Successfully", http.StatusOK)
}

func (c *LocationController) CreateLocation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateLocationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	location, err := c.locationService.CreateLocation(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, location, "Location created", http.StatusCreated)
}

func (c *LocationController) UpdateLocation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.UpdateLocationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	location, err := c.locationService.UpdateLocation(reqCtx, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, location, "Location updated", http.StatusOK)
}

func (c *LocationController) DeleteLocation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if err := c.locationService.DeleteLocation(reqCtx, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Location deleted", http.StatusOK)
}
