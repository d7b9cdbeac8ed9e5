package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	"asset-system/pkg/utils"
)

type TransferController struct {
	transferService services.TransferServiceInterface
	logger          *zap.Logger
}

func NewTransferController(transferService services.TransferServiceInterface, logger *zap.Logger) *TransferController {
	return &TransferController{transferService: transferService, logger: logger}
}

func (c *TransferController) GetTransfers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	transfers, total, err := c.transferService.GetTransfers(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if transfers == nil {
		transfers = make([]dto.PopulatedTransferDTO, 0)
	}
	return utils.SuccessResponse(ctx, transfers, "Successfully", http.StatusOK, total)
}

func (c *TransferController) FindTransfer(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	transfer, err := c.transferService.FindTransfer(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, transfer, "Successfully", http.StatusOK)
}

func (c *TransferController) CreateTransfer(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateTransferDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	transfer, err := c.transferService.CreateTransfer(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, transfer, "Transfer requested", http.StatusCreated)
}

func (c *TransferController) UpdateTransferStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.UpdateTransferDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	transfer, err := c.transferService.UpdateTransferStatus(reqCtx, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, transfer, "Transfer updated", http.StatusOK)
}

func (c *TransferController) GetPendingCount(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	count, err := c.transferService.PendingCount(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.PendingTransfersDTO{PendingCount: count}, "Successfully", http.StatusOK)
}
