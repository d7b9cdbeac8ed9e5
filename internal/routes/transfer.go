package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/services"
	"asset-system/pkg/middleware"
)

func runTransferRouter(secureGroup *echo.Group, transferService services.TransferServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	transferCtrl := controllers.NewTransferController(transferService, logger)

	secureGroup.GET("/transfers", transferCtrl.GetTransfers)
	secureGroup.GET("/transfers/pending-count", transferCtrl.GetPendingCount, authMW.RequireAdmin)
	secureGroup.GET("/transfers/:id", transferCtrl.FindTransfer)
	secureGroup.POST("/transfers", transferCtrl.CreateTransfer)
	secureGroup.PUT("/transfers/:id", transferCtrl.UpdateTransferStatus)
}
