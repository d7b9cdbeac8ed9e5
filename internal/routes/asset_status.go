package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/services"
	"asset-system/pkg/middleware"
)

func runAssetStatusRouter(secureGroup *echo.Group, statusService services.AssetStatusServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	statusCtrl := controllers.NewAssetStatusController(statusService, logger)

	secureGroup.GET("/asset-statuses", statusCtrl.GetAssetStatuses)
	secureGroup.GET("/asset-statuses/:id", statusCtrl.FindAssetStatus)
	secureGroup.POST("/asset-statuses", statusCtrl.CreateAssetStatus, authMW.RequireAdmin)
}
