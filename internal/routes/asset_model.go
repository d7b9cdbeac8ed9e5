package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/services"
	"asset-system/pkg/middleware"
)

func runAssetModelRouter(secureGroup *echo.Group, modelService services.AssetModelServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	modelCtrl := controllers.NewAssetModelController(modelService, logger)

	secureGroup.GET("/asset-models", modelCtrl.GetAssetModels)
	secureGroup.GET("/asset-models/:id", modelCtrl.FindAssetModel)
	secureGroup.POST("/asset-models", modelCtrl.CreateAssetModel, authMW.RequireAdmin)
}
