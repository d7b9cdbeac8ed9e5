package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/services"
)

func runAssetRouter(secureGroup *echo.Group, assetService services.AssetServiceInterface, logger *zap.Logger) {
	assetCtrl := controllers.NewAssetController(assetService, logger)

	secureGroup.GET("/assets", assetCtrl.GetAssets)
	secureGroup.GET("/assets/my", assetCtrl.GetMyAssets)
	secureGroup.GET("/assets/:id", assetCtrl.FindAsset)
	secureGroup.POST("/assets", assetCtrl.CreateAsset)
	secureGroup.PUT("/assets/:id", assetCtrl.UpdateAsset)
	secureGroup.DELETE("/assets/:id", assetCtrl.DeleteAsset)

	// sub-lists under other resources, access checked in the service
	secureGroup.GET("/users/:id/assets", assetCtrl.GetUserAssets)
	secureGroup.GET("/locations/:id/assets", assetCtrl.GetLocationAssets)
}
