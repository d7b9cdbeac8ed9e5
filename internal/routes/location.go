package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/services"
	"asset-system/pkg/middleware"
)

func runLocationRouter(secureGroup *echo.Group, locationService services.LocationServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	locationCtrl := controllers.NewLocationController(locationService, logger)

	secureGroup.GET("/locations", locationCtrl.GetLocations)
	secureGroup.GET("/locations/:id", locationCtrl.FindLocation)
	secureGroup.POST("/locations", locationCtrl.CreateLocation, authMW.RequireAdmin)
	secureGroup.PUT("/locations/:id", locationCtrl.UpdateLocation, authMW.RequireAdmin)
	secureGroup.DELETE("/locations/:id", locationCtrl.DeleteLocation, authMW.RequireAdmin)
}
