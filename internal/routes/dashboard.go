package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/services"
	"asset-system/pkg/middleware"
)

func runDashboardRouter(secureGroup *echo.Group, dashboardService services.DashboardServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)

	secureGroup.GET("/analytics/dashboard", dashboardCtrl.GetStats)
	secureGroup.GET("/analytics/assets/by-status", dashboardCtrl.GetAssetsByStatus, authMW.RequireAdmin)
	secureGroup.GET("/analytics/assets/by-type", dashboardCtrl.GetAssetsByType, authMW.RequireAdmin)
	secureGroup.GET("/analytics/assets/by-location", dashboardCtrl.GetAssetsByLocation, authMW.RequireAdmin)
	secureGroup.GET("/analytics/assets/warranty-expiring", dashboardCtrl.GetWarrantyExpiring, authMW.RequireAdmin)
	secureGroup.GET("/analytics/transfers/monthly", dashboardCtrl.GetMonthlyTransfers, authMW.RequireAdmin)
	secureGroup.GET("/analytics/users/asset-allocation", dashboardCtrl.GetUserAssetAllocation, authMW.RequireAdmin)
	secureGroup.GET("/analytics/recent-activities", dashboardCtrl.GetRecentActivities, authMW.RequireAdmin)
}
