package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/services"
	"asset-system/pkg/middleware"
)

func runReportRouter(secureGroup *echo.Group, reportService services.ReportServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	reportCtrl := controllers.NewReportController(reportService, logger)

	secureGroup.GET("/reports/assets", reportCtrl.GetAssetReport, authMW.RequireAdmin)
}
