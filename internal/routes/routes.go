package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/repositories"
	"asset-system/internal/services"
	"asset-system/pkg/config"
	"asset-system/pkg/middleware"
	"asset-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// repositories
	userRepo := repositories.NewUserRepository(dbConn, logger)
	locationRepo := repositories.NewLocationRepository(dbConn)
	modelRepo := repositories.NewAssetModelRepository(dbConn)
	statusRepo := repositories.NewAssetStatusRepository(dbConn)
	assetRepo := repositories.NewAssetRepository(dbConn, logger)
	transferRepo := repositories.NewTransferRepository(dbConn, logger)
	dashboardRepo := repositories.NewDashboardRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// services
	lookups := services.NewLookupCache(locationRepo, modelRepo, statusRepo, userRepo, logger, cfg.Cache.LookupTTL)
	populator := services.NewAssetPopulator(lookups, assetRepo, userRepo, locationRepo, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, statusRepo, transferRepo, userRepo, locationRepo, assetRepo, cacheRepo, populator, logger)
	assetService := services.NewAssetService(assetRepo, userRepo, locationRepo, populator, dashboardService, logger)
	transferService := services.NewTransferService(transferRepo, assetRepo, txManager, populator, dashboardService, logger)
	userService := services.NewUserService(userRepo, assetRepo, lookups, logger)
	locationService := services.NewLocationService(locationRepo, assetRepo, lookups, logger)
	modelService := services.NewAssetModelService(modelRepo, lookups)
	statusService := services.NewAssetStatusService(statusRepo, lookups)
	authService := services.NewAuthService(userRepo, userService, jwtSvc, logger)
	reportService := services.NewReportService(assetRepo, populator, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authService, logger)
	runAssetRouter(secureGroup, assetService, logger)
	runTransferRouter(secureGroup, transferService, logger, authMW)
	runUserRouter(secureGroup, userService, logger, authMW)
	runLocationRouter(secureGroup, locationService, logger, authMW)
	runAssetModelRouter(secureGroup, modelService, logger, authMW)
	runAssetStatusRouter(secureGroup, statusService, logger, authMW)
	runDashboardRouter(secureGroup, dashboardService, logger, authMW)
	runReportRouter(secureGroup, reportService, logger, authMW)
}
