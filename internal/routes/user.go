package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/services"
	"asset-system/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, userService services.UserServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	userCtrl := controllers.NewUserController(userService, logger)

	secureGroup.GET("/users", userCtrl.GetUsers)
	secureGroup.GET("/users/:id", userCtrl.FindUser)
	secureGroup.POST("/users", userCtrl.CreateUser, authMW.RequireAdmin)
	secureGroup.PUT("/users/:id", userCtrl.UpdateUser, authMW.RequireAdmin)
	secureGroup.DELETE("/users/:id", userCtrl.DeleteUser, authMW.RequireAdmin)
}
