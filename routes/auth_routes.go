package routes

import (
	"github.com/BerniceZTT/sales_tracker/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 认证路由
func RegisterAuthRoutes(router *gin.Engine, ctrl *controllers.AuthController, authMiddleware gin.HandlerFunc) {
	authGroup := router.Group("/api/auth")

	authGroup.POST("/register", ctrl.Register)
	authGroup.POST("/login", ctrl.Login)
	authGroup.POST("/password-check", ctrl.CheckPassword)

	authGroup.Use(authMiddleware)
	authGroup.POST("/logout", ctrl.Logout)
	authGroup.GET("/me", ctrl.Me)
	authGroup.PUT("/password", ctrl.ChangePassword)
	authGroup.PUT("/profile", ctrl.UpdateProfile)
}
