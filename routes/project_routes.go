package routes

import (
	"github.com/BerniceZTT/sales_tracker/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterProjectRoutes 项目路由
func RegisterProjectRoutes(router *gin.Engine, ctrl *controllers.ProjectController, authMiddleware gin.HandlerFunc) {
	projectGroup := router.Group("/api/projects")
	projectGroup.Use(authMiddleware)

	projectGroup.GET("", ctrl.GetAllProjects)
	projectGroup.POST("", ctrl.CreateProject)
	projectGroup.GET("/:id", ctrl.GetProjectDetail)
	projectGroup.PUT("/:id", ctrl.UpdateProject)
	projectGroup.DELETE("/:id", ctrl.DeleteProject)
}
