package routes

import (
	"github.com/BerniceZTT/sales_tracker/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterProjectUpdateRoutes 项目进展路由
func RegisterProjectUpdateRoutes(router *gin.Engine, ctrl *controllers.ProjectController, authMiddleware gin.HandlerFunc) {
	router.GET("/api/projects/:id/updates", authMiddleware, ctrl.GetProjectUpdates)
	router.POST("/api/projects/:id/updates", authMiddleware, ctrl.CreateProjectUpdate)

	updateGroup := router.Group("/api/project-updates")
	updateGroup.Use(authMiddleware)
	updateGroup.DELETE("/:id", ctrl.DeleteProjectUpdate)
}
