package routes

import (
	"github.com/BerniceZTT/sales_tracker/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardStatsRoutes 数据看板路由
func RegisterDashboardStatsRoutes(router *gin.Engine, ctrl *controllers.DashboardController, authMiddleware gin.HandlerFunc) {
	router.GET("/api/dashboard-stats", authMiddleware, ctrl.GetDashboardStats)
}
