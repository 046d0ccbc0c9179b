package routes

import (
	"net/http"

	"github.com/BerniceZTT/sales_tracker/controllers"
	"github.com/BerniceZTT/sales_tracker/middleware"

	"github.com/gin-gonic/gin"
)

// Dependencies 路由依赖的控制器和中间件
type Dependencies struct {
	Authenticator  middleware.Authenticator
	Auth           *controllers.AuthController
	Customers      *controllers.CustomerController
	Projects       *controllers.ProjectController
	Dashboard      *controllers.DashboardController
	System         *controllers.SystemController
	MetricsHandler http.Handler
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	authMiddleware := middleware.AuthMiddleware(deps.Authenticator)

	RegisterAuthRoutes(router, deps.Auth, authMiddleware)
	RegisterCustomerRoutes(router, deps.Customers, authMiddleware)
	RegisterProjectRoutes(router, deps.Projects, authMiddleware)
	RegisterProjectUpdateRoutes(router, deps.Projects, authMiddleware)
	RegisterDashboardStatsRoutes(router, deps.Dashboard, authMiddleware)

	// 健康检查路由
	router.GET("/api/health", deps.System.Health)
	// 数据库状态检查路由
	router.GET("/api/db-status", deps.System.DBStatus)

	if deps.MetricsHandler != nil {
		router.GET("/api/metrics", gin.WrapH(deps.MetricsHandler))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "route not found",
			"code":    "ROUTE_NOT_FOUND",
		})
	})
}
