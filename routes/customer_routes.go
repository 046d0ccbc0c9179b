package routes

import (
	"github.com/BerniceZTT/sales_tracker/controllers"
	"github.com/BerniceZTT/sales_tracker/middleware"
	"github.com/BerniceZTT/sales_tracker/models"

	"github.com/gin-gonic/gin"
)

// RegisterCustomerRoutes 客户路由
func RegisterCustomerRoutes(router *gin.Engine, ctrl *controllers.CustomerController, authMiddleware gin.HandlerFunc) {
	customerGroup := router.Group("/api/customers")
	customerGroup.Use(authMiddleware)

	customerGroup.GET("", ctrl.GetCustomerList)
	customerGroup.POST("", ctrl.CreateCustomer)
	customerGroup.GET("/:id", ctrl.GetCustomerDetail)
	customerGroup.PUT("/:id", ctrl.UpdateCustomer)
	customerGroup.DELETE("/:id", middleware.RequireRole(models.UserRoleAdmin), ctrl.DeleteCustomer)
}
