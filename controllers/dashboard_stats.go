package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/sales_tracker/service"
	"github.com/BerniceZTT/sales_tracker/utils"
)

// DashboardController 数据看板接口
type DashboardController struct {
	dashboard *service.DashboardService
}

// NewDashboardController 创建看板控制器
func NewDashboardController(dashboard *service.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// GetDashboardStats 看板数据：筛选后的项目列表和汇总指标
func (h *DashboardController) GetDashboardStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.dashboard.Stats(ctx, c.Query("progress_type"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, stats, "")
}
