package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/sales_tracker/utils"
)

// DatabaseStatus 数据库状态检查
type DatabaseStatus interface {
	Ping(ctx context.Context) error
	GetDatabaseStatus(ctx context.Context) map[string]interface{}
}

// SystemController 健康检查
type SystemController struct {
	db DatabaseStatus
}

// NewSystemController 创建健康检查控制器
func NewSystemController(db DatabaseStatus) *SystemController {
	return &SystemController{db: db}
}

// Health 存活检查
func (h *SystemController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

// DBStatus 数据库连接和各集合数量
func (h *SystemController) DBStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.LogError(err, nil, "数据库连接检查失败")
		utils.ErrorResponse(c, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"connected":   true,
		"collections": h.db.GetDatabaseStatus(ctx),
	}, "")
}
