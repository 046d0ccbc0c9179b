package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/utils"
)

// requestTimeout 单个请求的数据库操作超时
const requestTimeout = 10 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// currentUser 获取当前用户，失败时直接响应 401
func currentUser(c *gin.Context) (*models.CurrentUser, bool) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError(""))
		return nil, false
	}
	return user, true
}

// bindJSON 绑定请求体，失败时直接响应 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := utils.BindJSON(c, obj); err != nil {
		utils.HandleError(c, err)
		return false
	}
	return true
}
