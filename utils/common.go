package utils

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/sales_tracker/models"
)

// ContextUserKey 认证中间件写入当前用户的键
const ContextUserKey = "user"

// ContextRequestIDKey 请求ID的键
const ContextRequestIDKey = "request_id"

// SetUser 保存当前用户
func SetUser(c *gin.Context, user *models.CurrentUser) {
	c.Set(ContextUserKey, user)
}

// GetUser 获取当前用户信息
func GetUser(c *gin.Context) (*models.CurrentUser, error) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, errors.New("GetUser 未授权访问")
	}
	user, ok := value.(*models.CurrentUser)
	if !ok || user == nil || user.ID == "" {
		return nil, errors.New("无效的用户信息")
	}
	return user, nil
}

// GetRequestID 获取请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestIDKey)
}
