package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/repository"
	"github.com/BerniceZTT/sales_tracker/utils"
	"github.com/gin-gonic/gin"
)

// 需要记录的HTTP方法
var loggedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// 不需要记录的路径
var excludedPaths = map[string]bool{
	"/api/auth/password-check": true,
	"/api/health":              true,
	"/api/db-status":           true,
}

// 请求体超过该长度时不保存
const maxLoggedBodyBytes = 16 << 10

// bodyLogWriter 用于记录响应内容
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 实现 ResponseWriter 接口
func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// OperationLoggerMiddleware 操作日志记录中间件，写操作落库到 apiOperationLogs
func OperationLoggerMiddleware(logs repository.OperationLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 检查是否需要记录此操作
		if !shouldLogOperation(c) {
			c.Next()
			return
		}

		startTime := time.Now()

		// 创建自定义响应写入器以捕获响应体
		blw := &bodyLogWriter{
			body:           bytes.NewBufferString(""),
			ResponseWriter: c.Writer,
		}
		c.Writer = blw

		// 读取并重置请求体
		requestBody := readRequestBody(c)

		// 处理请求
		c.Next()

		status := c.Writer.Status()
		operationLog := models.OperationLog{
			RequestID:     utils.GetRequestID(c),
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
			OperatorID:    "anonymous",
			RequestBody:   sanitizeData(requestBody),
			StatusCode:    status,
			Success:       status < http.StatusBadRequest,
			OperationTime: startTime,
			ResponseTime:  time.Since(startTime).Milliseconds(),
			IPAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
		}
		// 认证中间件在 c.Next() 中写入了用户
		if user, err := utils.GetUser(c); err == nil {
			operationLog.OperatorID = user.ID
			operationLog.OperatorEmail = user.Email
			operationLog.OperatorRole = string(user.Role)
		}
		if !operationLog.Success {
			operationLog.ErrorMessage = extractErrorMessage(blw.body.Bytes())
		}

		// 请求可能已被客户端取消，使用独立的超时
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := logs.Insert(ctx, &operationLog); err != nil {
			utils.Logger.Error().Err(err).Str("path", operationLog.Path).Msg("保存操作日志失败")
		}
	}
}

// shouldLogOperation 检查是否需要记录此操作
func shouldLogOperation(c *gin.Context) bool {
	if excludedPaths[c.Request.URL.Path] {
		return false
	}
	return loggedMethods[c.Request.Method]
}

// readRequestBody 读取请求体后重置，JSON 解析失败时保存原文
func readRequestBody(c *gin.Context) interface{} {
	if c.Request.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("读取请求体失败")
		return nil
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	if len(raw) == 0 {
		return nil
	}
	if len(raw) > maxLoggedBodyBytes {
		return "[body omitted]"
	}
	if strings.Contains(c.GetHeader("Content-Type"), "application/json") {
		var body interface{}
		if err := json.Unmarshal(raw, &body); err == nil {
			return body
		}
	}
	return string(raw)
}

// extractErrorMessage 从错误响应中取出 error 字段
func extractErrorMessage(body []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Error
}

// sanitizeData 清理数据中的敏感信息
func sanitizeData(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		sanitized := make(map[string]interface{}, len(v))
		for k, val := range v {
			if isSensitiveKey(k) {
				sanitized[k] = "******"
				continue
			}
			sanitized[k] = sanitizeData(val)
		}
		return sanitized
	case []interface{}:
		sanitized := make([]interface{}, len(v))
		for i, val := range v {
			sanitized[i] = sanitizeData(val)
		}
		return sanitized
	default:
		return data
	}
}

// isSensitiveKey password、newPassword、confirmPassword 等都视为敏感字段
func isSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	switch k {
	case "token", "authorization", "secret", "key":
		return true
	}
	return strings.Contains(k, "password")
}
