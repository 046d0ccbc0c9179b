package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/utils"

	"github.com/gin-gonic/gin"
)

// Authenticator 根据 token 返回当前用户
type Authenticator interface {
	GetCurrentUser(ctx context.Context, token string) (*models.CurrentUser, error)
}

// bearerToken 从 Authorization 头中提取 token
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// AuthMiddleware 认证中间件
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			utils.Logger.Debug().Str("path", c.Request.URL.Path).Msg("缺少Authorization头或格式错误")
			utils.HandleError(c, utils.NewApiError("missing bearer token", http.StatusUnauthorized, "MISSING_TOKEN"))
			return
		}

		user, err := auth.GetCurrentUser(c.Request.Context(), token)
		if err != nil {
			utils.Logger.Info().Err(err).Str("path", c.Request.URL.Path).Msg("Token验证失败")
			utils.HandleError(c, err)
			return
		}

		// 将用户信息存储到上下文
		utils.SetUser(c, user)
		c.Next()
	}
}

// RequireRole 角色校验，需放在 AuthMiddleware 之后
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.GetUser(c)
		if err != nil {
			utils.HandleError(c, utils.CreateUnauthorizedError(""))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		utils.Logger.Info().
			Str("userId", user.ID).
			Str("role", string(user.Role)).
			Str("path", c.Request.URL.Path).
			Msg("权限不足")
		utils.HandleError(c, utils.CreateForbiddenError("insufficient permission"))
	}
}
