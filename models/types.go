package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole 用户角色枚举
type UserRole string

const (
	UserRoleAdmin UserRole = "admin" // 管理员
	UserRoleSales UserRole = "sales" // 销售
)

// IsValid 判断角色是否合法
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleSales
}

// Profile 用户资料（同时保存登录凭证）
type Profile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // 不返回密码
	FullName     string             `bson:"fullName" json:"fullName"`
	Role         UserRole           `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CurrentUser 当前登录用户，由认证中间件写入上下文
type CurrentUser struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
	SessionID string   `json:"-"`
}

// IsAdmin 是否为管理员
func (u *CurrentUser) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// Session 登录会话
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SessionID string             `bson:"sessionId" json:"sessionId"`
	UserID    string             `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	RevokedAt *time.Time         `bson:"revokedAt,omitempty" json:"revokedAt,omitempty"`
	UserAgent string             `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
}

// Active 会话是否仍然有效
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// 各种请求和响应结构
type (
	// LoginRequest 登录请求
	LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	// RegisterRequest 注册请求，密码强度由 PasswordPolicy 校验
	RegisterRequest struct {
		Email           string `json:"email" binding:"required,email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		FullName        string `json:"fullName" binding:"max=120"`
	}

	// AuthResponse 登录/注册响应
	AuthResponse struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
		User      *Profile  `json:"user"`
	}

	// ChangePasswordRequest 修改密码请求
	ChangePasswordRequest struct {
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	// UpdateProfileRequest 修改显示名称
	UpdateProfileRequest struct {
		FullName string `json:"fullName" binding:"max=120"`
	}

	// PasswordCheckRequest 密码强度检查
	PasswordCheckRequest struct {
		Password string `json:"password"`
	}
)
