package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/repository"
	"github.com/BerniceZTT/sales_tracker/utils"
)

// 认证相关错误信息
const (
	ErrMsgInvalidCredentials = "invalid email or password"
	ErrMsgPasswordMismatch   = "password and confirmation do not match"
	ErrMsgPasswordTooLong    = "password too long"
	ErrMsgEmailTaken         = "email already registered"
	ErrMsgSessionExpired     = "session expired, please sign in again"
)

// AuthService 注册、登录、会话和个人资料
type AuthService struct {
	profiles   repository.ProfileRepository
	sessions   repository.SessionRepository
	tokens     *utils.TokenManager
	bcryptCost int
	now        func() time.Time
}

// NewAuthService 创建认证服务
func NewAuthService(profiles repository.ProfileRepository, sessions repository.SessionRepository, tokens *utils.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{
		profiles:   profiles,
		sessions:   sessions,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// DisplayName 显示名称，未设置姓名时使用邮箱
func DisplayName(profile *models.Profile) string {
	if profile == nil {
		return ""
	}
	if name := strings.TrimSpace(profile.FullName); name != "" {
		return name
	}
	return profile.Email
}

// CheckPassword 供前端实时校验密码强度
func (s *AuthService) CheckPassword(password string) models.PasswordValidation {
	return ValidateStrongPassword(password)
}

// checkNewPassword 新密码需满足强度规则且与确认密码一致
func checkNewPassword(password, confirm string) error {
	result := ValidateStrongPassword(password)
	if !result.Valid {
		return utils.NewApiError(result.Message(), http.StatusBadRequest, "WEAK_PASSWORD").
			WithDetails(map[string]interface{}{"errors": result.Errors})
	}
	if password != confirm {
		return utils.NewApiError(ErrMsgPasswordMismatch, http.StatusBadRequest, "PASSWORD_MISMATCH")
	}
	if len(password) > utils.MaxPasswordBytes {
		return utils.CreateBadRequestError(ErrMsgPasswordTooLong)
	}
	return nil
}

// SignUp 注册销售账号并直接登录
func (s *AuthService) SignUp(ctx context.Context, req models.RegisterRequest, userAgent string) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := checkNewPassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profile := &models.Profile{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         models.UserRoleSales,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.CreateConflictError(ErrMsgEmailTaken)
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	utils.Logger.Info().Str("userId", profile.ID.Hex()).Msg("新用户注册")
	return s.startSession(ctx, profile, userAgent)
}

// SignInWithPassword 邮箱密码登录
func (s *AuthService) SignInWithPassword(ctx context.Context, email, password, userAgent string) (*models.AuthResponse, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.CreateUnauthorizedError(ErrMsgInvalidCredentials)
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if !utils.VerifyPassword(password, profile.PasswordHash) {
		return nil, utils.CreateUnauthorizedError(ErrMsgInvalidCredentials)
	}
	return s.startSession(ctx, profile, userAgent)
}

func (s *AuthService) startSession(ctx context.Context, profile *models.Profile, userAgent string) (*models.AuthResponse, error) {
	sessionID := uuid.NewString()
	token, expiresAt, err := s.tokens.GenerateToken(profile, sessionID)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		SessionID: sessionID,
		UserID:    profile.ID.Hex(),
		CreatedAt: s.now(),
		ExpiresAt: expiresAt,
		UserAgent: userAgent,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("保存会话失败: %w", err)
	}

	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt, User: profile}, nil
}

// SignOut 注销当前会话
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID, s.now()); err != nil {
		return fmt.Errorf("注销会话失败: %w", err)
	}
	return nil
}

// GetCurrentUser 校验 token 和会话，返回当前用户
func (s *AuthService) GetCurrentUser(ctx context.Context, token string) (*models.CurrentUser, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, utils.CreateUnauthorizedError("invalid or expired token")
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.CreateUnauthorizedError(ErrMsgSessionExpired)
		}
		return nil, fmt.Errorf("查询会话失败: %w", err)
	}
	if !session.Active(s.now()) || session.UserID != claims.UserID {
		return nil, utils.CreateUnauthorizedError(ErrMsgSessionExpired)
	}

	profile, err := s.loadProfile(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.CreateUnauthorizedError("user no longer exists")
		}
		return nil, err
	}

	return &models.CurrentUser{
		ID:        profile.ID.Hex(),
		Email:     profile.Email,
		Name:      DisplayName(profile),
		Role:      profile.Role,
		SessionID: session.SessionID,
	}, nil
}

// Profile 当前用户资料
func (s *AuthService) Profile(ctx context.Context, user *models.CurrentUser) (*models.Profile, error) {
	profile, err := s.loadProfile(ctx, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.CreateNotFoundError("user")
	}
	return profile, err
}

func (s *AuthService) loadProfile(ctx context.Context, userID string) (*models.Profile, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return s.profiles.GetByID(ctx, id)
}

// UpdatePassword 修改密码，其他会话随之失效
func (s *AuthService) UpdatePassword(ctx context.Context, user *models.CurrentUser, req models.ChangePasswordRequest) error {
	if err := checkNewPassword(req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}
	id, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return utils.CreateUnauthorizedError("")
	}

	hash, err := utils.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.profiles.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.CreateNotFoundError("user")
		}
		return fmt.Errorf("更新密码失败: %w", err)
	}
	if err := s.sessions.RevokeOthers(ctx, user.ID, user.SessionID, s.now()); err != nil {
		return fmt.Errorf("注销其他会话失败: %w", err)
	}

	utils.Logger.Info().Str("userId", user.ID).Msg("用户修改密码")
	return nil
}

// UpdateDisplayName 修改显示名称，空字符串表示清除
func (s *AuthService) UpdateDisplayName(ctx context.Context, user *models.CurrentUser, fullName string) (*models.Profile, error) {
	id, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, utils.CreateUnauthorizedError("")
	}
	if err := s.profiles.UpdateFullName(ctx, id, strings.TrimSpace(fullName)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.CreateNotFoundError("user")
		}
		return nil, fmt.Errorf("更新用户资料失败: %w", err)
	}
	return s.Profile(ctx, user)
}

// EnsureAdmin 没有管理员时用配置中的账号初始化
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		utils.Logger.Warn().Msg("未配置管理员账号，跳过初始化")
		return nil
	}

	count, err := s.profiles.CountByRole(ctx, models.UserRoleAdmin)
	if err != nil {
		return fmt.Errorf("检查管理员账户失败: %w", err)
	}
	if count > 0 {
		utils.Logger.Info().Msg("管理员账户已存在，跳过创建")
		return nil
	}

	if result := ValidateStrongPassword(password); !result.Valid {
		return fmt.Errorf("管理员密码强度不足: %s", result.Message())
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	now := s.now()
	admin := &models.Profile{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         models.UserRoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.profiles.Create(ctx, admin); err != nil {
		return fmt.Errorf("创建管理员账户失败: %w", err)
	}

	utils.Logger.Info().Str("email", admin.Email).Msg("已创建默认管理员账户")
	return nil
}
