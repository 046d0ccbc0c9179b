package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/service"
	"github.com/BerniceZTT/sales_tracker/utils"
)

// AuthController 认证相关接口
type AuthController struct {
	auth *service.AuthService
}

// NewAuthController 创建认证控制器
func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register 注册
func (h *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.auth.SignUp(ctx, req, c.Request.UserAgent())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, resp, "registration successful", http.StatusCreated)
}

// Login 登录
func (h *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.auth.SignInWithPassword(ctx, req.Email, req.Password, c.Request.UserAgent())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{"userId": resp.User.ID.Hex()}, "用户登录")
	utils.SuccessResponse(c, resp, "login successful")
}

// CheckPassword 密码强度实时检查
func (h *AuthController) CheckPassword(c *gin.Context) {
	var req models.PasswordCheckRequest
	if !bindJSON(c, &req) {
		return
	}
	utils.SuccessResponse(c, h.auth.CheckPassword(req.Password), "")
}

// Logout 注销当前会话
func (h *AuthController) Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.auth.SignOut(ctx, user.SessionID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "signed out")
}

// Me 当前用户资料
func (h *AuthController) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.auth.Profile(ctx, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"user":        profile,
		"displayName": service.DisplayName(profile),
	}, "")
}

// ChangePassword 修改密码
func (h *AuthController) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.auth.UpdatePassword(ctx, user, req); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "password updated")
}

// UpdateProfile 修改显示名称
func (h *AuthController) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.auth.UpdateDisplayName(ctx, user, req.FullName)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, profile, "profile updated")
}
