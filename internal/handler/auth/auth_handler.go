// Package auth 提供员工认证相关的 HTTP Handler
package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/santaluna/hotel-backend/internal/common/handler"
	"github.com/santaluna/hotel-backend/internal/common/response"
	authService "github.com/santaluna/hotel-backend/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *authService.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *authService.AuthService) *AuthHandler {
	return &AuthHandler{authService: svc}
}

// Login 员工登录
// @Summary 员工登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body authService.LoginRequest true "请求参数"
// @Success 200 {object} response.Response{data=authService.LoginResponse}
// @Router /api/admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req authService.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	result, err := h.authService.Login(c.Request.Context(), &req)
	handler.MustSucceed(c, err, result)
}

// Refresh 刷新令牌
// @Summary 刷新令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body authService.RefreshRequest true "请求参数"
// @Success 200 {object} response.Response{data=jwt.TokenPair}
// @Router /api/admin/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req authService.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	pair, err := h.authService.Refresh(c.Request.Context(), &req)
	handler.MustSucceed(c, err, pair)
}

// Profile 当前员工信息
// @Summary 当前员工信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=authService.StaffInfo}
// @Router /api/admin/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	staffID, ok := handler.RequireStaffID(c)
	if !ok {
		return
	}
	info, err := h.authService.GetProfile(c.Request.Context(), staffID)
	handler.MustSucceed(c, err, info)
}

// CreateStaff 创建员工账号
// @Summary 创建员工账号
// @Description 仅经理角色可用
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body authService.CreateStaffRequest true "请求参数"
// @Success 201 {object} response.Response{data=authService.StaffInfo}
// @Router /api/admin/staff [post]
func (h *AuthHandler) CreateStaff(c *gin.Context) {
	var req authService.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	info, err := h.authService.CreateStaff(c.Request.Context(), &req)
	handler.MustCreate(c, err, info)
}
