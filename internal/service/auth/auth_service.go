// Package auth 提供前台员工认证服务
package auth

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/common/crypto"
	"github.com/santaluna/hotel-backend/internal/common/errors"
	"github.com/santaluna/hotel-backend/internal/common/jwt"
	"github.com/santaluna/hotel-backend/internal/common/logger"
	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
)

// AuthService 认证服务
type AuthService struct {
	staffRepo  *repository.StaffRepository
	jwtManager *jwt.Manager
}

// NewAuthService 创建认证服务
func NewAuthService(staffRepo *repository.StaffRepository, jwtManager *jwt.Manager) *AuthService {
	return &AuthService{
		staffRepo:  staffRepo,
		jwtManager: jwtManager,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Staff *StaffInfo     `json:"staff"`
	Token *jwt.TokenPair `json:"token"`
}

// StaffInfo 员工信息
type StaffInfo struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Login 员工登录
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	staff, err := s.staffRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPasswordError
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if staff.Status != models.StaffStatusActive {
		return nil, errors.ErrAccountDisabled
	}
	if !crypto.VerifyPassword(req.Password, staff.PasswordHash) {
		return nil, errors.ErrPasswordError
	}

	token, err := s.jwtManager.GenerateTokenPair(staff.ID, staff.Username, staff.Role)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	if err := s.staffRepo.UpdateLastLogin(ctx, staff.ID); err != nil {
		logger.Warn("更新最后登录时间失败", logger.StaffID(staff.ID), logger.Err(err))
	}

	logger.Info("员工登录成功", logger.StaffID(staff.ID), logger.String("username", staff.Username))
	return &LoginResponse{
		Staff: convertStaffInfo(staff),
		Token: token,
	}, nil
}

// Refresh 刷新令牌
func (s *AuthService) Refresh(ctx context.Context, req *RefreshRequest) (*jwt.TokenPair, error) {
	token, err := s.jwtManager.RefreshToken(req.RefreshToken)
	if err != nil {
		return nil, errors.ErrTokenInvalid.WithError(err)
	}
	return token, nil
}

// GetProfile 获取当前员工信息
func (s *AuthService) GetProfile(ctx context.Context, staffID int64) (*StaffInfo, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrStaffNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertStaffInfo(staff), nil
}

// CreateStaffRequest 创建员工请求（经理权限）
type CreateStaffRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	Name     string `json:"name" binding:"required,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=front_desk manager"`
}

// CreateStaff 创建员工账号
func (s *AuthService) CreateStaff(ctx context.Context, req *CreateStaffRequest) (*StaffInfo, error) {
	if _, err := s.staffRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errors.ErrStaffExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	role := req.Role
	if role == "" {
		role = models.StaffRoleFrontDesk
	}
	staff := &models.Staff{
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
		Status:       models.StaffStatusActive,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertStaffInfo(staff), nil
}

func convertStaffInfo(staff *models.Staff) *StaffInfo {
	return &StaffInfo{
		ID:          staff.ID,
		Username:    staff.Username,
		Name:        staff.Name,
		Role:        staff.Role,
		LastLoginAt: staff.LastLoginAt,
	}
}
