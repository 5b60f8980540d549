package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/models"
)

// GuestRepository 客人档案仓储
type GuestRepository struct {
	db *gorm.DB
}

// NewGuestRepository 创建客人档案仓储
func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// Create 创建客人档案
func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

// GetByID 根据 ID 获取客人档案
func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).First(&guest, id).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// GetByIDWithBookings 根据 ID 获取客人档案及入住历史
func (r *GuestRepository) GetByIDWithBookings(ctx context.Context, id int64) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in DESC")
		}).
		First(&guest, id).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// GetByEmail 根据邮箱获取客人档案
func (r *GuestRepository) GetByEmail(ctx context.Context, email string) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// Update 更新客人档案
func (r *GuestRepository) Update(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}

// List 获取客人列表
func (r *GuestRepository) List(ctx context.Context, offset, limit int, search string) ([]*models.Guest, int64, error) {
	var guests []*models.Guest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Guest{})

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id DESC").Offset(offset).Limit(limit).
		Find(&guests).Error; err != nil {
		return nil, 0, err
	}

	return guests, total, nil
}
