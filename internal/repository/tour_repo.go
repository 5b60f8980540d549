package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/models"
)

// TourRepository 跟团游套餐仓储
type TourRepository struct {
	db *gorm.DB
}

// NewTourRepository 创建套餐仓储
func NewTourRepository(db *gorm.DB) *TourRepository {
	return &TourRepository{db: db}
}

// Create 创建套餐
func (r *TourRepository) Create(ctx context.Context, tour *models.TourPackage) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

// GetByID 根据 ID 获取套餐
func (r *TourRepository) GetByID(ctx context.Context, id int64) (*models.TourPackage, error) {
	var tour models.TourPackage
	err := r.db.WithContext(ctx).First(&tour, id).Error
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

// ListActive 获取上架套餐列表
func (r *TourRepository) ListActive(ctx context.Context) ([]*models.TourPackage, error) {
	var tours []*models.TourPackage
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&tours).Error
	return tours, err
}

// ListByIDs 根据 ID 集合获取套餐（报价计算用）
func (r *TourRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.TourPackage, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tours []*models.TourPackage
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&tours).Error
	return tours, err
}

// Update 更新套餐
func (r *TourRepository) Update(ctx context.Context, tour *models.TourPackage) error {
	return r.db.WithContext(ctx).Save(tour).Error
}
