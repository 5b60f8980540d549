package catalog

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/common/cache"
	"github.com/santaluna/hotel-backend/internal/common/config"
	"github.com/santaluna/hotel-backend/internal/common/errors"
	"github.com/santaluna/hotel-backend/internal/common/logger"
	"github.com/santaluna/hotel-backend/internal/common/metrics"
	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
)

// TourService 跟团游目录服务
type TourService struct {
	tourRepo *repository.TourRepository
	cfg      *config.HotelConfig
}

// NewTourService 创建跟团游目录服务
func NewTourService(tourRepo *repository.TourRepository, cfg *config.HotelConfig) *TourService {
	return &TourService{tourRepo: tourRepo, cfg: cfg}
}

// TourInfo 跟团游套餐信息
type TourInfo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration,omitempty"`
	Active      bool    `json:"active"`
}

// CreateTourRequest 创建套餐请求
type CreateTourRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Duration    string  `json:"duration" binding:"omitempty,max=50"`
}

// UpdateTourRequest 更新套餐请求
type UpdateTourRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Duration    *string  `json:"duration" binding:"omitempty,max=50"`
	Active      *bool    `json:"active"`
}

// ListTours 上架中的套餐目录（redis 缓存）
func (s *TourService) ListTours(ctx context.Context) ([]*TourInfo, error) {
	var cached []*TourInfo
	if err := cache.Get(ctx, cache.KeyPrefixTourCatalog, &cached); err == nil {
		metrics.RecordCacheHitGlobal("tour_catalog")
		return cached, nil
	}
	metrics.RecordCacheMissGlobal("tour_catalog")

	tours, err := s.tourRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*TourInfo, 0, len(tours))
	for _, tour := range tours {
		result = append(result, convertTourInfo(tour))
	}

	ttl := time.Duration(s.cfg.CatalogCacheExpire) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := cache.Set(ctx, cache.KeyPrefixTourCatalog, result, ttl); err != nil {
		logger.Warn("行程目录缓存写入失败", logger.Err(err))
	}
	return result, nil
}

// GetTour 套餐详情
func (s *TourService) GetTour(ctx context.Context, id int64) (*TourInfo, error) {
	tour, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTourNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertTourInfo(tour), nil
}

// CreateTour 前台创建套餐
func (s *TourService) CreateTour(ctx context.Context, req *CreateTourRequest) (*TourInfo, error) {
	tour := &models.TourPackage{
		Name:   req.Name,
		Price:  req.Price,
		Active: true,
	}
	if req.Description != "" {
		tour.Description = &req.Description
	}
	if req.Duration != "" {
		tour.Duration = &req.Duration
	}
	if err := s.tourRepo.Create(ctx, tour); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	s.invalidateCatalog(ctx)
	return convertTourInfo(tour), nil
}

// UpdateTour 前台更新套餐（含上下架）
func (s *TourService) UpdateTour(ctx context.Context, id int64, req *UpdateTourRequest) (*TourInfo, error) {
	tour, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTourNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.Name != nil {
		tour.Name = *req.Name
	}
	if req.Description != nil {
		tour.Description = req.Description
	}
	if req.Price != nil {
		tour.Price = *req.Price
	}
	if req.Duration != nil {
		tour.Duration = req.Duration
	}
	if req.Active != nil {
		tour.Active = *req.Active
	}

	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	s.invalidateCatalog(ctx)
	return convertTourInfo(tour), nil
}

// invalidateCatalog 目录变更后清除缓存
func (s *TourService) invalidateCatalog(ctx context.Context) {
	if err := cache.Delete(ctx, cache.KeyPrefixTourCatalog); err != nil {
		logger.Warn("行程目录缓存清除失败", logger.Err(err))
	}
}

// convertTourInfo 转换套餐信息
func convertTourInfo(tour *models.TourPackage) *TourInfo {
	info := &TourInfo{
		ID:     tour.ID,
		Name:   tour.Name,
		Price:  tour.Price,
		Active: tour.Active,
	}
	if tour.Description != nil {
		info.Description = *tour.Description
	}
	if tour.Duration != nil {
		info.Duration = *tour.Duration
	}
	return info
}
