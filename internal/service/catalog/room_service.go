// Package catalog 提供对外房型/行程目录与可订查询服务
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

const dateLayout = "2006-01-02"

// RoomService 房间目录服务
type RoomService struct {
	roomRepo    *repository.RoomRepository
	bookingRepo *repository.BookingRepository
	cfg         *config.HotelConfig
}

// NewRoomService 创建房间目录服务
func NewRoomService(roomRepo *repository.RoomRepository, bookingRepo *repository.BookingRepository, cfg *config.HotelConfig) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
	}
}

// RoomInfo 房间信息
type RoomInfo struct {
	ID          int64       `json:"id"`
	RoomNo      string      `json:"room_no"`
	Type        string      `json:"type"`
	Price       float64     `json:"price"`
	Capacity    int         `json:"capacity"`
	Status      string      `json:"status"`
	Floor       *int        `json:"floor,omitempty"`
	Amenities   models.JSON `json:"amenities,omitempty"`
	Description string      `json:"description,omitempty"`
}

// CreateRoomRequest 创建房间请求
type CreateRoomRequest struct {
	RoomNo      string      `json:"room_no" binding:"required,max=20"`
	Type        string      `json:"type" binding:"required,oneof=standard deluxe family suite"`
	Price       float64     `json:"price" binding:"required,gt=0"`
	Capacity    int         `json:"capacity" binding:"required,min=1"`
	Floor       *int        `json:"floor"`
	Amenities   models.JSON `json:"amenities"`
	Description string      `json:"description" binding:"omitempty,max=2000"`
}

// UpdateRoomRequest 更新房间请求
type UpdateRoomRequest struct {
	Price       *float64    `json:"price" binding:"omitempty,gt=0"`
	Capacity    *int        `json:"capacity" binding:"omitempty,min=1"`
	Floor       *int        `json:"floor"`
	Amenities   models.JSON `json:"amenities"`
	Description *string     `json:"description" binding:"omitempty,max=2000"`
}

// UpdateRoomStatusRequest 更新房间状态请求
type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available occupied reserved maintenance"`
}

// AvailabilityRequest 可订查询
type AvailabilityRequest struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
	Guests   int    `form:"guests" binding:"omitempty,min=1"`
	RoomType string `form:"room_type" binding:"omitempty,oneof=standard deluxe family suite"`
}

// ListRooms 房间目录（redis 缓存）
func (s *RoomService) ListRooms(ctx context.Context) ([]*RoomInfo, error) {
	var cached []*RoomInfo
	if err := cache.Get(ctx, cache.KeyPrefixRoomCatalog, &cached); err == nil {
		metrics.RecordCacheHitGlobal("room_catalog")
		return cached, nil
	}
	metrics.RecordCacheMissGlobal("room_catalog")

	rooms, err := s.roomRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, convertRoomInfo(room))
	}

	if err := cache.Set(ctx, cache.KeyPrefixRoomCatalog, result, s.cacheTTL()); err != nil {
		logger.Warn("房间目录缓存写入失败", logger.Err(err))
	}
	return result, nil
}

// GetRoom 房间详情
func (s *RoomService) GetRoom(ctx context.Context, id int64) (*RoomInfo, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertRoomInfo(room), nil
}

// Availability 日期区间内的可订房间
// 排除维护中的房间以及与未取消预订日期重叠的房间
func (s *RoomService) Availability(ctx context.Context, req *AvailabilityRequest) ([]*RoomInfo, error) {
	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return nil, errors.ErrInvalidParams.WithMessage("入住日期格式错误")
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return nil, errors.ErrInvalidParams.WithMessage("退房日期格式错误")
	}
	if !checkOut.After(checkIn) {
		return nil, errors.ErrDateRangeInvalid
	}

	guests := req.Guests
	if guests <= 0 {
		guests = 1
	}

	occupied, err := s.bookingRepo.OverlappingRoomIDs(ctx, checkIn, checkOut)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	rooms, err := s.roomRepo.ListByTypeAndCapacity(ctx, req.RoomType, guests, occupied)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, convertRoomInfo(room))
	}
	return result, nil
}

// CreateRoom 前台创建房间
func (s *RoomService) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*RoomInfo, error) {
	if _, err := s.roomRepo.GetByRoomNo(ctx, req.RoomNo); err == nil {
		return nil, errors.ErrRoomNoExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	room := &models.Room{
		RoomNo:    req.RoomNo,
		Type:      req.Type,
		Price:     req.Price,
		Capacity:  req.Capacity,
		Status:    models.RoomStatusAvailable,
		Floor:     req.Floor,
		Amenities: req.Amenities,
	}
	if req.Description != "" {
		room.Description = &req.Description
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	s.invalidateCatalog(ctx)
	return convertRoomInfo(room), nil
}

// UpdateRoom 前台更新房间
func (s *RoomService) UpdateRoom(ctx context.Context, id int64, req *UpdateRoomRequest) (*RoomInfo, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Floor != nil {
		room.Floor = req.Floor
	}
	if req.Amenities != nil {
		room.Amenities = req.Amenities
	}
	if req.Description != nil {
		room.Description = req.Description
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	s.invalidateCatalog(ctx)
	return convertRoomInfo(room), nil
}

// UpdateRoomStatus 前台手动调整房间状态（维护/恢复）
func (s *RoomService) UpdateRoomStatus(ctx context.Context, id int64, req *UpdateRoomStatusRequest) (*RoomInfo, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 在住房间不允许直接改成其他状态，必须先退房
	if room.Status == models.RoomStatusOccupied && req.Status != models.RoomStatusOccupied {
		return nil, errors.ErrRoomOccupied
	}

	if err := s.roomRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	room.Status = req.Status

	s.invalidateCatalog(ctx)
	return convertRoomInfo(room), nil
}

// cacheTTL 目录缓存有效期
func (s *RoomService) cacheTTL() time.Duration {
	if s.cfg.CatalogCacheExpire <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.cfg.CatalogCacheExpire) * time.Second
}

// invalidateCatalog 目录变更后清除缓存
func (s *RoomService) invalidateCatalog(ctx context.Context) {
	if err := cache.Delete(ctx, cache.KeyPrefixRoomCatalog); err != nil {
		logger.Warn("房间目录缓存清除失败", logger.Err(err))
	}
}

// convertRoomInfo 转换房间信息
func convertRoomInfo(room *models.Room) *RoomInfo {
	info := &RoomInfo{
		ID:        room.ID,
		RoomNo:    room.RoomNo,
		Type:      room.Type,
		Price:     room.Price,
		Capacity:  room.Capacity,
		Status:    room.Status,
		Floor:     room.Floor,
		Amenities: room.Amenities,
	}
	if room.Description != nil {
		info.Description = *room.Description
	}
	return info
}
