package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/models"
)

// RoomRepository 房间仓储
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房间仓储
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create 创建房间
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID 根据 ID 获取房间
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByRoomNo 根据房间号获取房间
func (r *RoomRepository) GetByRoomNo(ctx context.Context, roomNo string) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).Where("room_no = ?", roomNo).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Update 更新房间
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// UpdateStatus 更新房间状态
func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", id).Update("status", status).Error
}

// TransitionStatus 条件更新房间状态
// 仅当当前状态等于 fromStatus 时更新，返回是否更新成功
func (r *RoomRepository) TransitionStatus(ctx context.Context, id int64, fromStatus, toStatus string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStatusTx 事务内更新房间状态
func (r *RoomRepository) UpdateStatusTx(ctx context.Context, tx *gorm.DB, id int64, status string) error {
	return tx.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", id).Update("status", status).Error
}

// List 获取房间列表
func (r *RoomRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Room, int64, error) {
	var rooms []*models.Room
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Room{})

	if roomType, ok := filters["type"].(string); ok && roomType != "" {
		query = query.Where("type = ?", roomType)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if floor, ok := filters["floor"].(int); ok && floor > 0 {
		query = query.Where("floor = ?", floor)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("room_no ASC").Offset(offset).Limit(limit).
		Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// ListAll 获取全部房间（目录缓存用）
func (r *RoomRepository) ListAll(ctx context.Context) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).Order("room_no ASC").Find(&rooms).Error
	return rooms, err
}

// ListByTypeAndCapacity 按房型和可住人数筛选
// excludeIDs 为日期区间内已被占用的房间
func (r *RoomRepository) ListByTypeAndCapacity(ctx context.Context, roomType string, guests int, excludeIDs []int64) ([]*models.Room, error) {
	var rooms []*models.Room

	query := r.db.WithContext(ctx).
		Where("capacity >= ?", guests).
		Where("status <> ?", models.RoomStatusMaintenance)

	if roomType != "" {
		query = query.Where("type = ?", roomType)
	}
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	err := query.Order("room_no ASC").Find(&rooms).Error
	return rooms, err
}

// CountByStatus 统计各状态房间数量
func (r *RoomRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type Result struct {
		Status string
		Count  int64
	}

	var results []Result
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Select("status, count(*) as count").
		Group("status").Find(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, res := range results {
		counts[res.Status] = res.Count
	}
	return counts, nil
}

// ListReservedWithoutActiveBooking 查询已排房但对应预订已终止的房间（释放任务用）
func (r *RoomRepository) ListReservedWithoutActiveBooking(ctx context.Context) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Where("status = ?", models.RoomStatusReserved).
		Where("id NOT IN (?)",
			r.db.Model(&models.Booking{}).
				Select("assigned_room_id").
				Where("assigned_room_id IS NOT NULL").
				Where("status IN ?", []string{
					models.BookingStatusPending,
					models.BookingStatusConfirmed,
					models.BookingStatusCheckedIn,
				}),
		).
		Find(&rooms).Error
	return rooms, err
}
