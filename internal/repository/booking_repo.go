// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/models"
)

// BookingRepository 预订仓储
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 创建预订仓储
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create 创建预订
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID 根据 ID 获取预订
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByConfirmationCode 根据确认码获取预订
func (r *BookingRepository) GetByConfirmationCode(ctx context.Context, code string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Where("confirmation_code = ?", code).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByCodeAndEmail 根据确认码和邮箱获取预订（客人自助查询）
func (r *BookingRepository) GetByCodeAndEmail(ctx context.Context, code, email string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("confirmation_code = ? AND guest_email = ?", code, email).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ExistsByConfirmationCode 确认码是否已存在
func (r *BookingRepository) ExistsByConfirmationCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("confirmation_code = ?", code).Count(&count).Error
	return count > 0, err
}

// Update 更新预订
func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// UpdateFields 更新指定字段
func (r *BookingRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(fields).Error
}

// TransitionStatus 条件状态流转
// 仅当当前状态等于 fromStatus 时更新，返回是否真正流转成功
// 并发的前台操作凭此不会把同一流转执行两次
func (r *BookingRepository) TransitionStatus(ctx context.Context, id int64, fromStatus, toStatus string, extra map[string]interface{}) (bool, error) {
	fields := map[string]interface{}{"status": toStatus}
	for k, v := range extra {
		fields[k] = v
	}
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// TransitionStatusTx 事务内的条件状态流转
func (r *BookingRepository) TransitionStatusTx(ctx context.Context, tx *gorm.DB, id int64, fromStatus, toStatus string, extra map[string]interface{}) (bool, error) {
	fields := map[string]interface{}{"status": toStatus}
	for k, v := range extra {
		fields[k] = v
	}
	result := tx.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 获取预订列表（前台）
func (r *BookingRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{})

	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if source, ok := filters["booking_source"].(string); ok && source != "" {
		query = query.Where("booking_source = ?", source)
	}
	if search, ok := filters["search"].(string); ok && search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"confirmation_code LIKE ? OR guest_name LIKE ? OR guest_phone LIKE ?",
			like, like, like,
		)
	}
	if startDate, ok := filters["start_date"].(time.Time); ok {
		query = query.Where("check_in >= ?", startDate)
	}
	if endDate, ok := filters["end_date"].(time.Time); ok {
		query = query.Where("check_in <= ?", endDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id DESC").Offset(offset).Limit(limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// OverlappingRoomIDs 查询日期区间内被占用的房间 ID
// 与 [checkIn, checkOut) 有交集且仍占房的预订（已取消/未到店/已退房不占房）
func (r *BookingRepository) OverlappingRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]int64, error) {
	var roomIDs []int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("assigned_room_id IS NOT NULL").
		Where("status IN ?", []string{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
			models.BookingStatusCheckedIn,
		}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Distinct().
		Pluck("assigned_room_id", &roomIDs).Error
	return roomIDs, err
}

// CountRoomOverlap 统计指定房间在日期区间内的冲突预订数（排除自身）
func (r *BookingRepository) CountRoomOverlap(ctx context.Context, roomID, excludeBookingID int64, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("assigned_room_id = ?", roomID).
		Where("id <> ?", excludeBookingID).
		Where("status IN ?", []string{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
			models.BookingStatusCheckedIn,
		}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Count(&count).Error
	return count, err
}

// ListConfirmedBefore 查询入住日早于指定时间仍未到店的已确认预订（排房给未到店任务）
func (r *BookingRepository) ListConfirmedBefore(ctx context.Context, deadline time.Time, limit int) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", models.BookingStatusConfirmed).
		Where("check_in < ?", deadline).
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

// CountByStatus 统计各状态预订数量
func (r *BookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type Result struct {
		Status string
		Count  int64
	}

	var results []Result
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
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

// CountArrivals 统计指定日期到店的预订数
func (r *BookingRepository) CountArrivals(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	dayStart := date.Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("check_in >= ? AND check_in < ?", dayStart, dayEnd).
		Where("status IN ?", []string{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}).
		Count(&count).Error
	return count, err
}

// CountDepartures 统计指定日期离店的预订数
func (r *BookingRepository) CountDepartures(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	dayStart := date.Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("check_out >= ? AND check_out < ?", dayStart, dayEnd).
		Where("status IN ?", []string{models.BookingStatusCheckedIn, models.BookingStatusCheckedOut}).
		Count(&count).Error
	return count, err
}
