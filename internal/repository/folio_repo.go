package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/models"
)

// FolioRepository 客账仓储
// 账本只追加，不提供更新和删除方法
type FolioRepository struct {
	db *gorm.DB
}

// NewFolioRepository 创建客账仓储
func NewFolioRepository(db *gorm.DB) *FolioRepository {
	return &FolioRepository{db: db}
}

// Create 追加客账条目
func (r *FolioRepository) Create(ctx context.Context, item *models.FolioItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateTx 事务内追加客账条目
func (r *FolioRepository) CreateTx(ctx context.Context, tx *gorm.DB, item *models.FolioItem) error {
	return tx.WithContext(ctx).Create(item).Error
}

// ListByBooking 按时间顺序获取预订的客账条目
func (r *FolioRepository) ListByBooking(ctx context.Context, bookingID int64) ([]*models.FolioItem, error) {
	var items []*models.FolioItem
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// SumByBooking 汇总预订的客账金额（amount × quantity）
func (r *FolioRepository) SumByBooking(ctx context.Context, bookingID int64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.FolioItem{}).
		Where("booking_id = ?", bookingID).
		Select("COALESCE(SUM(amount * quantity), 0)").
		Scan(&total).Error
	return total, err
}

// SumByBookingTx 事务内汇总客账金额
func (r *FolioRepository) SumByBookingTx(ctx context.Context, tx *gorm.DB, bookingID int64) (float64, error) {
	var total float64
	err := tx.WithContext(ctx).Model(&models.FolioItem{}).
		Where("booking_id = ?", bookingID).
		Select("COALESCE(SUM(amount * quantity), 0)").
		Scan(&total).Error
	return total, err
}

// PaymentRepository 收款仓储
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建收款仓储
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create 记录收款
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// CreateTx 事务内记录收款
func (r *PaymentRepository) CreateTx(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

// ListByBooking 获取预订的收款记录
func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

// SumByBooking 汇总预订的已收款金额
func (r *PaymentRepository) SumByBooking(ctx context.Context, bookingID int64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("booking_id = ?", bookingID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// SumByBookingTx 事务内汇总已收款金额
func (r *PaymentRepository) SumByBookingTx(ctx context.Context, tx *gorm.DB, bookingID int64) (float64, error) {
	var total float64
	err := tx.WithContext(ctx).Model(&models.Payment{}).
		Where("booking_id = ?", bookingID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// SumByDate 汇总指定日期的收款总额（营业统计）
func (r *PaymentRepository) SumByDate(ctx context.Context, date time.Time) (float64, error) {
	dayStart := date.Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var total float64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
