// Package folio 提供客账与收款服务
package folio

import (
	"context"

	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/common/errors"
	"github.com/santaluna/hotel-backend/internal/common/logger"
	"github.com/santaluna/hotel-backend/internal/common/metrics"
	"github.com/santaluna/hotel-backend/internal/common/utils"
	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
)

// FolioService 客账服务
// 账本只追加不修改，冲正通过负数 adjustment 条目完成
type FolioService struct {
	db          *gorm.DB
	bookingRepo *repository.BookingRepository
	folioRepo   *repository.FolioRepository
	paymentRepo *repository.PaymentRepository
}

// NewFolioService 创建客账服务
func NewFolioService(
	db *gorm.DB,
	bookingRepo *repository.BookingRepository,
	folioRepo *repository.FolioRepository,
	paymentRepo *repository.PaymentRepository,
) *FolioService {
	return &FolioService{
		db:          db,
		bookingRepo: bookingRepo,
		folioRepo:   folioRepo,
		paymentRepo: paymentRepo,
	}
}

// AddChargeRequest 追加消费条目请求
type AddChargeRequest struct {
	ChargeType  string  `json:"charge_type" binding:"required"`
	Description string  `json:"description" binding:"required,max=255"`
	Amount      float64 `json:"amount" binding:"required"`
	Quantity    int     `json:"quantity" binding:"omitempty,min=1"`
}

// RecordPaymentRequest 录入收款请求
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"required,oneof=cash card transfer ota"`
}

// FolioItemInfo 消费条目信息
type FolioItemInfo struct {
	ID          int64   `json:"id"`
	ItemNo      string  `json:"item_no"`
	ChargeType  string  `json:"charge_type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
	CreatedBy   int64   `json:"created_by"`
	CreatedAt   string  `json:"created_at"`
}

// FolioSummary 客账汇总
type FolioSummary struct {
	Items      []*FolioItemInfo `json:"items"`
	FolioTotal float64          `json:"folio_total"`
	PaidTotal  float64          `json:"paid_total"`
	BalanceDue float64          `json:"balance_due"`
}

// PaymentInfo 收款记录信息
type PaymentInfo struct {
	ID         int64   `json:"id"`
	BookingID  int64   `json:"booking_id"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	RecordedBy int64   `json:"recorded_by"`
	CreatedAt  string  `json:"created_at"`
}

// AddCharge 向在住预订追加消费条目
func (s *FolioService) AddCharge(ctx context.Context, staffID, bookingID int64, req *AddChargeRequest) (*FolioItemInfo, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusCheckedIn {
		return nil, errors.ErrBookingStatusError.WithMessage("仅在住预订可以记账")
	}

	if !utils.Contains(models.ValidChargeTypes, req.ChargeType) {
		return nil, errors.ErrChargeTypeInvalid
	}
	if req.Amount == 0 {
		return nil, errors.ErrFolioItemInvalid.WithMessage("金额不能为零")
	}
	// 负数金额只用于冲正
	if req.Amount < 0 && req.ChargeType != models.ChargeTypeAdjustment {
		return nil, errors.ErrFolioItemInvalid.WithMessage("仅冲正条目允许负数金额")
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	item := &models.FolioItem{
		ItemNo:      utils.GenerateFolioItemNo(),
		BookingID:   bookingID,
		ChargeType:  req.ChargeType,
		Description: req.Description,
		Amount:      req.Amount,
		Quantity:    quantity,
		CreatedBy:   staffID,
	}
	if err := s.folioRepo.Create(ctx, item); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("客账条目已追加",
		logger.BookingID(bookingID),
		logger.String("charge_type", req.ChargeType),
		logger.Float64("amount", req.Amount),
	)
	return convertFolioItemInfo(item), nil
}

// GetFolio 客账明细与余额
func (s *FolioService) GetFolio(ctx context.Context, bookingID int64) (*FolioSummary, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	items, err := s.folioRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	folioTotal, err := s.folioRepo.SumByBooking(ctx, bookingID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	paidTotal, err := s.paymentRepo.SumByBooking(ctx, bookingID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	infos := make([]*FolioItemInfo, 0, len(items))
	for _, item := range items {
		infos = append(infos, convertFolioItemInfo(item))
	}

	balance := utils.Round2(booking.TotalAmount + folioTotal - paidTotal)
	if balance < 0 {
		balance = 0
	}
	return &FolioSummary{
		Items:      infos,
		FolioTotal: utils.Round2(folioTotal),
		PaidTotal:  utils.Round2(paidTotal),
		BalanceDue: balance,
	}, nil
}

// RecordPayment 录入收款
// 余额不变式：收款不得超过应付余额
func (s *FolioService) RecordPayment(ctx context.Context, staffID, bookingID int64, req *RecordPaymentRequest) (*PaymentInfo, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.IsTerminal() && booking.Status != models.BookingStatusCheckedOut {
		return nil, errors.ErrBookingStatusError.WithMessage("已取消或未到店的预订不能收款")
	}

	var payment *models.Payment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		folioTotal, err := s.folioRepo.SumByBookingTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		paidTotal, err := s.paymentRepo.SumByBookingTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		balance := utils.Round2(booking.TotalAmount + folioTotal - paidTotal)
		if req.Amount > balance {
			return errors.ErrPaymentExceed
		}

		payment = &models.Payment{
			BookingID:  bookingID,
			Amount:     req.Amount,
			Method:     req.Method,
			RecordedBy: staffID,
		}
		if err := s.paymentRepo.CreateTx(ctx, tx, payment); err != nil {
			return err
		}

		// 收款后更新支付状态
		status := models.PaymentStatusDeposit
		if utils.Round2(balance-req.Amount) == 0 {
			status = models.PaymentStatusPaid
		}
		return tx.Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Update("payment_status", status).Error
	})
	if err != nil {
		if appErr, isApp := err.(*errors.AppError); isApp {
			return nil, appErr
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.RecordPaymentGlobal(req.Method)
	logger.Info("收款已录入",
		logger.BookingID(bookingID),
		logger.Float64("amount", req.Amount),
		logger.StaffID(staffID),
	)
	return convertPaymentInfo(payment), nil
}

// ListPayments 收款记录
func (s *FolioService) ListPayments(ctx context.Context, bookingID int64) ([]*PaymentInfo, error) {
	if _, err := s.getBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	result := make([]*PaymentInfo, 0, len(payments))
	for _, p := range payments {
		result = append(result, convertPaymentInfo(p))
	}
	return result, nil
}

func (s *FolioService) getBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return booking, nil
}

func convertFolioItemInfo(item *models.FolioItem) *FolioItemInfo {
	return &FolioItemInfo{
		ID:          item.ID,
		ItemNo:      item.ItemNo,
		ChargeType:  item.ChargeType,
		Description: item.Description,
		Amount:      item.Amount,
		Quantity:    item.Quantity,
		Subtotal:    utils.Round2(item.Total()),
		CreatedBy:   item.CreatedBy,
		CreatedAt:   item.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func convertPaymentInfo(payment *models.Payment) *PaymentInfo {
	return &PaymentInfo{
		ID:         payment.ID,
		BookingID:  payment.BookingID,
		Amount:     payment.Amount,
		Method:     payment.Method,
		RecordedBy: payment.RecordedBy,
		CreatedAt:  payment.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
