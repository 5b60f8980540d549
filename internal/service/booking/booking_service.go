// Package booking 提供预订生命周期服务
package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/common/cache"
	"github.com/santaluna/hotel-backend/internal/common/config"
	"github.com/santaluna/hotel-backend/internal/common/errors"
	"github.com/santaluna/hotel-backend/internal/common/logger"
	"github.com/santaluna/hotel-backend/internal/common/metrics"
	"github.com/santaluna/hotel-backend/internal/common/utils"
	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
	"github.com/santaluna/hotel-backend/pkg/sms"
)

const dateLayout = "2006-01-02"

// roomLockTTL 分配房间时的互斥锁有效期
const roomLockTTL = 10 * time.Second

// BookingService 预订服务
type BookingService struct {
	db             *gorm.DB
	bookingRepo    *repository.BookingRepository
	roomRepo       *repository.RoomRepository
	guestRepo      *repository.GuestRepository
	folioRepo      *repository.FolioRepository
	paymentRepo    *repository.PaymentRepository
	tourRepo       *repository.TourRepository
	codeService    *CodeService
	pricingService *PricingService
	cfg            *config.HotelConfig
	smsSender      sms.Sender
	now            func() time.Time
}

// NewBookingService 创建预订服务
func NewBookingService(
	db *gorm.DB,
	bookingRepo *repository.BookingRepository,
	roomRepo *repository.RoomRepository,
	guestRepo *repository.GuestRepository,
	folioRepo *repository.FolioRepository,
	paymentRepo *repository.PaymentRepository,
	tourRepo *repository.TourRepository,
	codeService *CodeService,
	pricingService *PricingService,
	cfg *config.HotelConfig,
	smsSender sms.Sender,
) *BookingService {
	return &BookingService{
		db:             db,
		bookingRepo:    bookingRepo,
		roomRepo:       roomRepo,
		guestRepo:      guestRepo,
		folioRepo:      folioRepo,
		paymentRepo:    paymentRepo,
		tourRepo:       tourRepo,
		codeService:    codeService,
		pricingService: pricingService,
		cfg:            cfg,
		smsSender:      smsSender,
		now:            time.Now,
	}
}

// CreateBookingRequest 创建预订请求
type CreateBookingRequest struct {
	GuestName       string  `json:"guest_name" binding:"required,max=100"`
	GuestEmail      string  `json:"guest_email" binding:"required,email"`
	GuestPhone      string  `json:"guest_phone" binding:"omitempty,max=20"`
	RoomType        string  `json:"room_type" binding:"required"`
	CheckIn         string  `json:"check_in" binding:"required"`
	CheckOut        string  `json:"check_out" binding:"required"`
	Adults          int     `json:"adults" binding:"required,min=1"`
	Children        int     `json:"children" binding:"omitempty,min=0"`
	ETA             string  `json:"eta" binding:"omitempty,max=20"`
	MealBreakfast   bool    `json:"meal_breakfast"`
	MealLunch       bool    `json:"meal_lunch"`
	MealDinner      bool    `json:"meal_dinner"`
	AirportPickup   bool    `json:"airport_pickup"`
	PickupTime      string  `json:"pickup_time" binding:"omitempty,max=20"`
	TourIDs         []int64 `json:"tour_ids"`
	SpecialRequests string  `json:"special_requests" binding:"omitempty,max=2000"`
	BookingSource   string  `json:"booking_source" binding:"omitempty,oneof=direct booking.com agoda expedia phone"`
}

// WalkInRequest 上门散客创建请求
// 前台可指定初始状态，默认 confirmed
type WalkInRequest struct {
	CreateBookingRequest
	InitialStatus string `json:"initial_status" binding:"omitempty,oneof=pending confirmed"`
}

// AssignRoomRequest 分配房间请求（入住第一步）
type AssignRoomRequest struct {
	RoomID       int64 `json:"room_id" binding:"required"`
	EarlyCheckIn bool  `json:"early_check_in"`
}

// VerifyRequest 核验请求（入住第二步）
// 指针字段允许分步补录，nil 表示不修改
type VerifyRequest struct {
	IDVerified       *bool  `json:"id_verified"`
	PaymentConfirmed *bool  `json:"payment_confirmed"`
	Notes            string `json:"notes" binding:"omitempty,max=255"`
}

// CancelRequest 取消预订请求
type CancelRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=255"`
}

// CheckOutRequest 退房请求
type CheckOutRequest struct {
	AcceptLateFee   bool    `json:"accept_late_fee"`
	PaymentAmount   float64 `json:"payment_amount" binding:"omitempty,min=0"`
	PaymentMethod   string  `json:"payment_method" binding:"omitempty,oneof=cash card transfer ota"`
	PaymentReceived bool    `json:"payment_received"`
}

// ListBookingsRequest 预订列表查询
type ListBookingsRequest struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	Status    string `form:"status" binding:"omitempty,oneof=pending confirmed checked-in checked-out cancelled no-show"`
	Source    string `form:"source"`
	Search    string `form:"search" binding:"omitempty,max=100"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// BookingInfo 预订信息
type BookingInfo struct {
	ID               int64      `json:"id"`
	ConfirmationCode string     `json:"confirmation_code"`
	GuestName        string     `json:"guest_name"`
	GuestEmail       string     `json:"guest_email"`
	GuestPhone       string     `json:"guest_phone,omitempty"`
	RoomType         string     `json:"room_type"`
	AssignedRoomID   *int64     `json:"assigned_room_id,omitempty"`
	AssignedRoomNo   string     `json:"assigned_room_no,omitempty"`
	CheckIn          string     `json:"check_in"`
	CheckOut         string     `json:"check_out"`
	ETA              string     `json:"eta,omitempty"`
	CheckInTime      *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime     *time.Time `json:"check_out_time,omitempty"`
	Status           string     `json:"status"`
	StatusName       string     `json:"status_name"`
	Adults           int        `json:"adults"`
	Children         int        `json:"children"`
	Nights           int        `json:"nights"`
	TotalAmount      float64    `json:"total_amount"`
	PaymentStatus    string     `json:"payment_status"`
	PaymentConfirmed bool       `json:"payment_confirmed"`
	IDVerified       bool       `json:"id_verified"`
	EarlyCheckIn     bool       `json:"early_check_in"`
	BookingSource    string     `json:"booking_source"`
	AirportPickup    bool       `json:"airport_pickup"`
	PickupTime       string     `json:"pickup_time,omitempty"`
	MealBreakfast    bool       `json:"meal_breakfast"`
	MealLunch        bool       `json:"meal_lunch"`
	MealDinner       bool       `json:"meal_dinner"`
	SpecialRequests  string     `json:"special_requests,omitempty"`
	CancelReason     string     `json:"cancel_reason,omitempty"`
	VerifyNotes      string     `json:"verify_notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// BookingDetail 预订详情（含账务汇总）
type BookingDetail struct {
	*BookingInfo
	FolioTotal float64 `json:"folio_total"`
	PaidTotal  float64 `json:"paid_total"`
	BalanceDue float64 `json:"balance_due"`
}

// CreateBooking 创建预订（官网/OTA 渠道）
func (s *BookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingInfo, error) {
	return s.create(ctx, req, models.BookingStatusPending, firstNonEmpty(req.BookingSource, models.BookingSourceDirect))
}

// CreateWalkIn 前台创建上门散客预订
func (s *BookingService) CreateWalkIn(ctx context.Context, staffID int64, req *WalkInRequest) (*BookingInfo, error) {
	status := req.InitialStatus
	if status == "" {
		status = models.BookingStatusConfirmed
	}
	return s.create(ctx, &req.CreateBookingRequest, status, models.BookingSourceWalkIn)
}

// create 创建预订的公共流程
func (s *BookingService) create(ctx context.Context, req *CreateBookingRequest, status, source string) (*BookingInfo, error) {
	// 1. 校验日期区间
	checkIn, checkOut, err := parseStayDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if req.GuestPhone != "" && !utils.ValidatePhone(req.GuestPhone) {
		return nil, errors.ErrPhoneInvalid
	}
	guests := req.Adults + req.Children

	// 2. 检查所选房型在日期范围内有空房
	overlapping, err := s.bookingRepo.OverlappingRoomIDs(ctx, checkIn, checkOut)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	candidates, err := s.roomRepo.ListByTypeAndCapacity(ctx, req.RoomType, guests, overlapping)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if len(candidates) == 0 {
		return nil, errors.ErrNoAvailableRoom
	}

	// 3. 加载所选跟团游套餐
	tours, err := s.loadTours(ctx, req.TourIDs)
	if err != nil {
		return nil, err
	}

	// 4. 服务端计算并锁定总价
	quote := s.pricingService.Calculate(&QuoteInput{
		RoomRate:      candidates[0].Price,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        guests,
		MealBreakfast: req.MealBreakfast,
		MealLunch:     req.MealLunch,
		MealDinner:    req.MealDinner,
		AirportPickup: req.AirportPickup,
		Tours:         tours,
	})

	// 5. 生成唯一确认码
	code, err := s.codeService.GenerateUniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	// 6. 按邮箱关联或创建客人档案
	guestID, err := s.upsertGuest(ctx, req)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ConfirmationCode: code,
		GuestID:          guestID,
		GuestName:        req.GuestName,
		GuestEmail:       req.GuestEmail,
		RoomType:         req.RoomType,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Status:           status,
		Adults:           req.Adults,
		Children:         req.Children,
		TotalAmount:      quote.Total,
		PaymentStatus:    models.PaymentStatusUnpaid,
		BookingSource:    source,
		AirportPickup:    req.AirportPickup,
		MealBreakfast:    req.MealBreakfast,
		MealLunch:        req.MealLunch,
		MealDinner:       req.MealDinner,
	}
	if req.GuestPhone != "" {
		booking.GuestPhone = utils.StringPtr(req.GuestPhone)
	}
	if req.ETA != "" {
		booking.ETA = utils.StringPtr(req.ETA)
	}
	if req.PickupTime != "" {
		booking.PickupTime = utils.StringPtr(req.PickupTime)
	}
	if req.SpecialRequests != "" {
		booking.SpecialRequests = utils.StringPtr(req.SpecialRequests)
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.RecordBookingGlobal(source)
	logger.Info("预订创建成功",
		logger.BookingID(booking.ID),
		logger.ConfirmationCode(code),
	)

	// 7. 发送确认短信（尽力而为，失败不影响预订）
	if s.smsSender != nil && req.GuestPhone != "" {
		if err := sms.SendBookingConfirm(ctx, s.smsSender, req.GuestPhone, code, checkIn); err != nil {
			logger.Warn("确认短信发送失败", logger.ConfirmationCode(code), logger.Err(err))
		}
	}

	return s.convertBookingInfo(booking), nil
}

// GetBookingByID 根据ID获取预订详情
func (s *BookingService) GetBookingByID(ctx context.Context, id int64) (*BookingDetail, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.buildDetail(ctx, booking)
}

// GetBookingByCodeAndEmail 客人凭确认码+邮箱查询自己的预订
func (s *BookingService) GetBookingByCodeAndEmail(ctx context.Context, code, email string) (*BookingDetail, error) {
	if !utils.ValidateConfirmationCode(code) {
		return nil, errors.ErrConfirmationNotFound
	}
	booking, err := s.bookingRepo.GetByCodeAndEmail(ctx, code, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrConfirmationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.buildDetail(ctx, booking)
}

// GetBookingByCode 前台凭确认码查询预订（扫码或客人报码）
func (s *BookingService) GetBookingByCode(ctx context.Context, code string) (*BookingDetail, error) {
	booking, err := s.bookingRepo.GetByConfirmationCode(ctx, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrConfirmationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.buildDetail(ctx, booking)
}

// ListBookings 前台预订列表
func (s *BookingService) ListBookings(ctx context.Context, req *ListBookingsRequest) ([]*BookingInfo, int64, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	filters := map[string]interface{}{}
	if req.Status != "" {
		filters["status"] = req.Status
	}
	if req.Source != "" {
		filters["booking_source"] = req.Source
	}
	if req.Search != "" {
		filters["search"] = req.Search
	}
	if req.StartDate != "" {
		if d, err := time.Parse(dateLayout, req.StartDate); err == nil {
			filters["start_date"] = d
		}
	}
	if req.EndDate != "" {
		if d, err := time.Parse(dateLayout, req.EndDate); err == nil {
			filters["end_date"] = d
		}
	}

	bookings, total, err := s.bookingRepo.List(ctx, (page-1)*pageSize, pageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*BookingInfo, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, s.convertBookingInfo(b))
	}
	return result, total, nil
}

// ConfirmBooking 确认预订 pending -> confirmed
func (s *BookingService) ConfirmBooking(ctx context.Context, id int64) (*BookingInfo, error) {
	ok, err := s.bookingRepo.TransitionStatus(ctx, id, models.BookingStatusPending, models.BookingStatusConfirmed, nil)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if !ok {
		return nil, s.transitionConflict(ctx, id, models.BookingStatusPending)
	}
	metrics.RecordTransitionGlobal(models.BookingStatusPending, models.BookingStatusConfirmed)
	return s.reload(ctx, id)
}

// CancelBooking 取消预订 pending|confirmed -> cancelled
// 已分配的房间释放回可用状态
func (s *BookingService) CancelBooking(ctx context.Context, id int64, req *CancelRequest) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
		return nil, errors.ErrBookingCannotCancel
	}

	extra := map[string]interface{}{}
	if req != nil && req.Reason != "" {
		extra["cancel_reason"] = req.Reason
	}

	fromStatus := booking.Status
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.bookingRepo.TransitionStatusTx(ctx, tx, id, fromStatus, models.BookingStatusCancelled, extra)
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrBookingCannotCancel
		}
		return s.releaseAssignedRoomTx(ctx, tx, booking)
	})
	if err != nil {
		if appErr, isApp := err.(*errors.AppError); isApp {
			return nil, appErr
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.RecordTransitionGlobal(fromStatus, models.BookingStatusCancelled)
	logger.Info("预订已取消", logger.BookingID(id))
	return s.reload(ctx, id)
}

// AssignRoom 入住第一步：分配房间
// 可重复调用以改派，旧房间释放回可用状态
func (s *BookingService) AssignRoom(ctx context.Context, staffID, bookingID int64, req *AssignRoomRequest) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, errors.ErrBookingStatusError.WithMessage("仅已确认的预订可以排房")
	}

	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 1. 房型必须与预订一致
	if room.Type != booking.RoomType {
		return nil, errors.ErrRoomTypeMismatch
	}
	// 2. 容量必须容纳整个入住人数
	if room.Capacity < booking.PartySize() {
		return nil, errors.ErrRoomCapacityExceed
	}
	// 3. 房间当前必须可用
	switch room.Status {
	case models.RoomStatusAvailable:
	case models.RoomStatusMaintenance:
		return nil, errors.ErrRoomMaintenance
	case models.RoomStatusOccupied:
		return nil, errors.ErrRoomOccupied
	default:
		return nil, errors.ErrRoomNotAvailable
	}

	// 4. redis 互斥锁防止两个工位同时给同一房间排房
	locked, err := cache.AcquireRoomLock(ctx, room.ID, roomLockTTL)
	if err != nil {
		return nil, errors.ErrCacheError.WithError(err)
	}
	if !locked {
		return nil, errors.ErrRoomAssignConflict
	}
	defer func() {
		_ = cache.ReleaseRoomLock(ctx, room.ID)
	}()

	// 5. 日期范围内不得已有其他预订占用该房间
	overlap, err := s.bookingRepo.CountRoomOverlap(ctx, room.ID, booking.ID, booking.CheckIn, booking.CheckOut)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if overlap > 0 {
		return nil, errors.ErrRoomAssignConflict
	}

	oldRoomID := booking.AssignedRoomID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 条件更新占用新房间，状态已变则说明并发冲突
		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, models.RoomStatusAvailable).
			Update("status", models.RoomStatusReserved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.ErrRoomAssignConflict
		}

		// 改派时释放旧房间
		if oldRoomID != nil && *oldRoomID != room.ID {
			if err := tx.Model(&models.Room{}).
				Where("id = ? AND status = ?", *oldRoomID, models.RoomStatusReserved).
				Update("status", models.RoomStatusAvailable).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"assigned_room_id": room.ID,
				"assigned_room_no": room.RoomNo,
				"early_check_in":   req.EarlyCheckIn,
			}).Error
	})
	if err != nil {
		if appErr, isApp := err.(*errors.AppError); isApp {
			return nil, appErr
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("房间分配成功",
		logger.BookingID(booking.ID),
		logger.RoomNo(room.RoomNo),
		logger.StaffID(staffID),
	)
	return s.reload(ctx, bookingID)
}

// VerifyBooking 入住第二步：证件核验与付款确认
// 两步可独立重试，nil 字段保持原值
func (s *BookingService) VerifyBooking(ctx context.Context, staffID, bookingID int64, req *VerifyRequest) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, errors.ErrBookingStatusError.WithMessage("仅已确认的预订可以核验")
	}

	fields := map[string]interface{}{}
	if req.IDVerified != nil {
		fields["id_verified"] = *req.IDVerified
	}
	if req.PaymentConfirmed != nil {
		fields["payment_confirmed"] = *req.PaymentConfirmed
	}
	// 线上已付全款的预订自动视为付款已确认
	if booking.PaymentStatus == models.PaymentStatusPaid {
		fields["payment_confirmed"] = true
	}
	if req.Notes != "" {
		fields["verify_notes"] = req.Notes
	}
	if len(fields) == 0 {
		return s.reload(ctx, bookingID)
	}

	if err := s.bookingRepo.UpdateFields(ctx, bookingID, fields); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("预订核验更新", logger.BookingID(bookingID), logger.StaffID(staffID))
	return s.reload(ctx, bookingID)
}

// CheckIn 办理入住 confirmed -> checked-in
// 前置条件：已分配房间、付款已确认、证件已核验
func (s *BookingService) CheckIn(ctx context.Context, staffID, bookingID int64) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if booking.Status != models.BookingStatusConfirmed {
		return nil, errors.ErrBookingStatusError.WithMessage("仅已确认的预订可以办理入住")
	}
	if booking.AssignedRoomID == nil {
		return nil, errors.ErrRoomNotAssigned
	}
	if !booking.IDVerified {
		return nil, errors.ErrIDNotVerified
	}
	if !booking.PaymentConfirmed {
		return nil, errors.ErrPaymentNotConfirmed
	}

	now := s.now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.bookingRepo.TransitionStatusTx(ctx, tx, bookingID,
			models.BookingStatusConfirmed, models.BookingStatusCheckedIn,
			map[string]interface{}{"check_in_time": now})
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrBookingStatusError
		}
		return tx.Model(&models.Room{}).
			Where("id = ?", *booking.AssignedRoomID).
			Update("status", models.RoomStatusOccupied).Error
	})
	if err != nil {
		if appErr, isApp := err.(*errors.AppError); isApp {
			return nil, appErr
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.RecordTransitionGlobal(models.BookingStatusConfirmed, models.BookingStatusCheckedIn)
	logger.Info("办理入住完成", logger.BookingID(bookingID), logger.StaffID(staffID))
	return s.reload(ctx, bookingID)
}

// CheckOut 办理退房 checked-in -> checked-out
// 结账闸门：余额大于零时必须随请求收款或确认已收款
func (s *BookingService) CheckOut(ctx context.Context, staffID, bookingID int64, req *CheckOutRequest) (*BookingDetail, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if booking.Status != models.BookingStatusCheckedIn {
		return nil, errors.ErrBookingStatusError.WithMessage("仅已入住的预订可以退房")
	}

	now := s.now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 超过退房时限且前台确认时追加延迟退房费
		if req.AcceptLateFee && now.Hour() >= s.cfg.LateCheckoutHour {
			item := &models.FolioItem{
				ItemNo:      utils.GenerateFolioItemNo(),
				BookingID:   bookingID,
				ChargeType:  models.ChargeTypeLateCheckout,
				Description: "延迟退房费",
				Amount:      s.cfg.LateCheckoutFee,
				Quantity:    1,
				CreatedBy:   staffID,
			}
			if err := s.folioRepo.CreateTx(ctx, tx, item); err != nil {
				return err
			}
		}

		// 2. 计算应付余额
		folioTotal, err := s.folioRepo.SumByBookingTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		paidTotal, err := s.paymentRepo.SumByBookingTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		balance := utils.Round2(booking.TotalAmount + folioTotal - paidTotal)

		// 3. 余额未结清时必须随单收款
		if balance > 0 {
			switch {
			case req.PaymentAmount > 0:
				if req.PaymentMethod == "" {
					return errors.ErrPaymentInvalid.WithMessage("收款方式不能为空")
				}
				if req.PaymentAmount > balance {
					return errors.ErrPaymentExceed
				}
				if req.PaymentAmount < balance {
					return errors.ErrBalanceOutstanding
				}
			case req.PaymentReceived:
				// 前台确认款项已另行收讫，按余额入账
				req.PaymentAmount = balance
				if req.PaymentMethod == "" {
					req.PaymentMethod = models.PaymentMethodCash
				}
			default:
				return errors.ErrBalanceOutstanding
			}

			payment := &models.Payment{
				BookingID:  bookingID,
				Amount:     req.PaymentAmount,
				Method:     req.PaymentMethod,
				RecordedBy: staffID,
			}
			if err := s.paymentRepo.CreateTx(ctx, tx, payment); err != nil {
				return err
			}
			metrics.RecordPaymentGlobal(req.PaymentMethod)
		}

		// 4. 状态流转并释放房间
		ok, err := s.bookingRepo.TransitionStatusTx(ctx, tx, bookingID,
			models.BookingStatusCheckedIn, models.BookingStatusCheckedOut,
			map[string]interface{}{
				"check_out_time": now,
				"payment_status": models.PaymentStatusPaid,
			})
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrBookingStatusError
		}
		if booking.AssignedRoomID != nil {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *booking.AssignedRoomID).
				Update("status", models.RoomStatusAvailable).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if appErr, isApp := err.(*errors.AppError); isApp {
			return nil, appErr
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.RecordTransitionGlobal(models.BookingStatusCheckedIn, models.BookingStatusCheckedOut)
	logger.Info("退房完成", logger.BookingID(bookingID), logger.StaffID(staffID))
	return s.GetBookingByID(ctx, bookingID)
}

// MarkNoShow 标记未到店 confirmed -> no-show
func (s *BookingService) MarkNoShow(ctx context.Context, bookingID int64) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if err := s.markNoShow(ctx, booking); err != nil {
		return nil, err
	}
	return s.reload(ctx, bookingID)
}

// MarkNoShows 定时任务：入住日整天过完再过宽限期仍未入住的已确认预订标记未到店
// check_in 是按天锚定的日期，宽限期从入住日次日零点起算
func (s *BookingService) MarkNoShows(ctx context.Context) error {
	grace := time.Duration(s.cfg.NoShowGraceHours) * time.Hour
	deadline := s.now().Add(-grace - 24*time.Hour)

	bookings, err := s.bookingRepo.ListConfirmedBefore(ctx, deadline, 100)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	for _, booking := range bookings {
		if err := s.markNoShow(ctx, booking); err != nil {
			logger.Warn("标记未到店失败", logger.BookingID(booking.ID), logger.Err(err))
		}
	}
	return nil
}

// markNoShow 标记单个预订未到店并释放房间
func (s *BookingService) markNoShow(ctx context.Context, booking *models.Booking) error {
	if booking.Status != models.BookingStatusConfirmed {
		return errors.ErrBookingStatusError.WithMessage("仅已确认的预订可以标记未到店")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.bookingRepo.TransitionStatusTx(ctx, tx, booking.ID,
			models.BookingStatusConfirmed, models.BookingStatusNoShow, nil)
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrBookingStatusError
		}
		return s.releaseAssignedRoomTx(ctx, tx, booking)
	})
	if err != nil {
		if appErr, isApp := err.(*errors.AppError); isApp {
			return appErr
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	metrics.RecordTransitionGlobal(models.BookingStatusConfirmed, models.BookingStatusNoShow)
	logger.Info("预订标记未到店", logger.BookingID(booking.ID))
	return nil
}

// releaseAssignedRoomTx 释放已分配但尚未入住的房间
func (s *BookingService) releaseAssignedRoomTx(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if booking.AssignedRoomID == nil {
		return nil
	}
	return tx.Model(&models.Room{}).
		Where("id = ? AND status = ?", *booking.AssignedRoomID, models.RoomStatusReserved).
		Update("status", models.RoomStatusAvailable).Error
}

// loadTours 加载并校验跟团游套餐
func (s *BookingService) loadTours(ctx context.Context, ids []int64) ([]*models.TourPackage, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tours, err := s.tourRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if len(tours) != len(ids) {
		return nil, errors.ErrTourNotFound
	}
	for _, tour := range tours {
		if !tour.Active {
			return nil, errors.ErrTourDisabled
		}
	}
	return tours, nil
}

// upsertGuest 按邮箱复用或创建客人档案
func (s *BookingService) upsertGuest(ctx context.Context, req *CreateBookingRequest) (*int64, error) {
	guest, err := s.guestRepo.GetByEmail(ctx, req.GuestEmail)
	if err == nil {
		return &guest.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	guest = &models.Guest{
		Name:  req.GuestName,
		Email: req.GuestEmail,
	}
	if req.GuestPhone != "" {
		guest.Phone = utils.StringPtr(req.GuestPhone)
	}
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return &guest.ID, nil
}

// reload 重新加载并转换预订
func (s *BookingService) reload(ctx context.Context, id int64) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.convertBookingInfo(booking), nil
}

// buildDetail 组装含账务汇总的详情
func (s *BookingService) buildDetail(ctx context.Context, booking *models.Booking) (*BookingDetail, error) {
	folioTotal, err := s.folioRepo.SumByBooking(ctx, booking.ID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	paidTotal, err := s.paymentRepo.SumByBooking(ctx, booking.ID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	balance := utils.Round2(booking.TotalAmount + folioTotal - paidTotal)
	if balance < 0 {
		balance = 0
	}
	return &BookingDetail{
		BookingInfo: s.convertBookingInfo(booking),
		FolioTotal:  utils.Round2(folioTotal),
		PaidTotal:   utils.Round2(paidTotal),
		BalanceDue:  balance,
	}, nil
}

// transitionConflict 状态流转失败时给出准确错误
func (s *BookingService) transitionConflict(ctx context.Context, id int64, expected string) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBookingNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return errors.ErrBookingStatusError.WithMessage(
		"预订当前状态为 " + booking.Status + "，无法从 " + expected + " 流转")
}

// convertBookingInfo 转换预订信息
func (s *BookingService) convertBookingInfo(booking *models.Booking) *BookingInfo {
	info := &BookingInfo{
		ID:               booking.ID,
		ConfirmationCode: booking.ConfirmationCode,
		GuestName:        booking.GuestName,
		GuestEmail:       booking.GuestEmail,
		GuestPhone:       utils.SafeString(booking.GuestPhone),
		RoomType:         booking.RoomType,
		AssignedRoomID:   booking.AssignedRoomID,
		AssignedRoomNo:   utils.SafeString(booking.AssignedRoomNo),
		CheckIn:          booking.CheckIn.Format(dateLayout),
		CheckOut:         booking.CheckOut.Format(dateLayout),
		ETA:              utils.SafeString(booking.ETA),
		CheckInTime:      booking.CheckInTime,
		CheckOutTime:     booking.CheckOutTime,
		Status:           booking.Status,
		StatusName:       statusName(booking.Status),
		Adults:           booking.Adults,
		Children:         booking.Children,
		Nights:           utils.Nights(booking.CheckIn, booking.CheckOut),
		TotalAmount:      booking.TotalAmount,
		PaymentStatus:    booking.PaymentStatus,
		PaymentConfirmed: booking.PaymentConfirmed,
		IDVerified:       booking.IDVerified,
		EarlyCheckIn:     booking.EarlyCheckIn,
		BookingSource:    booking.BookingSource,
		AirportPickup:    booking.AirportPickup,
		PickupTime:       utils.SafeString(booking.PickupTime),
		MealBreakfast:    booking.MealBreakfast,
		MealLunch:        booking.MealLunch,
		MealDinner:       booking.MealDinner,
		SpecialRequests:  utils.SafeString(booking.SpecialRequests),
		CancelReason:     utils.SafeString(booking.CancelReason),
		VerifyNotes:      utils.SafeString(booking.VerifyNotes),
		CreatedAt:        booking.CreatedAt,
	}
	return info
}

// statusName 状态中文名
func statusName(status string) string {
	switch status {
	case models.BookingStatusPending:
		return "待确认"
	case models.BookingStatusConfirmed:
		return "已确认"
	case models.BookingStatusCheckedIn:
		return "已入住"
	case models.BookingStatusCheckedOut:
		return "已退房"
	case models.BookingStatusCancelled:
		return "已取消"
	case models.BookingStatusNoShow:
		return "未到店"
	default:
		return "未知"
	}
}

// parseStayDates 解析并校验入住/退房日期
func parseStayDates(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(dateLayout, checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.ErrInvalidParams.WithMessage("入住日期格式错误")
	}
	checkOut, err := time.Parse(dateLayout, checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.ErrInvalidParams.WithMessage("退房日期格式错误")
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, errors.ErrDateRangeInvalid
	}
	return checkIn, checkOut, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
