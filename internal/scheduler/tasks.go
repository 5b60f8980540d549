package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
	bookingService "github.com/santaluna/hotel-backend/internal/service/booking"
)

// TaskHandler 后台任务处理器
type TaskHandler struct {
	db             *gorm.DB
	bookingRepo    *repository.BookingRepository
	roomRepo       *repository.RoomRepository
	bookingService *bookingService.BookingService
	logger         *zap.Logger
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(
	db *gorm.DB,
	bookingRepo *repository.BookingRepository,
	roomRepo *repository.RoomRepository,
	bookingSvc *bookingService.BookingService,
	logger *zap.Logger,
) *TaskHandler {
	return &TaskHandler{
		db:             db,
		bookingRepo:    bookingRepo,
		roomRepo:       roomRepo,
		bookingService: bookingSvc,
		logger:         logger,
	}
}

// MarkNoShowBookings 把超过宽限期仍未入住的已确认预订标记为未到店
func (h *TaskHandler) MarkNoShowBookings(ctx context.Context) error {
	return h.bookingService.MarkNoShows(ctx)
}

// ReleaseOrphanedRooms 回收没有活跃预订占用的已排房房间
// 排房后预订被标记未到店或异常中断时,房间可能停在 reserved 状态
func (h *TaskHandler) ReleaseOrphanedRooms(ctx context.Context) error {
	rooms, err := h.roomRepo.ListReservedWithoutActiveBooking(ctx)
	if err != nil {
		return err
	}

	if len(rooms) == 0 {
		return nil
	}

	h.logger.Info("发现待回收房间", zap.Int("count", len(rooms)))

	for _, room := range rooms {
		ok, err := h.roomRepo.TransitionStatus(ctx, room.ID, models.RoomStatusReserved, models.RoomStatusAvailable)
		if err != nil {
			h.logger.Error("回收房间失败",
				zap.Int64("room_id", room.ID),
				zap.Error(err))
			continue
		}
		if ok {
			h.logger.Info("房间已回收",
				zap.Int64("room_id", room.ID),
				zap.String("room_no", room.RoomNo))
		}
	}

	return nil
}

// CancelStalePendingBookings 取消入住日已过仍未确认的预订
func (h *TaskHandler) CancelStalePendingBookings(ctx context.Context) error {
	var bookings []*models.Booking
	today := time.Now().Truncate(24 * time.Hour)

	err := h.db.WithContext(ctx).
		Where("status = ?", models.BookingStatusPending).
		Where("check_in < ?", today).
		Limit(100).
		Find(&bookings).Error
	if err != nil {
		return err
	}

	if len(bookings) == 0 {
		return nil
	}

	h.logger.Info("发现过期待确认预订", zap.Int("count", len(bookings)))

	for _, b := range bookings {
		_, err := h.bookingRepo.TransitionStatus(ctx, b.ID,
			models.BookingStatusPending, models.BookingStatusCancelled,
			map[string]interface{}{"cancel_reason": "入住日已过未确认,系统自动取消"})
		if err != nil {
			h.logger.Error("自动取消预订失败",
				zap.Int64("booking_id", b.ID),
				zap.Error(err))
		}
	}

	return nil
}

// SetupTasks 注册所有后台任务
func SetupTasks(s *Scheduler, handler *TaskHandler) {
	// 每十分钟扫一次未到店
	s.AddTask("MarkNoShowBookings", 10*time.Minute, handler.MarkNoShowBookings)

	// 每十分钟回收孤儿房间
	s.AddTask("ReleaseOrphanedRooms", 10*time.Minute, handler.ReleaseOrphanedRooms)

	// 每小时清理过期待确认预订
	s.AddTask("CancelStalePendingBookings", time.Hour, handler.CancelStalePendingBookings)
}
