// Package frontdesk 提供值班台汇总服务
package frontdesk

import (
	"context"
	"time"

	"github.com/santaluna/hotel-backend/internal/common/errors"
	"github.com/santaluna/hotel-backend/internal/common/metrics"
	"github.com/santaluna/hotel-backend/internal/common/utils"
	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
)

// DashboardService 值班台汇总服务
type DashboardService struct {
	bookingRepo *repository.BookingRepository
	roomRepo    *repository.RoomRepository
	paymentRepo *repository.PaymentRepository
}

// NewDashboardService 创建值班台汇总服务
func NewDashboardService(
	bookingRepo *repository.BookingRepository,
	roomRepo *repository.RoomRepository,
	paymentRepo *repository.PaymentRepository,
) *DashboardService {
	return &DashboardService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		paymentRepo: paymentRepo,
	}
}

// DashboardStats 值班台统计
type DashboardStats struct {
	Date            string           `json:"date"`
	ArrivalsToday   int64            `json:"arrivals_today"`
	DeparturesToday int64            `json:"departures_today"`
	InHouse         int64            `json:"in_house"`
	PendingBookings int64            `json:"pending_bookings"`
	RevenueToday    float64          `json:"revenue_today"`
	OccupancyRate   float64          `json:"occupancy_rate"`
	RoomStatus      map[string]int64 `json:"room_status"`
	BookingStatus   map[string]int64 `json:"booking_status"`
}

// GetStats 运营总览，date 为空时统计当日
func (s *DashboardService) GetStats(ctx context.Context, date *time.Time) (*DashboardStats, error) {
	now := time.Now()
	if date != nil {
		now = *date
	}

	arrivals, err := s.bookingRepo.CountArrivals(ctx, now)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	departures, err := s.bookingRepo.CountDepartures(ctx, now)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	bookingCounts, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	roomCounts, err := s.roomRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	revenue, err := s.paymentRepo.SumByDate(ctx, now)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	var totalRooms int64
	for _, count := range roomCounts {
		totalRooms += count
	}
	occupied := roomCounts[models.RoomStatusOccupied]
	var occupancy float64
	if totalRooms > 0 {
		occupancy = utils.Round2(float64(occupied) / float64(totalRooms))
	}

	m := metrics.GetMetrics()
	m.SetOccupiedRooms(float64(occupied))
	m.SetArrivalsToday(float64(arrivals))
	m.SetDeparturesToday(float64(departures))

	return &DashboardStats{
		Date:            now.Format("2006-01-02"),
		ArrivalsToday:   arrivals,
		DeparturesToday: departures,
		InHouse:         bookingCounts[models.BookingStatusCheckedIn],
		PendingBookings: bookingCounts[models.BookingStatusPending],
		RevenueToday:    utils.Round2(revenue),
		OccupancyRate:   occupancy,
		RoomStatus:      roomCounts,
		BookingStatus:   bookingCounts,
	}, nil
}
