package frontdesk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
)

func setupDashboard(t *testing.T) (*DashboardService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Booking{}, &models.Room{}, &models.Payment{}))

	svc := NewDashboardService(
		repository.NewBookingRepository(db),
		repository.NewRoomRepository(db),
		repository.NewPaymentRepository(db),
	)
	return svc, db
}

func seedDashBooking(t *testing.T, db *gorm.DB, code, status string, checkIn, checkOut time.Time) {
	require.NoError(t, db.Create(&models.Booking{
		ConfirmationCode: code,
		GuestName:        "张伟",
		GuestEmail:       "zhangwei@example.com",
		RoomType:         models.RoomTypeStandard,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Status:           status,
		Adults:           2,
		TotalAmount:      7056,
	}).Error)
}

func TestGetStats(t *testing.T) {
	svc, db := setupDashboard(t)
	ctx := context.Background()
	today := time.Now()

	// 今日到店 1、今日离店 1、在住 1、待确认 1
	seedDashBooking(t, db, "SAN-DASH22", models.BookingStatusConfirmed, today, today.AddDate(0, 0, 3))
	seedDashBooking(t, db, "SAN-DASH23", models.BookingStatusCheckedIn, today.AddDate(0, 0, -2), today)
	seedDashBooking(t, db, "SAN-DASH24", models.BookingStatusPending, today.AddDate(0, 0, 5), today.AddDate(0, 0, 8))

	// 房间：1 间在住 / 共 2 间
	require.NoError(t, db.Create(&models.Room{RoomNo: "201", Type: models.RoomTypeStandard, Price: 800, Capacity: 2, Status: models.RoomStatusOccupied}).Error)
	require.NoError(t, db.Create(&models.Room{RoomNo: "202", Type: models.RoomTypeStandard, Price: 800, Capacity: 2, Status: models.RoomStatusAvailable}).Error)

	// 今日收款
	require.NoError(t, db.Create(&models.Payment{BookingID: 2, Amount: 7056, Method: models.PaymentMethodCash, RecordedBy: 1}).Error)

	stats, err := svc.GetStats(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ArrivalsToday)
	assert.Equal(t, int64(1), stats.DeparturesToday)
	assert.Equal(t, int64(1), stats.InHouse)
	assert.Equal(t, int64(1), stats.PendingBookings)
	assert.Equal(t, 7056.0, stats.RevenueToday)
	assert.Equal(t, 0.5, stats.OccupancyRate)
	assert.Equal(t, int64(1), stats.RoomStatus[models.RoomStatusOccupied])

	// 指定历史日期时按该日统计到离店
	yesterday := today.AddDate(0, 0, -1)
	stats, err = svc.GetStats(ctx, &yesterday)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.ArrivalsToday)
	assert.Equal(t, int64(0), stats.DeparturesToday)
	assert.Equal(t, yesterday.Format("2006-01-02"), stats.Date)
}

func TestGetStats_Empty(t *testing.T) {
	svc, _ := setupDashboard(t)
	stats, err := svc.GetStats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.ArrivalsToday)
	assert.Equal(t, 0.0, stats.OccupancyRate)
	assert.Equal(t, 0.0, stats.RevenueToday)
}
