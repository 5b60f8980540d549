package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
)

func setupTaskHandler(t *testing.T) (*TaskHandler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Booking{}, &models.Room{}))

	handler := NewTaskHandler(
		db,
		repository.NewBookingRepository(db),
		repository.NewRoomRepository(db),
		nil,
		zap.NewNop(),
	)
	return handler, db
}

func TestReleaseOrphanedRooms(t *testing.T) {
	handler, db := setupTaskHandler(t)
	ctx := context.Background()

	orphan := &models.Room{RoomNo: "101", Type: "standard", Capacity: 2, Price: 800, Status: models.RoomStatusReserved}
	held := &models.Room{RoomNo: "102", Type: "standard", Capacity: 2, Price: 800, Status: models.RoomStatusReserved}
	occupied := &models.Room{RoomNo: "103", Type: "standard", Capacity: 2, Price: 800, Status: models.RoomStatusOccupied}
	require.NoError(t, db.Create(orphan).Error)
	require.NoError(t, db.Create(held).Error)
	require.NoError(t, db.Create(occupied).Error)

	// 102 仍被一个已确认预订占着,不能回收
	require.NoError(t, db.Create(&models.Booking{
		ConfirmationCode: "SAN-AAAAAA",
		GuestName:        "张伟",
		GuestEmail:       "zhangwei@example.com",
		RoomType:         "standard",
		AssignedRoomID:   &held.ID,
		CheckIn:          time.Now().AddDate(0, 0, 1),
		CheckOut:         time.Now().AddDate(0, 0, 3),
		Status:           models.BookingStatusConfirmed,
		Adults:           2,
		TotalAmount:      1792,
	}).Error)

	require.NoError(t, handler.ReleaseOrphanedRooms(ctx))

	var r1, r2, r3 models.Room
	require.NoError(t, db.First(&r1, orphan.ID).Error)
	require.NoError(t, db.First(&r2, held.ID).Error)
	require.NoError(t, db.First(&r3, occupied.ID).Error)
	assert.Equal(t, models.RoomStatusAvailable, r1.Status)
	assert.Equal(t, models.RoomStatusReserved, r2.Status)
	assert.Equal(t, models.RoomStatusOccupied, r3.Status)
}

func TestCancelStalePendingBookings(t *testing.T) {
	handler, db := setupTaskHandler(t)
	ctx := context.Background()

	stale := &models.Booking{
		ConfirmationCode: "SAN-BBBBBB",
		GuestName:        "李娜",
		GuestEmail:       "lina@example.com",
		RoomType:         "standard",
		CheckIn:          time.Now().AddDate(0, 0, -2),
		CheckOut:         time.Now().AddDate(0, 0, -1),
		Status:           models.BookingStatusPending,
		Adults:           1,
		TotalAmount:      896,
	}
	future := &models.Booking{
		ConfirmationCode: "SAN-CCCCCC",
		GuestName:        "王芳",
		GuestEmail:       "wangfang@example.com",
		RoomType:         "standard",
		CheckIn:          time.Now().AddDate(0, 0, 5),
		CheckOut:         time.Now().AddDate(0, 0, 7),
		Status:           models.BookingStatusPending,
		Adults:           1,
		TotalAmount:      1792,
	}
	require.NoError(t, db.Create(stale).Error)
	require.NoError(t, db.Create(future).Error)

	require.NoError(t, handler.CancelStalePendingBookings(ctx))

	var b1, b2 models.Booking
	require.NoError(t, db.First(&b1, stale.ID).Error)
	require.NoError(t, db.First(&b2, future.ID).Error)
	assert.Equal(t, models.BookingStatusCancelled, b1.Status)
	require.NotNil(t, b1.CancelReason)
	assert.Equal(t, models.BookingStatusPending, b2.Status)
}

func TestSchedulerRunsAndStops(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	var runs int64
	s.AddTask("counter", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&runs, 1)
		return nil
	})

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	got := atomic.LoadInt64(&runs)
	// 启动时立即执行一次,之后按周期触发
	assert.GreaterOrEqual(t, got, int64(2))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, got, atomic.LoadInt64(&runs))
}
