// Package repository 房间仓储单元测试
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/santaluna/hotel-backend/internal/models"
)

func setupRoomTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Room{}, &models.Booking{})
	require.NoError(t, err)

	return db
}

func TestRoomRepository_CreateAndGet(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	room := &models.Room{
		RoomNo:   "101",
		Type:     models.RoomTypeDeluxe,
		Price:    800,
		Capacity: 2,
		Status:   models.RoomStatusAvailable,
	}
	require.NoError(t, repo.Create(ctx, room))
	assert.NotZero(t, room.ID)

	found, err := repo.GetByRoomNo(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, models.RoomTypeDeluxe, found.Type)
	assert.Equal(t, 800.0, found.Price)
}

func TestRoomRepository_TransitionStatus(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	room := &models.Room{
		RoomNo: "102", Type: models.RoomTypeStandard,
		Price: 500, Capacity: 2, Status: models.RoomStatusAvailable,
	}
	require.NoError(t, repo.Create(ctx, room))

	// available -> reserved 成功
	ok, err := repo.TransitionStatus(ctx, room.ID, models.RoomStatusAvailable, models.RoomStatusReserved)
	require.NoError(t, err)
	assert.True(t, ok)

	// 第二次从 available 流转失败，双重排房被拦住
	ok, err = repo.TransitionStatus(ctx, room.ID, models.RoomStatusAvailable, models.RoomStatusReserved)
	require.NoError(t, err)
	assert.False(t, ok)

	found, _ := repo.GetByID(ctx, room.ID)
	assert.Equal(t, models.RoomStatusReserved, found.Status)
}

func TestRoomRepository_List_Filters(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	rooms := []*models.Room{
		{RoomNo: "101", Type: models.RoomTypeStandard, Price: 500, Capacity: 2, Status: models.RoomStatusAvailable},
		{RoomNo: "201", Type: models.RoomTypeDeluxe, Price: 800, Capacity: 2, Status: models.RoomStatusOccupied},
		{RoomNo: "301", Type: models.RoomTypeDeluxe, Price: 800, Capacity: 3, Status: models.RoomStatusAvailable},
	}
	for _, room := range rooms {
		require.NoError(t, repo.Create(ctx, room))
	}

	list, total, err := repo.List(ctx, 0, 10, map[string]interface{}{
		"type": models.RoomTypeDeluxe,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	// 房间号升序
	assert.Equal(t, "201", list[0].RoomNo)

	_, total, err = repo.List(ctx, 0, 10, map[string]interface{}{
		"status": models.RoomStatusAvailable,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestRoomRepository_ListByTypeAndCapacity(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	rooms := []*models.Room{
		{RoomNo: "101", Type: models.RoomTypeStandard, Price: 500, Capacity: 2, Status: models.RoomStatusAvailable},
		{RoomNo: "201", Type: models.RoomTypeDeluxe, Price: 800, Capacity: 2, Status: models.RoomStatusAvailable},
		{RoomNo: "202", Type: models.RoomTypeDeluxe, Price: 800, Capacity: 4, Status: models.RoomStatusAvailable},
		{RoomNo: "302", Type: models.RoomTypeDeluxe, Price: 800, Capacity: 4, Status: models.RoomStatusMaintenance},
	}
	for _, room := range rooms {
		require.NoError(t, repo.Create(ctx, room))
	}

	// 豪华间、3人、排除 202
	var excludeID int64
	db.Model(&models.Room{}).Where("room_no = ?", "202").Pluck("id", &excludeID)

	list, err := repo.ListByTypeAndCapacity(ctx, models.RoomTypeDeluxe, 3, []int64{excludeID})
	require.NoError(t, err)
	// 201 容量不够，202 被排除，302 维修中
	assert.Empty(t, list)

	// 不排除时 202 可用
	list, err = repo.ListByTypeAndCapacity(ctx, models.RoomTypeDeluxe, 3, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "202", list[0].RoomNo)
}

func TestRoomRepository_CountByStatus(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	rooms := []*models.Room{
		{RoomNo: "101", Type: models.RoomTypeStandard, Price: 500, Capacity: 2, Status: models.RoomStatusAvailable},
		{RoomNo: "102", Type: models.RoomTypeStandard, Price: 500, Capacity: 2, Status: models.RoomStatusOccupied},
		{RoomNo: "103", Type: models.RoomTypeStandard, Price: 500, Capacity: 2, Status: models.RoomStatusOccupied},
	}
	for _, room := range rooms {
		require.NoError(t, repo.Create(ctx, room))
	}

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.RoomStatusAvailable])
	assert.Equal(t, int64(2), counts[models.RoomStatusOccupied])
}

func TestRoomRepository_ListReservedWithoutActiveBooking(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	orphan := &models.Room{RoomNo: "101", Type: models.RoomTypeStandard, Price: 500, Capacity: 2, Status: models.RoomStatusReserved}
	held := &models.Room{RoomNo: "102", Type: models.RoomTypeStandard, Price: 500, Capacity: 2, Status: models.RoomStatusReserved}
	require.NoError(t, repo.Create(ctx, orphan))
	require.NoError(t, repo.Create(ctx, held))

	// held 对应一个仍然有效的预订；orphan 的预订已取消
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	db.Create(&models.Booking{
		ConfirmationCode: "SAN-AAAAAA", GuestName: "张伟", GuestEmail: "a@b.c",
		RoomType: models.RoomTypeStandard, CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2),
		Status: models.BookingStatusConfirmed, AssignedRoomID: &held.ID,
		Adults: 1, PaymentStatus: models.PaymentStatusUnpaid, BookingSource: models.BookingSourceDirect,
	})
	db.Create(&models.Booking{
		ConfirmationCode: "SAN-BBBBBB", GuestName: "李娜", GuestEmail: "c@d.e",
		RoomType: models.RoomTypeStandard, CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2),
		Status: models.BookingStatusCancelled, AssignedRoomID: &orphan.ID,
		Adults: 1, PaymentStatus: models.PaymentStatusUnpaid, BookingSource: models.BookingSourceDirect,
	})

	list, err := repo.ListReservedWithoutActiveBooking(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "101", list[0].RoomNo)
}
