// Package repository 客人档案仓储单元测试
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

func setupGuestTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Guest{}, &models.Booking{})
	require.NoError(t, err)

	return db
}

func TestGuestRepository_CreateAndGetByEmail(t *testing.T) {
	db := setupGuestTestDB(t)
	repo := NewGuestRepository(db)
	ctx := context.Background()

	guest := &models.Guest{Name: "张伟", Email: "zhangwei@example.com"}
	require.NoError(t, repo.Create(ctx, guest))
	assert.NotZero(t, guest.ID)

	found, err := repo.GetByEmail(ctx, "zhangwei@example.com")
	require.NoError(t, err)
	assert.Equal(t, "张伟", found.Name)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGuestRepository_GetByIDWithBookings(t *testing.T) {
	db := setupGuestTestDB(t)
	repo := NewGuestRepository(db)
	ctx := context.Background()

	guest := &models.Guest{Name: "李娜", Email: "lina@example.com"}
	require.NoError(t, repo.Create(ctx, guest))

	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	db.Create(&models.Booking{
		ConfirmationCode: "SAN-AAAAAA", GuestID: &guest.ID,
		GuestName: "李娜", GuestEmail: "lina@example.com",
		RoomType: models.RoomTypeStandard, CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2),
		Status: models.BookingStatusCheckedOut, Adults: 1,
		PaymentStatus: models.PaymentStatusPaid, BookingSource: models.BookingSourceDirect,
	})
	db.Create(&models.Booking{
		ConfirmationCode: "SAN-BBBBBB", GuestID: &guest.ID,
		GuestName: "李娜", GuestEmail: "lina@example.com",
		RoomType: models.RoomTypeDeluxe, CheckIn: checkIn.AddDate(0, 1, 0), CheckOut: checkIn.AddDate(0, 1, 3),
		Status: models.BookingStatusConfirmed, Adults: 2,
		PaymentStatus: models.PaymentStatusUnpaid, BookingSource: models.BookingSourceDirect,
	})

	found, err := repo.GetByIDWithBookings(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, found.Bookings, 2)
	// 入住日期降序
	assert.Equal(t, "SAN-BBBBBB", found.Bookings[0].ConfirmationCode)
}

func TestGuestRepository_List_Search(t *testing.T) {
	db := setupGuestTestDB(t)
	repo := NewGuestRepository(db)
	ctx := context.Background()

	phone := "0812345678"
	guests := []*models.Guest{
		{Name: "张伟", Email: "zhangwei@example.com"},
		{Name: "李娜", Email: "lina@example.com", Phone: &phone},
		{Name: "王芳", Email: "wangfang@example.com"},
	}
	for _, g := range guests {
		require.NoError(t, repo.Create(ctx, g))
	}

	list, total, err := repo.List(ctx, 0, 10, "lina")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "李娜", list[0].Name)

	list, total, err = repo.List(ctx, 0, 10, "0812")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "李娜", list[0].Name)

	_, total, err = repo.List(ctx, 0, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
