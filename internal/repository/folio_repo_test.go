// Package repository 客账与收款仓储单元测试
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

func setupFolioTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.FolioItem{}, &models.Payment{}, &models.Booking{})
	require.NoError(t, err)

	return db
}

func TestFolioRepository_CreateAndList(t *testing.T) {
	db := setupFolioTestDB(t)
	repo := NewFolioRepository(db)
	ctx := context.Background()

	items := []*models.FolioItem{
		{ItemNo: "F001", BookingID: 1, ChargeType: models.ChargeTypeMinibar, Description: "迷你吧饮料", Amount: 100, Quantity: 2, CreatedBy: 1},
		{ItemNo: "F002", BookingID: 1, ChargeType: models.ChargeTypeLaundry, Description: "洗衣", Amount: 50, Quantity: 1, CreatedBy: 1},
		{ItemNo: "F003", BookingID: 2, ChargeType: models.ChargeTypeSpa, Description: "水疗", Amount: 300, Quantity: 1, CreatedBy: 1},
	}
	for _, item := range items {
		require.NoError(t, repo.Create(ctx, item))
	}

	list, err := repo.ListByBooking(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// 按时间顺序
	assert.Equal(t, "F001", list[0].ItemNo)
	assert.Equal(t, "F002", list[1].ItemNo)
}

func TestFolioRepository_SumByBooking(t *testing.T) {
	db := setupFolioTestDB(t)
	repo := NewFolioRepository(db)
	ctx := context.Background()

	// 100×2 + 50×1 = 250
	require.NoError(t, repo.Create(ctx, &models.FolioItem{
		ItemNo: "F001", BookingID: 1, ChargeType: models.ChargeTypeMinibar,
		Description: "迷你吧饮料", Amount: 100, Quantity: 2, CreatedBy: 1,
	}))
	require.NoError(t, repo.Create(ctx, &models.FolioItem{
		ItemNo: "F002", BookingID: 1, ChargeType: models.ChargeTypeLaundry,
		Description: "洗衣", Amount: 50, Quantity: 1, CreatedBy: 1,
	}))

	total, err := repo.SumByBooking(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 250.0, total)

	// 负数冲正计入汇总
	require.NoError(t, repo.Create(ctx, &models.FolioItem{
		ItemNo: "F003", BookingID: 1, ChargeType: models.ChargeTypeAdjustment,
		Description: "冲正迷你吧多收", Amount: -100, Quantity: 1, CreatedBy: 1,
	}))

	total, err = repo.SumByBooking(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 150.0, total)

	// 无条目返回 0
	total, err = repo.SumByBooking(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestPaymentRepository_CreateAndSum(t *testing.T) {
	db := setupFolioTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Payment{
		BookingID: 1, Amount: 3000, Method: models.PaymentMethodCash, RecordedBy: 1,
	}))
	require.NoError(t, repo.Create(ctx, &models.Payment{
		BookingID: 1, Amount: 4056, Method: models.PaymentMethodCard, RecordedBy: 1,
	}))

	total, err := repo.SumByBooking(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 7056.0, total)

	list, err := repo.ListByBooking(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.PaymentMethodCash, list[0].Method)
}

func TestPaymentRepository_SumByDate(t *testing.T) {
	db := setupFolioTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Payment{
		BookingID: 1, Amount: 1000, Method: models.PaymentMethodCash, RecordedBy: 1,
	}))
	require.NoError(t, repo.Create(ctx, &models.Payment{
		BookingID: 2, Amount: 2000, Method: models.PaymentMethodCard, RecordedBy: 1,
	}))

	total, err := repo.SumByDate(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 3000.0, total)

	// 昨天无收款
	total, err = repo.SumByDate(ctx, time.Now().UTC().AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}
