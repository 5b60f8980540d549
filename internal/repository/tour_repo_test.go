// Package repository 跟团游套餐仓储单元测试
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/santaluna/hotel-backend/internal/models"
)

func setupTourTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.TourPackage{})
	require.NoError(t, err)

	return db
}

func TestTourRepository_ListActive(t *testing.T) {
	db := setupTourTestDB(t)
	repo := NewTourRepository(db)
	ctx := context.Background()

	tours := []*models.TourPackage{
		{Name: "海岛一日游", Price: 1500, Active: true},
		{Name: "古城文化游", Price: 900, Active: true},
		{Name: "已下架套餐", Price: 500, Active: false},
	}
	for _, tour := range tours {
		require.NoError(t, repo.Create(ctx, tour))
	}

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "海岛一日游", list[0].Name)
}

func TestTourRepository_ListByIDs(t *testing.T) {
	db := setupTourTestDB(t)
	repo := NewTourRepository(db)
	ctx := context.Background()

	t1 := &models.TourPackage{Name: "海岛一日游", Price: 1500, Active: true}
	t2 := &models.TourPackage{Name: "古城文化游", Price: 900, Active: true}
	require.NoError(t, repo.Create(ctx, t1))
	require.NoError(t, repo.Create(ctx, t2))

	list, err := repo.ListByIDs(ctx, []int64{t1.ID, t2.ID})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// 空集合直接返回
	list, err = repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, list)
}
