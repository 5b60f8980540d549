// Package repository 员工仓储单元测试
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

func setupStaffTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Staff{})
	require.NoError(t, err)

	return db
}

func TestStaffRepository_CreateAndGetByUsername(t *testing.T) {
	db := setupStaffTestDB(t)
	repo := NewStaffRepository(db)
	ctx := context.Background()

	staff := &models.Staff{
		Username:     "frontdesk01",
		PasswordHash: "$2a$10$hash",
		Name:         "王芳",
		Role:         models.StaffRoleFrontDesk,
		Status:       models.StaffStatusActive,
	}
	require.NoError(t, repo.Create(ctx, staff))

	found, err := repo.GetByUsername(ctx, "frontdesk01")
	require.NoError(t, err)
	assert.Equal(t, "王芳", found.Name)

	_, err = repo.GetByUsername(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStaffRepository_UpdateLastLogin(t *testing.T) {
	db := setupStaffTestDB(t)
	repo := NewStaffRepository(db)
	ctx := context.Background()

	staff := &models.Staff{
		Username: "frontdesk01", PasswordHash: "x", Name: "王芳",
		Role: models.StaffRoleFrontDesk, Status: models.StaffStatusActive,
	}
	require.NoError(t, repo.Create(ctx, staff))
	assert.Nil(t, staff.LastLoginAt)

	require.NoError(t, repo.UpdateLastLogin(ctx, staff.ID))

	found, err := repo.GetByID(ctx, staff.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.LastLoginAt)
}
