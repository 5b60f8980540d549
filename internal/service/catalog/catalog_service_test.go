package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/santaluna/hotel-backend/internal/common/cache"
	"github.com/santaluna/hotel-backend/internal/common/config"
	"github.com/santaluna/hotel-backend/internal/common/errors"
	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
	"github.com/santaluna/hotel-backend/internal/service/booking"
)

func setupCatalogTest(t *testing.T) (*gorm.DB, *config.HotelConfig) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Room{}, &models.Booking{}, &models.TourPackage{}))

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	cfg := &config.HotelConfig{
		TaxRate:            0.12,
		BreakfastPrice:     250,
		LunchPrice:         350,
		DinnerPrice:        450,
		AirportPickupFee:   1200,
		CatalogCacheExpire: 300,
	}
	return db, cfg
}

func seedCatalogRoom(t *testing.T, db *gorm.DB, roomNo, roomType string, price float64, capacity int) *models.Room {
	room := &models.Room{
		RoomNo:   roomNo,
		Type:     roomType,
		Price:    price,
		Capacity: capacity,
		Status:   models.RoomStatusAvailable,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func TestRoomService_ListRooms_Cached(t *testing.T) {
	db, cfg := setupCatalogTest(t)
	svc := NewRoomService(repository.NewRoomRepository(db), repository.NewBookingRepository(db), cfg)
	ctx := context.Background()

	seedCatalogRoom(t, db, "201", models.RoomTypeStandard, 800, 2)

	rooms, err := svc.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	// 第二次命中缓存，新增的房间尚不可见
	seedCatalogRoom(t, db, "202", models.RoomTypeDeluxe, 1200, 3)
	rooms, err = svc.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	// 管理操作清除缓存后重新加载
	_, err = svc.CreateRoom(ctx, &CreateRoomRequest{
		RoomNo: "203", Type: models.RoomTypeSuite, Price: 2500, Capacity: 4,
	})
	require.NoError(t, err)
	rooms, err = svc.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 3)
}

func TestRoomService_CreateRoom_DuplicateNo(t *testing.T) {
	db, cfg := setupCatalogTest(t)
	svc := NewRoomService(repository.NewRoomRepository(db), repository.NewBookingRepository(db), cfg)
	ctx := context.Background()

	seedCatalogRoom(t, db, "201", models.RoomTypeStandard, 800, 2)
	_, err := svc.CreateRoom(ctx, &CreateRoomRequest{
		RoomNo: "201", Type: models.RoomTypeStandard, Price: 800, Capacity: 2,
	})
	assert.Equal(t, errors.ErrRoomNoExists, err)
}

func TestRoomService_UpdateRoomStatus_OccupiedGuard(t *testing.T) {
	db, cfg := setupCatalogTest(t)
	svc := NewRoomService(repository.NewRoomRepository(db), repository.NewBookingRepository(db), cfg)
	ctx := context.Background()

	room := seedCatalogRoom(t, db, "201", models.RoomTypeStandard, 800, 2)
	require.NoError(t, db.Model(room).Update("status", models.RoomStatusOccupied).Error)

	_, err := svc.UpdateRoomStatus(ctx, room.ID, &UpdateRoomStatusRequest{Status: models.RoomStatusMaintenance})
	assert.Equal(t, errors.ErrRoomOccupied, err)

	// 空闲房间可以进入维护
	other := seedCatalogRoom(t, db, "202", models.RoomTypeStandard, 800, 2)
	info, err := svc.UpdateRoomStatus(ctx, other.ID, &UpdateRoomStatusRequest{Status: models.RoomStatusMaintenance})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusMaintenance, info.Status)
}

func TestRoomService_Availability(t *testing.T) {
	db, cfg := setupCatalogTest(t)
	svc := NewRoomService(repository.NewRoomRepository(db), repository.NewBookingRepository(db), cfg)
	ctx := context.Background()

	room1 := seedCatalogRoom(t, db, "201", models.RoomTypeStandard, 800, 2)
	seedCatalogRoom(t, db, "202", models.RoomTypeStandard, 800, 2)
	maint := seedCatalogRoom(t, db, "203", models.RoomTypeStandard, 800, 2)
	require.NoError(t, db.Model(maint).Update("status", models.RoomStatusMaintenance).Error)

	// 201 在 10-10 ~ 10-13 被占用
	checkIn, _ := time.Parse("2006-01-02", "2026-10-10")
	checkOut, _ := time.Parse("2006-01-02", "2026-10-13")
	require.NoError(t, db.Create(&models.Booking{
		ConfirmationCode: "SAN-AVLB22",
		GuestName:        "张伟",
		GuestEmail:       "zhangwei@example.com",
		RoomType:         models.RoomTypeStandard,
		AssignedRoomID:   &room1.ID,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Status:           models.BookingStatusConfirmed,
		Adults:           2,
		TotalAmount:      7056,
	}).Error)

	// 重叠区间只剩 202
	rooms, err := svc.Availability(ctx, &AvailabilityRequest{
		CheckIn: "2026-10-11", CheckOut: "2026-10-14", Guests: 2,
	})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "202", rooms[0].RoomNo)

	// 退房当天接续入住不算重叠
	rooms, err = svc.Availability(ctx, &AvailabilityRequest{
		CheckIn: "2026-10-13", CheckOut: "2026-10-15", Guests: 2,
	})
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	// 非法区间
	_, err = svc.Availability(ctx, &AvailabilityRequest{
		CheckIn: "2026-10-13", CheckOut: "2026-10-13",
	})
	assert.Equal(t, errors.ErrDateRangeInvalid, err)
}

func TestTourService_ListAndUpdate(t *testing.T) {
	db, cfg := setupCatalogTest(t)
	svc := NewTourService(repository.NewTourRepository(db), cfg)
	ctx := context.Background()

	created, err := svc.CreateTour(ctx, &CreateTourRequest{
		Name: "海岛一日游", Price: 1500, Duration: "8小时",
	})
	require.NoError(t, err)

	tours, err := svc.ListTours(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)

	// 下架后目录不再返回
	off := false
	_, err = svc.UpdateTour(ctx, created.ID, &UpdateTourRequest{Active: &off})
	require.NoError(t, err)

	tours, err = svc.ListTours(ctx)
	require.NoError(t, err)
	assert.Len(t, tours, 0)

	_, err = svc.GetTour(ctx, 9999)
	assert.Equal(t, errors.ErrTourNotFound, err)
}

func TestQuoteService_WorkedExample(t *testing.T) {
	db, cfg := setupCatalogTest(t)
	seedCatalogRoom(t, db, "201", models.RoomTypeStandard, 800, 2)
	svc := NewQuoteService(
		repository.NewRoomRepository(db),
		repository.NewTourRepository(db),
		booking.NewPricingService(cfg),
	)
	ctx := context.Background()

	quote, err := svc.Quote(ctx, &QuoteRequest{
		RoomType:      models.RoomTypeStandard,
		CheckIn:       "2026-10-10",
		CheckOut:      "2026-10-13",
		Guests:        2,
		MealBreakfast: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, 4800.0, quote.RoomCost)
	assert.Equal(t, 1500.0, quote.MealCost)
	assert.Equal(t, 6300.0, quote.Subtotal)
	assert.Equal(t, 7056.0, quote.Total)

	// 非法区间直接拒绝
	_, err = svc.Quote(ctx, &QuoteRequest{
		RoomType: models.RoomTypeStandard,
		CheckIn:  "2026-10-13",
		CheckOut: "2026-10-10",
		Guests:   2,
	})
	assert.Equal(t, errors.ErrDateRangeInvalid, err)
}
