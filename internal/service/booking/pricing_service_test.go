// Package booking 报价计算单元测试
package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/santaluna/hotel-backend/internal/common/config"
	"github.com/santaluna/hotel-backend/internal/models"
)

func testPricingHotelConfig() *config.HotelConfig {
	return &config.HotelConfig{
		TaxRate:          0.12,
		BreakfastPrice:   250,
		LunchPrice:       350,
		DinnerPrice:      450,
		AirportPickupFee: 1200,
		LateCheckoutFee:  500,
		LateCheckoutHour: 12,
	}
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestPricing_WorkedExample(t *testing.T) {
	// 房价800、2人、3晚、含早餐：
	// 房费 800×2×3=4800，早餐 250×2×3=1500，小计 6300，含税 6300×1.12=7056
	svc := NewPricingService(testPricingHotelConfig())

	quote := svc.Calculate(&QuoteInput{
		RoomRate:      800,
		CheckIn:       day(10),
		CheckOut:      day(13),
		Guests:        2,
		MealBreakfast: true,
	})

	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, 4800.0, quote.RoomCost)
	assert.Equal(t, 1500.0, quote.MealCost)
	assert.Equal(t, 6300.0, quote.Subtotal)
	assert.Equal(t, 756.0, quote.Tax)
	assert.Equal(t, 7056.0, quote.Total)
}

func TestPricing_AllMealsPickupAndTours(t *testing.T) {
	svc := NewPricingService(testPricingHotelConfig())

	quote := svc.Calculate(&QuoteInput{
		RoomRate:      500,
		CheckIn:       day(1),
		CheckOut:      day(3),
		Guests:        2,
		MealBreakfast: true,
		MealLunch:     true,
		MealDinner:    true,
		AirportPickup: true,
		Tours: []*models.TourPackage{
			{Name: "海岛一日游", Price: 1500},
			{Name: "古城文化游", Price: 900},
		},
	})

	// 房费 500×2×2=2000，餐费 (250+350+450)×2×2=4200
	// 接机 1200，跟团 (1500+900)×2=4800，小计 12200
	assert.Equal(t, 2000.0, quote.RoomCost)
	assert.Equal(t, 4200.0, quote.MealCost)
	assert.Equal(t, 1200.0, quote.PickupCost)
	assert.Equal(t, 4800.0, quote.TourCost)
	assert.Equal(t, 12200.0, quote.Subtotal)
	assert.Equal(t, 13664.0, quote.Total)
}

func TestPricing_ZeroNights(t *testing.T) {
	svc := NewPricingService(testPricingHotelConfig())

	// 日期倒置时晚数按 0，整单归零，接机和跟团游也不计价
	quote := svc.Calculate(&QuoteInput{
		RoomRate:      800,
		CheckIn:       day(13),
		CheckOut:      day(10),
		Guests:        2,
		MealBreakfast: true,
		AirportPickup: true,
		Tours:         []*models.TourPackage{{Name: "海岛一日游", Price: 500}},
	})

	assert.Equal(t, 0, quote.Nights)
	assert.Equal(t, 0.0, quote.RoomCost)
	assert.Equal(t, 0.0, quote.MealCost)
	assert.Equal(t, 0.0, quote.PickupCost)
	assert.Equal(t, 0.0, quote.TourCost)
	assert.Equal(t, 0.0, quote.Total)
}

func TestPricing_MissingDates(t *testing.T) {
	svc := NewPricingService(testPricingHotelConfig())

	quote := svc.Calculate(&QuoteInput{
		RoomRate: 800,
		Guests:   2,
	})

	assert.Equal(t, 0, quote.Nights)
	assert.Equal(t, 0.0, quote.Total)
}

func TestPricing_NegativeGuestsClamped(t *testing.T) {
	svc := NewPricingService(testPricingHotelConfig())

	quote := svc.Calculate(&QuoteInput{
		RoomRate: 800,
		CheckIn:  day(10),
		CheckOut: day(12),
		Guests:   -1,
	})

	assert.Equal(t, 0.0, quote.Total)
}
