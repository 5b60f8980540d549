// Package booking 提供预订生命周期服务
package booking

import (
	"time"

	"github.com/santaluna/hotel-backend/internal/common/config"
	"github.com/santaluna/hotel-backend/internal/common/utils"
	"github.com/santaluna/hotel-backend/internal/models"
)

// PricingService 报价计算服务
// 价目来自配置，计算本身不访问数据库
type PricingService struct {
	cfg *config.HotelConfig
}

// NewPricingService 创建报价计算服务
func NewPricingService(cfg *config.HotelConfig) *PricingService {
	return &PricingService{cfg: cfg}
}

// QuoteInput 报价输入
type QuoteInput struct {
	RoomRate      float64              // 每人每晚房价
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	MealBreakfast bool
	MealLunch     bool
	MealDinner    bool
	AirportPickup bool
	Tours         []*models.TourPackage
}

// Quote 报价明细
type Quote struct {
	Nights     int     `json:"nights"`
	RoomCost   float64 `json:"room_cost"`
	MealCost   float64 `json:"meal_cost"`
	PickupCost float64 `json:"pickup_cost"`
	TourCost   float64 `json:"tour_cost"`
	Subtotal   float64 `json:"subtotal"`
	TaxRate    float64 `json:"tax_rate"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// Calculate 计算报价
// 晚数为零（日期缺失或区间非法）时整单归零，不单独收取接送或跟团游费用
func (s *PricingService) Calculate(in *QuoteInput) *Quote {
	nights := utils.Nights(in.CheckIn, in.CheckOut)
	if nights <= 0 {
		return &Quote{TaxRate: s.cfg.TaxRate}
	}
	guests := in.Guests
	if guests < 0 {
		guests = 0
	}

	// 1. 房费：房价 × 人数 × 晚数
	roomCost := in.RoomRate * float64(guests) * float64(nights)

	// 2. 餐费：勾选餐型单价之和 × 人数 × 晚数
	var mealRate float64
	if in.MealBreakfast {
		mealRate += s.cfg.BreakfastPrice
	}
	if in.MealLunch {
		mealRate += s.cfg.LunchPrice
	}
	if in.MealDinner {
		mealRate += s.cfg.DinnerPrice
	}
	mealCost := mealRate * float64(guests) * float64(nights)

	// 3. 接机：一口价
	var pickupCost float64
	if in.AirportPickup {
		pickupCost = s.cfg.AirportPickupFee
	}

	// 4. 跟团游：套餐单价 × 人数
	var tourCost float64
	for _, tour := range in.Tours {
		tourCost += tour.Price * float64(guests)
	}

	subtotal := roomCost + mealCost + pickupCost + tourCost
	tax := subtotal * s.cfg.TaxRate
	total := subtotal + tax

	return &Quote{
		Nights:     nights,
		RoomCost:   utils.Round2(roomCost),
		MealCost:   utils.Round2(mealCost),
		PickupCost: utils.Round2(pickupCost),
		TourCost:   utils.Round2(tourCost),
		Subtotal:   utils.Round2(subtotal),
		TaxRate:    s.cfg.TaxRate,
		Tax:        utils.Round2(tax),
		Total:      utils.Round2(total),
	}
}
