package catalog

import (
	"context"
	"time"

	"github.com/santaluna/hotel-backend/internal/common/errors"
	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
	"github.com/santaluna/hotel-backend/internal/service/booking"
)

// QuoteService 报价预览服务
// 与下单共用同一套计算器，保证预览与落单金额一致
type QuoteService struct {
	roomRepo       *repository.RoomRepository
	tourRepo       *repository.TourRepository
	pricingService *booking.PricingService
}

// NewQuoteService 创建报价预览服务
func NewQuoteService(roomRepo *repository.RoomRepository, tourRepo *repository.TourRepository, pricingService *booking.PricingService) *QuoteService {
	return &QuoteService{
		roomRepo:       roomRepo,
		tourRepo:       tourRepo,
		pricingService: pricingService,
	}
}

// QuoteRequest 报价请求
type QuoteRequest struct {
	RoomType      string  `json:"room_type" binding:"required,oneof=standard deluxe family suite"`
	CheckIn       string  `json:"check_in" binding:"required"`
	CheckOut      string  `json:"check_out" binding:"required"`
	Guests        int     `json:"guests" binding:"required,min=1"`
	MealBreakfast bool    `json:"meal_breakfast"`
	MealLunch     bool    `json:"meal_lunch"`
	MealDinner    bool    `json:"meal_dinner"`
	AirportPickup bool    `json:"airport_pickup"`
	TourIDs       []int64 `json:"tour_ids"`
}

// Quote 生成报价明细
func (s *QuoteService) Quote(ctx context.Context, req *QuoteRequest) (*booking.Quote, error) {
	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return nil, errors.ErrInvalidParams.WithMessage("入住日期格式错误")
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return nil, errors.ErrInvalidParams.WithMessage("退房日期格式错误")
	}
	if !checkOut.After(checkIn) {
		return nil, errors.ErrDateRangeInvalid
	}

	rooms, err := s.roomRepo.ListByTypeAndCapacity(ctx, req.RoomType, req.Guests, nil)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if len(rooms) == 0 {
		return nil, errors.ErrRoomNotFound.WithMessage("该房型暂无可报价房间")
	}

	var tours []*models.TourPackage
	if len(req.TourIDs) > 0 {
		tours, err = s.tourRepo.ListByIDs(ctx, req.TourIDs)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if len(tours) != len(req.TourIDs) {
			return nil, errors.ErrTourNotFound
		}
		for _, tour := range tours {
			if !tour.Active {
				return nil, errors.ErrTourDisabled
			}
		}
	}

	return s.pricingService.Calculate(&booking.QuoteInput{
		RoomRate:      rooms[0].Price,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		MealBreakfast: req.MealBreakfast,
		MealLunch:     req.MealLunch,
		MealDinner:    req.MealDinner,
		AirportPickup: req.AirportPickup,
		Tours:         tours,
	}), nil
}
