// Package guest 提供客人档案服务
package guest

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/santaluna/hotel-backend/internal/common/crypto"
	"github.com/santaluna/hotel-backend/internal/common/errors"
	"github.com/santaluna/hotel-backend/internal/common/utils"
	"github.com/santaluna/hotel-backend/internal/models"
	"github.com/santaluna/hotel-backend/internal/repository"
)

// GuestService 客人档案服务
type GuestService struct {
	guestRepo *repository.GuestRepository
	cipher    *crypto.AES
}

// NewGuestService 创建客人档案服务
func NewGuestService(guestRepo *repository.GuestRepository, cipher *crypto.AES) *GuestService {
	return &GuestService{
		guestRepo: guestRepo,
		cipher:    cipher,
	}
}

// GuestInfo 客人信息（证件号脱敏展示）
type GuestInfo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Nationality string    `json:"nationality,omitempty"`
	IDNumber    string    `json:"id_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// GuestDetail 客人详情（含入住历史）
type GuestDetail struct {
	*GuestInfo
	Bookings []*BookingBrief `json:"bookings"`
}

// BookingBrief 入住历史条目
type BookingBrief struct {
	ID               int64   `json:"id"`
	ConfirmationCode string  `json:"confirmation_code"`
	RoomType         string  `json:"room_type"`
	CheckIn          string  `json:"check_in"`
	CheckOut         string  `json:"check_out"`
	Status           string  `json:"status"`
	TotalAmount      float64 `json:"total_amount"`
}

// UpdateGuestRequest 更新客人档案请求
type UpdateGuestRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Nationality *string `json:"nationality" binding:"omitempty,max=50"`
	IDNumber    *string `json:"id_number" binding:"omitempty,max=50"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
}

// ListGuests 客人列表（按姓名/邮箱/电话模糊搜索）
func (s *GuestService) ListGuests(ctx context.Context, page, pageSize int, search string) ([]*GuestInfo, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	guests, total, err := s.guestRepo.List(ctx, (page-1)*pageSize, pageSize, search)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*GuestInfo, 0, len(guests))
	for _, g := range guests {
		result = append(result, s.convertGuestInfo(g))
	}
	return result, total, nil
}

// GetGuest 客人详情与入住历史
func (s *GuestService) GetGuest(ctx context.Context, id int64) (*GuestDetail, error) {
	guest, err := s.guestRepo.GetByIDWithBookings(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	bookings := make([]*BookingBrief, 0, len(guest.Bookings))
	for i := range guest.Bookings {
		b := &guest.Bookings[i]
		bookings = append(bookings, &BookingBrief{
			ID:               b.ID,
			ConfirmationCode: b.ConfirmationCode,
			RoomType:         b.RoomType,
			CheckIn:          b.CheckIn.Format("2006-01-02"),
			CheckOut:         b.CheckOut.Format("2006-01-02"),
			Status:           b.Status,
			TotalAmount:      b.TotalAmount,
		})
	}

	return &GuestDetail{
		GuestInfo: s.convertGuestInfo(guest),
		Bookings:  bookings,
	}, nil
}

// UpdateGuest 更新客人档案
// 证件号加密落库
func (s *GuestService) UpdateGuest(ctx context.Context, id int64, req *UpdateGuestRequest) (*GuestInfo, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.Name != nil {
		guest.Name = *req.Name
	}
	if req.Phone != nil {
		if *req.Phone != "" && !utils.ValidatePhone(*req.Phone) {
			return nil, errors.ErrPhoneInvalid
		}
		guest.Phone = req.Phone
	}
	if req.Nationality != nil {
		guest.Nationality = req.Nationality
	}
	if req.IDNumber != nil {
		encrypted, err := s.cipher.Encrypt(*req.IDNumber)
		if err != nil {
			return nil, errors.ErrInternalError.WithError(err)
		}
		guest.IDNumber = &encrypted
	}
	if req.Address != nil {
		guest.Address = req.Address
	}

	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.convertGuestInfo(guest), nil
}

// convertGuestInfo 转换客人信息，证件号解密后脱敏
func (s *GuestService) convertGuestInfo(guest *models.Guest) *GuestInfo {
	info := &GuestInfo{
		ID:          guest.ID,
		Name:        guest.Name,
		Email:       guest.Email,
		Phone:       utils.SafeString(guest.Phone),
		Nationality: utils.SafeString(guest.Nationality),
		Address:     utils.SafeString(guest.Address),
		CreatedAt:   guest.CreatedAt,
	}
	if guest.IDNumber != nil && s.cipher != nil {
		if plain, err := s.cipher.Decrypt(*guest.IDNumber); err == nil {
			info.IDNumber = crypto.MaskIDNumber(plain)
		}
	}
	return info
}
