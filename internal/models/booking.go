package models

import (
	"time"
)

// Booking 预订模型
// 预订记录只做状态流转，永不删除，取消/未到店为终态
type Booking struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConfirmationCode string     `gorm:"type:varchar(16);uniqueIndex;not null" json:"confirmation_code"`
	GuestID          *int64     `gorm:"index" json:"guest_id,omitempty"`
	GuestName        string     `gorm:"type:varchar(100);not null" json:"guest_name"`
	GuestEmail       string     `gorm:"type:varchar(100);not null" json:"guest_email"`
	GuestPhone       *string    `gorm:"type:varchar(20)" json:"guest_phone,omitempty"`
	RoomType         string     `gorm:"type:varchar(50);not null" json:"room_type"`
	AssignedRoomID   *int64     `gorm:"index" json:"assigned_room_id,omitempty"`
	AssignedRoomNo   *string    `gorm:"type:varchar(20)" json:"assigned_room_no,omitempty"`
	CheckIn          time.Time  `gorm:"type:date;not null;index" json:"check_in"`
	CheckOut         time.Time  `gorm:"type:date;not null;index" json:"check_out"`
	ETA              *string    `gorm:"type:varchar(20)" json:"eta,omitempty"`
	CheckInTime      *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime     *time.Time `json:"check_out_time,omitempty"`
	Status           string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Adults           int        `gorm:"not null;default:1" json:"adults"`
	Children         int        `gorm:"not null;default:0" json:"children"`
	TotalAmount      float64    `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentStatus    string     `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	PaymentMethod    *string    `gorm:"type:varchar(30)" json:"payment_method,omitempty"`
	PaymentConfirmed bool       `gorm:"not null;default:false" json:"payment_confirmed"`
	IDVerified       bool       `gorm:"not null;default:false" json:"id_verified"`
	EarlyCheckIn     bool       `gorm:"not null;default:false" json:"early_check_in"`
	BookingSource    string     `gorm:"type:varchar(30);not null;default:'direct'" json:"booking_source"`
	AirportPickup    bool       `gorm:"not null;default:false" json:"airport_pickup"`
	PickupTime       *string    `gorm:"type:varchar(20)" json:"pickup_time,omitempty"`
	MealBreakfast    bool       `gorm:"not null;default:false" json:"meal_breakfast"`
	MealLunch        bool       `gorm:"not null;default:false" json:"meal_lunch"`
	MealDinner       bool       `gorm:"not null;default:false" json:"meal_dinner"`
	SpecialRequests  *string    `gorm:"type:text" json:"special_requests,omitempty"`
	CancelReason     *string    `gorm:"type:varchar(255)" json:"cancel_reason,omitempty"`
	VerifyNotes      *string    `gorm:"type:varchar(255)" json:"verify_notes,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Guest        *Guest      `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	AssignedRoom *Room       `gorm:"foreignKey:AssignedRoomID" json:"assigned_room,omitempty"`
	FolioItems   []FolioItem `gorm:"foreignKey:BookingID" json:"folio_items,omitempty"`
	Payments     []Payment   `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
}

// TableName 表名
func (Booking) TableName() string {
	return "bookings"
}

// BookingStatus 预订状态
const (
	BookingStatusPending    = "pending"     // 待确认
	BookingStatusConfirmed  = "confirmed"   // 已确认
	BookingStatusCheckedIn  = "checked-in"  // 已入住
	BookingStatusCheckedOut = "checked-out" // 已退房
	BookingStatusCancelled  = "cancelled"   // 已取消
	BookingStatusNoShow     = "no-show"     // 未到店
)

// PaymentStatus 支付状态
const (
	PaymentStatusUnpaid   = "unpaid"   // 未支付
	PaymentStatusDeposit  = "deposit"  // 已付定金
	PaymentStatusPaid     = "paid"     // 已支付
	PaymentStatusRefunded = "refunded" // 已退款
)

// BookingSource 预订来源
const (
	BookingSourceDirect  = "direct"      // 官网直订
	BookingSourceBooking = "booking.com" // Booking.com
	BookingSourceAgoda   = "agoda"       // Agoda
	BookingSourceExpedia = "expedia"     // Expedia
	BookingSourcePhone   = "phone"       // 电话预订
	BookingSourceWalkIn  = "walk-in"     // 上门散客
)

// IsTerminal 是否为终态
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusCheckedOut, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// PartySize 入住总人数
func (b *Booking) PartySize() int {
	return b.Adults + b.Children
}
