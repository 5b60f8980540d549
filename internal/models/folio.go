package models

import (
	"time"
)

// FolioItem 客账条目模型
// 账本只追加不修改，冲正通过负数 adjustment 条目完成
type FolioItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemNo      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"item_no"`
	BookingID   int64     `gorm:"index;not null" json:"booking_id"`
	ChargeType  string    `gorm:"type:varchar(30);not null" json:"charge_type"`
	Description string    `gorm:"type:varchar(255);not null" json:"description"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	CreatedBy   int64     `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

// TableName 表名
func (FolioItem) TableName() string {
	return "folio_items"
}

// ChargeType 消费类型
const (
	ChargeTypeRoomService  = "room_service"  // 客房送餐
	ChargeTypeMinibar      = "minibar"       // 迷你吧
	ChargeTypeLaundry      = "laundry"       // 洗衣
	ChargeTypeSpa          = "spa"           // 水疗
	ChargeTypeDamage       = "damage"        // 损坏赔偿
	ChargeTypeLateCheckout = "late_checkout" // 延迟退房
	ChargeTypeEarlyCheckin = "early_checkin" // 提前入住
	ChargeTypeAdjustment   = "adjustment"    // 冲正调整
	ChargeTypeOther        = "other"         // 其他
)

// ValidChargeTypes 合法消费类型集合
var ValidChargeTypes = []string{
	ChargeTypeRoomService,
	ChargeTypeMinibar,
	ChargeTypeLaundry,
	ChargeTypeSpa,
	ChargeTypeDamage,
	ChargeTypeLateCheckout,
	ChargeTypeEarlyCheckin,
	ChargeTypeAdjustment,
	ChargeTypeOther,
}

// Total 条目小计
func (f *FolioItem) Total() float64 {
	return f.Amount * float64(f.Quantity)
}

// Payment 收款记录模型
type Payment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID  int64     `gorm:"index;not null" json:"booking_id"`
	Amount     float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method     string    `gorm:"type:varchar(30);not null" json:"method"`
	RecordedBy int64     `gorm:"not null" json:"recorded_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

// TableName 表名
func (Payment) TableName() string {
	return "payments"
}

// PaymentMethod 收款方式
const (
	PaymentMethodCash     = "cash"      // 现金
	PaymentMethodCard     = "card"      // 银行卡
	PaymentMethodTransfer = "transfer"  // 转账
	PaymentMethodOTA      = "ota"       // OTA 代收
)
