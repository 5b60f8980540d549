package models

import (
	"time"
)

// Guest 客人档案模型
// IDNumber 落库前经 AES 加密，展示时脱敏
type Guest struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Email       string    `gorm:"type:varchar(100);not null;index" json:"email"`
	Phone       *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Nationality *string   `gorm:"type:varchar(50)" json:"nationality,omitempty"`
	IDNumber    *string   `gorm:"type:varchar(255)" json:"id_number,omitempty"`
	Address     *string   `gorm:"type:varchar(255)" json:"address,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Bookings []Booking `gorm:"foreignKey:GuestID" json:"bookings,omitempty"`
}

// TableName 表名
func (Guest) TableName() string {
	return "guests"
}
