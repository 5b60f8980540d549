package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Room 房间模型
type Room struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomNo      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"room_no"`
	Type        string    `gorm:"type:varchar(50);not null;index" json:"type"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"` // 每人每晚
	Capacity    int       `gorm:"not null;default:2" json:"capacity"`
	Status      string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	Floor       *int      `json:"floor,omitempty"`
	Amenities   JSON      `gorm:"type:jsonb" json:"amenities,omitempty"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (Room) TableName() string {
	return "rooms"
}

// RoomStatus 房间状态
const (
	RoomStatusAvailable   = "available"   // 可入住
	RoomStatusOccupied    = "occupied"    // 在住
	RoomStatusReserved    = "reserved"    // 已排房待入住
	RoomStatusMaintenance = "maintenance" // 维修中
)

// RoomType 房型
const (
	RoomTypeStandard = "standard" // 标准间
	RoomTypeDeluxe   = "deluxe"   // 豪华间
	RoomTypeFamily   = "family"   // 家庭房
	RoomTypeSuite    = "suite"    // 套房
)

// JSON jsonb 字段类型
type JSON map[string]interface{}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}
