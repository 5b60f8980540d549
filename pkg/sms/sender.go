// Package sms 短信服务
package sms

import (
	"context"
	"fmt"
	"time"
)

// TemplateCode 短信模板编码
type TemplateCode string

const (
	TemplateCodeBookingConfirm TemplateCode = "SMS_BOOKING_CONFIRM" // 预订确认
	TemplateCodeCheckInReady   TemplateCode = "SMS_CHECKIN_READY"   // 房间已排好
	TemplateCodeCancelNotify   TemplateCode = "SMS_CANCEL_NOTIFY"   // 取消通知
)

// Sender 短信发送器接口
type Sender interface {
	Send(ctx context.Context, phone string, templateCode TemplateCode, params map[string]string) error
}

// SendBookingConfirm 发送预订确认短信
func SendBookingConfirm(ctx context.Context, s Sender, phone, confirmationCode string, checkIn time.Time) error {
	return s.Send(ctx, phone, TemplateCodeBookingConfirm, map[string]string{
		"code":     confirmationCode,
		"check_in": checkIn.Format("2006-01-02"),
	})
}

// MockSender 模拟短信发送器（用于开发/测试）
type MockSender struct {
	SentMessages []MockMessage
}

// MockMessage 模拟消息
type MockMessage struct {
	Phone        string
	TemplateCode TemplateCode
	Params       map[string]string
	SentAt       time.Time
}

// NewMockSender 创建模拟发送器
func NewMockSender() *MockSender {
	return &MockSender{
		SentMessages: make([]MockMessage, 0),
	}
}

// Send 模拟发送
func (s *MockSender) Send(ctx context.Context, phone string, templateCode TemplateCode, params map[string]string) error {
	s.SentMessages = append(s.SentMessages, MockMessage{
		Phone:        phone,
		TemplateCode: templateCode,
		Params:       params,
		SentAt:       time.Now(),
	})
	fmt.Printf("[MockSMS] to %s (template: %s, params: %v)\n", phone, templateCode, params)
	return nil
}

// GetLastMessage 获取最后发送的消息
func (s *MockSender) GetLastMessage() *MockMessage {
	if len(s.SentMessages) == 0 {
		return nil
	}
	return &s.SentMessages[len(s.SentMessages)-1]
}

// Clear 清空消息记录
func (s *MockSender) Clear() {
	s.SentMessages = make([]MockMessage, 0)
}
