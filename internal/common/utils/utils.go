// Package utils 提供通用工具函数
package utils

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// confirmationCharset 确认码字符集，排除易混淆字符 0OI1
const confirmationCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ConfirmationCodePrefix 确认码前缀
const ConfirmationCodePrefix = "SAN-"

// GenerateConfirmationCode 生成对客确认码
// 格式: SAN- + 6位随机字符（排除 0OI1）
func GenerateConfirmationCode() string {
	return ConfirmationCodePrefix + GenerateRandomCode(6)
}

// GenerateRandomCode 从确认码字符集生成指定长度的随机字符串
func GenerateRandomCode(length int) string {
	var result strings.Builder
	for i := 0; i < length; i++ {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(confirmationCharset))))
		result.WriteByte(confirmationCharset[n.Int64()])
	}
	return result.String()
}

// GenerateFolioItemNo 生成账单条目编号
// 格式: F + 年月日时分秒 + 4位随机字符
func GenerateFolioItemNo() string {
	return fmt.Sprintf("F%s%s", time.Now().Format("20060102150405"), GenerateRandomCode(4))
}

// confirmationCodePattern 确认码格式校验
var confirmationCodePattern = regexp.MustCompile(`^SAN-[A-HJ-NP-Z2-9]{6}$`)

// ValidateConfirmationCode 验证确认码格式
func ValidateConfirmationCode(code string) bool {
	return confirmationCodePattern.MatchString(code)
}

// ValidateEmail 验证邮箱
func ValidateEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// ValidatePhone 验证电话号码（宽松，允许国际格式）
func ValidatePhone(phone string) bool {
	pattern := `^\+?[0-9][0-9\-\s]{5,19}$`
	matched, _ := regexp.MatchString(pattern, phone)
	return matched
}

// Nights 计算入住晚数（按日历日差向上取整，负数按0处理）
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	nights := int(d.Hours() / 24)
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// StringPtr 返回字符串指针
func StringPtr(s string) *string {
	return &s
}

// Int64Ptr 返回 int64 指针
func Int64Ptr(i int64) *int64 {
	return &i
}

// TimePtr 返回时间指针
func TimePtr(t time.Time) *time.Time {
	return &t
}

// SafeString 安全获取字符串指针的值
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeInt64 安全获取 int64 指针的值
func SafeInt64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}

// Contains 判断切片是否包含元素
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// Round2 金额保留两位小数
// 负数（冲账调整项）也要正确四舍五入，不能向零截断
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Pagination 分页参数
type Pagination struct {
	Page     int   `json:"page" form:"page"`
	PageSize int   `json:"page_size" form:"page_size"`
	Total    int64 `json:"total"`
}

// GetOffset 获取偏移量
func (p *Pagination) GetOffset() int {
	return (p.Page - 1) * p.PageSize
}

// GetLimit 获取限制数
func (p *Pagination) GetLimit() int {
	return p.PageSize
}

// Normalize 规范化分页参数
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}
