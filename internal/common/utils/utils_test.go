// Package utils 工具函数单元测试
package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateConfirmationCode(t *testing.T) {
	pattern := regexp.MustCompile(`^SAN-[A-Z2-9]{6}$`)

	for i := 0; i < 200; i++ {
		code := GenerateConfirmationCode()
		assert.Regexp(t, pattern, code)
		// 不含易混淆字符
		assert.NotContains(t, code[4:], "0")
		assert.NotContains(t, code[4:], "O")
		assert.NotContains(t, code[4:], "1")
		assert.NotContains(t, code[4:], "I")
	}
}

func TestValidateConfirmationCode(t *testing.T) {
	assert.True(t, ValidateConfirmationCode("SAN-ABCDEF"))
	assert.True(t, ValidateConfirmationCode("SAN-23456Z"))
	// 易混淆字符不合法
	assert.False(t, ValidateConfirmationCode("SAN-ABC0EF"))
	assert.False(t, ValidateConfirmationCode("SAN-ABCO1I"))
	assert.False(t, ValidateConfirmationCode("san-abcdef"))
	assert.False(t, ValidateConfirmationCode("SAN-ABCDE"))
	assert.False(t, ValidateConfirmationCode("XYZ-ABCDEF"))
}

func TestNights(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 3, Nights(day(1), day(4)))
	assert.Equal(t, 1, Nights(day(1), day(2)))
	// 同日与倒置日期按0处理
	assert.Equal(t, 0, Nights(day(4), day(4)))
	assert.Equal(t, 0, Nights(day(4), day(1)))
	// 不足一天向上取整
	assert.Equal(t, 1, Nights(day(1), day(1).Add(6*time.Hour)))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("guest@example.com"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+66 81 234 5678"))
	assert.True(t, ValidatePhone("0812345678"))
	assert.False(t, ValidatePhone("abc"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 7056.0, Round2(6300*1.12))
	assert.Equal(t, 0.1, Round2(0.1))
	assert.Equal(t, 12.34, Round2(12.3449))

	// 冲账调整为负数时同样四舍五入，不向零截断
	assert.Equal(t, -1.01, Round2(-1.006))
	assert.Equal(t, -0.5, Round2(-0.5))
}

func TestPagination_Normalize(t *testing.T) {
	p := Pagination{Page: 0, PageSize: 0}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 0, p.GetOffset())

	p = Pagination{Page: 3, PageSize: 500}
	p.Normalize()
	assert.Equal(t, 100, p.PageSize)
	assert.Equal(t, 200, p.GetOffset())
}
