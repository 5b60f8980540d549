// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown         = New(1000, "未知错误")
	ErrInvalidParams   = New(1001, "参数错误")
	ErrNotFound        = New(1002, "资源不存在")
	ErrAlreadyExists   = New(1003, "资源已存在")
	ErrDatabaseError   = New(1004, "数据库错误")
	ErrCacheError      = New(1005, "缓存错误")
	ErrInternalError   = New(1006, "内部错误")
	ErrExternalService = New(1007, "外部服务错误")
	ErrRateLimitExceed = New(1008, "请求过于频繁")
	ErrOperationFailed = New(1009, "操作失败")
)

// 认证错误码 (2000-2999)
var (
	ErrUnauthorized     = New(2000, "未登录")
	ErrTokenExpired     = New(2001, "登录已过期")
	ErrTokenInvalid     = New(2002, "无效的令牌")
	ErrPermissionDenied = New(2003, "权限不足")
	ErrAccountDisabled  = New(2004, "账号已禁用")
	ErrPasswordError    = New(2005, "用户名或密码错误")
	ErrStaffNotFound    = New(2006, "员工不存在")
	ErrStaffExists      = New(2007, "员工已存在")
)

// 客人错误码 (3000-3999)
var (
	ErrGuestNotFound = New(3000, "客人不存在")
	ErrGuestExists   = New(3001, "客人已存在")
	ErrEmailInvalid  = New(3002, "无效的邮箱")
	ErrPhoneInvalid  = New(3003, "无效的电话号码")
)

// 房间错误码 (4000-4999)
var (
	ErrRoomNotFound       = New(4000, "房间不存在")
	ErrRoomNotAvailable   = New(4001, "房间不可用")
	ErrRoomOccupied       = New(4002, "房间已入住")
	ErrRoomNoExists       = New(4003, "房间号已存在")
	ErrRoomTypeMismatch   = New(4004, "房间类型与预订不符")
	ErrRoomCapacityExceed = New(4005, "房间容量不足")
	ErrRoomAssignConflict = New(4006, "房间已被其他预订占用")
	ErrRoomMaintenance    = New(4007, "房间维护中")
)

// 预订错误码 (5000-5999)
var (
	ErrBookingNotFound      = New(5000, "预订不存在")
	ErrBookingStatusError   = New(5001, "预订状态异常")
	ErrBookingConflict      = New(5002, "日期范围内房间已被预订")
	ErrBookingCannotCancel  = New(5003, "该预订无法取消")
	ErrDateRangeInvalid     = New(5004, "退房日期必须晚于入住日期")
	ErrRoomNotAssigned      = New(5005, "尚未分配房间")
	ErrIDNotVerified        = New(5006, "证件尚未核验")
	ErrPaymentNotConfirmed  = New(5007, "付款尚未确认")
	ErrBalanceOutstanding   = New(5008, "仍有未结清余额")
	ErrConfirmationNotFound = New(5009, "确认码不存在")
	ErrNoAvailableRoom      = New(5010, "所选日期无可用房间")
)

// 账单/支付错误码 (6000-6999)
var (
	ErrFolioItemInvalid  = New(6000, "账单条目无效")
	ErrChargeTypeInvalid = New(6001, "无效的消费类型")
	ErrPaymentInvalid    = New(6002, "支付金额无效")
	ErrPaymentExceed     = New(6003, "支付金额超过应付余额")
	ErrPaymentNotFound   = New(6004, "支付记录不存在")
)

// 行程错误码 (7000-7999)
var (
	ErrTourNotFound = New(7000, "行程套餐不存在")
	ErrTourDisabled = New(7001, "行程套餐已下架")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}
