// Package booking 提供面向客人的预订 HTTP Handler
package booking

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/santaluna/hotel-backend/internal/common/handler"
	"github.com/santaluna/hotel-backend/internal/common/response"
	"github.com/santaluna/hotel-backend/internal/common/utils"
	bookingService "github.com/santaluna/hotel-backend/internal/service/booking"
)

// BookingHandler 客人预订处理器
type BookingHandler struct {
	bookingService *bookingService.BookingService
}

// NewBookingHandler 创建预订处理器
func NewBookingHandler(svc *bookingService.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: svc}
}

// CreateBooking 创建预订
// @Summary 创建预订
// @Description 客人在线下单,成功后返回确认码并发送短信
// @Tags 预订
// @Accept json
// @Produce json
// @Param request body bookingService.CreateBookingRequest true "请求参数"
// @Success 201 {object} response.Response{data=bookingService.BookingInfo}
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req bookingService.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	info, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	handler.MustCreate(c, err, info)
}

// Lookup 凭确认码查询预订
// @Summary 凭确认码查询预订
// @Description 确认码与下单邮箱同时匹配才返回,避免确认码被枚举
// @Tags 预订
// @Produce json
// @Param confirmation_code query string true "确认码"
// @Param email query string true "下单邮箱"
// @Success 200 {object} response.Response{data=bookingService.BookingDetail}
// @Router /api/v1/bookings [get]
func (h *BookingHandler) Lookup(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Query("confirmation_code")))
	if !utils.ValidateConfirmationCode(code) {
		response.BadRequest(c, "无效的确认码格式")
		return
	}
	email := c.Query("email")
	if email == "" {
		response.BadRequest(c, "缺少邮箱参数")
		return
	}
	detail, err := h.bookingService.GetBookingByCodeAndEmail(c.Request.Context(), code, email)
	handler.MustSucceed(c, err, detail)
}
