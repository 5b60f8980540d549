// Package frontdesk 提供前台工作台相关的 HTTP Handler
package frontdesk

import (
	"github.com/gin-gonic/gin"

	"github.com/santaluna/hotel-backend/internal/common/handler"
	"github.com/santaluna/hotel-backend/internal/common/response"
	bookingService "github.com/santaluna/hotel-backend/internal/service/booking"
)

// BookingAdminHandler 前台预订处理器
type BookingAdminHandler struct {
	bookingService *bookingService.BookingService
	codeService    *bookingService.CodeService
}

// NewBookingAdminHandler 创建前台预订处理器
func NewBookingAdminHandler(svc *bookingService.BookingService, codeSvc *bookingService.CodeService) *BookingAdminHandler {
	return &BookingAdminHandler{bookingService: svc, codeService: codeSvc}
}

// ListBookings 预订列表
// @Summary 预订列表
// @Tags 前台
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Param status query string false "状态过滤"
// @Param source query string false "渠道过滤"
// @Param search query string false "姓名/确认码搜索"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/admin/bookings [get]
func (h *BookingAdminHandler) ListBookings(c *gin.Context) {
	var req bookingService.ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	list, total, err := h.bookingService.ListBookings(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, list, total, req.Page, req.PageSize)
}

// GetBooking 预订详情
// @Summary 预订详情
// @Description 含账单合计与待收余额
// @Tags 前台
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=bookingService.BookingDetail}
// @Router /api/admin/bookings/{id} [get]
func (h *BookingAdminHandler) GetBooking(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}
	detail, err := h.bookingService.GetBookingByID(c.Request.Context(), id)
	handler.MustSucceed(c, err, detail)
}

// GetBookingByCode 凭确认码查询预订
// @Summary 凭确认码查询预订
// @Description 前台扫码或客人报确认码时使用，不校验邮箱
// @Tags 前台
// @Produce json
// @Security BearerAuth
// @Param code path string true "确认码 SAN-XXXXXX"
// @Success 200 {object} response.Response{data=bookingService.BookingDetail}
// @Router /api/admin/bookings/code/{code} [get]
func (h *BookingAdminHandler) GetBookingByCode(c *gin.Context) {
	code, ok := handler.ParseConfirmationCode(c)
	if !ok {
		return
	}
	detail, err := h.bookingService.GetBookingByCode(c.Request.Context(), code)
	handler.MustSucceed(c, err, detail)
}

// CreateWalkIn 创建上门预订
// @Summary 创建上门预订
// @Tags 前台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body bookingService.WalkInRequest true "请求参数"
// @Success 201 {object} response.Response{data=bookingService.BookingInfo}
// @Router /api/admin/bookings [post]
func (h *BookingAdminHandler) CreateWalkIn(c *gin.Context) {
	staffID, ok := handler.RequireStaffID(c)
	if !ok {
		return
	}
	var req bookingService.WalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	info, err := h.bookingService.CreateWalkIn(c.Request.Context(), staffID, &req)
	handler.MustCreate(c, err, info)
}

// ConfirmBooking 确认预订
// @Summary 确认预订
// @Tags 前台
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=bookingService.BookingInfo}
// @Router /api/admin/bookings/{id}/confirm [post]
func (h *BookingAdminHandler) ConfirmBooking(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}
	info, err := h.bookingService.ConfirmBooking(c.Request.Context(), id)
	handler.MustSucceed(c, err, info)
}

// CancelBooking 取消预订
// @Summary 取消预订
// @Tags 前台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Param request body bookingService.CancelRequest false "取消原因"
// @Success 200 {object} response.Response{data=bookingService.BookingInfo}
// @Router /api/admin/bookings/{id}/cancel [post]
func (h *BookingAdminHandler) CancelBooking(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}
	var req bookingService.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "参数错误")
		return
	}
	info, err := h.bookingService.CancelBooking(c.Request.Context(), id, &req)
	handler.MustSucceedWithMessage(c, err, "预订已取消", info)
}

// AssignRoom 分配房间
// @Summary 分配房间
// @Tags 前台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Param request body bookingService.AssignRoomRequest true "请求参数"
// @Success 200 {object} response.Response{data=bookingService.BookingInfo}
// @Router /api/admin/bookings/{id}/assign-room [post]
func (h *BookingAdminHandler) AssignRoom(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}
	var req bookingService.AssignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	info, err := h.bookingService.AssignRoom(c.Request.Context(), staffID, id, &req)
	handler.MustSucceed(c, err, info)
}

// VerifyBooking 入住核验
// @Summary 入住核验
// @Description 登记证件核验与付款确认两步,可分开提交
// @Tags 前台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Param request body bookingService.VerifyRequest true "请求参数"
// @Success 200 {object} response.Response{data=bookingService.BookingInfo}
// @Router /api/admin/bookings/{id}/verify [post]
func (h *BookingAdminHandler) VerifyBooking(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}
	var req bookingService.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	info, err := h.bookingService.VerifyBooking(c.Request.Context(), staffID, id, &req)
	handler.MustSucceed(c, err, info)
}

// CheckIn 办理入住
// @Summary 办理入住
// @Tags 前台
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=bookingService.BookingInfo}
// @Router /api/admin/bookings/{id}/check-in [post]
func (h *BookingAdminHandler) CheckIn(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}
	info, err := h.bookingService.CheckIn(c.Request.Context(), staffID, id)
	handler.MustSucceed(c, err, info)
}

// CheckOut 办理退房
// @Summary 办理退房
// @Description 余额未结清时拒绝退房,正午后退房可确认滞留费
// @Tags 前台
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Param request body bookingService.CheckOutRequest true "请求参数"
// @Success 200 {object} response.Response{data=bookingService.BookingDetail}
// @Router /api/admin/bookings/{id}/check-out [post]
func (h *BookingAdminHandler) CheckOut(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}
	var req bookingService.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "参数错误")
		return
	}
	detail, err := h.bookingService.CheckOut(c.Request.Context(), staffID, id, &req)
	handler.MustSucceed(c, err, detail)
}

// MarkNoShow 标记未到店
// @Summary 标记未到店
// @Tags 前台
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=bookingService.BookingInfo}
// @Router /api/admin/bookings/{id}/no-show [post]
func (h *BookingAdminHandler) MarkNoShow(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}
	info, err := h.bookingService.MarkNoShow(c.Request.Context(), id)
	handler.MustSucceed(c, err, info)
}

// BookingQRCode 确认码二维码
// @Summary 确认码二维码
// @Description 返回 PNG 图片,前台打印供客人扫码
// @Tags 前台
// @Produce png
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {file} binary
// @Router /api/admin/bookings/{id}/qrcode [get]
func (h *BookingAdminHandler) BookingQRCode(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}
	detail, err := h.bookingService.GetBookingByID(c.Request.Context(), id)
	if err != nil {
		handler.HandleError(c, err)
		return
	}
	png, err := h.codeService.GenerateQRCodePNG(detail.ConfirmationCode)
	if err != nil {
		handler.HandleError(c, err)
		return
	}
	c.Data(200, "image/png", png)
}
