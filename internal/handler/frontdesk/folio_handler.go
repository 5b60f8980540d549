package frontdesk

import (
	"github.com/gin-gonic/gin"

	"github.com/santaluna/hotel-backend/internal/common/handler"
	"github.com/santaluna/hotel-backend/internal/common/response"
	folioService "github.com/santaluna/hotel-backend/internal/service/folio"
)

// FolioHandler 账单处理器
type FolioHandler struct {
	folioService *folioService.FolioService
}

// NewFolioHandler 创建账单处理器
func NewFolioHandler(svc *folioService.FolioService) *FolioHandler {
	return &FolioHandler{folioService: svc}
}

// GetFolio 查询账单
// @Summary 查询账单
// @Description 返回消费明细与合计、已付、待收余额
// @Tags 账单
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=folioService.FolioSummary}
// @Router /api/admin/bookings/{id}/folio [get]
func (h *FolioHandler) GetFolio(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}
	summary, err := h.folioService.GetFolio(c.Request.Context(), id)
	handler.MustSucceed(c, err, summary)
}

// AddCharge 追加消费
// @Summary 追加消费
// @Description 仅住店中的预订可记账,负数金额只允许调整项
// @Tags 账单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Param request body folioService.AddChargeRequest true "请求参数"
// @Success 201 {object} response.Response{data=folioService.FolioItemInfo}
// @Router /api/admin/bookings/{id}/folio [post]
func (h *FolioHandler) AddCharge(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}
	var req folioService.AddChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	item, err := h.folioService.AddCharge(c.Request.Context(), staffID, id, &req)
	handler.MustCreate(c, err, item)
}

// RecordPayment 登记收款
// @Summary 登记收款
// @Description 收款不得超过当前待收余额
// @Tags 账单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Param request body folioService.RecordPaymentRequest true "请求参数"
// @Success 201 {object} response.Response{data=folioService.PaymentInfo}
// @Router /api/admin/bookings/{id}/payments [post]
func (h *FolioHandler) RecordPayment(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}
	var req folioService.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	payment, err := h.folioService.RecordPayment(c.Request.Context(), staffID, id, &req)
	handler.MustCreate(c, err, payment)
}

// ListPayments 收款记录
// @Summary 收款记录
// @Tags 账单
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=[]folioService.PaymentInfo}
// @Router /api/admin/bookings/{id}/payments [get]
func (h *FolioHandler) ListPayments(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}
	payments, err := h.folioService.ListPayments(c.Request.Context(), id)
	handler.MustSucceed(c, err, payments)
}
