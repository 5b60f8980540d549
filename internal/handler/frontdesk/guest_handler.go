package frontdesk

import (
	"github.com/gin-gonic/gin"

	"github.com/santaluna/hotel-backend/internal/common/handler"
	"github.com/santaluna/hotel-backend/internal/common/response"
	guestService "github.com/santaluna/hotel-backend/internal/service/guest"
)

// GuestHandler 住客档案处理器
type GuestHandler struct {
	guestService *guestService.GuestService
}

// NewGuestHandler 创建住客档案处理器
func NewGuestHandler(svc *guestService.GuestService) *GuestHandler {
	return &GuestHandler{guestService: svc}
}

// ListGuests 住客列表
// @Summary 住客列表
// @Tags 住客
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Param search query string false "姓名/邮箱/手机号搜索"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/admin/guests [get]
func (h *GuestHandler) ListGuests(c *gin.Context) {
	p := handler.BindPagination(c)
	search := c.Query("search")
	list, total, err := h.guestService.ListGuests(c.Request.Context(), p.Page, p.PageSize, search)
	handler.MustSucceedPage(c, err, list, total, p.Page, p.PageSize)
}

// GetGuest 住客详情
// @Summary 住客详情
// @Description 含历史入住记录,证件号脱敏展示
// @Tags 住客
// @Produce json
// @Security BearerAuth
// @Param id path int true "住客ID"
// @Success 200 {object} response.Response{data=guestService.GuestDetail}
// @Router /api/admin/guests/{id} [get]
func (h *GuestHandler) GetGuest(c *gin.Context) {
	id, ok := handler.ParseID(c, "住客")
	if !ok {
		return
	}
	detail, err := h.guestService.GetGuest(c.Request.Context(), id)
	handler.MustSucceed(c, err, detail)
}

// UpdateGuest 更新住客档案
// @Summary 更新住客档案
// @Description 证件号落库前加密存储
// @Tags 住客
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "住客ID"
// @Param request body guestService.UpdateGuestRequest true "请求参数"
// @Success 200 {object} response.Response{data=guestService.GuestInfo}
// @Router /api/admin/guests/{id} [put]
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	id, ok := handler.ParseID(c, "住客")
	if !ok {
		return
	}
	var req guestService.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	info, err := h.guestService.UpdateGuest(c.Request.Context(), id, &req)
	handler.MustSucceed(c, err, info)
}
