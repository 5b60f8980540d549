// Package catalog 提供目录与报价相关的 HTTP Handler
package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/santaluna/hotel-backend/internal/common/handler"
	"github.com/santaluna/hotel-backend/internal/common/response"
	catalogService "github.com/santaluna/hotel-backend/internal/service/catalog"
)

// CatalogHandler 目录处理器
type CatalogHandler struct {
	roomService  *catalogService.RoomService
	tourService  *catalogService.TourService
	quoteService *catalogService.QuoteService
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(
	roomSvc *catalogService.RoomService,
	tourSvc *catalogService.TourService,
	quoteSvc *catalogService.QuoteService,
) *CatalogHandler {
	return &CatalogHandler{
		roomService:  roomSvc,
		tourService:  tourSvc,
		quoteService: quoteSvc,
	}
}

// ListRooms 房间目录
// @Summary 房间目录
// @Tags 目录
// @Produce json
// @Success 200 {object} response.Response{data=[]catalogService.RoomInfo}
// @Router /api/v1/rooms [get]
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.ListRooms(c.Request.Context())
	handler.MustSucceed(c, err, rooms)
}

// GetRoom 房间详情
// @Summary 房间详情
// @Tags 目录
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response{data=catalogService.RoomInfo}
// @Router /api/v1/rooms/{id} [get]
func (h *CatalogHandler) GetRoom(c *gin.Context) {
	id, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}
	room, err := h.roomService.GetRoom(c.Request.Context(), id)
	handler.MustSucceed(c, err, room)
}

// Availability 可订房间查询
// @Summary 可订房间查询
// @Tags 目录
// @Produce json
// @Param check_in query string true "入住日期 YYYY-MM-DD"
// @Param check_out query string true "退房日期 YYYY-MM-DD"
// @Param guests query int false "入住人数"
// @Param room_type query string false "房型"
// @Success 200 {object} response.Response{data=[]catalogService.RoomInfo}
// @Router /api/v1/rooms/available [get]
func (h *CatalogHandler) Availability(c *gin.Context) {
	var req catalogService.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	rooms, err := h.roomService.Availability(c.Request.Context(), &req)
	handler.MustSucceed(c, err, rooms)
}

// ListTours 跟团游目录
// @Summary 跟团游目录
// @Tags 目录
// @Produce json
// @Success 200 {object} response.Response{data=[]catalogService.TourInfo}
// @Router /api/v1/tours [get]
func (h *CatalogHandler) ListTours(c *gin.Context) {
	tours, err := h.tourService.ListTours(c.Request.Context())
	handler.MustSucceed(c, err, tours)
}

// GetTour 跟团游详情
// @Summary 跟团游详情
// @Tags 目录
// @Produce json
// @Param id path int true "套餐ID"
// @Success 200 {object} response.Response{data=catalogService.TourInfo}
// @Router /api/v1/tours/{id} [get]
func (h *CatalogHandler) GetTour(c *gin.Context) {
	id, ok := handler.ParseID(c, "套餐")
	if !ok {
		return
	}
	tour, err := h.tourService.GetTour(c.Request.Context(), id)
	handler.MustSucceed(c, err, tour)
}

// Quote 报价预览
// @Summary 报价预览
// @Tags 目录
// @Accept json
// @Produce json
// @Param request body catalogService.QuoteRequest true "请求参数"
// @Success 200 {object} response.Response{data=booking.Quote}
// @Router /api/v1/quotes [post]
func (h *CatalogHandler) Quote(c *gin.Context) {
	var req catalogService.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	quote, err := h.quoteService.Quote(c.Request.Context(), &req)
	handler.MustSucceed(c, err, quote)
}
