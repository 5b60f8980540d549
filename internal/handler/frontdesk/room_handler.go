package frontdesk

import (
	"github.com/gin-gonic/gin"

	"github.com/santaluna/hotel-backend/internal/common/handler"
	"github.com/santaluna/hotel-backend/internal/common/response"
	catalogService "github.com/santaluna/hotel-backend/internal/service/catalog"
)

// RoomAdminHandler 房态管理处理器
type RoomAdminHandler struct {
	roomService *catalogService.RoomService
	tourService *catalogService.TourService
}

// NewRoomAdminHandler 创建房态管理处理器
func NewRoomAdminHandler(roomSvc *catalogService.RoomService, tourSvc *catalogService.TourService) *RoomAdminHandler {
	return &RoomAdminHandler{roomService: roomSvc, tourService: tourSvc}
}

// ListRooms 房间管理列表
// @Summary 房间管理列表
// @Tags 房态
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]catalogService.RoomInfo}
// @Router /api/admin/rooms [get]
func (h *RoomAdminHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.ListRooms(c.Request.Context())
	handler.MustSucceed(c, err, rooms)
}

// CreateRoom 新增房间
// @Summary 新增房间
// @Description 仅经理角色可用
// @Tags 房态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body catalogService.CreateRoomRequest true "请求参数"
// @Success 201 {object} response.Response{data=catalogService.RoomInfo}
// @Router /api/admin/rooms [post]
func (h *RoomAdminHandler) CreateRoom(c *gin.Context) {
	var req catalogService.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	room, err := h.roomService.CreateRoom(c.Request.Context(), &req)
	handler.MustCreate(c, err, room)
}

// UpdateRoom 更新房间
// @Summary 更新房间
// @Description 仅经理角色可用
// @Tags 房态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "房间ID"
// @Param request body catalogService.UpdateRoomRequest true "请求参数"
// @Success 200 {object} response.Response{data=catalogService.RoomInfo}
// @Router /api/admin/rooms/{id} [put]
func (h *RoomAdminHandler) UpdateRoom(c *gin.Context) {
	id, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}
	var req catalogService.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	room, err := h.roomService.UpdateRoom(c.Request.Context(), id, &req)
	handler.MustSucceed(c, err, room)
}

// UpdateRoomStatus 更新房态
// @Summary 更新房态
// @Description 住客在住的房间不允许改动
// @Tags 房态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "房间ID"
// @Param request body catalogService.UpdateRoomStatusRequest true "请求参数"
// @Success 200 {object} response.Response{data=catalogService.RoomInfo}
// @Router /api/admin/rooms/{id}/status [put]
func (h *RoomAdminHandler) UpdateRoomStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}
	var req catalogService.UpdateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	room, err := h.roomService.UpdateRoomStatus(c.Request.Context(), id, &req)
	handler.MustSucceed(c, err, room)
}

// CreateTour 新增跟团游
// @Summary 新增跟团游
// @Description 仅经理角色可用
// @Tags 房态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body catalogService.CreateTourRequest true "请求参数"
// @Success 201 {object} response.Response{data=catalogService.TourInfo}
// @Router /api/admin/tours [post]
func (h *RoomAdminHandler) CreateTour(c *gin.Context) {
	var req catalogService.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	tour, err := h.tourService.CreateTour(c.Request.Context(), &req)
	handler.MustCreate(c, err, tour)
}

// UpdateTour 更新跟团游
// @Summary 更新跟团游
// @Description 仅经理角色可用,可上架或下架
// @Tags 房态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "套餐ID"
// @Param request body catalogService.UpdateTourRequest true "请求参数"
// @Success 200 {object} response.Response{data=catalogService.TourInfo}
// @Router /api/admin/tours/{id} [put]
func (h *RoomAdminHandler) UpdateTour(c *gin.Context) {
	id, ok := handler.ParseID(c, "套餐")
	if !ok {
		return
	}
	var req catalogService.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	tour, err := h.tourService.UpdateTour(c.Request.Context(), id, &req)
	handler.MustSucceed(c, err, tour)
}
