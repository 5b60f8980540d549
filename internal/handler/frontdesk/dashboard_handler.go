package frontdesk

import (
	"github.com/gin-gonic/gin"

	"github.com/santaluna/hotel-backend/internal/common/handler"
	frontdeskService "github.com/santaluna/hotel-backend/internal/service/frontdesk"
)

// DashboardHandler 工作台概览处理器
type DashboardHandler struct {
	dashboardService *frontdeskService.DashboardService
}

// NewDashboardHandler 创建工作台概览处理器
func NewDashboardHandler(svc *frontdeskService.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: svc}
}

// GetStats 当日概览
// @Summary 当日概览
// @Description 今日到店/离店、在住、待确认、今日收款与入住率，可通过 date 查看历史某日
// @Tags 前台
// @Produce json
// @Security BearerAuth
// @Param date query string false "统计日期 YYYY-MM-DD，默认当日"
// @Success 200 {object} response.Response{data=frontdeskService.DashboardStats}
// @Router /api/admin/dashboard [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	date, ok := handler.ParseQueryDate(c, "date", "无效的日期格式")
	if !ok {
		return
	}
	stats, err := h.dashboardService.GetStats(c.Request.Context(), date)
	handler.MustSucceed(c, err, stats)
}
