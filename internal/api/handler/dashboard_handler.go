package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/service"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	dashSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashSvc: dashSvc}
}

// Stats 统计卡片
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}

// Trends 近六个月收支趋势
// GET /api/v1/dashboard/trends
func (h *DashboardHandler) Trends(c *gin.Context) {
	trends, sample, err := h.dashSvc.Trends(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	if sample {
		response.OKWithWarning(c, trends, sampleDataWarning)
		return
	}
	response.OK(c, trends)
}
