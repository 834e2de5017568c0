package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/dto"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/service"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/response"
)

// ActivityHandler 活动日志 HTTP 处理器
type ActivityHandler struct {
	actSvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(actSvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{actSvc: actSvc}
}

// List 活动日志（时间倒序，最多 50 条）
// GET /api/v1/activities
func (h *ActivityHandler) List(c *gin.Context) {
	entries, err := h.actSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, &dto.ActivityListResponse{List: entries})
}

// Record 追加一条活动记录，身份取自 JWT 声明
// POST /api/v1/activities
func (h *ActivityHandler) Record(c *gin.Context) {
	var req dto.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userName, ok := MustGetUserName(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	entry, err := h.actSvc.Record(c.Request.Context(), model.ActivityType(req.Type), userName, role)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, entry)
}
