package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/dto"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/records"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/service"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attSvc: attSvc}
}

// Roster 当日点名册（Teacher 角色限定在任课班级）
// GET /api/v1/attendance/roster?scope=students|staff&class=&section=
func (h *AttendanceHandler) Roster(c *gin.Context) {
	var q dto.RosterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rows, sample, err := h.attSvc.Roster(c.Request.Context(), &q, CallerFromContext(c))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	if sample {
		response.OKWithWarning(c, rows, sampleDataWarning)
		return
	}
	response.OK(c, rows)
}

// Submit 整日考勤批量提交
// POST /api/v1/attendance
func (h *AttendanceHandler) Submit(c *gin.Context) {
	var req dto.SubmitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.attSvc.Submit(c.Request.Context(), &req); err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.Created(c, gin.H{"date": req.Date, "count": len(req.Records)})
}

// Report 窗口化考勤报表
// GET /api/v1/attendance/report?scope=&type=&mode=&class=&section=&person_id=&year=&month=
func (h *AttendanceHandler) Report(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, sample, err := h.attSvc.Report(c.Request.Context(), &q)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	if sample {
		response.OKWithWarning(c, resp, sampleDataWarning)
		return
	}
	response.OK(c, resp)
}

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWindowInvalid):
		response.BadRequest(c, 22001, "报表窗口参数不合法")
	case errors.Is(err, service.ErrPersonRequired):
		response.BadRequest(c, 22002, "需要 person_id 或 class")
	case errors.Is(err, service.ErrSubmitFailed):
		response.BadGateway(c, 22003, "考勤提交失败，请重试")
	case errors.Is(err, records.ErrBackendUnavailable):
		response.BadGateway(c, 22004, "记录服务暂不可用")
	default:
		response.InternalError(c)
	}
}
