package handler

import "github.com/MuhammadAwais989/school-managment-system-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Fee        *FeeHandler
	Attendance *AttendanceHandler
	Dashboard  *DashboardHandler
	Activity   *ActivityHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Fee:        NewFeeHandler(svc.Fee, svc.Export),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		Activity:   NewActivityHandler(svc.Activity),
		Export:     NewExportHandler(svc.Fee, svc.Attendance, svc.Export),
	}
}
