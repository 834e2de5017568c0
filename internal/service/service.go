package service

import (
	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/config"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/records"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/kvstore"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Fee        FeeService
	Attendance AttendanceService
	Dashboard  DashboardService
	Activity   ActivityService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	rc *records.Client,
	store kvstore.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		Fee:        NewFeeService(&cfg.Billing, rc, store, logger),
		Attendance: NewAttendanceService(rc, store, logger),
		Dashboard:  NewDashboardService(rc, store, logger),
		Activity:   NewActivityService(store, logger),
		Export:     NewExportService(logger),
	}
}
