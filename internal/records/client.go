package records

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/config"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
)

// 本包是外部学籍记录服务的取数层：负责请求、字段归一化，以及
// 读接口失败时降级到内置样例数据。各实体接口的 sample 返回值标记
// 本次数据是否来自样例（调用方向用户透出非致命警告）。
// 写接口（考勤批量提交）不降级，错误原样上抛。

// StudentAPI 学生记录接口
type StudentAPI interface {
	// List 拉取学生名单，可按班级/班别过滤；过滤条件为空则不限
	List(ctx context.Context, class, section string) (students []model.Student, sample bool, err error)
}

// StaffAPI 教职工记录接口
type StaffAPI interface {
	List(ctx context.Context) (staff []model.Staff, sample bool, err error)
}

// AttendanceAPI 考勤记录接口
type AttendanceAPI interface {
	// SubmitStudentBatch 整日学生考勤批量提交，全量成功或整体失败
	SubmitStudentBatch(ctx context.Context, date string, recs []model.AttendanceRecord) error
	// SubmitStaffBatch 整日教职工考勤批量提交
	SubmitStaffBatch(ctx context.Context, date string, recs []model.AttendanceRecord) error
	// StudentEvents 单个学生在窗口内的原始考勤事件
	StudentEvents(ctx context.Context, studentID string, rng model.DateRange) (events []model.AttendanceEvent, sample bool, err error)
	// ClassEvents 整班学生在窗口内的原始考勤事件
	ClassEvents(ctx context.Context, class, section string, rng model.DateRange) (persons []model.PersonAttendance, sample bool, err error)
	// StaffEvents 全体教职工在窗口内的原始考勤事件
	StaffEvents(ctx context.Context, rng model.DateRange) (persons []model.PersonAttendance, sample bool, err error)
}

// AccountsAPI 收支记录接口
type AccountsAPI interface {
	Income(ctx context.Context, rng model.DateRange) (recs []model.IncomeRecord, sample bool, err error)
	Expense(ctx context.Context, rng model.DateRange) (recs []model.ExpenseRecord, sample bool, err error)
}

// Client 记录服务客户端聚合入口
type Client struct {
	Students   StudentAPI
	Staff      StaffAPI
	Attendance AttendanceAPI
	Accounts   AccountsAPI
}

// NewClient 创建记录服务客户端
func NewClient(cfg *config.RecordsConfig, logger *zap.Logger) *Client {
	core := &httpCore{
		baseURL: cfg.BaseURL,
		hc:      &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
	return &Client{
		Students:   &studentClient{core: core},
		Staff:      &staffClient{core: core},
		Attendance: &attendanceClient{core: core},
		Accounts:   &accountsClient{core: core},
	}
}
