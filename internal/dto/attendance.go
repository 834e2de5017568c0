package dto

import "github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"

// ── 考勤模块 DTO ──

// AttendanceEntryRequest 单人考勤行
type AttendanceEntryRequest struct {
	PersonID string `json:"person_id" binding:"required"`
	Status   string `json:"status"    binding:"required,oneof=Present Absent Leave"`
	Class    string `json:"class"`
	Section  string `json:"section"`
}

// SubmitAttendanceRequest 整日考勤批量提交请求
type SubmitAttendanceRequest struct {
	Scope   string                   `json:"scope"   binding:"required,oneof=students staff"`
	Date    string                   `json:"date"    binding:"required,datetime=2006-01-02"`
	Records []AttendanceEntryRequest `json:"records" binding:"required,min=1,dive"`
}

// RosterQuery 点名册查询参数
type RosterQuery struct {
	Scope   string `form:"scope"   binding:"required,oneof=students staff"`
	Class   string `form:"class"`
	Section string `form:"section"`
}

// RosterRow 点名册一行（默认 Present，由页面按需改为 Absent/Leave）
type RosterRow struct {
	PersonID   string `json:"person_id"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number,omitempty"`
	Class      string `json:"class,omitempty"`
	Section    string `json:"section,omitempty"`
	Status     string `json:"status"`
}

// ReportQuery 考勤报表查询参数
type ReportQuery struct {
	Scope    string `form:"scope"     binding:"required,oneof=students staff"`
	Type     string `form:"type"      binding:"required,oneof=weekly monthly previous yearly custom"`
	Mode     string `form:"mode"      binding:"omitempty,oneof=summary detail"`
	Class    string `form:"class"`
	Section  string `form:"section"`
	PersonID string `form:"person_id"`
	Year     int    `form:"year"      binding:"omitempty,min=2000,max=2100"`
	Month    int    `form:"month"     binding:"omitempty,min=1,max=12"`
}

// Window 将查询参数转为窗口选择器
func (q *ReportQuery) Window() model.Window {
	return model.Window{
		Type:  model.WindowType(q.Type),
		Year:  q.Year,
		Month: q.Month,
	}
}

// DetailRow 明细报表一行（单人/多人明细共用同一行结构）
type DetailRow struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}

// AttendanceReportResponse 考勤报表响应
// Summary 与 Detail 互斥，按 mode 填充其一
type AttendanceReportResponse struct {
	Mode    string                    `json:"mode"`
	From    string                    `json:"from"`
	To      string                    `json:"to"`
	Summary []model.AttendanceSummary `json:"summary,omitempty"`
	Detail  []DetailRow               `json:"detail,omitempty"`
}
