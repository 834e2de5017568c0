package model

import "time"

// AttendanceStatus 单日考勤状态
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusLeave   AttendanceStatus = "Leave"
)

// Valid 判断是否为合法考勤状态
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave:
		return true
	}
	return false
}

// AttendanceRecord 提交给记录服务的单人单日考勤
type AttendanceRecord struct {
	PersonID string           `json:"person_id"`
	Date     string           `json:"date"` // "2006-01-02"
	Status   AttendanceStatus `json:"status"`
	Class    string           `json:"class,omitempty"`
	Section  string           `json:"section,omitempty"`
}

// AttendanceEvent 从记录服务拉回的单日考勤事件（规范化后的统一形态）
// 后端对明细报表有两种响应形态：records 数组，或
// presentDates/absentDates/leaveDates 三个日期数组；records 层
// 统一转换为按日期升序的事件序列
type AttendanceEvent struct {
	Date   time.Time        `json:"date"`
	Status AttendanceStatus `json:"status"`
}

// PersonAttendance 一个人在某报表窗口内的全部考勤事件
type PersonAttendance struct {
	PersonID string            `json:"person_id"`
	Name     string            `json:"name"`
	Class    string            `json:"class,omitempty"`
	Section  string            `json:"section,omitempty"`
	Events   []AttendanceEvent `json:"events"`
}

// AttendanceSummary 窗口化考勤汇总
type AttendanceSummary struct {
	PersonID    string `json:"person_id"`
	Name        string `json:"name"`
	Class       string `json:"class,omitempty"`
	Section     string `json:"section,omitempty"`
	PresentDays int    `json:"present_days"`
	AbsentDays  int    `json:"absent_days"`
	LeaveDays   int    `json:"leave_days"`
	// Percentage = round(present / (present+absent+leave) * 100)，无记录时为 0
	Percentage int `json:"attendance_percentage"`
}

// WindowType 报表窗口类型
type WindowType string

const (
	WindowWeekly   WindowType = "weekly"
	WindowMonthly  WindowType = "monthly"
	WindowPrevious WindowType = "previous" // 上一个自然月
	WindowYearly   WindowType = "yearly"
	WindowCustom   WindowType = "custom" // 指定年月
)

// Window 报表时间窗口选择器
type Window struct {
	Type  WindowType `json:"type"`
	Year  int        `json:"year,omitempty"`  // custom 专用
	Month int        `json:"month,omitempty"` // custom 专用，1-12
}

// DateRange 解析后的闭区间日期范围
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
