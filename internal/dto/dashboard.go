package dto

import "github.com/shopspring/decimal"

// ── 仪表盘模块 DTO ──

// DashboardStatsResponse 仪表盘头部统计卡片
// 数值来源于跨会话缓存，键缺失时为零值（可接受的过期风险）
type DashboardStatsResponse struct {
	CurrentMonthCollection decimal.Decimal `json:"current_month_collection"`
	CurrentMonthDues       decimal.Decimal `json:"current_month_dues"`
	StudentPresentCount    int64           `json:"student_present_count"`
	TeacherPresentCount    int64           `json:"teacher_present_count"`
	TotalPresentStaffCount int64           `json:"total_present_staff_count"`
}

// TrendPoint 六个月趋势序列中的一个点（旧→新排列）
type TrendPoint struct {
	Month  string          `json:"month"` // "2026-03"
	Amount decimal.Decimal `json:"amount"`
}

// DashboardTrendsResponse 收支/缴费六个月趋势
type DashboardTrendsResponse struct {
	Income  []TrendPoint `json:"income"`
	Expense []TrendPoint `json:"expense"`
}
