package model

import "github.com/shopspring/decimal"

// IncomeRecord 收入记录（来自记录服务的 /accounts/income）
type IncomeRecord struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // "2006-01-02"
	Source      string          `json:"source"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// ExpenseRecord 支出记录（来自记录服务的 /accounts/expense）
type ExpenseRecord struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// MonthAmount 按月聚合的金额点，仪表盘趋势图用
type MonthAmount struct {
	Month  string          `json:"month"` // "2026-03" 或月份名
	Amount decimal.Decimal `json:"amount"`
}

// MonthTally 带月份标记的滚动累计，跨月后读到的旧月份值视同清零
type MonthTally struct {
	Month  string          `json:"month"` // "2006-01"
	Amount decimal.Decimal `json:"amount"`
}
