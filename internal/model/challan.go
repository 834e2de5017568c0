package model

import "github.com/shopspring/decimal"

// FeeLine 缴费单上的一行附加费用
type FeeLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Challan 可打印缴费单（临时对象，计算后即弃，不回传记录服务）
type Challan struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	RollNumber  string `json:"roll_number"`
	Class       string `json:"class"`
	Section     string `json:"section"`

	Months      []string        `json:"months"`       // 本单覆盖的月份
	TuitionLine decimal.Decimal `json:"tuition_line"` // 月费 × 月份数
	ExamFee     decimal.Decimal `json:"exam_fee"`
	OtherFees   []FeeLine       `json:"other_fees"`
	Total       decimal.Decimal `json:"total"`

	IssueDate string `json:"issue_date"` // "2006-01-02"
}
