package model

import "github.com/shopspring/decimal"

// AcademicMonths 学年月份序列（4 月开学，次年 3 月结束）
// 缴费台账的 DuesByMonth 固定按此顺序排列
var AcademicMonths = []string{
	"April", "May", "June", "July", "August", "September",
	"October", "November", "December", "January", "February", "March",
}

// LedgerStatus 台账缴费状态
type LedgerStatus string

const (
	StatusFullyPaid     LedgerStatus = "Fully Paid"
	StatusPartiallyPaid LedgerStatus = "Partially Paid"
	StatusNotPaid       LedgerStatus = "Not Paid"
)

// Payment 一笔缴费记录
type Payment struct {
	Date   string          `json:"date"` // "2006-01-02"
	Amount decimal.Decimal `json:"amount"`
	Months []string        `json:"months"` // 本次缴费覆盖的月份
	Mode   string          `json:"mode"`   // Cash | Bank | Online
}

// MonthDue 学年内单月应缴状态
// Paid 标志不独立存储，而是由 PaymentHistory 投影得出
type MonthDue struct {
	Month string          `json:"month"`
	Due   decimal.Decimal `json:"due"`
	Paid  bool            `json:"paid"`
}

// FeeLedger 学生缴费台账（派生状态，持久化于跨会话缓存）
//
// 不变量：PaidFees + Dues == TotalFees 恒成立；
// Status 是 Dues 相对 TotalFees 的纯函数
type FeeLedger struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	RollNumber  string `json:"roll_number"`
	Class       string `json:"class"`
	Section     string `json:"section"`

	MonthlyFee decimal.Decimal `json:"monthly_fee"`
	TotalFees  decimal.Decimal `json:"total_fees"`
	PaidFees   decimal.Decimal `json:"paid_fees"`
	Dues       decimal.Decimal `json:"dues"`

	Status         LedgerStatus `json:"status"`
	DuesByMonth    []MonthDue   `json:"dues_by_month"`
	PaymentHistory []Payment    `json:"payment_history"`
}

// BaseClass 去掉班别后缀的班级名（"Nine B" → "Nine"），报表分组用
func BaseClass(class string) string {
	for i := 0; i < len(class); i++ {
		if class[i] == ' ' {
			return class[:i]
		}
	}
	return class
}
