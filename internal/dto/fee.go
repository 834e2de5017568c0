package dto

import (
	"github.com/shopspring/decimal"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
)

// ── 缴费模块 DTO ──

// RecordPaymentRequest 登记缴费请求
// 金额与月份的业务校验（金额>0、不超欠费、至少选一个月）在 Service 层
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"   binding:"omitempty,datetime=2006-01-02"`
	Months []string        `json:"months"`
	Mode   string          `json:"mode"   binding:"omitempty,oneof=Cash Bank Online"`
}

// FeeLineRequest 缴费单附加费用行
type FeeLineRequest struct {
	Description string          `json:"description" binding:"required,max=100"`
	Amount      decimal.Decimal `json:"amount"`
}

// ChallanRequest 生成缴费单请求
type ChallanRequest struct {
	StudentID string           `json:"student_id" binding:"required"`
	Months    []string         `json:"months"     binding:"required,min=1"`
	ExamFee   decimal.Decimal  `json:"exam_fee"`
	OtherFees []FeeLineRequest `json:"other_fees" binding:"omitempty,dive"`
}

// LedgerListResponse 台账列表响应（已按基础班级分组排序）
type LedgerListResponse struct {
	List  []model.FeeLedger `json:"list"`
	Total int               `json:"total"`
}

// SuggestedAmountResponse 勾选月份后的建议缴费额（仅 UI 提示，可被覆盖）
type SuggestedAmountResponse struct {
	Months    []string        `json:"months"`
	Suggested decimal.Decimal `json:"suggested"`
}
