package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/dto"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/records"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/service"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/response"
)

// 样例数据警告文案，前端据此展示非致命提示条
const sampleDataWarning = "using sample data"

// FeeHandler 缴费模块 HTTP 处理器
type FeeHandler struct {
	feeSvc    service.FeeService
	exportSvc service.ExportService
}

// NewFeeHandler 创建 FeeHandler
func NewFeeHandler(feeSvc service.FeeService, exportSvc service.ExportService) *FeeHandler {
	return &FeeHandler{feeSvc: feeSvc, exportSvc: exportSvc}
}

// ListLedgers 台账列表（按基础班级分组排序）
// GET /api/v1/fees/ledgers?class=&section=
func (h *FeeHandler) ListLedgers(c *gin.Context) {
	ledgers, sample, err := h.feeSvc.Ledgers(c.Request.Context(), c.Query("class"), c.Query("section"))
	if err != nil {
		h.handleFeeError(c, err)
		return
	}

	resp := &dto.LedgerListResponse{List: ledgers, Total: len(ledgers)}
	if sample {
		response.OKWithWarning(c, resp, sampleDataWarning)
		return
	}
	response.OK(c, resp)
}

// GetLedger 单个学生台账
// GET /api/v1/fees/ledgers/:studentId
func (h *FeeHandler) GetLedger(c *gin.Context) {
	ledger, err := h.feeSvc.Ledger(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		h.handleFeeError(c, err)
		return
	}
	response.OK(c, ledger)
}

// RecordPayment 登记缴费（Admin/Principal）
// POST /api/v1/fees/ledgers/:studentId/payments
func (h *FeeHandler) RecordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ledger, err := h.feeSvc.RecordPayment(c.Request.Context(), c.Param("studentId"), &req)
	if err != nil {
		h.handleFeeError(c, err)
		return
	}
	response.OK(c, ledger)
}

// SuggestAmount 勾选月份后的建议缴费额
// GET /api/v1/fees/ledgers/:studentId/suggest?months=April&months=May
func (h *FeeHandler) SuggestAmount(c *gin.Context) {
	months := c.QueryArray("months")
	if len(months) == 0 {
		response.BadRequest(c, 10001, "months 不能为空")
		return
	}

	ledger, err := h.feeSvc.Ledger(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		h.handleFeeError(c, err)
		return
	}

	response.OK(c, &dto.SuggestedAmountResponse{
		Months:    months,
		Suggested: h.feeSvc.SuggestAmount(ledger, months),
	})
}

// BuildChallan 计算缴费单金额
// POST /api/v1/fees/challan
func (h *FeeHandler) BuildChallan(c *gin.Context) {
	var req dto.ChallanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	challan, err := h.feeSvc.BuildChallan(c.Request.Context(), &req)
	if err != nil {
		h.handleFeeError(c, err)
		return
	}
	response.OK(c, challan)
}

// PrintChallan 渲染可打印缴费单
// POST /api/v1/fees/challan/print
func (h *FeeHandler) PrintChallan(c *gin.Context) {
	var req dto.ChallanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	challan, err := h.feeSvc.BuildChallan(c.Request.Context(), &req)
	if err != nil {
		h.handleFeeError(c, err)
		return
	}

	buf, err := h.exportSvc.ChallanHTML(c.Request.Context(), challan)
	if err != nil {
		response.InternalError(c)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *FeeHandler) handleFeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 20001, "学生不存在")
	case errors.Is(err, service.ErrNoMonthsSelected):
		response.BadRequest(c, 21001, "至少选择一个缴费月份")
	case errors.Is(err, service.ErrUnknownMonth):
		response.BadRequest(c, 21002, "月份不在学年周期内")
	case errors.Is(err, service.ErrInvalidAmount):
		response.BadRequest(c, 21003, "缴费金额必须大于零")
	case errors.Is(err, service.ErrAmountExceedsDue):
		response.BadRequest(c, 21004, "缴费金额不能超过当前欠费")
	case errors.Is(err, records.ErrBackendUnavailable):
		response.BadGateway(c, 21005, "记录服务暂不可用")
	default:
		response.InternalError(c)
	}
}
