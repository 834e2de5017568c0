package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/dto"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/service"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	feeSvc    service.FeeService
	attSvc    service.AttendanceService
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(feeSvc service.FeeService, attSvc service.AttendanceService, exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{feeSvc: feeSvc, attSvc: attSvc, exportSvc: exportSvc}
}

// DueList 导出欠费名单
// GET /api/v1/fees/due-list/export?format=xlsx|pdf&class=&section=
func (h *ExportHandler) DueList(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "pdf" {
		response.BadRequest(c, 10001, "format 仅支持 xlsx 或 pdf")
		return
	}

	ledgers, _, err := h.feeSvc.Ledgers(c.Request.Context(), c.Query("class"), c.Query("section"))
	if err != nil {
		response.BadGateway(c, 23001, "记录服务暂不可用")
		return
	}

	// 名单上只保留仍有欠费的学生
	var due []service.LedgerGroup
	for _, g := range service.GroupLedgers(ledgers) {
		var kept service.LedgerGroup
		kept.BaseClass = g.BaseClass
		for _, l := range g.Ledgers {
			if !l.Dues.IsZero() {
				kept.Ledgers = append(kept.Ledgers, l)
			}
		}
		if len(kept.Ledgers) > 0 {
			due = append(due, kept)
		}
	}

	var buf *bytes.Buffer
	var filename string
	if format == "pdf" {
		buf, filename, err = h.exportSvc.DueListPDF(c.Request.Context(), due)
	} else {
		buf, filename, err = h.exportSvc.DueListExcel(c.Request.Context(), due)
	}
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	h.sendFile(c, buf, filename, format)
}

// AttendanceReport 导出考勤报表
// GET /api/v1/attendance/report/export?format=xlsx|pdf&scope=&type=&...
func (h *ExportHandler) AttendanceReport(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "pdf" {
		response.BadRequest(c, 10001, "format 仅支持 xlsx 或 pdf")
		return
	}

	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, _, err := h.attSvc.Report(c.Request.Context(), &q)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWindowInvalid), errors.Is(err, service.ErrPersonRequired):
			response.BadRequest(c, 22001, "报表参数不合法")
		default:
			response.BadGateway(c, 23002, "记录服务暂不可用")
		}
		return
	}

	var buf *bytes.Buffer
	var filename string
	if format == "pdf" {
		buf, filename, err = h.exportSvc.AttendancePDF(c.Request.Context(), report)
	} else {
		buf, filename, err = h.exportSvc.AttendanceExcel(c.Request.Context(), report)
	}
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	h.sendFile(c, buf, filename, format)
}

// sendFile 设置下载响应头并写出文件内容
func (h *ExportHandler) sendFile(c *gin.Context, buf *bytes.Buffer, filename, format string) {
	contentType := contentTypeXLSX
	if format == "pdf" {
		contentType = contentTypePDF
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentType)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoData):
		response.NotFound(c, 23003, "导出范围内没有数据")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
