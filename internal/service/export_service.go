package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/dto"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("导出范围内没有数据")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 欠费名单与考勤报表均支持 Excel (.xlsx) 与 PDF 两种格式
//   - 缴费单渲染为打印友好的 HTML，由浏览器侧触发打印
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// DueListExcel 欠费名单导出为 Excel，按基础班级分组
	DueListExcel(ctx context.Context, groups []LedgerGroup) (*bytes.Buffer, string, error)
	// DueListPDF 欠费名单导出为 PDF
	DueListPDF(ctx context.Context, groups []LedgerGroup) (*bytes.Buffer, string, error)
	// AttendanceExcel 考勤报表导出为 Excel
	AttendanceExcel(ctx context.Context, report *dto.AttendanceReportResponse) (*bytes.Buffer, string, error)
	// AttendancePDF 考勤报表导出为 PDF
	AttendancePDF(ctx context.Context, report *dto.AttendanceReportResponse) (*bytes.Buffer, string, error)
	// ChallanHTML 渲染可打印缴费单
	ChallanHTML(ctx context.Context, challan *model.Challan) (*bytes.Buffer, error)
}

type exportService struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(logger *zap.Logger) ExportService {
	return &exportService{logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// DueListExcel — 欠费名单导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "欠费名单"
//   - 每个基础班级一条分组标题行，下接该班欠费学生明细
//   - 列：学号 | 姓名 | 班级 | 月费 | 已缴 | 欠费 | 状态

func (s *exportService) DueListExcel(ctx context.Context, groups []LedgerGroup) (*bytes.Buffer, string, error) {
	if countLedgers(groups) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "欠费名单"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 22)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "F", 12)
	f.SetColWidth(sheetName, "G", "G", 16)

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	groupStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E2F3"}, Pattern: 1},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("欠费名单 — %s", s.now().Format("2006-01-02")))
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	headers := []string{"学号", "姓名", "班级", "月费", "已缴", "欠费", "状态"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell("G", row), headerStyle)

	// 分组数据行
	row = 3
	for _, g := range groups {
		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("Class %s", g.BaseClass))
		f.MergeCell(sheetName, cell("A", row), cell("G", row))
		f.SetCellStyle(sheetName, cell("A", row), cell("A", row), groupStyle)
		row++

		for _, l := range g.Ledgers {
			f.SetCellValue(sheetName, cell("A", row), l.RollNumber)
			f.SetCellValue(sheetName, cell("B", row), l.StudentName)
			f.SetCellValue(sheetName, cell("C", row), l.Class+" "+l.Section)
			f.SetCellValue(sheetName, cell("D", row), l.MonthlyFee.String())
			f.SetCellValue(sheetName, cell("E", row), l.PaidFees.String())
			f.SetCellValue(sheetName, cell("F", row), l.Dues.String())
			f.SetCellValue(sheetName, cell("G", row), string(l.Status))
			row++
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("due_list_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// DueListPDF — 欠费名单导出为 PDF
// ═══════════════════════════════════════════════════════════

func (s *exportService) DueListPDF(ctx context.Context, groups []LedgerGroup) (*bytes.Buffer, string, error) {
	if countLedgers(groups) == 0 {
		return nil, "", ErrExportNoData
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Due List - %s", s.now().Format("2006-01-02")), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	widths := []float64{25, 45, 30, 25, 25, 25, 15}
	headers := []string{"Roll No", "Name", "Class", "Monthly", "Paid", "Dues", "Status"}

	for _, g := range groups {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(217, 226, 243)
		pdf.CellFormat(190, 8, "Class "+g.BaseClass, "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, l := range g.Ledgers {
			cols := []string{
				l.RollNumber,
				l.StudentName,
				l.Class + " " + l.Section,
				l.MonthlyFee.String(),
				l.PaidFees.String(),
				l.Dues.String(),
				shortStatus(l.Status),
			}
			for i, c := range cols {
				pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		s.logger.Error("写入 PDF 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("due_list_%s.pdf", s.now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// AttendanceExcel / AttendancePDF — 考勤报表导出
// ═══════════════════════════════════════════════════════════
//
// summary 模式：人员 × 出勤天数 × 出勤率
// detail  模式：人员 × 日期 × 状态逐行展开

func (s *exportService) AttendanceExcel(ctx context.Context, report *dto.AttendanceReportResponse) (*bytes.Buffer, string, error) {
	if len(report.Summary) == 0 && len(report.Detail) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "考勤报表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("考勤报表 %s ~ %s", report.From, report.To))

	row := 2
	if report.Mode == "detail" {
		f.SetColWidth(sheetName, "A", "B", 22)
		f.SetColWidth(sheetName, "C", "D", 14)
		f.MergeCell(sheetName, "A1", "D1")
		f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

		headers := []string{"编号", "姓名", "日期", "状态"}
		for i, h := range headers {
			f.SetCellValue(sheetName, cell(colName(i), row), h)
		}
		f.SetCellStyle(sheetName, cell("A", row), cell("D", row), headerStyle)

		row = 3
		for _, d := range report.Detail {
			f.SetCellValue(sheetName, cell("A", row), d.PersonID)
			f.SetCellValue(sheetName, cell("B", row), d.Name)
			f.SetCellValue(sheetName, cell("C", row), d.Date)
			f.SetCellValue(sheetName, cell("D", row), d.Status)
			row++
		}
	} else {
		f.SetColWidth(sheetName, "A", "B", 22)
		f.SetColWidth(sheetName, "C", "F", 10)
		f.MergeCell(sheetName, "A1", "F1")
		f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

		headers := []string{"编号", "姓名", "出勤", "缺勤", "请假", "出勤率"}
		for i, h := range headers {
			f.SetCellValue(sheetName, cell(colName(i), row), h)
		}
		f.SetCellStyle(sheetName, cell("A", row), cell("F", row), headerStyle)

		row = 3
		for _, sm := range report.Summary {
			f.SetCellValue(sheetName, cell("A", row), sm.PersonID)
			f.SetCellValue(sheetName, cell("B", row), sm.Name)
			f.SetCellValue(sheetName, cell("C", row), sm.PresentDays)
			f.SetCellValue(sheetName, cell("D", row), sm.AbsentDays)
			f.SetCellValue(sheetName, cell("E", row), sm.LeaveDays)
			f.SetCellValue(sheetName, cell("F", row), fmt.Sprintf("%d%%", sm.Percentage))
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", report.From, report.To)
	return buf, filename, nil
}

func (s *exportService) AttendancePDF(ctx context.Context, report *dto.AttendanceReportResponse) (*bytes.Buffer, string, error) {
	if len(report.Summary) == 0 && len(report.Detail) == 0 {
		return nil, "", ErrExportNoData
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Attendance Report %s - %s", report.From, report.To), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	if report.Mode == "detail" {
		widths := []float64{45, 55, 45, 45}
		headers := []string{"ID", "Name", "Date", "Status"}
		pdfTableHeader(pdf, widths, headers)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, d := range report.Detail {
			cols := []string{d.PersonID, d.Name, d.Date, d.Status}
			for i, c := range cols {
				pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	} else {
		widths := []float64{40, 55, 22, 22, 22, 29}
		headers := []string{"ID", "Name", "Present", "Absent", "Leave", "Percentage"}
		pdfTableHeader(pdf, widths, headers)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, sm := range report.Summary {
			cols := []string{
				sm.PersonID,
				sm.Name,
				fmt.Sprintf("%d", sm.PresentDays),
				fmt.Sprintf("%d", sm.AbsentDays),
				fmt.Sprintf("%d", sm.LeaveDays),
				fmt.Sprintf("%d%%", sm.Percentage),
			}
			for i, c := range cols {
				pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		s.logger.Error("写入 PDF 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s_%s.pdf", report.From, report.To)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ChallanHTML — 渲染可打印缴费单
// ═══════════════════════════════════════════════════════════

func (s *exportService) ChallanHTML(ctx context.Context, challan *model.Challan) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := challanTmpl.Execute(buf, challan); err != nil {
		s.logger.Error("渲染缴费单失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// ── 辅助函数 ──

func countLedgers(groups []LedgerGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Ledgers)
	}
	return n
}

// shortStatus PDF 列宽有限，状态取首词
func shortStatus(st model.LedgerStatus) string {
	switch st {
	case model.StatusFullyPaid:
		return "Paid"
	case model.StatusPartiallyPaid:
		return "Partial"
	default:
		return "Unpaid"
	}
}

func pdfTableHeader(pdf *gofpdf.Fpdf, widths []float64, headers []string) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
