package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/dto"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/service"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock FeeService ──

type mockFeeService struct {
	ledgersResult []model.FeeLedger
	ledgersSample bool
	ledgersErr    error
	ledgerResult  *model.FeeLedger
	ledgerErr     error
	paymentResult *model.FeeLedger
	paymentErr    error
	challanResult *model.Challan
	challanErr    error
}

func (m *mockFeeService) Ledgers(_ context.Context, _, _ string) ([]model.FeeLedger, bool, error) {
	return m.ledgersResult, m.ledgersSample, m.ledgersErr
}
func (m *mockFeeService) Ledger(_ context.Context, _ string) (*model.FeeLedger, error) {
	return m.ledgerResult, m.ledgerErr
}
func (m *mockFeeService) RecordPayment(_ context.Context, _ string, _ *dto.RecordPaymentRequest) (*model.FeeLedger, error) {
	return m.paymentResult, m.paymentErr
}
func (m *mockFeeService) SuggestAmount(ledger *model.FeeLedger, months []string) decimal.Decimal {
	return ledger.MonthlyFee.Mul(decimal.NewFromInt(int64(len(months))))
}
func (m *mockFeeService) BuildChallan(_ context.Context, _ *dto.ChallanRequest) (*model.Challan, error) {
	return m.challanResult, m.challanErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	rosterResult []dto.RosterRow
	rosterSample bool
	rosterErr    error
	rosterCaller *service.Caller
	submitErr    error
	reportResult *dto.AttendanceReportResponse
	reportSample bool
	reportErr    error
}

func (m *mockAttendanceService) Roster(_ context.Context, _ *dto.RosterQuery, caller *service.Caller) ([]dto.RosterRow, bool, error) {
	m.rosterCaller = caller
	return m.rosterResult, m.rosterSample, m.rosterErr
}
func (m *mockAttendanceService) Submit(_ context.Context, _ *dto.SubmitAttendanceRequest) error {
	return m.submitErr
}
func (m *mockAttendanceService) Report(_ context.Context, _ *dto.ReportQuery) (*dto.AttendanceReportResponse, bool, error) {
	return m.reportResult, m.reportSample, m.reportErr
}

// ── Mock ActivityService ──

type mockActivityService struct {
	entries   []model.ActivityEntry
	listErr   error
	recorded  *model.ActivityEntry
	recordErr error
}

func (m *mockActivityService) Record(_ context.Context, typ model.ActivityType, userName, role string) (*model.ActivityEntry, error) {
	if m.recordErr != nil {
		return nil, m.recordErr
	}
	m.recorded = &model.ActivityEntry{ID: "act-1", Type: typ, UserName: userName, Role: role}
	return m.recorded, nil
}
func (m *mockActivityService) List(_ context.Context) ([]model.ActivityEntry, error) {
	return m.entries, m.listErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) DueListExcel(_ context.Context, _ []service.LedgerGroup) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) DueListPDF(_ context.Context, _ []service.LedgerGroup) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) AttendanceExcel(_ context.Context, _ *dto.AttendanceReportResponse) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) AttendancePDF(_ context.Context, _ *dto.AttendanceReportResponse) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ChallanHTML(_ context.Context, _ *model.Challan) (*bytes.Buffer, error) {
	return m.buf, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// injectAuth 模拟 JWT 中间件注入的身份信息
func injectAuth(role, classAssigned, classSection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("user_name", "Test User")
		c.Set("role", role)
		c.Set("class_assigned", classAssigned)
		c.Set("class_section", classSection)
		c.Next()
	}
}

// ═══════════════════════════════════════════════════════════
// FeeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestFeeHandler_ListLedgers_SampleWarning(t *testing.T) {
	mock := &mockFeeService{
		ledgersResult: []model.FeeLedger{{StudentID: "s1", StudentName: "Ahmed Raza"}},
		ledgersSample: true,
	}
	h := NewFeeHandler(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/fees/ledgers", nil)

	r := gin.New()
	r.GET("/fees/ledgers", h.ListLedgers)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Warning != sampleDataWarning {
		t.Errorf("expected warning %q, got %q", sampleDataWarning, resp.Warning)
	}
}

func TestFeeHandler_RecordPayment_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		svcErr   error
		wantCode int
	}{
		{"学生不存在", service.ErrStudentNotFound, http.StatusNotFound},
		{"金额超欠费", service.ErrAmountExceedsDue, http.StatusBadRequest},
		{"未选月份", service.ErrNoMonthsSelected, http.StatusBadRequest},
		{"未知月份", service.ErrUnknownMonth, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewFeeHandler(&mockFeeService{paymentErr: tc.svcErr}, nil)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/fees/ledgers/s1/payments", jsonBody(dto.RecordPaymentRequest{
				Amount: decimal.NewFromInt(100),
				Months: []string{"April"},
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/fees/ledgers/:studentId/payments", h.RecordPayment)
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, w.Code)
			}
		})
	}
}

func TestFeeHandler_RecordPayment_BadJSON(t *testing.T) {
	h := NewFeeHandler(&mockFeeService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/fees/ledgers/s1/payments", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/fees/ledgers/:studentId/payments", h.RecordPayment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestFeeHandler_PrintChallan(t *testing.T) {
	mock := &mockFeeService{challanResult: &model.Challan{StudentName: "Ahmed Raza"}}
	exp := &mockExportService{buf: bytes.NewBufferString("<html>challan</html>")}
	h := NewFeeHandler(mock, exp)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/fees/challan/print", jsonBody(dto.ChallanRequest{
		StudentID: "s1",
		Months:    []string{"April"},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/fees/challan/print", h.PrintChallan)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %s", ct)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("challan")) {
		t.Error("body should contain rendered challan")
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_Roster_PassesCaller(t *testing.T) {
	mock := &mockAttendanceService{
		rosterResult: []dto.RosterRow{{PersonID: "s1", Name: "Ahmed Raza", Status: "Present"}},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance/roster?scope=students", nil)

	r := gin.New()
	r.GET("/attendance/roster", injectAuth("Teacher", "Nine", "B"), h.Roster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.rosterCaller == nil || mock.rosterCaller.Role != "Teacher" || mock.rosterCaller.ClassAssigned != "Nine" {
		t.Errorf("caller 未正确传递: %+v", mock.rosterCaller)
	}
}

func TestAttendanceHandler_Roster_MissingScope(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance/roster", nil)

	r := gin.New()
	r.GET("/attendance/roster", h.Roster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_Submit(t *testing.T) {
	mock := &mockAttendanceService{}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.SubmitAttendanceRequest{
		Scope: "students",
		Date:  "2026-08-31",
		Records: []dto.AttendanceEntryRequest{
			{PersonID: "s1", Status: "Present"},
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", h.Submit)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAttendanceHandler_Submit_Failure(t *testing.T) {
	mock := &mockAttendanceService{submitErr: service.ErrSubmitFailed}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.SubmitAttendanceRequest{
		Scope:   "students",
		Date:    "2026-08-31",
		Records: []dto.AttendanceEntryRequest{{PersonID: "s1", Status: "Present"}},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", h.Submit)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestAttendanceHandler_Report_InvalidWindow(t *testing.T) {
	mock := &mockAttendanceService{reportErr: service.ErrWindowInvalid}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance/report?scope=students&type=weekly", nil)

	r := gin.New()
	r.GET("/attendance/report", h.Report)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ActivityHandler Tests
// ═══════════════════════════════════════════════════════════

func TestActivityHandler_Record(t *testing.T) {
	mock := &mockActivityService{}
	h := NewActivityHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/activities", jsonBody(dto.AddActivityRequest{Type: "login"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/activities", injectAuth("Admin", "", ""), h.Record)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if mock.recorded == nil || mock.recorded.UserName != "Test User" || mock.recorded.Type != model.ActivityLogin {
		t.Errorf("记录内容错误: %+v", mock.recorded)
	}
}

func TestActivityHandler_Record_Unauthenticated(t *testing.T) {
	h := NewActivityHandler(&mockActivityService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/activities", jsonBody(dto.AddActivityRequest{Type: "login"}))
	req.Header.Set("Content-Type", "application/json")

	// 未注入身份信息
	r := gin.New()
	r.POST("/activities", h.Record)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestActivityHandler_Record_InvalidType(t *testing.T) {
	h := NewActivityHandler(&mockActivityService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/activities", jsonBody(dto.AddActivityRequest{Type: "reboot"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/activities", injectAuth("Admin", "", ""), h.Record)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_DueList_Headers(t *testing.T) {
	feeMock := &mockFeeService{
		ledgersResult: []model.FeeLedger{
			{StudentID: "s1", Class: "Nine", Section: "B", Dues: decimal.NewFromInt(16000)},
		},
	}
	exp := &mockExportService{buf: bytes.NewBufferString("xlsx-bytes"), filename: "due_list.xlsx"}
	h := NewExportHandler(feeMock, nil, exp)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/fees/due-list/export?format=xlsx", nil)

	r := gin.New()
	r.GET("/fees/due-list/export", h.DueList)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("缺少 Content-Disposition 头")
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("Content-Type = %s", ct)
	}
}

func TestExportHandler_DueList_BadFormat(t *testing.T) {
	h := NewExportHandler(&mockFeeService{}, nil, &mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/fees/due-list/export?format=docx", nil)

	r := gin.New()
	r.GET("/fees/due-list/export", h.DueList)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_AttendanceReport_PDF(t *testing.T) {
	attMock := &mockAttendanceService{
		reportResult: &dto.AttendanceReportResponse{Mode: "summary"},
	}
	exp := &mockExportService{buf: bytes.NewBufferString("%PDF-fake"), filename: "attendance.pdf"}
	h := NewExportHandler(nil, attMock, exp)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance/report/export?format=pdf&scope=students&type=weekly", nil)

	r := gin.New()
	r.GET("/attendance/report/export", h.AttendanceReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypePDF {
		t.Errorf("Content-Type = %s", ct)
	}
}

// ═══════════════════════════════════════════════════════════
// DashboardHandler Tests
// ═══════════════════════════════════════════════════════════

type mockDashboardService struct {
	stats        *dto.DashboardStatsResponse
	statsErr     error
	trends       *dto.DashboardTrendsResponse
	trendsSample bool
	trendsErr    error
}

func (m *mockDashboardService) Stats(_ context.Context) (*dto.DashboardStatsResponse, error) {
	return m.stats, m.statsErr
}
func (m *mockDashboardService) Trends(_ context.Context) (*dto.DashboardTrendsResponse, bool, error) {
	return m.trends, m.trendsSample, m.trendsErr
}

func TestDashboardHandler_Stats(t *testing.T) {
	mock := &mockDashboardService{
		stats: &dto.DashboardStatsResponse{StudentPresentCount: 230},
	}
	h := NewDashboardHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard/stats", nil)

	r := gin.New()
	r.GET("/dashboard/stats", h.Stats)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestDashboardHandler_Trends_SampleWarning(t *testing.T) {
	mock := &mockDashboardService{
		trends:       &dto.DashboardTrendsResponse{},
		trendsSample: true,
	}
	h := NewDashboardHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard/trends", nil)

	r := gin.New()
	r.GET("/dashboard/trends", h.Trends)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Warning != sampleDataWarning {
		t.Errorf("expected warning %q, got %q", sampleDataWarning, resp.Warning)
	}
}

func TestDashboardHandler_Trends_NoWarningOnRealData(t *testing.T) {
	mock := &mockDashboardService{trends: &dto.DashboardTrendsResponse{}}
	h := NewDashboardHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard/trends", nil)

	r := gin.New()
	r.GET("/dashboard/trends", h.Trends)
	r.ServeHTTP(w, req)

	resp := parseResponse(w)
	if resp.Warning != "" {
		t.Errorf("expected no warning, got %q", resp.Warning)
	}
}
