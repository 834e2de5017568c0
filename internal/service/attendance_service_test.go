package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/dto"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/jwt"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/kvstore"
)

func testStaff() []model.Staff {
	return []model.Staff{
		{ID: "t1", Name: "Sana Malik", StaffNumber: "T-01", Designation: "Teacher"},
		{ID: "t2", Name: "Imran Shah", StaffNumber: "T-02", Designation: "Teacher"},
		{ID: "t3", Name: "Muhammad Awais", StaffNumber: "P-01", Designation: "Principal"},
		{ID: "t4", Name: "Rashid Ali", StaffNumber: "G-01", Designation: "Guard"},
	}
}

// ── Roster ──

func TestRosterDefaultsPresent(t *testing.T) {
	rc := newMockClient(&mockStudentAPI{students: testStudents()}, nil, nil, nil)
	svc := NewAttendanceService(rc, kvstore.NewMemory(), zap.NewNop())

	rows, sample, err := svc.Roster(context.Background(), &dto.RosterQuery{Scope: "students"}, &Caller{Role: jwt.RoleAdmin})
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if sample {
		t.Error("mock 数据不应标记为样例")
	}
	if len(rows) != 4 {
		t.Fatalf("行数 = %d, want 4", len(rows))
	}
	for _, r := range rows {
		if r.Status != string(model.StatusPresent) {
			t.Errorf("%s 初始状态 = %s, want Present", r.Name, r.Status)
		}
	}
}

func TestRosterTeacherScopedToAssignedClass(t *testing.T) {
	rc := newMockClient(&mockStudentAPI{students: testStudents()}, nil, nil, nil)
	svc := NewAttendanceService(rc, kvstore.NewMemory(), zap.NewNop())

	caller := &Caller{Role: jwt.RoleTeacher, ClassAssigned: "Nine", ClassSection: "B"}
	// 请求里带的过滤条件会被任课班级覆盖
	rows, _, err := svc.Roster(context.Background(), &dto.RosterQuery{Scope: "students", Class: "Eight", Section: "A"}, caller)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("行数 = %d, want 2（仅 Nine B）", len(rows))
	}
	for _, r := range rows {
		if r.Class != "Nine" || r.Section != "B" {
			t.Errorf("越权行: %s %s %s", r.Name, r.Class, r.Section)
		}
	}
}

func TestRosterStaff(t *testing.T) {
	rc := newMockClient(nil, &mockStaffAPI{staff: testStaff()}, nil, nil)
	svc := NewAttendanceService(rc, kvstore.NewMemory(), zap.NewNop())

	rows, _, err := svc.Roster(context.Background(), &dto.RosterQuery{Scope: "staff"}, &Caller{Role: jwt.RolePrincipal})
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("行数 = %d, want 4", len(rows))
	}
	if rows[0].RollNumber != "T-01" {
		t.Errorf("教职工行应填工号: %s", rows[0].RollNumber)
	}
}

// ── Submit ──

func TestSubmitStudentsWritesPresentCount(t *testing.T) {
	at := &mockAttendanceAPI{}
	rc := newMockClient(nil, nil, at, nil)
	store := kvstore.NewMemory()
	svc := NewAttendanceService(rc, store, zap.NewNop())
	ctx := context.Background()

	err := svc.Submit(ctx, &dto.SubmitAttendanceRequest{
		Scope: "students",
		Date:  "2026-08-31",
		Records: []dto.AttendanceEntryRequest{
			{PersonID: "s1", Status: "Present"},
			{PersonID: "s2", Status: "Absent"},
			{PersonID: "s3", Status: "Present"},
			{PersonID: "s4", Status: "Leave"},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if at.lastScope != "students" || at.lastDate != "2026-08-31" || len(at.lastRecs) != 4 {
		t.Errorf("提交内容错误: scope=%s date=%s n=%d", at.lastScope, at.lastDate, len(at.lastRecs))
	}
	if got := kvstore.GetInt(ctx, store, kvstore.KeyStudentPresentCount, -1); got != 2 {
		t.Errorf("到校人数缓存 = %d, want 2", got)
	}
}

func TestSubmitStaffWritesTeacherCounts(t *testing.T) {
	at := &mockAttendanceAPI{}
	rc := newMockClient(nil, &mockStaffAPI{staff: testStaff()}, at, nil)
	store := kvstore.NewMemory()
	svc := NewAttendanceService(rc, store, zap.NewNop())
	ctx := context.Background()

	err := svc.Submit(ctx, &dto.SubmitAttendanceRequest{
		Scope: "staff",
		Date:  "2026-08-31",
		Records: []dto.AttendanceEntryRequest{
			{PersonID: "t1", Status: "Present"},
			{PersonID: "t2", Status: "Absent"},
			{PersonID: "t3", Status: "Present"},
			{PersonID: "t4", Status: "Present"},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// 在岗 3 人，其中职务为 Teacher 的只有 t1
	if got := kvstore.GetInt(ctx, store, kvstore.KeyTotalPresentStaffCount, -1); got != 3 {
		t.Errorf("在岗总数 = %d, want 3", got)
	}
	if got := kvstore.GetInt(ctx, store, kvstore.KeyTeacherPresentCount, -1); got != 1 {
		t.Errorf("在岗教师数 = %d, want 1", got)
	}
}

func TestSubmitFailureLeavesCacheUntouched(t *testing.T) {
	at := &mockAttendanceAPI{submitErr: errors.New("boom")}
	rc := newMockClient(nil, nil, at, nil)
	store := kvstore.NewMemory()
	svc := NewAttendanceService(rc, store, zap.NewNop())
	ctx := context.Background()

	err := svc.Submit(ctx, &dto.SubmitAttendanceRequest{
		Scope:   "students",
		Date:    "2026-08-31",
		Records: []dto.AttendanceEntryRequest{{PersonID: "s1", Status: "Present"}},
	})
	if !errors.Is(err, ErrSubmitFailed) {
		t.Fatalf("err = %v, want ErrSubmitFailed", err)
	}
	if _, ok := store.Get(ctx, kvstore.KeyStudentPresentCount); ok {
		t.Error("提交失败不应写入到校人数缓存")
	}
}

// ── Report ──

func fixedNow() time.Time {
	return time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
}

func TestReportSummaryPercentage(t *testing.T) {
	at := &mockAttendanceAPI{
		classPersons: []model.PersonAttendance{
			{
				PersonID: "s1", Name: "Ahmed Raza",
				Events: []model.AttendanceEvent{
					{Date: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), Status: model.StatusPresent},
					{Date: time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), Status: model.StatusPresent},
					{Date: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), Status: model.StatusAbsent},
				},
			},
			{PersonID: "s2", Name: "Fatima Noor"}, // 无任何记录
		},
	}
	rc := newMockClient(nil, nil, at, nil)
	svc := NewAttendanceService(rc, kvstore.NewMemory(), zap.NewNop()).(*attendanceService)
	svc.now = fixedNow

	resp, _, err := svc.Report(context.Background(), &dto.ReportQuery{
		Scope: "students", Type: "weekly", Class: "Nine", Section: "B",
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if resp.Mode != "summary" {
		t.Errorf("Mode = %s, want summary（默认）", resp.Mode)
	}
	if len(resp.Summary) != 2 {
		t.Fatalf("汇总行数 = %d, want 2", len(resp.Summary))
	}

	// 2/3 → 67%，四舍五入
	if resp.Summary[0].Percentage != 67 {
		t.Errorf("出勤率 = %d, want 67", resp.Summary[0].Percentage)
	}
	// 零记录不除零，出勤率为 0
	if resp.Summary[1].Percentage != 0 || resp.Summary[1].PresentDays != 0 {
		t.Errorf("零记录汇总错误: %+v", resp.Summary[1])
	}
}

func TestReportDetailSinglePerson(t *testing.T) {
	at := &mockAttendanceAPI{
		studentEvents: map[string][]model.AttendanceEvent{
			"s1": {
				{Date: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), Status: model.StatusPresent},
				{Date: time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), Status: model.StatusLeave},
			},
		},
	}
	rc := newMockClient(&mockStudentAPI{students: testStudents()}, nil, at, nil)
	svc := NewAttendanceService(rc, kvstore.NewMemory(), zap.NewNop()).(*attendanceService)
	svc.now = fixedNow

	resp, _, err := svc.Report(context.Background(), &dto.ReportQuery{
		Scope: "students", Type: "weekly", Mode: "detail", PersonID: "s1",
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(resp.Detail) != 2 {
		t.Fatalf("明细行数 = %d, want 2", len(resp.Detail))
	}
	if resp.Detail[0].Name != "Ahmed Raza" {
		t.Errorf("姓名应从学生名单回填: %s", resp.Detail[0].Name)
	}
	if resp.Detail[0].Date != "2026-08-25" || resp.Detail[1].Status != "Leave" {
		t.Errorf("明细内容错误: %+v", resp.Detail)
	}
}

func TestReportRequiresPersonOrClass(t *testing.T) {
	rc := newMockClient(nil, nil, &mockAttendanceAPI{}, nil)
	svc := NewAttendanceService(rc, kvstore.NewMemory(), zap.NewNop())

	_, _, err := svc.Report(context.Background(), &dto.ReportQuery{Scope: "students", Type: "weekly"})
	if !errors.Is(err, ErrPersonRequired) {
		t.Errorf("err = %v, want ErrPersonRequired", err)
	}
}

// ── 窗口解析 ──

func TestResolveWindow(t *testing.T) {
	now := fixedNow() // 2026-08-31 周一

	cases := []struct {
		name     string
		window   model.Window
		wantFrom string
		wantTo   string
	}{
		{"周报为最近七天", model.Window{Type: model.WindowWeekly}, "2026-08-25", "2026-08-31"},
		{"月报从 1 号到今天", model.Window{Type: model.WindowMonthly}, "2026-08-01", "2026-08-31"},
		{"上月为完整自然月", model.Window{Type: model.WindowPrevious}, "2026-07-01", "2026-07-31"},
		{"年报从元旦到今天", model.Window{Type: model.WindowYearly}, "2026-01-01", "2026-08-31"},
		{"自定义为指定整月", model.Window{Type: model.WindowCustom, Year: 2026, Month: 2}, "2026-02-01", "2026-02-28"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng, err := ResolveWindow(tc.window, now)
			if err != nil {
				t.Fatalf("ResolveWindow: %v", err)
			}
			if got := rng.From.Format("2006-01-02"); got != tc.wantFrom {
				t.Errorf("From = %s, want %s", got, tc.wantFrom)
			}
			if got := rng.To.Format("2006-01-02"); got != tc.wantTo {
				t.Errorf("To = %s, want %s", got, tc.wantTo)
			}
		})
	}
}

func TestResolveWindowInvalid(t *testing.T) {
	if _, err := ResolveWindow(model.Window{Type: "decade"}, fixedNow()); !errors.Is(err, ErrWindowInvalid) {
		t.Errorf("err = %v, want ErrWindowInvalid", err)
	}
	// custom 缺年月同样拒绝
	if _, err := ResolveWindow(model.Window{Type: model.WindowCustom}, fixedNow()); !errors.Is(err, ErrWindowInvalid) {
		t.Errorf("custom 缺参 err = %v, want ErrWindowInvalid", err)
	}
}
