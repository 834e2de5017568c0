package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/records"
)

// ── Mock 记录服务客户端 ──

type mockStudentAPI struct {
	students []model.Student
	sample   bool
	err      error
}

func (m *mockStudentAPI) List(_ context.Context, class, section string) ([]model.Student, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	if class == "" && section == "" {
		return m.students, m.sample, nil
	}
	var out []model.Student
	for _, s := range m.students {
		if class != "" && s.Class != class {
			continue
		}
		if section != "" && s.Section != section {
			continue
		}
		out = append(out, s)
	}
	return out, m.sample, nil
}

type mockStaffAPI struct {
	staff  []model.Staff
	sample bool
	err    error
}

func (m *mockStaffAPI) List(_ context.Context) ([]model.Staff, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	return m.staff, m.sample, nil
}

type mockAttendanceAPI struct {
	submitErr error
	// 记录最近一次提交，供断言
	lastDate  string
	lastScope string
	lastRecs  []model.AttendanceRecord

	studentEvents map[string][]model.AttendanceEvent
	classPersons  []model.PersonAttendance
	staffPersons  []model.PersonAttendance
	eventsErr     error
}

func (m *mockAttendanceAPI) SubmitStudentBatch(_ context.Context, date string, recs []model.AttendanceRecord) error {
	if m.submitErr != nil {
		return m.submitErr
	}
	m.lastDate, m.lastScope, m.lastRecs = date, "students", recs
	return nil
}

func (m *mockAttendanceAPI) SubmitStaffBatch(_ context.Context, date string, recs []model.AttendanceRecord) error {
	if m.submitErr != nil {
		return m.submitErr
	}
	m.lastDate, m.lastScope, m.lastRecs = date, "staff", recs
	return nil
}

func (m *mockAttendanceAPI) StudentEvents(_ context.Context, studentID string, _ model.DateRange) ([]model.AttendanceEvent, bool, error) {
	if m.eventsErr != nil {
		return nil, false, m.eventsErr
	}
	return m.studentEvents[studentID], false, nil
}

func (m *mockAttendanceAPI) ClassEvents(_ context.Context, _, _ string, _ model.DateRange) ([]model.PersonAttendance, bool, error) {
	if m.eventsErr != nil {
		return nil, false, m.eventsErr
	}
	return m.classPersons, false, nil
}

func (m *mockAttendanceAPI) StaffEvents(_ context.Context, _ model.DateRange) ([]model.PersonAttendance, bool, error) {
	if m.eventsErr != nil {
		return nil, false, m.eventsErr
	}
	return m.staffPersons, false, nil
}

type mockAccountsAPI struct {
	income     []model.IncomeRecord
	expense    []model.ExpenseRecord
	sample     bool
	incomeErr  error
	expenseErr error
}

func (m *mockAccountsAPI) Income(_ context.Context, _ model.DateRange) ([]model.IncomeRecord, bool, error) {
	if m.incomeErr != nil {
		return nil, false, m.incomeErr
	}
	return m.income, m.sample, nil
}

func (m *mockAccountsAPI) Expense(_ context.Context, _ model.DateRange) ([]model.ExpenseRecord, bool, error) {
	if m.expenseErr != nil {
		return nil, false, m.expenseErr
	}
	return m.expense, m.sample, nil
}

// newMockClient 组装一个全 mock 的记录服务客户端
func newMockClient(st *mockStudentAPI, sf *mockStaffAPI, at *mockAttendanceAPI, ac *mockAccountsAPI) *records.Client {
	if st == nil {
		st = &mockStudentAPI{}
	}
	if sf == nil {
		sf = &mockStaffAPI{}
	}
	if at == nil {
		at = &mockAttendanceAPI{}
	}
	if ac == nil {
		ac = &mockAccountsAPI{}
	}
	return &records.Client{Students: st, Staff: sf, Attendance: at, Accounts: ac}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
