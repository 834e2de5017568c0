package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/dto"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/records"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/jwt"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/kvstore"
)

// ── 考勤模块业务错误 ──

var (
	ErrSubmitFailed   = errors.New("考勤提交失败，本批次视为未提交")
	ErrPersonRequired = errors.New("单人报表需要 person_id")
)

// Caller 发起请求的控制台用户（来自 JWT 声明）
// Teacher 角色的点名册被强制限定到其任课班级
type Caller struct {
	UserID        string
	Role          string
	ClassAssigned string
	ClassSection  string
}

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// Roster 当日点名册，每行默认 Present
	Roster(ctx context.Context, q *dto.RosterQuery, caller *Caller) (rows []dto.RosterRow, sample bool, err error)
	// Submit 整日考勤批量提交（全量成功或整体失败）
	Submit(ctx context.Context, req *dto.SubmitAttendanceRequest) error
	// Report 窗口化考勤报表（summary 或 detail）
	Report(ctx context.Context, q *dto.ReportQuery) (resp *dto.AttendanceReportResponse, sample bool, err error)
}

type attendanceService struct {
	rc     *records.Client
	store  kvstore.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(rc *records.Client, store kvstore.Store, logger *zap.Logger) AttendanceService {
	return &attendanceService{rc: rc, store: store, logger: logger, now: time.Now}
}

// ────────────────────── Roster ──────────────────────

func (s *attendanceService) Roster(ctx context.Context, q *dto.RosterQuery, caller *Caller) ([]dto.RosterRow, bool, error) {
	if q.Scope == "staff" {
		staff, sample, err := s.rc.Staff.List(ctx)
		if err != nil {
			s.logger.Error("拉取教职工名单失败", zap.Error(err))
			return nil, false, err
		}
		rows := make([]dto.RosterRow, 0, len(staff))
		for _, p := range staff {
			rows = append(rows, dto.RosterRow{
				PersonID:   p.ID,
				Name:       p.Name,
				RollNumber: p.StaffNumber,
				Status:     string(model.StatusPresent),
			})
		}
		return rows, sample, nil
	}

	class, section := q.Class, q.Section
	// 班主任只能给自己任课的班级点名；管理员/校长不限
	if caller != nil && caller.Role == jwt.RoleTeacher {
		class = caller.ClassAssigned
		section = caller.ClassSection
	}

	students, sample, err := s.rc.Students.List(ctx, class, section)
	if err != nil {
		s.logger.Error("拉取学生名单失败", zap.Error(err))
		return nil, false, err
	}

	rows := make([]dto.RosterRow, 0, len(students))
	for _, p := range students {
		rows = append(rows, dto.RosterRow{
			PersonID:   p.ID,
			Name:       p.Name,
			RollNumber: p.RollNumber,
			Class:      p.Class,
			Section:    p.Section,
			Status:     string(model.StatusPresent),
		})
	}
	return rows, sample, nil
}

// ────────────────────── Submit ──────────────────────

func (s *attendanceService) Submit(ctx context.Context, req *dto.SubmitAttendanceRequest) error {
	recs := make([]model.AttendanceRecord, 0, len(req.Records))
	presentCount := int64(0)
	presentIDs := make(map[string]bool)
	for _, r := range req.Records {
		status := model.AttendanceStatus(r.Status)
		recs = append(recs, model.AttendanceRecord{
			PersonID: r.PersonID,
			Date:     req.Date,
			Status:   status,
			Class:    r.Class,
			Section:  r.Section,
		})
		if status == model.StatusPresent {
			presentCount++
			presentIDs[r.PersonID] = true
		}
	}

	var err error
	if req.Scope == "staff" {
		err = s.rc.Attendance.SubmitStaffBatch(ctx, req.Date, recs)
	} else {
		err = s.rc.Attendance.SubmitStudentBatch(ctx, req.Date, recs)
	}
	if err != nil {
		s.logger.Error("考勤提交失败",
			zap.String("scope", req.Scope),
			zap.String("date", req.Date),
			zap.Int("records", len(recs)),
			zap.Error(err),
		)
		return ErrSubmitFailed
	}

	// 提交成功后把在岗/到校人数刷入缓存，供仪表盘卡片读取
	if req.Scope == "staff" {
		kvstore.SetInt(ctx, s.store, kvstore.KeyTotalPresentStaffCount, presentCount)
		kvstore.SetInt(ctx, s.store, kvstore.KeyTeacherPresentCount, s.countPresentTeachers(ctx, presentIDs))
	} else {
		kvstore.SetInt(ctx, s.store, kvstore.KeyStudentPresentCount, presentCount)
	}

	return nil
}

// countPresentTeachers 在岗人员中职务为 Teacher 的人数
func (s *attendanceService) countPresentTeachers(ctx context.Context, presentIDs map[string]bool) int64 {
	staff, _, err := s.rc.Staff.List(ctx)
	if err != nil {
		return 0
	}
	var n int64
	for _, p := range staff {
		if presentIDs[p.ID] && p.Designation == "Teacher" {
			n++
		}
	}
	return n
}

// ────────────────────── Report ──────────────────────

func (s *attendanceService) Report(ctx context.Context, q *dto.ReportQuery) (*dto.AttendanceReportResponse, bool, error) {
	rng, err := ResolveWindow(q.Window(), s.now())
	if err != nil {
		return nil, false, err
	}

	persons, sample, err := s.fetchPersons(ctx, q, rng)
	if err != nil {
		return nil, false, err
	}

	resp := &dto.AttendanceReportResponse{
		Mode: q.Mode,
		From: rng.From.Format("2006-01-02"),
		To:   rng.To.Format("2006-01-02"),
	}
	if resp.Mode == "" {
		resp.Mode = "summary"
	}

	if resp.Mode == "detail" {
		resp.Detail = detailRows(persons)
	} else {
		resp.Summary = make([]model.AttendanceSummary, 0, len(persons))
		for _, p := range persons {
			resp.Summary = append(resp.Summary, Summarize(p))
		}
	}

	return resp, sample, nil
}

// fetchPersons 按查询范围拉取原始考勤事件
func (s *attendanceService) fetchPersons(ctx context.Context, q *dto.ReportQuery, rng model.DateRange) ([]model.PersonAttendance, bool, error) {
	if q.Scope == "staff" {
		return s.rc.Attendance.StaffEvents(ctx, rng)
	}

	if q.PersonID != "" {
		events, sample, err := s.rc.Attendance.StudentEvents(ctx, q.PersonID, rng)
		if err != nil {
			return nil, false, err
		}
		name := q.PersonID
		if student, err := s.studentName(ctx, q.PersonID); err == nil {
			name = student
		}
		return []model.PersonAttendance{{PersonID: q.PersonID, Name: name, Events: events}}, sample, nil
	}

	if q.Class == "" {
		return nil, false, ErrPersonRequired
	}
	return s.rc.Attendance.ClassEvents(ctx, q.Class, q.Section, rng)
}

func (s *attendanceService) studentName(ctx context.Context, studentID string) (string, error) {
	students, _, err := s.rc.Students.List(ctx, "", "")
	if err != nil {
		return "", err
	}
	for _, st := range students {
		if st.ID == studentID {
			return st.Name, nil
		}
	}
	return "", ErrStudentNotFound
}

// Summarize 把一个人的考勤事件归并为窗口汇总（纯函数）
// 百分比四舍五入；无任何记录时为 0，不做除零
func Summarize(p model.PersonAttendance) model.AttendanceSummary {
	sum := model.AttendanceSummary{
		PersonID: p.PersonID,
		Name:     p.Name,
		Class:    p.Class,
		Section:  p.Section,
	}
	for _, ev := range p.Events {
		switch ev.Status {
		case model.StatusPresent:
			sum.PresentDays++
		case model.StatusAbsent:
			sum.AbsentDays++
		case model.StatusLeave:
			sum.LeaveDays++
		}
	}

	total := sum.PresentDays + sum.AbsentDays + sum.LeaveDays
	if total > 0 {
		sum.Percentage = int(math.Round(float64(sum.PresentDays) / float64(total) * 100))
	}
	return sum
}

// detailRows 明细行展开：单人/多人共用同一行结构，人内按日期升序
func detailRows(persons []model.PersonAttendance) []dto.DetailRow {
	var rows []dto.DetailRow
	for _, p := range persons {
		for _, ev := range p.Events {
			rows = append(rows, dto.DetailRow{
				PersonID: p.PersonID,
				Name:     p.Name,
				Date:     ev.Date.Format("2006-01-02"),
				Status:   string(ev.Status),
			})
		}
	}
	return rows
}
