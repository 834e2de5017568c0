package records

import (
	"context"
	"net/url"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
)

type attendanceClient struct {
	core *httpCore
}

// attendanceBatch 整日考勤批量提交请求体
type attendanceBatch struct {
	Date    string                   `json:"date"`
	Records []model.AttendanceRecord `json:"records"`
}

// SubmitStudentBatch 提交整日学生考勤
// POST /students/attendence（记录服务的历史拼写）
// 写操作不降级：任何错误原样上抛，调用方视整批未提交
func (c *attendanceClient) SubmitStudentBatch(ctx context.Context, date string, recs []model.AttendanceRecord) error {
	return c.core.postJSON(ctx, "/students/attendence", attendanceBatch{Date: date, Records: recs}, nil)
}

// SubmitStaffBatch 提交整日教职工考勤
// POST /teachers/attendence
func (c *attendanceClient) SubmitStaffBatch(ctx context.Context, date string, recs []model.AttendanceRecord) error {
	return c.core.postJSON(ctx, "/teachers/attendence", attendanceBatch{Date: date, Records: recs}, nil)
}

// StudentEvents 单个学生窗口内原始考勤
// GET /students/attendence?studentId=&from=&to=
func (c *attendanceClient) StudentEvents(ctx context.Context, studentID string, rng model.DateRange) ([]model.AttendanceEvent, bool, error) {
	query := url.Values{}
	query.Set("studentId", studentID)
	setRange(query, rng)

	var raw map[string]interface{}
	if err := c.core.getJSON(ctx, "/students/attendence", query, &raw); err != nil {
		return FixtureEvents(studentID, rng), true, nil
	}

	return NormalizeEvents(raw), false, nil
}

// ClassEvents 整班学生窗口内原始考勤
// GET /students/class/report?class=&section=&from=&to=
func (c *attendanceClient) ClassEvents(ctx context.Context, class, section string, rng model.DateRange) ([]model.PersonAttendance, bool, error) {
	query := url.Values{}
	query.Set("class", class)
	if section != "" {
		query.Set("section", section)
	}
	setRange(query, rng)

	var raw []map[string]interface{}
	if err := c.core.getJSON(ctx, "/students/class/report", query, &raw); err != nil {
		return fixturePersonAttendance(FixtureStudents(class, section), rng), true, nil
	}

	return normalizePersons(raw, studentNameKeys, model.PlaceholderStudentName), false, nil
}

// StaffEvents 全体教职工窗口内原始考勤
// GET /teachers/all/report?from=&to=
func (c *attendanceClient) StaffEvents(ctx context.Context, rng model.DateRange) ([]model.PersonAttendance, bool, error) {
	query := url.Values{}
	setRange(query, rng)

	var raw []map[string]interface{}
	if err := c.core.getJSON(ctx, "/teachers/all/report", query, &raw); err != nil {
		var persons []model.PersonAttendance
		for _, s := range FixtureStaff() {
			persons = append(persons, model.PersonAttendance{
				PersonID: s.ID,
				Name:     s.Name,
				Events:   FixtureEvents(s.ID, rng),
			})
		}
		return persons, true, nil
	}

	return normalizePersons(raw, staffNameKeys, model.PlaceholderStaffName), false, nil
}

// normalizePersons 把"每人一个原始对象"的报表响应归一化
// 每个对象可携带 records 数组或 presentDates/absentDates/leaveDates
func normalizePersons(raw []map[string]interface{}, nameKeys []string, namePlaceholder string) []model.PersonAttendance {
	persons := make([]model.PersonAttendance, 0, len(raw))
	for _, r := range raw {
		persons = append(persons, model.PersonAttendance{
			PersonID: firstString(r, personIDEventKeys...),
			Name:     firstStringOr(r, namePlaceholder, nameKeys...),
			Class:    firstString(r, classKeys...),
			Section:  firstString(r, sectionKeys...),
			Events:   NormalizeEvents(r),
		})
	}
	return persons
}

func fixturePersonAttendance(students []model.Student, rng model.DateRange) []model.PersonAttendance {
	var persons []model.PersonAttendance
	for _, s := range students {
		persons = append(persons, model.PersonAttendance{
			PersonID: s.ID,
			Name:     s.Name,
			Class:    s.Class,
			Section:  s.Section,
			Events:   FixtureEvents(s.ID, rng),
		})
	}
	return persons
}

func setRange(query url.Values, rng model.DateRange) {
	query.Set("from", rng.From.Format("2006-01-02"))
	query.Set("to", rng.To.Format("2006-01-02"))
}
