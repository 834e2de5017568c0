package records

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
)

// 规范化层：外部记录服务的字段拼写不统一（同一字段在不同接口里
// 可能叫 rollNumber 或 rollNo，Class 或 class）。此处按文档化的
// 有序候选链逐一取值，全部缺失时落到占位文案，保证空值不下泄。

// 各规范字段的候选键链（按优先级排列）
var (
	studentIDKeys     = []string{"_id", "id", "studentId"}
	studentNameKeys   = []string{"name", "studentName", "fullName"}
	rollNumberKeys    = []string{"rollNumber", "rollNo", "roll_no"}
	classKeys         = []string{"class", "Class", "className"}
	sectionKeys       = []string{"section", "Section"}
	guardianKeys      = []string{"guardian", "fatherName", "parentName"}
	phoneKeys         = []string{"phone", "phoneNumber", "contact"}
	staffIDKeys       = []string{"_id", "id", "staffId"}
	staffNameKeys     = []string{"name", "teacherName", "fullName"}
	staffNumberKeys   = []string{"staffNumber", "staffNo", "employeeId"}
	designationKeys   = []string{"designation", "post", "role"}
	amountKeys        = []string{"amount", "Amount", "total"}
	recordDateKeys    = []string{"date", "Date", "createdAt"}
	incomeSourceKeys  = []string{"source", "incomeSource", "title"}
	expenseCatKeys    = []string{"category", "expenseType", "title"}
	descriptionKeys   = []string{"description", "desc", "remarks"}
	eventStatusKeys   = []string{"status", "Status", "attendanceStatus"}
	personIDEventKeys = []string{"studentId", "teacherId", "personId", "_id", "id"}
)

// firstString 按候选链取第一个非空字符串；数值也接受并格式化
func firstString(raw map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}

// firstStringOr 同 firstString，全部缺失时返回占位值
func firstStringOr(raw map[string]interface{}, placeholder string, keys ...string) string {
	if v := firstString(raw, keys...); v != "" {
		return v
	}
	return placeholder
}

// firstDecimal 按候选链取第一个可解析的金额，缺失时为零
func firstDecimal(raw map[string]interface{}, keys ...string) decimal.Decimal {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			return decimal.NewFromFloat(t)
		case string:
			if d, err := decimal.NewFromString(t); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

// NormalizeStudent 将记录服务的学生原始对象归一化
func NormalizeStudent(raw map[string]interface{}) model.Student {
	return model.Student{
		ID:         firstString(raw, studentIDKeys...),
		Name:       firstStringOr(raw, model.PlaceholderStudentName, studentNameKeys...),
		RollNumber: firstStringOr(raw, model.PlaceholderRollNumber, rollNumberKeys...),
		Class:      firstStringOr(raw, model.PlaceholderClass, classKeys...),
		Section:    firstString(raw, sectionKeys...),
		Guardian:   firstString(raw, guardianKeys...),
		Phone:      firstString(raw, phoneKeys...),
	}
}

// NormalizeStaff 将记录服务的教职工原始对象归一化
func NormalizeStaff(raw map[string]interface{}) model.Staff {
	return model.Staff{
		ID:          firstString(raw, staffIDKeys...),
		Name:        firstStringOr(raw, model.PlaceholderStaffName, staffNameKeys...),
		StaffNumber: firstStringOr(raw, model.PlaceholderRollNumber, staffNumberKeys...),
		Designation: firstStringOr(raw, model.PlaceholderDesignation, designationKeys...),
		Phone:       firstString(raw, phoneKeys...),
	}
}

// NormalizeIncome 归一化收入记录
func NormalizeIncome(raw map[string]interface{}) model.IncomeRecord {
	return model.IncomeRecord{
		ID:          firstString(raw, studentIDKeys...),
		Date:        normalizeDate(firstString(raw, recordDateKeys...)),
		Source:      firstStringOr(raw, "Other", incomeSourceKeys...),
		Description: firstString(raw, descriptionKeys...),
		Amount:      firstDecimal(raw, amountKeys...),
	}
}

// NormalizeExpense 归一化支出记录
func NormalizeExpense(raw map[string]interface{}) model.ExpenseRecord {
	return model.ExpenseRecord{
		ID:          firstString(raw, studentIDKeys...),
		Date:        normalizeDate(firstString(raw, recordDateKeys...)),
		Category:    firstStringOr(raw, "Other", expenseCatKeys...),
		Description: firstString(raw, descriptionKeys...),
		Amount:      firstDecimal(raw, amountKeys...),
	}
}

// NormalizeEvents 将考勤明细响应归一化为按日期升序的事件序列
//
// 兼容两种后端形态：
//  1. records: [{date, status}, ...]
//  2. presentDates / absentDates / leaveDates 三个日期数组
func NormalizeEvents(raw map[string]interface{}) []model.AttendanceEvent {
	var events []model.AttendanceEvent

	if recs, ok := raw["records"].([]interface{}); ok {
		for _, it := range recs {
			m, ok := it.(map[string]interface{})
			if !ok {
				continue
			}
			d, ok := parseEventDate(firstString(m, recordDateKeys...))
			if !ok {
				continue
			}
			status := model.AttendanceStatus(firstString(m, eventStatusKeys...))
			if !status.Valid() {
				continue
			}
			events = append(events, model.AttendanceEvent{Date: d, Status: status})
		}
	} else {
		events = append(events, datesToEvents(raw, "presentDates", model.StatusPresent)...)
		events = append(events, datesToEvents(raw, "absentDates", model.StatusAbsent)...)
		events = append(events, datesToEvents(raw, "leaveDates", model.StatusLeave)...)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return events
}

func datesToEvents(raw map[string]interface{}, key string, status model.AttendanceStatus) []model.AttendanceEvent {
	arr, ok := raw[key].([]interface{})
	if !ok {
		return nil
	}
	var events []model.AttendanceEvent
	for _, it := range arr {
		s, ok := it.(string)
		if !ok {
			continue
		}
		d, ok := parseEventDate(s)
		if !ok {
			continue
		}
		events = append(events, model.AttendanceEvent{Date: d, Status: status})
	}
	return events
}

// parseEventDate 解析 "2006-01-02" 或 RFC3339 两种日期写法
func parseEventDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if len(s) > 10 {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.Truncate(24 * time.Hour), true
		}
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// normalizeDate 把任意支持的日期写法截为 "2006-01-02"，解析失败原样返回
func normalizeDate(s string) string {
	if t, ok := parseEventDate(s); ok {
		return t.Format("2006-01-02")
	}
	return s
}
