package model

// 记录服务字段缺失时的占位文案，规范化层保证不会向下游泄漏空值
const (
	PlaceholderStudentName = "Unknown Student"
	PlaceholderStaffName   = "Unknown Staff"
	PlaceholderClass       = "Not Assigned"
	PlaceholderRollNumber  = "—"
	PlaceholderDesignation = "Not Assigned"
)

// Student 学生规范化记录
// 由 records 层从外部 API 的多种字段拼写归一化而来
type Student struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Class      string `json:"class"`   // 班级名，如 "Nine"
	Section    string `json:"section"` // 班别，如 "B"
	Guardian   string `json:"guardian,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// FullClass 班级全名（班级名 + 班别），用于费率表精确匹配
func (s *Student) FullClass() string {
	if s.Section == "" {
		return s.Class
	}
	return s.Class + " " + s.Section
}

// Staff 教职工规范化记录
type Staff struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StaffNumber string `json:"staff_number"`
	Designation string `json:"designation"` // 职务，如 "Teacher" / "Principal"
	Phone       string `json:"phone,omitempty"`
}
