package records

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
)

// 内置样例数据：记录服务不可用时页面仍需可渲染，读接口降级返回
// 这套数据并附带 "using sample data" 警告。随机量（考勤状态、金额
// 浮动）使用固定种子，保证每次生成的样例完全一致，便于测试断言。

const fixtureSeed = 20240401

var fixtureStudentNames = []string{
	"Ahmed Raza", "Bilal Khan", "Fatima Noor", "Hassan Ali",
	"Iqra Shahid", "Junaid Akram", "Mariam Tariq", "Osman Javed",
	"Rabia Yousaf", "Saad Qureshi", "Tahira Malik", "Zain Abbas",
}

var fixtureClasses = []struct{ class, section string }{
	{"Nine", "B"}, {"Nine", "A"}, {"Ten", "A"}, {"Eight", "B"},
}

// FixtureStudents 样例学生名单
func FixtureStudents(class, section string) []model.Student {
	students := make([]model.Student, 0, len(fixtureStudentNames))
	for i, name := range fixtureStudentNames {
		c := fixtureClasses[i%len(fixtureClasses)]
		s := model.Student{
			ID:         fixtureID("stu", i),
			Name:       name,
			RollNumber: fixtureRoll(i),
			Class:      c.class,
			Section:    c.section,
			Guardian:   "Guardian of " + name,
		}
		if class != "" && s.Class != class {
			continue
		}
		if section != "" && s.Section != section {
			continue
		}
		students = append(students, s)
	}
	return students
}

var fixtureStaffNames = []struct{ name, designation string }{
	{"Muhammad Awais", "Principal"},
	{"Sana Iqbal", "Teacher"},
	{"Kashif Mehmood", "Teacher"},
	{"Nadia Hussain", "Teacher"},
	{"Imran Butt", "Clerk"},
	{"Shazia Parveen", "Teacher"},
}

// FixtureStaff 样例教职工名单
func FixtureStaff() []model.Staff {
	staff := make([]model.Staff, 0, len(fixtureStaffNames))
	for i, s := range fixtureStaffNames {
		staff = append(staff, model.Staff{
			ID:          fixtureID("stf", i),
			Name:        s.name,
			StaffNumber: fixtureRoll(i),
			Designation: s.designation,
		})
	}
	return staff
}

// FixtureEvents 样例考勤事件（窗口内每个工作日一条，状态按固定种子分布）
func FixtureEvents(personID string, rng model.DateRange) []model.AttendanceEvent {
	r := rand.New(rand.NewSource(fixtureSeed + int64(len(personID))))
	var events []model.AttendanceEvent
	for d := rng.From; !d.After(rng.To); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		status := model.StatusPresent
		switch n := r.Intn(10); {
		case n == 0:
			status = model.StatusAbsent
		case n == 1:
			status = model.StatusLeave
		}
		events = append(events, model.AttendanceEvent{Date: d, Status: status})
	}
	return events
}

// FixtureIncome 样例收入记录
func FixtureIncome(rng model.DateRange) []model.IncomeRecord {
	r := rand.New(rand.NewSource(fixtureSeed))
	var recs []model.IncomeRecord
	i := 0
	for d := rng.From; !d.After(rng.To); d = d.AddDate(0, 0, 7) {
		recs = append(recs, model.IncomeRecord{
			ID:     fixtureID("inc", i),
			Date:   d.Format("2006-01-02"),
			Source: "Fees",
			Amount: decimal.NewFromInt(int64(20000 + r.Intn(15000))),
		})
		i++
	}
	return recs
}

// FixtureExpense 样例支出记录
func FixtureExpense(rng model.DateRange) []model.ExpenseRecord {
	r := rand.New(rand.NewSource(fixtureSeed + 1))
	categories := []string{"Salaries", "Utilities", "Maintenance", "Stationery"}
	var recs []model.ExpenseRecord
	i := 0
	for d := rng.From; !d.After(rng.To); d = d.AddDate(0, 0, 10) {
		recs = append(recs, model.ExpenseRecord{
			ID:       fixtureID("exp", i),
			Date:     d.Format("2006-01-02"),
			Category: categories[i%len(categories)],
			Amount:   decimal.NewFromInt(int64(5000 + r.Intn(10000))),
		})
		i++
	}
	return recs
}

func fixtureID(prefix string, i int) string {
	return fmt.Sprintf("%s-sample-%02d", prefix, i+1)
}

func fixtureRoll(i int) string {
	return fmt.Sprintf("%02d", i+1)
}
