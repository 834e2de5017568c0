package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/config"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/dto"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/records"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/kvstore"
)

// ── 缴费模块业务错误 ──

var (
	ErrStudentNotFound  = errors.New("学生不存在")
	ErrInvalidAmount    = errors.New("缴费金额必须大于零")
	ErrAmountExceedsDue = errors.New("缴费金额不能超过当前欠费")
	ErrNoMonthsSelected = errors.New("至少选择一个缴费月份")
	ErrUnknownMonth     = errors.New("月份不在学年周期内")
)

// FeeService 缴费台账业务接口
//
// 台账是派生状态：从学生记录 + 费率表构造，缴费后持久化到跨会话缓存。
// 不变量 PaidFees + Dues == TotalFees 在每次写入前由派生逻辑保证。
type FeeService interface {
	// Ledgers 按分组顺序（基础班级字母序，组内保持名单原序）返回台账列表
	Ledgers(ctx context.Context, class, section string) (ledgers []model.FeeLedger, sample bool, err error)
	// Ledger 单个学生的台账
	Ledger(ctx context.Context, studentID string) (*model.FeeLedger, error)
	// RecordPayment 登记一笔缴费；校验失败时台账不发生任何变化
	RecordPayment(ctx context.Context, studentID string, req *dto.RecordPaymentRequest) (*model.FeeLedger, error)
	// SuggestAmount 勾选月份后的建议缴费额 = 月份数 × 月费（仅提示，可覆盖）
	SuggestAmount(ledger *model.FeeLedger, months []string) decimal.Decimal
	// BuildChallan 生成缴费单（纯计算，不落任何持久状态）
	BuildChallan(ctx context.Context, req *dto.ChallanRequest) (*model.Challan, error)
}

type feeService struct {
	cfg    *config.BillingConfig
	rc     *records.Client
	store  kvstore.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewFeeService 创建 FeeService 实例
func NewFeeService(cfg *config.BillingConfig, rc *records.Client, store kvstore.Store, logger *zap.Logger) FeeService {
	return &feeService{cfg: cfg, rc: rc, store: store, logger: logger, now: time.Now}
}

// ────────────────────── Ledgers ──────────────────────

func (s *feeService) Ledgers(ctx context.Context, class, section string) ([]model.FeeLedger, bool, error) {
	students, sample, err := s.rc.Students.List(ctx, class, section)
	if err != nil {
		s.logger.Error("拉取学生名单失败", zap.Error(err))
		return nil, false, err
	}

	ledgers := make([]model.FeeLedger, 0, len(students))
	totalDues := decimal.Zero
	for i := range students {
		ledger := s.loadOrDerive(ctx, &students[i])
		totalDues = totalDues.Add(ledger.Dues)
		ledgers = append(ledgers, *ledger)
	}

	ledgers = flattenGroups(GroupLedgers(ledgers))

	// 总欠费随列表计算顺带刷入缓存，供仪表盘读取
	// 只有全量真实名单算出的才是全校口径，筛选子集或样例数据不回写
	if class == "" && section == "" && !sample {
		if err := s.store.Set(ctx, kvstore.KeyCurrentMonthDues, totalDues.String()); err != nil {
			s.logger.Warn("刷新欠费缓存失败", zap.Error(err))
		}
	}

	return ledgers, sample, nil
}

// ────────────────────── Ledger ──────────────────────

func (s *feeService) Ledger(ctx context.Context, studentID string) (*model.FeeLedger, error) {
	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.loadOrDerive(ctx, student), nil
}

// ────────────────────── RecordPayment ──────────────────────

func (s *feeService) RecordPayment(ctx context.Context, studentID string, req *dto.RecordPaymentRequest) (*model.FeeLedger, error) {
	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	ledger := s.loadOrDerive(ctx, student)

	// ── 先校验，全部通过才允许触碰台账 ──
	if len(req.Months) == 0 {
		return nil, ErrNoMonthsSelected
	}
	for _, m := range req.Months {
		if !validMonth(m) {
			return nil, ErrUnknownMonth
		}
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if req.Amount.GreaterThan(ledger.Dues) {
		return nil, ErrAmountExceedsDue
	}

	date := req.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	mode := req.Mode
	if mode == "" {
		mode = "Cash"
	}

	// ── 应用缴费 ──
	ledger.PaymentHistory = append(ledger.PaymentHistory, model.Payment{
		Date:   date,
		Amount: req.Amount,
		Months: append([]string(nil), req.Months...),
		Mode:   mode,
	})
	ledger.PaidFees = ledger.PaidFees.Add(req.Amount)
	ledger.Dues = ledger.TotalFees.Sub(ledger.PaidFees)
	s.projectMonths(ledger)
	ledger.Status = deriveStatus(ledger)

	if err := kvstore.SetJSON(ctx, s.store, kvstore.FeeLedgerKey(studentID), ledger); err != nil {
		s.logger.Error("台账持久化失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	// 当月收费累计值：读-改-写，供仪表盘卡片展示
	// 累计值带月份标记，跨月后上月余额作废、从零重新累计
	month := s.now().Format("2006-01")
	var tally model.MonthTally
	if !kvstore.GetJSON(ctx, s.store, kvstore.KeyCurrentMonthCollection, &tally) || tally.Month != month {
		tally = model.MonthTally{Month: month, Amount: decimal.Zero}
	}
	tally.Amount = tally.Amount.Add(req.Amount)
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyCurrentMonthCollection, tally); err != nil {
		s.logger.Warn("刷新当月收费缓存失败", zap.Error(err))
	}

	return ledger, nil
}

// ────────────────────── SuggestAmount ──────────────────────

func (s *feeService) SuggestAmount(ledger *model.FeeLedger, months []string) decimal.Decimal {
	return ledger.MonthlyFee.Mul(decimal.NewFromInt(int64(len(months))))
}

// ────────────────────── BuildChallan ──────────────────────

func (s *feeService) BuildChallan(ctx context.Context, req *dto.ChallanRequest) (*model.Challan, error) {
	student, err := s.findStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	ledger := s.loadOrDerive(ctx, student)

	for _, m := range req.Months {
		if !validMonth(m) {
			return nil, ErrUnknownMonth
		}
	}

	tuition := ledger.MonthlyFee.Mul(decimal.NewFromInt(int64(len(req.Months))))
	total := tuition.Add(req.ExamFee)

	other := make([]model.FeeLine, 0, len(req.OtherFees))
	for _, line := range req.OtherFees {
		other = append(other, model.FeeLine{Description: line.Description, Amount: line.Amount})
		total = total.Add(line.Amount)
	}

	return &model.Challan{
		StudentID:   student.ID,
		StudentName: student.Name,
		RollNumber:  student.RollNumber,
		Class:       student.Class,
		Section:     student.Section,
		Months:      append([]string(nil), req.Months...),
		TuitionLine: tuition,
		ExamFee:     req.ExamFee,
		OtherFees:   other,
		Total:       total,
		IssueDate:   s.now().Format("2006-01-02"),
	}, nil
}

// ────────────────────── 派生逻辑 ──────────────────────

// loadOrDerive 读缓存中的台账，缺失时从学生记录全新派生
func (s *feeService) loadOrDerive(ctx context.Context, student *model.Student) *model.FeeLedger {
	var ledger model.FeeLedger
	if kvstore.GetJSON(ctx, s.store, kvstore.FeeLedgerKey(student.ID), &ledger) {
		// 姓名/班级以记录服务为准，缓存里只信缴费状态
		ledger.StudentName = student.Name
		ledger.RollNumber = student.RollNumber
		ledger.Class = student.Class
		ledger.Section = student.Section
		return &ledger
	}
	return s.derive(student)
}

// derive 全新构造一份台账
func (s *feeService) derive(student *model.Student) *model.FeeLedger {
	fee := s.monthlyFee(student.FullClass())
	total := fee.Mul(decimal.NewFromInt(int64(s.cfg.BillableMonths)))

	ledger := &model.FeeLedger{
		StudentID:      student.ID,
		StudentName:    student.Name,
		RollNumber:     student.RollNumber,
		Class:          student.Class,
		Section:        student.Section,
		MonthlyFee:     fee,
		TotalFees:      total,
		PaidFees:       decimal.Zero,
		Dues:           total,
		Status:         model.StatusNotPaid,
		PaymentHistory: nil,
	}

	ledger.DuesByMonth = make([]model.MonthDue, len(model.AcademicMonths))
	for i, m := range model.AcademicMonths {
		due := decimal.Zero
		if i < s.cfg.BillableMonths {
			due = fee
		}
		ledger.DuesByMonth[i] = model.MonthDue{Month: m, Due: due}
	}

	return ledger
}

// monthlyFee 班级全名精确匹配费率表，未命中用默认月费
func (s *feeService) monthlyFee(fullClass string) decimal.Decimal {
	if rate, ok := s.cfg.ClassRates[fullClass]; ok {
		return decimal.NewFromInt(rate)
	}
	return decimal.NewFromInt(s.cfg.DefaultMonthlyFee)
}

// projectMonths 把月份缴清标志投影为缴费历史的纯函数
// （月份标志不独立维护，杜绝两者不一致）
func (s *feeService) projectMonths(ledger *model.FeeLedger) {
	paid := make(map[string]bool)
	for _, p := range ledger.PaymentHistory {
		for _, m := range p.Months {
			paid[m] = true
		}
	}
	for i := range ledger.DuesByMonth {
		ledger.DuesByMonth[i].Paid = paid[ledger.DuesByMonth[i].Month]
	}
}

// deriveStatus 由欠费推导缴费状态
// 欠费归零或所有计费月均已缴清，任一成立即为 Fully Paid
func deriveStatus(ledger *model.FeeLedger) model.LedgerStatus {
	allPaid := true
	for _, m := range ledger.DuesByMonth {
		if m.Due.IsZero() {
			continue // 假期月不参与判定
		}
		if !m.Paid {
			allPaid = false
			break
		}
	}

	switch {
	case ledger.Dues.IsZero() || allPaid:
		return model.StatusFullyPaid
	case ledger.Dues.Equal(ledger.TotalFees):
		return model.StatusNotPaid
	default:
		return model.StatusPartiallyPaid
	}
}

func validMonth(m string) bool {
	for _, am := range model.AcademicMonths {
		if am == m {
			return true
		}
	}
	return false
}

func (s *feeService) findStudent(ctx context.Context, studentID string) (*model.Student, error) {
	students, _, err := s.rc.Students.List(ctx, "", "")
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].ID == studentID {
			return &students[i], nil
		}
	}
	return nil, ErrStudentNotFound
}

// ────────────────────── 报表分组 ──────────────────────

// LedgerGroup 按基础班级分组的台账（导出与打印共用）
type LedgerGroup struct {
	BaseClass string
	Ledgers   []model.FeeLedger
}

// GroupLedgers 按基础班级（去班别）分组并按组名字母序排列，
// 组内保持输入顺序。两次调用同一输入结果完全一致。
func GroupLedgers(ledgers []model.FeeLedger) []LedgerGroup {
	index := make(map[string]int)
	var groups []LedgerGroup
	for _, l := range ledgers {
		base := model.BaseClass(l.Class)
		i, ok := index[base]
		if !ok {
			i = len(groups)
			index[base] = i
			groups = append(groups, LedgerGroup{BaseClass: base})
		}
		groups[i].Ledgers = append(groups[i].Ledgers, l)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].BaseClass < groups[j].BaseClass
	})

	return groups
}

func flattenGroups(groups []LedgerGroup) []model.FeeLedger {
	var out []model.FeeLedger
	for _, g := range groups {
		out = append(out, g.Ledgers...)
	}
	return out
}
