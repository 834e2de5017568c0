package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/dto"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/records"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/kvstore"
)

// 趋势图回看的月份数（含当月）
const trendMonths = 6

// DashboardService 仪表盘业务接口
type DashboardService interface {
	// Stats 卡片数据：当月收款/欠费、到校与在岗人数，全部取自跨会话缓存
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	// Trends 近六个月收支序列，缓存命中直接返回，否则聚合后回写
	// sample 标记本次序列含样例数据；样例序列只用于当次渲染，不回写缓存
	Trends(ctx context.Context) (resp *dto.DashboardTrendsResponse, sample bool, err error)
}

type dashboardService struct {
	rc     *records.Client
	store  kvstore.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(rc *records.Client, store kvstore.Store, logger *zap.Logger) DashboardService {
	return &dashboardService{rc: rc, store: store, logger: logger, now: time.Now}
}

// ────────────────────── Stats ──────────────────────

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	// 缓存缺失一律回落到零值，卡片不报错
	// 收款累计带月份标记，跨月后的旧值按零处理
	collection := decimal.Zero
	var tally model.MonthTally
	if kvstore.GetJSON(ctx, s.store, kvstore.KeyCurrentMonthCollection, &tally) &&
		tally.Month == s.now().Format("2006-01") {
		collection = tally.Amount
	}
	dues := decimal.Zero
	if raw, ok := s.store.Get(ctx, kvstore.KeyCurrentMonthDues); ok {
		if d, err := decimal.NewFromString(raw); err == nil {
			dues = d
		}
	}

	return &dto.DashboardStatsResponse{
		CurrentMonthCollection: collection,
		CurrentMonthDues:       dues,
		StudentPresentCount:    kvstore.GetInt(ctx, s.store, kvstore.KeyStudentPresentCount, 0),
		TeacherPresentCount:    kvstore.GetInt(ctx, s.store, kvstore.KeyTeacherPresentCount, 0),
		TotalPresentStaffCount: kvstore.GetInt(ctx, s.store, kvstore.KeyTotalPresentStaffCount, 0),
	}, nil
}

// ────────────────────── Trends ──────────────────────

func (s *dashboardService) Trends(ctx context.Context) (*dto.DashboardTrendsResponse, bool, error) {
	var cachedIncome, cachedExpense []dto.TrendPoint
	okIncome := kvstore.GetJSON(ctx, s.store, kvstore.KeyStudentSixMonthsData, &cachedIncome)
	okExpense := kvstore.GetJSON(ctx, s.store, kvstore.KeyTeacherSixMonthsData, &cachedExpense)
	if okIncome && okExpense {
		// 缓存中只存真实聚合结果，命中即非样例
		return &dto.DashboardTrendsResponse{Income: cachedIncome, Expense: cachedExpense}, false, nil
	}

	rng := trendRange(s.now())

	// 收入与支出各自拉取，任一侧失败则该侧整列置零，另一侧照常展示
	var (
		wg           sync.WaitGroup
		income       []model.IncomeRecord
		expense      []model.ExpenseRecord
		incomeOK     = true
		expOK        = true
		incomeSample bool
		expSample    bool
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		recs, smp, err := s.rc.Accounts.Income(ctx, rng)
		if err != nil {
			s.logger.Warn("拉取收入记录失败，趋势图收入列置零", zap.Error(err))
			incomeOK = false
			return
		}
		income, incomeSample = recs, smp
	}()
	go func() {
		defer wg.Done()
		recs, smp, err := s.rc.Accounts.Expense(ctx, rng)
		if err != nil {
			s.logger.Warn("拉取支出记录失败，趋势图支出列置零", zap.Error(err))
			expOK = false
			return
		}
		expense, expSample = recs, smp
	}()
	wg.Wait()

	months := trendMonthKeys(s.now())

	incomeSeries := bucketAmounts(months, income, func(r model.IncomeRecord) (string, decimal.Decimal) {
		return monthKey(r.Date), r.Amount
	})
	expenseSeries := bucketAmounts(months, expense, func(r model.ExpenseRecord) (string, decimal.Decimal) {
		return monthKey(r.Date), r.Amount
	})

	resp := &dto.DashboardTrendsResponse{Income: incomeSeries, Expense: expenseSeries}

	// 只有真实数据成功聚合的一侧才回写缓存；
	// 样例序列仅撑住本次渲染，不得落缓存成为长期事实
	if incomeOK && !incomeSample {
		kvstore.SetJSON(ctx, s.store, kvstore.KeyStudentSixMonthsData, incomeSeries)
	}
	if expOK && !expSample {
		kvstore.SetJSON(ctx, s.store, kvstore.KeyTeacherSixMonthsData, expenseSeries)
	}

	return resp, incomeSample || expSample, nil
}

// trendRange 趋势窗口：五个月前的 1 号到今天
func trendRange(now time.Time) model.DateRange {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(trendMonths - 1), 0)
	return model.DateRange{From: from, To: now}
}

// trendMonthKeys 从旧到新的六个月份键，如 ["2026-03", ..., "2026-08"]
func trendMonthKeys(now time.Time) []string {
	keys := make([]string, 0, trendMonths)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(trendMonths - 1), 0)
	for i := 0; i < trendMonths; i++ {
		keys = append(keys, first.AddDate(0, i, 0).Format("2006-01"))
	}
	return keys
}

func monthKey(date string) string {
	if len(date) >= 7 {
		return date[:7]
	}
	return date
}

// bucketAmounts 把记录按月份键分桶求和，窗口外的记录丢弃，空桶为零
func bucketAmounts[T any](months []string, recs []T, keyOf func(T) (string, decimal.Decimal)) []dto.TrendPoint {
	totals := make(map[string]decimal.Decimal, len(months))
	for _, m := range months {
		totals[m] = decimal.Zero
	}
	for _, r := range recs {
		k, amount := keyOf(r)
		if cur, ok := totals[k]; ok {
			totals[k] = cur.Add(amount)
		}
	}
	points := make([]dto.TrendPoint, 0, len(months))
	for _, m := range months {
		points = append(points, dto.TrendPoint{Month: m, Amount: totals[m]})
	}
	return points
}
