package records

import (
	"context"
	"net/url"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/model"
)

type accountsClient struct {
	core *httpCore
}

// Income 拉取窗口内收入记录
// GET /accounts/income?from=&to=
func (c *accountsClient) Income(ctx context.Context, rng model.DateRange) ([]model.IncomeRecord, bool, error) {
	query := url.Values{}
	setRange(query, rng)

	var raw []map[string]interface{}
	if err := c.core.getJSON(ctx, "/accounts/income", query, &raw); err != nil {
		return FixtureIncome(rng), true, nil
	}

	recs := make([]model.IncomeRecord, 0, len(raw))
	for _, r := range raw {
		recs = append(recs, NormalizeIncome(r))
	}
	return recs, false, nil
}

// Expense 拉取窗口内支出记录
// GET /accounts/expense?from=&to=
func (c *accountsClient) Expense(ctx context.Context, rng model.DateRange) ([]model.ExpenseRecord, bool, error) {
	query := url.Values{}
	setRange(query, rng)

	var raw []map[string]interface{}
	if err := c.core.getJSON(ctx, "/accounts/expense", query, &raw); err != nil {
		return FixtureExpense(rng), true, nil
	}

	recs := make([]model.ExpenseRecord, 0, len(raw))
	for _, r := range raw {
		recs = append(recs, NormalizeExpense(r))
	}
	return recs, false, nil
}
