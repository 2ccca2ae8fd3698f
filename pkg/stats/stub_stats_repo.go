package stats

import (
	"context"
	"time"
)

// StubRepo serves canned aggregates from exported fields. The grouped total
// and spent queries filter by the requested range so service tests can model
// intersection windows.
type StubRepo struct {
	Categories []CategoryExpense
	Totals     []PeriodTotal
	Budgets    []BudgetRow
	// Spent maps category id to dated expense occurrences. The 0 key holds
	// occurrences outside any budgeted category.
	Spent map[int][]SpentEntry
}

type SpentEntry struct {
	Date   time.Time
	Amount float64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{Spent: make(map[int][]SpentEntry)}
}

func (r *StubRepo) CategoryExpenses(_ context.Context, _ int, _, _ time.Time) ([]CategoryExpense, error) {
	return r.Categories, nil
}

func (r *StubRepo) TotalExpenses(_ context.Context, _ int, from, to time.Time) (float64, error) {
	var total float64
	for _, entries := range r.Spent {
		for _, e := range entries {
			if !e.Date.Before(from) && !e.Date.After(to) {
				total += e.Amount
			}
		}
	}
	return total, nil
}

func (r *StubRepo) TotalIncome(_ context.Context, _ int, _, _ time.Time) (float64, error) {
	var total float64
	for _, t := range r.Totals {
		total += t.Income
	}
	return total, nil
}

func (r *StubRepo) DailyTotals(_ context.Context, _ int, _, _ time.Time) ([]PeriodTotal, error) {
	return r.Totals, nil
}

func (r *StubRepo) MonthlyTotals(_ context.Context, _ int, _, _ time.Time) ([]PeriodTotal, error) {
	return r.Totals, nil
}

func (r *StubRepo) BudgetsOverlapping(_ context.Context, _ int, from, to time.Time) ([]BudgetRow, error) {
	var result []BudgetRow
	for _, b := range r.Budgets {
		if !b.StartDate.After(to) && !b.EndDate.Before(from) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *StubRepo) SpentAmount(_ context.Context, _ int, categoryId int, from, to time.Time) (float64, error) {
	if categoryId == 0 {
		return r.TotalExpenses(context.Background(), 0, from, to)
	}
	var total float64
	for _, e := range r.Spent[categoryId] {
		if !e.Date.Before(from) && !e.Date.After(to) {
			total += e.Amount
		}
	}
	return total, nil
}
