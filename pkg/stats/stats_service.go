package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/user"
)

var ErrInvalidRange = errors.New("start date must not be after end date")

// maxDailySpanDays is the widest range still rendered with one bucket per day.
// Wider ranges switch to monthly buckets to keep chart sizes reasonable.
const maxDailySpanDays = 31

type Service interface {
	// GetAll computes the unified statistics document for the query range.
	GetAll(ctx context.Context, query Query) (Statistics, error)
	CategoryBreakdown(ctx context.Context, query Query) (CategoryBreakdown, error)
	PeriodSummaries(ctx context.Context, query Query) ([]PeriodSummary, error)
	BudgetStats(ctx context.Context, query Query) (BudgetStatistics, error)
	// MonthlyEvolution returns income/expense/balance for the last months
	// calendar months, oldest first.
	MonthlyEvolution(ctx context.Context, months int) ([]MonthData, error)
	Detailed(ctx context.Context, query Query) (DetailedStatistics, error)
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) GetAll(ctx context.Context, query Query) (Statistics, error) {
	if err := validate(query); err != nil {
		return Statistics{}, err
	}
	summaries, err := s.PeriodSummaries(ctx, query)
	if err != nil {
		return Statistics{}, err
	}
	breakdown, err := s.CategoryBreakdown(ctx, query)
	if err != nil {
		return Statistics{}, err
	}
	budgetStats, err := s.BudgetStats(ctx, query)
	if err != nil {
		return Statistics{}, err
	}
	return Statistics{
		PeriodSummary:    summaries,
		CategoryExpenses: breakdown,
		BudgetStatistics: budgetStats,
	}, nil
}

func (s *ServiceImpl) CategoryBreakdown(ctx context.Context, query Query) (CategoryBreakdown, error) {
	if err := validate(query); err != nil {
		return CategoryBreakdown{}, err
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return CategoryBreakdown{}, err
	}
	categories, err := s.repo.CategoryExpenses(ctx, userId, dayStart(query.Start), dayEnd(query.End))
	if err != nil {
		return CategoryBreakdown{}, fmt.Errorf("loading category expenses: %w", err)
	}

	var total float64
	for _, c := range categories {
		total += c.Amount
	}
	for i := range categories {
		categories[i].Percentage = percentage(categories[i].Amount, total)
	}
	return CategoryBreakdown{TotalAmount: total, Categories: categories}, nil
}

func (s *ServiceImpl) PeriodSummaries(ctx context.Context, query Query) ([]PeriodSummary, error) {
	if err := validate(query); err != nil {
		return nil, err
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}

	from, to := dayStart(query.Start), dayEnd(query.End)
	daily := query.SpanDays() <= maxDailySpanDays

	var totals []PeriodTotal
	if daily {
		totals, err = s.repo.DailyTotals(ctx, userId, from, to)
	} else {
		totals, err = s.repo.MonthlyTotals(ctx, userId, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("loading period totals: %w", err)
	}

	byLabel := make(map[string]PeriodTotal, len(totals))
	for _, t := range totals {
		byLabel[t.Label] = t
	}

	// Every bucket in the range is emitted, including empty ones, so charts
	// get a continuous axis.
	var summaries []PeriodSummary
	for _, label := range bucketLabels(query, daily) {
		t := byLabel[label]
		summaries = append(summaries, PeriodSummary{
			Period:       label,
			TotalIncome:  t.Income,
			TotalExpense: t.Expense,
			Balance:      t.Income - t.Expense,
		})
	}
	return summaries, nil
}

func (s *ServiceImpl) BudgetStats(ctx context.Context, query Query) (BudgetStatistics, error) {
	if err := validate(query); err != nil {
		return BudgetStatistics{}, err
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetStatistics{}, err
	}
	budgets, err := s.repo.BudgetsOverlapping(ctx, userId, dayStart(query.Start), dayEnd(query.End))
	if err != nil {
		return BudgetStatistics{}, fmt.Errorf("loading budgets: %w", err)
	}

	// Spending counts only inside the intersection of the budget's own range
	// and the query range.
	spentByBudget := make(map[int]float64, len(budgets))
	for _, b := range budgets {
		from := laterOf(dayStart(b.StartDate), dayStart(query.Start))
		to := earlierOf(dayEnd(b.EndDate), dayEnd(query.End))
		spent, err := s.repo.SpentAmount(ctx, userId, b.CategoryId, from, to)
		if err != nil {
			return BudgetStatistics{}, fmt.Errorf("calculating spent amount for budget %d: %w", b.Id, err)
		}
		spentByBudget[b.Id] = spent
	}

	return BudgetStatistics{
		VsActual:     vsActual(budgets, spentByBudget),
		Efficiency:   efficiency(budgets, spentByBudget),
		Distribution: distribution(budgets),
		MonthlyTrend: monthlyTrend(budgets, spentByBudget),
	}, nil
}

func (s *ServiceImpl) MonthlyEvolution(ctx context.Context, months int) ([]MonthData, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	if months <= 0 {
		months = 12
	}

	now := s.clock.Now()
	var evolution []MonthData
	for i := months - 1; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

		income, err := s.repo.TotalIncome(ctx, userId, monthStart, monthEnd)
		if err != nil {
			return nil, fmt.Errorf("loading income for %s: %w", monthStart.Format("2006-01"), err)
		}
		expense, err := s.repo.TotalExpenses(ctx, userId, monthStart, monthEnd)
		if err != nil {
			return nil, fmt.Errorf("loading expenses for %s: %w", monthStart.Format("2006-01"), err)
		}
		evolution = append(evolution, MonthData{
			Month:   monthStart.Format("2006-01"),
			Income:  income,
			Expense: expense,
			Balance: income - expense,
		})
	}
	return evolution, nil
}

func (s *ServiceImpl) Detailed(ctx context.Context, query Query) (DetailedStatistics, error) {
	if err := validate(query); err != nil {
		return DetailedStatistics{}, err
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return DetailedStatistics{}, err
	}

	from, to := dayStart(query.Start), dayEnd(query.End)
	totalIncome, err := s.repo.TotalIncome(ctx, userId, from, to)
	if err != nil {
		return DetailedStatistics{}, fmt.Errorf("loading total income: %w", err)
	}
	totalExpense, err := s.repo.TotalExpenses(ctx, userId, from, to)
	if err != nil {
		return DetailedStatistics{}, fmt.Errorf("loading total expenses: %w", err)
	}

	breakdown, err := s.CategoryBreakdown(ctx, query)
	if err != nil {
		return DetailedStatistics{}, err
	}
	var topCategory *CategoryExpense
	if len(breakdown.Categories) > 0 {
		top := breakdown.Categories[0]
		topCategory = &top
	}

	budgets, err := s.repo.BudgetsOverlapping(ctx, userId, from, to)
	if err != nil {
		return DetailedStatistics{}, fmt.Errorf("loading budgets: %w", err)
	}
	var totalBudget float64
	for _, b := range budgets {
		totalBudget += b.Amount
	}

	return DetailedStatistics{
		TotalIncome:          totalIncome,
		TotalExpense:         totalExpense,
		AverageDailyExpense:  totalExpense / float64(query.SpanDays()),
		AverageMonthlyIncome: totalIncome / 12.0,
		TopExpenseCategory:   topCategory,
		BudgetStatus: BudgetStatus{
			TotalBudget:    totalBudget,
			Spent:          totalExpense,
			Remaining:      totalBudget - totalExpense,
			PercentageUsed: percentage(totalExpense, totalBudget),
		},
	}, nil
}

func vsActual(budgets []BudgetRow, spentByBudget map[int]float64) []BudgetVsActual {
	byCategory := make(map[int]*BudgetVsActual)
	var order []int
	for _, b := range budgets {
		entry, ok := byCategory[b.CategoryId]
		if !ok {
			entry = &BudgetVsActual{CategoryId: b.CategoryId, CategoryName: b.CategoryName}
			byCategory[b.CategoryId] = entry
			order = append(order, b.CategoryId)
		}
		entry.BudgetAmount += b.Amount
		entry.ActualAmount += spentByBudget[b.Id]
	}

	result := make([]BudgetVsActual, 0, len(order))
	for _, categoryId := range order {
		entry := byCategory[categoryId]
		entry.Difference = entry.BudgetAmount - entry.ActualAmount
		entry.PercentageUsed = percentage(entry.ActualAmount, entry.BudgetAmount)
		result = append(result, *entry)
	}
	return result
}

// efficiency tallies each budget row separately: two budgets for the same
// category are counted as two for the on-track/exceeded split.
func efficiency(budgets []BudgetRow, spentByBudget map[int]float64) BudgetEfficiency {
	e := BudgetEfficiency{TotalBudgets: len(budgets)}
	var percentageSum float64
	for _, b := range budgets {
		spent := spentByBudget[b.Id]
		e.TotalBudget += b.Amount
		e.TotalSpent += spent
		percentageSum += percentage(spent, b.Amount)
		if spent <= b.Amount {
			e.BudgetsOnTrack++
		} else {
			e.BudgetsExceeded++
		}
	}
	e.TotalRemaining = e.TotalBudget - e.TotalSpent
	if len(budgets) > 0 {
		e.AveragePercentageUsed = percentageSum / float64(len(budgets))
	}
	return e
}

func distribution(budgets []BudgetRow) []BudgetDistribution {
	byCategory := make(map[int]*BudgetDistribution)
	var order []int
	var total float64
	for _, b := range budgets {
		entry, ok := byCategory[b.CategoryId]
		if !ok {
			entry = &BudgetDistribution{CategoryId: b.CategoryId, CategoryName: b.CategoryName}
			byCategory[b.CategoryId] = entry
			order = append(order, b.CategoryId)
		}
		entry.BudgetAmount += b.Amount
		total += b.Amount
	}

	result := make([]BudgetDistribution, 0, len(order))
	for _, categoryId := range order {
		entry := byCategory[categoryId]
		entry.Percentage = percentage(entry.BudgetAmount, total)
		result = append(result, *entry)
	}
	return result
}

// monthlyTrend buckets budgets by their own start month.
func monthlyTrend(budgets []BudgetRow, spentByBudget map[int]float64) []MonthlyBudgetTrend {
	byMonth := make(map[string]*MonthlyBudgetTrend)
	percentageSums := make(map[string]float64)
	for _, b := range budgets {
		month := b.StartDate.Format("2006-01")
		entry, ok := byMonth[month]
		if !ok {
			entry = &MonthlyBudgetTrend{Month: month}
			byMonth[month] = entry
		}
		spent := spentByBudget[b.Id]
		entry.BudgetCount++
		entry.TotalBudget += b.Amount
		entry.TotalSpent += spent
		percentageSums[month] += percentage(spent, b.Amount)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	result := make([]MonthlyBudgetTrend, 0, len(months))
	for _, month := range months {
		entry := byMonth[month]
		entry.AveragePercentageUsed = percentageSums[month] / float64(entry.BudgetCount)
		result = append(result, *entry)
	}
	return result
}

func bucketLabels(query Query, daily bool) []string {
	var labels []string
	if daily {
		for day := dayStart(query.Start); !day.After(query.End); day = day.AddDate(0, 0, 1) {
			labels = append(labels, day.Format(time.DateOnly))
		}
		return labels
	}
	end := time.Date(query.End.Year(), query.End.Month(), 1, 0, 0, 0, 0, query.End.Location())
	for month := time.Date(query.Start.Year(), query.Start.Month(), 1, 0, 0, 0, 0, query.Start.Location()); !month.After(end); month = month.AddDate(0, 1, 0) {
		labels = append(labels, month.Format("2006-01"))
	}
	return labels
}

func validate(query Query) error {
	if query.Start.After(query.End) {
		return ErrInvalidRange
	}
	return nil
}

func percentage(part, whole float64) float64 {
	if whole <= 0 {
		return 0.0
	}
	return part / whole * 100
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
