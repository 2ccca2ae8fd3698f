package stats

import "time"

// Query is a closed date range for statistics aggregation.
type Query struct {
	Start time.Time
	End   time.Time
}

// SpanDays returns the number of calendar days the query covers, inclusive.
func (q Query) SpanDays() int {
	start := time.Date(q.Start.Year(), q.Start.Month(), q.Start.Day(), 0, 0, 0, 0, q.Start.Location())
	end := time.Date(q.End.Year(), q.End.Month(), q.End.Day(), 0, 0, 0, 0, q.End.Location())
	return int(end.Sub(start).Hours()/24) + 1
}

type CategoryExpense struct {
	CategoryId   int
	CategoryName string
	Icon         string
	Color        string
	Amount       float64
	Percentage   float64
}

type CategoryBreakdown struct {
	TotalAmount float64
	Categories  []CategoryExpense
}

// PeriodSummary is one bucket of the income/expense bar chart. The label is a
// day ("2025-01-15") for ranges up to 31 days and a month ("2025-01") beyond.
type PeriodSummary struct {
	Period       string
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

type BudgetVsActual struct {
	CategoryId     int
	CategoryName   string
	BudgetAmount   float64
	ActualAmount   float64
	Difference     float64
	PercentageUsed float64
}

type BudgetEfficiency struct {
	TotalBudget           float64
	TotalSpent            float64
	TotalRemaining        float64
	AveragePercentageUsed float64
	TotalBudgets          int
	BudgetsOnTrack        int
	BudgetsExceeded       int
}

type BudgetDistribution struct {
	CategoryId   int
	CategoryName string
	BudgetAmount float64
	Percentage   float64
}

type MonthlyBudgetTrend struct {
	Month                 string
	BudgetCount           int
	TotalBudget           float64
	TotalSpent            float64
	AveragePercentageUsed float64
}

type BudgetStatistics struct {
	VsActual     []BudgetVsActual
	Efficiency   BudgetEfficiency
	Distribution []BudgetDistribution
	MonthlyTrend []MonthlyBudgetTrend
}

// Statistics is the unified document served by the statistics endpoint.
type Statistics struct {
	PeriodSummary    []PeriodSummary
	CategoryExpenses CategoryBreakdown
	BudgetStatistics BudgetStatistics
}

type MonthData struct {
	Month   string
	Income  float64
	Expense float64
	Balance float64
}

type BudgetStatus struct {
	TotalBudget    float64
	Spent          float64
	Remaining      float64
	PercentageUsed float64
}

type DetailedStatistics struct {
	TotalIncome          float64
	TotalExpense         float64
	AverageDailyExpense  float64
	AverageMonthlyIncome float64
	TopExpenseCategory   *CategoryExpense
	BudgetStatus         BudgetStatus
}
