package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/test_utils"
	"github.com/fintrack/fintrack/internal/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newService(repo Repo) *ServiceImpl {
	return NewService(repo, &utils.MockClock{FixedNow: date(2025, time.June, 15)})
}

func TestGetAll_StartAfterEndIsRejected(t *testing.T) {
	service := newService(NewStubRepo())

	_, err := service.GetAll(test_utils.TestContext(), Query{
		Start: date(2025, time.February, 1),
		End:   date(2025, time.January, 1),
	})

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCategoryBreakdown_PercentagesOfReturnedTotal(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Categories = []CategoryExpense{
		{CategoryId: 1, CategoryName: "Groceries", Amount: 600},
		{CategoryId: 2, CategoryName: "Transport", Amount: 400},
	}
	service := newService(repo)

	// when
	breakdown, err := service.CategoryBreakdown(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.January, 31),
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, 1000.0, breakdown.TotalAmount)
	assert.Equal(t, 60.0, breakdown.Categories[0].Percentage)
	assert.Equal(t, 40.0, breakdown.Categories[1].Percentage)
}

func TestCategoryBreakdown_EmptyLedger(t *testing.T) {
	service := newService(NewStubRepo())

	breakdown, err := service.CategoryBreakdown(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.January, 31),
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, breakdown.TotalAmount)
	assert.Empty(t, breakdown.Categories)
}

func TestPeriodSummaries_31DaySpanUsesDailyBuckets(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Totals = []PeriodTotal{
		{Label: "2025-01-05", Income: 100, Expense: 40},
	}
	service := newService(repo)

	// when
	summaries, err := service.PeriodSummaries(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.January, 31),
	})

	// then
	require.NoError(t, err)
	require.Len(t, summaries, 31)
	assert.Equal(t, "2025-01-01", summaries[0].Period)
	assert.Equal(t, "2025-01-31", summaries[30].Period)

	// empty buckets are still emitted
	assert.Equal(t, 0.0, summaries[0].TotalIncome)
	assert.Equal(t, 100.0, summaries[4].TotalIncome)
	assert.Equal(t, 60.0, summaries[4].Balance)
}

func TestPeriodSummaries_32DaySpanSwitchesToMonthlyBuckets(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Totals = []PeriodTotal{
		{Label: "2025-01", Income: 3000, Expense: 1200},
	}
	service := newService(repo)

	// when
	summaries, err := service.PeriodSummaries(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.February, 1),
	})

	// then
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2025-01", summaries[0].Period)
	assert.Equal(t, "2025-02", summaries[1].Period)
	assert.Equal(t, 1800.0, summaries[0].Balance)
}

func TestBudgetStats_SpentCountsOnlyIntersectionOfRanges(t *testing.T) {
	// given: budget covers January, query starts mid-month
	repo := NewStubRepo()
	repo.Budgets = []BudgetRow{
		{Id: 1, CategoryId: 3, CategoryName: "Groceries", Amount: 500,
			StartDate: date(2025, time.January, 1), EndDate: date(2025, time.January, 31)},
	}
	repo.Spent[3] = []SpentEntry{
		{Date: date(2025, time.January, 10), Amount: 100}, // before the query range
		{Date: date(2025, time.January, 20), Amount: 50},
	}
	service := newService(repo)

	// when
	stats, err := service.BudgetStats(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 15),
		End:   date(2025, time.February, 15),
	})

	// then
	require.NoError(t, err)
	require.Len(t, stats.VsActual, 1)
	assert.Equal(t, 50.0, stats.VsActual[0].ActualAmount)
	assert.Equal(t, 450.0, stats.VsActual[0].Difference)
	assert.Equal(t, 10.0, stats.VsActual[0].PercentageUsed)
}

func TestBudgetStats_EfficiencyTalliesEveryBudgetRow(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Budgets = []BudgetRow{
		{Id: 1, CategoryId: 3, CategoryName: "Groceries", Amount: 200,
			StartDate: date(2025, time.January, 1), EndDate: date(2025, time.January, 31)},
		{Id: 2, CategoryId: 4, CategoryName: "Leisure", Amount: 100,
			StartDate: date(2025, time.January, 1), EndDate: date(2025, time.January, 31)},
	}
	repo.Spent[3] = []SpentEntry{{Date: date(2025, time.January, 10), Amount: 100}}
	repo.Spent[4] = []SpentEntry{{Date: date(2025, time.January, 12), Amount: 150}}
	service := newService(repo)

	// when
	stats, err := service.BudgetStats(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.January, 31),
	})

	// then
	e := stats.Efficiency
	require.NoError(t, err)
	assert.Equal(t, 2, e.TotalBudgets)
	assert.Equal(t, 1, e.BudgetsOnTrack)
	assert.Equal(t, 1, e.BudgetsExceeded)
	assert.Equal(t, e.TotalBudgets, e.BudgetsOnTrack+e.BudgetsExceeded)
	assert.Equal(t, 300.0, e.TotalBudget)
	assert.Equal(t, 250.0, e.TotalSpent)
	assert.Equal(t, 50.0, e.TotalRemaining)
	assert.Equal(t, 100.0, e.AveragePercentageUsed) // (50% + 150%) / 2
}

func TestBudgetStats_DistributionSharesOfTotalBudget(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Budgets = []BudgetRow{
		{Id: 1, CategoryId: 3, CategoryName: "Groceries", Amount: 750,
			StartDate: date(2025, time.January, 1), EndDate: date(2025, time.January, 31)},
		{Id: 2, CategoryId: 4, CategoryName: "Leisure", Amount: 250,
			StartDate: date(2025, time.January, 1), EndDate: date(2025, time.January, 31)},
	}
	service := newService(repo)

	// when
	stats, err := service.BudgetStats(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.January, 31),
	})

	// then
	require.NoError(t, err)
	require.Len(t, stats.Distribution, 2)
	assert.Equal(t, 75.0, stats.Distribution[0].Percentage)
	assert.Equal(t, 25.0, stats.Distribution[1].Percentage)
}

func TestBudgetStats_MonthlyTrendBucketsByBudgetStartMonth(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Budgets = []BudgetRow{
		{Id: 1, CategoryId: 3, Amount: 500,
			StartDate: date(2025, time.February, 1), EndDate: date(2025, time.February, 28)},
		{Id: 2, CategoryId: 3, Amount: 500,
			StartDate: date(2025, time.January, 1), EndDate: date(2025, time.January, 31)},
		{Id: 3, CategoryId: 4, Amount: 200,
			StartDate: date(2025, time.January, 1), EndDate: date(2025, time.January, 31)},
	}
	service := newService(repo)

	// when
	stats, err := service.BudgetStats(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.February, 28),
	})

	// then
	require.NoError(t, err)
	require.Len(t, stats.MonthlyTrend, 2)
	assert.Equal(t, "2025-01", stats.MonthlyTrend[0].Month)
	assert.Equal(t, 2, stats.MonthlyTrend[0].BudgetCount)
	assert.Equal(t, 700.0, stats.MonthlyTrend[0].TotalBudget)
	assert.Equal(t, "2025-02", stats.MonthlyTrend[1].Month)
	assert.Equal(t, 1, stats.MonthlyTrend[1].BudgetCount)
}

func TestBudgetStats_ZeroAmountBudgetYieldsZeroPercentage(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Budgets = []BudgetRow{
		{Id: 1, CategoryId: 3, CategoryName: "Groceries", Amount: 0,
			StartDate: date(2025, time.January, 1), EndDate: date(2025, time.January, 31)},
	}
	repo.Spent[3] = []SpentEntry{{Date: date(2025, time.January, 10), Amount: 40}}
	service := newService(repo)

	// when
	stats, err := service.BudgetStats(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.January, 31),
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.VsActual[0].PercentageUsed)
	assert.Equal(t, 0.0, stats.Efficiency.AveragePercentageUsed)
}

func TestMonthlyEvolution_LastMonthsOldestFirst(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Totals = []PeriodTotal{{Income: 3000}}
	service := newService(repo) // clock fixed at 2025-06-15

	// when
	evolution, err := service.MonthlyEvolution(test_utils.TestContext(), 3)

	// then
	require.NoError(t, err)
	require.Len(t, evolution, 3)
	assert.Equal(t, "2025-04", evolution[0].Month)
	assert.Equal(t, "2025-05", evolution[1].Month)
	assert.Equal(t, "2025-06", evolution[2].Month)
	assert.Equal(t, 3000.0, evolution[2].Income)
}

func TestMonthlyEvolution_NonPositiveMonthsDefaultsToTwelve(t *testing.T) {
	service := newService(NewStubRepo())

	evolution, err := service.MonthlyEvolution(test_utils.TestContext(), 0)

	require.NoError(t, err)
	assert.Len(t, evolution, 12)
}

func TestDetailed_AveragesAndBudgetStatus(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Totals = []PeriodTotal{{Income: 2400}}
	repo.Categories = []CategoryExpense{
		{CategoryId: 3, CategoryName: "Groceries", Amount: 100},
	}
	repo.Budgets = []BudgetRow{
		{Id: 1, CategoryId: 3, Amount: 400,
			StartDate: date(2025, time.January, 1), EndDate: date(2025, time.January, 31)},
	}
	repo.Spent[3] = []SpentEntry{{Date: date(2025, time.January, 5), Amount: 100}}
	service := newService(repo)

	// when
	detailed, err := service.Detailed(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.January, 10),
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, 2400.0, detailed.TotalIncome)
	assert.Equal(t, 100.0, detailed.TotalExpense)
	assert.Equal(t, 10.0, detailed.AverageDailyExpense) // 100 over 10 days
	assert.Equal(t, 200.0, detailed.AverageMonthlyIncome)
	require.NotNil(t, detailed.TopExpenseCategory)
	assert.Equal(t, "Groceries", detailed.TopExpenseCategory.CategoryName)
	assert.Equal(t, 400.0, detailed.BudgetStatus.TotalBudget)
	assert.Equal(t, 300.0, detailed.BudgetStatus.Remaining)
	assert.Equal(t, 25.0, detailed.BudgetStatus.PercentageUsed)
}

func TestDetailed_NoBudgetsYieldsZeroPercentage(t *testing.T) {
	// given
	repo := NewStubRepo()
	repo.Spent[0] = []SpentEntry{{Date: date(2025, time.January, 5), Amount: 80}}
	service := newService(repo)

	// when
	detailed, err := service.Detailed(test_utils.TestContext(), Query{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.January, 31),
	})

	// then
	require.NoError(t, err)
	assert.Nil(t, detailed.TopExpenseCategory)
	assert.Equal(t, 0.0, detailed.BudgetStatus.PercentageUsed)
	assert.Equal(t, -80.0, detailed.BudgetStatus.Remaining)
}

