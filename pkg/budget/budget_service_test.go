package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/test_utils"
)

func storeBudget(t *testing.T, repo *StubRepo, b Budget) Budget {
	t.Helper()
	id, err := repo.Store(test_utils.TestContext(), test_utils.TestUser.Id, b)
	require.NoError(t, err)
	stored, err := repo.Get(test_utils.TestContext(), test_utils.TestUser.Id, id)
	require.NoError(t, err)
	return stored
}

func TestCreate_RejectsInvalidBudgets(t *testing.T) {
	service := NewService(NewStubRepo())
	ctx := test_utils.TestContext()

	_, err := service.Create(ctx, Budget{Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = service.Create(ctx, Budget{
		Amount:    100,
		StartDate: date(2025, time.February, 1),
		EndDate:   date(2025, time.January, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestGetProgress_StatusThresholds(t *testing.T) {
	cases := []struct {
		name   string
		spent  float64
		status Status
	}{
		{"under budget", 500, StatusOk},
		{"just below warning", 899, StatusOk},
		{"warning at 90 percent", 900, StatusWarning},
		{"exceeded at 100 percent", 1000, StatusExceeded},
		{"over budget", 1200, StatusExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			repo := NewStubRepo()
			stored := storeBudget(t, repo, Budget{
				CategoryId: 1,
				Amount:     1000,
				StartDate:  date(2025, time.March, 1),
				EndDate:    date(2025, time.March, 31),
			})
			repo.Spent[1] = tc.spent
			service := NewService(repo)

			// when
			progress, err := service.GetProgress(test_utils.TestContext(), stored.Id)

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.spent, progress.Spent)
			assert.Equal(t, 1000-tc.spent, progress.Remaining)
			assert.Equal(t, tc.status, progress.Status)
		})
	}
}

func TestGetProgress_TemplateHasNoSpending(t *testing.T) {
	// given
	repo := NewStubRepo()
	stored := storeBudget(t, repo, Budget{CategoryId: 1, Amount: 400, IsRecurring: true})
	repo.Spent[1] = 999
	service := NewService(repo)

	// when
	progress, err := service.GetProgress(test_utils.TestContext(), stored.Id)

	// then
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress.Spent)
	assert.Equal(t, 400.0, progress.Remaining)
	assert.Equal(t, StatusOk, progress.Status)
}

func TestGetAllWithProgress(t *testing.T) {
	// given
	repo := NewStubRepo()
	storeBudget(t, repo, Budget{
		CategoryId: 1, Amount: 200,
		StartDate: date(2025, time.March, 1), EndDate: date(2025, time.March, 31),
	})
	storeBudget(t, repo, Budget{
		Amount:    3000,
		StartDate: date(2025, time.March, 1), EndDate: date(2025, time.March, 31),
	})
	repo.Spent[1] = 150
	repo.Spent[0] = 2100
	service := NewService(repo)

	// when
	progress, err := service.GetAllWithProgress(test_utils.TestContext())

	// then
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, 75.0, progress[0].PercentageUsed)
	assert.Equal(t, 70.0, progress[1].PercentageUsed)
}

func TestDelete_UnknownBudget(t *testing.T) {
	service := NewService(NewStubRepo())

	err := service.Delete(test_utils.TestContext(), 42)

	assert.ErrorIs(t, err, ErrBudgetNotFound)
}
