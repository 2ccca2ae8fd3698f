package budget

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/test_utils"
)

func setupRepo(t *testing.T) (context.Context, *RepoImpl, *sql.DB) {
	t.Helper()
	db := test_utils.SetupTestDB(t)
	test_utils.InsertTestUser(t, db)
	_, err := db.Exec(`INSERT INTO categories (id, user_id, name) VALUES (1, ?, 'Groceries')`, test_utils.TestUser.Id)
	require.NoError(t, err)
	return context.Background(), NewRepo(db), db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRepoImpl_StoreAndGet_GlobalBudget(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)

	// when
	id, err := repo.Store(ctx, test_utils.TestUser.Id, Budget{
		Amount:    3000,
		StartDate: date(2025, time.March, 1),
		EndDate:   date(2025, time.March, 31),
	})
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, test_utils.TestUser.Id, id)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CategoryId)
	assert.Equal(t, "", stored.CategoryName)
	assert.Equal(t, 3000.0, stored.Amount)
	assert.Equal(t, "2025-03-01", stored.StartDate.Format(time.DateOnly))
}

func TestRepoImpl_FindRecurringTemplates_OnlyUndatedRecurringRows(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)
	templateId, err := repo.Store(ctx, test_utils.TestUser.Id, Budget{
		CategoryId: 1, Amount: 500, IsRecurring: true,
	})
	require.NoError(t, err)
	// a provisioned instance keeps the recurring flag but carries month bounds
	_, err = repo.Store(ctx, test_utils.TestUser.Id, Budget{
		CategoryId: 1, Amount: 500, IsRecurring: true,
		StartDate: date(2025, time.March, 1), EndDate: date(2025, time.March, 31),
	})
	require.NoError(t, err)
	_, err = repo.Store(ctx, test_utils.TestUser.Id, Budget{
		CategoryId: 1, Amount: 200,
		StartDate: date(2025, time.March, 1), EndDate: date(2025, time.March, 31),
	})
	require.NoError(t, err)

	// when
	templates, err := repo.FindRecurringTemplates(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, templateId, templates[0].Id)
}

func TestRepoImpl_InstanceExists(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)
	firstDay, lastDay := date(2025, time.March, 1), date(2025, time.March, 31)
	_, err := repo.Store(ctx, test_utils.TestUser.Id, Budget{
		CategoryId: 1, Amount: 500, IsRecurring: true,
		StartDate: firstDay, EndDate: lastDay,
	})
	require.NoError(t, err)

	// when / then
	exists, err := repo.InstanceExists(ctx, test_utils.TestUser.Id, 1, firstDay, lastDay)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.InstanceExists(ctx, test_utils.TestUser.Id, 1, date(2025, time.April, 1), date(2025, time.April, 30))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepoImpl_InstanceExists_GlobalMatchesNullCategoryOnly(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)
	firstDay, lastDay := date(2025, time.March, 1), date(2025, time.March, 31)
	_, err := repo.Store(ctx, test_utils.TestUser.Id, Budget{
		CategoryId: 1, Amount: 500, IsRecurring: true,
		StartDate: firstDay, EndDate: lastDay,
	})
	require.NoError(t, err)

	// when
	exists, err := repo.InstanceExists(ctx, test_utils.TestUser.Id, 0, firstDay, lastDay)

	// then: the category instance does not satisfy the global check
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepoImpl_SpentAmount_IgnoresTemplates(t *testing.T) {
	// given
	ctx, repo, db := setupRepo(t)
	insertExpense := func(amount float64, day time.Time, isRecurring bool) {
		_, err := db.Exec(
			`INSERT INTO expenses (user_id, category_id, amount, payment_method, date, is_recurring)
			VALUES (?, 1, ?, 'CASH', ?, ?)`,
			test_utils.TestUser.Id, amount, day, isRecurring,
		)
		require.NoError(t, err)
	}
	insertExpense(100, date(2025, time.March, 5), false)
	insertExpense(40, date(2025, time.March, 20), false)
	insertExpense(999, date(2025, time.March, 10), true) // template, not real spending
	insertExpense(70, date(2025, time.April, 2), false)  // outside the range

	// when
	spent, err := repo.SpentAmount(ctx, test_utils.TestUser.Id, 1,
		date(2025, time.March, 1), date(2025, time.March, 31))

	// then
	require.NoError(t, err)
	assert.Equal(t, 140.0, spent)

	all, err := repo.SpentAmount(ctx, test_utils.TestUser.Id, 0,
		date(2025, time.March, 1), date(2025, time.March, 31))
	require.NoError(t, err)
	assert.Equal(t, 140.0, all)
}

func TestRepoImpl_UpdateAndDelete(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)
	id, err := repo.Store(ctx, test_utils.TestUser.Id, Budget{
		CategoryId: 1, Amount: 500,
		StartDate: date(2025, time.March, 1), EndDate: date(2025, time.March, 31),
	})
	require.NoError(t, err)

	// when
	updated, err := repo.Update(ctx, test_utils.TestUser.Id, Budget{
		Id: id, CategoryId: 1, Amount: 650,
		StartDate: date(2025, time.March, 1), EndDate: date(2025, time.March, 31),
	})
	require.NoError(t, err)
	require.True(t, updated)

	// then
	stored, err := repo.Get(ctx, test_utils.TestUser.Id, id)
	require.NoError(t, err)
	assert.Equal(t, 650.0, stored.Amount)

	deleted, err := repo.Delete(ctx, test_utils.TestUser.Id, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.Get(ctx, test_utils.TestUser.Id, id)
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}
