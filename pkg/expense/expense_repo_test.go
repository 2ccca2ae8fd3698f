package expense

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/test_utils"
	"github.com/fintrack/fintrack/pkg/payment"
	"github.com/fintrack/fintrack/pkg/recurrence"
)

func setupRepo(t *testing.T) (context.Context, *RepoImpl, *sql.DB) {
	t.Helper()
	db := test_utils.SetupTestDB(t)
	test_utils.InsertTestUser(t, db)
	insertCategory(t, db, 1, "Groceries")
	return context.Background(), NewRepo(db), db
}

func insertCategory(t *testing.T, db *sql.DB, id int, name string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO categories (id, user_id, name) VALUES (?, ?, ?)`, id, test_utils.TestUser.Id, name)
	require.NoError(t, err)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRepoImpl_StoreAndGet(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)

	// when
	id, err := repo.Store(ctx, test_utils.TestUser.Id, Expense{
		CategoryId:  1,
		Amount:      42.50,
		Method:      payment.Cash,
		Date:        date(2025, time.January, 5),
		Description: "Weekly shop",
		Location:    "Marjane",
	})
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, test_utils.TestUser.Id, id)
	require.NoError(t, err)
	assert.Equal(t, 42.50, stored.Amount)
	assert.Equal(t, payment.Cash, stored.Method)
	assert.Equal(t, "Groceries", stored.CategoryName)
	assert.Equal(t, "Weekly shop", stored.Description)
	assert.Equal(t, "2025-01-05", stored.Date.Format(time.DateOnly))
	assert.False(t, stored.IsRecurring)
	assert.True(t, stored.Recurrence.IsZero())
}

func TestRepoImpl_GetUnknownExpense(t *testing.T) {
	ctx, repo, _ := setupRepo(t)

	_, err := repo.Get(ctx, test_utils.TestUser.Id, 9999)

	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestRepoImpl_RecurrenceRoundTrip(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)

	// when
	id, err := repo.Store(ctx, test_utils.TestUser.Id, Expense{
		CategoryId:  1,
		Amount:      15,
		Method:      payment.DirectDebit,
		Date:        date(2025, time.January, 1),
		IsRecurring: true,
		Recurrence: recurrence.Rule{
			Frequency:  recurrence.Weekly,
			DaysOfWeek: []int{1, 5},
			EndDate:    date(2025, time.December, 31),
		},
	})
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, test_utils.TestUser.Id, id)
	require.NoError(t, err)
	assert.True(t, stored.IsRecurring)
	assert.Equal(t, recurrence.Weekly, stored.Recurrence.Frequency)
	assert.Equal(t, []int{1, 5}, stored.Recurrence.DaysOfWeek)
	assert.Equal(t, "2025-12-31", stored.Recurrence.EndDate.Format(time.DateOnly))
}

func TestRepoImpl_ListExcludesTemplatesByDefault(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)
	_, err := repo.Store(ctx, test_utils.TestUser.Id, Expense{
		CategoryId: 1, Amount: 10, Method: payment.Cash, Date: date(2025, time.January, 5),
	})
	require.NoError(t, err)
	_, err = repo.Store(ctx, test_utils.TestUser.Id, Expense{
		CategoryId: 1, Amount: 20, Method: payment.Cash, Date: date(2025, time.January, 1),
		IsRecurring: true, Recurrence: recurrence.Rule{Frequency: recurrence.Daily},
	})
	require.NoError(t, err)

	// when
	plain, err := repo.List(ctx, test_utils.TestUser.Id, Filter{})
	require.NoError(t, err)
	all, err := repo.List(ctx, test_utils.TestUser.Id, Filter{IncludeTemplates: true})
	require.NoError(t, err)

	// then
	assert.Len(t, plain, 1)
	assert.Len(t, all, 2)
}

func TestRepoImpl_ListFiltersByDateRangeAndCategory(t *testing.T) {
	// given
	ctx, repo, db := setupRepo(t)
	insertCategory(t, db, 2, "Transport")
	for _, e := range []Expense{
		{CategoryId: 1, Amount: 10, Method: payment.Cash, Date: date(2025, time.January, 5)},
		{CategoryId: 1, Amount: 20, Method: payment.Cash, Date: date(2025, time.February, 5)},
		{CategoryId: 2, Amount: 30, Method: payment.Cash, Date: date(2025, time.January, 10)},
	} {
		_, err := repo.Store(ctx, test_utils.TestUser.Id, e)
		require.NoError(t, err)
	}

	// when
	january, err := repo.List(ctx, test_utils.TestUser.Id, Filter{
		From: date(2025, time.January, 1),
		To:   date(2025, time.January, 31),
	})
	require.NoError(t, err)
	transport, err := repo.List(ctx, test_utils.TestUser.Id, Filter{CategoryId: 2})
	require.NoError(t, err)

	// then
	assert.Len(t, january, 2)
	require.Len(t, transport, 1)
	assert.Equal(t, 30.0, transport[0].Amount)
}

func TestRepoImpl_FindRecurringTemplates(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)
	templateId, err := repo.Store(ctx, test_utils.TestUser.Id, Expense{
		CategoryId: 1, Amount: 50, Method: payment.CreditCard, Date: date(2025, time.January, 1),
		IsRecurring: true, Recurrence: recurrence.Rule{Frequency: recurrence.Daily},
	})
	require.NoError(t, err)
	_, err = repo.Store(ctx, test_utils.TestUser.Id, Expense{
		CategoryId: 1, Amount: 12, Method: payment.Cash, Date: date(2025, time.January, 5),
	})
	require.NoError(t, err)

	// when
	templates, err := repo.FindRecurringTemplates(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, templateId, templates[0].Id)
	assert.Equal(t, recurrence.Daily, templates[0].Recurrence.Frequency)
}

func TestRepoImpl_OccurrenceExists(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)
	templateId, err := repo.Store(ctx, test_utils.TestUser.Id, Expense{
		CategoryId: 1, Amount: 50, Method: payment.CreditCard, Date: date(2025, time.January, 1),
		IsRecurring: true, Recurrence: recurrence.Rule{Frequency: recurrence.Daily},
	})
	require.NoError(t, err)
	_, err = repo.Store(ctx, test_utils.TestUser.Id, Expense{
		CategoryId: 1, Amount: 50, Method: payment.CreditCard,
		Date: date(2025, time.January, 5), RecurringSourceId: templateId,
	})
	require.NoError(t, err)

	// when / then
	dayStart := date(2025, time.January, 5)
	dayEnd := time.Date(2025, time.January, 5, 23, 59, 59, 0, time.UTC)
	exists, err := repo.OccurrenceExists(ctx, templateId, dayStart, dayEnd)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.OccurrenceExists(ctx, templateId, date(2025, time.January, 6), time.Date(2025, time.January, 6, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepoImpl_UpdateAndDelete(t *testing.T) {
	// given
	ctx, repo, _ := setupRepo(t)
	id, err := repo.Store(ctx, test_utils.TestUser.Id, Expense{
		CategoryId: 1, Amount: 10, Method: payment.Cash, Date: date(2025, time.January, 5),
	})
	require.NoError(t, err)

	// when
	updated, err := repo.Update(ctx, test_utils.TestUser.Id, Expense{
		Id: id, CategoryId: 1, Amount: 12.5, Method: payment.CreditCard, Date: date(2025, time.January, 6),
	})
	require.NoError(t, err)
	require.True(t, updated)

	// then
	stored, err := repo.Get(ctx, test_utils.TestUser.Id, id)
	require.NoError(t, err)
	assert.Equal(t, 12.5, stored.Amount)
	assert.Equal(t, payment.CreditCard, stored.Method)

	deleted, err := repo.Delete(ctx, test_utils.TestUser.Id, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.Get(ctx, test_utils.TestUser.Id, id)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}
