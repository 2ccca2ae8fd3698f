package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/fintrack/fintrack/pkg/income"
	"github.com/fintrack/fintrack/pkg/notification"
	"github.com/fintrack/fintrack/pkg/payment"
	"github.com/fintrack/fintrack/pkg/recurrence"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dailyExpenseTemplate(t *testing.T, repo *expense.StubRepo, amount float64) int {
	t.Helper()
	id, err := repo.Store(context.Background(), 1, expense.Expense{
		CategoryId:  3,
		Amount:      amount,
		Method:      payment.CreditCard,
		Date:        date(2025, time.January, 1),
		Description: "Coffee subscription",
		IsRecurring: true,
		Recurrence:  recurrence.Rule{Frequency: recurrence.Daily},
	})
	require.NoError(t, err)
	return id
}

func TestMaterializer_CreatesDailyExpenseOccurrence(t *testing.T) {
	// given
	expenseRepo := expense.NewStubRepo()
	incomeRepo := income.NewStubRepo()
	templateId := dailyExpenseTemplate(t, expenseRepo, 50.00)
	materializer := NewMaterializer(expenseRepo, incomeRepo, event_bus.NewEventBus())

	// when
	result := materializer.RunForDate(context.Background(), date(2025, time.January, 5))

	// then
	assert.Equal(t, 1, result.ExpensesCreated)
	assert.Equal(t, 0, result.Failed)

	occurrences, err := expenseRepo.List(context.Background(), 1, expense.Filter{})
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, 50.00, occurrences[0].Amount)
	assert.Equal(t, date(2025, time.January, 5), occurrences[0].Date)
	assert.Equal(t, templateId, occurrences[0].RecurringSourceId)
	assert.False(t, occurrences[0].IsRecurring)
	assert.True(t, occurrences[0].Recurrence.IsZero())
}

func TestMaterializer_SecondRunForSameDateCreatesNothing(t *testing.T) {
	// given
	expenseRepo := expense.NewStubRepo()
	incomeRepo := income.NewStubRepo()
	dailyExpenseTemplate(t, expenseRepo, 50.00)
	materializer := NewMaterializer(expenseRepo, incomeRepo, event_bus.NewEventBus())
	target := date(2025, time.January, 5)

	// when
	first := materializer.RunForDate(context.Background(), target)
	second := materializer.RunForDate(context.Background(), target)

	// then
	assert.Equal(t, 1, first.ExpensesCreated)
	assert.Equal(t, 0, second.ExpensesCreated)
	assert.Equal(t, 1, second.Skipped)

	occurrences, err := expenseRepo.List(context.Background(), 1, expense.Filter{})
	require.NoError(t, err)
	assert.Len(t, occurrences, 1)
}

func TestMaterializer_NotDueTemplateIsSkipped(t *testing.T) {
	// given
	expenseRepo := expense.NewStubRepo()
	_, err := expenseRepo.Store(context.Background(), 1, expense.Expense{
		CategoryId:  3,
		Amount:      1200,
		Method:      payment.BankTransfer,
		Date:        date(2025, time.January, 1),
		IsRecurring: true,
		Recurrence:  recurrence.Rule{Frequency: recurrence.Monthly, DayOfMonth: 1},
	})
	require.NoError(t, err)
	materializer := NewMaterializer(expenseRepo, income.NewStubRepo(), event_bus.NewEventBus())

	// when
	result := materializer.RunForDate(context.Background(), date(2025, time.January, 5))

	// then
	assert.Equal(t, 0, result.ExpensesCreated)
	assert.Equal(t, 1, result.Skipped)
}

func TestMaterializer_CreatesIncomeOccurrence(t *testing.T) {
	// given
	incomeRepo := income.NewStubRepo()
	templateId, err := incomeRepo.Store(context.Background(), 1, income.Income{
		Amount:      3500,
		Method:      payment.BankTransfer,
		Date:        date(2025, time.January, 28),
		Source:      "Salary",
		IsRecurring: true,
		Recurrence:  recurrence.Rule{Frequency: recurrence.Monthly, DayOfMonth: 28},
	})
	require.NoError(t, err)
	materializer := NewMaterializer(expense.NewStubRepo(), incomeRepo, event_bus.NewEventBus())

	// when
	result := materializer.RunForDate(context.Background(), date(2025, time.February, 28))

	// then
	assert.Equal(t, 1, result.IncomesCreated)

	occurrences, err := incomeRepo.List(context.Background(), 1, income.Filter{})
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, "Salary", occurrences[0].Source)
	assert.Equal(t, templateId, occurrences[0].RecurringSourceId)
}

type failingStoreExpenseRepo struct {
	*expense.StubRepo
	failForTemplateId int
}

func (r *failingStoreExpenseRepo) Store(ctx context.Context, userId int, e expense.Expense) (int, error) {
	if e.RecurringSourceId == r.failForTemplateId {
		return 0, errors.New("insert failed")
	}
	return r.StubRepo.Store(ctx, userId, e)
}

func TestMaterializer_FailingTemplateDoesNotAbortTheRun(t *testing.T) {
	// given
	stub := expense.NewStubRepo()
	brokenId := dailyExpenseTemplate(t, stub, 10.00)
	dailyExpenseTemplate(t, stub, 20.00)
	expenseRepo := &failingStoreExpenseRepo{StubRepo: stub, failForTemplateId: brokenId}
	materializer := NewMaterializer(expenseRepo, income.NewStubRepo(), event_bus.NewEventBus())

	// when
	result := materializer.RunForDate(context.Background(), date(2025, time.January, 5))

	// then
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.ExpensesCreated)

	occurrences, err := stub.List(context.Background(), 1, expense.Filter{})
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, 20.00, occurrences[0].Amount)
}

func TestMaterializer_PublishesNotificationForGeneratedTransaction(t *testing.T) {
	// given
	bus := event_bus.NewEventBus()
	notificationRepo := notification.NewStubRepo()
	notification.NewSubscriber(notification.NewService(notificationRepo)).Register(bus)

	expenseRepo := expense.NewStubRepo()
	dailyExpenseTemplate(t, expenseRepo, 50.00)
	materializer := NewMaterializer(expenseRepo, income.NewStubRepo(), bus)

	// when
	materializer.RunForDate(context.Background(), date(2025, time.January, 5))

	// then
	require.Len(t, notificationRepo.Notifications, 1)
	stored := notificationRepo.Notifications[0]
	assert.Equal(t, 1, stored.UserId)
	assert.Equal(t, notification.TypeRecurringTransaction, stored.Type)
	assert.Equal(t, "Recurring expense created", stored.Title)
}

func TestMaterializer_NotificationFailureDoesNotAbortMaterialization(t *testing.T) {
	// given
	bus := event_bus.NewEventBus()
	notificationRepo := notification.NewStubRepo()
	notificationRepo.FailStore = errors.New("notifications table locked")
	notification.NewSubscriber(notification.NewService(notificationRepo)).Register(bus)

	expenseRepo := expense.NewStubRepo()
	dailyExpenseTemplate(t, expenseRepo, 50.00)
	materializer := NewMaterializer(expenseRepo, income.NewStubRepo(), bus)

	// when
	result := materializer.RunForDate(context.Background(), date(2025, time.January, 5))

	// then
	assert.Equal(t, 1, result.ExpensesCreated)
	assert.Equal(t, 0, result.Failed)

	occurrences, err := expenseRepo.List(context.Background(), 1, expense.Filter{})
	require.NoError(t, err)
	assert.Len(t, occurrences, 1)
}
