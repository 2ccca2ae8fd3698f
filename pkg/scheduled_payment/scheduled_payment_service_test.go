package scheduled_payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/test_utils"
	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/fintrack/fintrack/pkg/payment"
	"github.com/fintrack/fintrack/pkg/recurrence"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setupService() (*ServiceImpl, *StubRepo, *expense.StubRepo) {
	repo := NewStubRepo()
	expenseRepo := expense.NewStubRepo()
	service := NewService(repo, expense.NewService(expenseRepo))
	return service, repo, expenseRepo
}

func rentPayment() ScheduledPayment {
	return ScheduledPayment{
		CategoryId:  2,
		Title:       "Rent",
		Beneficiary: "Landlord",
		Amount:      900,
		Method:      payment.BankTransfer,
		DueDate:     date(2025, time.February, 1),
	}
}

func TestCreate_RejectsInvalidPayments(t *testing.T) {
	service, _, _ := setupService()
	ctx := test_utils.TestContext()

	cases := []struct {
		name    string
		mutate  func(*ScheduledPayment)
		wantErr error
	}{
		{"empty title", func(p *ScheduledPayment) { p.Title = "" }, ErrEmptyTitle},
		{"zero amount", func(p *ScheduledPayment) { p.Amount = 0 }, ErrInvalidAmount},
		{"unknown method", func(p *ScheduledPayment) { p.Method = "IOU" }, ErrInvalidPaymentMethod},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := rentPayment()
			tc.mutate(&p)
			_, err := service.Create(ctx, p)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestMarkPaid_RecordsExpenseInLedger(t *testing.T) {
	// given
	service, _, expenseRepo := setupService()
	ctx := test_utils.TestContext()
	created, err := service.Create(ctx, rentPayment())
	require.NoError(t, err)

	// when
	paid, err := service.MarkPaid(ctx, created.Id, date(2025, time.February, 3))

	// then
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.Equal(t, date(2025, time.February, 3), paid.PaidDate)

	expenses, err := expenseRepo.List(ctx, test_utils.TestUser.Id, expense.Filter{})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, 900.0, expenses[0].Amount)
	assert.Equal(t, "Rent", expenses[0].Description)
	assert.Equal(t, "Landlord", expenses[0].Location)
	assert.Equal(t, date(2025, time.February, 3), expenses[0].Date)
}

func TestMarkPaid_TwiceIsRejected(t *testing.T) {
	// given
	service, _, expenseRepo := setupService()
	ctx := test_utils.TestContext()
	created, err := service.Create(ctx, rentPayment())
	require.NoError(t, err)
	_, err = service.MarkPaid(ctx, created.Id, date(2025, time.February, 3))
	require.NoError(t, err)

	// when
	_, err = service.MarkPaid(ctx, created.Id, date(2025, time.February, 4))

	// then
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	expenses, listErr := expenseRepo.List(ctx, test_utils.TestUser.Id, expense.Filter{})
	require.NoError(t, listErr)
	assert.Len(t, expenses, 1)
}

func TestMarkPaid_RecurringPaymentSpawnsNextOne(t *testing.T) {
	// given
	service, _, _ := setupService()
	ctx := test_utils.TestContext()
	p := rentPayment()
	p.IsRecurring = true
	p.Recurrence = recurrence.Rule{Frequency: recurrence.Monthly}
	created, err := service.Create(ctx, p)
	require.NoError(t, err)

	// when
	_, err = service.MarkPaid(ctx, created.Id, date(2025, time.February, 1))

	// then
	require.NoError(t, err)
	unpaid, err := service.GetAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, date(2025, time.March, 1), unpaid[0].DueDate)
	assert.False(t, unpaid[0].IsPaid)
	assert.Equal(t, "Rent", unpaid[0].Title)
}

func TestMarkPaid_NoFollowUpPastRecurrenceEnd(t *testing.T) {
	// given
	service, _, _ := setupService()
	ctx := test_utils.TestContext()
	p := rentPayment()
	p.IsRecurring = true
	p.Recurrence = recurrence.Rule{
		Frequency: recurrence.Monthly,
		EndDate:   date(2025, time.February, 15),
	}
	created, err := service.Create(ctx, p)
	require.NoError(t, err)

	// when: next due date would be March 1, past the recurrence end
	_, err = service.MarkPaid(ctx, created.Id, date(2025, time.February, 1))

	// then
	require.NoError(t, err)
	unpaid, err := service.GetAll(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, unpaid)
}

func TestUpdate_PaidPaymentIsImmutable(t *testing.T) {
	// given
	service, _, _ := setupService()
	ctx := test_utils.TestContext()
	created, err := service.Create(ctx, rentPayment())
	require.NoError(t, err)
	_, err = service.MarkPaid(ctx, created.Id, date(2025, time.February, 3))
	require.NoError(t, err)

	// when
	created.Amount = 950
	_, err = service.Update(ctx, created)

	// then
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestDelete_PaidPaymentIsImmutable(t *testing.T) {
	// given
	service, _, _ := setupService()
	ctx := test_utils.TestContext()
	created, err := service.Create(ctx, rentPayment())
	require.NoError(t, err)
	_, err = service.MarkPaid(ctx, created.Id, date(2025, time.February, 3))
	require.NoError(t, err)

	// when
	err = service.Delete(ctx, created.Id)

	// then
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestNextDueDate_AdvancesOneFrequencyStep(t *testing.T) {
	due := date(2025, time.January, 31)

	assert.Equal(t, date(2025, time.February, 1), nextDueDate(recurrence.Daily, due))
	assert.Equal(t, date(2025, time.February, 7), nextDueDate(recurrence.Weekly, due))
	assert.Equal(t, date(2026, time.January, 31), nextDueDate(recurrence.Yearly, due))
	assert.True(t, nextDueDate("", due).IsZero())
}
