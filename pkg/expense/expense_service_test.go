package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/test_utils"
	"github.com/fintrack/fintrack/pkg/payment"
	"github.com/fintrack/fintrack/pkg/recurrence"
)

func TestCreate_Validation(t *testing.T) {
	service := NewService(NewStubRepo())
	ctx := test_utils.TestContext()
	valid := Expense{
		CategoryId: 1,
		Amount:     25,
		Method:     payment.Cash,
		Date:       time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		name    string
		mutate  func(*Expense)
		wantErr error
	}{
		{"zero amount", func(e *Expense) { e.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount = -5 }, ErrInvalidAmount},
		{"unknown method", func(e *Expense) { e.Method = "BARTER" }, ErrInvalidPaymentMethod},
		{"recurring without rule", func(e *Expense) { e.IsRecurring = true }, ErrInvalidRecurrence},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.mutate(&e)
			_, err := service.Create(ctx, e)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreate_RecurringTemplate(t *testing.T) {
	// given
	service := NewService(NewStubRepo())
	ctx := test_utils.TestContext()

	// when
	created, err := service.Create(ctx, Expense{
		CategoryId:  1,
		Amount:      50,
		Method:      payment.CreditCard,
		Date:        time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		IsRecurring: true,
		Recurrence:  recurrence.Rule{Frequency: recurrence.Daily},
	})

	// then
	require.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.True(t, created.IsRecurring)

	// templates stay out of plain listings
	plain, err := service.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestUpdate_UnknownExpense(t *testing.T) {
	service := NewService(NewStubRepo())

	_, err := service.Update(test_utils.TestContext(), Expense{
		Id: 42, CategoryId: 1, Amount: 10, Method: payment.Cash,
	})

	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestDelete_UnknownExpense(t *testing.T) {
	service := NewService(NewStubRepo())

	err := service.Delete(test_utils.TestContext(), 42)

	assert.ErrorIs(t, err, ErrExpenseNotFound)
}
