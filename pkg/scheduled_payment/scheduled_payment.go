package scheduled_payment

import (
	"time"

	"github.com/fintrack/fintrack/pkg/payment"
	"github.com/fintrack/fintrack/pkg/recurrence"
)

type ScheduledPayment struct {
	Id           int
	UserId       int
	CategoryId   int
	CategoryName string
	Title        string
	Beneficiary  string
	Amount       float64
	Method       payment.Method
	DueDate      time.Time
	IsPaid       bool
	PaidDate     time.Time
	IsRecurring  bool
	Recurrence   recurrence.Rule
	CreatedAt    time.Time
}

// nextDueDate advances a due date by one frequency step.
func nextDueDate(frequency recurrence.Frequency, dueDate time.Time) time.Time {
	switch frequency {
	case recurrence.Daily:
		return dueDate.AddDate(0, 0, 1)
	case recurrence.Weekly:
		return dueDate.AddDate(0, 0, 7)
	case recurrence.Monthly:
		return dueDate.AddDate(0, 1, 0)
	case recurrence.Yearly:
		return dueDate.AddDate(1, 0, 0)
	}
	return time.Time{}
}
