package income

import (
	"time"

	"github.com/fintrack/fintrack/pkg/payment"
	"github.com/fintrack/fintrack/pkg/recurrence"
)

type Income struct {
	Id          int
	UserId      int
	Amount      float64
	Method      payment.Method
	Date        time.Time
	Description string
	// Source names where the money came from, e.g. "Salary" or "Freelance".
	Source            string
	IsRecurring       bool
	Recurrence        recurrence.Rule
	RecurringSourceId int
	CreatedAt         time.Time
}

type Filter struct {
	From             time.Time
	To               time.Time
	Source           string
	IncludeTemplates bool
}
