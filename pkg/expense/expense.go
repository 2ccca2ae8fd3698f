package expense

import (
	"time"

	"github.com/fintrack/fintrack/pkg/payment"
	"github.com/fintrack/fintrack/pkg/recurrence"
)

type Expense struct {
	Id           int
	UserId       int
	CategoryId   int
	CategoryName string
	Amount       float64
	Method       payment.Method
	Date         time.Time
	Description  string
	Location     string
	// IsRecurring marks a template. Templates are never shown as transactions;
	// they only spawn concrete rows via the daily batch.
	IsRecurring bool
	Recurrence  recurrence.Rule
	// RecurringSourceId links a generated occurrence back to its template.
	RecurringSourceId int
	CreatedAt         time.Time
}

// Filter narrows List queries. Zero values mean "no constraint".
type Filter struct {
	From       time.Time
	To         time.Time
	CategoryId int
	// IncludeTemplates also returns recurring templates, which are excluded by default.
	IncludeTemplates bool
}
