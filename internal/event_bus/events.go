package event_bus

import "time"

const (
	TransactionGenerated EventType = "transaction.generated"
	BudgetProvisioned    EventType = "budget.provisioned"
)

// TransactionGeneratedEvent is published by the daily batch when a recurring
// template materializes a concrete expense or income.
type TransactionGeneratedEvent struct {
	UserId          int
	TransactionType string // "EXPENSE" or "INCOME"
	Amount          float64
	Label           string // category name for expenses, source for incomes
	OccurrenceDate  time.Time
}

// BudgetProvisionedEvent is published by the monthly batch when a recurring
// budget template spawns a new month instance.
type BudgetProvisionedEvent struct {
	UserId       int
	CategoryName string // empty for a global budget
	Amount       float64
	MonthStart   time.Time
}
