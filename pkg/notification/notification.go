package notification

import "time"

type Type string

const (
	TypeRecurringTransaction Type = "RECURRING_TRANSACTION"
	TypeBudgetProvisioned    Type = "BUDGET_PROVISIONED"
)

type Notification struct {
	Id          int
	UserId      int
	Title       string
	Description string
	IsRead      bool
	Type        Type
	// TransactionType is set for transaction notifications: "EXPENSE" or "INCOME".
	TransactionType string
	CreatedAt       time.Time
}
