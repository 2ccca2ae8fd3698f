package budget

import "time"

type Status string

const (
	StatusOk       Status = "OK"
	StatusWarning  Status = "WARNING"
	StatusExceeded Status = "EXCEEDED"
)

type Budget struct {
	Id     int
	UserId int
	// CategoryId is 0 for a global budget covering all categories.
	CategoryId   int
	CategoryName string
	Amount       float64
	StartDate    time.Time
	EndDate      time.Time
	// IsRecurring marks a monthly template. Month instances provisioned from it
	// keep the flag set for traceability and carry concrete month bounds.
	IsRecurring bool
	CreatedAt   time.Time
}

// Progress is a budget together with its spending derived from the ledger.
type Progress struct {
	Budget
	Spent          float64
	Remaining      float64
	PercentageUsed float64
	Status         Status
}

func statusFor(percentageUsed float64) Status {
	switch {
	case percentageUsed >= 100:
		return StatusExceeded
	case percentageUsed >= 90:
		return StatusWarning
	default:
		return StatusOk
	}
}
