package notification

import (
	"fmt"
	"strings"

	"github.com/fintrack/fintrack/internal/event_bus"
)

// Subscriber turns batch events into stored user notifications.
type Subscriber struct {
	service Service
}

func NewSubscriber(service Service) *Subscriber {
	return &Subscriber{service: service}
}

// Register attaches the subscriber to the bus. Handler errors are returned to
// the bus, which logs them without affecting the publishing batch.
func (s *Subscriber) Register(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.TransactionGeneratedEvent](bus, event_bus.TransactionGenerated,
		func(e event_bus.EventT[event_bus.TransactionGeneratedEvent]) error {
			return s.onTransactionGenerated(e)
		})
	event_bus.SubscribeTyped[event_bus.BudgetProvisionedEvent](bus, event_bus.BudgetProvisioned,
		func(e event_bus.EventT[event_bus.BudgetProvisionedEvent]) error {
			return s.onBudgetProvisioned(e)
		})
}

func (s *Subscriber) onTransactionGenerated(e event_bus.EventT[event_bus.TransactionGeneratedEvent]) error {
	data := e.Data
	title := fmt.Sprintf("Recurring %s created", strings.ToLower(data.TransactionType))
	description := fmt.Sprintf("%.2f (%s) on %s", data.Amount, data.Label, data.OccurrenceDate.Format("2006-01-02"))
	return s.service.NotifyUser(e.Context(), data.UserId, Notification{
		Title:           title,
		Description:     description,
		Type:            TypeRecurringTransaction,
		TransactionType: data.TransactionType,
	})
}

func (s *Subscriber) onBudgetProvisioned(e event_bus.EventT[event_bus.BudgetProvisionedEvent]) error {
	data := e.Data
	label := data.CategoryName
	if label == "" {
		label = "all categories"
	}
	description := fmt.Sprintf("%.2f for %s starting %s", data.Amount, label, data.MonthStart.Format("2006-01-02"))
	return s.service.NotifyUser(e.Context(), data.UserId, Notification{
		Title:       "Monthly budget created",
		Description: description,
		Type:        TypeBudgetProvisioned,
	})
}
