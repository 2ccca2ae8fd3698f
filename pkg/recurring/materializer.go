package recurring

import (
	"context"
	"time"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/fintrack/fintrack/pkg/income"
	"github.com/fintrack/fintrack/pkg/recurrence"
	log "github.com/sirupsen/logrus"
)

// MaterializerResult summarizes one daily run.
type MaterializerResult struct {
	ExpensesCreated int
	IncomesCreated  int
	Skipped         int
	Failed          int
}

// Materializer turns recurring expense and income templates into concrete
// ledger rows, once per qualifying calendar day. Each template is processed in
// isolation: a failing template is logged and the run continues.
type Materializer struct {
	expenseRepo expense.Repo
	incomeRepo  income.Repo
	bus         *event_bus.EventBus
}

func NewMaterializer(expenseRepo expense.Repo, incomeRepo income.Repo, bus *event_bus.EventBus) *Materializer {
	return &Materializer{expenseRepo: expenseRepo, incomeRepo: incomeRepo, bus: bus}
}

// RunForDate materializes all due templates for the given calendar date.
// Safe to invoke twice for the same date: already generated occurrences are
// detected through their template link and skipped.
func (m *Materializer) RunForDate(ctx context.Context, targetDate time.Time) MaterializerResult {
	day := dayStart(targetDate)
	log.Infof("Materializing recurring transactions for %s", day.Format(time.DateOnly))

	var result MaterializerResult
	m.materializeExpenses(ctx, day, &result)
	m.materializeIncomes(ctx, day, &result)

	log.Infof("Materialization finished: %d expenses, %d incomes created, %d skipped, %d failed",
		result.ExpensesCreated, result.IncomesCreated, result.Skipped, result.Failed)
	return result
}

func (m *Materializer) materializeExpenses(ctx context.Context, day time.Time, result *MaterializerResult) {
	templates, err := m.expenseRepo.FindRecurringTemplates(ctx)
	if err != nil {
		log.Errorf("Could not load recurring expense templates: %v", err)
		return
	}
	for _, template := range templates {
		created, err := m.materializeExpense(ctx, template, day)
		if err != nil {
			log.Errorf("Could not materialize expense template %d: %v", template.Id, err)
			result.Failed++
			continue
		}
		if created {
			result.ExpensesCreated++
		} else {
			result.Skipped++
		}
	}
}

func (m *Materializer) materializeExpense(ctx context.Context, template expense.Expense, day time.Time) (bool, error) {
	if !recurrence.ShouldGenerate(template.Recurrence, template.Date, day) {
		return false, nil
	}
	exists, err := m.expenseRepo.OccurrenceExists(ctx, template.Id, day, dayEnd(day))
	if err != nil {
		return false, err
	}
	if exists {
		log.Debugf("Occurrence of expense template %d already exists on %s", template.Id, day.Format(time.DateOnly))
		return false, nil
	}

	occurrence := expense.Expense{
		CategoryId:        template.CategoryId,
		Amount:            template.Amount,
		Method:            template.Method,
		Date:              day,
		Description:       template.Description,
		Location:          template.Location,
		RecurringSourceId: template.Id,
	}
	if _, err := m.expenseRepo.Store(ctx, template.UserId, occurrence); err != nil {
		return false, err
	}

	m.publishGenerated(ctx, event_bus.TransactionGeneratedEvent{
		UserId:          template.UserId,
		TransactionType: "EXPENSE",
		Amount:          template.Amount,
		Label:           template.CategoryName,
		OccurrenceDate:  day,
	})
	return true, nil
}

func (m *Materializer) materializeIncomes(ctx context.Context, day time.Time, result *MaterializerResult) {
	templates, err := m.incomeRepo.FindRecurringTemplates(ctx)
	if err != nil {
		log.Errorf("Could not load recurring income templates: %v", err)
		return
	}
	for _, template := range templates {
		created, err := m.materializeIncome(ctx, template, day)
		if err != nil {
			log.Errorf("Could not materialize income template %d: %v", template.Id, err)
			result.Failed++
			continue
		}
		if created {
			result.IncomesCreated++
		} else {
			result.Skipped++
		}
	}
}

func (m *Materializer) materializeIncome(ctx context.Context, template income.Income, day time.Time) (bool, error) {
	if !recurrence.ShouldGenerate(template.Recurrence, template.Date, day) {
		return false, nil
	}
	exists, err := m.incomeRepo.OccurrenceExists(ctx, template.Id, day, dayEnd(day))
	if err != nil {
		return false, err
	}
	if exists {
		log.Debugf("Occurrence of income template %d already exists on %s", template.Id, day.Format(time.DateOnly))
		return false, nil
	}

	occurrence := income.Income{
		Amount:            template.Amount,
		Method:            template.Method,
		Date:              day,
		Description:       template.Description,
		Source:            template.Source,
		RecurringSourceId: template.Id,
	}
	if _, err := m.incomeRepo.Store(ctx, template.UserId, occurrence); err != nil {
		return false, err
	}

	m.publishGenerated(ctx, event_bus.TransactionGeneratedEvent{
		UserId:          template.UserId,
		TransactionType: "INCOME",
		Amount:          template.Amount,
		Label:           template.Source,
		OccurrenceDate:  day,
	})
	return true, nil
}

// publishGenerated notifies subscribers about a new occurrence. Notification
// failures never abort materialization.
func (m *Materializer) publishGenerated(ctx context.Context, data event_bus.TransactionGeneratedEvent) {
	if err := m.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionGenerated, data)); err != nil {
		log.Errorf("Could not notify about generated transaction for user %d: %v", data.UserId, err)
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
