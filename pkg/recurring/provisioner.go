package recurring

import (
	"context"
	"time"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/pkg/budget"
	log "github.com/sirupsen/logrus"
)

// ProvisionerResult summarizes one monthly run.
type ProvisionerResult struct {
	InstancesCreated int
	Skipped          int
	Failed           int
}

// Provisioner creates one concrete budget instance per month from every
// recurring budget template. At most one instance exists per (user, category,
// month); a second run for the same month creates nothing.
type Provisioner struct {
	budgetRepo budget.Repo
	bus        *event_bus.EventBus
}

func NewProvisioner(budgetRepo budget.Repo, bus *event_bus.EventBus) *Provisioner {
	return &Provisioner{budgetRepo: budgetRepo, bus: bus}
}

// RunForMonth provisions budget instances for the month containing asOf.
func (p *Provisioner) RunForMonth(ctx context.Context, asOf time.Time) ProvisionerResult {
	firstDay := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	lastDay := firstDay.AddDate(0, 1, -1)
	log.Infof("Provisioning recurring budgets for %s", firstDay.Format("2006-01"))

	var result ProvisionerResult
	templates, err := p.budgetRepo.FindRecurringTemplates(ctx)
	if err != nil {
		log.Errorf("Could not load recurring budget templates: %v", err)
		return result
	}

	for _, template := range templates {
		created, err := p.provision(ctx, template, firstDay, lastDay)
		if err != nil {
			log.Errorf("Could not provision budget template %d: %v", template.Id, err)
			result.Failed++
			continue
		}
		if created {
			result.InstancesCreated++
		} else {
			result.Skipped++
		}
	}

	log.Infof("Budget provisioning finished: %d instances created, %d skipped, %d failed",
		result.InstancesCreated, result.Skipped, result.Failed)
	return result
}

func (p *Provisioner) provision(ctx context.Context, template budget.Budget, firstDay, lastDay time.Time) (bool, error) {
	exists, err := p.budgetRepo.InstanceExists(ctx, template.UserId, template.CategoryId, firstDay, lastDay)
	if err != nil {
		return false, err
	}
	if exists {
		log.Debugf("Budget instance for template %d already exists in %s", template.Id, firstDay.Format("2006-01"))
		return false, nil
	}

	instance := budget.Budget{
		CategoryId:  template.CategoryId,
		Amount:      template.Amount,
		StartDate:   firstDay,
		EndDate:     lastDay,
		IsRecurring: true,
	}
	if _, err := p.budgetRepo.Store(ctx, template.UserId, instance); err != nil {
		return false, err
	}

	event := event_bus.NewEvent(ctx, event_bus.BudgetProvisioned, event_bus.BudgetProvisionedEvent{
		UserId:       template.UserId,
		CategoryName: template.CategoryName,
		Amount:       template.Amount,
		MonthStart:   firstDay,
	})
	if err := p.bus.Publish(event); err != nil {
		log.Errorf("Could not notify about provisioned budget for user %d: %v", template.UserId, err)
	}
	return true, nil
}
