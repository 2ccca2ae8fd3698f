package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fintrack/fintrack/internal/scheduler"
	"github.com/fintrack/fintrack/pkg/recurring"
)

const (
	JobRecurringTransactions = "recurring-transactions"
	JobBudgetProvisioning    = "budget-provisioning"
)

func registerJobs(s *scheduler.Scheduler, materializer *recurring.Materializer, provisioner *recurring.Provisioner) {
	mustRegister(s, scheduler.Job{
		Name:     JobRecurringTransactions,
		Interval: scheduler.IntervalDaily,
		Run: func(ctx context.Context, asOf time.Time) error {
			result := materializer.RunForDate(ctx, asOf)
			log.Infof("Recurring transactions job: %d expenses, %d incomes, %d skipped, %d failed",
				result.ExpensesCreated, result.IncomesCreated, result.Skipped, result.Failed)
			return nil
		},
	})
	mustRegister(s, scheduler.Job{
		Name:     JobBudgetProvisioning,
		Interval: scheduler.IntervalMonthly,
		Run: func(ctx context.Context, asOf time.Time) error {
			result := provisioner.RunForMonth(ctx, asOf)
			log.Infof("Budget provisioning job: %d instances, %d skipped, %d failed",
				result.InstancesCreated, result.Skipped, result.Failed)
			return nil
		},
	})
}

func mustRegister(s *scheduler.Scheduler, job scheduler.Job) {
	if err := s.Register(job); err != nil {
		log.Fatalf("could not register job %s: %v", job.Name, err)
	}
}
