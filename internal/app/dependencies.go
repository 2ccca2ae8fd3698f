package app

import (
	"database/sql"

	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/scheduler"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/budget"
	"github.com/fintrack/fintrack/pkg/category"
	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/fintrack/fintrack/pkg/favorite"
	"github.com/fintrack/fintrack/pkg/goal"
	"github.com/fintrack/fintrack/pkg/income"
	"github.com/fintrack/fintrack/pkg/notification"
	"github.com/fintrack/fintrack/pkg/recurring"
	"github.com/fintrack/fintrack/pkg/scheduled_payment"
	"github.com/fintrack/fintrack/pkg/stats"
	"github.com/fintrack/fintrack/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	CategoryService category.Service
	CategoryHandler *category.Handler

	ExpenseRepo    expense.Repo
	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	IncomeRepo    income.Repo
	IncomeService income.Service
	IncomeHandler *income.Handler

	BudgetRepo    budget.Repo
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	GoalService goal.Service
	GoalHandler *goal.Handler

	ScheduledPaymentService scheduled_payment.Service
	ScheduledPaymentHandler *scheduled_payment.Handler

	NotificationService    notification.Service
	NotificationHandler    *notification.Handler
	NotificationSubscriber *notification.Subscriber

	FavoriteService favorite.Service
	FavoriteHandler *favorite.Handler

	StatsService stats.Service
	StatsHandler *stats.Handler

	Materializer *recurring.Materializer
	Provisioner  *recurring.Provisioner

	Scheduler        *scheduler.Scheduler
	SchedulerHandler *scheduler.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CategoryService = category.NewService(category.NewRepo(db))
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.ExpenseRepo = expense.NewRepo(db)
	deps.ExpenseService = expense.NewService(deps.ExpenseRepo)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.IncomeRepo = income.NewRepo(db)
	deps.IncomeService = income.NewService(deps.IncomeRepo)
	deps.IncomeHandler = income.NewHandler(deps.IncomeService)

	deps.BudgetRepo = budget.NewRepo(db)
	deps.BudgetService = budget.NewService(deps.BudgetRepo)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.GoalService = goal.NewService(goal.NewRepo(db))
	deps.GoalHandler = goal.NewHandler(deps.GoalService)

	deps.ScheduledPaymentService = scheduled_payment.NewService(scheduled_payment.NewRepo(db), deps.ExpenseService)
	deps.ScheduledPaymentHandler = scheduled_payment.NewHandler(deps.ScheduledPaymentService)

	deps.NotificationService = notification.NewService(notification.NewRepo(db))
	deps.NotificationHandler = notification.NewHandler(deps.NotificationService)
	deps.NotificationSubscriber = notification.NewSubscriber(deps.NotificationService)
	deps.NotificationSubscriber.Register(deps.EventBus)

	deps.FavoriteService = favorite.NewService(favorite.NewRepo(db))
	deps.FavoriteHandler = favorite.NewHandler(deps.FavoriteService)

	deps.StatsService = stats.NewService(stats.NewRepo(db), deps.Clock)
	deps.StatsHandler = stats.NewHandler(deps.StatsService)

	deps.Materializer = recurring.NewMaterializer(deps.ExpenseRepo, deps.IncomeRepo, deps.EventBus)
	deps.Provisioner = recurring.NewProvisioner(deps.BudgetRepo, deps.EventBus)

	deps.Scheduler = scheduler.New(deps.Clock, cfg.Scheduler.DailyHour)
	registerJobs(deps.Scheduler, deps.Materializer, deps.Provisioner)
	deps.SchedulerHandler = scheduler.NewHandler(deps.Scheduler)

	return deps
}
