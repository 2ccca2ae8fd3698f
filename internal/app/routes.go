package app

import (
	"github.com/gorilla/mux"

	"github.com/fintrack/fintrack/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/email-availability", deps.UserHandler.IsEmailAvailable).Methods("GET").Queries("email", "{email}")
	r.HandleFunc("/api/user/{userId}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Get).Methods("GET")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.List).Methods("GET")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Get).Methods("GET")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Incomes
	r.HandleFunc("/api/income", deps.IncomeHandler.Create).Methods("POST")
	r.HandleFunc("/api/income", deps.IncomeHandler.List).Methods("GET")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Get).Methods("GET")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Delete).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Get).Methods("GET")
	r.HandleFunc("/api/budget/{id}/status", deps.BudgetHandler.GetProgress).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Savings goals
	r.HandleFunc("/api/goal", deps.GoalHandler.Create).Methods("POST")
	r.HandleFunc("/api/goal", deps.GoalHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/goal/{id}", deps.GoalHandler.Get).Methods("GET")
	r.HandleFunc("/api/goal/{id}", deps.GoalHandler.Update).Methods("PUT")
	r.HandleFunc("/api/goal/{id}/add-amount", deps.GoalHandler.AddAmount).Methods("POST")
	r.HandleFunc("/api/goal/{id}", deps.GoalHandler.Delete).Methods("DELETE")

	// Scheduled payments
	r.HandleFunc("/api/scheduled-payment", deps.ScheduledPaymentHandler.Create).Methods("POST")
	r.HandleFunc("/api/scheduled-payment", deps.ScheduledPaymentHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/scheduled-payment/{id}", deps.ScheduledPaymentHandler.Get).Methods("GET")
	r.HandleFunc("/api/scheduled-payment/{id}", deps.ScheduledPaymentHandler.Update).Methods("PUT")
	r.HandleFunc("/api/scheduled-payment/{id}/mark-paid", deps.ScheduledPaymentHandler.MarkPaid).Methods("POST")
	r.HandleFunc("/api/scheduled-payment/{id}", deps.ScheduledPaymentHandler.Delete).Methods("DELETE")

	// Notifications
	r.HandleFunc("/api/notification", deps.NotificationHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/notification/unread-count", deps.NotificationHandler.UnreadCount).Methods("GET")
	r.HandleFunc("/api/notification/mark-all-read", deps.NotificationHandler.MarkAllRead).Methods("POST")
	r.HandleFunc("/api/notification/{id}/mark-read", deps.NotificationHandler.MarkRead).Methods("POST")
	r.HandleFunc("/api/notification/{id}", deps.NotificationHandler.Delete).Methods("DELETE")

	// Favorites
	r.HandleFunc("/api/favorite", deps.FavoriteHandler.GetByType).Methods("GET").Queries("type", "{type}")
	r.HandleFunc("/api/favorite", deps.FavoriteHandler.AddAll).Methods("POST")
	r.HandleFunc("/api/favorite", deps.FavoriteHandler.DeleteAll).Methods("DELETE")

	// Statistics
	r.HandleFunc("/api/statistics", deps.StatsHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/statistics/evolution", deps.StatsHandler.MonthlyEvolution).Methods("GET")
	r.HandleFunc("/api/statistics/detailed", deps.StatsHandler.Detailed).Methods("GET")

	// Batch jobs
	r.HandleFunc("/api/admin/job", deps.SchedulerHandler.ListJobs).Methods("GET")
	r.HandleFunc("/api/admin/job/{jobName}/run", deps.SchedulerHandler.TriggerJob).Methods("POST")
}
