package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// PeriodTotal is one aggregated bucket returned by the grouped ledger queries.
type PeriodTotal struct {
	Label   string
	Income  float64
	Expense float64
}

// BudgetRow is a dated budget as the aggregator sees it: templates without
// dates are excluded at query level.
type BudgetRow struct {
	Id           int
	CategoryId   int
	CategoryName string
	Amount       float64
	StartDate    time.Time
	EndDate      time.Time
}

type Repo interface {
	CategoryExpenses(ctx context.Context, userId int, from, to time.Time) ([]CategoryExpense, error)
	TotalExpenses(ctx context.Context, userId int, from, to time.Time) (float64, error)
	TotalIncome(ctx context.Context, userId int, from, to time.Time) (float64, error)
	// DailyTotals returns per-day income and expense sums labeled "2006-01-02".
	DailyTotals(ctx context.Context, userId int, from, to time.Time) ([]PeriodTotal, error)
	// MonthlyTotals returns per-month sums labeled "2006-01".
	MonthlyTotals(ctx context.Context, userId int, from, to time.Time) ([]PeriodTotal, error)
	// BudgetsOverlapping returns dated budgets whose range intersects [from, to].
	BudgetsOverlapping(ctx context.Context, userId int, from, to time.Time) ([]BudgetRow, error)
	// SpentAmount sums expense occurrences, optionally per category (0 = all).
	SpentAmount(ctx context.Context, userId int, categoryId int, from, to time.Time) (float64, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CategoryExpenses(ctx context.Context, userId int, from, to time.Time) ([]CategoryExpense, error) {
	query := `SELECT c.id, c.name, COALESCE(c.icon, ''), COALESCE(c.color, ''), COALESCE(SUM(e.amount), 0) AS total
			FROM categories c
			JOIN expenses e ON e.category_id = c.id
			WHERE e.user_id = ? AND e.is_recurring = 0 AND e.date >= ? AND e.date <= ?
			GROUP BY c.id, c.name, c.icon, c.color
			HAVING total > 0
			ORDER BY total DESC`
	rows, err := r.db.QueryContext(ctx, query, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query category expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []CategoryExpense
	for rows.Next() {
		var c CategoryExpense
		if err := rows.Scan(&c.CategoryId, &c.CategoryName, &c.Icon, &c.Color, &c.Amount); err != nil {
			err := fmt.Errorf("could not scan category expense: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *RepoImpl) TotalExpenses(ctx context.Context, userId int, from, to time.Time) (float64, error) {
	return r.total(ctx, "expenses", userId, from, to)
}

func (r *RepoImpl) TotalIncome(ctx context.Context, userId int, from, to time.Time) (float64, error) {
	return r.total(ctx, "incomes", userId, from, to)
}

func (r *RepoImpl) total(ctx context.Context, table string, userId int, from, to time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM ` + table + `
			WHERE user_id = ? AND is_recurring = 0 AND date >= ? AND date <= ?`
	var total float64
	if err := r.db.QueryRowContext(ctx, query, userId, from, to).Scan(&total); err != nil {
		err := fmt.Errorf("could not sum %s: %w", table, err)
		log.Error(err)
		return 0, err
	}
	return total, nil
}

func (r *RepoImpl) DailyTotals(ctx context.Context, userId int, from, to time.Time) ([]PeriodTotal, error) {
	return r.groupedTotals(ctx, "%Y-%m-%d", userId, from, to)
}

func (r *RepoImpl) MonthlyTotals(ctx context.Context, userId int, from, to time.Time) ([]PeriodTotal, error) {
	return r.groupedTotals(ctx, "%Y-%m", userId, from, to)
}

func (r *RepoImpl) groupedTotals(ctx context.Context, format string, userId int, from, to time.Time) ([]PeriodTotal, error) {
	query := `SELECT label, SUM(income), SUM(expense) FROM (
				SELECT strftime(?, date) AS label, amount AS income, 0 AS expense
				FROM incomes WHERE user_id = ? AND is_recurring = 0 AND date >= ? AND date <= ?
				UNION ALL
				SELECT strftime(?, date) AS label, 0 AS income, amount AS expense
				FROM expenses WHERE user_id = ? AND is_recurring = 0 AND date >= ? AND date <= ?
			) GROUP BY label ORDER BY label`
	rows, err := r.db.QueryContext(ctx, query, format, userId, from, to, format, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query period totals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var totals []PeriodTotal
	for rows.Next() {
		var t PeriodTotal
		if err := rows.Scan(&t.Label, &t.Income, &t.Expense); err != nil {
			err := fmt.Errorf("could not scan period total: %w", err)
			log.Error(err)
			return nil, err
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return totals, nil
}

func (r *RepoImpl) BudgetsOverlapping(ctx context.Context, userId int, from, to time.Time) ([]BudgetRow, error) {
	query := `SELECT b.id, COALESCE(b.category_id, 0), COALESCE(c.name, ''), b.amount, b.start_date, b.end_date
			FROM budgets b
			LEFT JOIN categories c ON c.id = b.category_id
			WHERE b.user_id = ? AND b.start_date IS NOT NULL AND b.end_date IS NOT NULL
				AND b.start_date <= ? AND b.end_date >= ?
			ORDER BY b.start_date, b.id`
	rows, err := r.db.QueryContext(ctx, query, userId, to, from)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []BudgetRow
	for rows.Next() {
		var b BudgetRow
		if err := rows.Scan(&b.Id, &b.CategoryId, &b.CategoryName, &b.Amount, &b.StartDate, &b.EndDate); err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (r *RepoImpl) SpentAmount(ctx context.Context, userId int, categoryId int, from, to time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses
			WHERE user_id = ? AND is_recurring = 0 AND date >= ? AND date <= ?`
	args := []any{userId, from, to}
	if categoryId != 0 {
		query += ` AND category_id = ?`
		args = append(args, categoryId)
	}
	var spent float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&spent); err != nil {
		err := fmt.Errorf("could not sum spent amount: %w", err)
		log.Error(err)
		return 0, err
	}
	return spent, nil
}
