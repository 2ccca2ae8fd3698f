package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrBudgetNotFound = errors.New("budget not found")

type Repo interface {
	Store(ctx context.Context, userId int, budget Budget) (int, error)
	Get(ctx context.Context, userId int, budgetId int) (Budget, error)
	GetAll(ctx context.Context, userId int) ([]Budget, error)
	Update(ctx context.Context, userId int, budget Budget) (bool, error)
	Delete(ctx context.Context, userId int, budgetId int) (bool, error)

	// FindRecurringTemplates returns recurring budget templates across all
	// users. Used by the monthly provisioning batch.
	FindRecurringTemplates(ctx context.Context) ([]Budget, error)
	// InstanceExists reports whether a budget with exactly the given month
	// bounds already exists for the user and category. A categoryId of 0
	// matches global budgets (category IS NULL).
	InstanceExists(ctx context.Context, userId int, categoryId int, firstDay, lastDay time.Time) (bool, error)
	// SpentAmount sums expense occurrences for the user between from and to,
	// optionally narrowed to one category (0 means all categories).
	SpentAmount(ctx context.Context, userId int, categoryId int, from, to time.Time) (float64, error)
}

const budgetColumns = `b.id, b.user_id, COALESCE(b.category_id, 0), COALESCE(c.name, ''), b.amount,
		b.start_date, b.end_date, b.is_recurring, b.created_at`

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, budget Budget) (int, error) {
	query := `INSERT INTO budgets (user_id, category_id, amount, start_date, end_date, is_recurring)
			VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		userId,
		nullableInt(budget.CategoryId),
		budget.Amount,
		nullableTime(budget.StartDate),
		nullableTime(budget.EndDate),
		budget.IsRecurring,
	)
	if err != nil {
		err := fmt.Errorf("could not store budget: %w", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(id), nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, budgetId int) (Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets b
			LEFT JOIN categories c ON c.id = b.category_id
			WHERE b.id = ? AND b.user_id = ?`
	budget, err := scanBudget(r.db.QueryRowContext(ctx, query, budgetId, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	} else if err != nil {
		log.Errorf("could not get budget: %v", err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets b
			LEFT JOIN categories c ON c.id = b.category_id
			WHERE b.user_id = ? ORDER BY b.start_date DESC, b.id DESC`
	return r.queryBudgets(ctx, query, userId)
}

func (r *RepoImpl) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	query := `UPDATE budgets SET category_id = ?, amount = ?, start_date = ?, end_date = ?, is_recurring = ?
			WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query,
		nullableInt(budget.CategoryId),
		budget.Amount,
		nullableTime(budget.StartDate),
		nullableTime(budget.EndDate),
		budget.IsRecurring,
		budget.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update budget: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, budgetId int) (bool, error) {
	query := `DELETE FROM budgets WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, budgetId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) FindRecurringTemplates(ctx context.Context) ([]Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets b
			LEFT JOIN categories c ON c.id = b.category_id
			WHERE b.is_recurring = 1 AND b.start_date IS NULL ORDER BY b.id`
	return r.queryBudgets(ctx, query)
}

func (r *RepoImpl) InstanceExists(ctx context.Context, userId int, categoryId int, firstDay, lastDay time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM budgets WHERE user_id = ? AND start_date = ? AND end_date = ?`
	args := []any{userId, firstDay, lastDay}
	if categoryId == 0 {
		query += ` AND category_id IS NULL`
	} else {
		query += ` AND category_id = ?`
		args = append(args, categoryId)
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		err := fmt.Errorf("could not check budget instance existence: %w", err)
		log.Error(err)
		return false, err
	}
	return count > 0, nil
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

func (r *RepoImpl) queryBudgets(ctx context.Context, query string, args ...any) ([]Budget, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBudget(row rowScanner) (Budget, error) {
	var budget Budget
	var startDate, endDate sql.NullTime
	err := row.Scan(
		&budget.Id,
		&budget.UserId,
		&budget.CategoryId,
		&budget.CategoryName,
		&budget.Amount,
		&startDate,
		&endDate,
		&budget.IsRecurring,
		&budget.CreatedAt,
	)
	if err != nil {
		return Budget{}, err
	}
	if startDate.Valid {
		budget.StartDate = startDate.Time
	}
	if endDate.Valid {
		budget.EndDate = endDate.Time
	}
	return budget, nil
}

func nullableInt(i int) any {
	if i == 0 {
		return nil
	}
	return i
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
