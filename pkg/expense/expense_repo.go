package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/pkg/payment"
	"github.com/fintrack/fintrack/pkg/recurrence"
	log "github.com/sirupsen/logrus"
)

var ErrExpenseNotFound = errors.New("expense not found")

type Repo interface {
	Store(ctx context.Context, userId int, expense Expense) (int, error)
	Get(ctx context.Context, userId int, expenseId int) (Expense, error)
	List(ctx context.Context, userId int, filter Filter) ([]Expense, error)
	Update(ctx context.Context, userId int, expense Expense) (bool, error)
	Delete(ctx context.Context, userId int, expenseId int) (bool, error)

	// FindRecurringTemplates returns all recurring templates across users,
	// newest first. Used by the daily batch.
	FindRecurringTemplates(ctx context.Context) ([]Expense, error)
	// OccurrenceExists reports whether a generated occurrence for the template
	// already exists within [dayStart, dayEnd].
	OccurrenceExists(ctx context.Context, templateId int, dayStart, dayEnd time.Time) (bool, error)
}

const expenseColumns = `e.id, e.user_id, e.category_id, c.name, e.amount, e.payment_method, e.date,
		COALESCE(e.description, ''), COALESCE(e.location, ''), e.is_recurring,
		COALESCE(e.recurrence_frequency, ''), e.recurrence_end_date, COALESCE(e.recurrence_days_of_week, ''),
		COALESCE(e.recurrence_day_of_month, 0), COALESCE(e.recurrence_day_of_year, 0),
		COALESCE(e.recurring_source_id, 0), e.created_at`

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, expense Expense) (int, error) {
	query := `INSERT INTO expenses (user_id, category_id, amount, payment_method, date, description, location,
				is_recurring, recurrence_frequency, recurrence_end_date, recurrence_days_of_week,
				recurrence_day_of_month, recurrence_day_of_year, recurring_source_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		userId,
		expense.CategoryId,
		expense.Amount,
		string(expense.Method),
		expense.Date,
		expense.Description,
		expense.Location,
		expense.IsRecurring,
		nullableString(string(expense.Recurrence.Frequency)),
		nullableTime(expense.Recurrence.EndDate),
		nullableString(recurrence.DaysOfWeekToString(expense.Recurrence.DaysOfWeek)),
		nullableInt(expense.Recurrence.DayOfMonth),
		nullableInt(expense.Recurrence.DayOfYear),
		nullableInt(expense.RecurringSourceId),
	)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
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

func (r *RepoImpl) Get(ctx context.Context, userId int, expenseId int) (Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses e
			JOIN categories c ON c.id = e.category_id
			WHERE e.id = ? AND e.user_id = ?`
	expense, err := scanExpense(r.db.QueryRowContext(ctx, query, expenseId, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	} else if err != nil {
		log.Errorf("could not get expense: %v", err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepoImpl) List(ctx context.Context, userId int, filter Filter) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses e
			JOIN categories c ON c.id = e.category_id
			WHERE e.user_id = ?`
	args := []any{userId}

	if !filter.IncludeTemplates {
		query += ` AND e.is_recurring = 0`
	}
	if !filter.From.IsZero() {
		query += ` AND e.date >= ?`
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		query += ` AND e.date <= ?`
		args = append(args, filter.To)
	}
	if filter.CategoryId != 0 {
		query += ` AND e.category_id = ?`
		args = append(args, filter.CategoryId)
	}
	query += ` ORDER BY e.date DESC`

	return r.queryExpenses(ctx, query, args...)
}

func (r *RepoImpl) Update(ctx context.Context, userId int, expense Expense) (bool, error) {
	query := `UPDATE expenses SET category_id = ?, amount = ?, payment_method = ?, date = ?, description = ?,
				location = ?, is_recurring = ?, recurrence_frequency = ?, recurrence_end_date = ?,
				recurrence_days_of_week = ?, recurrence_day_of_month = ?, recurrence_day_of_year = ?
			WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query,
		expense.CategoryId,
		expense.Amount,
		string(expense.Method),
		expense.Date,
		expense.Description,
		expense.Location,
		expense.IsRecurring,
		nullableString(string(expense.Recurrence.Frequency)),
		nullableTime(expense.Recurrence.EndDate),
		nullableString(recurrence.DaysOfWeekToString(expense.Recurrence.DaysOfWeek)),
		nullableInt(expense.Recurrence.DayOfMonth),
		nullableInt(expense.Recurrence.DayOfYear),
		expense.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
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

func (r *RepoImpl) Delete(ctx context.Context, userId int, expenseId int) (bool, error) {
	query := `DELETE FROM expenses WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, expenseId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
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

func (r *RepoImpl) FindRecurringTemplates(ctx context.Context) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses e
			JOIN categories c ON c.id = e.category_id
			WHERE e.is_recurring = 1 ORDER BY e.id DESC`
	return r.queryExpenses(ctx, query)
}

func (r *RepoImpl) OccurrenceExists(ctx context.Context, templateId int, dayStart, dayEnd time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM expenses
			WHERE recurring_source_id = ? AND date >= ? AND date <= ? AND is_recurring = 0`
	var count int
	if err := r.db.QueryRowContext(ctx, query, templateId, dayStart, dayEnd).Scan(&count); err != nil {
		err := fmt.Errorf("could not check occurrence existence: %w", err)
		log.Error(err)
		return false, err
	}
	return count > 0, nil
}

func (r *RepoImpl) queryExpenses(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (Expense, error) {
	var expense Expense
	var method, frequency, daysOfWeek string
	var endDate sql.NullTime
	err := row.Scan(
		&expense.Id,
		&expense.UserId,
		&expense.CategoryId,
		&expense.CategoryName,
		&expense.Amount,
		&method,
		&expense.Date,
		&expense.Description,
		&expense.Location,
		&expense.IsRecurring,
		&frequency,
		&endDate,
		&daysOfWeek,
		&expense.Recurrence.DayOfMonth,
		&expense.Recurrence.DayOfYear,
		&expense.RecurringSourceId,
		&expense.CreatedAt,
	)
	if err != nil {
		return Expense{}, err
	}
	expense.Method = payment.Method(method)
	expense.Recurrence.Frequency = recurrence.Frequency(frequency)
	if endDate.Valid {
		expense.Recurrence.EndDate = endDate.Time
	}
	expense.Recurrence.DaysOfWeek = recurrence.DaysOfWeekFromString(daysOfWeek)
	return expense, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullableInt(i int) any {
	if i == 0 {
		return nil
	}
	return i
}
