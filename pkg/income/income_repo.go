package income

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

var ErrIncomeNotFound = errors.New("income not found")

type Repo interface {
	Store(ctx context.Context, userId int, income Income) (int, error)
	Get(ctx context.Context, userId int, incomeId int) (Income, error)
	List(ctx context.Context, userId int, filter Filter) ([]Income, error)
	Update(ctx context.Context, userId int, income Income) (bool, error)
	Delete(ctx context.Context, userId int, incomeId int) (bool, error)

	FindRecurringTemplates(ctx context.Context) ([]Income, error)
	OccurrenceExists(ctx context.Context, templateId int, dayStart, dayEnd time.Time) (bool, error)
}

const incomeColumns = `id, user_id, amount, payment_method, date, COALESCE(description, ''), COALESCE(source, ''),
		is_recurring, COALESCE(recurrence_frequency, ''), recurrence_end_date,
		COALESCE(recurrence_days_of_week, ''), COALESCE(recurrence_day_of_month, 0),
		COALESCE(recurrence_day_of_year, 0), COALESCE(recurring_source_id, 0), created_at`

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, income Income) (int, error) {
	query := `INSERT INTO incomes (user_id, amount, payment_method, date, description, source,
				is_recurring, recurrence_frequency, recurrence_end_date, recurrence_days_of_week,
				recurrence_day_of_month, recurrence_day_of_year, recurring_source_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		userId,
		income.Amount,
		string(income.Method),
		income.Date,
		income.Description,
		income.Source,
		income.IsRecurring,
		nullableString(string(income.Recurrence.Frequency)),
		nullableTime(income.Recurrence.EndDate),
		nullableString(recurrence.DaysOfWeekToString(income.Recurrence.DaysOfWeek)),
		nullableInt(income.Recurrence.DayOfMonth),
		nullableInt(income.Recurrence.DayOfYear),
		nullableInt(income.RecurringSourceId),
	)
	if err != nil {
		err := fmt.Errorf("could not store income: %w", err)
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

func (r *RepoImpl) Get(ctx context.Context, userId int, incomeId int) (Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE id = ? AND user_id = ?`
	income, err := scanIncome(r.db.QueryRowContext(ctx, query, incomeId, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return Income{}, ErrIncomeNotFound
	} else if err != nil {
		log.Errorf("could not get income: %v", err)
		return Income{}, err
	}
	return income, nil
}

func (r *RepoImpl) List(ctx context.Context, userId int, filter Filter) ([]Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE user_id = ?`
	args := []any{userId}

	if !filter.IncludeTemplates {
		query += ` AND is_recurring = 0`
	}
	if !filter.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		query += ` AND date <= ?`
		args = append(args, filter.To)
	}
	if filter.Source != "" {
		query += ` AND source = ?`
		args = append(args, filter.Source)
	}
	query += ` ORDER BY date DESC`

	return r.queryIncomes(ctx, query, args...)
}

func (r *RepoImpl) Update(ctx context.Context, userId int, income Income) (bool, error) {
	query := `UPDATE incomes SET amount = ?, payment_method = ?, date = ?, description = ?, source = ?,
				is_recurring = ?, recurrence_frequency = ?, recurrence_end_date = ?,
				recurrence_days_of_week = ?, recurrence_day_of_month = ?, recurrence_day_of_year = ?
			WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query,
		income.Amount,
		string(income.Method),
		income.Date,
		income.Description,
		income.Source,
		income.IsRecurring,
		nullableString(string(income.Recurrence.Frequency)),
		nullableTime(income.Recurrence.EndDate),
		nullableString(recurrence.DaysOfWeekToString(income.Recurrence.DaysOfWeek)),
		nullableInt(income.Recurrence.DayOfMonth),
		nullableInt(income.Recurrence.DayOfYear),
		income.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update income: %w", err)
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

func (r *RepoImpl) Delete(ctx context.Context, userId int, incomeId int) (bool, error) {
	query := `DELETE FROM incomes WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, incomeId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete income: %w", err)
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

func (r *RepoImpl) FindRecurringTemplates(ctx context.Context) ([]Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE is_recurring = 1 ORDER BY id DESC`
	return r.queryIncomes(ctx, query)
}

func (r *RepoImpl) OccurrenceExists(ctx context.Context, templateId int, dayStart, dayEnd time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM incomes
			WHERE recurring_source_id = ? AND date >= ? AND date <= ? AND is_recurring = 0`
	var count int
	if err := r.db.QueryRowContext(ctx, query, templateId, dayStart, dayEnd).Scan(&count); err != nil {
		err := fmt.Errorf("could not check occurrence existence: %w", err)
		log.Error(err)
		return false, err
	}
	return count > 0, nil
}

func (r *RepoImpl) queryIncomes(ctx context.Context, query string, args ...any) ([]Income, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query incomes: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var incomes []Income
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			err := fmt.Errorf("could not scan income: %w", err)
			log.Error(err)
			return nil, err
		}
		incomes = append(incomes, income)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return incomes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncome(row rowScanner) (Income, error) {
	var income Income
	var method, frequency, daysOfWeek string
	var endDate sql.NullTime
	err := row.Scan(
		&income.Id,
		&income.UserId,
		&income.Amount,
		&method,
		&income.Date,
		&income.Description,
		&income.Source,
		&income.IsRecurring,
		&frequency,
		&endDate,
		&daysOfWeek,
		&income.Recurrence.DayOfMonth,
		&income.Recurrence.DayOfYear,
		&income.RecurringSourceId,
		&income.CreatedAt,
	)
	if err != nil {
		return Income{}, err
	}
	income.Method = payment.Method(method)
	income.Recurrence.Frequency = recurrence.Frequency(frequency)
	if endDate.Valid {
		income.Recurrence.EndDate = endDate.Time
	}
	income.Recurrence.DaysOfWeek = recurrence.DaysOfWeekFromString(daysOfWeek)
	return income, nil
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
