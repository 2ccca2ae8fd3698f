package scheduled_payment

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

var ErrPaymentNotFound = errors.New("scheduled payment not found")

type Repo interface {
	Store(ctx context.Context, userId int, payment ScheduledPayment) (int, error)
	Get(ctx context.Context, userId int, paymentId int) (ScheduledPayment, error)
	GetAll(ctx context.Context, userId int, unpaidOnly bool) ([]ScheduledPayment, error)
	Update(ctx context.Context, userId int, payment ScheduledPayment) (bool, error)
	Delete(ctx context.Context, userId int, paymentId int) (bool, error)
	MarkPaid(ctx context.Context, userId int, paymentId int, paidDate time.Time) (bool, error)
}

const paymentColumns = `p.id, p.user_id, COALESCE(p.category_id, 0), COALESCE(c.name, ''), p.title,
		COALESCE(p.beneficiary, ''), p.amount, p.payment_method, p.due_date, p.is_paid, p.paid_date,
		COALESCE(p.recurrence_frequency, ''), p.recurrence_end_date, COALESCE(p.recurrence_days_of_week, ''),
		COALESCE(p.recurrence_day_of_month, 0), COALESCE(p.recurrence_day_of_year, 0), p.is_recurring, p.created_at`

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, p ScheduledPayment) (int, error) {
	query := `INSERT INTO scheduled_payments (user_id, category_id, title, beneficiary, amount, payment_method,
				due_date, is_paid, paid_date, is_recurring, recurrence_frequency, recurrence_end_date,
				recurrence_days_of_week, recurrence_day_of_month, recurrence_day_of_year)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		userId,
		nullableInt(p.CategoryId),
		p.Title,
		p.Beneficiary,
		p.Amount,
		string(p.Method),
		p.DueDate,
		p.IsPaid,
		nullableTime(p.PaidDate),
		p.IsRecurring,
		nullableString(string(p.Recurrence.Frequency)),
		nullableTime(p.Recurrence.EndDate),
		nullableString(recurrence.DaysOfWeekToString(p.Recurrence.DaysOfWeek)),
		nullableInt(p.Recurrence.DayOfMonth),
		nullableInt(p.Recurrence.DayOfYear),
	)
	if err != nil {
		err := fmt.Errorf("could not store scheduled payment: %w", err)
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

func (r *RepoImpl) Get(ctx context.Context, userId int, paymentId int) (ScheduledPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM scheduled_payments p
			LEFT JOIN categories c ON c.id = p.category_id
			WHERE p.id = ? AND p.user_id = ?`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, paymentId, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return ScheduledPayment{}, ErrPaymentNotFound
	} else if err != nil {
		log.Errorf("could not get scheduled payment: %v", err)
		return ScheduledPayment{}, err
	}
	return p, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int, unpaidOnly bool) ([]ScheduledPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM scheduled_payments p
			LEFT JOIN categories c ON c.id = p.category_id
			WHERE p.user_id = ?`
	if unpaidOnly {
		query += ` AND p.is_paid = 0`
	}
	query += ` ORDER BY p.due_date`

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query scheduled payments: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var payments []ScheduledPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			err := fmt.Errorf("could not scan scheduled payment: %w", err)
			log.Error(err)
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return payments, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, p ScheduledPayment) (bool, error) {
	query := `UPDATE scheduled_payments SET category_id = ?, title = ?, beneficiary = ?, amount = ?,
				payment_method = ?, due_date = ?, is_recurring = ?, recurrence_frequency = ?,
				recurrence_end_date = ?, recurrence_days_of_week = ?, recurrence_day_of_month = ?,
				recurrence_day_of_year = ?
			WHERE id = ? AND user_id = ? AND is_paid = 0`
	result, err := r.db.ExecContext(ctx, query,
		nullableInt(p.CategoryId),
		p.Title,
		p.Beneficiary,
		p.Amount,
		string(p.Method),
		p.DueDate,
		p.IsRecurring,
		nullableString(string(p.Recurrence.Frequency)),
		nullableTime(p.Recurrence.EndDate),
		nullableString(recurrence.DaysOfWeekToString(p.Recurrence.DaysOfWeek)),
		nullableInt(p.Recurrence.DayOfMonth),
		nullableInt(p.Recurrence.DayOfYear),
		p.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update scheduled payment: %w", err)
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

func (r *RepoImpl) Delete(ctx context.Context, userId int, paymentId int) (bool, error) {
	query := `DELETE FROM scheduled_payments WHERE id = ? AND user_id = ? AND is_paid = 0`
	result, err := r.db.ExecContext(ctx, query, paymentId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete scheduled payment: %w", err)
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

func (r *RepoImpl) MarkPaid(ctx context.Context, userId int, paymentId int, paidDate time.Time) (bool, error) {
	query := `UPDATE scheduled_payments SET is_paid = 1, paid_date = ? WHERE id = ? AND user_id = ? AND is_paid = 0`
	result, err := r.db.ExecContext(ctx, query, paidDate, paymentId, userId)
	if err != nil {
		err := fmt.Errorf("could not mark scheduled payment as paid: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (ScheduledPayment, error) {
	var p ScheduledPayment
	var method, frequency, daysOfWeek string
	var paidDate, endDate sql.NullTime
	err := row.Scan(
		&p.Id,
		&p.UserId,
		&p.CategoryId,
		&p.CategoryName,
		&p.Title,
		&p.Beneficiary,
		&p.Amount,
		&method,
		&p.DueDate,
		&p.IsPaid,
		&paidDate,
		&frequency,
		&endDate,
		&daysOfWeek,
		&p.Recurrence.DayOfMonth,
		&p.Recurrence.DayOfYear,
		&p.IsRecurring,
		&p.CreatedAt,
	)
	if err != nil {
		return ScheduledPayment{}, err
	}
	p.Method = payment.Method(method)
	if paidDate.Valid {
		p.PaidDate = paidDate.Time
	}
	p.Recurrence.Frequency = recurrence.Frequency(frequency)
	if endDate.Valid {
		p.Recurrence.EndDate = endDate.Time
	}
	p.Recurrence.DaysOfWeek = recurrence.DaysOfWeekFromString(daysOfWeek)
	return p, nil
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
