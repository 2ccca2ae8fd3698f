package scheduled_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrEmptyTitle           = errors.New("title must not be empty")
	ErrAlreadyPaid          = errors.New("scheduled payment is already paid")
)

type Service interface {
	Create(ctx context.Context, payment ScheduledPayment) (ScheduledPayment, error)
	Get(ctx context.Context, paymentId int) (ScheduledPayment, error)
	GetAll(ctx context.Context, unpaidOnly bool) ([]ScheduledPayment, error)
	Update(ctx context.Context, payment ScheduledPayment) (ScheduledPayment, error)
	Delete(ctx context.Context, paymentId int) error
	// MarkPaid records the payment as an expense dated paidDate and, for
	// recurring payments, creates the next payment one frequency step ahead.
	MarkPaid(ctx context.Context, paymentId int, paidDate time.Time) (ScheduledPayment, error)
}

type ServiceImpl struct {
	repo           Repo
	expenseService expense.Service
}

func NewService(repo Repo, expenseService expense.Service) *ServiceImpl {
	return &ServiceImpl{repo: repo, expenseService: expenseService}
}

func (s *ServiceImpl) Create(ctx context.Context, payment ScheduledPayment) (ScheduledPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ScheduledPayment{}, err
	}
	if err := validate(payment); err != nil {
		return ScheduledPayment{}, err
	}
	payment.IsPaid = false
	payment.PaidDate = time.Time{}
	id, err := s.repo.Store(ctx, userId, payment)
	if err != nil {
		return ScheduledPayment{}, fmt.Errorf("storing scheduled payment: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Get(ctx context.Context, paymentId int) (ScheduledPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ScheduledPayment{}, err
	}
	return s.repo.Get(ctx, userId, paymentId)
}

func (s *ServiceImpl) GetAll(ctx context.Context, unpaidOnly bool) ([]ScheduledPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId, unpaidOnly)
}

func (s *ServiceImpl) Update(ctx context.Context, payment ScheduledPayment) (ScheduledPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ScheduledPayment{}, err
	}
	if err := validate(payment); err != nil {
		return ScheduledPayment{}, err
	}
	existing, err := s.repo.Get(ctx, userId, payment.Id)
	if err != nil {
		return ScheduledPayment{}, err
	}
	if existing.IsPaid {
		return ScheduledPayment{}, ErrAlreadyPaid
	}
	updated, err := s.repo.Update(ctx, userId, payment)
	if err != nil {
		return ScheduledPayment{}, fmt.Errorf("updating scheduled payment: %w", err)
	}
	if !updated {
		log.Warnf("Scheduled payment %d was not updated", payment.Id)
		return ScheduledPayment{}, ErrPaymentNotFound
	}
	return s.repo.Get(ctx, userId, payment.Id)
}

func (s *ServiceImpl) Delete(ctx context.Context, paymentId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	existing, err := s.repo.Get(ctx, userId, paymentId)
	if err != nil {
		return err
	}
	if existing.IsPaid {
		return ErrAlreadyPaid
	}
	deleted, err := s.repo.Delete(ctx, userId, paymentId)
	if err != nil {
		return fmt.Errorf("deleting scheduled payment: %w", err)
	}
	if !deleted {
		return ErrPaymentNotFound
	}
	return nil
}

func (s *ServiceImpl) MarkPaid(ctx context.Context, paymentId int, paidDate time.Time) (ScheduledPayment, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ScheduledPayment{}, err
	}
	payment, err := s.repo.Get(ctx, userId, paymentId)
	if err != nil {
		return ScheduledPayment{}, err
	}
	if payment.IsPaid {
		return ScheduledPayment{}, ErrAlreadyPaid
	}

	_, err = s.expenseService.Create(ctx, expense.Expense{
		CategoryId:  payment.CategoryId,
		Amount:      payment.Amount,
		Method:      payment.Method,
		Date:        paidDate,
		Description: payment.Title,
		Location:    payment.Beneficiary,
	})
	if err != nil {
		return ScheduledPayment{}, fmt.Errorf("recording expense for scheduled payment %d: %w", paymentId, err)
	}

	marked, err := s.repo.MarkPaid(ctx, userId, paymentId, paidDate)
	if err != nil {
		return ScheduledPayment{}, fmt.Errorf("marking scheduled payment %d as paid: %w", paymentId, err)
	}
	if !marked {
		return ScheduledPayment{}, ErrPaymentNotFound
	}

	if payment.IsRecurring && payment.Recurrence.Frequency != "" {
		if err := s.createNextPayment(ctx, userId, payment); err != nil {
			// The paid payment is already recorded. The follow-up has to be
			// recreated by the user.
			log.Errorf("could not create next recurring payment for %d: %v", paymentId, err)
		}
	}

	return s.repo.Get(ctx, userId, paymentId)
}

func (s *ServiceImpl) createNextPayment(ctx context.Context, userId int, payment ScheduledPayment) error {
	next := payment
	next.Id = 0
	next.IsPaid = false
	next.PaidDate = time.Time{}
	next.DueDate = nextDueDate(payment.Recurrence.Frequency, payment.DueDate)
	if next.DueDate.IsZero() {
		return fmt.Errorf("unknown recurrence frequency %q", payment.Recurrence.Frequency)
	}
	endDate := payment.Recurrence.EndDate
	if !endDate.IsZero() && next.DueDate.After(endDate) {
		log.Debugf("Recurrence of scheduled payment %d ended, no follow-up created", payment.Id)
		return nil
	}
	_, err := s.repo.Store(ctx, userId, next)
	return err
}

func validate(payment ScheduledPayment) error {
	if payment.Title == "" {
		return ErrEmptyTitle
	}
	if payment.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !payment.Method.Valid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}
