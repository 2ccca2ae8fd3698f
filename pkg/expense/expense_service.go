package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrInvalidRecurrence    = errors.New("invalid recurrence rule")
)

type Service interface {
	Create(ctx context.Context, expense Expense) (Expense, error)
	Get(ctx context.Context, expenseId int) (Expense, error)
	List(ctx context.Context, filter Filter) ([]Expense, error)
	Update(ctx context.Context, expense Expense) (Expense, error)
	Delete(ctx context.Context, expenseId int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, err
	}
	if err := validate(expense); err != nil {
		return Expense{}, err
	}
	id, err := s.repo.Store(ctx, userId, expense)
	if err != nil {
		return Expense{}, fmt.Errorf("storing expense: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Get(ctx context.Context, expenseId int) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, err
	}
	return s.repo.Get(ctx, userId, expenseId)
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userId, filter)
}

func (s *ServiceImpl) Update(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, err
	}
	if err := validate(expense); err != nil {
		return Expense{}, err
	}
	updated, err := s.repo.Update(ctx, userId, expense)
	if err != nil {
		return Expense{}, fmt.Errorf("updating expense: %w", err)
	}
	if !updated {
		log.Warnf("Expense %d was not updated", expense.Id)
		return Expense{}, ErrExpenseNotFound
	}
	return s.repo.Get(ctx, userId, expense.Id)
}

func (s *ServiceImpl) Delete(ctx context.Context, expenseId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userId, expenseId)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

func validate(expense Expense) error {
	if expense.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !expense.Method.Valid() {
		return ErrInvalidPaymentMethod
	}
	if expense.IsRecurring && expense.Recurrence.IsZero() {
		return ErrInvalidRecurrence
	}
	return nil
}
