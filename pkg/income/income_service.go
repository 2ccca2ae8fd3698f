package income

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
	Create(ctx context.Context, income Income) (Income, error)
	Get(ctx context.Context, incomeId int) (Income, error)
	List(ctx context.Context, filter Filter) ([]Income, error)
	Update(ctx context.Context, income Income) (Income, error)
	Delete(ctx context.Context, incomeId int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, income Income) (Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Income{}, err
	}
	if err := validate(income); err != nil {
		return Income{}, err
	}
	id, err := s.repo.Store(ctx, userId, income)
	if err != nil {
		return Income{}, fmt.Errorf("storing income: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Get(ctx context.Context, incomeId int) (Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Income{}, err
	}
	return s.repo.Get(ctx, userId, incomeId)
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userId, filter)
}

func (s *ServiceImpl) Update(ctx context.Context, income Income) (Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Income{}, err
	}
	if err := validate(income); err != nil {
		return Income{}, err
	}
	updated, err := s.repo.Update(ctx, userId, income)
	if err != nil {
		return Income{}, fmt.Errorf("updating income: %w", err)
	}
	if !updated {
		log.Warnf("Income %d was not updated", income.Id)
		return Income{}, ErrIncomeNotFound
	}
	return s.repo.Get(ctx, userId, income.Id)
}

func (s *ServiceImpl) Delete(ctx context.Context, incomeId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userId, incomeId)
	if err != nil {
		return fmt.Errorf("deleting income: %w", err)
	}
	if !deleted {
		return ErrIncomeNotFound
	}
	return nil
}

func validate(income Income) error {
	if income.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !income.Method.Valid() {
		return ErrInvalidPaymentMethod
	}
	if income.IsRecurring && income.Recurrence.IsZero() {
		return ErrInvalidRecurrence
	}
	return nil
}
