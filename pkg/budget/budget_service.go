package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)

type Service interface {
	Create(ctx context.Context, budget Budget) (Budget, error)
	Get(ctx context.Context, budgetId int) (Budget, error)
	GetAll(ctx context.Context) ([]Budget, error)
	// GetAllWithProgress returns the user's budgets enriched with spending
	// against each budget's own date range.
	GetAllWithProgress(ctx context.Context) ([]Progress, error)
	GetProgress(ctx context.Context, budgetId int) (Progress, error)
	Update(ctx context.Context, budget Budget) (Budget, error)
	Delete(ctx context.Context, budgetId int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, err
	}
	if err := validate(budget); err != nil {
		return Budget{}, err
	}
	id, err := s.repo.Store(ctx, userId, budget)
	if err != nil {
		return Budget{}, fmt.Errorf("storing budget: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Get(ctx context.Context, budgetId int) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, err
	}
	return s.repo.Get(ctx, userId, budgetId)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetAllWithProgress(ctx context.Context) ([]Progress, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	progress := make([]Progress, 0, len(budgets))
	for _, budget := range budgets {
		p, err := s.progressFor(ctx, budget)
		if err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, nil
}

func (s *ServiceImpl) GetProgress(ctx context.Context, budgetId int) (Progress, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Progress{}, err
	}
	budget, err := s.repo.Get(ctx, userId, budgetId)
	if err != nil {
		return Progress{}, err
	}
	return s.progressFor(ctx, budget)
}

func (s *ServiceImpl) progressFor(ctx context.Context, budget Budget) (Progress, error) {
	progress := Progress{Budget: budget, Status: StatusOk}
	// Templates have no date range and therefore no spending of their own.
	if budget.StartDate.IsZero() || budget.EndDate.IsZero() {
		progress.Remaining = budget.Amount
		return progress, nil
	}
	spent, err := s.repo.SpentAmount(ctx, budget.UserId, budget.CategoryId, budget.StartDate, budget.EndDate)
	if err != nil {
		return Progress{}, fmt.Errorf("calculating spent amount for budget %d: %w", budget.Id, err)
	}
	progress.Spent = spent
	progress.Remaining = budget.Amount - spent
	if budget.Amount > 0 {
		progress.PercentageUsed = spent / budget.Amount * 100
	}
	progress.Status = statusFor(progress.PercentageUsed)
	return progress, nil
}

func (s *ServiceImpl) Update(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, err
	}
	if err := validate(budget); err != nil {
		return Budget{}, err
	}
	updated, err := s.repo.Update(ctx, userId, budget)
	if err != nil {
		return Budget{}, fmt.Errorf("updating budget: %w", err)
	}
	if !updated {
		log.Warnf("Budget %d was not updated", budget.Id)
		return Budget{}, ErrBudgetNotFound
	}
	return s.repo.Get(ctx, userId, budget.Id)
}

func (s *ServiceImpl) Delete(ctx context.Context, budgetId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userId, budgetId)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}

func validate(budget Budget) error {
	if budget.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !budget.StartDate.IsZero() && !budget.EndDate.IsZero() && budget.StartDate.After(budget.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}
