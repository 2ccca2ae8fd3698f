package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidTarget = errors.New("target amount must be positive")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrEmptyName     = errors.New("goal name must not be empty")
)

type Service interface {
	Create(ctx context.Context, goal Goal) (Goal, error)
	Get(ctx context.Context, goalId int) (Goal, error)
	GetAll(ctx context.Context) ([]Goal, error)
	Update(ctx context.Context, goal Goal) (Goal, error)
	Delete(ctx context.Context, goalId int) error
	// AddAmount increments the saved amount and returns the updated goal.
	AddAmount(ctx context.Context, goalId int, amount float64) (Goal, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, goal Goal) (Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Goal{}, err
	}
	if err := validate(goal); err != nil {
		return Goal{}, err
	}
	id, err := s.repo.Store(ctx, userId, goal)
	if err != nil {
		return Goal{}, fmt.Errorf("storing goal: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Get(ctx context.Context, goalId int) (Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Goal{}, err
	}
	return s.repo.Get(ctx, userId, goalId)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Update(ctx context.Context, goal Goal) (Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Goal{}, err
	}
	if err := validate(goal); err != nil {
		return Goal{}, err
	}
	updated, err := s.repo.Update(ctx, userId, goal)
	if err != nil {
		return Goal{}, fmt.Errorf("updating goal: %w", err)
	}
	if !updated {
		log.Warnf("Goal %d was not updated", goal.Id)
		return Goal{}, ErrGoalNotFound
	}
	return s.repo.Get(ctx, userId, goal.Id)
}

func (s *ServiceImpl) Delete(ctx context.Context, goalId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userId, goalId)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	if !deleted {
		return ErrGoalNotFound
	}
	return nil
}

func (s *ServiceImpl) AddAmount(ctx context.Context, goalId int, amount float64) (Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Goal{}, err
	}
	if amount <= 0 {
		return Goal{}, ErrInvalidAmount
	}
	added, err := s.repo.AddAmount(ctx, userId, goalId, amount)
	if err != nil {
		return Goal{}, fmt.Errorf("adding amount to goal: %w", err)
	}
	if !added {
		return Goal{}, ErrGoalNotFound
	}
	return s.repo.Get(ctx, userId, goalId)
}

func validate(goal Goal) error {
	if goal.Name == "" {
		return ErrEmptyName
	}
	if goal.TargetAmount <= 0 {
		return ErrInvalidTarget
	}
	return nil
}
