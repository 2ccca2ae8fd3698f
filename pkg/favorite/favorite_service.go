package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/pkg/user"
)

var ErrEmptyType = errors.New("favorite type must not be empty")

type Service interface {
	GetByType(ctx context.Context, favoriteType string) ([]Favorite, error)
	// AddAll upserts favorites by (type, targetEntity): existing entries get
	// their value replaced, new ones are created.
	AddAll(ctx context.Context, favorites []Favorite) ([]Favorite, error)
	// DeleteAll removes favorites matched by (type, targetEntity). Entries
	// that do not exist are silently skipped.
	DeleteAll(ctx context.Context, favorites []Favorite) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetByType(ctx context.Context, favoriteType string) ([]Favorite, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	if favoriteType == "" {
		return nil, ErrEmptyType
	}
	return s.repo.GetByType(ctx, userId, favoriteType)
}

func (s *ServiceImpl) AddAll(ctx context.Context, favorites []Favorite) ([]Favorite, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]Favorite, 0, len(favorites))
	for _, f := range favorites {
		if f.Type == "" {
			return nil, ErrEmptyType
		}
		existing, err := s.repo.GetByTypeAndTarget(ctx, userId, f.Type, f.TargetEntity)
		if errors.Is(err, ErrFavoriteNotFound) {
			id, err := s.repo.Store(ctx, userId, f)
			if err != nil {
				return nil, fmt.Errorf("storing favorite: %w", err)
			}
			f.Id = id
			f.UserId = userId
			result = append(result, f)
			continue
		} else if err != nil {
			return nil, err
		}
		if _, err := s.repo.UpdateValue(ctx, userId, existing.Id, f.Value); err != nil {
			return nil, fmt.Errorf("updating favorite %d: %w", existing.Id, err)
		}
		existing.Value = f.Value
		result = append(result, existing)
	}
	return result, nil
}

func (s *ServiceImpl) DeleteAll(ctx context.Context, favorites []Favorite) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	for _, f := range favorites {
		if _, err := s.repo.Delete(ctx, userId, f.Type, f.TargetEntity); err != nil {
			return fmt.Errorf("deleting favorite (%s, %d): %w", f.Type, f.TargetEntity, err)
		}
	}
	return nil
}
