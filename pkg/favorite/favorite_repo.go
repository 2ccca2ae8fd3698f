package favorite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

type Repo interface {
	Store(ctx context.Context, userId int, favorite Favorite) (int, error)
	GetByType(ctx context.Context, userId int, favoriteType string) ([]Favorite, error)
	GetByTypeAndTarget(ctx context.Context, userId int, favoriteType string, targetEntity int) (Favorite, error)
	UpdateValue(ctx context.Context, userId int, favoriteId int, value string) (bool, error)
	Delete(ctx context.Context, userId int, favoriteType string, targetEntity int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, f Favorite) (int, error) {
	query := `INSERT INTO favorites (user_id, type, target_entity, value) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, userId, f.Type, f.TargetEntity, f.Value)
	if err != nil {
		err := fmt.Errorf("could not store favorite: %w", err)
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

func (r *RepoImpl) GetByType(ctx context.Context, userId int, favoriteType string) ([]Favorite, error) {
	query := `SELECT id, user_id, type, target_entity, COALESCE(value, ''), created_at
			FROM favorites WHERE user_id = ? AND type = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userId, favoriteType)
	if err != nil {
		err := fmt.Errorf("could not query favorites: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.Id, &f.UserId, &f.Type, &f.TargetEntity, &f.Value, &f.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan favorite: %w", err)
			log.Error(err)
			return nil, err
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return favorites, nil
}

func (r *RepoImpl) GetByTypeAndTarget(ctx context.Context, userId int, favoriteType string, targetEntity int) (Favorite, error) {
	query := `SELECT id, user_id, type, target_entity, COALESCE(value, ''), created_at
			FROM favorites WHERE user_id = ? AND type = ? AND target_entity = ?`
	var f Favorite
	err := r.db.QueryRowContext(ctx, query, userId, favoriteType, targetEntity).
		Scan(&f.Id, &f.UserId, &f.Type, &f.TargetEntity, &f.Value, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Favorite{}, ErrFavoriteNotFound
	} else if err != nil {
		log.Errorf("could not get favorite: %v", err)
		return Favorite{}, err
	}
	return f, nil
}

func (r *RepoImpl) UpdateValue(ctx context.Context, userId int, favoriteId int, value string) (bool, error) {
	query := `UPDATE favorites SET value = ? WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, value, favoriteId, userId)
	if err != nil {
		err := fmt.Errorf("could not update favorite: %w", err)
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

func (r *RepoImpl) Delete(ctx context.Context, userId int, favoriteType string, targetEntity int) (bool, error) {
	query := `DELETE FROM favorites WHERE user_id = ? AND type = ? AND target_entity = ?`
	result, err := r.db.ExecContext(ctx, query, userId, favoriteType, targetEntity)
	if err != nil {
		err := fmt.Errorf("could not delete favorite: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected > 0, nil
}
