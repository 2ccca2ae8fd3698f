package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrCategoryNotFound = errors.New("category not found")

type Repo interface {
	Store(ctx context.Context, userId int, category Category) (int, error)
	Get(ctx context.Context, userId int, categoryId int) (Category, error)
	GetAll(ctx context.Context, userId int) ([]Category, error)
	Update(ctx context.Context, userId int, category Category) (bool, error)
	Delete(ctx context.Context, userId int, categoryId int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, category Category) (int, error) {
	query := `INSERT INTO categories (user_id, name, icon, color) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, userId, category.Name, category.Icon, category.Color)
	if err != nil {
		err := fmt.Errorf("could not store category: %w", err)
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

func (r *RepoImpl) Get(ctx context.Context, userId int, categoryId int) (Category, error) {
	query := `SELECT id, name, icon, color, created_at FROM categories WHERE id = ? AND user_id = ?`
	var category Category
	err := r.db.QueryRowContext(ctx, query, categoryId, userId).
		Scan(&category.Id, &category.Name, &category.Icon, &category.Color, &category.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return category, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Category, error) {
	query := `SELECT id, name, icon, color, created_at FROM categories WHERE user_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.Id, &category.Name, &category.Icon, &category.Color, &category.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, category Category) (bool, error) {
	query := `UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, category.Name, category.Icon, category.Color, category.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update category: %w", err)
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

func (r *RepoImpl) Delete(ctx context.Context, userId int, categoryId int) (bool, error) {
	query := `DELETE FROM categories WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, categoryId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete category: %w", err)
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
