package goal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrGoalNotFound = errors.New("goal not found")

type Repo interface {
	Store(ctx context.Context, userId int, goal Goal) (int, error)
	Get(ctx context.Context, userId int, goalId int) (Goal, error)
	GetAll(ctx context.Context, userId int) ([]Goal, error)
	Update(ctx context.Context, userId int, goal Goal) (bool, error)
	Delete(ctx context.Context, userId int, goalId int) (bool, error)
	// AddAmount atomically increments the goal's saved amount.
	AddAmount(ctx context.Context, userId int, goalId int, amount float64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, goal Goal) (int, error) {
	query := `INSERT INTO goals (user_id, name, target_amount, current_amount, deadline) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, userId, goal.Name, goal.TargetAmount, goal.CurrentAmount, nullableTime(goal.Deadline))
	if err != nil {
		err := fmt.Errorf("could not store goal: %w", err)
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

func (r *RepoImpl) Get(ctx context.Context, userId int, goalId int) (Goal, error) {
	query := `SELECT id, user_id, name, target_amount, current_amount, deadline, created_at
			FROM goals WHERE id = ? AND user_id = ?`
	goal, err := scanGoal(r.db.QueryRowContext(ctx, query, goalId, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return Goal{}, ErrGoalNotFound
	} else if err != nil {
		log.Errorf("could not get goal: %v", err)
		return Goal{}, err
	}
	return goal, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Goal, error) {
	query := `SELECT id, user_id, name, target_amount, current_amount, deadline, created_at
			FROM goals WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query goals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			err := fmt.Errorf("could not scan goal: %w", err)
			log.Error(err)
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return goals, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, goal Goal) (bool, error) {
	query := `UPDATE goals SET name = ?, target_amount = ?, current_amount = ?, deadline = ?
			WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, goal.Name, goal.TargetAmount, goal.CurrentAmount,
		nullableTime(goal.Deadline), goal.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update goal: %w", err)
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

func (r *RepoImpl) Delete(ctx context.Context, userId int, goalId int) (bool, error) {
	query := `DELETE FROM goals WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, goalId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete goal: %w", err)
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

func (r *RepoImpl) AddAmount(ctx context.Context, userId int, goalId int, amount float64) (bool, error) {
	query := `UPDATE goals SET current_amount = current_amount + ? WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, amount, goalId, userId)
	if err != nil {
		err := fmt.Errorf("could not add amount to goal: %w", err)
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

func scanGoal(row rowScanner) (Goal, error) {
	var goal Goal
	var deadline sql.NullTime
	err := row.Scan(&goal.Id, &goal.UserId, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &deadline, &goal.CreatedAt)
	if err != nil {
		return Goal{}, err
	}
	if deadline.Valid {
		goal.Deadline = deadline.Time
	}
	return goal, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
