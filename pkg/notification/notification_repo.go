package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repo interface {
	Store(ctx context.Context, userId int, notification Notification) (int, error)
	GetAll(ctx context.Context, userId int, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, userId int, notificationId int) (bool, error)
	MarkAllRead(ctx context.Context, userId int) error
	UnreadCount(ctx context.Context, userId int) (int, error)
	Delete(ctx context.Context, userId int, notificationId int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, n Notification) (int, error) {
	query := `INSERT INTO notifications (user_id, title, description, is_read, type, transaction_type)
			VALUES (?, ?, ?, 0, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, userId, n.Title, n.Description, string(n.Type), nullableString(n.TransactionType))
	if err != nil {
		err := fmt.Errorf("could not store notification: %w", err)
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

func (r *RepoImpl) GetAll(ctx context.Context, userId int, unreadOnly bool) ([]Notification, error) {
	query := `SELECT id, user_id, title, COALESCE(description, ''), is_read, type, COALESCE(transaction_type, ''), created_at
			FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND is_read = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query notifications: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		var notificationType string
		err := rows.Scan(&n.Id, &n.UserId, &n.Title, &n.Description, &n.IsRead, &notificationType, &n.TransactionType, &n.CreatedAt)
		if err != nil {
			err := fmt.Errorf("could not scan notification: %w", err)
			log.Error(err)
			return nil, err
		}
		n.Type = Type(notificationType)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return notifications, nil
}

func (r *RepoImpl) MarkRead(ctx context.Context, userId int, notificationId int) (bool, error) {
	query := `UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, notificationId, userId)
	if err != nil {
		err := fmt.Errorf("could not mark notification as read: %w", err)
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

func (r *RepoImpl) MarkAllRead(ctx context.Context, userId int) error {
	query := `UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`
	if _, err := r.db.ExecContext(ctx, query, userId); err != nil {
		err := fmt.Errorf("could not mark all notifications as read: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) UnreadCount(ctx context.Context, userId int) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userId).Scan(&count); err != nil {
		err := fmt.Errorf("could not count unread notifications: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, notificationId int) (bool, error) {
	query := `DELETE FROM notifications WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, notificationId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete notification: %w", err)
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

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
