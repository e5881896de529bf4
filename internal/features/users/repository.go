// Package users — repository.go выполняет операции с таблицами users и sessions.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"papyr.app/backend/internal/common"
)

// Repository предоставляет методы для работы с таблицами users и sessions.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий пользователей.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create создаёт нового пользователя и возвращает его ID.
func (r *Repository) Create(ctx context.Context, email, passwordHash, displayName string) (int64, error) {
	query := `
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, email, passwordHash, displayName).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation по email
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, common.ErrEmailTaken
		}
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return id, nil
}

// GetByID возвращает пользователя по ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, email, password_hash, display_name, telegram_chat_id,
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var u User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.TelegramChatID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя (id=%d): %w", id, err)
	}
	return &u, nil
}

// GetByEmail возвращает пользователя по email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, password_hash, display_name, telegram_chat_id,
		       created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var u User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.TelegramChatID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя (email=%s): %w", email, err)
	}
	return &u, nil
}

// LinkTelegram привязывает Telegram-чат для напоминаний.
func (r *Repository) LinkTelegram(ctx context.Context, userID, chatID int64) error {
	query := `UPDATE users SET telegram_chat_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, userID, chatID)
	if err != nil {
		return fmt.Errorf("ошибка привязки Telegram: %w", err)
	}
	return nil
}

// CreateSession создаёт новую сессию.
func (r *Repository) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	query := `
		INSERT INTO sessions (token, user_id, expires_at, last_activity)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := r.db.Exec(ctx, query, token, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return nil
}

// GetSession возвращает живую сессию по токену и обновляет last_activity.
// Истёкшие сессии сразу считаются несуществующими.
func (r *Repository) GetSession(ctx context.Context, token string) (*Session, error) {
	query := `
		UPDATE sessions
		SET last_activity = NOW()
		WHERE token = $1 AND expires_at > NOW()
		RETURNING id, token, user_id, expires_at, last_activity, created_at
	`
	var s Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&s.ID, &s.Token, &s.UserID, &s.ExpiresAt, &s.LastActivity, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrSessionExpired
		}
		return nil, fmt.Errorf("ошибка получения сессии: %w", err)
	}
	return &s, nil
}

// DeleteSession удаляет сессию (logout).
func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = $1`
	_, err := r.db.Exec(ctx, query, token)
	return err
}

// DeleteExpiredSessions чистит истёкшие сессии. Запускается кроном.
func (r *Repository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки сессий: %w", err)
	}
	return tag.RowsAffected(), nil
}
