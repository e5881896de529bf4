// Package billing — repository.go выполняет операции с таблицей payments.
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с таблицей payments.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий платежей.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreatePending записывает созданную checkout-сессию со статусом pending.
func (r *Repository) CreatePending(ctx context.Context, userID int64, sessionID string, amountCents int64, currency string) error {
	query := `
		INSERT INTO payments (user_id, provider_session_id, amount_cents, currency, status)
		VALUES ($1, $2, $3, $4, 'pending')
	`
	_, err := r.db.Exec(ctx, query, userID, sessionID, amountCents, currency)
	if err != nil {
		return fmt.Errorf("ошибка записи платежа: %w", err)
	}
	return nil
}

// Complete помечает платёж оплаченным и возвращает ID пользователя.
// Повторный вебхук по той же сессии вернёт pgx.ErrNoRows — это нормально,
// Stripe шлёт события минимум один раз, не ровно один.
func (r *Repository) Complete(ctx context.Context, sessionID string) (int64, error) {
	query := `
		UPDATE payments
		SET status = 'completed', paid_at = NOW()
		WHERE provider_session_id = $1 AND status = 'pending'
		RETURNING user_id
	`
	var userID int64
	err := r.db.QueryRow(ctx, query, sessionID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
		return 0, fmt.Errorf("ошибка подтверждения платежа: %w", err)
	}
	return userID, nil
}

// ListByUser возвращает платежи пользователя, свежие первыми.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Payment, error) {
	query := `
		SELECT id, user_id, provider_session_id, amount_cents, currency,
		       status, paid_at, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения платежей: %w", err)
	}
	defer rows.Close()

	var list []*Payment
	for rows.Next() {
		var p Payment
		err := rows.Scan(
			&p.ID, &p.UserID, &p.ProviderSessionID, &p.AmountCents,
			&p.Currency, &p.Status, &p.PaidAt, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
