// Package billing управляет оплатой архива: checkout-сессии и вебхуки Stripe.
// models.go описывает структуру данных платежа.
package billing

import "time"

// Статусы платежа.
const (
	StatusPending   = "pending"   // Сессия создана, оплата не завершена
	StatusCompleted = "completed" // Вебхук подтвердил оплату
)

// Payment представляет один платёж за разблокировку архива.
type Payment struct {
	ID                int64      `db:"id" json:"id"`
	UserID            int64      `db:"user_id" json:"-"`
	ProviderSessionID string     `db:"provider_session_id" json:"-"` // ID checkout-сессии у Stripe
	AmountCents       int64      `db:"amount_cents" json:"amount_cents"`
	Currency          string     `db:"currency" json:"currency"`
	Status            string     `db:"status" json:"status"` // pending / completed
	PaidAt            *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}
