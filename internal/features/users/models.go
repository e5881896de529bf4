// Package users управляет пользователями: регистрацией, входом, сессиями.
// models.go описывает структуры данных для таблиц users и sessions.
package users

import "time"

// User представляет пользователя в базе данных.
type User struct {
	ID             int64     `db:"id"`               // Автоинкрементный ID
	Email          string    `db:"email"`            // Email (уникальный, в нижнем регистре)
	PasswordHash   string    `db:"password_hash"`    // bcrypt-хэш пароля
	DisplayName    string    `db:"display_name"`     // Имя для приветствий
	TelegramChatID *int64    `db:"telegram_chat_id"` // Чат для напоминаний (nil = не привязан)
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Session представляет активную сессию пользователя.
// Токен выдаётся при логине и передаётся в заголовке Authorization.
type Session struct {
	ID           int64     `db:"id"`
	Token        string    `db:"token"`         // UUID-токен сессии
	UserID       int64     `db:"user_id"`
	ExpiresAt    time.Time `db:"expires_at"`    // После этого момента сессия мертва
	LastActivity time.Time `db:"last_activity"` // Обновляется при каждом запросе
	CreatedAt    time.Time `db:"created_at"`
}
