// Package middleware содержит промежуточные HTTP-обработчики: авторизацию
// по сессии, логирование запросов, восстановление после паники и rate-limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"papyr.app/backend/internal/common"
)

// ctxKey — приватный тип ключа контекста, чтобы не пересекаться с чужими.
type ctxKey int

const userIDKey ctxKey = iota

// SessionValidator проверяет токен сессии и возвращает ID пользователя.
// Реализуется сервисом пользователей; интерфейс здесь, чтобы не тянуть
// features в middleware.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (int64, error)
}

// Auth проверяет заголовок Authorization: Bearer <token> и кладёт
// ID пользователя в контекст запроса.
func Auth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				common.WriteError(w, http.StatusUnauthorized, "unauthorized", "нужен токен сессии")
				return
			}

			userID, err := sessions.ValidateSession(r.Context(), token)
			if err != nil {
				common.WriteDomainError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID достаёт ID авторизованного пользователя из контекста.
// Ноль означает, что Auth-middleware не отработал (ошибка роутинга).
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// bearerToken извлекает токен из заголовка Authorization.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
