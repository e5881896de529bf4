// Package users — service.go содержит бизнес-логику регистрации и входа.
// Пароли хэшируются bcrypt, сессии — UUID-токены с TTL из конфига.
package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"papyr.app/backend/internal/common"
	"papyr.app/backend/internal/config"
)

// minPasswordLength — минимальная длина пароля.
const minPasswordLength = 8

// Service управляет пользователями и сессиями.
type Service struct {
	repo *Repository
	cfg  *config.Config
}

// NewService создаёт новый сервис пользователей.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Register создаёт пользователя и сразу выдаёт сессию.
// Email нормализуется в нижний регистр — "A@b.de" и "a@b.de" один аккаунт.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("некорректный email")
	}
	if len(password) < minPasswordLength {
		return nil, "", common.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}

	id, err := s.repo.Create(ctx, email, string(hash), strings.TrimSpace(displayName))
	if err != nil {
		return nil, "", err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	token, err := s.newSession(ctx, id)
	if err != nil {
		return nil, "", err
	}

	log.WithFields(log.Fields{
		"user_id": id,
		"email":   email,
	}).Info("Новый пользователь зарегистрирован")

	return user, token, nil
}

// Login проверяет пароль и выдаёт новую сессию.
// Неверный email и неверный пароль дают ОДНУ И ТУ ЖЕ ошибку —
// нечего подсказывать перебором, какие адреса зарегистрированы.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", common.ErrWrongCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrWrongCredentials
	}

	token, err := s.newSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	log.WithField("user_id", user.ID).Debug("Пользователь вошёл")
	return user, token, nil
}

// newSession создаёт сессию с UUID-токеном и TTL из конфига.
func (s *Service) newSession(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.SessionTTL)
	if err := s.repo.CreateSession(ctx, token, userID, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateSession проверяет токен и возвращает ID пользователя.
// Реализует middleware.SessionValidator.
func (s *Service) ValidateSession(ctx context.Context, token string) (int64, error) {
	sess, err := s.repo.GetSession(ctx, token)
	if err != nil {
		return 0, err
	}
	return sess.UserID, nil
}

// Logout удаляет сессию.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

// GetByID возвращает пользователя по ID.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// LinkTelegram привязывает Telegram-чат для напоминаний.
func (s *Service) LinkTelegram(ctx context.Context, userID, chatID int64) error {
	if err := s.repo.LinkTelegram(ctx, userID, chatID); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"user_id": userID,
		"chat_id": chatID,
	}).Info("Telegram привязан для напоминаний")
	return nil
}

// CleanupSessions удаляет истёкшие сессии. Запускается кроном.
func (s *Service) CleanupSessions(ctx context.Context) error {
	n, err := s.repo.DeleteExpiredSessions(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.WithField("deleted", n).Debug("Истёкшие сессии удалены")
	}
	return nil
}
