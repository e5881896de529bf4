// Package billing — service.go содержит логику оплаты архива.
// Всё общение со Stripe живёт здесь: создание checkout-сессии и
// обработка подписанного вебхука. Остальной код про Stripe не знает.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"

	"papyr.app/backend/internal/common"
	"papyr.app/backend/internal/config"
	"papyr.app/backend/internal/features/commitment"
)

// Service управляет платежами за разблокировку архива.
type Service struct {
	repo              *Repository
	commitmentService *commitment.Service // Выставляет has_paid после оплаты
	cfg               *config.Config
}

// NewService создаёт новый сервис биллинга и настраивает ключ Stripe.
func NewService(repo *Repository, commitmentService *commitment.Service, cfg *config.Config) *Service {
	if cfg.StripeSecretKey != "" {
		stripe.Key = cfg.StripeSecretKey
	}
	return &Service{
		repo:              repo,
		commitmentService: commitmentService,
		cfg:               cfg,
	}
}

// Enabled сообщает, сконфигурирован ли биллинг.
func (s *Service) Enabled() bool {
	return s.cfg.StripeSecretKey != "" && s.cfg.StripePriceID != ""
}

// CreateCheckout создаёт checkout-сессию и возвращает URL для редиректа.
// Уже оплатившим повторная сессия не создаётся.
func (s *Service) CreateCheckout(ctx context.Context, userID int64) (string, error) {
	if !s.Enabled() {
		return "", common.ErrBillingDisabled
	}

	progress, err := s.commitmentService.Progress(ctx, userID)
	if err != nil {
		return "", err
	}
	if progress.HasPaid {
		return "", common.ErrAlreadyPaid
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.cfg.StripePriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.cfg.BillingSuccessURL),
		CancelURL:  stripe.String(s.cfg.BillingCancelURL),
		// По этому полю вебхук находит пользователя
		ClientReferenceID: stripe.String(strconv.FormatInt(userID, 10)),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("ошибка создания checkout-сессии: %w", err)
	}

	if err := s.repo.CreatePending(ctx, userID, sess.ID, sess.AmountTotal, string(sess.Currency)); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"user_id":    userID,
		"session_id": sess.ID,
	}).Info("Checkout-сессия создана")

	return sess.URL, nil
}

// HandleWebhook проверяет подпись вебхука и обрабатывает событие.
// Интересует только checkout.session.completed — остальное игнорируем.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("подпись вебхука не прошла проверку: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		log.WithField("type", event.Type).Debug("Вебхук проигнорирован")
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("ошибка разбора события: %w", err)
	}

	userID, err := s.repo.Complete(ctx, sess.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Повторная доставка события — платёж уже обработан
			log.WithField("session_id", sess.ID).Debug("Повторный вебхук, платёж уже подтверждён")
			return nil
		}
		return err
	}

	// Разблокируем архив
	if err := s.commitmentService.MarkPaid(ctx, userID); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user_id":    userID,
		"session_id": sess.ID,
	}).Info("Оплата подтверждена, архив разблокирован")

	return nil
}

// Payments возвращает историю платежей пользователя.
func (s *Service) Payments(ctx context.Context, userID int64) ([]*Payment, error) {
	return s.repo.ListByUser(ctx, userID)
}
