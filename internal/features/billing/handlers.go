// Package billing — handlers.go обрабатывает HTTP-запросы биллинга.
package billing

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"papyr.app/backend/internal/common"
	"papyr.app/backend/internal/server/middleware"
)

// maxWebhookBytes — лимит тела вебхука (64 КБ хватает с запасом).
const maxWebhookBytes = 64 * 1024

// Handler обрабатывает HTTP-запросы биллинга.
type Handler struct {
	service *Service
}

// NewHandler создаёт новый обработчик биллинга.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PostCheckout — POST /api/billing/checkout. Возвращает URL для редиректа
// на страницу оплаты.
func (h *Handler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	url, err := h.service.CreateCheckout(r.Context(), userID)
	if err != nil {
		common.WriteDomainError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]string{"checkout_url": url})
}

// PostWebhook — POST /api/billing/webhook. Публичный эндпоинт для Stripe;
// аутентификация — подпись в заголовке Stripe-Signature.
func (h *Handler) PostWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "bad_body", "не удалось прочитать тело")
		return
	}

	err = h.service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		// Stripe повторит доставку, если ответить не-2xx
		log.WithError(err).Warn("Ошибка обработки вебхука")
		common.WriteError(w, http.StatusBadRequest, "webhook_failed", "")
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// GetPayments — GET /api/billing/payments. История платежей пользователя.
func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	list, err := h.service.Payments(r.Context(), userID)
	if err != nil {
		common.WriteDomainError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]any{"payments": list})
}
