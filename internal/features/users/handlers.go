// Package users — handlers.go обрабатывает HTTP-запросы аутентификации
// и профиля.
package users

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"papyr.app/backend/internal/common"
	"papyr.app/backend/internal/features/commitment"
	"papyr.app/backend/internal/server/middleware"
)

// Handler обрабатывает HTTP-запросы пользователей.
type Handler struct {
	service           *Service
	commitmentService *commitment.Service // Для создания прогресса и ответа /me
}

// NewHandler создаёт новый обработчик пользователей.
func NewHandler(service *Service, commitmentService *commitment.Service) *Handler {
	return &Handler{service: service, commitmentService: commitmentService}
}

// credentialsRequest — тело запросов регистрации и входа.
type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// authResponse — ответ с токеном сессии.
type authResponse struct {
	Token       string `json:"token"`
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// PostRegister — POST /api/auth/register.
// Вместе с пользователем сразу создаётся пустая запись прогресса.
func (h *Handler) PostRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "bad_json", "не удалось разобрать тело запроса")
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		common.WriteDomainError(w, err)
		return
	}

	// Прогресс создаётся сразу — первый коммит не должен спотыкаться
	// об отсутствующую строку
	if err := h.commitmentService.CreateProgress(r.Context(), user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Ошибка создания прогресса")
	}

	common.WriteJSON(w, http.StatusCreated, authResponse{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
}

// PostLogin — POST /api/auth/login.
func (h *Handler) PostLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "bad_json", "не удалось разобрать тело запроса")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		common.WriteDomainError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, authResponse{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
}

// meResponse — профиль вместе с прогрессом.
type meResponse struct {
	UserID         int64  `json:"user_id"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	TelegramLinked bool   `json:"telegram_linked"`
	Progress       any    `json:"progress"`
}

// GetMe — GET /api/me. Профиль + снимок прогресса одним запросом,
// чтобы клиенту хватало одного вызова на старте.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		common.WriteDomainError(w, err)
		return
	}

	progress, err := h.commitmentService.Progress(r.Context(), userID)
	if err != nil {
		common.WriteDomainError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, meResponse{
		UserID:         user.ID,
		Email:          user.Email,
		DisplayName:    user.DisplayName,
		TelegramLinked: user.TelegramChatID != nil,
		Progress:       commitment.ProgressView(progress),
	})
}

// linkTelegramRequest — тело запроса привязки Telegram.
type linkTelegramRequest struct {
	ChatID int64 `json:"chat_id"`
}

// PostLinkTelegram — POST /api/me/telegram. Привязывает чат для напоминаний.
func (h *Handler) PostLinkTelegram(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req linkTelegramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChatID == 0 {
		common.WriteError(w, http.StatusBadRequest, "bad_json", "нужен chat_id")
		return
	}

	if err := h.service.LinkTelegram(r.Context(), userID, req.ChatID); err != nil {
		common.WriteDomainError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]bool{"linked": true})
}

// PostLogout — POST /api/auth/logout.
func (h *Handler) PostLogout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	// Срезаем префикс "Bearer " — дальше токен как есть
	if len(token) > 7 {
		token = token[7:]
	}
	if err := h.service.Logout(r.Context(), token); err != nil {
		common.WriteDomainError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// компиляционная проверка: Service реализует middleware.SessionValidator
var _ middleware.SessionValidator = (*Service)(nil)
