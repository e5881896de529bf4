// Package common — http.go содержит хелперы для JSON-ответов API.
// Все ответы сервиса имеют единый формат: либо полезная нагрузка,
// либо {"error": "машинный_код", "message": "текст для человека"}.
package common

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// WriteJSON сериализует полезную нагрузку и отдаёт её с нужным статусом.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Ошибка сериализации ответа")
	}
}

// errorBody — тело ответа с ошибкой.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteError отдаёт ошибку с машинным кодом и человекочитаемым текстом.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorBody{Error: code, Message: message})
}

// WriteDomainError превращает доменную ошибку в HTTP-ответ.
// Известные sentinel-ошибки получают свой статус и код, всё остальное — 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, ErrEmailTaken):
		WriteError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, ErrWrongCredentials):
		WriteError(w, http.StatusUnauthorized, "wrong_credentials", err.Error())
	case errors.Is(err, ErrSessionExpired):
		WriteError(w, http.StatusUnauthorized, "session_expired", err.Error())
	case errors.Is(err, ErrWeakPassword):
		WriteError(w, http.StatusBadRequest, "weak_password", err.Error())
	case errors.Is(err, ErrCommitmentNotFound):
		WriteError(w, http.StatusNotFound, "commitment_not_found", err.Error())
	case errors.Is(err, ErrPhotoMissing):
		WriteError(w, http.StatusBadRequest, "photo_missing", err.Error())
	case errors.Is(err, ErrPhotoTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "photo_too_large", err.Error())
	case errors.Is(err, ErrGoalsEmpty):
		WriteError(w, http.StatusBadRequest, "goals_empty", err.Error())
	case errors.Is(err, ErrBillingDisabled):
		WriteError(w, http.StatusServiceUnavailable, "billing_disabled", err.Error())
	case errors.Is(err, ErrAlreadyPaid):
		WriteError(w, http.StatusConflict, "already_paid", err.Error())
	default:
		log.WithError(err).Error("Внутренняя ошибка обработчика")
		WriteError(w, http.StatusInternalServerError, "internal", "внутренняя ошибка сервера")
	}
}
