// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервиса.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отдавать клиенту понятные коды ответа.
package common

import "errors"

// Ошибки пользователей и сессий
var (
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrEmailTaken — email уже зарегистрирован
	ErrEmailTaken = errors.New("email уже зарегистрирован")
	// ErrWrongCredentials — неверный email или пароль
	ErrWrongCredentials = errors.New("неверный email или пароль")
	// ErrSessionExpired — сессия истекла или не существует
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
	// ErrWeakPassword — пароль короче 8 символов
	ErrWeakPassword = errors.New("пароль слишком короткий (минимум 8 символов)")
)

// Ошибки коммитов
var (
	// ErrCommitmentNotFound — коммит не найден
	ErrCommitmentNotFound = errors.New("коммит не найден")
	// ErrPhotoMissing — в запросе нет фотографии записки
	ErrPhotoMissing = errors.New("фотография записки обязательна")
	// ErrPhotoTooLarge — фотография превышает лимит размера
	ErrPhotoTooLarge = errors.New("фотография слишком большая")
	// ErrGoalsEmpty — не передано ни одной цели
	ErrGoalsEmpty = errors.New("нужна хотя бы одна цель на завтра")
)

// Ошибки биллинга
var (
	// ErrBillingDisabled — биллинг не сконфигурирован (нет ключей Stripe)
	ErrBillingDisabled = errors.New("оплата временно недоступна")
	// ErrAlreadyPaid — архив уже оплачен
	ErrAlreadyPaid = errors.New("архив уже разблокирован")
)
