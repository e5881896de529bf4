// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: работа с часовым поясом продукта, усечение времени до даты,
// русская плюрализация для текстов напоминаний.
package common

import (
	"fmt"
	"math"
	"time"
)

// ProductLocation загружает часовой пояс продукта по имени из конфига.
// Если зона не загрузилась (нет tzdata в контейнере) — падаем на UTC+1,
// чтобы сервис не умер на старте.
func ProductLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.FixedZone("CET", 1*60*60)
	}
	return loc
}

// Midnight усекает момент времени до полуночи его календарного дня.
// Все даты коммитов хранятся именно так: дата без компонента времени.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04".
// Используется для отображения дат в ответах API и логах.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006 15:04")
}

// PluralizeDays возвращает правильную форму слова «день» для числа n.
//
// Правила:
//   - 1, 21, 31 → "день"
//   - 2-4, 22-24 → "дня"
//   - 5-20, 25-30 → "дней"
func PluralizeDays(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "день"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "дня"
	}
	return "дней"
}

// PluralizeJokers возвращает правильную форму слова «джокер».
func PluralizeJokers(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "джокер"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "джокера"
	}
	return "джокеров"
}

// FormatStreak форматирует стрик в читабельную строку.
// Пример: FormatStreak(7) → "7 дней"
func FormatStreak(days int) string {
	return fmt.Sprintf("%d %s", days, PluralizeDays(days))
}
