// Package commitment — window.go реализует правило «часа волка»:
// коммит можно сдать только вечером, с 20:00 до 02:00 локального
// времени продукта. Все функции чистые, время передаётся снаружи.
package commitment

import "time"

// Window описывает суточное окно сдачи, переходящее через полночь.
// OpenHour=20, CloseHour=2 — окно открыто в [20:00, 24:00) и [00:00, 02:00).
type Window struct {
	OpenHour  int // Час открытия (включительно)
	CloseHour int // Час закрытия (не включительно)
}

// DefaultWindow — каноническое окно продукта, 20:00–02:00.
var DefaultWindow = Window{OpenHour: 20, CloseHour: 2}

// Contains сообщает, открыто ли окно в момент now.
// Границы важны: ровно 20:00 — открыто, ровно 02:00 — уже закрыто.
// Никакой конвертации часовых поясов тут нет — какой location у now,
// тот час и проверяем.
func (w Window) Contains(now time.Time) bool {
	h := now.Hour()
	return h >= w.OpenHour || h < w.CloseHour
}

// NextOpen возвращает момент следующего открытия окна (сегодня или завтра
// в OpenHour:00). Если мы сейчас внутри окна или уже после сегодняшнего
// открытия — следующее открытие завтра.
func (w Window) NextOpen(now time.Time) time.Time {
	open := time.Date(now.Year(), now.Month(), now.Day(), w.OpenHour, 0, 0, 0, now.Location())
	h := now.Hour()
	if h >= w.OpenHour || h < w.CloseHour {
		// Внутри окна (в том числе после полуночи) — сегодняшнее открытие позади
		return open.AddDate(0, 0, 1)
	}
	// Час в [CloseHour, OpenHour) — сегодняшнее открытие ещё впереди
	return open
}

// Until раскладывает неотрицательный остаток времени до target
// в целые часы/минуты/секунды. Отрицательных компонентов не бывает.
func Until(now, target time.Time) Remaining {
	secs := int(target.Sub(now) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return Remaining{
		Hours:   secs / 3600,
		Minutes: (secs % 3600) / 60,
		Seconds: secs % 60,
	}
}
