package commitment

import (
	"testing"
	"time"
)

// at строит момент теста с заданным часом и минутой.
func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestWindowContains(t *testing.T) {
	w := DefaultWindow

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"полдень — закрыто", at(12, 0), false},
		{"19:59 — ещё закрыто", at(19, 59), false},
		{"ровно 20:00 — открыто", at(20, 0), true},
		{"вечер 22:30 — открыто", at(22, 30), true},
		{"полночь — открыто", at(0, 0), true},
		{"1:59 — ещё открыто", at(1, 59), true},
		{"ровно 2:00 — уже закрыто", at(2, 0), false},
		{"раннее утро 5:00 — закрыто", at(5, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.now); got != tt.want {
				t.Errorf("Contains(%s) = %v, ожидалось %v", tt.now.Format("15:04"), got, tt.want)
			}
		})
	}
}

// Полный перебор всех часов: окно открыто тогда и только тогда,
// когда час >= 20 или час < 2.
func TestWindowContainsAllHours(t *testing.T) {
	w := DefaultWindow
	for h := 0; h < 24; h++ {
		want := h >= 20 || h < 2
		if got := w.Contains(at(h, 30)); got != want {
			t.Errorf("час %d: Contains = %v, ожидалось %v", h, got, want)
		}
	}
}

func TestWindowNextOpen(t *testing.T) {
	w := DefaultWindow

	tests := []struct {
		name     string
		now      time.Time
		wantDay  int
		wantHour int
	}{
		// День теста — 14 марта
		{"утро до открытия — сегодня в 20:00", at(10, 0), 14, 20},
		{"ровно 2:00 — сегодня в 20:00", at(2, 0), 14, 20},
		{"19:59 — сегодня в 20:00", at(19, 59), 14, 20},
		{"ровно 20:00 — завтра", at(20, 0), 15, 20},
		{"поздний вечер — завтра", at(23, 30), 15, 20},
		{"час ночи внутри окна — завтра", at(1, 0), 15, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.NextOpen(tt.now)
			if got.Day() != tt.wantDay || got.Hour() != tt.wantHour {
				t.Errorf("NextOpen(%s) = %s, ожидалось день %d час %d",
					tt.now.Format("02 15:04"), got.Format("02 15:04"), tt.wantDay, tt.wantHour)
			}
			if got.Minute() != 0 || got.Second() != 0 {
				t.Errorf("NextOpen должен попадать ровно на начало часа, получено %s", got.Format("15:04:05"))
			}
		})
	}
}

// NextOpen всегда строго в будущем и всегда с часом открытия.
func TestWindowNextOpenAlwaysFuture(t *testing.T) {
	w := DefaultWindow
	for h := 0; h < 24; h++ {
		now := at(h, 17)
		next := w.NextOpen(now)
		if !next.After(now) {
			t.Errorf("час %d: NextOpen = %s не в будущем относительно %s",
				h, next.Format("02 15:04"), now.Format("02 15:04"))
		}
		if next.Hour() != w.OpenHour {
			t.Errorf("час %d: NextOpen вернул час %d, ожидался %d", h, next.Hour(), w.OpenHour)
		}
	}
}

func TestUntil(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		target time.Time
		want   Remaining
	}{
		{"полтора часа", at(18, 0), at(19, 30), Remaining{Hours: 1, Minutes: 30, Seconds: 0}},
		{"ровно ноль", at(20, 0), at(20, 0), Remaining{}},
		{"цель в прошлом — нули, не минус", at(21, 0), at(20, 0), Remaining{}},
		{
			"часы, минуты и секунды",
			time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 14, 12, 34, 56, 0, time.UTC),
			Remaining{Hours: 2, Minutes: 34, Seconds: 56},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Until(tt.now, tt.target)
			if got != tt.want {
				t.Errorf("Until = %+v, ожидалось %+v", got, tt.want)
			}
		})
	}
}

// Остаток до следующего открытия не бывает отрицательным ни в какой час.
func TestUntilNextOpenNonNegative(t *testing.T) {
	w := DefaultWindow
	for h := 0; h < 24; h++ {
		now := at(h, 45)
		r := Until(now, w.NextOpen(now))
		if r.Hours < 0 || r.Minutes < 0 || r.Seconds < 0 {
			t.Errorf("час %d: отрицательный компонент: %+v", h, r)
		}
	}
}
