package common

import (
	"testing"
	"time"
)

func TestPluralizeDays(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "день"},
		{2, "дня"},
		{4, "дня"},
		{5, "дней"},
		{11, "дней"},
		{14, "дней"},
		{21, "день"},
		{22, "дня"},
		{100, "дней"},
	}

	for _, tt := range tests {
		if got := PluralizeDays(tt.n); got != tt.want {
			t.Errorf("PluralizeDays(%d) = %q, ожидалось %q", tt.n, got, tt.want)
		}
	}
}

func TestPluralizeJokers(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "джокер"},
		{2, "джокера"},
		{5, "джокеров"},
		{11, "джокеров"},
		{21, "джокер"},
	}

	for _, tt := range tests {
		if got := PluralizeJokers(tt.n); got != tt.want {
			t.Errorf("PluralizeJokers(%d) = %q, ожидалось %q", tt.n, got, tt.want)
		}
	}
}

func TestMidnight(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	moment := time.Date(2026, 3, 14, 23, 45, 12, 999, loc)

	got := Midnight(moment)

	want := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("Midnight = %s, ожидалось %s", got, want)
	}
	if got.Location() != loc {
		t.Error("Midnight должен сохранять исходную локацию")
	}
}
