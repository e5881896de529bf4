package commitment

import "testing"

func TestMilestoneFor(t *testing.T) {
	tests := []struct {
		streak   int
		wantHit  bool
		wantSlug string
	}{
		{1, true, "first_note"},
		{2, false, ""},
		{7, true, "one_week"},
		{8, false, ""},
		{21, true, "three_weeks"},
		{66, true, "habit_formed"},
		{100, true, "hundred"},
		{101, false, ""},
		{365, true, "one_year"},
	}

	for _, tt := range tests {
		m, ok := MilestoneFor(tt.streak)
		if ok != tt.wantHit {
			t.Errorf("MilestoneFor(%d): ok = %v, ожидалось %v", tt.streak, ok, tt.wantHit)
			continue
		}
		if ok && m.Slug != tt.wantSlug {
			t.Errorf("MilestoneFor(%d): slug = %q, ожидалось %q", tt.streak, m.Slug, tt.wantSlug)
		}
	}
}

// У каждой вехи поле Day совпадает с ключом таблицы.
func TestMilestoneDaysConsistent(t *testing.T) {
	for day, m := range milestones {
		if m.Day != day {
			t.Errorf("веха %q: Day = %d, ключ таблицы %d", m.Slug, m.Day, day)
		}
		if m.Slug == "" || m.Title == "" {
			t.Errorf("веха дня %d: пустой slug или title", day)
		}
	}
}
