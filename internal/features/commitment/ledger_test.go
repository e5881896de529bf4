package commitment

import (
	"testing"
	"time"
)

// day строит календарную дату без компонента времени.
func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

// progressWith собирает снимок прогресса для тестов леджера.
func progressWith(streak, jokers int, last *time.Time) *Progress {
	return &Progress{
		CurrentStreak:      streak,
		Jokers:             jokers,
		LastCommitmentDate: last,
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		last  time.Time
		want  int
	}{
		{"тот же день", day(14), day(14), 0},
		{"вчера", day(14), day(13), 1},
		{"позавчера", day(14), day(12), 2},
		{"через границу месяца", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), day(31), 1},
		{
			"время суток игнорируется",
			time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 3, 13, 0, 1, 0, 0, time.UTC),
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.today, tt.last); got != tt.want {
				t.Errorf("DaysBetween = %d, ожидалось %d", got, tt.want)
			}
		})
	}
}

func TestApplyCommitmentFirstEver(t *testing.T) {
	p := progressWith(0, 2, nil)
	res := ApplyCommitment(p, day(14), 7)

	if res.NewStreak != 1 {
		t.Errorf("первый коммит: стрик = %d, ожидалось 1", res.NewStreak)
	}
	if res.JokerConsumed {
		t.Error("первый коммит не должен тратить джокер")
	}
	if res.NewJokers != 2 {
		t.Errorf("первый коммит: джокеры = %d, ожидалось 2 (без изменений)", res.NewJokers)
	}
}

func TestApplyCommitment(t *testing.T) {
	yesterday := day(13)
	twoDaysAgo := day(12)
	fiveDaysAgo := day(9)

	tests := []struct {
		name         string
		streak       int
		jokers       int
		last         time.Time
		wantStreak   int
		wantJokers   int
		wantConsumed bool
		wantAwarded  bool
	}{
		{
			name:   "коммитил вчера — стрик растёт",
			streak: 3, jokers: 0, last: yesterday,
			wantStreak: 4, wantJokers: 0,
		},
		{
			name:   "седьмой день — джокер в награду",
			streak: 6, jokers: 0, last: yesterday,
			wantStreak: 7, wantJokers: 1, wantAwarded: true,
		},
		{
			name:   "пропуск дня с джокером — стрик спасён",
			streak: 3, jokers: 1, last: twoDaysAgo,
			wantStreak: 4, wantJokers: 0, wantConsumed: true,
		},
		{
			name:   "пропуск дня без джокера — сброс",
			streak: 9, jokers: 0, last: twoDaysAgo,
			wantStreak: 1, wantJokers: 0,
		},
		{
			name:   "большой разрыв — сброс, джокеры целы",
			streak: 10, jokers: 2, last: fiveDaysAgo,
			wantStreak: 1, wantJokers: 2,
		},
		{
			name:   "три дня разрыва не закрыть даже с джокерами",
			streak: 20, jokers: 5, last: day(11),
			wantStreak: 1, wantJokers: 5,
		},
		{
			name:   "списание и начисление в один день — нетто ноль",
			streak: 6, jokers: 1, last: twoDaysAgo,
			wantStreak: 7, wantJokers: 1, wantConsumed: true, wantAwarded: true,
		},
		{
			name:   "четырнадцатый день — второй джокер",
			streak: 13, jokers: 1, last: yesterday,
			wantStreak: 14, wantJokers: 2, wantAwarded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := tt.last
			res := ApplyCommitment(progressWith(tt.streak, tt.jokers, &last), day(14), 7)

			if res.NewStreak != tt.wantStreak {
				t.Errorf("стрик = %d, ожидалось %d", res.NewStreak, tt.wantStreak)
			}
			if res.NewJokers != tt.wantJokers {
				t.Errorf("джокеры = %d, ожидалось %d", res.NewJokers, tt.wantJokers)
			}
			if res.JokerConsumed != tt.wantConsumed {
				t.Errorf("consumed = %v, ожидалось %v", res.JokerConsumed, tt.wantConsumed)
			}
			if res.JokerAwarded != tt.wantAwarded {
				t.Errorf("awarded = %v, ожидалось %v", res.JokerAwarded, tt.wantAwarded)
			}
		})
	}
}

// Свойство: без джокеров двухдневный разрыв ВСЕГДА сбрасывает стрик,
// каким бы длинным он ни был.
func TestApplyCommitmentGapAlwaysResetsWithoutJoker(t *testing.T) {
	last := day(12) // разрыв 2 дня
	for streak := 0; streak <= 40; streak++ {
		res := ApplyCommitment(progressWith(streak, 0, &last), day(14), 7)
		if res.NewStreak != 1 {
			t.Errorf("стрик %d: после разрыва без джокера NewStreak = %d, ожидалось 1", streak, res.NewStreak)
		}
		if res.JokerConsumed {
			t.Errorf("стрик %d: потрачен несуществующий джокер", streak)
		}
	}
}

// Свойство: при наличии джокера двухдневный разрыв всегда спасается —
// стрик растёт, один джокер списывается.
func TestApplyCommitmentJokerAlwaysBridgesOneDay(t *testing.T) {
	last := day(12)
	for jokers := 1; jokers <= 5; jokers++ {
		// Стрик 3 не кратен 7 даже после инкремента — начисление не мешает
		res := ApplyCommitment(progressWith(3, jokers, &last), day(14), 7)
		if !res.JokerConsumed {
			t.Errorf("джокеров %d: джокер не потрачен", jokers)
		}
		if res.NewStreak != 4 {
			t.Errorf("джокеров %d: стрик = %d, ожидалось 4", jokers, res.NewStreak)
		}
		if res.NewJokers != jokers-1 {
			t.Errorf("джокеров %d: баланс = %d, ожидалось %d", jokers, res.NewJokers, jokers-1)
		}
	}
}

// Свойство: каждый стрик, кратный интервалу, даёт ровно одно начисление.
func TestApplyCommitmentAwardOnEveryMultiple(t *testing.T) {
	yesterday := day(13)
	for streak := 1; streak <= 70; streak++ {
		res := ApplyCommitment(progressWith(streak-1, 0, &yesterday), day(14), 7)
		wantAward := streak%7 == 0
		if res.JokerAwarded != wantAward {
			t.Errorf("стрик %d: awarded = %v, ожидалось %v", streak, res.JokerAwarded, wantAward)
		}
		wantJokers := 0
		if wantAward {
			wantJokers = 1
		}
		if res.NewJokers != wantJokers {
			t.Errorf("стрик %d: джокеры = %d, ожидалось %d", streak, res.NewJokers, wantJokers)
		}
	}
}

// Леджер — чистая функция: повторный вызов с тем же входом даёт тот же
// результат, а сам вход не мутируется.
func TestApplyCommitmentPure(t *testing.T) {
	last := day(12)
	p := progressWith(6, 1, &last)

	first := ApplyCommitment(p, day(14), 7)
	second := ApplyCommitment(p, day(14), 7)

	if first != second {
		t.Errorf("повторный вызов дал другой результат: %+v != %+v", first, second)
	}
	if p.CurrentStreak != 6 || p.Jokers != 1 {
		t.Errorf("вход мутирован: streak=%d jokers=%d", p.CurrentStreak, p.Jokers)
	}
}

// Настраиваемый интервал начисления уважается.
func TestApplyCommitmentCustomInterval(t *testing.T) {
	yesterday := day(13)
	res := ApplyCommitment(progressWith(4, 0, &yesterday), day(14), 5)
	if !res.JokerAwarded || res.NewJokers != 1 {
		t.Errorf("интервал 5: на пятом дне ожидалось начисление, получено %+v", res)
	}
}
