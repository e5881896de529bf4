package commitment

import (
	"testing"
	"time"
)

// testGate — гейт с продуктовыми значениями по умолчанию.
var testGate = Gate{Window: DefaultWindow, FreeLimit: 14, AwardInterval: 7}

func TestGateRejectsOutsideWindow(t *testing.T) {
	p := progressWith(3, 0, nil)

	res := testGate.Evaluate(at(12, 0), p)

	if res.Accepted {
		t.Fatal("сдача в полдень не должна приниматься")
	}
	if res.Reason != ReasonWindowClosed {
		t.Errorf("причина = %q, ожидалось %q", res.Reason, ReasonWindowClosed)
	}
}

func TestGateRejectsSecondAttemptToday(t *testing.T) {
	today := day(14)
	p := progressWith(5, 1, &today)

	// 23:00 того же дня — окно открыто, но коммит уже есть
	res := testGate.Evaluate(at(23, 0), p)

	if res.Accepted {
		t.Fatal("второй коммит за день не должен приниматься")
	}
	if res.Reason != ReasonAlreadyCommitted {
		t.Errorf("причина = %q, ожидалось %q", res.Reason, ReasonAlreadyCommitted)
	}
}

func TestGatePaywall(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		hasPaid    bool
		now        time.Time
		wantReason RejectReason
	}{
		{"лимит исчерпан, не платил — paywall", 14, false, at(21, 0), ReasonPaywallRequired},
		// Paywall срабатывает и при закрытом окне — проверка независимая
		{"paywall важнее закрытого окна", 14, false, at(12, 0), ReasonPaywallRequired},
		{"сильно за лимитом — paywall", 99, false, at(21, 0), ReasonPaywallRequired},
		{"лимит исчерпан, но оплачено — пропускаем", 14, true, at(21, 0), ""},
		{"до лимита — пропускаем", 13, false, at(21, 0), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := progressWith(0, 0, nil)
			p.TotalCommitments = tt.total
			p.HasPaid = tt.hasPaid

			res := testGate.Evaluate(tt.now, p)

			if tt.wantReason == "" {
				if !res.Accepted {
					t.Errorf("ожидалось принятие, получен отказ %q", res.Reason)
				}
				return
			}
			if res.Accepted || res.Reason != tt.wantReason {
				t.Errorf("accepted=%v reason=%q, ожидался отказ %q", res.Accepted, res.Reason, tt.wantReason)
			}
		})
	}
}

func TestGateAcceptsAndRunsLedger(t *testing.T) {
	yesterday := day(13)
	p := progressWith(6, 0, &yesterday)

	// 14 марта, 21:00 — окно открыто, вчера коммитил
	res := testGate.Evaluate(at(21, 0), p)

	if !res.Accepted {
		t.Fatalf("ожидалось принятие, получен отказ %q", res.Reason)
	}
	if res.Ledger.NewStreak != 7 {
		t.Errorf("стрик = %d, ожидалось 7", res.Ledger.NewStreak)
	}
	if !res.Ledger.JokerAwarded || res.Ledger.NewJokers != 1 {
		t.Errorf("на седьмом дне ожидался джокер: %+v", res.Ledger)
	}
	wantDate := day(14)
	if !res.Date.Equal(wantDate) {
		t.Errorf("дата коммита = %s, ожидалось %s", res.Date, wantDate)
	}
}

// После полуночи внутри окна коммит записывается на НОВЫЙ календарный день:
// вчерашний коммит в 23:00 и сегодняшний в 01:00 — два разных дня, разрыв 1.
func TestGateAfterMidnightIsNewDay(t *testing.T) {
	yesterday := day(13)
	p := progressWith(2, 0, &yesterday)

	// 01:00 пятнадцатого числа — окно ещё открыто
	res := testGate.Evaluate(time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC), p)

	if !res.Accepted {
		t.Fatalf("ожидалось принятие, получен отказ %q", res.Reason)
	}
	// Разрыв 13 → 15 число = 2 дня, без джокера это сброс
	if res.Ledger.NewStreak != 1 {
		t.Errorf("стрик = %d, ожидался сброс в 1", res.Ledger.NewStreak)
	}
	if !res.Date.Equal(day(15)) {
		t.Errorf("дата коммита = %s, ожидалось 15 марта", res.Date)
	}
}

// Отказ гейта не трогает снимок прогресса.
func TestGateRejectionDoesNotMutate(t *testing.T) {
	today := day(14)
	p := progressWith(5, 2, &today)
	p.TotalCommitments = 14

	_ = testGate.Evaluate(at(12, 0), p)

	if p.CurrentStreak != 5 || p.Jokers != 2 || p.TotalCommitments != 14 {
		t.Errorf("снимок прогресса мутирован: %+v", p)
	}
}
