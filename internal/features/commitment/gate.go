// Package commitment — gate.go принимает решение по попытке сдачи.
// Гейт собирает три независимых предиката (paywall, окно, повторная сдача)
// и только при полном проходе зовёт ledger. До Accepted ничего не мутируется.
package commitment

import "time"

// Gate проверяет допустимость новой сдачи коммита.
type Gate struct {
	Window        Window // Окно «часа волка»
	FreeLimit     int    // Бесплатный лимит коммитов (paywall)
	AwardInterval int    // Интервал начисления джокеров (дней)
}

// Evaluate принимает решение по снимку прогресса на момент now.
// Порядок проверок фиксированный: paywall → окно → повторная сдача.
// Первый сработавший отказ уходит клиенту; состояние не меняется.
//
// now обязан быть в часовом поясе продукта — гейт доверяет ему как есть.
func (g Gate) Evaluate(now time.Time, p *Progress) GateResult {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// 1. Paywall: лимит исчерпан и архив не оплачен.
	// Проверяется независимо от окна — «приходи позже» тут не поможет.
	if p.TotalCommitments >= g.FreeLimit && !p.HasPaid {
		return GateResult{Reason: ReasonPaywallRequired, Date: today}
	}

	// 2. Окно сдачи
	if !g.Window.Contains(now) {
		return GateResult{Reason: ReasonWindowClosed, Date: today}
	}

	// 3. Сегодня уже коммитил
	if p.LastCommitmentDate != nil && DaysBetween(today, *p.LastCommitmentDate) == 0 {
		return GateResult{Reason: ReasonAlreadyCommitted, Date: today}
	}

	// Все проверки пройдены — считаем новый стрик и джокеры
	return GateResult{
		Accepted: true,
		Date:     today,
		Ledger:   ApplyCommitment(p, today, g.AwardInterval),
	}
}
