// Package commitment — ledger.go пересчитывает стрик и джокеры.
// Это ЕДИНСТВЕННОЕ место, где эти числа меняются. Функция чистая и
// тотальная: любой валидный вход даёт результат, без ошибок и паник.
package commitment

import "time"

// jokerAwardIntervalDefault — каждые 7 дней стрика начисляется джокер.
const jokerAwardIntervalDefault = 7

// DaysBetween возвращает разницу двух моментов в целых
// календарных днях (today минус last), игнорируя компонент времени.
func DaysBetween(today, last time.Time) int {
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	l := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(l) / (24 * time.Hour))
}

// ApplyCommitment вычисляет новый стрик и баланс джокеров для коммита,
// принятого на дату today.
//
// Алгоритм:
//  1. Первый коммит в жизни → стрик = 1, джокеры не трогаем.
//  2. Разрыв 1 день (коммитил вчера) → стрик +1.
//  3. Разрыв ровно 2 дня И есть джокер → джокер списывается, стрик +1.
//  4. Иначе (разрыв без джокера или больше, чем джокер может закрыть)
//     → жёсткий сброс, стрик = 1.
//  5. ПОСЛЕ шагов 1-4: если новый стрик кратен 7 — начисляем джокер.
//     Списание и начисление могут случиться в один день (нетто ноль).
//
// Попытка с разрывом 0 дней (повторный коммит сегодня) сюда попадать
// не должна — её отсекает gate. Баланс джокеров зажимается на нуле.
func ApplyCommitment(p *Progress, today time.Time, awardInterval int) LedgerResult {
	if awardInterval <= 0 {
		awardInterval = jokerAwardIntervalDefault
	}

	res := LedgerResult{NewJokers: p.Jokers}

	if p.LastCommitmentDate == nil {
		// Самый первый коммит
		res.NewStreak = 1
	} else {
		switch diff := DaysBetween(today, *p.LastCommitmentDate); {
		case diff == 1:
			// Коммитил вчера — цепочка продолжается
			res.NewStreak = p.CurrentStreak + 1
		case diff == 2 && p.Jokers > 0:
			// Пропущен ровно один день, джокер спасает стрик
			res.NewStreak = p.CurrentStreak + 1
			res.JokerConsumed = true
			res.NewJokers = p.Jokers - 1
		default:
			// Разрыв, который один джокер закрыть не может — сброс
			res.NewStreak = 1
		}
	}

	// Начисление СТРОГО после списания: стрик, кратный интервалу, даёт джокер
	if res.NewStreak > 0 && res.NewStreak%awardInterval == 0 {
		res.JokerAwarded = true
		res.NewJokers++
	}

	// Защитный зажим: guard diff==2 не даёт уйти в минус, но на всякий случай
	if res.NewJokers < 0 {
		res.NewJokers = 0
	}

	return res
}
