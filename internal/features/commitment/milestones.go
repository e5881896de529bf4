// Package commitment — milestones.go содержит таблицу вех стрика.
// Веха — это событие для клиента («покажи праздничный экран»),
// простой lookup по числу дней, без всякой диспетчеризации.
package commitment

// Milestone описывает одну веху стрика.
type Milestone struct {
	Day   int    `json:"day"`   // На каком дне стрика срабатывает
	Slug  string `json:"slug"`  // Машинный ключ для клиента
	Title string `json:"title"` // Текст для пользователя
}

// milestones — вехи по дням стрика. Ключ = значение стрика после коммита.
var milestones = map[int]Milestone{
	1:   {Day: 1, Slug: "first_note", Title: "Первая записка. Начало положено!"},
	3:   {Day: 3, Slug: "three_days", Title: "3 дня подряд — привычка зарождается"},
	7:   {Day: 7, Slug: "one_week", Title: "Целая неделя! Первый джокер твой"},
	14:  {Day: 14, Slug: "two_weeks", Title: "14 дней — две недели без срыва"},
	21:  {Day: 21, Slug: "three_weeks", Title: "21 день — классика формирования привычки"},
	30:  {Day: 30, Slug: "one_month", Title: "Месяц ежедневных записок"},
	66:  {Day: 66, Slug: "habit_formed", Title: "66 дней — привычка сформирована"},
	100: {Day: 100, Slug: "hundred", Title: "100 дней. Ты из другого теста"},
	365: {Day: 365, Slug: "one_year", Title: "Год. Триста шестьдесят пять записок"},
}

// MilestoneFor возвращает веху для достигнутого стрика, если она есть.
func MilestoneFor(streak int) (Milestone, bool) {
	m, ok := milestones[streak]
	return m, ok
}
