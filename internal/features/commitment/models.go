// Package commitment управляет ежедневными коммитами: записка, цели,
// стрик и джокеры. models.go описывает структуры данных.
package commitment

import (
	"time"

	"github.com/google/uuid"
)

// Progress представляет запись прогресса пользователя.
// Ровно одна строка на пользователя; меняется только при принятом коммите
// (или при оплате архива — поле HasPaid).
type Progress struct {
	ID                 int64      `db:"id"`
	UserID             int64      `db:"user_id"`
	CurrentStreak      int        `db:"current_streak"`       // Текущая серия (дней подряд)
	LongestStreak      int        `db:"longest_streak"`       // Личный рекорд
	Jokers             int        `db:"jokers"`               // Накопленные джокеры
	LastCommitmentDate *time.Time `db:"last_commitment_date"` // Дата последнего коммита (без времени), nil = коммитов не было
	TotalCommitments   int        `db:"total_commitments"`    // Всего коммитов за всё время (для paywall)
	HasPaid            bool       `db:"has_paid"`             // Архив разблокирован?
	ReminderSentToday  bool       `db:"reminder_sent_today"`  // Напоминание отправлено сегодня?
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// Commitment представляет один принятый коммит:
// фотография рукописной записки плюс набранные цели на завтра.
type Commitment struct {
	ID             int64     `db:"id"`
	UID            uuid.UUID `db:"uid"`             // Публичный идентификатор
	UserID         int64     `db:"user_id"`
	CommitmentDate time.Time `db:"commitment_date"` // Календарная дата коммита
	PhotoURL       string    `db:"photo_url"`       // URL фотографии записки
	Goals          []string  `db:"goals"`           // Цели (JSONB)
	JokerConsumed  bool      `db:"joker_consumed"`  // Этот коммит потратил джокер?
	StreakAfter    int       `db:"streak_after"`    // Стрик сразу после этого коммита
	CreatedAt      time.Time `db:"created_at"`
}

// LedgerResult — результат пересчёта стрика и джокеров для одного коммита.
// Единственное место, где эти числа меняются — ApplyCommitment в ledger.go.
type LedgerResult struct {
	NewStreak     int  // Новый стрик после коммита
	NewJokers     int  // Новый баланс джокеров (после списания и начисления)
	JokerConsumed bool // Был ли потрачен джокер для спасения стрика
	JokerAwarded  bool // Был ли начислен джокер за кратность стрика
}

// RejectReason — машинный код отказа для клиента.
// Отказы — это НЕ ошибки: обычные исходы решения, клиент показывает
// по ним подсказку («приходи в 20:00», «разблокируй архив»).
type RejectReason string

const (
	// ReasonPaywallRequired — бесплатный лимит коммитов исчерпан
	ReasonPaywallRequired RejectReason = "paywall_required"
	// ReasonWindowClosed — сейчас не «час волка»
	ReasonWindowClosed RejectReason = "window_closed"
	// ReasonAlreadyCommitted — сегодня коммит уже принят
	ReasonAlreadyCommitted RejectReason = "already_committed"
)

// GateResult — решение по одной попытке сдачи коммита.
// Либо Accepted=true и заполнен Ledger, либо Accepted=false и заполнен Reason.
type GateResult struct {
	Accepted bool
	Reason   RejectReason // Пусто при Accepted
	Date     time.Time    // Календарная дата, на которую принят коммит
	Ledger   LedgerResult // Заполнен только при Accepted
}

// Remaining — неотрицательное разложение остатка времени до открытия окна.
type Remaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}
