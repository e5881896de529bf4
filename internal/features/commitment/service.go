// Package commitment — service.go содержит основную бизнес-логику сдачи
// коммитов: гейт, загрузка фото, атомарная фиксация, вехи, напоминания.
package commitment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"papyr.app/backend/internal/common"
	"papyr.app/backend/internal/config"
)

// PhotoStore сохраняет фотографию записки и возвращает её публичный URL.
// Реализация живёт в internal/storage.
type PhotoStore interface {
	Save(ctx context.Context, userID int64, filename string, data []byte) (string, error)
}

// SubmitResult — полный итог попытки сдачи для клиента.
type SubmitResult struct {
	Gate       GateResult
	Commitment *Commitment // nil при отказе
	Milestone  *Milestone  // nil, если веха не достигнута
}

// Service управляет коммитами, стриками и джокерами.
type Service struct {
	repo   *Repository    // Репозиторий прогресса и коммитов
	photos PhotoStore     // Хранилище фотографий записок
	cfg    *config.Config // Конфигурация
	loc    *time.Location // Часовой пояс продукта
	gate   Gate           // Правила допуска
}

// NewService создаёт новый сервис коммитов.
func NewService(repo *Repository, photos PhotoStore, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		cfg:    cfg,
		loc:    common.ProductLocation(cfg.AppTimezone),
		gate: Gate{
			Window:        Window{OpenHour: cfg.WindowOpenHour, CloseHour: cfg.WindowCloseHour},
			FreeLimit:     cfg.PaywallFreeLimit,
			AwardInterval: cfg.JokerAwardInterval,
		},
	}
}

// Now возвращает текущее время в часовом поясе продукта.
// Время клиента не используется НИГДЕ — только серверные часы.
func (s *Service) Now() time.Time {
	return time.Now().In(s.loc)
}

// WindowStatus — состояние окна сдачи для клиента.
type WindowStatus struct {
	Open      bool      `json:"open"`
	NextOpen  time.Time `json:"next_open"`
	Remaining Remaining `json:"remaining"`
}

// Window возвращает текущее состояние окна и обратный отсчёт до открытия.
func (s *Service) Window() WindowStatus {
	now := s.Now()
	next := s.gate.Window.NextOpen(now)
	return WindowStatus{
		Open:      s.gate.Window.Contains(now),
		NextOpen:  next,
		Remaining: Until(now, next),
	}
}

// Submit обрабатывает одну попытку сдачи коммита.
//
// Алгоритм:
//  1. Валидируем вход (цели, фото).
//  2. Загружаем снимок прогресса.
//  3. Гейт: paywall → окно → повторная сдача. Отказ — это НЕ ошибка.
//  4. Сохраняем фото, фиксируем коммит и новый прогресс одной транзакцией.
//  5. Ищем веху для нового стрика.
//
// Гонка двух устройств ловится уникальным индексом в БД и превращается
// в обычный отказ «сегодня уже коммитил».
func (s *Service) Submit(ctx context.Context, userID int64, goals []string, photoName string, photo []byte) (*SubmitResult, error) {
	if len(goals) == 0 {
		return nil, common.ErrGoalsEmpty
	}
	if len(photo) == 0 {
		return nil, common.ErrPhotoMissing
	}

	p, err := s.repo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	gate := s.gate.Evaluate(now, p)
	if !gate.Accepted {
		log.WithFields(log.Fields{
			"user_id": userID,
			"reason":  gate.Reason,
		}).Debug("Попытка сдачи отклонена")
		return &SubmitResult{Gate: gate}, nil
	}

	// Фото сохраняем только после прохождения гейта — отказ не должен
	// оставлять мусор в хранилище
	photoURL, err := s.photos.Save(ctx, userID, photoName, photo)
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения фото: %w", err)
	}

	longest := p.LongestStreak
	if gate.Ledger.NewStreak > longest {
		longest = gate.Ledger.NewStreak
	}

	c := &Commitment{
		UID:            uuid.New(),
		UserID:         userID,
		CommitmentDate: gate.Date,
		PhotoURL:       photoURL,
		Goals:          goals,
		JokerConsumed:  gate.Ledger.JokerConsumed,
		StreakAfter:    gate.Ledger.NewStreak,
	}

	if err := s.repo.AcceptCommitment(ctx, c, gate.Ledger, longest); err != nil {
		if errors.Is(err, errDuplicateDay) {
			// Второе устройство успело раньше — превращаем в обычный отказ
			return &SubmitResult{Gate: GateResult{Reason: ReasonAlreadyCommitted, Date: gate.Date}}, nil
		}
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":        userID,
		"streak":         gate.Ledger.NewStreak,
		"jokers":         gate.Ledger.NewJokers,
		"joker_consumed": gate.Ledger.JokerConsumed,
		"joker_awarded":  gate.Ledger.JokerAwarded,
	}).Info("Коммит принят")

	res := &SubmitResult{Gate: gate, Commitment: c}
	if m, ok := MilestoneFor(gate.Ledger.NewStreak); ok {
		res.Milestone = &m
	}
	return res, nil
}

// Progress возвращает снимок прогресса пользователя.
func (s *Service) Progress(ctx context.Context, userID int64) (*Progress, error) {
	return s.repo.GetProgress(ctx, userID)
}

// CreateProgress создаёт начальную запись прогресса (при регистрации).
func (s *Service) CreateProgress(ctx context.Context, userID int64) error {
	return s.repo.CreateProgress(ctx, userID)
}

// Archive возвращает коммиты пользователя. Без оплаты архив обрезается
// до бесплатного лимита — дальше paywall.
func (s *Service) Archive(ctx context.Context, userID int64) ([]*Commitment, error) {
	p, err := s.repo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	limit := 0 // без ограничения
	if !p.HasPaid {
		limit = s.cfg.PaywallFreeLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

// MarkPaid разблокирует архив. Вызывается биллингом после оплаты.
func (s *Service) MarkPaid(ctx context.Context, userID int64) error {
	if err := s.repo.MarkPaid(ctx, userID); err != nil {
		return err
	}
	log.WithField("user_id", userID).Info("Архив разблокирован после оплаты")
	return nil
}

// SendReminders отправляет напоминания пользователям с длинным стриком,
// которые сегодня ещё не коммитили. Запускается кроном при открытии окна
// и незадолго до закрытия.
func (s *Service) SendReminders(ctx context.Context, sendFunc func(chatID int64, text string) error) error {
	now := s.Now()
	today := common.Midnight(now)

	candidates, err := s.repo.GetReminderCandidates(ctx, s.cfg.StreakReminderThreshold, today)
	if err != nil {
		return err
	}

	for _, c := range candidates {
		status := s.Window()
		var msg string
		if status.Open {
			msg = fmt.Sprintf("🐺 Час волка! Твой стрик — %s. Сфотографируй записку, пока окно открыто.",
				common.FormatStreak(c.CurrentStreak))
		} else {
			msg = fmt.Sprintf("🐺 Окно откроется в %02d:00. Стрик %s ждёт продолжения.",
				s.cfg.WindowOpenHour, common.FormatStreak(c.CurrentStreak))
		}

		if err := sendFunc(c.TelegramChatID, msg); err != nil {
			log.WithError(err).WithField("user_id", c.UserID).Error("Ошибка отправки напоминания")
			continue
		}

		// Помечаем, что напоминание отправлено
		if err := s.repo.MarkReminderSent(ctx, c.UserID); err != nil {
			log.WithError(err).WithField("user_id", c.UserID).Error("Ошибка отметки напоминания")
		}
	}

	return nil
}

// DailyReset сбрасывает дневные флаги. Запускается кроном в момент
// закрытия окна (02:00 по времени продукта).
func (s *Service) DailyReset(ctx context.Context) error {
	log.Info("Запуск ежедневного сброса флагов")
	return s.repo.ResetDailyFlags(ctx)
}
