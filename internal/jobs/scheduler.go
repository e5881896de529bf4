// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: напоминания при открытии окна,
// последний звонок перед закрытием, ежедневный сброс флагов,
// очистка истёкших сессий.
package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"papyr.app/backend/internal/common"
	"papyr.app/backend/internal/config"
	"papyr.app/backend/internal/features/commitment"
	"papyr.app/backend/internal/features/users"
	"papyr.app/backend/internal/notify"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron              *cron.Cron
	commitmentService *commitment.Service
	userService       *users.Service
	notifier          notify.Notifier // nil = напоминания выключены
	cfg               *config.Config
}

// NewScheduler создаёт планировщик задач в часовом поясе продукта.
func NewScheduler(commitmentService *commitment.Service, userService *users.Service, notifier notify.Notifier, cfg *config.Config) *Scheduler {
	loc := common.ProductLocation(cfg.AppTimezone)
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:              c,
		commitmentService: commitmentService,
		userService:       userService,
		notifier:          notifier,
		cfg:               cfg,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	openHour := s.cfg.WindowOpenHour
	closeHour := s.cfg.WindowCloseHour
	// Последний звонок — за полчаса до закрытия окна
	lastCallHour := (closeHour + 23) % 24

	// Напоминание в момент открытия окна
	s.cron.AddFunc(fmt.Sprintf("0 %d * * *", openHour), func() {
		log.Info("[CRON] Напоминания: окно открылось")
		s.sendReminders(ctx)
	})

	// Последний звонок перед закрытием
	s.cron.AddFunc(fmt.Sprintf("30 %d * * *", lastCallHour), func() {
		log.Info("[CRON] Напоминания: окно скоро закроется")
		s.sendReminders(ctx)
	})

	// Сброс дневных флагов в момент закрытия окна
	s.cron.AddFunc(fmt.Sprintf("0 %d * * *", closeHour), func() {
		log.Info("[CRON] Ежедневный сброс флагов")
		if err := s.commitmentService.DailyReset(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка сброса")
		}
	})

	// Очистка истёкших сессий раз в сутки
	s.cron.AddFunc("15 4 * * *", func() {
		log.Debug("[CRON] Очистка истёкших сессий")
		if err := s.userService.CleanupSessions(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка очистки сессий")
		}
	})

	s.cron.Start()
	log.WithField("timezone", s.cfg.AppTimezone).Info("Планировщик задач запущен")
}

// sendReminders отправляет напоминания через нотификатор.
func (s *Scheduler) sendReminders(ctx context.Context) {
	if s.notifier == nil {
		return // Telegram не сконфигурирован
	}
	err := s.commitmentService.SendReminders(ctx, func(chatID int64, text string) error {
		return s.notifier.Send(ctx, chatID, text)
	})
	if err != nil {
		log.WithError(err).Error("[CRON] Ошибка отправки напоминаний")
	}
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
