// Package notify отправляет пользователям напоминания про окно сдачи.
// Единственный канал — Telegram-бот: пользователь привязывает чат
// в настройках, дальше его дёргает планировщик.
package notify

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	log "github.com/sirupsen/logrus"
)

// Notifier доставляет одно текстовое напоминание в чат.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Telegram отправляет напоминания через Telegram Bot API.
type Telegram struct {
	bot *telego.Bot
}

// NewTelegram создаёт нотификатор. Пустой токен — валидная конфигурация,
// тогда возвращается nil и планировщик просто не шлёт напоминания.
func NewTelegram(token string) (*Telegram, error) {
	if token == "" {
		log.Info("TELEGRAM_BOT_TOKEN пуст — напоминания выключены")
		return nil, nil
	}

	bot, err := telego.NewBot(token, telego.WithDiscardLogger())
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram-бота: %w", err)
	}

	log.Info("Telegram-нотификатор готов")
	return &Telegram{bot: bot}, nil
}

// Send отправляет текст в чат.
func (t *Telegram) Send(ctx context.Context, chatID int64, text string) error {
	_, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(chatID), text))
	if err != nil {
		return fmt.Errorf("ошибка отправки в чат %d: %w", chatID, err)
	}
	return nil
}
