// Package config загружает конфигурацию сервиса из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- HTTP ---
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`
	// Таймауты HTTP-сервера. Без них медленный клиент держит соединение вечно.
	HTTPReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	HTTPWriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"papyr"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"papyr"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	// Часовой пояс продукта. Даты коммитов и окно сдачи считаются в нём,
	// клиентское время НИКОГДА не используется.
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Berlin"`

	// --- Окно сдачи («час волка») ---
	// Окно открыто с WINDOW_OPEN_HOUR:00 до WINDOW_CLOSE_HOUR:00 следующего дня.
	WindowOpenHour  int `envconfig:"WINDOW_OPEN_HOUR" default:"20"`
	WindowCloseHour int `envconfig:"WINDOW_CLOSE_HOUR" default:"2"`

	// --- Стрики и джокеры ---
	// Каждые N дней стрика начисляется один джокер.
	JokerAwardInterval int `envconfig:"JOKER_AWARD_INTERVAL" default:"7"`
	// Напоминания отправляем только тем, у кого стрик >= порога.
	StreakReminderThreshold int `envconfig:"STREAK_REMINDER_THRESHOLD" default:"3"`

	// --- Paywall ---
	// Сколько коммитов бесплатно. В легаси-клиенте фигурировал триал в 7 дней,
	// в бэкенд-ветке — 14 коммитов. Канон: 14, но порог настраиваемый.
	PaywallFreeLimit int `envconfig:"PAYWALL_FREE_LIMIT" default:"14"`

	// --- Sessions ---
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	// --- Photo storage ---
	PhotoDir     string `envconfig:"PHOTO_DIR" default:"/var/lib/papyr/photos"`
	PhotoBaseURL string `envconfig:"PHOTO_BASE_URL" default:"/photos"`
	// Максимальный размер фото в байтах (10 МБ)
	PhotoMaxBytes int64 `envconfig:"PHOTO_MAX_BYTES" default:"10485760"`

	// --- Billing (Stripe) ---
	StripeSecretKey     string `envconfig:"STRIPE_SECRET_KEY" default:""`
	StripeWebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" default:""`
	StripePriceID       string `envconfig:"STRIPE_PRICE_ID" default:""`
	BillingSuccessURL   string `envconfig:"BILLING_SUCCESS_URL" default:"https://papyr.app/archive?paid=1"`
	BillingCancelURL    string `envconfig:"BILLING_CANCEL_URL" default:"https://papyr.app/archive"`

	// --- Notifications (Telegram) ---
	// Токен бота для напоминаний. Пустой токен = напоминания выключены.
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"30"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("некорректный HTTP_PORT: %d", c.HTTPPort)
	}
	if c.WindowOpenHour < 0 || c.WindowOpenHour > 23 {
		return fmt.Errorf("WINDOW_OPEN_HOUR должен быть в диапазоне 0-23")
	}
	if c.WindowCloseHour < 0 || c.WindowCloseHour > 23 {
		return fmt.Errorf("WINDOW_CLOSE_HOUR должен быть в диапазоне 0-23")
	}
	if c.JokerAwardInterval <= 0 {
		return fmt.Errorf("JOKER_AWARD_INTERVAL должен быть > 0")
	}
	if c.PaywallFreeLimit <= 0 {
		return fmt.Errorf("PAYWALL_FREE_LIMIT должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.PhotoMaxBytes <= 0 {
		return fmt.Errorf("PHOTO_MAX_BYTES должен быть > 0")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
