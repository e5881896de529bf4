// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики
// и собирает всё в один объект App.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"papyr.app/backend/internal/config"
	"papyr.app/backend/internal/db/postgres"
	"papyr.app/backend/internal/features/billing"
	"papyr.app/backend/internal/features/commitment"
	"papyr.app/backend/internal/features/users"
	"papyr.app/backend/internal/jobs"
	"papyr.app/backend/internal/notify"
	"papyr.app/backend/internal/server"
	"papyr.app/backend/internal/storage"
)

// App содержит все компоненты приложения.
type App struct {
	Server    *server.Server
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Запускаем миграции
	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Хранилище фотографий ===
	photos, err := storage.NewDisk(cfg.PhotoDir, cfg.PhotoBaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка хранилища фото: %w", err)
	}

	// === 3. Нотификатор (может быть nil — это нормально) ===
	notifier, err := notify.NewTelegram(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка нотификатора: %w", err)
	}

	// === 4. Репозитории ===
	userRepo := users.NewRepository(pool)
	commitmentRepo := commitment.NewRepository(pool)
	billingRepo := billing.NewRepository(pool)

	// === 5. Сервисы ===
	userService := users.NewService(userRepo, cfg)
	commitmentService := commitment.NewService(commitmentRepo, photos, cfg)
	billingService := billing.NewService(billingRepo, commitmentService, cfg)

	// === 6. Обработчики ===
	userHandler := users.NewHandler(userService, commitmentService)
	commitmentHandler := commitment.NewHandler(commitmentService)
	billingHandler := billing.NewHandler(billingService)

	// === 7. HTTP-сервер ===
	srv := server.New(cfg, userService, userHandler, commitmentHandler, billingHandler, photos.Dir())

	// === 8. Планировщик задач ===
	// Типизированный nil (*notify.Telegram) в интерфейсе не равен nil,
	// поэтому заворачиваем явно
	var n notify.Notifier
	if notifier != nil {
		n = notifier
	}
	scheduler := jobs.NewScheduler(commitmentService, userService, n, cfg)

	return &App{
		Server:    srv,
		Scheduler: scheduler,
		DB:        pool,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	// Инициализируем систему миграций
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	// Выполняем миграции по порядку
	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Users},
		{2, migration002Progress},
		{3, migration003Commitments},
		{4, migration004Sessions},
		{5, migration005Payments},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Users = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    display_name VARCHAR(255) DEFAULT '',
    telegram_chat_id BIGINT,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
`

var migration002Progress = `
CREATE TABLE IF NOT EXISTS progress (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
    current_streak INTEGER DEFAULT 0,
    longest_streak INTEGER DEFAULT 0,
    jokers INTEGER DEFAULT 0,
    last_commitment_date DATE,
    total_commitments INTEGER DEFAULT 0,
    has_paid BOOLEAN DEFAULT FALSE,
    reminder_sent_today BOOLEAN DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_progress_user_id ON progress(user_id);
`

var migration003Commitments = `
CREATE TABLE IF NOT EXISTS commitments (
    id BIGSERIAL PRIMARY KEY,
    uid UUID UNIQUE NOT NULL,
    user_id BIGINT NOT NULL REFERENCES users(id),
    commitment_date DATE NOT NULL,
    photo_url TEXT NOT NULL,
    goals JSONB NOT NULL DEFAULT '[]',
    joker_consumed BOOLEAN DEFAULT FALSE,
    streak_after INTEGER NOT NULL,
    created_at TIMESTAMP DEFAULT NOW(),
    UNIQUE (user_id, commitment_date)
);
CREATE INDEX IF NOT EXISTS idx_commitments_user_date ON commitments(user_id, commitment_date DESC);
`

var migration004Sessions = `
CREATE TABLE IF NOT EXISTS sessions (
    id BIGSERIAL PRIMARY KEY,
    token VARCHAR(255) UNIQUE NOT NULL,
    user_id BIGINT NOT NULL REFERENCES users(id),
    expires_at TIMESTAMP NOT NULL,
    last_activity TIMESTAMP DEFAULT NOW(),
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token);
CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
`

var migration005Payments = `
CREATE TABLE IF NOT EXISTS payments (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id),
    provider_session_id VARCHAR(255) UNIQUE NOT NULL,
    amount_cents BIGINT DEFAULT 0,
    currency VARCHAR(8) DEFAULT 'eur',
    status VARCHAR(32) NOT NULL DEFAULT 'pending',
    paid_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_payments_user_id ON payments(user_id);
`
