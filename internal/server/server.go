// Package server собирает HTTP-сервер: маршруты, middleware, статика фото.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"papyr.app/backend/internal/config"
	"papyr.app/backend/internal/features/billing"
	"papyr.app/backend/internal/features/commitment"
	"papyr.app/backend/internal/features/users"
	"papyr.app/backend/internal/server/middleware"
)

// Server — HTTP-сервер приложения.
type Server struct {
	httpServer  *http.Server
	rateLimiter *middleware.RateLimiter
}

// New собирает роутер и HTTP-сервер.
//
// Структура маршрутов:
//   - публичные: /health, /api/window, /api/auth/*, вебхук биллинга, статика фото
//   - за авторизацией: всё остальное под /api
func New(
	cfg *config.Config,
	userService *users.Service,
	userHandler *users.Handler,
	commitmentHandler *commitment.Handler,
	billingHandler *billing.Handler,
	photoDir string,
) *Server {
	rl := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	r := chi.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(rl.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Статика фотографий записок
	fs := http.StripPrefix(cfg.PhotoBaseURL+"/", http.FileServer(http.Dir(photoDir)))
	r.Get(cfg.PhotoBaseURL+"/*", fs.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Публичные маршруты
		r.Get("/window", commitmentHandler.GetWindow)
		r.Post("/auth/register", userHandler.PostRegister)
		r.Post("/auth/login", userHandler.PostLogin)
		r.Post("/billing/webhook", billingHandler.PostWebhook)

		// Маршруты за авторизацией
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(userService))

			r.Post("/auth/logout", userHandler.PostLogout)
			r.Get("/me", userHandler.GetMe)
			r.Post("/me/telegram", userHandler.PostLinkTelegram)

			r.Get("/progress", commitmentHandler.GetProgress)
			r.Post("/commitments", commitmentHandler.PostCommitment)
			r.Get("/commitments", commitmentHandler.GetArchive)

			r.Post("/billing/checkout", billingHandler.PostCheckout)
			r.Get("/billing/payments", billingHandler.GetPayments)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:      r,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
		},
		rateLimiter: rl,
	}
}

// Start запускает HTTP-сервер. Блокирует до остановки.
func (s *Server) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("HTTP-сервер запущен")
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("ошибка HTTP-сервера: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, давая активным запросам дозавершиться.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.Close()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки HTTP-сервера: %w", err)
	}
	log.Info("HTTP-сервер остановлен")
	return nil
}
