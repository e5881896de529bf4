package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"papyr.app/backend/internal/common"
)

// Recovery перехватывает панику в обработчике и возвращает 500,
// не роняя весь сервис.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(log.Fields{
					"component": "panic_recovery",
					"panic":     fmt.Sprintf("%v", rec),
					"path":      r.URL.Path,
					"stack":     string(debug.Stack()),
				}).Error("ПАНИКА в обработчике — восстановлено")
				common.WriteError(w, http.StatusInternalServerError, "internal", "внутренняя ошибка сервера")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
