// Package get обрабатывает чтение настройки времени напоминаний.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/locadora-backend/internal/http-server/response"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
)

const (
	notificationTimeKey     = "notification_time"
	defaultNotificationTime = "09:00"
)

// Getter читает настройку по ключу с значением по умолчанию.
type Getter interface {
	Get(ctx context.Context, key, fallback string) (string, error)
}

// New возвращает обработчик чтения времени напоминаний.
func New(log *slog.Logger, getter Getter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.settings.get"

		log = log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		value, err := getter.Get(r.Context(), notificationTimeKey, defaultNotificationTime)
		if err != nil {
			log.Error("failed to read setting", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read setting"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"notification_time": value,
		}))
	}
}
