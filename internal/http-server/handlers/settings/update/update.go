// Package update обрабатывает изменение времени напоминаний.
package update

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/locadora-backend/internal/http-server/response"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
)

const notificationTimeKey = "notification_time"

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Setter записывает настройку по ключу.
type Setter interface {
	Set(ctx context.Context, key, value string) error
}

// Request тело запроса на изменение времени напоминаний.
type Request struct {
	NotificationTime string `json:"notification_time" validate:"required"`
}

// New возвращает обработчик изменения времени напоминаний.
func New(log *slog.Logger, setter Setter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.settings.update"

		log = log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}
		if !timeOfDay.MatchString(req.NotificationTime) {
			log.Error("invalid time of day", slog.String("value", req.NotificationTime))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("notification_time must be in HH:MM format"))
			return
		}

		if err := setter.Set(r.Context(), notificationTimeKey, req.NotificationTime); err != nil {
			log.Error("failed to save setting", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save setting"))
			return
		}
		log.Info("notification time updated", slog.String("value", req.NotificationTime))

		render.JSON(w, r, response.OK())
	}
}
