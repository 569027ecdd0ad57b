// Package status обрабатывает запрос текущего состояния подписки.
package status

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/locadora-backend/internal/entitlement"
	"github.com/magabrotheeeer/locadora-backend/internal/http-server/response"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
)

// StatusProvider отдаёт локальный снимок подписки без похода в сеть.
type StatusProvider interface {
	Info() entitlement.SubscriptionInfo
	IsPremium() bool
}

// New возвращает обработчик состояния подписки.
func New(log *slog.Logger, provider StatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.status"

		log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		).Debug("subscription status requested")

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"is_premium":   provider.IsPremium(),
			"subscription": provider.Info(),
		}))
	}
}
