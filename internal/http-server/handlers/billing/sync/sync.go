// Package sync обрабатывает принудительную сверку подписки с магазином.
package sync

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/locadora-backend/internal/entitlement"
	"github.com/magabrotheeeer/locadora-backend/internal/http-server/response"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
)

// Syncer сверяет локальный снимок подписки с магазином.
type Syncer interface {
	Sync(ctx context.Context) error
	Info() entitlement.SubscriptionInfo
	IsPremium() bool
}

// New возвращает обработчик сверки подписки. При недоступном магазине
// отдаётся последний известный снимок с пометкой stale.
func New(log *slog.Logger, syncer Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.sync"

		log = log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := syncer.Sync(r.Context()); err != nil {
			log.Warn("sync failed, serving cached snapshot", sl.Err(err))
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"stale":        true,
				"is_premium":   syncer.IsPremium(),
				"subscription": syncer.Info(),
			}))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"stale":        false,
			"is_premium":   syncer.IsPremium(),
			"subscription": syncer.Info(),
		}))
	}
}
