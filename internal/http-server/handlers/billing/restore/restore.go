// Package restore обрабатывает восстановление покупок.
package restore

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

// Restorer восстанавливает ранее сделанные покупки аккаунта.
type Restorer interface {
	Restore(ctx context.Context) entitlement.RestoreOutcome
}

// New возвращает обработчик восстановления покупок.
func New(log *slog.Logger, restorer Restorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.restore"

		log = log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		outcome := restorer.Restore(r.Context())
		switch outcome.Status {
		case entitlement.OutcomeSuccess:
			log.Info("purchases restored")
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"restored":     true,
				"subscription": outcome.Info,
			}))
		case entitlement.OutcomeNoPurchases:
			log.Info("nothing to restore")
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"restored": false,
			}))
		default:
			log.Error("restore failed", slog.String("message", outcome.Message))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("failed to restore purchases"))
		}
	}
}
