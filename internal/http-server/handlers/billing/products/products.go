// Package products обрабатывает запрос каталога планов подписки.
package products

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

// Cataloger возвращает каталог планов подписки магазина.
type Cataloger interface {
	Products(ctx context.Context) ([]entitlement.Product, error)
}

// New возвращает обработчик каталога планов.
func New(log *slog.Logger, cataloger Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.products"

		log = log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		items, err := cataloger.Products(r.Context())
		if err != nil {
			log.Error("failed to load products", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("failed to load products"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"products": items,
		}))
	}
}
