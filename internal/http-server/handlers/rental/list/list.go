// Package list обрабатывает получение списка аренд.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/locadora-backend/internal/http-server/response"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
	"github.com/magabrotheeeer/locadora-backend/internal/models"
)

// Lister возвращает список аренд с пагинацией.
type Lister interface {
	ListRentals(ctx context.Context, limit, offset int) ([]*models.Rental, error)
}

// New возвращает обработчик списка аренд.
func New(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rental.list"

		log = log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || limit <= 0 {
			limit = 50
		}
		offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
		if err != nil || offset < 0 {
			offset = 0
		}

		rentals, err := lister.ListRentals(r.Context(), limit, offset)
		if err != nil {
			log.Error("failed to list rentals", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list rentals"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"rentals": rentals,
		}))
	}
}
