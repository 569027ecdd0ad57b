// Package finish обрабатывает возврат оборудования по аренде.
package finish

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/locadora-backend/internal/http-server/response"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
	"github.com/magabrotheeeer/locadora-backend/internal/storage"
)

// Finisher отмечает аренду возвращённой.
type Finisher interface {
	ReturnRental(ctx context.Context, id string) (int, error)
}

// New возвращает обработчик возврата аренды.
func New(log *slog.Logger, finisher Finisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rental.finish"

		log = log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("missing rental id")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("missing rental id"))
			return
		}

		count, err := finisher.ReturnRental(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) || (err == nil && count == 0) {
			log.Error("rental not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("rental not found"))
			return
		}
		if err != nil {
			log.Error("failed to return rental", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to return rental"))
			return
		}
		log.Info("rental returned", slog.String("id", id))

		render.JSON(w, r, response.OK())
	}
}
