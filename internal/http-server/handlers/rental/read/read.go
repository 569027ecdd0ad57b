// Package read обрабатывает получение аренды по идентификатору.
package read

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
	"github.com/magabrotheeeer/locadora-backend/internal/models"
	"github.com/magabrotheeeer/locadora-backend/internal/storage"
)

// Reader возвращает аренду по идентификатору.
type Reader interface {
	ReadRental(ctx context.Context, id string) (*models.Rental, error)
}

// New возвращает обработчик чтения аренды.
func New(log *slog.Logger, reader Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rental.read"

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

		result, err := reader.ReadRental(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("rental not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("rental not found"))
			return
		}
		if err != nil {
			log.Error("failed to read rental", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read rental"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
