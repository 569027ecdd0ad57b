// Package generate обрабатывает формирование квитанции по аренде.
package generate

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
	"github.com/magabrotheeeer/locadora-backend/internal/services/receipt"
	"github.com/magabrotheeeer/locadora-backend/internal/storage"
)

// Generater формирует файл квитанции и возвращает путь к нему.
type Generater interface {
	Generate(ctx context.Context, rentalID string) (string, error)
}

// New возвращает обработчик формирования квитанции.
func New(log *slog.Logger, generater Generater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.receipt.generate"

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

		path, err := generater.Generate(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("rental not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("rental not found"))
			return
		}
		if errors.Is(err, receipt.ErrNotSupported) {
			log.Error("receipt generation is not supported", sl.Err(err))
			render.Status(r, http.StatusNotImplemented)
			render.JSON(w, r, response.Error("receipt generation is not supported"))
			return
		}
		if err != nil {
			log.Error("failed to generate receipt", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to generate receipt"))
			return
		}
		log.Info("receipt generated", slog.String("rental_id", id))

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"path": path,
		}))
	}
}
