// Package create обрабатывает создание аренды.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/locadora-backend/internal/http-server/response"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
	"github.com/magabrotheeeer/locadora-backend/internal/models"
	"github.com/magabrotheeeer/locadora-backend/internal/storage"
)

// Creater создаёт аренду с позициями оборудования.
type Creater interface {
	CreateRental(ctx context.Context, req models.DummyRental) (*models.Rental, error)
}

// New возвращает обработчик создания аренды.
func New(log *slog.Logger, creater Creater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rental.create"

		log = log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req models.DummyRental
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

		created, err := creater.CreateRental(r.Context(), req)
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("client not found", slog.String("client_id", req.ClientID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("client not found"))
			return
		}
		if err != nil {
			log.Error("failed to create rental", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save"))
			return
		}
		log.Info("created new rental",
			slog.String("id", created.ID),
			slog.Int("chargeable_days", created.ChargeableDays))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(created))
	}
}
