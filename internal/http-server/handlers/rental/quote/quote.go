// Package quote обрабатывает предварительный расчёт стоимости аренды.
package quote

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/locadora-backend/internal/http-server/response"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
	"github.com/magabrotheeeer/locadora-backend/internal/models"
	"github.com/magabrotheeeer/locadora-backend/internal/services/rental"
)

// Quoter считает оплачиваемые дни и стоимость без сохранения аренды.
type Quoter interface {
	QuoteRental(ctx context.Context, req models.DummyQuote) (*rental.Quote, error)
}

// New возвращает обработчик расчёта стоимости.
func New(log *slog.Logger, quoter Quoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rental.quote"

		log = log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req models.DummyQuote
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

		result, err := quoter.QuoteRental(r.Context(), req)
		if err != nil {
			log.Error("failed to quote rental", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to quote rental"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
