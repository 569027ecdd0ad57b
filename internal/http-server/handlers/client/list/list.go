// Package list обрабатывает получение списка клиентов проката.
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

// Lister возвращает список клиентов с пагинацией.
type Lister interface {
	ListClients(ctx context.Context, limit, offset int) ([]*models.Client, error)
}

// New возвращает обработчик списка клиентов.
func New(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.client.list"

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

		clients, err := lister.ListClients(r.Context(), limit, offset)
		if err != nil {
			log.Error("failed to list clients", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list clients"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"clients": clients,
		}))
	}
}
