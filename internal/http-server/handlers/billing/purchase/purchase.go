// Package purchase обрабатывает покупку плана подписки.
package purchase

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/locadora-backend/internal/entitlement"
	"github.com/magabrotheeeer/locadora-backend/internal/http-server/response"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
)

// Purchaser запускает покупку плана. Повторный вызов для того же плана
// присоединяется к уже идущей покупке.
type Purchaser interface {
	Purchase(ctx context.Context, planID string) entitlement.PurchaseOutcome
}

// Request тело запроса на покупку плана.
type Request struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// New возвращает обработчик покупки плана.
func New(log *slog.Logger, purchaser Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.purchase"

		log = log.With(
			sl.Op(op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
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

		outcome := purchaser.Purchase(r.Context(), req.PlanID)
		switch outcome.Status {
		case entitlement.OutcomeSuccess:
			log.Info("purchase completed", slog.String("plan_id", req.PlanID))
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"status":       "success",
				"subscription": outcome.Info,
			}))
		case entitlement.OutcomeCancelled:
			log.Info("purchase cancelled", slog.String("plan_id", req.PlanID))
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"status": "cancelled",
			}))
		default:
			log.Error("purchase failed",
				slog.String("plan_id", req.PlanID),
				slog.String("code", string(outcome.ErrorCode)),
				slog.String("message", outcome.Message))
			render.Status(r, http.StatusPaymentRequired)
			render.JSON(w, r, response.StatusErrorWithData(
				entitlement.FriendlyMessage(outcome.ErrorCode, outcome.Message),
				map[string]any{"code": outcome.ErrorCode},
			))
		}
	}
}
