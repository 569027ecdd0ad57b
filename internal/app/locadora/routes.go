// Package locadora предоставляет маршруты для основного приложения.
package locadora

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/locadora-backend/internal/entitlement"
	"github.com/magabrotheeeer/locadora-backend/internal/http-server/auth"
	billingproducts "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/billing/products"
	billingpurchase "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/billing/purchase"
	billingrestore "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/billing/restore"
	billingstatus "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/billing/status"
	billingsync "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/billing/sync"
	clientcreate "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/client/create"
	clientlist "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/client/list"
	equipmentcreate "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/equipment/create"
	equipmentlist "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/equipment/list"
	receiptgenerate "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/receipt/generate"
	rentalcreate "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/rental/create"
	rentalfinish "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/rental/finish"
	rentallist "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/rental/list"
	rentalquote "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/rental/quote"
	rentalread "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/rental/read"
	settingsget "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/settings/get"
	settingsupdate "github.com/magabrotheeeer/locadora-backend/internal/http-server/handlers/settings/update"
	"github.com/magabrotheeeer/locadora-backend/internal/http-server/mware"
	"github.com/magabrotheeeer/locadora-backend/internal/prefs"
	receiptservice "github.com/magabrotheeeer/locadora-backend/internal/services/receipt"
	rentalservice "github.com/magabrotheeeer/locadora-backend/internal/services/rental"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, rentalService *rentalservice.Service, receiptService *receiptservice.Service, reconciler *entitlement.Reconciler, prefsStore *prefs.Store, jwtMaker auth.JWTMaker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mware.JWTMiddleware(jwtMaker, logger))
			r.Use(mware.RateLimitMiddleware(logger))

			r.Post("/clients", clientcreate.New(logger, rentalService).ServeHTTP)
			r.Get("/clients", clientlist.New(logger, rentalService).ServeHTTP)

			r.Post("/equipment", equipmentcreate.New(logger, rentalService).ServeHTTP)
			r.Get("/equipment", equipmentlist.New(logger, rentalService).ServeHTTP)

			r.Post("/rentals", rentalcreate.New(logger, rentalService).ServeHTTP)
			r.Get("/rentals", rentallist.New(logger, rentalService).ServeHTTP)
			r.Post("/rentals/quote", rentalquote.New(logger, rentalService).ServeHTTP)
			r.Get("/rentals/{id}", rentalread.New(logger, rentalService).ServeHTTP)
			r.Post("/rentals/{id}/return", rentalfinish.New(logger, rentalService).ServeHTTP)

			r.Get("/billing/products", billingproducts.New(logger, reconciler).ServeHTTP)
			r.Post("/billing/purchase", billingpurchase.New(logger, reconciler).ServeHTTP)
			r.Post("/billing/restore", billingrestore.New(logger, reconciler).ServeHTTP)
			r.Get("/billing/status", billingstatus.New(logger, reconciler).ServeHTTP)
			r.Post("/billing/sync", billingsync.New(logger, reconciler).ServeHTTP)

			r.Get("/settings/notification-time", settingsget.New(logger, prefsStore).ServeHTTP)
			r.Put("/settings/notification-time", settingsupdate.New(logger, prefsStore).ServeHTTP)

			// Квитанции доступны только с премиум-подпиской
			r.Group(func(r chi.Router) {
				r.Use(mware.PremiumGate(reconciler, logger))
				r.Post("/rentals/{id}/receipt", receiptgenerate.New(logger, receiptService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
