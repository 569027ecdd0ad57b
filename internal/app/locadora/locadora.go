// Package locadora собирает приложение проката: хранилище, кеш,
// клиент магазина подписок, потребитель событий и HTTP-сервер.
package locadora

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/locadora-backend/internal/cache"
	"github.com/magabrotheeeer/locadora-backend/internal/config"
	"github.com/magabrotheeeer/locadora-backend/internal/entitlement"
	"github.com/magabrotheeeer/locadora-backend/internal/events"
	"github.com/magabrotheeeer/locadora-backend/internal/http-server/auth"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
	"github.com/magabrotheeeer/locadora-backend/internal/migrations"
	"github.com/magabrotheeeer/locadora-backend/internal/models"
	"github.com/magabrotheeeer/locadora-backend/internal/prefs"
	"github.com/magabrotheeeer/locadora-backend/internal/rentalperiod"
	receiptservice "github.com/magabrotheeeer/locadora-backend/internal/services/receipt"
	rentalservice "github.com/magabrotheeeer/locadora-backend/internal/services/rental"
	"github.com/magabrotheeeer/locadora-backend/internal/storage"
	"github.com/magabrotheeeer/locadora-backend/internal/storeclient"
)

// App приложение проката со всеми зависимостями.
type App struct {
	server       *http.Server
	logger       *slog.Logger
	db           *storage.Storage
	amqpConn     *amqp.Connection
	amqpChannel  *amqp.Channel
	queueName    string
	consumer     *events.Consumer
	reconciler   *entitlement.Reconciler
	syncInterval time.Duration
}

// New собирает приложение из конфига.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "locadora.New"

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	prefsStore := prefs.New(cacheRedis.Db)

	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	calc := rentalperiod.New(loc)

	store := storeclient.New(cfg.StoreAPIURL, cfg.StoreAPIKey)
	reconciler := entitlement.NewReconciler(store, cacheRedis, logger)

	rentalService := rentalservice.New(db, cacheRedis, calc, logger)
	receiptService := receiptservice.New(db,
		receiptservice.TextGenerator{Dir: cfg.ReceiptsDir},
		models.CompanyInfo{
			Name:    cfg.CompanyName,
			Phone:   cfg.CompanyPhone,
			Address: cfg.CompanyAddress,
		},
		logger)

	jwtMaker := auth.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	app := &App{
		logger:       logger,
		db:           db,
		reconciler:   reconciler,
		syncInterval: cfg.SyncInterval,
	}

	if cfg.AMQPConnectionString != "" {
		conn, err := events.Connect(cfg.AMQPConnectionString, 5, 3*time.Second)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := events.SetupChannel(conn, cfg.EntitlementQueue)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.amqpConn = conn
		app.amqpChannel = ch
		app.queueName = cfg.EntitlementQueue
		app.consumer = events.NewConsumer(reconciler, logger)
	} else {
		logger.Info("amqp connection string is empty, push updates disabled")
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, rentalService, receiptService, reconciler, prefsStore, jwtMaker)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер, потребитель событий и фоновую сверку
// подписки. Блокируется до отмены контекста или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	if a.consumer != nil {
		if err := a.consumer.Run(ctx, a.amqpChannel, a.queueName); err != nil {
			return err
		}
	}

	go a.runSyncLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.amqpConn != nil {
			if closeErr := a.amqpConn.Close(); closeErr != nil {
				a.logger.Error("failed to close amqp connection", sl.Err(closeErr))
			}
		}
		a.db.DB.Close()
		return err
	}
}

// runSyncLoop сверяет снимок подписки при старте и далее по таймеру.
// Неудачная сверка оставляет последний известный снимок.
func (a *App) runSyncLoop(ctx context.Context) {
	if err := a.reconciler.Sync(ctx); err != nil {
		a.logger.Warn("initial entitlement sync failed", sl.Err(err))
	}

	interval := a.syncInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.reconciler.Sync(ctx); err != nil {
				a.logger.Warn("entitlement sync failed", sl.Err(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
