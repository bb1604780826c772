package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	travelordersserver "github.com/Apurer/go-gin-travel-orders/go"

	travelmemory "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/adapters/memory"
	travelnotification "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/adapters/notification"
	travelobs "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/adapters/observability"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/adapters/owners"
	travelpostgres "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/adapters/persistence/postgres"
	travelapp "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/application"
	travelports "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"

	usermemory "github.com/Apurer/go-gin-travel-orders/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/go-gin-travel-orders/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/go-gin-travel-orders/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/go-gin-travel-orders/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"

	"github.com/Apurer/go-gin-travel-orders/internal/platform/auth"
	platformobservability "github.com/Apurer/go-gin-travel-orders/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-travel-orders/internal/platform/postgres"
	"github.com/Apurer/go-gin-travel-orders/internal/platform/scheduler"
	"github.com/Apurer/go-gin-travel-orders/internal/platform/temporal/temporalclient"
)

const (
	serviceName     = "travel-orders-api"
	shutdownTimeout = 10 * time.Second
)

// Run boots the travel orders HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{
		ServiceName: serviceName,
		Environment: cfg.Env,
		LogLevel:    platformobservability.ParseLevel(cfg.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB, err := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	userRepo, revocations := buildUserStores(db)
	userService, err := buildUserService(cfg, instruments, userRepo, revocations)
	if err != nil {
		return err
	}

	notifier, closeNotifier, err := buildNotifier(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer closeNotifier()

	coreTravelService := travelapp.NewService(
		buildTravelOrderRepository(db),
		travelapp.WithNotifier(travelobs.NewNotifier(
			notifier,
			travelobs.WithLogger(logger),
			travelobs.WithTracer(instruments.Tracer("internal.travelorders.notification")),
			travelobs.WithMeter(instruments.Meter("internal.travelorders.notification")),
		)),
		travelapp.WithOwnerDirectory(owners.NewDirectory(userRepo)),
		travelapp.WithLogger(logger),
		travelapp.WithPagination(travelapp.Pagination{DefaultPerPage: cfg.DefaultPerPage, MaxPerPage: cfg.MaxPerPage}),
	)
	travelService := travelobs.New(
		coreTravelService,
		travelobs.WithLogger(logger),
		travelobs.WithTracer(instruments.Tracer("internal.travelorders.application")),
		travelobs.WithMeter(instruments.Meter("internal.travelorders.application")),
	)

	purgeJob := scheduler.NewTokenPurgeJob(revocations, cfg.TokenPurgeSchedule, logger)
	if err := purgeJob.Start(); err != nil {
		return fmt.Errorf("invalid TOKEN_PURGE_SCHEDULE: %w", err)
	}
	defer purgeJob.Stop()

	travelordersserver.SetProblemLogger(logger)
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := travelordersserver.NewRouterWithGinEngine(engine, travelordersserver.ApiHandleFunctions{
		Auth:           travelordersserver.NewAuthMiddleware(userService),
		AuthAPI:        travelordersserver.NewAuthAPI(userService),
		TravelOrderAPI: travelordersserver.NewTravelOrderAPI(travelService),
		UserAPI:        travelordersserver.NewUserAPI(userService),
	})
	return serve(ctx, logger, cfg.Addr(), router)
}

func serve(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("travel orders API listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("travel orders API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down travel orders API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildUserStores(db *gorm.DB) (userports.Repository, userports.RevocationStore) {
	if db == nil {
		return usermemory.NewRepository(), usermemory.NewRevocationStore()
	}
	return userpostgres.NewRepository(db), userpostgres.NewRevocationStore(db)
}

func buildTravelOrderRepository(db *gorm.DB) travelports.Repository {
	if db == nil {
		return travelmemory.NewRepository()
	}
	return travelpostgres.NewRepository(db)
}

func buildUserService(cfg Config, instruments *platformobservability.Instruments, repo userports.Repository, revocations userports.RevocationStore) (userports.Service, error) {
	issuer, err := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	core := userapp.NewService(repo, auth.BcryptHasher{}, issuer, revocations, userapp.WithLogger(instruments.Logger))
	return userobs.New(
		core,
		userobs.WithLogger(instruments.Logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	), nil
}

// buildNotifier prefers durable delivery through Temporal and falls back to the
// in-process queue when Temporal is disabled or unreachable.
func buildNotifier(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (travelports.Notifier, func(), error) {
	logger := instruments.Logger
	if !cfg.TemporalDisabled {
		temporalClient, err := temporalclient.Dial(temporalclient.Options{
			Address:   cfg.TemporalAddress,
			Namespace: cfg.TemporalNamespace,
			Logger:    logger,
			Tracer:    instruments.Tracer("temporal-client"),
		})
		if err == nil {
			logger.Info("Temporal notifications enabled", slog.String("namespace", cfg.TemporalNamespace))
			return travelnotification.NewTemporalDispatcher(temporalClient), temporalClient.Close, nil
		}
		logger.Warn("Temporal unavailable, delivering notifications in-process", slog.String("error", err.Error()))
	}

	sink, closeSink, err := travelnotification.NewSink(SinkConfigFrom(cfg), logger)
	if err != nil {
		return nil, nil, err
	}
	dispatcher := travelnotification.NewQueueDispatcher(sink, travelnotification.WithQueueLogger(logger))
	dispatcher.Start(ctx)
	return dispatcher, func() {
		dispatcher.Close()
		closeSink()
	}, nil
}

// SinkConfigFrom extracts the notification sink settings.
func SinkConfigFrom(cfg Config) travelnotification.SinkConfig {
	return travelnotification.SinkConfig{
		Kind:        cfg.NotificationSink,
		RabbitMQURL: cfg.RabbitMQURL,
		Queue:       cfg.NotificationQueue,
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.NotificationTopic,
	}
}
