package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/ladder-bot/app/modules/game"
	"github.com/Black-And-White-Club/ladder-bot/app/modules/ladder"
	"github.com/Black-And-White-Club/ladder-bot/config"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/Black-And-White-Club/ladder-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/ladder-bot/pkg/observability"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// App holds every long lived component of the ladder service.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	HTTPRouter    chi.Router
	GameModule    *game.Module
	LadderModule  *ladder.Module

	server *http.Server
	closer func() error
}

// NewDB opens a bun handle over pgdriver.
func NewDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Initialize connects to Postgres and NATS and builds both modules.
func Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability, migrate bool) (*App, error) {
	logger := obs.Logger

	db := NewDB(cfg.Postgres.DSN)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if migrate {
		if err := Migrate(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	bus, err := eventbus.NewJetStream(ctx, eventbus.Config{URL: cfg.NATS.URL}, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	app, err := newApp(ctx, cfg, obs, db, bus)
	if err != nil {
		_ = bus.Close()
		_ = db.Close()
		return nil, err
	}
	app.closer = func() error {
		return errors.Join(bus.Close(), db.Close())
	}
	return app, nil
}

// newApp wires the router, the HTTP surface and the modules onto existing connections.
func newApp(ctx context.Context, cfg *config.Config, obs *observability.Observability, db *bun.DB, bus eventbus.EventBus) (*App, error) {
	wmLogger := watermill.NewSlogLogger(obs.Logger)
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 30 * time.Second}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          wmLogger,
		}.Middleware,
	)

	httpRouter := chi.NewRouter()
	httpRouter.Use(chimiddleware.RequestID, chimiddleware.Recoverer)
	httpRouter.Get("/healthz", healthHandler(db))
	httpRouter.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	ladderModule, err := ladder.NewLadderModule(ctx, cfg, obs, db, bus, router)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ladder module: %w", err)
	}
	gameModule, err := game.NewGameModule(ctx, cfg, obs, db, bus, router, httpRouter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize game module: %w", err)
	}

	return &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      bus,
		Router:        router,
		HTTPRouter:    httpRouter,
		GameModule:    gameModule,
		LadderModule:  ladderModule,
		server: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           httpRouter,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func healthHandler(db *bun.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// Run starts the message router, the modules and the HTTP server, and blocks until ctx is canceled.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	var wg sync.WaitGroup
	wg.Add(2)
	go app.LadderModule.Run(ctx, &wg)
	go app.GameModule.Run(ctx, &wg)

	routerErr := make(chan error, 1)
	go func() {
		routerErr <- app.Router.Run(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", attr.String("address", app.server.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-routerErr:
		if err != nil {
			runErr = fmt.Errorf("watermill router stopped: %w", err)
		}
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("http server stopped: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}

	if ctx.Err() == nil {
		// modules only stop on cancellation
		_ = app.GameModule.Close()
		_ = app.LadderModule.Close()
	}
	wg.Wait()
	return runErr
}

// Close stops the modules and releases the connections.
func (app *App) Close() error {
	var errs []error
	if app.GameModule != nil {
		errs = append(errs, app.GameModule.Close())
	}
	if app.LadderModule != nil {
		errs = append(errs, app.LadderModule.Close())
	}
	if app.closer != nil {
		errs = append(errs, app.closer())
	}
	return errors.Join(errs...)
}
