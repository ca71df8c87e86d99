package game

import (
	"context"
	"fmt"
	"sync"

	gameservice "github.com/Black-And-White-Club/ladder-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain/events"
	gameapi "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/api"
	gamehandlers "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/handlers"
	gamedb "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/repositories"
	gamerouter "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/router"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/Black-And-White-Club/ladder-bot/config"
	"github.com/Black-And-White-Club/ladder-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/ladder-bot/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the game module.
type Module struct {
	GameService   gameservice.Service
	GameRouter    *gamerouter.GameRouter
	observability *observability.Observability
	cancelFunc    context.CancelFunc
}

// NewGameModule wires the game service to the database, the event router and the HTTP router.
func NewGameModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger.With("module", "game")
	logger.InfoContext(ctx, "Initializing game module")

	defaults := gamedomain.Competition{
		DefaultWinModifier:  cfg.Ladder.DefaultWinModifier,
		DefaultLossModifier: cfg.Ladder.DefaultLossModifier,
	}

	service := gameservice.NewGameService(
		gamedb.NewRepository(db),
		ladderdb.NewRepository(db),
		logger,
		obs.Collectors.For("game"),
		obs.Tracer,
		db,
		defaults,
	)

	publisher := eventbus.NewGuildScoped(eventBus, gameevents.GuildScopedTopics...)
	gameRouter := gamerouter.NewGameRouter(logger, router, eventBus, publisher, obs.Tracer)
	if err := gameRouter.Configure(ctx, gamehandlers.NewGameHandlers(service, logger)); err != nil {
		return nil, fmt.Errorf("failed to configure game router: %w", err)
	}

	if httpRouter != nil {
		limiter := gameapi.NewClientLimiter(cfg.HTTP.RequestsPerSecond, cfg.HTTP.Burst)
		gameapi.NewHandlers(service, logger).Mount(httpRouter, limiter)
	}

	return &Module{
		GameService:   service,
		GameRouter:    gameRouter,
		observability: obs,
	}, nil
}

// Run blocks until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting game module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Game module goroutine stopped")
}

// Close stops the game module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping game module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.GameRouter != nil {
		if err := m.GameRouter.Close(); err != nil {
			return fmt.Errorf("error closing GameRouter: %w", err)
		}
	}

	logger.Info("Game module stopped")
	return nil
}
