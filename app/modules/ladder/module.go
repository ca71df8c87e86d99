package ladder

import (
	"context"
	"fmt"
	"sync"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderservice "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/application"
	ladderhandlers "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/handlers"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	ladderrouter "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/router"
	"github.com/Black-And-White-Club/ladder-bot/config"
	"github.com/Black-And-White-Club/ladder-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/ladder-bot/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the ladder configuration module.
type Module struct {
	LadderService ladderservice.Service
	LadderRouter  *ladderrouter.LadderRouter
	observability *observability.Observability
	cancelFunc    context.CancelFunc
}

// NewLadderModule wires the ladder configuration service to the database and the event router.
func NewLadderModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger.With("module", "ladder")
	logger.InfoContext(ctx, "Initializing ladder module")

	service := ladderservice.NewLadderService(
		ladderdb.NewRepository(db),
		logger,
		obs.Collectors.For("ladder"),
		obs.Tracer,
		db,
		gamedomain.Competition{
			DefaultWinModifier:  cfg.Ladder.DefaultWinModifier,
			DefaultLossModifier: cfg.Ladder.DefaultLossModifier,
		},
		gamedomain.Lobby{
			Multiplier:       1,
			ReductionPercent: cfg.Ladder.DefaultReductionPercent,
		},
	)

	ladderRouter := ladderrouter.NewLadderRouter(logger, router, eventBus, eventBus, obs.Tracer)
	if err := ladderRouter.Configure(ctx, ladderhandlers.NewLadderHandlers(service, logger)); err != nil {
		return nil, fmt.Errorf("failed to configure ladder router: %w", err)
	}

	return &Module{
		LadderService: service,
		LadderRouter:  ladderRouter,
		observability: obs,
	}, nil
}

// Run blocks until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting ladder module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Ladder module goroutine stopped")
}

// Close stops the ladder module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping ladder module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.LadderRouter != nil {
		if err := m.LadderRouter.Close(); err != nil {
			return fmt.Errorf("error closing LadderRouter: %w", err)
		}
	}

	logger.Info("Ladder module stopped")
	return nil
}
