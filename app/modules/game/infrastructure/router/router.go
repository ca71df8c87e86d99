package gamerouter

import (
	"context"
	"log/slog"

	gameevents "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain/events"
	gamehandlers "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/handlers"
	"github.com/Black-And-White-Club/ladder-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// GameRouter handles routing for game module events.
type GameRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewGameRouter creates a new GameRouter.
func NewGameRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *GameRouter {
	return &GameRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure registers the game handlers. Router level middleware is installed by the app.
func (r *GameRouter) Configure(_ context.Context, handlers gamehandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, gameevents.GameRecordRequestedV1, handlers.HandleGameRecordRequested)
	registerHandler(deps, gameevents.PickingFinishRequestedV1, handlers.HandlePickingFinishRequested)
	registerHandler(deps, gameevents.OutcomeSubmitRequestedV1, handlers.HandleOutcomeSubmitRequested)
	registerHandler(deps, gameevents.GameUndoRequestedV1, handlers.HandleGameUndoRequested)
	registerHandler(deps, gameevents.GameCancelRequestedV1, handlers.HandleGameCancelRequested)
	registerHandler(deps, gameevents.GameDrawRequestedV1, handlers.HandleGameDrawRequested)
	registerHandler(deps, gameevents.VoteCastRequestedV1, handlers.HandleVoteCastRequested)
	registerHandler(deps, gameevents.GameDeleteRequestedV1, handlers.HandleGameDeleteRequested)

	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandler registers a pure transformation-pattern handler with typed payload.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "game." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"", // the bus reads the topic from message metadata when empty
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			handler,
		),
	)
}

// Close stops the router.
func (r *GameRouter) Close() error {
	return r.Router.Close()
}
