package ladderrouter

import (
	"context"
	"log/slog"

	ladderevents "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/domain/events"
	ladderhandlers "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/handlers"
	"github.com/Black-And-White-Club/ladder-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// LadderRouter handles routing for ladder configuration events.
type LadderRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewLadderRouter creates a new LadderRouter.
func NewLadderRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *LadderRouter {
	return &LadderRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure registers the ladder handlers.
func (r *LadderRouter) Configure(_ context.Context, handlers ladderhandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, ladderevents.CompetitionRetrieveRequestedV1, handlers.HandleCompetitionRetrieveRequested)
	registerHandler(deps, ladderevents.CompetitionUpdateRequestedV1, handlers.HandleCompetitionUpdateRequested)
	registerHandler(deps, ladderevents.RankListRequestedV1, handlers.HandleRankListRequested)
	registerHandler(deps, ladderevents.RankSaveRequestedV1, handlers.HandleRankSaveRequested)
	registerHandler(deps, ladderevents.RankDeleteRequestedV1, handlers.HandleRankDeleteRequested)
	registerHandler(deps, ladderevents.LobbyRetrieveRequestedV1, handlers.HandleLobbyRetrieveRequested)
	registerHandler(deps, ladderevents.LobbySaveRequestedV1, handlers.HandleLobbySaveRequested)
	registerHandler(deps, ladderevents.PlayerRetrieveRequestedV1, handlers.HandlePlayerRetrieveRequested)
	registerHandler(deps, ladderevents.PlayerRegisterRequestedV1, handlers.HandlePlayerRegisterRequested)
	registerHandler(deps, ladderevents.QueueJoinRequestedV1, handlers.HandleQueueJoinRequested)
	registerHandler(deps, ladderevents.QueueListRequestedV1, handlers.HandleQueueListRequested)

	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "ladder." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
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
func (r *LadderRouter) Close() error {
	return r.Router.Close()
}
