package gamehandlers

import (
	"context"

	gameevents "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain/events"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
)

// Handlers defines the contract for game event handlers.
type Handlers interface {
	HandleGameRecordRequested(ctx context.Context, payload *gameevents.GameRecordRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePickingFinishRequested(ctx context.Context, payload *gameevents.PickingFinishRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleOutcomeSubmitRequested(ctx context.Context, payload *gameevents.OutcomeSubmitRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleGameUndoRequested(ctx context.Context, payload *gameevents.GameUndoRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleGameCancelRequested(ctx context.Context, payload *gameevents.GameClosureRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleGameDrawRequested(ctx context.Context, payload *gameevents.GameClosureRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleVoteCastRequested(ctx context.Context, payload *gameevents.VoteCastRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleGameDeleteRequested(ctx context.Context, payload *gameevents.GameDeleteRequestedPayloadV1) ([]handlerwrapper.Result, error)
}

var _ Handlers = (*GameHandlers)(nil)
