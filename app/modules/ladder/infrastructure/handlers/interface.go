package ladderhandlers

import (
	"context"

	ladderevents "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/domain/events"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
)

// Handlers defines the contract for ladder event handlers.
type Handlers interface {
	HandleCompetitionRetrieveRequested(ctx context.Context, payload *ladderevents.GuildRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleCompetitionUpdateRequested(ctx context.Context, payload *ladderevents.CompetitionUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRankListRequested(ctx context.Context, payload *ladderevents.GuildRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleRankSaveRequested(ctx context.Context, payload *ladderevents.RankSaveRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRankDeleteRequested(ctx context.Context, payload *ladderevents.RankDeleteRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleLobbyRetrieveRequested(ctx context.Context, payload *ladderevents.LobbyRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleLobbySaveRequested(ctx context.Context, payload *ladderevents.LobbySaveRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePlayerRetrieveRequested(ctx context.Context, payload *ladderevents.PlayerRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandlePlayerRegisterRequested(ctx context.Context, payload *ladderevents.PlayerRequestPayloadV1) ([]handlerwrapper.Result, error)
	HandleQueueJoinRequested(ctx context.Context, payload *ladderevents.QueueJoinRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleQueueListRequested(ctx context.Context, payload *ladderevents.LobbyRequestPayloadV1) ([]handlerwrapper.Result, error)
}

var _ Handlers = (*LadderHandlers)(nil)
