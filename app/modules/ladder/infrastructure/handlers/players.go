package ladderhandlers

import (
	"context"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderevents "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/domain/events"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
)

func playerPayload(p *gamedomain.Player) any {
	return &ladderevents.PlayerPayloadV1{Player: *p}
}

// HandlePlayerRetrieveRequested returns a player's points and record.
func (h *LadderHandlers) HandlePlayerRetrieveRequested(ctx context.Context, payload *ladderevents.PlayerRequestPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.GetPlayer(ctx, payload.GuildID, payload.UserID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.PlayerRetrievedV1,
		ladderevents.PlayerRetrieveFailedV1,
		playerPayload,
		target{guildID: payload.GuildID, userID: payload.UserID},
	), nil
}

// HandlePlayerRegisterRequested adds a user to the ladder.
func (h *LadderHandlers) HandlePlayerRegisterRequested(ctx context.Context, payload *ladderevents.PlayerRequestPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.RegisterPlayer(ctx, payload.GuildID, payload.UserID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.PlayerRegisteredV1,
		ladderevents.PlayerRegisterFailedV1,
		playerPayload,
		target{guildID: payload.GuildID, userID: payload.UserID},
	), nil
}

// HandleQueueJoinRequested puts a player in a lobby queue.
func (h *LadderHandlers) HandleQueueJoinRequested(ctx context.Context, payload *ladderevents.QueueJoinRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.QueuePlayer(ctx, payload.GuildID, payload.LobbyID, payload.UserID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.QueueJoinedV1,
		ladderevents.QueueJoinFailedV1,
		func(ids []string) any {
			return &ladderevents.QueuePayloadV1{GuildID: payload.GuildID, LobbyID: payload.LobbyID, UserIDs: ids}
		},
		target{guildID: payload.GuildID, lobbyID: payload.LobbyID, userID: payload.UserID},
	), nil
}

// HandleQueueListRequested lists a lobby queue.
func (h *LadderHandlers) HandleQueueListRequested(ctx context.Context, payload *ladderevents.LobbyRequestPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.ListQueue(ctx, payload.GuildID, payload.LobbyID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.QueueListedV1,
		ladderevents.QueueListFailedV1,
		func(ids []string) any {
			return &ladderevents.QueuePayloadV1{GuildID: payload.GuildID, LobbyID: payload.LobbyID, UserIDs: ids}
		},
		target{guildID: payload.GuildID, lobbyID: payload.LobbyID},
	), nil
}
