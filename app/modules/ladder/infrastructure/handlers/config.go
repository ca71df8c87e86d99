package ladderhandlers

import (
	"context"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderservice "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/application"
	ladderevents "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/domain/events"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
)

func competitionPayload(c *gamedomain.Competition) any {
	return &ladderevents.CompetitionPayloadV1{Competition: *c}
}

func rankPayload(r *gamedomain.Rank) any {
	return &ladderevents.RankPayloadV1{Rank: *r}
}

func lobbyPayload(l *gamedomain.Lobby) any {
	return &ladderevents.LobbyPayloadV1{Lobby: *l}
}

// HandleCompetitionRetrieveRequested returns the guild policy, creating it on first use.
func (h *LadderHandlers) HandleCompetitionRetrieveRequested(ctx context.Context, payload *ladderevents.GuildRequestPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.GetOrCreateCompetition(ctx, payload.GuildID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.CompetitionRetrievedV1,
		ladderevents.CompetitionRetrieveFailedV1,
		competitionPayload,
		target{guildID: payload.GuildID},
	), nil
}

// HandleCompetitionUpdateRequested replaces the guild policy.
func (h *LadderHandlers) HandleCompetitionUpdateRequested(ctx context.Context, payload *ladderevents.CompetitionUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.UpdateCompetition(ctx, payload.Competition)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.CompetitionUpdatedV1,
		ladderevents.CompetitionUpdateFailedV1,
		competitionPayload,
		target{guildID: payload.Competition.GuildID},
	), nil
}

// HandleRankListRequested returns the rank table.
func (h *LadderHandlers) HandleRankListRequested(ctx context.Context, payload *ladderevents.GuildRequestPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.ListRanks(ctx, payload.GuildID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.RankListedV1,
		ladderevents.RankListFailedV1,
		func(ranks []gamedomain.Rank) any {
			return &ladderevents.RankListPayloadV1{GuildID: payload.GuildID, Ranks: ranks}
		},
		target{guildID: payload.GuildID},
	), nil
}

// HandleRankSaveRequested creates or moves a rank.
func (h *LadderHandlers) HandleRankSaveRequested(ctx context.Context, payload *ladderevents.RankSaveRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.SaveRank(ctx, payload.Rank)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.RankSavedV1,
		ladderevents.RankSaveFailedV1,
		rankPayload,
		target{guildID: payload.Rank.GuildID},
	), nil
}

// HandleRankDeleteRequested removes a rank.
func (h *LadderHandlers) HandleRankDeleteRequested(ctx context.Context, payload *ladderevents.RankDeleteRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.DeleteRank(ctx, payload.GuildID, payload.RoleID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.RankDeletedV1,
		ladderevents.RankDeleteFailedV1,
		rankPayload,
		target{guildID: payload.GuildID},
	), nil
}

// HandleLobbyRetrieveRequested returns lobby settings.
func (h *LadderHandlers) HandleLobbyRetrieveRequested(ctx context.Context, payload *ladderevents.LobbyRequestPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.GetLobby(ctx, payload.GuildID, payload.LobbyID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.LobbyRetrievedV1,
		ladderevents.LobbyRetrieveFailedV1,
		lobbyPayload,
		target{guildID: payload.GuildID, lobbyID: payload.LobbyID},
	), nil
}

// HandleLobbySaveRequested creates or updates lobby settings.
func (h *LadderHandlers) HandleLobbySaveRequested(ctx context.Context, payload *ladderevents.LobbySaveRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	settings := ladderservice.LobbySettings{
		Multiplier:        payload.Multiplier,
		MultiplyLossValue: payload.MultiplyLossValue,
		HighLimit:         payload.HighLimit,
		ClearHighLimit:    payload.ClearHighLimit,
		ReductionPercent:  payload.ReductionPercent,
	}
	result, err := h.service.SaveLobby(ctx, payload.GuildID, payload.LobbyID, settings)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		ladderevents.LobbySavedV1,
		ladderevents.LobbySaveFailedV1,
		lobbyPayload,
		target{guildID: payload.GuildID, lobbyID: payload.LobbyID},
	), nil
}
