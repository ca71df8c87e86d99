package gamehandlers

import (
	"context"

	gameservice "github.com/Black-And-White-Club/ladder-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain/events"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
)

func recorded(info *gameservice.GameInfo) any {
	return &gameevents.GameRecordedPayloadV1{Game: info.Game, Roster: info.Roster}
}

// HandleGameRecordRequested registers a game whose teams are formed or being picked.
func (h *GameHandlers) HandleGameRecordRequested(ctx context.Context, payload *gameevents.GameRecordRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	roster := gamedomain.Roster{Team1: payload.Team1, Team2: payload.Team2}
	result, err := h.service.RecordGame(ctx, payload.GuildID, payload.LobbyID, roster, payload.Picking)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		gameevents.GameRecordSucceededV1,
		gameevents.GameRecordFailedV1,
		recorded,
		failure{guildID: payload.GuildID},
	), nil
}

// HandlePickingFinishRequested stores the final teams of a picking game.
func (h *GameHandlers) HandlePickingFinishRequested(ctx context.Context, payload *gameevents.PickingFinishRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	roster := gamedomain.Roster{Team1: payload.Team1, Team2: payload.Team2}
	result, err := h.service.FinishPicking(ctx, payload.Ref, roster)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		gameevents.PickingFinishSucceededV1,
		gameevents.PickingFinishFailedV1,
		recorded,
		failure{ref: refPtr(payload.Ref)},
	), nil
}
