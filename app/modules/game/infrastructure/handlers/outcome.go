package gamehandlers

import (
	"context"

	gameservice "github.com/Black-And-White-Club/ladder-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain/events"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
)

// HandleOutcomeSubmitRequested applies a moderator result.
func (h *GameHandlers) HandleOutcomeSubmitRequested(ctx context.Context, payload *gameevents.OutcomeSubmitRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.SubmitOutcome(ctx, payload.Ref, payload.WinningTeam, payload.Comment, payload.Submitter)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		gameevents.OutcomeSubmitSucceededV1,
		gameevents.OutcomeSubmitFailedV1,
		func(s *gameservice.Settlement) any {
			return &gameevents.OutcomeSettledPayloadV1{Game: s.Game, Winners: s.Winners, Losers: s.Losers}
		},
		failure{ref: refPtr(payload.Ref), userID: payload.Submitter},
	), nil
}

// HandleGameUndoRequested reverts a decided game.
func (h *GameHandlers) HandleGameUndoRequested(ctx context.Context, payload *gameevents.GameUndoRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.Undo(ctx, payload.Ref)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		gameevents.GameUndoSucceededV1,
		gameevents.GameUndoFailedV1,
		func(u *gameservice.UndoResult) any {
			return &gameevents.GameUndonePayloadV1{Game: u.Game, Reverted: u.Reverted, Skipped: u.Skipped}
		},
		failure{ref: refPtr(payload.Ref), userID: payload.Submitter},
	), nil
}

func closed(g *gamedomain.Game) any {
	return &gameevents.GameClosedPayloadV1{Game: *g}
}

// HandleGameCancelRequested cancels an open game.
func (h *GameHandlers) HandleGameCancelRequested(ctx context.Context, payload *gameevents.GameClosureRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.Cancel(ctx, payload.Ref, payload.Comment, payload.Submitter)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		gameevents.GameCancelSucceededV1,
		gameevents.GameCancelFailedV1,
		closed,
		failure{ref: refPtr(payload.Ref), userID: payload.Submitter},
	), nil
}

// HandleGameDrawRequested closes an undecided game as a draw.
func (h *GameHandlers) HandleGameDrawRequested(ctx context.Context, payload *gameevents.GameClosureRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.Draw(ctx, payload.Ref, payload.Comment, payload.Submitter)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		gameevents.GameDrawSucceededV1,
		gameevents.GameDrawFailedV1,
		closed,
		failure{ref: refPtr(payload.Ref), userID: payload.Submitter},
	), nil
}

// HandleGameDeleteRequested removes a game from history.
func (h *GameHandlers) HandleGameDeleteRequested(ctx context.Context, payload *gameevents.GameDeleteRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.DeleteGame(ctx, payload.Ref)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		gameevents.GameDeleteSucceededV1,
		gameevents.GameDeleteFailedV1,
		func(ref *gamedomain.GameRef) any {
			return &gameevents.GameDeletedPayloadV1{Ref: *ref}
		},
		failure{ref: refPtr(payload.Ref)},
	), nil
}
