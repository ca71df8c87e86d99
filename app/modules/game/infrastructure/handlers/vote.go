package gamehandlers

import (
	"context"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain/events"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
)

// HandleVoteCastRequested records a player's vote.
func (h *GameHandlers) HandleVoteCastRequested(ctx context.Context, payload *gameevents.VoteCastRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errNilPayload
	}

	result, err := h.service.CastVote(ctx, payload.Ref, payload.UserID, payload.Vote)
	if err != nil {
		return nil, err
	}

	if result.IsSuccess() && (*result.Success).Kind == gamedomain.VoteLockedForModerator {
		h.logger.InfoContext(ctx, "Vote finished without agreement",
			attr.ExtractCorrelationID(ctx),
			attr.String("game", payload.Ref.String()),
		)
	}

	return mapOperationResult(result,
		gameevents.VoteCastSucceededV1,
		gameevents.VoteCastFailedV1,
		func(o *gamedomain.VoteOutcome) any {
			return &gameevents.VoteCastPayloadV1{Ref: payload.Ref, UserID: payload.UserID, Outcome: *o}
		},
		failure{ref: refPtr(payload.Ref), userID: payload.UserID},
	), nil
}
