package ladderhandlers

import (
	"errors"
	"log/slog"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderservice "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/application"
	ladderevents "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/domain/events"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
)

// LadderHandlers implements the Handlers interface for ladder configuration events.
type LadderHandlers struct {
	service ladderservice.Service
	logger  *slog.Logger
}

// NewLadderHandlers creates a new LadderHandlers instance.
func NewLadderHandlers(service ladderservice.Service, logger *slog.Logger) *LadderHandlers {
	return &LadderHandlers{
		service: service,
		logger:  logger,
	}
}

var errNilPayload = errors.New("payload cannot be nil")

// target identifies the resource a failed reply is about.
type target struct {
	guildID string
	lobbyID string
	userID  string
}

// mapOperationResult converts a service OperationResult to handler Results.
func mapOperationResult[S any](
	result results.OperationResult[S, error],
	successTopic, failureTopic string,
	success func(S) any,
	t target,
) []handlerwrapper.Result {
	if result.IsSuccess() {
		return []handlerwrapper.Result{{Topic: successTopic, Payload: success(*result.Success)}}
	}
	if result.IsFailure() {
		err := *result.Failure
		payload := &ladderevents.LadderFailedPayloadV1{
			GuildID: t.guildID,
			LobbyID: t.lobbyID,
			UserID:  t.userID,
			Kind:    failureKind(err),
			Reason:  err.Error(),
		}
		if rej, ok := gamedomain.AsRejection(err); ok {
			payload.Reason = rej.Reason
		}
		return []handlerwrapper.Result{{Topic: failureTopic, Payload: payload}}
	}
	return nil
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, gamedomain.ErrNotFound):
		return "not_found"
	case errors.Is(err, gamedomain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, gamedomain.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "internal"
	}
}
