package gamehandlers

import (
	"errors"
	"log/slog"

	gameservice "github.com/Black-And-White-Club/ladder-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain/events"
	"github.com/Black-And-White-Club/ladder-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
)

// GameHandlers implements the Handlers interface for game events.
type GameHandlers struct {
	service gameservice.Service
	logger  *slog.Logger
}

// NewGameHandlers creates a new GameHandlers instance.
func NewGameHandlers(service gameservice.Service, logger *slog.Logger) *GameHandlers {
	return &GameHandlers{
		service: service,
		logger:  logger,
	}
}

var errNilPayload = errors.New("payload cannot be nil")

// failure identifies the request a reply answers.
type failure struct {
	ref     *gamedomain.GameRef
	guildID string
	userID  string
}

func (f failure) guild() string {
	if f.ref != nil {
		return f.ref.GuildID
	}
	return f.guildID
}

// mapOperationResult converts a service OperationResult to handler Results.
func mapOperationResult[S any](
	result results.OperationResult[S, error],
	successTopic, failureTopic string,
	success func(S) any,
	f failure,
) []handlerwrapper.Result {
	if result.IsSuccess() {
		out := handlerwrapper.Result{Topic: successTopic, Payload: success(*result.Success)}
		if guildID := f.guild(); guildID != "" {
			out.Metadata = map[string]string{eventbus.GuildIDMetadataKey: guildID}
		}
		return []handlerwrapper.Result{out}
	}
	if result.IsFailure() {
		return []handlerwrapper.Result{{Topic: failureTopic, Payload: failurePayload(*result.Failure, f)}}
	}
	return nil
}

func failurePayload(err error, f failure) *gameevents.GameFailedPayloadV1 {
	return &gameevents.GameFailedPayloadV1{
		Ref:    f.ref,
		UserID: f.userID,
		Kind:   failureKind(err),
		Reason: failureReason(err),
	}
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, gamedomain.ErrNotFound):
		return "not_found"
	case errors.Is(err, gamedomain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, gamedomain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, gamedomain.ErrAlreadyLocked):
		return "already_locked"
	case errors.Is(err, gamedomain.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "internal"
	}
}

func failureReason(err error) string {
	if rej, ok := gamedomain.AsRejection(err); ok {
		return rej.Reason
	}
	return err.Error()
}

func refPtr(ref gamedomain.GameRef) *gamedomain.GameRef {
	return &ref
}
