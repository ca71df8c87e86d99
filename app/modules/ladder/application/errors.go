package ladderservice

import gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"

// Configuration refusals.
var (
	ErrMissingGuild      = gamedomain.Reject(gamedomain.ErrInvalidArgument, "guild id is required")
	ErrMissingRole       = gamedomain.Reject(gamedomain.ErrInvalidArgument, "rank needs a role")
	ErrNegativeModifier  = gamedomain.Reject(gamedomain.ErrInvalidArgument, "modifiers cannot be negative")
	ErrNegativeThreshold = gamedomain.Reject(gamedomain.ErrInvalidArgument, "rank threshold cannot be negative")
	ErrThresholdTaken    = gamedomain.Reject(gamedomain.ErrInvalidArgument, "another rank already uses this threshold")
	ErrRankNotFound      = gamedomain.Reject(gamedomain.ErrNotFound, "rank not found")

	ErrMissingLobby      = gamedomain.Reject(gamedomain.ErrInvalidArgument, "lobby id is required")
	ErrInvalidMultiplier = gamedomain.Reject(gamedomain.ErrInvalidArgument, "lobby multiplier must be greater than zero")
	ErrInvalidReduction  = gamedomain.Reject(gamedomain.ErrInvalidArgument, "reduction percent must be between 0 and 1")
	ErrNegativeHighLimit = gamedomain.Reject(gamedomain.ErrInvalidArgument, "high limit cannot be negative")

	ErrMissingUser       = gamedomain.Reject(gamedomain.ErrInvalidArgument, "user id is required")
	ErrAlreadyRegistered = gamedomain.Reject(gamedomain.ErrInvalidState, "player is already registered")
)
