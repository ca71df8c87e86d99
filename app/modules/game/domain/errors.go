package gamedomain

import "errors"

// Rejection kinds. Every RejectionError unwraps to exactly one of these.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrAlreadyLocked   = errors.New("already locked")
	ErrInvalidArgument = errors.New("invalid argument")
)

// RejectionError is a domain refusal detected before any mutation.
type RejectionError struct {
	Kind   error
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Kind.Error() + ": " + e.Reason
}

func (e *RejectionError) Unwrap() error {
	return e.Kind
}

// Reject builds a RejectionError of the given kind.
func Reject(kind error, reason string) *RejectionError {
	return &RejectionError{Kind: kind, Reason: reason}
}

var (
	ErrGameNotFound   = Reject(ErrNotFound, "game not found")
	ErrLobbyNotFound  = Reject(ErrNotFound, "lobby not found")
	ErrPlayerNotFound = Reject(ErrNotFound, "player not registered")
	ErrNoGames        = Reject(ErrNotFound, "lobby has no games yet")

	ErrAlreadyResolved = Reject(ErrInvalidState, "game already has a result, undo it first")
	ErrDecideState     = Reject(ErrInvalidState, "only undecided games can be decided")
	ErrDrawState       = Reject(ErrInvalidState, "only undecided games can be drawn")
	ErrCancelState     = Reject(ErrInvalidState, "only undecided or picking games can be canceled")
	ErrUndoState       = Reject(ErrInvalidState, "only decided games can be undone")
	ErrVoteState       = Reject(ErrInvalidState, "votes are only accepted while the game is undecided")
	ErrPickingState    = Reject(ErrInvalidState, "teams are already picked for this game")

	ErrVoteLocked    = Reject(ErrAlreadyLocked, "voting finished without agreement, a moderator must decide")
	ErrNotOnRoster   = Reject(ErrUnauthorized, "only players of this game can vote")
	ErrAlreadyVoted  = Reject(ErrUnauthorized, "you have already voted on this game")
	ErrInvalidTeam   = Reject(ErrInvalidArgument, "winning team must be team 1 or team 2")
	ErrNumericVote   = Reject(ErrInvalidArgument, "vote for your own result (win, lose, draw or cancel), not a team number")
	ErrUnknownVote   = Reject(ErrInvalidArgument, "unknown vote, expected win, lose, draw or cancel")
	ErrEmptyTeam     = Reject(ErrInvalidArgument, "both teams need at least one player")
	ErrDuplicateSlot = Reject(ErrInvalidArgument, "a player cannot appear twice in one game")
)

// AsRejection extracts a RejectionError from err.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
