package gameservice

import (
	"context"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
)

// Settlement is the outcome of deciding a game.
type Settlement struct {
	Game    gamedomain.Game               `json:"game"`
	Winners []gamedomain.PlayerSettlement `json:"winners"`
	Losers  []gamedomain.PlayerSettlement `json:"losers"`
}

// UndoResult lists the players restored by an undo and the audit rows whose player was gone.
type UndoResult struct {
	Game     gamedomain.Game     `json:"game"`
	Reverted []gamedomain.Player `json:"reverted"`
	Skipped  []string            `json:"skipped,omitempty"`
}

// GameInfo is a game with its roster and votes.
type GameInfo struct {
	Game   gamedomain.Game   `json:"game"`
	Roster gamedomain.Roster `json:"roster"`
	Votes  []gamedomain.Vote `json:"votes"`
	Tally  gamedomain.Tally  `json:"tally"`
}

type (
	SettlementResult = results.OperationResult[*Settlement, error]
	UndoOpResult     = results.OperationResult[*UndoResult, error]
	GameResult       = results.OperationResult[*gamedomain.Game, error]
	GameInfoResult   = results.OperationResult[*GameInfo, error]
	GameListResult   = results.OperationResult[[]gamedomain.Game, error]
	VoteResult       = results.OperationResult[*gamedomain.VoteOutcome, error]
	DeleteResult     = results.OperationResult[*gamedomain.GameRef, error]
)

// Service defines the contract for game outcome operations.
// Domain refusals come back as Failure results carrying a *gamedomain.RejectionError;
// a non-nil error means an infrastructure fault and the transaction was rolled back.
type Service interface {
	// RecordGame registers a new game for a lobby once teams are known.
	RecordGame(ctx context.Context, guildID, lobbyID string, roster gamedomain.Roster, picking bool) (GameInfoResult, error)
	// FinishPicking replaces the roster of a picking game and opens it for results.
	FinishPicking(ctx context.Context, ref gamedomain.GameRef, roster gamedomain.Roster) (GameInfoResult, error)

	SubmitOutcome(ctx context.Context, ref gamedomain.GameRef, winner gamedomain.TeamSelector, comment, submitter string) (SettlementResult, error)
	Undo(ctx context.Context, ref gamedomain.GameRef) (UndoOpResult, error)
	Cancel(ctx context.Context, ref gamedomain.GameRef, comment, submitter string) (GameResult, error)
	Draw(ctx context.Context, ref gamedomain.GameRef, comment, submitter string) (GameResult, error)
	CastVote(ctx context.Context, ref gamedomain.GameRef, voterID, vote string) (VoteResult, error)

	GetGame(ctx context.Context, ref gamedomain.GameRef) (GameInfoResult, error)
	LatestGame(ctx context.Context, guildID, lobbyID string) (GameInfoResult, error)
	ListGames(ctx context.Context, guildID, lobbyID string, limit int) (GameListResult, error)
	DeleteGame(ctx context.Context, ref gamedomain.GameRef) (DeleteResult, error)
	VoteTypes() []gamedomain.VoteValue
}
