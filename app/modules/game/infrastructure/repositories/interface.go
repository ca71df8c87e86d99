package gamedb

import (
	"context"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	"github.com/uptrace/bun"
)

// RosterProvider resolves the members of one team of a game.
type RosterProvider interface {
	GetTeam(ctx context.Context, db bun.IDB, ref gamedomain.GameRef, team gamedomain.TeamSelector) ([]string, error)
}

// Repository defines the contract for game persistence.
// A nil db means the repository's own connection.
//
// Error semantics:
//   - ErrNotFound: Record does not exist
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows
//   - Other errors: Infrastructure failures (DB connection, query errors)
type Repository interface {
	RosterProvider

	InsertGame(ctx context.Context, db bun.IDB, game *Game) error
	GetGame(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) (*Game, error)
	// GetGameForUpdate loads the game and holds its row lock until the transaction ends.
	GetGameForUpdate(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) (*Game, error)
	LatestGame(ctx context.Context, db bun.IDB, guildID, lobbyID string) (*Game, error)
	// ListGames returns up to limit games of a lobby, newest first.
	ListGames(ctx context.Context, db bun.IDB, guildID, lobbyID string, limit int) ([]Game, error)
	UpdateGame(ctx context.Context, db bun.IDB, game *Game) error
	// DeleteGame removes the game with its roster, votes and score updates.
	DeleteGame(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) error

	InsertRoster(ctx context.Context, db bun.IDB, rows []*GameTeamPlayer) error
	DeleteRoster(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) error

	InsertVote(ctx context.Context, db bun.IDB, vote *Vote) error
	ListVotes(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) ([]Vote, error)

	InsertScoreUpdates(ctx context.Context, db bun.IDB, updates []*ScoreUpdate) error
	ListScoreUpdates(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) ([]ScoreUpdate, error)
	DeleteScoreUpdate(ctx context.Context, db bun.IDB, ref gamedomain.GameRef, userID string) error
}
