package ladderdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for ladder configuration and player persistence.
// Every method accepts a bun.IDB so callers can pass a transaction; nil means the repository's own DB.
//
// Error semantics:
//   - ErrNotFound: Record does not exist
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows
//   - Other errors: Infrastructure failures (DB connection, query errors)
type Repository interface {
	GetCompetition(ctx context.Context, db bun.IDB, guildID string) (*Competition, error)
	UpsertCompetition(ctx context.Context, db bun.IDB, competition *Competition) error

	// ListRanks returns the guild's ranks ordered by threshold.
	ListRanks(ctx context.Context, db bun.IDB, guildID string) ([]Rank, error)
	UpsertRank(ctx context.Context, db bun.IDB, rank *Rank) error
	DeleteRank(ctx context.Context, db bun.IDB, guildID, roleID string) error

	GetLobby(ctx context.Context, db bun.IDB, guildID, lobbyID string) (*Lobby, error)
	UpsertLobby(ctx context.Context, db bun.IDB, lobby *Lobby) error
	// NextGameNumber increments the lobby game counter and returns the new value.
	NextGameNumber(ctx context.Context, db bun.IDB, guildID, lobbyID string) (int, error)

	GetPlayer(ctx context.Context, db bun.IDB, guildID, userID string) (*Player, error)
	// GetPlayersForUpdate loads and row-locks the listed players in user_id order. Unknown IDs are absent from the map.
	GetPlayersForUpdate(ctx context.Context, db bun.IDB, guildID string, userIDs []string) (map[string]*Player, error)
	// InsertPlayer creates the player unless it exists and reports whether a row was created.
	InsertPlayer(ctx context.Context, db bun.IDB, player *Player) (bool, error)
	UpdatePlayers(ctx context.Context, db bun.IDB, players []*Player) error

	EnqueuePlayer(ctx context.Context, db bun.IDB, entry *QueuedPlayer) error
	ListQueue(ctx context.Context, db bun.IDB, guildID, lobbyID string) ([]QueuedPlayer, error)
	// ClearQueue removes every queued player of the lobby and returns how many were removed.
	ClearQueue(ctx context.Context, db bun.IDB, guildID, lobbyID string) (int, error)
}
