package ladderservice

import (
	"context"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
)

type (
	CompetitionResult = results.OperationResult[*gamedomain.Competition, error]
	RankListResult    = results.OperationResult[[]gamedomain.Rank, error]
	RankResult        = results.OperationResult[*gamedomain.Rank, error]
	LobbyResult       = results.OperationResult[*gamedomain.Lobby, error]
	PlayerResult      = results.OperationResult[*gamedomain.Player, error]
	QueueResult       = results.OperationResult[[]string, error]
)

// LobbySettings is a partial lobby update. Nil fields are left alone.
type LobbySettings struct {
	Multiplier        *float64 `json:"multiplier,omitempty"`
	MultiplyLossValue *bool    `json:"multiply_loss_value,omitempty"`
	HighLimit         *int     `json:"high_limit,omitempty"`
	ClearHighLimit    bool     `json:"clear_high_limit,omitempty"`
	ReductionPercent  *float64 `json:"reduction_percent,omitempty"`
}

// Service defines the contract for the guild configuration the scoring core reads.
// Refusals are Failure results carrying a *gamedomain.RejectionError.
type Service interface {
	// GetOrCreateCompetition returns the guild policy, creating it from the configured defaults.
	GetOrCreateCompetition(ctx context.Context, guildID string) (CompetitionResult, error)
	UpdateCompetition(ctx context.Context, competition gamedomain.Competition) (CompetitionResult, error)

	ListRanks(ctx context.Context, guildID string) (RankListResult, error)
	SaveRank(ctx context.Context, rank gamedomain.Rank) (RankResult, error)
	DeleteRank(ctx context.Context, guildID, roleID string) (RankResult, error)

	// SaveLobby creates or updates a lobby. Unset settings keep their current value,
	// or the configured default for a new lobby. The game counter is preserved.
	SaveLobby(ctx context.Context, guildID, lobbyID string, settings LobbySettings) (LobbyResult, error)
	GetLobby(ctx context.Context, guildID, lobbyID string) (LobbyResult, error)

	RegisterPlayer(ctx context.Context, guildID, userID string) (PlayerResult, error)
	GetPlayer(ctx context.Context, guildID, userID string) (PlayerResult, error)

	// QueuePlayer adds a registered player to a lobby queue and returns the queue.
	QueuePlayer(ctx context.Context, guildID, lobbyID, userID string) (QueueResult, error)
	ListQueue(ctx context.Context, guildID, lobbyID string) (QueueResult, error)
}
