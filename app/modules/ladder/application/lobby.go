package ladderservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/uptrace/bun"
)

// SaveLobby merges settings into the stored lobby, or into the defaults when the lobby is new.
func (s *LadderService) SaveLobby(ctx context.Context, guildID, lobbyID string, settings LobbySettings) (LobbyResult, error) {
	return withTelemetry(s, ctx, "SaveLobby", guildID, func(ctx context.Context) (LobbyResult, error) {
		switch {
		case guildID == "":
			return reject[*gamedomain.Lobby](ErrMissingGuild), nil
		case lobbyID == "":
			return reject[*gamedomain.Lobby](ErrMissingLobby), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (LobbyResult, error) {
			lobby := s.lobby
			lobby.GuildID, lobby.LobbyID = guildID, lobbyID
			lobby.CurrentGameCount = 0

			row, err := s.repo.GetLobby(ctx, db, guildID, lobbyID)
			switch {
			case err == nil:
				lobby = row.ToDomain()
			case errors.Is(err, ladderdb.ErrNotFound):
				s.logger.InfoContext(ctx, "Creating lobby",
					attr.String("guild_id", guildID),
					attr.String("lobby_id", lobbyID),
				)
			default:
				return LobbyResult{}, fmt.Errorf("failed to load lobby: %w", err)
			}

			settings.applyTo(&lobby)
			if rej := checkLobby(lobby); rej != nil {
				return reject[*gamedomain.Lobby](rej), nil
			}

			if err := s.repo.UpsertLobby(ctx, db, ladderdb.LobbyFromDomain(lobby)); err != nil {
				return LobbyResult{}, fmt.Errorf("failed to save lobby: %w", err)
			}
			return ok(&lobby), nil
		})
	})
}

// GetLobby returns a lobby's settings.
func (s *LadderService) GetLobby(ctx context.Context, guildID, lobbyID string) (LobbyResult, error) {
	return withTelemetry(s, ctx, "GetLobby", guildID, func(ctx context.Context) (LobbyResult, error) {
		row, err := s.repo.GetLobby(ctx, nil, guildID, lobbyID)
		if err != nil {
			if errors.Is(err, ladderdb.ErrNotFound) {
				return reject[*gamedomain.Lobby](gamedomain.ErrLobbyNotFound), nil
			}
			return LobbyResult{}, fmt.Errorf("failed to load lobby: %w", err)
		}
		lobby := row.ToDomain()
		return ok(&lobby), nil
	})
}

func (ls LobbySettings) applyTo(l *gamedomain.Lobby) {
	if ls.Multiplier != nil {
		l.Multiplier = *ls.Multiplier
	}
	if ls.MultiplyLossValue != nil {
		l.MultiplyLossValue = *ls.MultiplyLossValue
	}
	if ls.ReductionPercent != nil {
		l.ReductionPercent = *ls.ReductionPercent
	}
	if ls.ClearHighLimit {
		l.HighLimit = nil
	} else if ls.HighLimit != nil {
		limit := *ls.HighLimit
		l.HighLimit = &limit
	}
}

func checkLobby(l gamedomain.Lobby) *gamedomain.RejectionError {
	switch {
	case l.Multiplier <= 0:
		return ErrInvalidMultiplier
	case l.ReductionPercent < 0 || l.ReductionPercent > 1:
		return ErrInvalidReduction
	case l.HighLimit != nil && *l.HighLimit < 0:
		return ErrNegativeHighLimit
	}
	return nil
}
