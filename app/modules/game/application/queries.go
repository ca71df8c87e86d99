package gameservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
	"github.com/uptrace/bun"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// GetGame returns a game with its roster, votes and current tally.
func (s *GameService) GetGame(ctx context.Context, ref gamedomain.GameRef) (GameInfoResult, error) {
	return withTelemetry(s, ctx, "GetGame", ref.String(), func(ctx context.Context) (GameInfoResult, error) {
		row, err := s.repo.GetGame(ctx, nil, ref)
		if err != nil {
			if errors.Is(err, gamedb.ErrNotFound) {
				return reject[*GameInfo](gamedomain.ErrGameNotFound), nil
			}
			return GameInfoResult{}, fmt.Errorf("failed to load game: %w", err)
		}
		return s.gameInfo(ctx, nil, row)
	})
}

// LatestGame returns the newest game of a lobby.
func (s *GameService) LatestGame(ctx context.Context, guildID, lobbyID string) (GameInfoResult, error) {
	return withTelemetry(s, ctx, "LatestGame", guildID+"/"+lobbyID, func(ctx context.Context) (GameInfoResult, error) {
		row, err := s.repo.LatestGame(ctx, nil, guildID, lobbyID)
		if err != nil {
			if errors.Is(err, gamedb.ErrNotFound) {
				return reject[*GameInfo](gamedomain.ErrNoGames), nil
			}
			return GameInfoResult{}, fmt.Errorf("failed to load latest game: %w", err)
		}
		return s.gameInfo(ctx, nil, row)
	})
}

func (s *GameService) gameInfo(ctx context.Context, db bun.IDB, row *gamedb.Game) (GameInfoResult, error) {
	ref := row.Ref()
	roster, err := s.loadRoster(ctx, db, ref)
	if err != nil {
		return GameInfoResult{}, err
	}
	voteRows, err := s.repo.ListVotes(ctx, db, ref)
	if err != nil {
		return GameInfoResult{}, fmt.Errorf("failed to load votes: %w", err)
	}
	votes := domainVotes(voteRows)

	return results.SuccessResult[*GameInfo, error](&GameInfo{
		Game:   row.ToDomain(),
		Roster: roster,
		Votes:  votes,
		Tally:  gamedomain.TallyVotes(votes, roster),
	}), nil
}

// ListGames returns the newest games of a lobby. limit is clamped to 1..100; zero means 100.
func (s *GameService) ListGames(ctx context.Context, guildID, lobbyID string, limit int) (GameListResult, error) {
	return withTelemetry(s, ctx, "ListGames", guildID+"/"+lobbyID, func(ctx context.Context) (GameListResult, error) {
		rows, err := s.repo.ListGames(ctx, nil, guildID, lobbyID, clampLimit(limit))
		if err != nil {
			return GameListResult{}, fmt.Errorf("failed to list games: %w", err)
		}
		games := make([]gamedomain.Game, len(rows))
		for i := range rows {
			games[i] = rows[i].ToDomain()
		}
		return results.SuccessResult[[]gamedomain.Game, error](games), nil
	})
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}

// VoteTypes lists the values CastVote accepts.
func (s *GameService) VoteTypes() []gamedomain.VoteValue {
	return gamedomain.VoteValues()
}
