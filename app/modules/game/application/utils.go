package gameservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/repositories"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// lockGame loads the game row FOR UPDATE. A missing game is a rejection, not an error.
func (s *GameService) lockGame(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) (*gamedb.Game, *gamedomain.RejectionError, error) {
	game, err := s.repo.GetGameForUpdate(ctx, db, ref)
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return nil, gamedomain.ErrGameNotFound, nil
		}
		return nil, nil, fmt.Errorf("failed to load game: %w", err)
	}
	return game, nil, nil
}

// loadRoster resolves both teams through the roster provider.
func (s *GameService) loadRoster(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) (gamedomain.Roster, error) {
	team1, err := s.repo.GetTeam(ctx, db, ref, gamedomain.Team1)
	if err != nil {
		return gamedomain.Roster{}, fmt.Errorf("failed to load team 1: %w", err)
	}
	team2, err := s.repo.GetTeam(ctx, db, ref, gamedomain.Team2)
	if err != nil {
		return gamedomain.Roster{}, fmt.Errorf("failed to load team 2: %w", err)
	}
	return gamedomain.Roster{Team1: team1, Team2: team2}, nil
}

// loadCompetition returns the guild policy, falling back to the configured defaults.
func (s *GameService) loadCompetition(ctx context.Context, db bun.IDB, guildID string) (gamedomain.Competition, error) {
	comp, err := s.ladder.GetCompetition(ctx, db, guildID)
	if err != nil {
		if errors.Is(err, ladderdb.ErrNotFound) {
			out := s.defaults
			out.GuildID = guildID
			return out, nil
		}
		return gamedomain.Competition{}, fmt.Errorf("failed to load competition: %w", err)
	}
	return comp.ToDomain(), nil
}

// loadScoringContext reads the lobby, competition and rank table a settlement needs.
func (s *GameService) loadScoringContext(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) (gamedomain.ScoringContext, *gamedomain.RejectionError, error) {
	lobby, err := s.ladder.GetLobby(ctx, db, ref.GuildID, ref.LobbyID)
	if err != nil {
		if errors.Is(err, ladderdb.ErrNotFound) {
			return gamedomain.ScoringContext{}, gamedomain.ErrLobbyNotFound, nil
		}
		return gamedomain.ScoringContext{}, nil, fmt.Errorf("failed to load lobby: %w", err)
	}

	comp, err := s.loadCompetition(ctx, db, ref.GuildID)
	if err != nil {
		return gamedomain.ScoringContext{}, nil, err
	}

	rows, err := s.ladder.ListRanks(ctx, db, ref.GuildID)
	if err != nil {
		return gamedomain.ScoringContext{}, nil, fmt.Errorf("failed to load ranks: %w", err)
	}
	ranks := make([]gamedomain.Rank, len(rows))
	for i := range rows {
		ranks[i] = rows[i].ToDomain()
	}

	return gamedomain.ScoringContext{
		Lobby:       lobby.ToDomain(),
		Competition: comp,
		Ranks:       ranks,
	}, nil, nil
}

// lockPlayers loads and locks the listed players as domain values.
func (s *GameService) lockPlayers(ctx context.Context, db bun.IDB, guildID string, userIDs []string) (map[string]gamedomain.Player, error) {
	rows, err := s.ladder.GetPlayersForUpdate(ctx, db, guildID, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	out := make(map[string]gamedomain.Player, len(rows))
	for id, row := range rows {
		out[id] = row.ToDomain()
	}
	return out, nil
}

// savePlayers persists player counters.
func (s *GameService) savePlayers(ctx context.Context, db bun.IDB, players []gamedomain.Player) error {
	if len(players) == 0 {
		return nil
	}
	rows := make([]*ladderdb.Player, len(players))
	for i, p := range players {
		rows[i] = ladderdb.PlayerFromDomain(p)
	}
	if err := s.ladder.UpdatePlayers(ctx, db, rows); err != nil {
		return fmt.Errorf("failed to save players: %w", err)
	}
	return nil
}

// saveGame writes the domain game back to its row.
func (s *GameService) saveGame(ctx context.Context, db bun.IDB, row *gamedb.Game, game gamedomain.Game) error {
	row.Apply(game)
	if err := s.repo.UpdateGame(ctx, db, row); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func domainVotes(rows []gamedb.Vote) []gamedomain.Vote {
	out := make([]gamedomain.Vote, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}
