package ladderservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// GetOrCreateCompetition returns the guild policy, inserting the configured defaults on first use.
func (s *LadderService) GetOrCreateCompetition(ctx context.Context, guildID string) (CompetitionResult, error) {
	return withTelemetry(s, ctx, "GetOrCreateCompetition", guildID, func(ctx context.Context) (CompetitionResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (CompetitionResult, error) {
			if guildID == "" {
				return reject[*gamedomain.Competition](ErrMissingGuild), nil
			}

			row, err := s.repo.GetCompetition(ctx, db, guildID)
			if err == nil {
				comp := row.ToDomain()
				return ok(&comp), nil
			}
			if !errors.Is(err, ladderdb.ErrNotFound) {
				return CompetitionResult{}, fmt.Errorf("failed to load competition: %w", err)
			}

			comp := s.defaults
			comp.GuildID = guildID
			if err := s.repo.UpsertCompetition(ctx, db, ladderdb.CompetitionFromDomain(comp)); err != nil {
				return CompetitionResult{}, fmt.Errorf("failed to create competition: %w", err)
			}
			return ok(&comp), nil
		})
	})
}

// UpdateCompetition replaces the guild policy.
func (s *LadderService) UpdateCompetition(ctx context.Context, competition gamedomain.Competition) (CompetitionResult, error) {
	return withTelemetry(s, ctx, "UpdateCompetition", competition.GuildID, func(ctx context.Context) (CompetitionResult, error) {
		if rej := checkCompetition(competition); rej != nil {
			return reject[*gamedomain.Competition](rej), nil
		}
		if err := s.repo.UpsertCompetition(ctx, nil, ladderdb.CompetitionFromDomain(competition)); err != nil {
			return CompetitionResult{}, fmt.Errorf("failed to save competition: %w", err)
		}
		return ok(&competition), nil
	})
}

func checkCompetition(c gamedomain.Competition) *gamedomain.RejectionError {
	if c.GuildID == "" {
		return ErrMissingGuild
	}
	if c.DefaultWinModifier < 0 || c.DefaultLossModifier < 0 {
		return ErrNegativeModifier
	}
	return nil
}
