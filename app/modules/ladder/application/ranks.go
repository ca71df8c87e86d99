package ladderservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ListRanks returns the guild's rank table ordered by threshold.
func (s *LadderService) ListRanks(ctx context.Context, guildID string) (RankListResult, error) {
	return withTelemetry(s, ctx, "ListRanks", guildID, func(ctx context.Context) (RankListResult, error) {
		ranks, err := s.listRanks(ctx, nil, guildID)
		if err != nil {
			return RankListResult{}, err
		}
		return ok(ranks), nil
	})
}

// SaveRank creates or updates the rank bound to a role. Two roles never share a threshold.
func (s *LadderService) SaveRank(ctx context.Context, rank gamedomain.Rank) (RankResult, error) {
	return withTelemetry(s, ctx, "SaveRank", rank.GuildID, func(ctx context.Context) (RankResult, error) {
		if rej := checkRank(rank); rej != nil {
			return reject[*gamedomain.Rank](rej), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RankResult, error) {
			existing, err := s.listRanks(ctx, db, rank.GuildID)
			if err != nil {
				return RankResult{}, err
			}
			for _, r := range existing {
				if r.Threshold == rank.Threshold && r.RoleID != rank.RoleID {
					return reject[*gamedomain.Rank](ErrThresholdTaken), nil
				}
			}

			if err := s.repo.UpsertRank(ctx, db, ladderdb.RankFromDomain(rank)); err != nil {
				return RankResult{}, fmt.Errorf("failed to save rank: %w", err)
			}
			return ok(&rank), nil
		})
	})
}

// DeleteRank removes the rank bound to a role.
func (s *LadderService) DeleteRank(ctx context.Context, guildID, roleID string) (RankResult, error) {
	return withTelemetry(s, ctx, "DeleteRank", guildID, func(ctx context.Context) (RankResult, error) {
		err := s.repo.DeleteRank(ctx, nil, guildID, roleID)
		if err != nil {
			if errors.Is(err, ladderdb.ErrNoRowsAffected) {
				return reject[*gamedomain.Rank](ErrRankNotFound), nil
			}
			return RankResult{}, fmt.Errorf("failed to delete rank: %w", err)
		}
		return ok(&gamedomain.Rank{GuildID: guildID, RoleID: roleID}), nil
	})
}

func (s *LadderService) listRanks(ctx context.Context, db bun.IDB, guildID string) ([]gamedomain.Rank, error) {
	rows, err := s.repo.ListRanks(ctx, db, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranks: %w", err)
	}
	ranks := make([]gamedomain.Rank, len(rows))
	for i := range rows {
		ranks[i] = rows[i].ToDomain()
	}
	return ranks, nil
}

func checkRank(r gamedomain.Rank) *gamedomain.RejectionError {
	switch {
	case r.GuildID == "":
		return ErrMissingGuild
	case r.RoleID == "":
		return ErrMissingRole
	case r.Threshold < 0:
		return ErrNegativeThreshold
	case r.WinModifier != nil && *r.WinModifier < 0,
		r.LossModifier != nil && *r.LossModifier < 0:
		return ErrNegativeModifier
	}
	return nil
}
