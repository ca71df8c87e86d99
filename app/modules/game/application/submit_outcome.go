package gameservice

import (
	"context"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
	"github.com/uptrace/bun"
)

// SubmitOutcome decides a game by moderator authority and settles both teams.
func (s *GameService) SubmitOutcome(ctx context.Context, ref gamedomain.GameRef, winner gamedomain.TeamSelector, comment, submitter string) (SettlementResult, error) {
	return withTelemetry(s, ctx, "SubmitOutcome", ref.String(), func(ctx context.Context) (SettlementResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (SettlementResult, error) {
			sc, rej, err := s.loadScoringContext(ctx, db, ref)
			if err != nil {
				return SettlementResult{}, err
			}
			if rej != nil {
				return reject[*Settlement](rej), nil
			}

			row, rej, err := s.lockGame(ctx, db, ref)
			if err != nil {
				return SettlementResult{}, err
			}
			if rej != nil {
				return reject[*Settlement](rej), nil
			}

			if rej := gamedomain.CheckDecide(row.ToDomain(), winner); rej != nil {
				return reject[*Settlement](rej), nil
			}

			settlement, err := s.decide(ctx, db, row, sc, winner, comment, submitter)
			if err != nil {
				return SettlementResult{}, err
			}
			return results.SuccessResult[*Settlement, error](settlement), nil
		})
	})
}

// decide settles both rosters, writes one score update per settled player and marks the game decided.
// The caller has locked the game and validated the transition.
func (s *GameService) decide(
	ctx context.Context,
	db bun.IDB,
	row *gamedb.Game,
	sc gamedomain.ScoringContext,
	winner gamedomain.TeamSelector,
	comment, submitter string,
) (*Settlement, error) {
	ref := row.Ref()

	roster, err := s.loadRoster(ctx, db, ref)
	if err != nil {
		return nil, err
	}

	players, err := s.lockPlayers(ctx, db, ref.GuildID, roster.Members())
	if err != nil {
		return nil, err
	}

	winners := gamedomain.SettleTeam(roster.Team(winner), players, true, sc)
	losers := gamedomain.SettleTeam(roster.Team(winner.Opponent()), players, false, sc)

	settled := make([]gamedomain.Player, 0, len(winners)+len(losers))
	updates := make([]*gamedb.ScoreUpdate, 0, len(winners)+len(losers))
	for _, group := range [][]gamedomain.PlayerSettlement{winners, losers} {
		for _, ps := range group {
			settled = append(settled, ps.Player)
			updates = append(updates, gamedb.ScoreUpdateFromDomain(ps.ScoreUpdate(ref)))
		}
	}

	if err := s.savePlayers(ctx, db, settled); err != nil {
		return nil, err
	}
	if err := s.repo.InsertScoreUpdates(ctx, db, updates); err != nil {
		return nil, fmt.Errorf("failed to write score updates: %w", err)
	}

	game := row.ToDomain()
	game.Decide(winner, comment, submitter)
	if err := s.saveGame(ctx, db, row, game); err != nil {
		return nil, err
	}

	s.recordSettlementMetrics(ctx, winners, true)
	s.recordSettlementMetrics(ctx, losers, false)

	if skipped := roster.Size() - len(settled); skipped > 0 {
		s.logger.InfoContext(ctx, "Skipped unregistered players during settlement",
			attr.ExtractCorrelationID(ctx),
			attr.String("game", ref.String()),
			attr.Int("skipped", skipped),
		)
	}

	return &Settlement{
		Game:    row.ToDomain(),
		Winners: winners,
		Losers:  losers,
	}, nil
}

func (s *GameService) recordSettlementMetrics(ctx context.Context, settled []gamedomain.PlayerSettlement, won bool) {
	for _, ps := range settled {
		s.metrics.RecordPointsApplied(ctx, won, ps.Delta)
		if ps.Change != gamedomain.RankChangeNone {
			s.metrics.RecordRankChange(ctx, string(ps.Change))
		}
	}
}
