package gameservice

import (
	"context"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
	"github.com/uptrace/bun"
)

// voteComment is stored on games closed by player consensus.
const voteComment = "Decided by vote."

// CastVote records a participant's vote and resolves the game once a quorum agrees.
func (s *GameService) CastVote(ctx context.Context, ref gamedomain.GameRef, voterID, vote string) (VoteResult, error) {
	return withTelemetry(s, ctx, "CastVote", ref.String(), func(ctx context.Context) (VoteResult, error) {
		value, rej := gamedomain.ParseVoteValue(vote)
		if rej != nil {
			return reject[*gamedomain.VoteOutcome](rej), nil
		}

		result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (VoteResult, error) {
			sc, rej, err := s.loadScoringContext(ctx, db, ref)
			if err != nil {
				return VoteResult{}, err
			}
			if rej != nil {
				return reject[*gamedomain.VoteOutcome](rej), nil
			}

			row, rej, err := s.lockGame(ctx, db, ref)
			if err != nil {
				return VoteResult{}, err
			}
			if rej != nil {
				return reject[*gamedomain.VoteOutcome](rej), nil
			}

			roster, err := s.loadRoster(ctx, db, ref)
			if err != nil {
				return VoteResult{}, err
			}
			voteRows, err := s.repo.ListVotes(ctx, db, ref)
			if err != nil {
				return VoteResult{}, fmt.Errorf("failed to load votes: %w", err)
			}
			votes := domainVotes(voteRows)

			if rej := gamedomain.CheckVote(row.ToDomain(), roster, votes, voterID); rej != nil {
				return reject[*gamedomain.VoteOutcome](rej), nil
			}

			cast := gamedomain.Vote{Ref: ref, UserID: voterID, Value: value}
			if err := s.repo.InsertVote(ctx, db, gamedb.VoteFromDomain(cast)); err != nil {
				return VoteResult{}, fmt.Errorf("failed to record vote: %w", err)
			}
			votes = append(votes, cast)

			outcome, err := s.resolveVotes(ctx, db, row, sc, roster, votes, voterID)
			if err != nil {
				return VoteResult{}, err
			}
			return results.SuccessResult[*gamedomain.VoteOutcome, error](outcome), nil
		})
		if err == nil && result.IsSuccess() {
			s.metrics.RecordVoteCast(ctx, string((*result.Success).Kind))
		}
		return result, err
	})
}

// resolveVotes applies the transition the vote set calls for, if any.
func (s *GameService) resolveVotes(
	ctx context.Context,
	db bun.IDB,
	row *gamedb.Game,
	sc gamedomain.ScoringContext,
	roster gamedomain.Roster,
	votes []gamedomain.Vote,
	voterID string,
) (*gamedomain.VoteOutcome, error) {
	kind, team, tally := gamedomain.Resolution(votes, roster)
	outcome := &gamedomain.VoteOutcome{Kind: kind, WinningTeam: team, Tally: tally}

	switch kind {
	case gamedomain.VoteResolvedWin:
		settlement, err := s.decide(ctx, db, row, sc, *team, voteComment, voterID)
		if err != nil {
			return nil, err
		}
		outcome.Settlements = append(append(outcome.Settlements, settlement.Winners...), settlement.Losers...)
	case gamedomain.VoteResolvedDraw:
		if _, err := s.draw(ctx, db, row, voteComment, voterID); err != nil {
			return nil, err
		}
	case gamedomain.VoteResolvedCancel:
		if _, err := s.cancel(ctx, db, row, voteComment, voterID); err != nil {
			return nil, err
		}
	case gamedomain.VoteLockedForModerator:
		game := row.ToDomain()
		game.VoteComplete = true
		if err := s.saveGame(ctx, db, row, game); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}
