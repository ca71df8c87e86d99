package gameservice

import (
	"context"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
	"github.com/uptrace/bun"
)

// Undo reverses the settlement of a decided game from its score updates and reopens it.
func (s *GameService) Undo(ctx context.Context, ref gamedomain.GameRef) (UndoOpResult, error) {
	return withTelemetry(s, ctx, "Undo", ref.String(), func(ctx context.Context) (UndoOpResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (UndoOpResult, error) {
			row, rej, err := s.lockGame(ctx, db, ref)
			if err != nil {
				return UndoOpResult{}, err
			}
			if rej != nil {
				return reject[*UndoResult](rej), nil
			}
			if rej := gamedomain.CheckUndo(row.ToDomain()); rej != nil {
				return reject[*UndoResult](rej), nil
			}

			updates, err := s.repo.ListScoreUpdates(ctx, db, ref)
			if err != nil {
				return UndoOpResult{}, fmt.Errorf("failed to load score updates: %w", err)
			}

			comp, err := s.loadCompetition(ctx, db, ref.GuildID)
			if err != nil {
				return UndoOpResult{}, err
			}

			userIDs := make([]string, len(updates))
			for i := range updates {
				userIDs[i] = updates[i].UserID
			}
			players, err := s.lockPlayers(ctx, db, ref.GuildID, userIDs)
			if err != nil {
				return UndoOpResult{}, err
			}

			out := &UndoResult{}
			for _, u := range updates {
				// Each audit row is removed even when its player has left the ladder.
				if err := s.repo.DeleteScoreUpdate(ctx, db, ref, u.UserID); err != nil {
					return UndoOpResult{}, fmt.Errorf("failed to delete score update for %s: %w", u.UserID, err)
				}
				p, ok := players[u.UserID]
				if !ok {
					out.Skipped = append(out.Skipped, u.UserID)
					continue
				}
				out.Reverted = append(out.Reverted, gamedomain.Unsettle(p, u.ToDomain(), comp.AllowNegativeScore))
			}

			if err := s.savePlayers(ctx, db, out.Reverted); err != nil {
				return UndoOpResult{}, err
			}

			game := row.ToDomain()
			game.Reopen()
			if err := s.saveGame(ctx, db, row, game); err != nil {
				return UndoOpResult{}, err
			}
			out.Game = row.ToDomain()

			if len(out.Skipped) > 0 {
				s.logger.InfoContext(ctx, "Undo skipped players that are no longer registered",
					attr.ExtractCorrelationID(ctx),
					attr.String("game", ref.String()),
					attr.Any("user_ids", out.Skipped),
				)
			}

			return results.SuccessResult[*UndoResult, error](out), nil
		})
	})
}
