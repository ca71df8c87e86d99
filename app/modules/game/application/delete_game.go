package gameservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
	"github.com/uptrace/bun"
)

// DeleteGame removes a game from history in any state. Player totals are left as they are.
func (s *GameService) DeleteGame(ctx context.Context, ref gamedomain.GameRef) (DeleteResult, error) {
	return withTelemetry(s, ctx, "DeleteGame", ref.String(), func(ctx context.Context) (DeleteResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (DeleteResult, error) {
			row, rej, err := s.lockGame(ctx, db, ref)
			if err != nil {
				return DeleteResult{}, err
			}
			if rej != nil {
				return reject[*gamedomain.GameRef](rej), nil
			}
			if row.State == gamedomain.StateDecided {
				s.logger.WarnContext(ctx, "Deleting decided game, player points are kept",
					attr.ExtractCorrelationID(ctx),
					attr.String("game", ref.String()),
				)
			}

			if err := s.repo.DeleteGame(ctx, db, ref); err != nil {
				if errors.Is(err, gamedb.ErrNoRowsAffected) {
					return reject[*gamedomain.GameRef](gamedomain.ErrGameNotFound), nil
				}
				return DeleteResult{}, fmt.Errorf("failed to delete game: %w", err)
			}
			out := ref
			return results.SuccessResult[*gamedomain.GameRef, error](&out), nil
		})
	})
}
