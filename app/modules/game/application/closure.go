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

// Cancel closes an undecided or picking game without touching any player.
func (s *GameService) Cancel(ctx context.Context, ref gamedomain.GameRef, comment, submitter string) (GameResult, error) {
	return withTelemetry(s, ctx, "Cancel", ref.String(), func(ctx context.Context) (GameResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (GameResult, error) {
			row, rej, err := s.lockGame(ctx, db, ref)
			if err != nil {
				return GameResult{}, err
			}
			if rej != nil {
				return reject[*gamedomain.Game](rej), nil
			}
			if rej := gamedomain.CheckCancel(row.ToDomain()); rej != nil {
				return reject[*gamedomain.Game](rej), nil
			}

			game, err := s.cancel(ctx, db, row, comment, submitter)
			if err != nil {
				return GameResult{}, err
			}
			return results.SuccessResult[*gamedomain.Game, error](game), nil
		})
	})
}

func (s *GameService) cancel(ctx context.Context, db bun.IDB, row *gamedb.Game, comment, submitter string) (*gamedomain.Game, error) {
	game := row.ToDomain()
	wasPicking := game.State == gamedomain.StatePicking

	game.Cancel(comment, submitter)
	if err := s.saveGame(ctx, db, row, game); err != nil {
		return nil, err
	}

	if wasPicking {
		n, err := s.ladder.ClearQueue(ctx, db, row.GuildID, row.LobbyID)
		if err != nil {
			return nil, fmt.Errorf("failed to clear lobby queue: %w", err)
		}
		s.logger.InfoContext(ctx, "Cleared lobby queue of canceled picking game",
			attr.ExtractCorrelationID(ctx),
			attr.String("game", row.Ref().String()),
			attr.Int("removed", n),
		)
	}

	out := row.ToDomain()
	return &out, nil
}

// Draw closes an undecided game as a draw and counts a draw for every registered participant.
func (s *GameService) Draw(ctx context.Context, ref gamedomain.GameRef, comment, submitter string) (GameResult, error) {
	return withTelemetry(s, ctx, "Draw", ref.String(), func(ctx context.Context) (GameResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (GameResult, error) {
			row, rej, err := s.lockGame(ctx, db, ref)
			if err != nil {
				return GameResult{}, err
			}
			if rej != nil {
				return reject[*gamedomain.Game](rej), nil
			}
			if rej := gamedomain.CheckDraw(row.ToDomain()); rej != nil {
				return reject[*gamedomain.Game](rej), nil
			}

			game, err := s.draw(ctx, db, row, comment, submitter)
			if err != nil {
				return GameResult{}, err
			}
			return results.SuccessResult[*gamedomain.Game, error](game), nil
		})
	})
}

func (s *GameService) draw(ctx context.Context, db bun.IDB, row *gamedb.Game, comment, submitter string) (*gamedomain.Game, error) {
	ref := row.Ref()
	roster, err := s.loadRoster(ctx, db, ref)
	if err != nil {
		return nil, err
	}
	players, err := s.lockPlayers(ctx, db, ref.GuildID, roster.Members())
	if err != nil {
		return nil, err
	}

	drawn := make([]gamedomain.Player, 0, len(players))
	for _, userID := range roster.Members() {
		if p, ok := players[userID]; ok {
			drawn = append(drawn, gamedomain.ApplyDraw(p))
		}
	}
	if err := s.savePlayers(ctx, db, drawn); err != nil {
		return nil, err
	}

	game := row.ToDomain()
	game.Draw(comment, submitter)
	if err := s.saveGame(ctx, db, row, game); err != nil {
		return nil, err
	}
	out := row.ToDomain()
	return &out, nil
}
