package gameservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/repositories"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
	"github.com/uptrace/bun"
)

// RecordGame takes the next game number of the lobby and stores the game with its roster.
// A picking game starts with the captains only and is opened by FinishPicking.
func (s *GameService) RecordGame(ctx context.Context, guildID, lobbyID string, roster gamedomain.Roster, picking bool) (GameInfoResult, error) {
	subject := guildID + "/" + lobbyID
	return withTelemetry(s, ctx, "RecordGame", subject, func(ctx context.Context) (GameInfoResult, error) {
		if rej := gamedomain.CheckRoster(roster); rej != nil {
			return reject[*GameInfo](rej), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (GameInfoResult, error) {
			gameID, err := s.ladder.NextGameNumber(ctx, db, guildID, lobbyID)
			if err != nil {
				if errors.Is(err, ladderdb.ErrNotFound) {
					return reject[*GameInfo](gamedomain.ErrLobbyNotFound), nil
				}
				return GameInfoResult{}, fmt.Errorf("failed to allocate game number: %w", err)
			}

			ref := gamedomain.GameRef{GuildID: guildID, LobbyID: lobbyID, GameID: gameID}
			state := gamedomain.StateUndecided
			if picking {
				state = gamedomain.StatePicking
			}

			row := &gamedb.Game{
				GuildID: ref.GuildID,
				LobbyID: ref.LobbyID,
				GameID:  ref.GameID,
				State:   state,
			}
			if err := s.repo.InsertGame(ctx, db, row); err != nil {
				return GameInfoResult{}, fmt.Errorf("failed to insert game: %w", err)
			}
			if err := s.repo.InsertRoster(ctx, db, gamedb.RosterRows(ref, roster)); err != nil {
				return GameInfoResult{}, fmt.Errorf("failed to insert roster: %w", err)
			}

			s.logger.InfoContext(ctx, "Game recorded",
				attr.ExtractCorrelationID(ctx),
				attr.Game(guildID, lobbyID, gameID),
				attr.String("state", string(state)),
				attr.Int("players", roster.Size()),
			)

			return results.SuccessResult[*GameInfo, error](&GameInfo{
				Game:   row.ToDomain(),
				Roster: roster,
				Votes:  []gamedomain.Vote{},
			}), nil
		})
	})
}

// FinishPicking stores the final teams of a picking game, opens it and empties the lobby queue.
func (s *GameService) FinishPicking(ctx context.Context, ref gamedomain.GameRef, roster gamedomain.Roster) (GameInfoResult, error) {
	return withTelemetry(s, ctx, "FinishPicking", ref.String(), func(ctx context.Context) (GameInfoResult, error) {
		if rej := gamedomain.CheckRoster(roster); rej != nil {
			return reject[*GameInfo](rej), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (GameInfoResult, error) {
			row, rej, err := s.lockGame(ctx, db, ref)
			if err != nil {
				return GameInfoResult{}, err
			}
			if rej != nil {
				return reject[*GameInfo](rej), nil
			}
			if rej := gamedomain.CheckFinishPicking(row.ToDomain()); rej != nil {
				return reject[*GameInfo](rej), nil
			}

			if err := s.repo.DeleteRoster(ctx, db, ref); err != nil {
				return GameInfoResult{}, fmt.Errorf("failed to replace roster: %w", err)
			}
			if err := s.repo.InsertRoster(ctx, db, gamedb.RosterRows(ref, roster)); err != nil {
				return GameInfoResult{}, fmt.Errorf("failed to replace roster: %w", err)
			}

			game := row.ToDomain()
			game.FinishPicking()
			if err := s.saveGame(ctx, db, row, game); err != nil {
				return GameInfoResult{}, err
			}

			if _, err := s.ladder.ClearQueue(ctx, db, ref.GuildID, ref.LobbyID); err != nil {
				return GameInfoResult{}, fmt.Errorf("failed to clear lobby queue: %w", err)
			}

			return results.SuccessResult[*GameInfo, error](&GameInfo{
				Game:   row.ToDomain(),
				Roster: roster,
				Votes:  []gamedomain.Vote{},
			}), nil
		})
	})
}
