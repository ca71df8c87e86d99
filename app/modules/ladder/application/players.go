package ladderservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// RegisterPlayer adds a user to the guild ladder with zero points.
func (s *LadderService) RegisterPlayer(ctx context.Context, guildID, userID string) (PlayerResult, error) {
	return withTelemetry(s, ctx, "RegisterPlayer", guildID, func(ctx context.Context) (PlayerResult, error) {
		switch {
		case guildID == "":
			return reject[*gamedomain.Player](ErrMissingGuild), nil
		case userID == "":
			return reject[*gamedomain.Player](ErrMissingUser), nil
		}

		player := gamedomain.Player{GuildID: guildID, UserID: userID}
		created, err := s.repo.InsertPlayer(ctx, nil, ladderdb.PlayerFromDomain(player))
		if err != nil {
			return PlayerResult{}, fmt.Errorf("failed to register player: %w", err)
		}
		if !created {
			return reject[*gamedomain.Player](ErrAlreadyRegistered), nil
		}
		return ok(&player), nil
	})
}

// GetPlayer returns a player's points and record.
func (s *LadderService) GetPlayer(ctx context.Context, guildID, userID string) (PlayerResult, error) {
	return withTelemetry(s, ctx, "GetPlayer", guildID, func(ctx context.Context) (PlayerResult, error) {
		row, err := s.repo.GetPlayer(ctx, nil, guildID, userID)
		if err != nil {
			if errors.Is(err, ladderdb.ErrNotFound) {
				return reject[*gamedomain.Player](gamedomain.ErrPlayerNotFound), nil
			}
			return PlayerResult{}, fmt.Errorf("failed to load player: %w", err)
		}
		player := row.ToDomain()
		return ok(&player), nil
	})
}

// QueuePlayer puts a registered player in a lobby queue. Queueing twice is a no-op.
func (s *LadderService) QueuePlayer(ctx context.Context, guildID, lobbyID, userID string) (QueueResult, error) {
	return withTelemetry(s, ctx, "QueuePlayer", guildID, func(ctx context.Context) (QueueResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (QueueResult, error) {
			if _, err := s.repo.GetLobby(ctx, db, guildID, lobbyID); err != nil {
				if errors.Is(err, ladderdb.ErrNotFound) {
					return reject[[]string](gamedomain.ErrLobbyNotFound), nil
				}
				return QueueResult{}, fmt.Errorf("failed to load lobby: %w", err)
			}
			if _, err := s.repo.GetPlayer(ctx, db, guildID, userID); err != nil {
				if errors.Is(err, ladderdb.ErrNotFound) {
					return reject[[]string](gamedomain.ErrPlayerNotFound), nil
				}
				return QueueResult{}, fmt.Errorf("failed to load player: %w", err)
			}

			entry := &ladderdb.QueuedPlayer{GuildID: guildID, LobbyID: lobbyID, UserID: userID}
			if err := s.repo.EnqueuePlayer(ctx, db, entry); err != nil {
				return QueueResult{}, fmt.Errorf("failed to queue player: %w", err)
			}

			queue, err := s.queue(ctx, db, guildID, lobbyID)
			if err != nil {
				return QueueResult{}, err
			}
			return ok(queue), nil
		})
	})
}

// ListQueue returns the user IDs waiting in a lobby, oldest first.
func (s *LadderService) ListQueue(ctx context.Context, guildID, lobbyID string) (QueueResult, error) {
	return withTelemetry(s, ctx, "ListQueue", guildID, func(ctx context.Context) (QueueResult, error) {
		queue, err := s.queue(ctx, nil, guildID, lobbyID)
		if err != nil {
			return QueueResult{}, err
		}
		return ok(queue), nil
	})
}

func (s *LadderService) queue(ctx context.Context, db bun.IDB, guildID, lobbyID string) ([]string, error) {
	rows, err := s.repo.ListQueue(ctx, db, guildID, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}
	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].UserID
	}
	return ids, nil
}
