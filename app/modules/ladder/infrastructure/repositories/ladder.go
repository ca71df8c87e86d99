package ladderdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/uptrace/bun"
)

// Impl implements Repository with bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new ladder repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) conn(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetCompetition retrieves the guild's competition settings.
func (r *Impl) GetCompetition(ctx context.Context, db bun.IDB, guildID string) (*Competition, error) {
	db = r.conn(db)
	competition := new(Competition)
	err := db.NewSelect().
		Model(competition).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ladderdb.GetCompetition: %w", err)
	}
	return competition, nil
}

// UpsertCompetition creates or replaces the guild's competition settings.
func (r *Impl) UpsertCompetition(ctx context.Context, db bun.IDB, competition *Competition) error {
	db = r.conn(db)
	_, err := db.NewInsert().
		Model(competition).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("default_win_modifier = EXCLUDED.default_win_modifier").
		Set("default_loss_modifier = EXCLUDED.default_loss_modifier").
		Set("allow_negative_score = EXCLUDED.allow_negative_score").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ladderdb.UpsertCompetition: %w", err)
	}
	return nil
}

// ListRanks returns the guild's ranks ordered by threshold.
func (r *Impl) ListRanks(ctx context.Context, db bun.IDB, guildID string) ([]Rank, error) {
	db = r.conn(db)
	var ranks []Rank
	err := db.NewSelect().
		Model(&ranks).
		Where("guild_id = ?", guildID).
		Order("threshold ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("ladderdb.ListRanks: %w", err)
	}
	return ranks, nil
}

// UpsertRank creates or replaces a rank keyed by role.
func (r *Impl) UpsertRank(ctx context.Context, db bun.IDB, rank *Rank) error {
	db = r.conn(db)
	_, err := db.NewInsert().
		Model(rank).
		On("CONFLICT (guild_id, role_id) DO UPDATE").
		Set("threshold = EXCLUDED.threshold").
		Set("win_modifier = EXCLUDED.win_modifier").
		Set("loss_modifier = EXCLUDED.loss_modifier").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ladderdb.UpsertRank: %w", err)
	}
	return nil
}

// DeleteRank removes a rank.
func (r *Impl) DeleteRank(ctx context.Context, db bun.IDB, guildID, roleID string) error {
	db = r.conn(db)
	res, err := db.NewDelete().
		Model((*Rank)(nil)).
		Where("guild_id = ?", guildID).
		Where("role_id = ?", roleID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ladderdb.DeleteRank: %w", err)
	}
	return requireRows(res, "ladderdb.DeleteRank")
}

// GetLobby retrieves a lobby.
func (r *Impl) GetLobby(ctx context.Context, db bun.IDB, guildID, lobbyID string) (*Lobby, error) {
	db = r.conn(db)
	lobby := new(Lobby)
	err := db.NewSelect().
		Model(lobby).
		Where("guild_id = ?", guildID).
		Where("lobby_id = ?", lobbyID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ladderdb.GetLobby: %w", err)
	}
	return lobby, nil
}

// UpsertLobby creates or replaces lobby settings. The game counter is never overwritten.
func (r *Impl) UpsertLobby(ctx context.Context, db bun.IDB, lobby *Lobby) error {
	db = r.conn(db)
	_, err := db.NewInsert().
		Model(lobby).
		On("CONFLICT (guild_id, lobby_id) DO UPDATE").
		Set("multiplier = EXCLUDED.multiplier").
		Set("multiply_loss_value = EXCLUDED.multiply_loss_value").
		Set("high_limit = EXCLUDED.high_limit").
		Set("reduction_percent = EXCLUDED.reduction_percent").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ladderdb.UpsertLobby: %w", err)
	}
	return nil
}

// NextGameNumber increments the lobby game counter and returns the new value.
func (r *Impl) NextGameNumber(ctx context.Context, db bun.IDB, guildID, lobbyID string) (int, error) {
	db = r.conn(db)
	var next int
	err := db.NewUpdate().
		Model((*Lobby)(nil)).
		Set("current_game_count = current_game_count + 1").
		Set("updated_at = current_timestamp").
		Where("guild_id = ?", guildID).
		Where("lobby_id = ?", lobbyID).
		Returning("current_game_count").
		Scan(ctx, &next)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("ladderdb.NextGameNumber: %w", err)
	}
	return next, nil
}

// GetPlayer retrieves a player.
func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, guildID, userID string) (*Player, error) {
	db = r.conn(db)
	player := new(Player)
	err := db.NewSelect().
		Model(player).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ladderdb.GetPlayer: %w", err)
	}
	return player, nil
}

// GetPlayersForUpdate loads and locks players. Rows are locked in user_id order so
// overlapping rosters settled concurrently cannot deadlock.
func (r *Impl) GetPlayersForUpdate(ctx context.Context, db bun.IDB, guildID string, userIDs []string) (map[string]*Player, error) {
	out := make(map[string]*Player, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	db = r.conn(db)

	ids := slices.Clone(userIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var players []*Player
	err := db.NewSelect().
		Model(&players).
		Where("guild_id = ?", guildID).
		Where("user_id IN (?)", bun.In(ids)).
		Order("user_id ASC").
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("ladderdb.GetPlayersForUpdate: %w", err)
	}
	for _, p := range players {
		out[p.UserID] = p
	}
	return out, nil
}

// InsertPlayer creates a player row if none exists.
func (r *Impl) InsertPlayer(ctx context.Context, db bun.IDB, player *Player) (bool, error) {
	db = r.conn(db)
	res, err := db.NewInsert().
		Model(player).
		On("CONFLICT (guild_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("ladderdb.InsertPlayer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ladderdb.InsertPlayer: %w", err)
	}
	return n > 0, nil
}

// UpdatePlayers writes the counters of every player.
func (r *Impl) UpdatePlayers(ctx context.Context, db bun.IDB, players []*Player) error {
	db = r.conn(db)
	for _, p := range players {
		res, err := db.NewUpdate().
			Model(p).
			Column("points", "wins", "losses", "draws", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("ladderdb.UpdatePlayers: %w", err)
		}
		if err := requireRows(res, "ladderdb.UpdatePlayers"); err != nil {
			return err
		}
	}
	return nil
}

// EnqueuePlayer adds a player to a lobby queue. Re-queueing is a no-op.
func (r *Impl) EnqueuePlayer(ctx context.Context, db bun.IDB, entry *QueuedPlayer) error {
	db = r.conn(db)
	_, err := db.NewInsert().
		Model(entry).
		On("CONFLICT (guild_id, lobby_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ladderdb.EnqueuePlayer: %w", err)
	}
	return nil
}

// ListQueue returns the lobby queue oldest first.
func (r *Impl) ListQueue(ctx context.Context, db bun.IDB, guildID, lobbyID string) ([]QueuedPlayer, error) {
	db = r.conn(db)
	var queue []QueuedPlayer
	err := db.NewSelect().
		Model(&queue).
		Where("guild_id = ?", guildID).
		Where("lobby_id = ?", lobbyID).
		Order("queued_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("ladderdb.ListQueue: %w", err)
	}
	return queue, nil
}

// ClearQueue empties the lobby queue.
func (r *Impl) ClearQueue(ctx context.Context, db bun.IDB, guildID, lobbyID string) (int, error) {
	db = r.conn(db)
	res, err := db.NewDelete().
		Model((*QueuedPlayer)(nil)).
		Where("guild_id = ?", guildID).
		Where("lobby_id = ?", lobbyID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("ladderdb.ClearQueue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ladderdb.ClearQueue: %w", err)
	}
	return int(n), nil
}

func requireRows(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
