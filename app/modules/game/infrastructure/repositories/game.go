package gamedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	"github.com/uptrace/bun"
)

// Impl implements Repository with bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new game repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) conn(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// byRef filters any select, update or delete on the game key columns.
func byRef(ref gamedomain.GameRef) func(bun.QueryBuilder) bun.QueryBuilder {
	return func(q bun.QueryBuilder) bun.QueryBuilder {
		return q.
			Where("guild_id = ?", ref.GuildID).
			Where("lobby_id = ?", ref.LobbyID).
			Where("game_id = ?", ref.GameID)
	}
}

// InsertGame creates a game row.
func (r *Impl) InsertGame(ctx context.Context, db bun.IDB, game *Game) error {
	db = r.conn(db)
	if _, err := db.NewInsert().Model(game).Exec(ctx); err != nil {
		return fmt.Errorf("gamedb.InsertGame: %w", err)
	}
	return nil
}

// GetGame retrieves a game.
func (r *Impl) GetGame(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) (*Game, error) {
	return r.getGame(ctx, r.conn(db), ref, false)
}

// GetGameForUpdate retrieves a game with SELECT ... FOR UPDATE.
func (r *Impl) GetGameForUpdate(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) (*Game, error) {
	return r.getGame(ctx, r.conn(db), ref, true)
}

func (r *Impl) getGame(ctx context.Context, db bun.IDB, ref gamedomain.GameRef, lock bool) (*Game, error) {
	game := new(Game)
	q := db.NewSelect().Model(game).ApplyQueryBuilder(byRef(ref))
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gamedb.GetGame: %w", err)
	}
	return game, nil
}

// LatestGame returns the newest game of a lobby.
func (r *Impl) LatestGame(ctx context.Context, db bun.IDB, guildID, lobbyID string) (*Game, error) {
	db = r.conn(db)
	game := new(Game)
	err := db.NewSelect().
		Model(game).
		Where("guild_id = ?", guildID).
		Where("lobby_id = ?", lobbyID).
		Order("game_id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gamedb.LatestGame: %w", err)
	}
	return game, nil
}

// ListGames returns the newest games of a lobby.
func (r *Impl) ListGames(ctx context.Context, db bun.IDB, guildID, lobbyID string, limit int) ([]Game, error) {
	db = r.conn(db)
	var games []Game
	err := db.NewSelect().
		Model(&games).
		Where("guild_id = ?", guildID).
		Where("lobby_id = ?", lobbyID).
		Order("game_id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ListGames: %w", err)
	}
	return games, nil
}

// UpdateGame writes the mutable columns of a game.
func (r *Impl) UpdateGame(ctx context.Context, db bun.IDB, game *Game) error {
	db = r.conn(db)
	res, err := db.NewUpdate().
		Model(game).
		Column("state", "winning_team", "comment", "submitter", "vote_complete", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gamedb.UpdateGame: %w", err)
	}
	return requireRows(res, "gamedb.UpdateGame")
}

// DeleteGame removes a game and every row that hangs off it.
func (r *Impl) DeleteGame(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) error {
	db = r.conn(db)
	children := []any{
		(*ScoreUpdate)(nil),
		(*Vote)(nil),
		(*GameTeamPlayer)(nil),
	}
	for _, model := range children {
		if _, err := db.NewDelete().Model(model).ApplyQueryBuilder(byRef(ref)).Exec(ctx); err != nil {
			return fmt.Errorf("gamedb.DeleteGame: %w", err)
		}
	}

	res, err := db.NewDelete().Model((*Game)(nil)).ApplyQueryBuilder(byRef(ref)).Exec(ctx)
	if err != nil {
		return fmt.Errorf("gamedb.DeleteGame: %w", err)
	}
	return requireRows(res, "gamedb.DeleteGame")
}

// InsertRoster stores the team rows of a game.
func (r *Impl) InsertRoster(ctx context.Context, db bun.IDB, rows []*GameTeamPlayer) error {
	if len(rows) == 0 {
		return nil
	}
	db = r.conn(db)
	if _, err := db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("gamedb.InsertRoster: %w", err)
	}
	return nil
}

// DeleteRoster removes every team row of a game.
func (r *Impl) DeleteRoster(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) error {
	db = r.conn(db)
	if _, err := db.NewDelete().Model((*GameTeamPlayer)(nil)).ApplyQueryBuilder(byRef(ref)).Exec(ctx); err != nil {
		return fmt.Errorf("gamedb.DeleteRoster: %w", err)
	}
	return nil
}

// GetTeam returns the user IDs on one team of a game.
func (r *Impl) GetTeam(ctx context.Context, db bun.IDB, ref gamedomain.GameRef, team gamedomain.TeamSelector) ([]string, error) {
	db = r.conn(db)
	var userIDs []string
	err := db.NewSelect().
		Model((*GameTeamPlayer)(nil)).
		Column("user_id").
		ApplyQueryBuilder(byRef(ref)).
		Where("team = ?", int(team)).
		Order("user_id ASC").
		Scan(ctx, &userIDs)
	if err != nil {
		return nil, fmt.Errorf("gamedb.GetTeam: %w", err)
	}
	return userIDs, nil
}

// InsertVote records a vote. A second vote by the same user violates the primary key.
func (r *Impl) InsertVote(ctx context.Context, db bun.IDB, vote *Vote) error {
	db = r.conn(db)
	if _, err := db.NewInsert().Model(vote).Exec(ctx); err != nil {
		return fmt.Errorf("gamedb.InsertVote: %w", err)
	}
	return nil
}

// ListVotes returns every vote of a game in casting order.
func (r *Impl) ListVotes(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) ([]Vote, error) {
	db = r.conn(db)
	var votes []Vote
	err := db.NewSelect().
		Model(&votes).
		ApplyQueryBuilder(byRef(ref)).
		Order("created_at ASC", "user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ListVotes: %w", err)
	}
	return votes, nil
}

// InsertScoreUpdates stores the audit rows of a settlement.
func (r *Impl) InsertScoreUpdates(ctx context.Context, db bun.IDB, updates []*ScoreUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	db = r.conn(db)
	if _, err := db.NewInsert().Model(&updates).Exec(ctx); err != nil {
		return fmt.Errorf("gamedb.InsertScoreUpdates: %w", err)
	}
	return nil
}

// ListScoreUpdates returns the audit rows of a game.
func (r *Impl) ListScoreUpdates(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) ([]ScoreUpdate, error) {
	db = r.conn(db)
	var updates []ScoreUpdate
	err := db.NewSelect().
		Model(&updates).
		ApplyQueryBuilder(byRef(ref)).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ListScoreUpdates: %w", err)
	}
	return updates, nil
}

// DeleteScoreUpdate removes one audit row.
func (r *Impl) DeleteScoreUpdate(ctx context.Context, db bun.IDB, ref gamedomain.GameRef, userID string) error {
	db = r.conn(db)
	res, err := db.NewDelete().
		Model((*ScoreUpdate)(nil)).
		ApplyQueryBuilder(byRef(ref)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gamedb.DeleteScoreUpdate: %w", err)
	}
	return requireRows(res, "gamedb.DeleteScoreUpdate")
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
