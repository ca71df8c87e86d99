package laddermigrations

import (
	"context"
	"fmt"

	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating competitions, ranks, lobbies, players and lobby_queue tables...")

		models := []any{
			(*ladderdb.Competition)(nil),
			(*ladderdb.Rank)(nil),
			(*ladderdb.Lobby)(nil),
			(*ladderdb.Player)(nil),
			(*ladderdb.QueuedPlayer)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_ranks_guild_threshold ON ranks (guild_id, threshold)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_players_guild_points ON players (guild_id, points DESC)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Ladder tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping ladder tables...")

		models := []any{
			(*ladderdb.QueuedPlayer)(nil),
			(*ladderdb.Player)(nil),
			(*ladderdb.Lobby)(nil),
			(*ladderdb.Rank)(nil),
			(*ladderdb.Competition)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Ladder tables dropped successfully!")
		return nil
	})
}
