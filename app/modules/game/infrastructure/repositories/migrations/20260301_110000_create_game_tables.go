package gamemigrations

import (
	"context"
	"fmt"

	gamedb "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating games, game_team_players, game_votes and score_updates tables...")

		if _, err := db.NewCreateTable().Model((*gamedb.Game)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		children := []any{
			(*gamedb.GameTeamPlayer)(nil),
			(*gamedb.Vote)(nil),
			(*gamedb.ScoreUpdate)(nil),
		}
		for _, model := range children {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				ForeignKey(`(guild_id, lobby_id, game_id) REFERENCES games (guild_id, lobby_id, game_id) ON DELETE CASCADE`).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		_, err := db.NewRaw("ALTER TABLE games ADD CONSTRAINT games_state_check CHECK (state IN ('undecided', 'picking', 'decided', 'draw', 'canceled'))").Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_score_updates_user ON score_updates (guild_id, user_id)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Game tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping game tables...")

		models := []any{
			(*gamedb.ScoreUpdate)(nil),
			(*gamedb.Vote)(nil),
			(*gamedb.GameTeamPlayer)(nil),
			(*gamedb.Game)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Game tables dropped successfully!")
		return nil
	})
}
