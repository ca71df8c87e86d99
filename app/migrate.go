package app

import (
	"context"
	"fmt"
	"log/slog"

	gamemigrations "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/repositories/migrations"
	laddermigrations "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// NamedMigrator pairs a module name with its migrator.
type NamedMigrator struct {
	Module   string
	Migrator *migrate.Migrator
}

// Migrators returns one migrator per module, ladder first. Each module tracks its own
// migration table so group numbers do not collide.
func Migrators(db *bun.DB) []NamedMigrator {
	return []NamedMigrator{
		{
			Module: "ladder",
			Migrator: migrate.NewMigrator(db, laddermigrations.Migrations,
				migrate.WithTableName("bun_migrations_ladder"),
				migrate.WithLocksTableName("bun_migration_locks_ladder"),
			),
		},
		{
			Module: "game",
			Migrator: migrate.NewMigrator(db, gamemigrations.Migrations,
				migrate.WithTableName("bun_migrations_game"),
				migrate.WithLocksTableName("bun_migration_locks_game"),
			),
		},
	}
}

// Migrate creates the migration tables if needed and applies every pending migration.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	for _, m := range Migrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("init migrations for %s: %w", m.Module, err)
		}
		if err := m.Migrator.Lock(ctx); err != nil {
			return fmt.Errorf("lock migrations for %s: %w", m.Module, err)
		}
		group, err := m.Migrator.Migrate(ctx)
		unlockErr := m.Migrator.Unlock(ctx)
		if err != nil {
			return fmt.Errorf("migrate %s: %w", m.Module, err)
		}
		if unlockErr != nil {
			return fmt.Errorf("unlock migrations for %s: %w", m.Module, unlockErr)
		}

		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", attr.String("module", m.Module))
			continue
		}
		logger.InfoContext(ctx, "Migrated module",
			attr.String("module", m.Module),
			attr.String("group", group.String()),
		)
	}
	return nil
}
