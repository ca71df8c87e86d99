package laddermigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the ladder module migrations.
var Migrations = migrate.NewMigrations()

func init() {
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
