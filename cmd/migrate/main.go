// Command migrate applies the embedded travel schema to a local or test
// database. Production databases are managed outside this repository; point
// DATABASE_URL at a disposable database only.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run ./cmd/migrate [up|down|status]
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/travel-agency/internal/config"
	"github.com/pkordes/travel-agency/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		slog.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		slog.Error("create goose provider", "error", err)
		os.Exit(1)
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	switch cmd {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			slog.Error("migrate up", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", len(results))
	case "down":
		if _, err := provider.Down(ctx); err != nil {
			slog.Error("migrate down", "error", err)
			os.Exit(1)
		}
		slog.Info("rolled back one migration")
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			slog.Error("migrate status", "error", err)
			os.Exit(1)
		}
		for _, s := range statuses {
			slog.Info("migration", "version", s.Source.Version, "path", s.Source.Path, "state", s.State)
		}
	default:
		slog.Error("unknown command", "command", cmd)
		os.Exit(2)
	}
}
