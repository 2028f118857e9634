package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/jengaest/estimate-api/internal/config"
	"github.com/jengaest/estimate-api/migrations"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) == 0 {
		return fmt.Errorf("usage: migrate [up|up-to VERSION|down|reset|status|version|create NAME]")
	}
	command := args[0]
	arguments := args[1:]

	// create writes a new file into the source tree and needs no connection
	if command == "create" {
		if len(arguments) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		if err := goose.Create(nil, "./migrations", arguments[0], "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		fmt.Printf("Migration created: %s\n", arguments[0])
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		return fmt.Errorf("sqlite databases are migrated by the API at startup")
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	switch command {
	case "up":
		if err := goose.Up(db, "."); err != nil {
			return fmt.Errorf("failed to run up migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully")

	case "up-to":
		if len(arguments) == 0 {
			return fmt.Errorf("up-to requires a version")
		}
		var version int64
		if _, err := fmt.Sscan(arguments[0], &version); err != nil {
			return fmt.Errorf("invalid version %q: %w", arguments[0], err)
		}
		if err := goose.UpTo(db, ".", version); err != nil {
			return fmt.Errorf("failed to migrate to version %d: %w", version, err)
		}
		fmt.Printf("Migrated to version %d\n", version)

	case "down":
		if err := goose.Down(db, "."); err != nil {
			return fmt.Errorf("failed to run down migration: %w", err)
		}
		fmt.Println("Migration rolled back successfully")

	case "reset":
		if err := goose.Reset(db, "."); err != nil {
			return fmt.Errorf("failed to reset migrations: %w", err)
		}
		fmt.Println("All migrations rolled back")

	case "status":
		if err := goose.Status(db, "."); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}

	case "version":
		if err := goose.Version(db, "."); err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}

	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	return nil
}
