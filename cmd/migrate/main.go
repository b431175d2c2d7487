package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/logging"
)

// Usage: migrate [up|down|version]. DB_URL overrides the DB_* settings.
func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"))

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		cfg, err := config.LoadDatabase()
		if err != nil {
			fatal("invalid configuration", err)
		}
		dbURL = cfg.MigrateURL()
	}

	migrationsPath, err := findMigrations()
	if err != nil {
		fatal("migrations directory not found", err)
	}

	m, err := migrate.New("file://"+migrationsPath, dbURL)
	if err != nil {
		fatal("migrate init failed", err)
	}
	defer m.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatal("migration up failed", err)
		}
		slog.Info("migration up successful")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatal("migration down failed", err)
		}
		slog.Info("migration down successful")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			fatal("read version failed", err)
		}
		slog.Info("schema version", "version", version, "dirty", dirty)
	default:
		slog.Error("unknown command", "command", cmd)
		os.Exit(2)
	}
}

// findMigrations walks up from the working directory, then the binary's
// directory, looking for a migrations/ folder.
func findMigrations() (string, error) {
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		current := cwd
		for i := 0; i < 6; i++ {
			candidates = append(candidates, filepath.Join(current, "migrations"))
			parent := filepath.Dir(current)
			if parent == current {
				break
			}
			current = parent
		}
	}
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		candidates = append(candidates,
			filepath.Join(exeDir, "migrations"),
			filepath.Join(exeDir, "..", "migrations"),
		)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", errors.New("no migrations/ directory in search path")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
