// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under data/migrations with
// golang-migrate. The API binary runs [RunUp] at boot and the integration
// test helper runs it against a disposable Postgres container.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// open builds a migrator for dsn. The caller must invoke the returned closer.
func open(dsn, migrationsPath string, logger *slog.Logger) (*migrate.Migrate, func(), error) {
	migrator, err := migrate.New("file://"+migrationsPath, toPgx5DSN(dsn))
	if err != nil {
		return nil, nil, fmt.Errorf("migration: open %s: %w", migrationsPath, err)
	}
	migrator.Log = slogAdapter{logger: logger}

	closer := func() {
		sourceErr, databaseErr := migrator.Close()
		if err := errors.Join(sourceErr, databaseErr); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}
	return migrator, closer, nil
}

/*
RunUp applies every pending migration.

A database left dirty by a failed migration is refused; it needs a manual
`migrate force` before the API can start again.
*/
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	migrator, closer, err := open(dsn, migrationsPath, logger)
	if err != nil {
		return err
	}
	defer closer()

	from, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return fmt.Errorf("migration: read version: %w", err)
	case dirty:
		return fmt.Errorf("migration: schema is dirty at version %d", from)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("migration: up from %d: %w", from, err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_applied", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))
	return nil
}

// RunDown reverts the last steps migrations.
func RunDown(dsn, migrationsPath string, steps int, logger *slog.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("migration: steps must be positive, got %d", steps)
	}

	migrator, closer, err := open(dsn, migrationsPath, logger)
	if err != nil {
		return err
	}
	defer closer()

	if err := migrator.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: down %d: %w", steps, err)
	}
	logger.Info("migration_rolled_back", slog.Int("steps", steps))
	return nil
}

// toPgx5DSN switches postgres:// URLs to the pgx5:// scheme the pgx/v5 driver registers.
func toPgx5DSN(dsn string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter satisfies migrate.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (adapter slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Debug("migrate", slog.String("message", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (adapter slogAdapter) Verbose() bool {
	return false
}
