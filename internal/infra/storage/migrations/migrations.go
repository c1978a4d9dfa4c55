package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/m04kA/SMC-TurfBooking/pkg/dbmetrics"
)

//go:embed sql/*.sql
var files embed.FS

var ErrMigration = errors.New("migrations: failed to apply")

// Migration одна SQL миграция
type Migration struct {
	Version string
	SQL     string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Transactor выполняет функцию в транзакции
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Load возвращает встроенные миграции в порядке применения
func Load() ([]Migration, error) {
	entries, err := fs.ReadDir(files, "sql")
	if err != nil {
		return nil, err
	}

	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		body, err := files.ReadFile("sql/" + entry.Name())
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, Migration{
			Version: strings.TrimSuffix(entry.Name(), ".sql"),
			SQL:     string(body),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Up применяет еще не примененные миграции, каждую в своей транзакции
func Up(ctx context.Context, db dbmetrics.DBExecutor, tx Transactor, log Logger) error {
	const createTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", ErrMigration, err)
	}

	migrations, err := Load()
	if err != nil {
		return fmt.Errorf("%w: load: %v", ErrMigration, err)
	}

	for _, m := range migrations {
		m := m
		applied := false
		err := tx.Do(ctx, func(txCtx context.Context) error {
			executor := dbmetrics.GetExecutor(txCtx, db)

			var exists bool
			row := executor.QueryRowContext(txCtx,
				`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version)
			if err := row.Scan(&exists); err != nil {
				return err
			}
			if exists {
				return nil
			}

			if _, err := executor.ExecContext(txCtx, m.SQL); err != nil {
				return err
			}
			if _, err := executor.ExecContext(txCtx,
				`INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
				return err
			}
			applied = true
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMigration, m.Version, err)
		}
		if applied {
			log.Info("Migration applied: %s", m.Version)
		}
	}

	return nil
}
