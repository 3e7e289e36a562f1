package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

// RunMigrations applies every *.up.sql file in dir that is not yet recorded in schema_migrations.
// The version is the file name prefix before the first underscore.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, dir string, log logger.Logger) error {
	return runMigrations(ctx, pool, os.DirFS(dir), log)
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, log logger.Logger) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())`)
	if err != nil {
		return err
	}
	names, err := migrationFiles(fsys)
	if err != nil {
		return err
	}
	for _, name := range names {
		version := strings.SplitN(name, "_", 2)[0]
		err = pool.QueryRow(ctx, `SELECT true FROM schema_migrations WHERE version=$1`, version).Scan(new(bool))
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		data, readErr := fs.ReadFile(fsys, name)
		if readErr != nil {
			return readErr
		}
		if err = applyMigration(ctx, pool, version, string(data)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		log.Info("migration applied", "version", version)
	}
	return nil
}

func migrationFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, version, sql string) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, sql); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT (version) DO NOTHING`, version); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
