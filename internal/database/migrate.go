package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(255) NOT NULL PRIMARY KEY
)`

// Migration is one SQL file. Version is the file name without its extension.
type Migration struct {
	Version    string
	Statements []string
}

// LoadMigrations reads migrations/*.sql from fsys in file name order.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob(migrations/*.sql) > %w", err)
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("fs.ReadFile(%s) > %w", name, err)
		}
		migrations = append(migrations, Migration{
			Version:    strings.TrimSuffix(path.Base(name), ".sql"),
			Statements: splitStatements(string(content)),
		})
	}
	return migrations, nil
}

func splitStatements(content string) []string {
	var statements []string
	for _, statement := range strings.Split(content, ";") {
		statement = strings.TrimSpace(statement)
		if statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// Migrate applies every migration in fsys that is not recorded in schema_migrations yet
// and returns the versions it applied.
func Migrate(ctx context.Context, db *sqlx.DB, fsys fs.FS) ([]string, error) {
	migrations, err := LoadMigrations(fsys)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	var versions []string
	if err := db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	done := make(map[string]bool, len(versions))
	for _, v := range versions {
		done[v] = true
	}

	var applied []string
	for _, m := range migrations {
		if done[m.Version] {
			continue
		}
		err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			for _, statement := range m.Statements {
				if _, err := tx.ExecContext(ctx, statement); err != nil {
					return fmt.Errorf("apply migration %s: %w", m.Version, err)
				}
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), m.Version); err != nil {
				return fmt.Errorf("record migration %s: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		slog.Default().Info("applied migration", "version", m.Version)
		applied = append(applied, m.Version)
	}
	return applied, nil
}
