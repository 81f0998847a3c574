// Package database provides database connection management.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/at-ishikawa/studyplan/internal/config"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Open opens a connection pool for the configured driver without contacting the server.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		return db, nil
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

// Connect opens the database and pings it, retrying with exponential backoff
// while the server is not reachable yet.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}
	err = retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Attempts(attempts),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("database is not reachable yet",
				"driver", cfg.Driver,
				"attempt", n+1,
				"error", err)
		}),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func dataSourceName(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case DriverMySQL, "":
		mysqlCfg := mysql.NewConfig()
		mysqlCfg.User = cfg.Username
		mysqlCfg.Passwd = cfg.Password
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mysqlCfg.DBName = cfg.Database
		mysqlCfg.ParseTime = true
		mysqlCfg.MultiStatements = true
		// UPDATE reports matched rows so that unchanged rows are not taken as missing
		mysqlCfg.ClientFoundRows = true
		if cfg.TLS {
			mysqlCfg.TLSConfig = "true"
		}
		if len(cfg.Params) > 0 {
			mysqlCfg.Params = cfg.Params
		}
		return mysqlCfg.FormatDSN(), nil
	case DriverPostgres:
		query := url.Values{}
		if cfg.TLS {
			query.Set("sslmode", "require")
		} else {
			query.Set("sslmode", "disable")
		}
		for key, value := range cfg.Params {
			query.Set(key, value)
		}
		dsn := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.Username, cfg.Password),
			Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Path:     "/" + cfg.Database,
			RawQuery: query.Encode(),
		}
		return dsn.String(), nil
	case DriverSQLite:
		query := url.Values{}
		query.Set("_foreign_keys", "on")
		for key, value := range cfg.Params {
			query.Set(key, value)
		}
		return "file:" + cfg.Path + "?" + query.Encode(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// RunInTx runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise, it is committed.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback transaction: %w (original error: %v)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// BuildMultiRowInsert returns an INSERT statement with rowCount placeholder groups.
// Placeholders are '?'; callers rebind them for the driver in use.
func BuildMultiRowInsert(table string, columns []string, rowCount int) string {
	placeholder := "(" + strings.Repeat("?, ", len(columns)-1) + "?)"
	values := strings.Repeat(placeholder+", ", rowCount-1) + placeholder
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(columns, ", "), values)
}
