package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Dialect selects placeholder syntax and driver.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

type Config struct {
	Driver           string
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// DB is a database/sql handle plus the dialect it speaks.
type DB struct {
	*sql.DB
	Dialect Dialect

	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// Open connects to Postgres through a pgx pool or opens an embedded SQLite file.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (*DB, error) {
	switch Dialect(strings.ToLower(cfg.Driver)) {
	case DialectPostgres:
		return openPostgres(ctx, cfg, logger)
	case DialectSQLite, "":
		return openSQLite(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg Config, logger zerolog.Logger) (*DB, error) {
	logger.Info().Str("driver", "postgres").Msg("connecting to database")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error().Err(err).Msg("failed to parse database dsn")
		return nil, err
	}

	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "linguabridge"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return nil, err
	}

	logger.Info().Msg("successfully connected to database")
	return &DB{
		DB:      stdlib.OpenDBFromPool(pool),
		Dialect: DialectPostgres,
		pool:    pool,
		logger:  logger,
	}, nil
}

func openSQLite(ctx context.Context, cfg Config, logger zerolog.Logger) (*DB, error) {
	logger.Info().Str("driver", "sqlite").Str("dsn", cfg.DSN).Msg("opening database")
	sqldb, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open database")
		return nil, err
	}
	// one writer; avoids SQLITE_BUSY under the batch worker pool
	sqldb.SetMaxOpenConns(1)
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		logger.Error().Err(err).Msg("failed to open database")
		return nil, err
	}
	if _, err := sqldb.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &DB{DB: sqldb, Dialect: DialectSQLite, logger: logger}, nil
}

// Close closes the database connections gracefully
func (db *DB) Close() error {
	db.logger.Info().Msg("closing database connections")
	err := db.DB.Close()
	if db.pool != nil {
		db.pool.Close()
	}
	if err != nil {
		db.logger.Error().Err(err).Msg("failed to close database")
		return err
	}
	db.logger.Info().Msg("database connections closed")
	return nil
}

// HealthCheck pings the database, bounded by timeout when positive.
func (db *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if db.pool != nil {
		return db.pool.Ping(ctx)
	}
	return db.PingContext(ctx)
}

// Rebind rewrites ? placeholders to $N for Postgres.
func (db *DB) Rebind(query string) string {
	return Rebind(db.Dialect, query)
}

func Rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// InTx runs fn inside a transaction, rolling back on error.
func (db *DB) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
