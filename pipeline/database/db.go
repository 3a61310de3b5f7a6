package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/panos-42/gaming-pipeline/pipeline/database/models"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

// New connects to PostgreSQL and returns both a pgx pool for raw queries
// and a bun handle for model-driven DDL and upserts over the same database.
func New(ctx context.Context, dsn string, poolSize int) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if poolSize > 0 {
		poolConfig.MaxConns = int32(poolSize)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Retry the initial ping; the scheduler may start us before the
	// database accepts connections.
	for i := 0; ; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			break
		}
		if i+1 >= defaultMaxRetries {
			pool.Close()
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", defaultMaxRetries, err)
		}
		slog.Warn("Database ping failed, retrying",
			slog.String("type", "db"),
			slog.Int("attempt", i+1),
			slog.Any("error", err))
		time.Sleep(defaultRetryInterval)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	bunDB := bun.NewDB(sqldb, pgdialect.New())

	return &DB{pool: pool, bunDB: bunDB}, nil
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) Close() error {
	db.pool.Close()
	return db.bunDB.Close()
}

// InitializeSchema ensures the gold table and its indexes exist. Safe to
// call on every run; existing objects are left untouched.
func (db *DB) InitializeSchema(ctx context.Context) error {
	_, err := db.bunDB.NewCreateTable().
		Model((*models.GoldSummary)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create gold_summary table: %w", err)
	}

	// Single and composite indexes backing the reporting tool's filters.
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_gold_summary_date ON gold_summary(date);",
		"CREATE INDEX IF NOT EXISTS idx_gold_summary_country ON gold_summary(country);",
		"CREATE INDEX IF NOT EXISTS idx_gold_summary_vipstatus ON gold_summary(vipstatus);",
		"CREATE INDEX IF NOT EXISTS idx_gold_summary_agegroup ON gold_summary(agegroup);",
		"CREATE INDEX IF NOT EXISTS idx_gold_summary_manufacturer ON gold_summary(casinomanufacturername);",
		"CREATE INDEX IF NOT EXISTS idx_gold_summary_provider ON gold_summary(casinoprovidername);",
		"CREATE INDEX IF NOT EXISTS idx_gold_summary_date_country ON gold_summary(date, country);",
		"CREATE INDEX IF NOT EXISTS idx_gold_summary_date_vip ON gold_summary(date, vipstatus);",
		"CREATE INDEX IF NOT EXISTS idx_gold_summary_date_age ON gold_summary(date, agegroup);",
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (db *DB) ExecWithLog(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, query, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", query),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", query),
		slog.Duration("took", duration),
	)
	return result, nil
}
