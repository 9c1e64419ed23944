package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmstand/recordkit/pkg/rawrecord"
)

// PostgresConfig is the env surface for the Postgres collaborator.
type PostgresConfig struct {
	ConnectionString string        `env:"PG_CONN_URL,required"`
	MaxOpenConns     int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MinConns         int32         `env:"PG_MIN_CONNS" envDefault:"2"`
	MaxConnIdleTime  time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	RetryAttempts    int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`

	MigrationsPath  string `env:"PG_MIGRATIONS_PATH" envDefault:"migrations"`
	MigrationsTable string `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}

// ConnectPostgres establishes a connection pool with linear backoff so a
// store restarting at the same moment as the process does not fail
// startup outright.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConfig, err)
	}
	poolCfg.MaxConns = cfg.MaxOpenConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	for i := range cfg.RetryAttempts {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}
		return pool, nil
	}
	return nil, ErrFailedToConnectPostgres
}

// PostgresSource fetches raw record batches from Postgres tables.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource wraps an established pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Fetch runs the query and decodes every row into a raw record. Column
// values outside the closed primitive set fail the fetch; the store
// returning a shape the pipeline cannot classify is a contract break, not
// something to paper over per row.
func (s *PostgresSource) Fetch(ctx context.Context, query string, args ...any) ([]rawrecord.Record, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}
	defer rows.Close()
	return RecordsFromRows(rows)
}

// RecordsFromRows decodes pgx rows into raw records using the result's
// field descriptions for column names.
func RecordsFromRows(rows pgx.Rows) ([]rawrecord.Record, error) {
	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	var recs []rawrecord.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		rec, err := RecordFromColumns(names, values)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return recs, nil
}

// RecordFromColumns classifies one row's column values into a raw record.
func RecordFromColumns(names []string, values []any) (rawrecord.Record, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("row has %d values for %d columns", len(values), len(names))
	}
	m := make(map[string]any, len(names))
	for i, name := range names {
		m[name] = values[i]
	}
	return rawrecord.FromMap(m)
}
