package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/supplier-directory/internal/config"
)

// PostgresStore keeps every named table as ordered jsonb rows in one
// physical relation. The schema is deliberately schemaless: the contract
// is spreadsheet-shaped and column sets are defined by the records
// themselves.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresPool establishes a pgx pool from configuration.
func NewPostgresPool(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return pool, nil
}

// NewPostgresStore wraps a pool as a RecordStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the backing relation when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS sheet_rows (
            table_name TEXT NOT NULL,
            ordinal    BIGSERIAL,
            record     JSONB NOT NULL,
            PRIMARY KEY (table_name, ordinal)
        )`
	_, err := s.pool.Exec(ctx, ddl)
	return err
}

// Ping verifies connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases pool resources.
func (s *PostgresStore) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) List(ctx context.Context, table string) ([]Record, error) {
	const query = `
        SELECT record FROM sheet_rows
        WHERE table_name=$1 ORDER BY ordinal`

	rows, err := s.pool.Query(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Append(ctx context.Context, table string, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	const query = `INSERT INTO sheet_rows (table_name, record) VALUES ($1, $2)`
	_, err = s.pool.Exec(ctx, query, table, raw)
	return err
}

func (s *PostgresStore) DeleteWhere(ctx context.Context, table, column, value string) (bool, error) {
	const query = `
        DELETE FROM sheet_rows
        WHERE table_name=$1 AND ordinal = (
            SELECT ordinal FROM sheet_rows
            WHERE table_name=$1 AND record->>$2 = $3
            ORDER BY ordinal LIMIT 1
        )`
	cmd, err := s.pool.Exec(ctx, query, table, column, value)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *PostgresStore) UpdateCell(ctx context.Context, table string, rowIndex int, column, value string) error {
	dataIdx := rowIndex - HeaderRowIndex - 1
	if dataIdx < 0 {
		return ErrRowNotFound
	}

	// resolve the nth data row to its ordinal, then patch the jsonb
	const query = `
        UPDATE sheet_rows
        SET record = jsonb_set(record, ARRAY[$2], to_jsonb($3::text), true)
        WHERE table_name=$1 AND ordinal = (
            SELECT ordinal FROM sheet_rows
            WHERE table_name=$1 ORDER BY ordinal
            OFFSET $4 LIMIT 1
        )`
	cmd, err := s.pool.Exec(ctx, query, table, column, value, dataIdx)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	return nil
}
