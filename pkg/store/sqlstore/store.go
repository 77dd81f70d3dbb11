package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/biz-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// Executor is the single surface the reporting core consumes the
// relational store through: one call, one complete result set.
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) (store.ResultSet, error)
	TestConnection(ctx context.Context) (string, error)
}

// Settings configures the pooled connection to the operational store.
// Driver must be one of the registered profile drivers (mysql,
// snowflake, databricks).
type Settings struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

// versionProbes maps a driver to the query used to fetch the server
// identity for TestConnection.
var versionProbes = map[string]string{
	"mysql":      "SELECT VERSION()",
	"snowflake":  "SELECT CURRENT_VERSION()",
	"databricks": "SELECT current_version().dbsql_version",
}

type Store struct {
	db    *sql.DB
	probe string
}

// NewStore opens a pooled connection for the given settings. Excess
// requests queue on the pool rather than failing; the bound applies
// across all concurrent report requests.
func NewStore(settings Settings) (*Store, error) {
	probe, ok := versionProbes[settings.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q", settings.Driver)
	}

	db, err := sql.Open(settings.Driver, settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", settings.Driver, err)
	}

	if settings.MaxOpenConns > 0 {
		db.SetMaxOpenConns(settings.MaxOpenConns)
		db.SetMaxIdleConns(settings.MaxOpenConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &Store{db: db, probe: probe}, nil
}

// NewStoreWithDB wraps an existing handle; used by tests.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db, probe: versionProbes["mysql"]}
}

// Execute runs one query and materializes the full result set as
// ordered column-keyed rows. []byte cells are normalized to string so
// callers never see driver buffer reuse.
func (s *Store) Execute(ctx context.Context, query string, args ...any) (store.ResultSet, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close result rows")
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := make(store.ResultSet, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make(store.Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

// TestConnection probes the store and returns the server identity.
func (s *Store) TestConnection(ctx context.Context) (string, error) {
	var identity string
	if err := s.db.QueryRowContext(ctx, s.probe).Scan(&identity); err != nil {
		return "", fmt.Errorf("connection probe failed: %w", err)
	}
	return identity, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
