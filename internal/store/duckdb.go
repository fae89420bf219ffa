// Package store provides an optional, additive DuckDB sink for the
// Comparator's output (§2 of the expanded spec's DOMAIN STACK): every row
// the significant-mutations TSV receives is also mirrored into a queryable
// table, the same "queryable, append-only" value this codebase's own
// internal/duckdb package gives VEP annotation results. This never replaces
// the file-mediated checkpoint contract spec.md §5 requires; it is a
// side channel for ad hoc SQL exploration across many regions at once.
// Grounded on internal/duckdb/store.go (Open/ensureSchema) and
// internal/duckdb/variants.go (Appender-based batch insert).
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/jbethune/genovo/internal/compare"
)

// Store manages a DuckDB connection holding the significant_mutations table.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at path. An empty path opens an
// in-memory database, primarily for tests.
func Open(path string) (*Store, error) {
	if path != "" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store directory: %w", err)
			}
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct ad hoc queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS significant_mutations (
		region VARCHAR,
		mutation_type VARCHAR,
		observed UBIGINT,
		expected DOUBLE,
		p_value DOUBLE,
		PRIMARY KEY (region, mutation_type)
	)`)
	return err
}

// WriteComparisons appends every row of the comparator's output to the
// significant_mutations table via the Appender API, mirroring
// internal/duckdb's WriteVariantResults pattern. This is strictly additive:
// the caller still writes the required significant-mutations TSV separately.
func (s *Store) WriteComparisons(comparisons []compare.ComparedMutation) error {
	if len(comparisons) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "significant_mutations")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, c := range comparisons {
		if err := appender.AppendRow(
			c.Region, c.MutationType.String(), c.Observed, c.Expected, c.PValue,
		); err != nil {
			return fmt.Errorf("append comparison: %w", err)
		}
	}
	return appender.Flush()
}

// Clear removes all rows from the significant_mutations table.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM significant_mutations")
	return err
}
