/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Persists catalog documents and the conversion history. The registry
  itself is rebuilt from these documents at startup, never stored.

INTERFACES IMPLEMENTED:
  algebra.CatalogStore: Catalog documents (versioned)
  algebra.HistoryStore: Conversion history (append-only)

KEY TABLES:
  catalogs:    One row per catalog name, body stored verbatim
  conversions: Immutable log of conversions served

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE statements touch the conversions table. A record ID
  that already exists fails with algebra.ErrDuplicateRecordID.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, and WAL mode so readers do not
  block the writer.

USAGE:
  store, err := sqlite.New("./data/units.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  n, err := factory.NewLoader(registry, logger).LoadStore(ctx, store)

SEE ALSO:
  - algebra/store.go:        Interface definitions
  - algebra/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/warp/dimensional/algebra"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ algebra.CatalogStore = (*Store)(nil)
	_ algebra.HistoryStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Catalog documents (versioned on save)
	CREATE TABLE IF NOT EXISTS catalogs (
		id TEXT NOT NULL,
		name TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		body BLOB NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Conversions served (append-only)
	CREATE TABLE IF NOT EXISTS conversions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT UNIQUE,
		at TEXT NOT NULL,
		from_unit TEXT NOT NULL,
		to_unit TEXT NOT NULL,
		input REAL NOT NULL,
		output REAL NOT NULL,
		scale TEXT NOT NULL,
		offset_value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_conversions_at ON conversions(at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CATALOG STORE
// =============================================================================

// SaveCatalog inserts or replaces a catalog by name and bumps its version.
func (s *Store) SaveCatalog(ctx context.Context, rec algebra.CatalogRecord) (algebra.CatalogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = rec.Name
	}
	query := `
		INSERT INTO catalogs (id, name, format, body, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			format = excluded.format,
			body = excluded.body,
			version = catalogs.version + 1,
			updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, query, rec.ID, rec.Name, rec.Format, rec.Body, now, now); err != nil {
		return algebra.CatalogRecord{}, fmt.Errorf("failed to save catalog %s: %w", rec.Name, err)
	}
	return s.getCatalog(ctx, rec.Name)
}

// GetCatalog retrieves a catalog by name.
func (s *Store) GetCatalog(ctx context.Context, name string) (algebra.CatalogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getCatalog(ctx, name)
}

func (s *Store) getCatalog(ctx context.Context, name string) (algebra.CatalogRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, format, body, version, created_at, updated_at FROM catalogs WHERE name = ?",
		name,
	)
	rec, err := scanCatalog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return algebra.CatalogRecord{}, algebra.ErrCatalogNotFound
	}
	return rec, err
}

// ListCatalogs returns all catalogs in creation order.
func (s *Store) ListCatalogs(ctx context.Context) ([]algebra.CatalogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, format, body, version, created_at, updated_at FROM catalogs ORDER BY rowid",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var catalogs []algebra.CatalogRecord
	for rows.Next() {
		rec, err := scanCatalog(rows)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, rec)
	}
	return catalogs, rows.Err()
}

// DeleteCatalog removes a catalog. The registry keeps its declarations
// until the next restart.
func (s *Store) DeleteCatalog(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM catalogs WHERE name = ?", name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return algebra.ErrCatalogNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCatalog(row scanner) (algebra.CatalogRecord, error) {
	var rec algebra.CatalogRecord
	var createdAt, updatedAt string
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Format, &rec.Body, &rec.Version, &createdAt, &updatedAt); err != nil {
		return algebra.CatalogRecord{}, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return rec, nil
}

// =============================================================================
// HISTORY STORE
// =============================================================================

// AppendConversion adds a record. Append-only.
func (s *Store) AppendConversion(ctx context.Context, rec algebra.ConversionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.At.IsZero() {
		rec.At = time.Now()
	}
	query := `
		INSERT INTO conversions (id, at, from_unit, to_unit, input, output, scale, offset_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		nullString(rec.ID),
		rec.At.UTC().Format(time.RFC3339Nano),
		rec.From,
		rec.To,
		rec.Input,
		rec.Output,
		rec.Scale,
		rec.Offset,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return algebra.ErrDuplicateRecordID
		}
		return fmt.Errorf("failed to append conversion: %w", err)
	}
	return nil
}

// RecentConversions returns at most limit records, newest first.
func (s *Store) RecentConversions(ctx context.Context, limit int) ([]algebra.ConversionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, at, from_unit, to_unit, input, output, scale, offset_value
		FROM conversions
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []algebra.ConversionRecord
	for rows.Next() {
		var rec algebra.ConversionRecord
		var id sql.NullString
		var at string
		if err := rows.Scan(&id, &at, &rec.From, &rec.To, &rec.Input, &rec.Output, &rec.Scale, &rec.Offset); err != nil {
			return nil, err
		}
		rec.ID = id.String
		rec.At, _ = time.Parse(time.RFC3339Nano, at)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"conversions", "catalogs"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
