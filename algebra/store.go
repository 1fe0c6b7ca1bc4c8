/*
store.go - Persistence interfaces for catalogs and conversion history

PURPOSE:
  The registry itself is never persisted: it is rebuilt at startup from
  the built-in catalogs and the stored catalog documents, then sealed.
  What is persisted:

  CatalogStore: catalog documents (JSON or YAML) by name, versioned on save
  HistoryStore: append-only log of conversions served

APPEND-ONLY CONTRACT:
  HistoryStore has no Update or Delete. A record ID that already exists is
  rejected with ErrDuplicateRecordID, so retried requests are not logged
  twice.

IMPLEMENTATIONS:
  - algebra/store/memory.go: In-memory for tests and dev
  - store/sqlite/sqlite.go:  SQLite

SEE ALSO:
  - factory/catalog.go: Parses and applies catalog documents
*/
package algebra

import (
	"context"
	"time"
)

// =============================================================================
// CATALOG STORE
// =============================================================================

// CatalogRecord is a stored catalog document.
type CatalogRecord struct {
	ID        string
	Name      string
	Format    string // "json" or "yaml"
	Body      []byte
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CatalogStore interface {
	// SaveCatalog inserts or replaces a catalog by name and bumps its version.
	SaveCatalog(ctx context.Context, rec CatalogRecord) (CatalogRecord, error)

	// GetCatalog returns ErrCatalogNotFound for an unknown name.
	GetCatalog(ctx context.Context, name string) (CatalogRecord, error)

	// ListCatalogs returns catalogs ordered by creation time.
	ListCatalogs(ctx context.Context) ([]CatalogRecord, error)

	DeleteCatalog(ctx context.Context, name string) error
}

// =============================================================================
// HISTORY STORE - Append-only
// =============================================================================

// ConversionRecord is one conversion served.
type ConversionRecord struct {
	ID     string
	At     time.Time
	From   string
	To     string
	Input  float64
	Output float64
	Scale  string // exact decimal
	Offset string // exact decimal
}

type HistoryStore interface {
	AppendConversion(ctx context.Context, rec ConversionRecord) error

	// RecentConversions returns at most limit records, newest first.
	RecentConversions(ctx context.Context, limit int) ([]ConversionRecord, error)
}
