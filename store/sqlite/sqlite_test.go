package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/dimensional/algebra"
	"github.com/warp/dimensional/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_CatalogLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	// GIVEN: A catalog saved, then saved again with a new body
	first, err := s.SaveCatalog(ctx, algebra.CatalogRecord{Name: "brewing", Format: "yaml", Body: []byte("name: brewing")})
	require.NoError(t, err)
	second, err := s.SaveCatalog(ctx, algebra.CatalogRecord{Name: "brewing", Format: "json", Body: []byte(`{"name":"brewing"}`)})
	require.NoError(t, err)

	// THEN: One row, version bumped, body and format replaced
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, 2, second.Version)
	assert.Equal(t, "brewing", second.ID)
	assert.Equal(t, "json", second.Format)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))

	got, err := s.GetCatalog(ctx, "brewing")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"brewing"}`, string(got.Body))

	// WHEN: Deleted
	require.NoError(t, s.DeleteCatalog(ctx, "brewing"))

	// THEN: It is gone
	_, err = s.GetCatalog(ctx, "brewing")
	assert.ErrorIs(t, err, algebra.ErrCatalogNotFound)
	assert.ErrorIs(t, s.DeleteCatalog(ctx, "brewing"), algebra.ErrCatalogNotFound)
}

func TestStore_ListCatalogsInCreationOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := s.SaveCatalog(ctx, algebra.CatalogRecord{Name: name, Format: "yaml", Body: []byte("name: " + name)})
		require.NoError(t, err)
	}
	// Re-saving keeps the original position
	_, err := s.SaveCatalog(ctx, algebra.CatalogRecord{Name: "zeta", Format: "yaml", Body: []byte("name: zeta")})
	require.NoError(t, err)

	list, err := s.ListCatalogs(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "zeta", list[0].Name)
	assert.Equal(t, 2, list[0].Version)
	assert.Equal(t, "alpha", list[1].Name)
	assert.Equal(t, "mid", list[2].Name)
}

func TestStore_HistoryIsAppendOnly(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.AppendConversion(ctx, algebra.ConversionRecord{
		ID: "req-1", At: at, From: "foot", To: "meter", Input: 1, Output: 0.3048, Scale: "0.3048", Offset: "0",
	}))
	require.NoError(t, s.AppendConversion(ctx, algebra.ConversionRecord{
		ID: "req-2", From: "celsius", To: "kelvin", Input: 0, Output: 273.15, Scale: "1", Offset: "273.15",
	}))
	// Records without an ID are never considered duplicates
	require.NoError(t, s.AppendConversion(ctx, algebra.ConversionRecord{From: "a", To: "b", Scale: "1", Offset: "0"}))
	require.NoError(t, s.AppendConversion(ctx, algebra.ConversionRecord{From: "a", To: "b", Scale: "1", Offset: "0"}))

	// WHEN: An ID is appended twice
	err := s.AppendConversion(ctx, algebra.ConversionRecord{ID: "req-1", From: "x", To: "y", Scale: "1", Offset: "0"})

	// THEN: The retry is rejected
	assert.ErrorIs(t, err, algebra.ErrDuplicateRecordID)

	all, err := s.RecentConversions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "", all[0].ID)
	assert.Equal(t, "req-2", all[2].ID)
	assert.Equal(t, "req-1", all[3].ID)
	assert.True(t, at.Equal(all[3].At))
	assert.Equal(t, 0.3048, all[3].Output)
	assert.Equal(t, "273.15", all[2].Offset)

	recent, err := s.RecentConversions(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "units.db")

	s, err := sqlite.New(path)
	require.NoError(t, err)
	_, err = s.SaveCatalog(ctx, algebra.CatalogRecord{Name: "brewing", Format: "yaml", Body: []byte("name: brewing")})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetCatalog(ctx, "brewing")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := s.SaveCatalog(ctx, algebra.CatalogRecord{Name: "brewing", Format: "yaml", Body: []byte("x")})
	require.NoError(t, err)
	require.NoError(t, s.AppendConversion(ctx, algebra.ConversionRecord{ID: "r", Scale: "1", Offset: "0"}))

	require.NoError(t, s.Reset(ctx))

	list, err := s.ListCatalogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	history, err := s.RecentConversions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}
