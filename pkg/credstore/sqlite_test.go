package credstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T, path string) *credstore.SQLiteStore {
	t.Helper()
	s, err := credstore.NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	runContract(t, func(t *testing.T) credstore.Store {
		return newSQLiteStore(t, filepath.Join(t.TempDir(), "creds.db"))
	})
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.db")

	first, err := credstore.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, credstore.SlotAccess, "A1"))
	require.NoError(t, first.Close())

	// Reopening runs migrations again, which must be a no-op.
	second := newSQLiteStore(t, path)
	v, ok := second.Get(ctx, credstore.SlotAccess)
	require.True(t, ok)
	require.Equal(t, "A1", v)
}

func TestSQLiteStore_ClosedDatabaseReadsAsAbsent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := credstore.NewSQLiteStore(filepath.Join(t.TempDir(), "creds.db"))
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, credstore.SlotAccess, "A1"))
	require.NoError(t, s.Close())

	_, ok := s.Get(ctx, credstore.SlotAccess)
	require.False(t, ok)
}
