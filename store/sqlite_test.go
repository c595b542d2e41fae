package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T, name string) (*SQLiteOffsetStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "offsets.db")
	s, err := NewSQLiteOffsetStore(path, name)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSQLiteOffsetStore_LoadWithoutSaveReturnsZero(t *testing.T) {
	s, _ := newSQLiteStore(t, "mybot")

	offset, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), offset)
}

func TestSQLiteOffsetStore_SaveLoadRoundtrip(t *testing.T) {
	s, _ := newSQLiteStore(t, "mybot")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, 314))

	offset, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(314), offset)

	// Upsert replaces the previous value.
	require.NoError(t, s.Save(ctx, 315))
	offset, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(315), offset)
}

func TestSQLiteOffsetStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offsets.db")
	ctx := context.Background()

	s1, err := NewSQLiteOffsetStore(path, "mybot")
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, 900))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteOffsetStore(path, "mybot")
	require.NoError(t, err)
	defer s2.Close()

	offset, err := s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(900), offset, "offset should survive a restart")
}

func TestSQLiteOffsetStore_NamesAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offsets.db")
	ctx := context.Background()

	a, err := NewSQLiteOffsetStore(path, "bot-a")
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Save(ctx, 10))

	b, err := NewSQLiteOffsetStore(path, "bot-b")
	require.NoError(t, err)
	defer b.Close()

	offset, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), offset, "bot-b should not see bot-a's offset")

	require.NoError(t, b.Save(ctx, 20))

	offset, err = a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), offset)
}
