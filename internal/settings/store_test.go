package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "themeOverride")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "themeOverride", "force_dark"))
	v, err := s.Get(ctx, "themeOverride")
	require.NoError(t, err)
	assert.Equal(t, "force_dark", v)

	require.NoError(t, s.Set(ctx, "themeOverride", "system"))
	v, err = s.Get(ctx, "themeOverride")
	require.NoError(t, err)
	assert.Equal(t, "system", v)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)
	assert.NoError(t, s.Close())
}

func TestFileStorePersists(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	exerciseStore(t, s)

	reopened, err := NewFileStore(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	v, err := reopened.Get(context.Background(), "themeOverride")
	require.NoError(t, err)
	assert.Equal(t, "system", v)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte("- not\n- a map\n"), 0644))

	_, err := NewFileStore(dir)
	assert.Error(t, err)
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	v, err := reopened.Get(context.Background(), "themeOverride")
	require.NoError(t, err)
	assert.Equal(t, "system", v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open("FILE", dir)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(BackendSQLite, DefaultPath(BackendSQLite, dir))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	assert.NoError(t, s.Close())

	_, err = Open("redis", dir)
	assert.Error(t, err)
}
