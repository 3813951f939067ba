package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	w, err := New(path, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.ErrorIs(t, w.Start(), ErrAlreadyStarted)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))
	}

	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}

	select {
	case <-w.Changed():
		t.Fatal("expected writes to be coalesced")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	w, err := New(path, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0644))

	select {
	case <-w.Changed():
		t.Fatal("unexpected notification for another file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	errs := make(chan error, 4)
	w, err := New(path, WithOnError(func(err error) { errs <- err }))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.Remove(path))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrFileRemoved)
	case <-time.After(5 * time.Second):
		t.Fatal("expected removal error")
	}
}
