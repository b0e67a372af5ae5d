package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesMatchingWrites(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, []string{"queue.db"}, 50*time.Millisecond, nil)

	var calls atomic.Int32
	require.NoError(t, w.Start(func() { calls.Add(1) }))
	t.Cleanup(func() { _ = w.Stop() })

	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "queue.db-wal"), []byte{byte(i)}, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("x"), 0o600))

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, []string{"queue.db"}, 20*time.Millisecond, nil)

	var calls atomic.Int32
	require.NoError(t, w.Start(func() { calls.Add(1) }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "timer.toml"), []byte("x"), 0o600))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, w.Stop())

	assert.Zero(t, calls.Load())
}

func TestWatcherStartTwiceFails(t *testing.T) {
	w := New(t.TempDir(), nil, 0, nil)
	require.NoError(t, w.Start(func() {}))
	defer w.Stop()

	assert.ErrorContains(t, w.Start(func() {}), "already running")
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), nil, 0, nil)
	assert.Error(t, w.Start(func() {}))
}
