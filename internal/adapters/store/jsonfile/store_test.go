package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissingReturnsDefault(t *testing.T) {
	t.Parallel()

	store, err := New(filepath.Join(t.TempDir(), "pomodoroData.json"), nil)
	require.NoError(t, err)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSnapshot(), got)
}

func TestStoreLoadCorruptReturnsDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pomodoroData.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sessions": [`), 0o600))

	store, err := New(path, nil)
	require.NoError(t, err)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSnapshot(), got)
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "pomodoroData.json")
	store, err := New(path, nil)
	require.NoError(t, err)

	snapshot := domain.Snapshot{
		Sessions: []domain.Session{{
			ID:        "s-1",
			Date:      "2026-02-01",
			Timestamp: 1769934000000,
			Duration:  25,
			Mode:      domain.ModeWork,
			Focus:     domain.FocusFocused,
			Section:   "math",
		}},
		Sections: domain.Sections{"math"},
		Theme:    domain.ThemeDark,
	}
	require.NoError(t, store.Save(context.Background(), snapshot))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sessions": [{"id":"s-1","date":"2026-02-01","timestamp":1769934000000,"duration":25,"mode":"work","focus":"focused","section":"math"}],
		"sections": ["math"],
		"theme": "dark"
	}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStoreLoadAcceptsDocumentWithMissingFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pomodoroData.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sections":["a","a"]}`), 0o600))

	store, err := New(path, nil)
	require.NoError(t, err)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Snapshot{Sessions: []domain.Session{}, Sections: domain.Sections{"a"}, Theme: domain.ThemeLight}, got)
}

func TestStoreUpdateSerializesConcurrentWriters(t *testing.T) {
	t.Parallel()

	store, err := New(filepath.Join(t.TempDir(), "pomodoroData.json"), nil)
	require.NoError(t, err)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, func(snapshot domain.Snapshot) (domain.Snapshot, error) {
				return snapshot.AddSession(domain.Session{
					ID:        fmt.Sprintf("s-%d", i),
					Date:      "2026-02-01",
					Timestamp: 1769934000000 + int64(i),
					Duration:  25,
					Mode:      domain.ModeWork,
					Focus:     domain.FocusNormal,
				}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Sessions, writers)
}

func TestStoreUpdateErrorSkipsSave(t *testing.T) {
	t.Parallel()

	store, err := New(filepath.Join(t.TempDir(), "pomodoroData.json"), nil)
	require.NoError(t, err)
	ctx := context.Background()

	boom := errors.New("boom")
	_, err = store.Update(ctx, func(snapshot domain.Snapshot) (domain.Snapshot, error) {
		snapshot.Theme = domain.ThemeDark
		return snapshot, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSnapshot(), got)
}
