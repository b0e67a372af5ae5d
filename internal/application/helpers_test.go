package application

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	sqlitequeue "github.com/bnema/studypomo/internal/adapters/queue/sqlite"
	tomlrepo "github.com/bnema/studypomo/internal/adapters/repo/toml"
	"github.com/bnema/studypomo/internal/adapters/store/jsonfile"
	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
	"github.com/bnema/studypomo/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 4, 7, 14, 30, 0, 0, time.UTC)

func mockAnyContext() interface{} {
	return mock.Anything
}

// testEnv wires the real local adapters into a temp directory.
type testEnv struct {
	dir        string
	cfg        *viper.Viper
	clock      *mocks.MockClock
	snapshots  *jsonfile.Store
	queue      *sqlitequeue.Queue
	identities *tomlrepo.IdentityRepository
	settings   *tomlrepo.SettingsRepository
	states     *tomlrepo.TimerStateRepository
	outbox     *Outbox
	data       *DataService
	enqueued   int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := viper.New()
	cfg.Set(tomlrepo.KeySettingsPath, filepath.Join(dir, "settings.toml"))
	cfg.Set(tomlrepo.KeyTimerStatePath, filepath.Join(dir, "timer.toml"))
	cfg.Set(tomlrepo.KeyIdentityPath, filepath.Join(dir, "identity.toml"))

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(testNow).Maybe()

	snapshots, err := jsonfile.New(filepath.Join(dir, "pomodoroData.json"), nil)
	require.NoError(t, err)

	queue, err := sqlitequeue.Open(context.Background(), filepath.Join(dir, "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = queue.Close() })

	identities, err := tomlrepo.NewIdentityRepository(cfg)
	require.NoError(t, err)
	settings, err := tomlrepo.NewSettingsRepository(cfg, domain.DefaultSettings())
	require.NoError(t, err)
	states, err := tomlrepo.NewTimerStateRepository(cfg, clock)
	require.NoError(t, err)

	env := &testEnv{
		dir:        dir,
		cfg:        cfg,
		clock:      clock,
		snapshots:  snapshots,
		queue:      queue,
		identities: identities,
		settings:   settings,
		states:     states,
	}
	env.outbox = NewOutbox(queue, identities, clock, nil)
	env.outbox.OnEnqueue(func() { env.enqueued++ })
	env.data = NewDataService(snapshots, queue, env.outbox, clock, nil)
	return env
}

func (e *testEnv) signIn(t *testing.T, userID string) domain.Identity {
	t.Helper()

	identity := domain.Identity{UserID: userID, Email: userID + "@example.com", SecretRef: domain.TokenSecretRef(userID)}
	require.NoError(t, e.identities.Save(context.Background(), identity))
	return identity
}

func (e *testEnv) pending(t *testing.T) []domain.QueueItem {
	t.Helper()

	items, err := e.queue.List(context.Background())
	require.NoError(t, err)
	return items
}

func connectivity(t *testing.T, online bool) *mocks.MockConnectivity {
	t.Helper()

	conn := mocks.NewMockConnectivity(t)
	conn.EXPECT().Online(mockAnyContext()).Return(online).Maybe()
	return conn
}

func (e *testEnv) syncService(remote ports.RemoteStore, connectivity ports.Connectivity) *SyncService {
	return NewSyncService(e.queue, e.snapshots, e.identities, remote, connectivity, e.clock, nil)
}

func session(id string, at time.Time, minutes int, section string) domain.Session {
	return domain.Session{
		ID:        id,
		Date:      domain.FormatDate(at),
		Timestamp: at.UnixMilli(),
		Duration:  minutes,
		Mode:      domain.ModeWork,
		Focus:     domain.FocusNormal,
		Section:   section,
	}
}
