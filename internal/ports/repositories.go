package ports

import (
	"context"

	"github.com/bnema/studypomo/internal/domain"
)

// SnapshotStore persists the single local document. Load never fails on a
// missing or corrupt document; it returns domain.DefaultSnapshot instead.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
	// Update loads, applies fn and saves while holding the store lock, so
	// concurrent read-modify-writes cannot lose each other's changes. An
	// error from fn skips the save and is returned as is.
	Update(ctx context.Context, fn func(domain.Snapshot) (domain.Snapshot, error)) (domain.Snapshot, error)
}

// OfflineQueue is a durable FIFO of pending remote writes.
type OfflineQueue interface {
	Enqueue(ctx context.Context, item domain.QueueItem) (int64, error)
	List(ctx context.Context) ([]domain.QueueItem, error)
	Remove(ctx context.Context, id int64) error
}

// SessionBackup keeps a copy of every recorded session indexed by date.
type SessionBackup interface {
	Put(ctx context.Context, session domain.Session) error
	ByDate(ctx context.Context, date string) ([]domain.Session, error)
	All(ctx context.Context) ([]domain.Session, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}

type TimerStateRepository interface {
	Get(ctx context.Context) (domain.TimerState, bool, error)
	Save(ctx context.Context, state domain.TimerState) error
}

type IdentityRepository interface {
	Get(ctx context.Context) (domain.Identity, error)
	Save(ctx context.Context, identity domain.Identity) error
}
