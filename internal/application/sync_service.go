package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
)

// SyncService delivers queued writes and merges local data on sign-in.
// Remote failures are logged and retried later; they never fail a local
// operation.
type SyncService struct {
	queue        ports.OfflineQueue
	snapshots    ports.SnapshotStore
	identities   ports.IdentityRepository
	remote       ports.RemoteStore
	connectivity ports.Connectivity
	clock        ports.Clock
	logger       *slog.Logger

	draining atomic.Bool
}

// NewSyncService accepts a nil remote when no remote store is configured;
// every drain is then skipped.
func NewSyncService(queue ports.OfflineQueue, snapshots ports.SnapshotStore, identities ports.IdentityRepository, remote ports.RemoteStore, connectivity ports.Connectivity, clock ports.Clock, logger *slog.Logger) *SyncService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &SyncService{
		queue:        queue,
		snapshots:    snapshots,
		identities:   identities,
		remote:       remote,
		connectivity: connectivity,
		clock:        clock,
		logger:       logger,
	}
}

func (s *SyncService) Configured() bool {
	return s.remote != nil
}

func (s *SyncService) Pending(ctx context.Context) ([]domain.QueueItem, error) {
	items, err := s.queue.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}
	return items, nil
}

func (s *SyncService) Online(ctx context.Context) bool {
	return s.remote != nil && s.connectivity != nil && s.connectivity.Online(ctx)
}

// Drain delivers queued items in FIFO order. Only one drain runs at a
// time; a concurrent call returns a skipped report at once.
func (s *SyncService) Drain(ctx context.Context) (DrainReport, error) {
	if !s.draining.CompareAndSwap(false, true) {
		return DrainReport{Skipped: true, Reason: SkipInFlight}, nil
	}
	defer s.draining.Store(false)

	identity, reason, err := s.gate(ctx)
	if err != nil {
		return DrainReport{}, err
	}
	if reason != "" {
		return s.skipped(ctx, reason)
	}

	items, err := s.queue.List(ctx)
	if err != nil {
		return DrainReport{}, fmt.Errorf("list queue: %w", err)
	}

	var report DrainReport
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}

		if err := s.deliver(ctx, identity.UserID, item); err != nil {
			report.Failed++
			s.logger.Warn("deliver queue item failed",
				slog.Int64("id", item.ID),
				slog.String("collection", string(item.Collection)),
				slog.Any("error", err),
			)
			continue
		}

		// The remote write is a keyed upsert, so a crash before this
		// removal only causes a harmless redelivery.
		if err := s.queue.Remove(ctx, item.ID); err != nil {
			report.Failed++
			s.logger.Error("dequeue delivered item failed", slog.Int64("id", item.ID), slog.Any("error", err))
			continue
		}
		report.Delivered++
	}

	report.Remaining = len(items) - report.Delivered
	if report.Delivered > 0 || report.Failed > 0 {
		s.logger.Info("drained queue",
			slog.Int("delivered", report.Delivered),
			slog.Int("failed", report.Failed),
			slog.Int("remaining", report.Remaining),
		)
	}

	return report, nil
}

func (s *SyncService) deliver(ctx context.Context, userID string, item domain.QueueItem) error {
	switch item.Collection {
	case domain.CollectionSessions:
		session, err := item.Session()
		if err != nil {
			return err
		}
		return s.remote.UpsertSession(ctx, userID, session)
	case domain.CollectionSections:
		sections, err := item.Sections()
		if err != nil {
			return err
		}
		return s.remote.PutSections(ctx, userID, sections)
	case domain.CollectionTheme:
		theme, err := item.Theme()
		if err != nil {
			return err
		}
		return s.remote.PutTheme(ctx, userID, theme)
	default:
		return fmt.Errorf("unknown queue collection %q", item.Collection)
	}
}

// MergeOnSignIn pushes local data, pulls the remote snapshot and stores
// the union locally. It runs once per sign-in; later calls are no-ops.
func (s *SyncService) MergeOnSignIn(ctx context.Context) (*MergeReport, error) {
	identity, reason, err := s.gate(ctx)
	if err != nil {
		return nil, err
	}
	if reason != "" || !identity.NeedsMerge() {
		return nil, nil
	}

	local, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if err := s.remote.MergeBatch(ctx, identity.UserID, local.Sessions, local.Sections); err != nil {
		return nil, fmt.Errorf("push local data: %w", err)
	}

	remote, err := s.remote.Fetch(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch remote data: %w", err)
	}

	// Writes that landed while the network calls ran are in the store, not
	// in local; merge against a fresh copy under the store lock.
	merged, err := s.snapshots.Update(ctx, func(current domain.Snapshot) (domain.Snapshot, error) {
		return domain.Merge(current, remote), nil
	})
	if err != nil {
		return nil, fmt.Errorf("save merged snapshot: %w", err)
	}

	identity.MergedAt = s.clock.Now()
	if err := s.identities.Save(ctx, identity); err != nil {
		return nil, fmt.Errorf("mark merge done: %w", err)
	}

	report := &MergeReport{
		Pushed:   len(local.Sessions),
		Fetched:  len(remote.Sessions),
		Sessions: len(merged.Sessions),
		Sections: len(merged.Sections),
	}
	s.logger.Info("merged local and remote data",
		slog.String("user_id", identity.UserID),
		slog.Int("pushed", report.Pushed),
		slog.Int("fetched", report.Fetched),
		slog.Int("sessions", report.Sessions),
	)

	return report, nil
}

// Sync runs a pending sign-in merge, then drains. A failed merge is logged
// and retried on the next sync.
func (s *SyncService) Sync(ctx context.Context) (SyncReport, error) {
	var report SyncReport

	merge, err := s.MergeOnSignIn(ctx)
	if err != nil {
		s.logger.Warn("sign-in merge failed", slog.Any("error", err))
	}
	report.Merge = merge

	drain, err := s.Drain(ctx)
	if err != nil {
		return report, err
	}
	report.Drain = drain

	return report, nil
}

// gate returns the identity to sync as, or a reason to skip.
func (s *SyncService) gate(ctx context.Context) (domain.Identity, string, error) {
	if s.remote == nil {
		return domain.Identity{}, SkipNotConfigured, nil
	}

	identity, err := s.identities.Get(ctx)
	if err != nil {
		return domain.Identity{}, "", fmt.Errorf("read identity: %w", err)
	}
	if !identity.Authenticated() {
		return identity, SkipGuest, nil
	}
	if s.connectivity != nil && !s.connectivity.Online(ctx) {
		return identity, SkipOffline, nil
	}

	return identity, "", nil
}

func (s *SyncService) skipped(ctx context.Context, reason string) (DrainReport, error) {
	items, err := s.queue.List(ctx)
	if err != nil {
		return DrainReport{}, fmt.Errorf("list queue: %w", err)
	}
	return DrainReport{Skipped: true, Reason: reason, Remaining: len(items)}, nil
}
