package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
)

// DataService owns the local snapshot: sessions, sections and theme.
// Every write lands locally first and is then handed to the outbox.
type DataService struct {
	snapshots ports.SnapshotStore
	backup    ports.SessionBackup
	outbox    *Outbox
	clock     ports.Clock
	logger    *slog.Logger
}

func NewDataService(snapshots ports.SnapshotStore, backup ports.SessionBackup, outbox *Outbox, clock ports.Clock, logger *slog.Logger) *DataService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &DataService{snapshots: snapshots, backup: backup, outbox: outbox, clock: clock, logger: logger}
}

func (s *DataService) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *DataService) Sections(ctx context.Context) (domain.Sections, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Sections, nil
}

// RecordSession stores a finished session. Recording an id that is
// already stored is a no-op.
func (s *DataService) RecordSession(ctx context.Context, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	_, changed, err := s.update(ctx, func(snapshot domain.Snapshot) (domain.Snapshot, error) {
		if snapshot.HasSession(session.ID) {
			return snapshot, errSnapshotUnchanged
		}
		return snapshot.AddSession(session), nil
	})
	if err != nil || !changed {
		return err
	}

	if err := s.backup.Put(ctx, session); err != nil {
		s.logger.Warn("back up session failed", slog.String("session_id", session.ID), slog.Any("error", err))
	}
	s.outbox.Session(ctx, session)

	return nil
}

func (s *DataService) AddSection(ctx context.Context, name string) (domain.Sections, error) {
	snapshot, _, err := s.update(ctx, func(snapshot domain.Snapshot) (domain.Snapshot, error) {
		sections, err := snapshot.Sections.Add(name)
		if err != nil {
			return snapshot, err
		}
		snapshot.Sections = sections
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	s.outbox.Sections(ctx, snapshot.Sections)

	return snapshot.Sections, nil
}

func (s *DataService) RemoveSection(ctx context.Context, name string) (domain.Sections, error) {
	snapshot, _, err := s.update(ctx, func(snapshot domain.Snapshot) (domain.Snapshot, error) {
		sections, err := snapshot.Sections.Remove(name)
		if err != nil {
			return snapshot, err
		}
		snapshot.Sections = sections
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	s.outbox.Sections(ctx, snapshot.Sections)

	return snapshot.Sections, nil
}

func (s *DataService) SetTheme(ctx context.Context, raw string) (domain.Theme, error) {
	theme, err := domain.ParseTheme(raw)
	if err != nil {
		return "", err
	}

	if _, _, err := s.update(ctx, func(snapshot domain.Snapshot) (domain.Snapshot, error) {
		snapshot.Theme = theme
		return snapshot, nil
	}); err != nil {
		return "", err
	}
	s.outbox.Theme(ctx, theme)

	return theme, nil
}

// Recover unions the session backup into the snapshot and returns the
// sessions that were missing.
func (s *DataService) Recover(ctx context.Context) ([]domain.Session, error) {
	backedUp, err := s.backup.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session backup: %w", err)
	}

	restored := make([]domain.Session, 0)
	_, changed, err := s.update(ctx, func(snapshot domain.Snapshot) (domain.Snapshot, error) {
		restored = restored[:0]
		for _, session := range backedUp {
			if snapshot.HasSession(session.ID) {
				continue
			}
			snapshot = snapshot.AddSession(session)
			restored = append(restored, session)
		}
		if len(restored) == 0 {
			return snapshot, errSnapshotUnchanged
		}
		return domain.Merge(snapshot, domain.Snapshot{}), nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return restored, nil
	}

	for _, session := range restored {
		s.outbox.Session(ctx, session)
	}

	s.logger.Info("recovered sessions from backup", slog.Int("count", len(restored)))
	return restored, nil
}

func (s *DataService) BackupByDate(ctx context.Context, date string) ([]domain.Session, error) {
	if _, err := domain.ParseDate(date, s.clock.Now().Location()); err != nil {
		return nil, err
	}

	sessions, err := s.backup.ByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("read session backup: %w", err)
	}
	return sessions, nil
}

func (s *DataService) Report(ctx context.Context, period domain.Period, continuousSeconds int) (StatsReport, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return StatsReport{}, err
	}

	now := s.clock.Now()
	bar, err := domain.BuildBarChart(snapshot.Sessions, period, now)
	if err != nil {
		return StatsReport{}, err
	}
	pie, err := domain.BuildPieChart(snapshot.Sessions, snapshot.Sections, period, now)
	if err != nil {
		return StatsReport{}, err
	}

	return StatsReport{
		Period:   period,
		Now:      now,
		Today:    domain.ComputeTodayStats(snapshot.Sessions, now, continuousSeconds),
		Bar:      bar,
		Pie:      pie,
		Sections: snapshot.Sections,
		Theme:    snapshot.Theme,
	}, nil
}

// errSnapshotUnchanged lets an update callback skip the save.
var errSnapshotUnchanged = errors.New("snapshot unchanged")

// update runs fn as one locked read-modify-write on the snapshot store.
// Errors from fn come back unwrapped; errSnapshotUnchanged reports
// changed=false without an error.
func (s *DataService) update(ctx context.Context, fn func(domain.Snapshot) (domain.Snapshot, error)) (domain.Snapshot, bool, error) {
	var fnErr error
	snapshot, err := s.snapshots.Update(ctx, func(current domain.Snapshot) (domain.Snapshot, error) {
		next, err := fn(current)
		fnErr = err
		return next, err
	})

	switch {
	case errors.Is(fnErr, errSnapshotUnchanged):
		return domain.Snapshot{}, false, nil
	case fnErr != nil:
		return domain.Snapshot{}, false, fnErr
	case err != nil:
		return domain.Snapshot{}, false, fmt.Errorf("save snapshot: %w", err)
	}
	return snapshot, true, nil
}
