package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
)

const (
	fileMode        = 0o600
	dirMode         = 0o700
	tempFilePattern = ".pomodoroData-*.json.tmp"
)

// Store keeps the local snapshot as one JSON document on disk.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

var _ ports.SnapshotStore = (*Store)(nil)

func New(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("snapshot path is empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve snapshot path: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Store{path: filepath.Clean(absPath), logger: logger}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored snapshot. A missing, unreadable or corrupt
// document yields the default snapshot; the failure is only logged.
func (s *Store) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Save replaces the document atomically.
func (s *Store) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(snapshot)
}

func (s *Store) Update(ctx context.Context, fn func(domain.Snapshot) (domain.Snapshot, error)) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.load())
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	if err := s.save(next); err != nil {
		return domain.Snapshot{}, err
	}
	return next.Normalize(), nil
}

func (s *Store) load() domain.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("snapshot unreadable, using defaults",
				slog.String("path", s.path),
				slog.String("error", err.Error()),
			)
		}
		return domain.DefaultSnapshot()
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warn("snapshot corrupt, using defaults",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return domain.DefaultSnapshot()
	}

	return snapshot.Normalize()
}

func (s *Store) save(snapshot domain.Snapshot) error {
	data, err := json.Marshal(snapshot.Normalize())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp snapshot file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp snapshot file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temp snapshot file: %w", err)
	}

	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp snapshot file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp snapshot file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}

	cleanup = false
	return nil
}
