package docdir

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
)

const (
	docFileMode = 0o600
	docDirMode  = 0o700
)

// Store keeps the remote document hierarchy in a directory tree, one JSON
// file per document. It backs file:// remotes such as a synced folder.
type Store struct {
	root string
	mu   sync.Mutex
}

var (
	_ ports.RemoteStore  = (*Store)(nil)
	_ ports.Connectivity = (*Store)(nil)
)

type sectionsDocument struct {
	Items domain.Sections `json:"items"`
}

type themeDocument struct {
	Value domain.Theme `json:"value"`
}

func New(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("document root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve document root: %w", err)
	}
	return &Store{root: filepath.Clean(abs)}, nil
}

func (s *Store) Root() string {
	return s.root
}

// Online reports whether the document root is mounted.
func (s *Store) Online(context.Context) bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}

func (s *Store) UpsertSession(ctx context.Context, userID string, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	path, err := s.sessionPath(userID, session.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeDoc(ctx, path, session)
}

func (s *Store) PutSections(ctx context.Context, userID string, sections domain.Sections) error {
	if sections == nil {
		sections = domain.Sections{}
	}
	path, err := s.settingsPath(userID, "sections")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeDoc(ctx, path, sectionsDocument{Items: sections})
}

func (s *Store) PutTheme(ctx context.Context, userID string, theme domain.Theme) error {
	if _, err := domain.ParseTheme(string(theme)); err != nil {
		return err
	}
	path, err := s.settingsPath(userID, "theme")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeDoc(ctx, path, themeDocument{Value: theme})
}

// MergeBatch keeps remote sessions that already exist and unions the
// section list, local names first.
func (s *Store) MergeBatch(ctx context.Context, userID string, sessions []domain.Session, sections domain.Sections) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range sessions {
		if err := session.Validate(); err != nil {
			return err
		}
		path, err := s.sessionPath(userID, session.ID)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := s.writeDoc(ctx, path, session); err != nil {
			return err
		}
	}

	if sections == nil {
		return nil
	}
	path, err := s.settingsPath(userID, "sections")
	if err != nil {
		return err
	}
	var existing sectionsDocument
	if _, err := readDoc(path, &existing); err != nil {
		return err
	}
	merged := sections.Union(existing.Items)
	if len(merged) > domain.MaxSections {
		merged = merged[:domain.MaxSections]
	}
	return s.writeDoc(ctx, path, sectionsDocument{Items: merged})
}

func (s *Store) Fetch(ctx context.Context, userID string) (domain.Snapshot, error) {
	userDir, err := s.userDir(userID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := domain.Snapshot{Sessions: []domain.Session{}}

	entries, err := os.ReadDir(filepath.Join(userDir, "sessions"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.Snapshot{}, fmt.Errorf("list remote sessions: %w", err)
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return domain.Snapshot{}, ctx.Err()
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		var session domain.Session
		if _, err := readDoc(filepath.Join(userDir, "sessions", entry.Name()), &session); err != nil {
			return domain.Snapshot{}, err
		}
		snapshot.Sessions = append(snapshot.Sessions, session)
	}
	sort.SliceStable(snapshot.Sessions, func(i, j int) bool {
		return snapshot.Sessions[i].Timestamp < snapshot.Sessions[j].Timestamp
	})

	var sections sectionsDocument
	if _, err := readDoc(filepath.Join(userDir, "settings", "sections.json"), &sections); err != nil {
		return domain.Snapshot{}, err
	}
	snapshot.Sections = sections.Items

	var theme themeDocument
	if _, err := readDoc(filepath.Join(userDir, "settings", "theme.json"), &theme); err != nil {
		return domain.Snapshot{}, err
	}
	snapshot.Theme = theme.Value

	return snapshot, nil
}

func (s *Store) userDir(userID string) (string, error) {
	if err := validateComponent("user id", userID); err != nil {
		return "", err
	}
	return filepath.Join(s.root, "users", userID), nil
}

func (s *Store) sessionPath(userID, sessionID string) (string, error) {
	dir, err := s.userDir(userID)
	if err != nil {
		return "", err
	}
	if err := validateComponent("session id", sessionID); err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions", sessionID+".json"), nil
}

func (s *Store) settingsPath(userID, name string) (string, error) {
	dir, err := s.userDir(userID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings", name+".json"), nil
}

func validateComponent(label, value string) error {
	if value == "" || value == "." || value == ".." || strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("invalid %s %q", label, value)
	}
	return nil
}

func readDoc(path string, dst any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read document %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode document %s: %w", path, err)
	}
	return true, nil
}

func (s *Store) writeDoc(ctx context.Context, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), docDirMode); err != nil {
		return fmt.Errorf("create document directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), ".doc-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
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
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tempFile.Chmod(docFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp document: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}

	cleanup = false
	return nil
}
