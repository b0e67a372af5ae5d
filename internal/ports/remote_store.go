package ports

import (
	"context"

	"github.com/bnema/studypomo/internal/domain"
)

// RemoteStore is the per-user cloud document hierarchy. Every write is an
// idempotent upsert keyed by session id or by a fixed settings document.
type RemoteStore interface {
	UpsertSession(ctx context.Context, userID string, session domain.Session) error
	PutSections(ctx context.Context, userID string, sections domain.Sections) error
	PutTheme(ctx context.Context, userID string, theme domain.Theme) error
	// MergeBatch pushes sessions and sections without overwriting sessions
	// already stored remotely.
	MergeBatch(ctx context.Context, userID string, sessions []domain.Session, sections domain.Sections) error
	// Fetch returns the remote snapshot; Theme is empty when never written.
	Fetch(ctx context.Context, userID string) (domain.Snapshot, error)
}

// Connectivity reports whether the remote store is reachable.
type Connectivity interface {
	Online(ctx context.Context) bool
}
