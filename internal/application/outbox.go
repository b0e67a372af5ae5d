package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
)

// Outbox puts remote writes on the offline queue for signed-in users.
// Guest data reaches the remote store through the sign-in merge instead.
type Outbox struct {
	queue      ports.OfflineQueue
	identities ports.IdentityRepository
	clock      ports.Clock
	logger     *slog.Logger

	mu        sync.Mutex
	onEnqueue func()
}

func NewOutbox(queue ports.OfflineQueue, identities ports.IdentityRepository, clock ports.Clock, logger *slog.Logger) *Outbox {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Outbox{queue: queue, identities: identities, clock: clock, logger: logger}
}

// OnEnqueue registers fn to run after each successful enqueue, usually to
// kick a drain.
func (o *Outbox) OnEnqueue(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onEnqueue = fn
}

func (o *Outbox) Session(ctx context.Context, session domain.Session) {
	item, err := domain.NewSessionQueueItem(session, o.clock.Now())
	o.enqueue(ctx, item, err)
}

func (o *Outbox) Sections(ctx context.Context, sections domain.Sections) {
	item, err := domain.NewSectionsQueueItem(sections, o.clock.Now())
	o.enqueue(ctx, item, err)
}

func (o *Outbox) Theme(ctx context.Context, theme domain.Theme) {
	item, err := domain.NewThemeQueueItem(theme, o.clock.Now())
	o.enqueue(ctx, item, err)
}

// enqueue never fails the caller; the local write already succeeded.
func (o *Outbox) enqueue(ctx context.Context, item domain.QueueItem, buildErr error) {
	if buildErr != nil {
		o.logger.Error("build queue item failed", slog.String("collection", string(item.Collection)), slog.Any("error", buildErr))
		return
	}

	identity, err := o.identities.Get(ctx)
	if err != nil {
		o.logger.Warn("read identity failed, write not queued", slog.Any("error", err))
		return
	}
	if !identity.Authenticated() {
		return
	}

	id, err := o.queue.Enqueue(ctx, item)
	if err != nil {
		o.logger.Error("enqueue failed", slog.String("collection", string(item.Collection)), slog.Any("error", err))
		return
	}
	o.logger.Debug("queued remote write", slog.Int64("id", id), slog.String("collection", string(item.Collection)))

	o.mu.Lock()
	fn := o.onEnqueue
	o.mu.Unlock()
	if fn != nil {
		fn()
	}
}
