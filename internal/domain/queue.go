package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type QueueAction string

const QueueActionAdd QueueAction = "add"

type Collection string

const (
	CollectionSessions Collection = "sessions"
	CollectionSections Collection = "sections"
	CollectionTheme    Collection = "theme"
)

func ParseCollection(raw string) (Collection, error) {
	switch Collection(raw) {
	case CollectionSessions, CollectionSections, CollectionTheme:
		return Collection(raw), nil
	default:
		return "", fmt.Errorf("unknown queue collection %q", raw)
	}
}

// QueueItem is a pending remote write. ID is assigned by the queue on
// enqueue and is zero before that.
type QueueItem struct {
	ID         int64
	Action     QueueAction
	Collection Collection
	Payload    json.RawMessage
	EnqueuedAt time.Time
}

func NewSessionQueueItem(session Session, now time.Time) (QueueItem, error) {
	return newQueueItem(CollectionSessions, session, now)
}

func NewSectionsQueueItem(sections Sections, now time.Time) (QueueItem, error) {
	if sections == nil {
		sections = Sections{}
	}
	return newQueueItem(CollectionSections, sections, now)
}

func NewThemeQueueItem(theme Theme, now time.Time) (QueueItem, error) {
	return newQueueItem(CollectionTheme, theme, now)
}

func newQueueItem(collection Collection, payload any, now time.Time) (QueueItem, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return QueueItem{}, fmt.Errorf("encode %s payload: %w", collection, err)
	}
	return QueueItem{
		Action:     QueueActionAdd,
		Collection: collection,
		Payload:    raw,
		EnqueuedAt: now,
	}, nil
}

func (q QueueItem) Session() (Session, error) {
	var session Session
	if err := q.decode(CollectionSessions, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (q QueueItem) Sections() (Sections, error) {
	var sections Sections
	if err := q.decode(CollectionSections, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (q QueueItem) Theme() (Theme, error) {
	var theme Theme
	if err := q.decode(CollectionTheme, &theme); err != nil {
		return "", err
	}
	return ParseTheme(string(theme))
}

func (q QueueItem) decode(want Collection, dst any) error {
	if q.Collection != want {
		return fmt.Errorf("queue item %d holds %s, not %s", q.ID, q.Collection, want)
	}
	if err := json.Unmarshal(q.Payload, dst); err != nil {
		return fmt.Errorf("decode queue item %d: %w", q.ID, err)
	}
	return nil
}
