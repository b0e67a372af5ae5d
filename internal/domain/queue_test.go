package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueItemPayloads(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	session := sessionAt("s-1", 42)

	item, err := NewSessionQueueItem(session, now)
	require.NoError(t, err)
	assert.Equal(t, QueueActionAdd, item.Action)
	assert.Equal(t, CollectionSessions, item.Collection)
	assert.Equal(t, now, item.EnqueuedAt)

	decoded, err := item.Session()
	require.NoError(t, err)
	assert.Equal(t, session, decoded)

	_, err = item.Theme()
	assert.ErrorContains(t, err, "holds sessions, not theme")
}

func TestQueueItemNilSectionsEncodeAsEmptyList(t *testing.T) {
	item, err := NewSectionsQueueItem(nil, time.Now())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(item.Payload))
}

func TestQueueItemThemeRejectsUnknownValue(t *testing.T) {
	item := QueueItem{Collection: CollectionTheme, Payload: []byte(`"neon"`)}

	_, err := item.Theme()
	assert.True(t, IsValidation(err))
}
