package player

import (
	"context"
	"net/url"

	"github.com/google/uuid"
)

// CompletionFunc is an optional per-item side effect that runs when the
// item finishes playing or is skipped. It never runs on an explicit stop.
type CompletionFunc func(ctx context.Context) error

// QueueItem is a single media entry in the playback queue. Items are
// immutable once created; the id is used for removal and UI correlation.
type QueueItem struct {
	id          uuid.UUID
	displayName string
	uri         *url.URL
	onComplete  CompletionFunc
}

func newQueueItem(displayName string, uri *url.URL, onComplete CompletionFunc) *QueueItem {
	return &QueueItem{
		id:          uuid.New(),
		displayName: displayName,
		uri:         uri,
		onComplete:  onComplete,
	}
}

// ID returns the item's unique identifier.
func (qi *QueueItem) ID() uuid.UUID {
	return qi.id
}

// Name returns the item's display name.
func (qi *QueueItem) Name() string {
	return qi.displayName
}

// URI returns the item's resource locator.
func (qi *QueueItem) URI() *url.URL {
	return qi.uri
}
