package player

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Controller owns the ordered playback queue, the current item and the
// pipeline driver. All operations serialize on one mutex so that queue
// order, the current item and the pipeline state always move together;
// even reads take the lock to get a consistent snapshot.
type Controller struct {
	mu          sync.Mutex
	driver      Driver
	items       []*QueueItem
	current     *QueueItem
	completions *CompletionRunner
}

// NewController creates a controller around the given pipeline driver.
func NewController(driver Driver) *Controller {
	return &Controller{
		driver:      driver,
		completions: NewCompletionRunner(),
	}
}

// Add appends a new item to the tail of the queue. Absolute filesystem
// paths are normalized to file:// URIs; anything else must already be a
// valid absolute URI. onComplete may be nil.
func (c *Controller) Add(rawURI, displayName string, onComplete CompletionFunc) (*QueueItem, error) {
	var u *url.URL
	var err error
	if strings.HasPrefix(rawURI, "/") {
		u = &url.URL{Scheme: "file", Path: rawURI}
	} else {
		u, err = url.Parse(rawURI)
		if err != nil {
			return nil, fmt.Errorf("invalid uri %q: %w", rawURI, err)
		}
		if u.Scheme == "" {
			return nil, fmt.Errorf("invalid uri %q: missing scheme", rawURI)
		}
	}

	item := newQueueItem(displayName, u, onComplete)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	log.Printf("queued %q (%s)", item.displayName, item.id)
	return item, nil
}

// Remove deletes the item with the given id from anywhere in the queue.
// Removing an id that is not queued is a no-op, not an error.
func (c *Controller) Remove(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, item := range c.items {
		if item.id != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return nil
}

// List returns a snapshot of the queued items in playback order. The
// head of the returned slice is the next item to play.
func (c *Controller) List() []*QueueItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*QueueItem, len(c.items))
	copy(out, c.items)
	return out
}

// Current returns the actively loaded item, or nil when idle.
func (c *Controller) Current() *QueueItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Start begins or resumes playback. With an idle pipeline it pops the
// queue head, loads it and starts the pipeline; from Paused it resumes;
// while Playing it is an idempotent success. Returns the current item.
func (c *Controller) Start() (*QueueItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked()
}

func (c *Controller) startLocked() (*QueueItem, error) {
	switch c.driver.State() {
	case StateNull:
		item, err := c.nextItemLocked()
		if err != nil {
			return nil, err
		}
		if _, err := c.driver.Start(); err != nil {
			// The popped item must not be lost on a failed start.
			c.requeueFront(item)
			c.current = nil
			return nil, fmt.Errorf("failed to start playback: %w", err)
		}
		return item, nil
	case StatePaused:
		if _, err := c.driver.Start(); err != nil {
			return nil, fmt.Errorf("failed to resume playback: %w", err)
		}
	}
	return c.current, nil
}

// nextItemLocked pops the queue head and loads it as the pipeline
// source. On failure the item goes back to the head of the queue.
func (c *Controller) nextItemLocked() (*QueueItem, error) {
	if len(c.items) == 0 {
		return nil, ErrQueueEmpty
	}
	item := c.items[0]
	c.items = c.items[1:]
	if err := c.driver.SetSource(item.uri.String()); err != nil {
		c.requeueFront(item)
		return nil, fmt.Errorf("failed to queue item: %w", err)
	}
	c.current = item
	return item, nil
}

func (c *Controller) requeueFront(item *QueueItem) {
	c.items = append([]*QueueItem{item}, c.items...)
}

// Stop halts playback and clears the current item. The outgoing item's
// completion callback is not invoked; stopping is an explicit user
// action, not a completion.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked()
}

func (c *Controller) stopLocked() error {
	switch c.driver.State() {
	case StatePlaying, StatePaused, StateReady:
		if err := c.driver.Stop(); err != nil {
			return err
		}
		c.current = nil
	}
	return nil
}

// Pause suspends playback. Only valid while playing.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver.State() != StatePlaying {
		return ErrNotPlaying
	}
	return c.driver.Pause()
}

// Skip ends the current item and advances to the next queued one. The
// outgoing item counts as completed, so its callback fires. Returns
// ErrQueueEmpty when there is nothing left to advance to.
func (c *Controller) Skip() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.skipLocked()
}

func (c *Controller) skipLocked() error {
	outgoing := c.current
	if err := c.stopLocked(); err != nil {
		return err
	}
	if outgoing != nil && outgoing.onComplete != nil {
		c.completions.Dispatch(outgoing.displayName, outgoing.onComplete)
	}
	_, err := c.startLocked()
	return err
}

// Seek moves playback by deltaSeconds relative to the current position
// and returns the resulting absolute position in seconds.
func (c *Controller) Seek(deltaSeconds int64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver.State() != StatePlaying {
		return 0, ErrNotPlaying
	}
	return c.driver.Seek(deltaSeconds)
}

// Close stops playback and waits for any in-flight completion callbacks
// to finish. Used on process shutdown.
func (c *Controller) Close() error {
	err := c.Stop()
	c.completions.Wait()
	return err
}
