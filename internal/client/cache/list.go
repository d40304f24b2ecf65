// Package cache holds the session-scoped list caches. A ListCache keeps the
// last fetched collection of one record kind together with its freshness
// timestamp and an in-flight flag that coalesces concurrent refreshes.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
	"github.com/dmitrijs2005/quotekeeper/internal/logging"
)

// Fetcher loads the summary projection of a collection.
type Fetcher func(ctx context.Context) ([]models.Record, error)

// ListCache is safe for concurrent use.
type ListCache struct {
	mu sync.Mutex

	kind models.Kind
	ttl  time.Duration
	now  func() time.Time
	log  logging.Logger

	records       []models.Record
	lastRefreshed time.Time
	inFlight      bool
	changed       chan struct{}
}

// NewListCache returns an empty cache for kind. A zero ttl means every
// unforced Load refreshes.
func NewListCache(kind models.Kind, ttl time.Duration, now func() time.Time, log logging.Logger) *ListCache {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logging.NopLogger{}
	}
	return &ListCache{
		kind:    kind,
		ttl:     ttl,
		now:     now,
		log:     log.With("kind", string(kind)),
		changed: make(chan struct{}),
	}
}

// Kind returns the record kind the cache holds.
func (c *ListCache) Kind() models.Kind { return c.kind }

// Load returns the cached collection, refreshing it through fetch when it is
// stale or force is set. While a refresh is in flight every other call,
// forced or not, returns the current snapshot without calling fetch.
// On fetch failure the cache is left untouched and the snapshot is returned
// together with the error.
func (c *ListCache) Load(ctx context.Context, force bool, fetch Fetcher) ([]models.Record, error) {
	c.mu.Lock()
	if c.inFlight {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.log.Debug(ctx, "refresh in flight, returning cached list")
		return snap, nil
	}
	if !force && c.freshLocked() {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	}
	c.inFlight = true
	c.mu.Unlock()

	var (
		fetched []models.Record
		err     error
	)
	func() {
		defer func() {
			c.mu.Lock()
			c.inFlight = false
			c.mu.Unlock()
		}()
		fetched, err = fetch(ctx)
	}()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn(ctx, "list refresh failed", "error", err)
		return c.snapshotLocked(), err
	}
	c.records = dedupe(fetched)
	c.lastRefreshed = c.now()
	c.notifyLocked()
	return c.snapshotLocked(), nil
}

func (c *ListCache) freshLocked() bool {
	return len(c.records) > 0 && c.now().Sub(c.lastRefreshed) < c.ttl
}

// Prepend puts rec at the head of the collection, dropping any element that
// carries the same id.
func (c *ListCache) Prepend(rec models.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Record, 0, len(c.records)+1)
	out = append(out, rec)
	for _, r := range c.records {
		if r.ID != rec.ID {
			out = append(out, r)
		}
	}
	c.records = out
	c.notifyLocked()
}

// Replace swaps the element whose id matches rec.ID. It reports whether an
// element was replaced.
func (c *ListCache) Replace(rec models.Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.records {
		if c.records[i].ID == rec.ID {
			c.records[i] = rec
			c.notifyLocked()
			return true
		}
	}
	return false
}

// Remove drops the element with the given id and reports whether it existed.
func (c *ListCache) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.records {
		if c.records[i].ID == id {
			c.records = append(c.records[:i:i], c.records[i+1:]...)
			c.notifyLocked()
			return true
		}
	}
	return false
}

// Find returns the cached element with the given id.
func (c *ListCache) Find(id string) (models.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return models.Record{}, false
}

// Snapshot returns a copy of the cached collection.
func (c *ListCache) Snapshot() []models.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Clear empties the cache and resets its freshness.
func (c *ListCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = nil
	c.lastRefreshed = time.Time{}
	c.notifyLocked()
}

// LastRefreshed returns the time of the last successful refresh.
func (c *ListCache) LastRefreshed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefreshed
}

// InFlight reports whether a refresh is outstanding.
func (c *ListCache) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Changed returns a channel that is closed on the next change to the
// collection. Callers that got a coalesced result wait on it to pick up the
// outcome of the in-flight refresh.
func (c *ListCache) Changed() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changed
}

func (c *ListCache) notifyLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *ListCache) snapshotLocked() []models.Record {
	out := make([]models.Record, len(c.records))
	copy(out, c.records)
	return out
}

// dedupe keeps the first occurrence of every id.
func dedupe(in []models.Record) []models.Record {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.Record, 0, len(in))
	for _, r := range in {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
