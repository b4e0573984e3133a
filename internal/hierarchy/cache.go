// Package hierarchy holds the client-side state of the folder view: a
// read-through cache of per-prefix listings and the view controller that
// renders from it. The cache is constructed with an injected fetch function
// rather than reaching for any ambient client, so tests supply fakes and
// assert call counts.
package hierarchy

import (
	"context"
	"sync"

	"github.com/s3sync/s3sync/internal/errs"
	"github.com/s3sync/s3sync/internal/models"
)

// ListFunc fetches the listing for one folder prefix. The empty prefix is
// the root.
type ListFunc func(ctx context.Context, prefix string) (models.Listing, error)

// fetchCall is one outstanding fetch for a scope. seq and gen are fixed at
// issuance; err is written once before done is closed and only carries
// meaning when the call was still the scope's latest issuance on arrival.
type fetchCall struct {
	seq  uint64
	gen  uint64
	err  error
	done chan struct{}
}

// Cache answers "what should be displayed for scope S" with at most one
// in-flight fetch per scope. Entries live until Reset; a successful upload
// refreshes its target scope through Refresh. Two rules order concurrent
// activity without ever letting a slow stale response overwrite a newer one:
//
//   - per-scope issuance sequence: only the response of the latest-issued
//     fetch for a scope may commit; superseded responses are discarded on
//     arrival regardless of arrival order.
//   - reset generation: Reset bumps a counter; responses to fetches issued
//     before the bump are discarded on arrival.
//
// Fetches run on a background context: navigating away or cancelling a
// waiter abandons the result, it does not abort the network operation.
type Cache struct {
	fetch ListFunc

	mu       sync.Mutex
	gen      uint64
	entries  map[string]*models.Listing
	inflight map[string]*fetchCall
	seq      map[string]uint64
}

// NewCache builds an empty cache around fetch.
func NewCache(fetch ListFunc) *Cache {
	return &Cache{
		fetch:    fetch,
		entries:  make(map[string]*models.Listing),
		inflight: make(map[string]*fetchCall),
		seq:      make(map[string]uint64),
	}
}

// Root returns the root listing, fetching it on first use.
func (c *Cache) Root(ctx context.Context) (models.Listing, error) {
	return c.get(ctx, "")
}

// Folder returns the listing for prefix, fetching it on first use.
// Concurrent calls for the same prefix coalesce into one outstanding fetch.
func (c *Cache) Folder(ctx context.Context, prefix string) (models.Listing, error) {
	return c.get(ctx, prefix)
}

// Peek returns the cached listing for scope without triggering a fetch.
func (c *Cache) Peek(scope string) (models.Listing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.entries[scope]; ok {
		return *l, true
	}
	return models.Listing{}, false
}

// Refresh discards the cached entry for scope and re-fetches it. A refresh
// issued while a fetch for the same scope is in flight supersedes it. The
// old entry is dropped immediately: a failed refresh leaves the scope
// uncached rather than serving stale data as success.
func (c *Cache) Refresh(ctx context.Context, scope string) (models.Listing, error) {
	c.mu.Lock()
	delete(c.entries, scope)
	call := c.startLocked(scope)
	c.mu.Unlock()
	return c.wait(ctx, scope, call)
}

// Reset clears the root and every per-prefix entry. In-flight fetches are
// not cancelled, but their results are discarded on arrival.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries = make(map[string]*models.Listing)
	c.inflight = make(map[string]*fetchCall)
}

func (c *Cache) get(ctx context.Context, scope string) (models.Listing, error) {
	c.mu.Lock()
	if l, ok := c.entries[scope]; ok {
		out := *l
		c.mu.Unlock()
		return out, nil
	}
	call, ok := c.inflight[scope]
	if !ok {
		call = c.startLocked(scope)
	}
	c.mu.Unlock()
	return c.wait(ctx, scope, call)
}

// startLocked issues a new fetch for scope, superseding any in-flight one.
// Caller holds c.mu.
func (c *Cache) startLocked(scope string) *fetchCall {
	c.seq[scope]++
	call := &fetchCall{seq: c.seq[scope], gen: c.gen, done: make(chan struct{})}
	c.inflight[scope] = call
	go c.run(scope, call)
	return call
}

func (c *Cache) run(scope string, call *fetchCall) {
	// Not the waiter's context: cancellation is advisory and must not tear
	// down a fetch other callers may be coalesced onto.
	listing, err := c.fetch(context.Background(), scope)

	c.mu.Lock()
	if call.gen == c.gen && call.seq == c.seq[scope] {
		if err == nil {
			l := listing
			c.entries[scope] = &l
		}
		call.err = err
		if c.inflight[scope] == call {
			delete(c.inflight, scope)
		}
	}
	// Otherwise the response was superseded or outlived a reset: discard.
	c.mu.Unlock()
	close(call.done)
}

// wait blocks until a result for scope is committed or the caller's context
// expires. When the awaited call is superseded, the waiter follows the
// newer issuance instead of reporting a discarded result.
func (c *Cache) wait(ctx context.Context, scope string, call *fetchCall) (models.Listing, error) {
	for {
		select {
		case <-call.done:
		case <-ctx.Done():
			return models.Listing{}, errs.Wrap(errs.KindListing, "listing wait cancelled", ctx.Err())
		}

		c.mu.Lock()
		if l, ok := c.entries[scope]; ok {
			out := *l
			c.mu.Unlock()
			return out, nil
		}
		next, ok := c.inflight[scope]
		if ok && next != call {
			c.mu.Unlock()
			call = next
			continue
		}
		if !ok && call.err == nil {
			// The call's result was discarded by a reset and nothing newer
			// is outstanding: start over.
			next = c.startLocked(scope)
			c.mu.Unlock()
			call = next
			continue
		}
		c.mu.Unlock()
		return models.Listing{}, call.err
	}
}
