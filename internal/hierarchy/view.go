package hierarchy

import (
	"context"
	"sync"
	"time"

	"github.com/s3sync/s3sync/internal/keyspace"
	"github.com/s3sync/s3sync/internal/models"
)

// ScopeState tracks the load lifecycle of one scope. The only transitions
// out of StateLoading are to StateLoaded or StateFailed; a stalled fetch is
// a transport concern, not a state.
type ScopeState int

const (
	StateUnloaded ScopeState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s ScopeState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unloaded"
	}
}

// VisibleFile is one renderable row: an object record with its in-scope
// display name resolved.
type VisibleFile struct {
	Name         string
	Key          string
	Size         int64
	LastModified time.Time
}

// Controller is the presentation-facing facade over the cache. It owns the
// selected scope and is the single source of truth for what renders as a
// row: everything passes through keyspace.DisplayName, nothing else may.
type Controller struct {
	cache *Cache

	mu       sync.Mutex
	selected string
	states   map[string]ScopeState
}

// NewController starts at the root scope with nothing loaded.
func NewController(cache *Cache) *Controller {
	return &Controller{cache: cache, states: make(map[string]ScopeState)}
}

// Selected returns the currently selected scope ("" for root).
func (v *Controller) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// State reports the load state of scope. Re-selecting a failed scope moves
// it back through StateLoading.
func (v *Controller) State(scope string) ScopeState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.states[scope]
}

// SelectRoot selects the root scope, loading it if needed.
func (v *Controller) SelectRoot(ctx context.Context) error {
	return v.selectScope(ctx, "")
}

// SelectFolder selects prefix, fetching its listing on first navigation.
// Selecting an already-cached folder issues no fetch.
func (v *Controller) SelectFolder(ctx context.Context, prefix string) error {
	return v.selectScope(ctx, prefix)
}

func (v *Controller) selectScope(ctx context.Context, scope string) error {
	v.mu.Lock()
	v.selected = scope
	if _, ok := v.cache.Peek(scope); ok {
		v.states[scope] = StateLoaded
		v.mu.Unlock()
		return nil
	}
	v.states[scope] = StateLoading
	v.mu.Unlock()

	var err error
	if scope == "" {
		_, err = v.cache.Root(ctx)
	} else {
		_, err = v.cache.Folder(ctx, scope)
	}
	v.finish(scope, err)
	return err
}

// Refresh re-fetches the selected scope's listing.
func (v *Controller) Refresh(ctx context.Context) error {
	v.mu.Lock()
	scope := v.selected
	v.states[scope] = StateLoading
	v.mu.Unlock()

	_, err := v.cache.Refresh(ctx, scope)
	v.finish(scope, err)
	return err
}

func (v *Controller) finish(scope string, err error) {
	v.mu.Lock()
	if err != nil {
		v.states[scope] = StateFailed
	} else {
		v.states[scope] = StateLoaded
	}
	v.mu.Unlock()
}

// ResetView clears the whole cache and returns to a freshly loaded root.
func (v *Controller) ResetView(ctx context.Context) error {
	v.cache.Reset()
	v.mu.Lock()
	v.states = make(map[string]ScopeState)
	v.mu.Unlock()
	return v.SelectRoot(ctx)
}

// VisibleFiles computes the rows for the selected scope. Until a folder's
// dedicated listing has arrived, the root listing filtered by scope
// membership stands in, so navigation never shows a blank screen; the
// authoritative listing replaces (never merges with) that view.
func (v *Controller) VisibleFiles() []VisibleFile {
	v.mu.Lock()
	scope := v.selected
	v.mu.Unlock()

	if listing, ok := v.cache.Peek(scope); ok {
		return visible(listing.Files, scope)
	}
	if scope != "" {
		if root, ok := v.cache.Peek(""); ok {
			var scoped []models.ObjectRecord
			for _, f := range root.Files {
				if keyspace.BelongsToScope(f.Key, scope) {
					scoped = append(scoped, f)
				}
			}
			return visible(scoped, scope)
		}
	}
	return nil
}

// Folders returns the child folder prefixes of the selected scope.
func (v *Controller) Folders() []string {
	v.mu.Lock()
	scope := v.selected
	v.mu.Unlock()

	if listing, ok := v.cache.Peek(scope); ok {
		return listing.Folders
	}
	return nil
}

// FileCount is the number of visible rows in the selected scope, directory
// markers excluded.
func (v *Controller) FileCount() int {
	return len(v.VisibleFiles())
}

func visible(files []models.ObjectRecord, scope string) []VisibleFile {
	var rows []VisibleFile
	for _, f := range files {
		name, ok := keyspace.DisplayName(f.Key, scope)
		if !ok {
			continue
		}
		rows = append(rows, VisibleFile{
			Name:         name,
			Key:          f.Key,
			Size:         f.Size,
			LastModified: f.LastModified,
		})
	}
	return rows
}
