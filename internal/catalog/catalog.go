package catalog

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/services"
	"golang.org/x/sync/singleflight"
)

// Catalog holds the last successfully fetched collection and the current filter.
type Catalog struct {
	mu        sync.RWMutex
	lister    services.EventLister
	events    models.EventCollection
	filter    FilterState
	fetchedAt time.Time
	logger    *log.Logger
	inflight  singleflight.Group
}

// New creates an empty catalog backed by lister. A nil logger discards output.
func New(lister services.EventLister, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Catalog{lister: lister, filter: DefaultFilter(), logger: logger}
}

// Refresh fetches the full collection and replaces the held one wholesale.
//
// Concurrent calls share one fetch, run with the first caller's context.
// On error the previous collection is left untouched.
func (c *Catalog) Refresh(ctx context.Context) error {
	_, err, shared := c.inflight.Do("refresh", func() (any, error) {
		events, err := c.lister.ListEvents(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.events = events.Clone()
		c.fetchedAt = time.Now()
		c.logger.Debug("catalog refreshed", "count", len(c.events))
		return nil, nil
	})
	if err != nil && !shared {
		c.logger.Warn("catalog refresh failed", "error", err)
	}
	return err
}

// Replace installs events as the held collection without fetching.
func (c *Catalog) Replace(events models.EventCollection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = events.Clone()
	c.fetchedAt = time.Now()
}

// Loaded reports whether a fetch has ever succeeded.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.fetchedAt.IsZero()
}

// FetchedAt returns the time of the last successful refresh.
func (c *Catalog) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Events returns a copy of the full collection.
func (c *Catalog) Events() models.EventCollection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.events.Clone()
}

// Visible returns the collection filtered by the current state.
func (c *Catalog) Visible() models.EventCollection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ApplyFilters(c.events, c.filter)
}

// Filter returns the current filter state.
func (c *Catalog) Filter() FilterState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// SetFilter replaces the whole filter state.
func (c *Catalog) SetFilter(f FilterState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.Genre == "" {
		f.Genre = All
	}
	if f.Location == "" {
		f.Location = All
	}
	c.filter = f
}

func (c *Catalog) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.SearchTerm = term
}

func (c *Catalog) SetGenre(genre string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if genre == "" {
		genre = All
	}
	c.filter.Genre = genre
}

func (c *Catalog) SetLocation(location string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if location == "" {
		location = All
	}
	c.filter.Location = location
}

// ResetFilter restores [DefaultFilter].
func (c *Catalog) ResetFilter() {
	c.SetFilter(DefaultFilter())
}

// Lookup finds an event by id in the full collection, ignoring the filter.
func (c *Catalog) Lookup(id string) (models.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.events.Find(id)
}
