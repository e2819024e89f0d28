// Package enrich memoizes AI-fetched event details for the session. It
// guarantees a cached event is never refetched and that cancelled or failed
// fetches never populate the cache, so every failure is eligible for an
// immediate retry.
package enrich

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/timeaxis/timeaxis/internal/logging"
	"github.com/timeaxis/timeaxis/internal/models"
)

// Fetcher is the detail-fetch operation of the AI request layer.
type Fetcher interface {
	FetchEventDetails(ctx context.Context, title, lang string, provider models.AIProvider) (models.EventDetails, error)
}

// ProviderSource yields the currently active AI provider, or nil when none
// is configured.
type ProviderSource interface {
	ActiveProvider() *models.AIProvider
}

// Cache is the per-event-id store of enrichment records. Entries are
// immutable once stored and are never evicted for the session. Concurrent
// fetches for the same uncached id race at the network layer; whichever
// completes last wins the slot. Both are documented limitations, not bugs
// to fix here.
type Cache struct {
	fetcher   Fetcher
	providers ProviderSource
	log       zerolog.Logger

	mu      sync.Mutex
	details map[string]models.EventDetails
}

// NewCache creates an empty cache over the given fetcher.
func NewCache(fetcher Fetcher, providers ProviderSource) *Cache {
	return &Cache{
		fetcher:   fetcher,
		providers: providers,
		log:       logging.Component("enrich"),
		details:   make(map[string]models.EventDetails),
	}
}

// Get returns the cached details for an event id, if present.
func (c *Cache) Get(id string) (models.EventDetails, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.details[id]
	return d, ok
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.details)
}

// GetOrFetch returns cached details immediately when present, with no
// network call. Otherwise it fetches through the AI layer:
// a missing or credential-less provider yields nil without caching, so a
// later successful configuration is retried; a cancelled or failed fetch
// also yields nil and is never cached. Only a success observed before the
// context was cancelled populates the cache.
func (c *Cache) GetOrFetch(ctx context.Context, event models.HistoricalEvent, lang string) *models.EventDetails {
	if d, ok := c.Get(event.ID); ok {
		return &d
	}

	provider := c.providers.ActiveProvider()
	if provider == nil || !provider.HasCredentials() {
		c.log.Warn().Msg("no active AI provider with an API key")
		return nil
	}

	title := event.DisplayTitle(lang)
	details, err := c.fetcher.FetchEventDetails(ctx, title, lang, *provider)
	if err != nil {
		// Cancellation is a non-error outcome for the cache; everything else
		// was already logged by the request layer. Neither is cached.
		return nil
	}

	// Superseded while in flight: discard without caching.
	if ctx.Err() != nil {
		return nil
	}

	c.mu.Lock()
	c.details[event.ID] = details
	c.mu.Unlock()

	return &details
}
