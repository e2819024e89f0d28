package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeaxis/timeaxis/internal/models"
)

type fakeFetcher struct {
	calls   int
	details models.EventDetails
	err     error

	// cancelBeforeReturn cancels the caller's context mid-flight.
	cancelBeforeReturn context.CancelFunc
}

func (f *fakeFetcher) FetchEventDetails(ctx context.Context, title, lang string, provider models.AIProvider) (models.EventDetails, error) {
	f.calls++
	if f.cancelBeforeReturn != nil {
		f.cancelBeforeReturn()
	}
	return f.details, f.err
}

type fakeProviders struct {
	provider *models.AIProvider
}

func (f *fakeProviders) ActiveProvider() *models.AIProvider {
	return f.provider
}

func configured() *fakeProviders {
	return &fakeProviders{provider: &models.AIProvider{ID: "p", Name: "p", APIKey: "key"}}
}

var testEvent = models.HistoricalEvent{
	ID:    "ev-1",
	Year:  1969,
	Track: models.TrackWorld,
	Title: "Apollo 11",
}

func TestGetOrFetchCachesSuccess(t *testing.T) {
	fetcher := &fakeFetcher{details: models.EventDetails{Summary: "s", ImageQuery: "q"}}
	cache := NewCache(fetcher, configured())

	first := cache.GetOrFetch(context.Background(), testEvent, "en")
	require.NotNil(t, first)
	assert.Equal(t, "s", first.Summary)

	second := cache.GetOrFetch(context.Background(), testEvent, "en")
	require.NotNil(t, second)

	assert.Equal(t, 1, fetcher.calls, "second call must be served from cache")
}

func TestGetOrFetchNoProvider(t *testing.T) {
	fetcher := &fakeFetcher{}
	cache := NewCache(fetcher, &fakeProviders{})

	assert.Nil(t, cache.GetOrFetch(context.Background(), testEvent, "en"))
	assert.Zero(t, fetcher.calls)
	assert.Zero(t, cache.Len(), "absence of provider must not be cached")
}

func TestGetOrFetchMissingCredentials(t *testing.T) {
	fetcher := &fakeFetcher{}
	providers := &fakeProviders{provider: &models.AIProvider{ID: "p", Name: "p"}}
	cache := NewCache(fetcher, providers)

	assert.Nil(t, cache.GetOrFetch(context.Background(), testEvent, "en"))
	assert.Zero(t, fetcher.calls)

	// A later successful configuration retries.
	providers.provider.APIKey = "key"
	fetcher.details = models.EventDetails{Summary: "s", ImageQuery: "q"}
	assert.NotNil(t, cache.GetOrFetch(context.Background(), testEvent, "en"))
	assert.Equal(t, 1, fetcher.calls)
}

func TestGetOrFetchErrorNotCached(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("backend unavailable")}
	cache := NewCache(fetcher, configured())

	assert.Nil(t, cache.GetOrFetch(context.Background(), testEvent, "en"))
	assert.Zero(t, cache.Len())

	// Failures are retried on the next call.
	fetcher.err = nil
	fetcher.details = models.EventDetails{Summary: "s", ImageQuery: "q"}
	assert.NotNil(t, cache.GetOrFetch(context.Background(), testEvent, "en"))
	assert.Equal(t, 2, fetcher.calls)
}

func TestGetOrFetchCancelledNotCached(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &fakeFetcher{
		details:            models.EventDetails{Summary: "s", ImageQuery: "q"},
		cancelBeforeReturn: cancel,
	}
	cache := NewCache(fetcher, configured())

	// The fetch "succeeds" but the context was cancelled while in flight.
	assert.Nil(t, cache.GetOrFetch(ctx, testEvent, "en"))
	assert.Zero(t, cache.Len(), "a cancelled fetch must never populate the cache")

	// A fresh request issues a new fetch.
	fetcher.cancelBeforeReturn = nil
	got := cache.GetOrFetch(context.Background(), testEvent, "en")
	require.NotNil(t, got)
	assert.Equal(t, 2, fetcher.calls)
}

func TestGetOrFetchUsesLanguageTitle(t *testing.T) {
	var seenTitle string
	fetcher := &titleRecorder{seen: &seenTitle}
	cache := NewCache(fetcher, configured())

	event := testEvent
	event.TitleZH = "阿波罗11号"
	cache.GetOrFetch(context.Background(), event, "zh")

	assert.Equal(t, "阿波罗11号", seenTitle)
}

type titleRecorder struct {
	seen *string
}

func (r *titleRecorder) FetchEventDetails(ctx context.Context, title, lang string, provider models.AIProvider) (models.EventDetails, error) {
	*r.seen = title
	return models.EventDetails{Summary: "s", ImageQuery: "q"}, nil
}
