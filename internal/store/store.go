package store

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/timeaxis/timeaxis/internal/logging"
	"github.com/timeaxis/timeaxis/internal/models"
	"github.com/timeaxis/timeaxis/internal/seed"
)

// DefaultProviderID is the id of the provider seeded on first run.
const DefaultProviderID = "default-gemini"

// Store is the application state store: settings, AI providers, and the
// merged event list. Core components read provider credentials from it and
// write through AddCustomEvent; nothing else in the core persists state.
type Store struct {
	db        *DB
	Settings  *SettingsRepository
	Events    *EventRepository
	Providers *ProviderRepository
	log       zerolog.Logger
}

// New wires the repositories over an opened database and seeds the default
// provider when the table is empty.
func New(ctx context.Context, db *DB) (*Store, error) {
	if err := db.MigrateUp(ctx); err != nil {
		return nil, err
	}

	s := &Store{
		db:        db,
		Settings:  NewSettingsRepository(db),
		Events:    NewEventRepository(db),
		Providers: NewProviderRepository(db),
		log:       logging.Component("store"),
	}

	if err := s.seedDefaultProvider(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) seedDefaultProvider(ctx context.Context) error {
	providers, err := s.Providers.List(ctx)
	if err != nil {
		return err
	}
	if len(providers) > 0 {
		return nil
	}

	def := models.AIProvider{
		ID:      DefaultProviderID,
		Name:    "Google Gemini Flash",
		ModelID: models.DefaultGeminiModel,
	}
	if err := s.Providers.Create(ctx, &def); err != nil {
		return err
	}
	return s.Settings.SetActiveProviderID(ctx, def.ID)
}

// ActiveProvider returns the selected provider, or nil when none is
// configured.
func (s *Store) ActiveProvider(ctx context.Context) (*models.AIProvider, error) {
	id, err := s.Settings.ActiveProviderID(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}

	provider, err := s.Providers.Get(ctx, id)
	if errors.Is(err, ErrProviderNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// DeleteProvider removes a provider; when it was the active one, selection
// falls back to the first remaining provider.
func (s *Store) DeleteProvider(ctx context.Context, id string) error {
	activeID, err := s.Settings.ActiveProviderID(ctx)
	if err != nil {
		return err
	}

	if err := s.Providers.Delete(ctx, id); err != nil {
		return err
	}

	if activeID != id {
		return nil
	}

	remaining, err := s.Providers.List(ctx)
	if err != nil {
		return err
	}
	next := ""
	if len(remaining) > 0 {
		next = remaining[0].ID
	}
	return s.Settings.SetActiveProviderID(ctx, next)
}

// AllEvents returns the merged built-in and custom events sorted by year
// ascending.
func (s *Store) AllEvents(ctx context.Context) ([]models.HistoricalEvent, error) {
	custom, err := s.Events.List(ctx)
	if err != nil {
		return nil, err
	}

	merged := make([]models.HistoricalEvent, 0, len(seed.Events)+len(custom))
	merged = append(merged, seed.Events...)
	merged = append(merged, custom...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Year < merged[j].Year
	})

	return merged, nil
}

// AddCustomEvent stores a proposed event as a custom event and returns it.
// Events sourced from an AI search are silently dropped when an existing
// event's title matches case-insensitively; the returned event is then nil.
func (s *Store) AddCustomEvent(ctx context.Context, proposed models.ProposedEvent, source models.EventSource) (*models.HistoricalEvent, error) {
	if source == models.SourceAISearch {
		existing, err := s.AllEvents(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range existing {
			if strings.EqualFold(e.Title, proposed.Title) {
				s.log.Debug().Str("title", proposed.Title).Msg("duplicate AI search event dropped")
				return nil, nil
			}
		}
	}

	event := models.HistoricalEvent{
		Year:     proposed.Year,
		Track:    proposed.Track,
		Title:    proposed.Title,
		TitleZH:  proposed.TitleZH,
		Tags:     proposed.Tags,
		IsCustom: true,
	}
	if err := s.Events.Create(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
