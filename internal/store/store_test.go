package store

import (
	"context"
	"errors"
	"testing"

	"github.com/timeaxis/timeaxis/internal/models"
	"github.com/timeaxis/timeaxis/internal/seed"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	if err := db.MigrateUp(context.Background()); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	return db
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := New(context.Background(), db)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestSettingsRepository_Language(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewSettingsRepository(db)
	ctx := context.Background()

	lang, err := repo.Language(ctx)
	if err != nil {
		t.Fatalf("Language failed: %v", err)
	}
	if lang != "en" {
		t.Fatalf("expected default language en, got %q", lang)
	}

	if err := repo.SetLanguage(ctx, "zh"); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}
	lang, err = repo.Language(ctx)
	if err != nil {
		t.Fatalf("Language failed: %v", err)
	}
	if lang != "zh" {
		t.Fatalf("expected zh, got %q", lang)
	}
}

func TestSettingsRepository_SettingsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewSettingsRepository(db)
	ctx := context.Background()

	got, err := repo.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if got != models.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}

	want := models.Settings{
		Theme:         models.ThemeScroll,
		TimelineStyle: models.TimelineDotted,
		PinStyle:      models.PinGlow,
	}
	if err := repo.SetSettings(ctx, want); err != nil {
		t.Fatalf("SetSettings failed: %v", err)
	}
	got, err = repo.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if got != want {
		t.Fatalf("settings mismatch: got %+v", got)
	}
}

func TestProviderRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewProviderRepository(db)
	ctx := context.Background()

	p1 := &models.AIProvider{Name: "Gemini", ModelID: "gemini-2.5-flash-preview-04-17", APIKey: "k1"}
	p2 := &models.AIProvider{Name: "Local", ModelID: "qwen3", APIKey: "k2", BaseURL: "http://localhost:11434/v1"}

	if err := repo.Create(ctx, p1); err != nil {
		t.Fatalf("Create p1 failed: %v", err)
	}
	if err := repo.Create(ctx, p2); err != nil {
		t.Fatalf("Create p2 failed: %v", err)
	}
	if p1.ID == "" || p2.ID == "" {
		t.Fatalf("expected generated IDs, got %q and %q", p1.ID, p2.ID)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(all))
	}
	if all[0].Name != "Gemini" || all[1].Name != "Local" {
		t.Fatalf("unexpected order: %q, %q", all[0].Name, all[1].Name)
	}
	if all[1].Kind() != models.BackendCompatible {
		t.Fatalf("expected compatible backend for provider with base URL")
	}

	p1.Name = "Gemini Flash"
	if err := repo.Update(ctx, *p1); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := repo.Get(ctx, p1.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Gemini Flash" {
		t.Fatalf("unexpected name after update: %q", got.Name)
	}

	if err := repo.Delete(ctx, p2.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, p2.ID); !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestEventRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewEventRepository(db)
	ctx := context.Background()

	event := &models.HistoricalEvent{
		Year:     -221,
		Track:    models.TrackChina,
		Title:    "Qin Unifies China",
		TitleZH:  "秦统一中国",
		Tags:     []string{"dynasty", "empire"},
		IsCustom: true,
	}
	if err := repo.Create(ctx, event); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if event.ID == "" {
		t.Fatalf("expected generated ID")
	}

	got, err := repo.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Year != -221 || got.Track != models.TrackChina {
		t.Fatalf("unexpected event: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "dynasty" {
		t.Fatalf("unexpected tags: %v", got.Tags)
	}
	if !got.IsCustom {
		t.Fatalf("expected custom event")
	}

	got.Title = "Qin Unification"
	if err := repo.Update(ctx, *got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	updated, err := repo.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("Get after update failed: %v", err)
	}
	if updated.Title != "Qin Unification" {
		t.Fatalf("unexpected title: %q", updated.Title)
	}

	if err := repo.Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, event.ID); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestStore_SeedsDefaultProvider(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	active, err := s.ActiveProvider(ctx)
	if err != nil {
		t.Fatalf("ActiveProvider failed: %v", err)
	}
	if active == nil {
		t.Fatalf("expected a seeded active provider")
	}
	if active.ID != DefaultProviderID {
		t.Fatalf("unexpected active provider: %q", active.ID)
	}
	if active.ModelID != models.DefaultGeminiModel {
		t.Fatalf("unexpected model: %q", active.ModelID)
	}
	if active.HasCredentials() {
		t.Fatalf("seeded provider should have no credentials")
	}
}

func TestStore_DeleteProviderFallsBack(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	second := &models.AIProvider{Name: "Backup", ModelID: "gpt-4o", APIKey: "k", BaseURL: "https://api.example.com/v1"}
	if err := s.Providers.Create(ctx, second); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.DeleteProvider(ctx, DefaultProviderID); err != nil {
		t.Fatalf("DeleteProvider failed: %v", err)
	}

	active, err := s.ActiveProvider(ctx)
	if err != nil {
		t.Fatalf("ActiveProvider failed: %v", err)
	}
	if active == nil || active.ID != second.ID {
		t.Fatalf("expected fallback to remaining provider, got %+v", active)
	}

	if err := s.DeleteProvider(ctx, second.ID); err != nil {
		t.Fatalf("DeleteProvider failed: %v", err)
	}
	active, err = s.ActiveProvider(ctx)
	if err != nil {
		t.Fatalf("ActiveProvider failed: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active provider, got %+v", active)
	}
}

func TestStore_AllEventsMergedSorted(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	added, err := s.AddCustomEvent(ctx, models.ProposedEvent{
		Year:  -500,
		Track: models.TrackWorld,
		Title: "Persian Wars Begin",
	}, models.SourceManual)
	if err != nil {
		t.Fatalf("AddCustomEvent failed: %v", err)
	}
	if added == nil || !added.IsCustom {
		t.Fatalf("expected a custom event, got %+v", added)
	}

	all, err := s.AllEvents(ctx)
	if err != nil {
		t.Fatalf("AllEvents failed: %v", err)
	}
	if len(all) != len(seed.Events)+1 {
		t.Fatalf("expected %d events, got %d", len(seed.Events)+1, len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Year > all[i].Year {
			t.Fatalf("events not sorted at %d: %v > %v", i, all[i-1].Year, all[i].Year)
		}
	}

	found := false
	for _, e := range all {
		if e.Title == "Persian Wars Begin" {
			found = true
		}
	}
	if !found {
		t.Fatalf("custom event missing from merged list")
	}
}

func TestStore_AddCustomEventDuplicateSuppression(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	// Case-insensitive match against a built-in title drops AI search results.
	dup := models.ProposedEvent{
		Year:  1969,
		Track: models.TrackWorld,
		Title: "APOLLO 11 MOON LANDING",
	}
	added, err := s.AddCustomEvent(ctx, dup, models.SourceAISearch)
	if err != nil {
		t.Fatalf("AddCustomEvent failed: %v", err)
	}
	if added != nil {
		t.Fatalf("expected duplicate to be dropped, got %+v", added)
	}

	custom, err := s.Events.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(custom) != 0 {
		t.Fatalf("expected no stored events, got %d", len(custom))
	}

	// Manual additions are not deduplicated.
	added, err = s.AddCustomEvent(ctx, dup, models.SourceManual)
	if err != nil {
		t.Fatalf("AddCustomEvent failed: %v", err)
	}
	if added == nil {
		t.Fatalf("expected manual duplicate to be stored")
	}
}
