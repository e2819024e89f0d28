package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/timeaxis/timeaxis/internal/models"
	"github.com/timeaxis/timeaxis/internal/seed"
	"github.com/timeaxis/timeaxis/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	db, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st, err := store.New(context.Background(), db)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	return NewServer(st, "localhost:0")
}

func TestHandleEvents(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/events", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected wildcard CORS, got %q", origin)
	}

	var events []models.HistoricalEvent
	if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(events) != len(seed.Events) {
		t.Errorf("expected %d events, got %d", len(seed.Events), len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i-1].Year > events[i].Year {
			t.Fatalf("events not sorted at %d", i)
		}
	}
}

func TestHandleEventsYearFilter(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/events?start_year=1900&end_year=1950", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var events []models.HistoricalEvent
	if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(events) == 0 {
		t.Fatalf("expected events in range")
	}
	for _, e := range events {
		if e.Year < 1900 || e.Year > 1950 {
			t.Errorf("event %q outside range: %v", e.Title, e.Year)
		}
	}
}

func TestHandleEventsFilterBoundsInclusive(t *testing.T) {
	srv := testServer(t)

	// The moon landing sits exactly on both bounds.
	req := httptest.NewRequest("GET", "/api/events?start_year=1969&end_year=1969", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	var events []models.HistoricalEvent
	if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(events) != 1 || events[0].ID != "seed-apollo-11" {
		t.Fatalf("expected only the 1969 event, got %+v", events)
	}
}

func TestHandleEventsInvalidFilterReturnsAll(t *testing.T) {
	srv := testServer(t)

	for _, query := range []string{
		"?start_year=abc&end_year=2000",
		"?start_year=1900",
		"?end_year=2000",
		"?start_year=&end_year=",
	} {
		req := httptest.NewRequest("GET", "/api/events"+query, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", query, w.Code)
		}
		var events []models.HistoricalEvent
		if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
			t.Fatalf("%s: decoding response: %v", query, err)
		}
		if len(events) != len(seed.Events) {
			t.Errorf("%s: expected full list, got %d events", query, len(events))
		}
	}
}

func TestWriteJSONNil(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, nil)

	if w.Body.String() != "[]" {
		t.Errorf("expected '[]' for nil, got %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
}
