package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/timeaxis/timeaxis/internal/models"
)

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.Store.AllEvents(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("listing events")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Filtering kicks in only when both bounds parse; otherwise the full
	// list is returned.
	startStr := r.URL.Query().Get("start_year")
	endStr := r.URL.Query().Get("end_year")
	start, startErr := strconv.Atoi(startStr)
	end, endErr := strconv.Atoi(endStr)
	if startErr == nil && endErr == nil {
		filtered := make([]models.HistoricalEvent, 0, len(events))
		for _, e := range events {
			if e.Year >= float64(start) && e.Year <= float64(end) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	writeJSON(w, events)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Wildcard CORS: this is a local tool, not a public API.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if v == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
