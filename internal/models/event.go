// Package models defines the core domain types for timeaxis.
package models

// Track identifies one of the two parallel timeline lanes.
type Track string

const (
	TrackChina Track = "China"
	TrackWorld Track = "World"
)

// ValidTrack reports whether t is a known track.
func ValidTrack(t Track) bool {
	return t == TrackChina || t == TrackWorld
}

// HistoricalEvent is a single event on the timeline. Years are signed;
// negative values are BCE. Non-integer years are allowed for scale markers.
type HistoricalEvent struct {
	// ID is the unique identifier. Unique across built-in and custom events.
	ID string `json:"id"`

	// Year is the calendar year of the event.
	Year float64 `json:"year"`

	// Track is the lane the event belongs to.
	Track Track `json:"track"`

	// Title is the English display title.
	Title string `json:"title"`

	// TitleZH is the Chinese display title.
	TitleZH string `json:"title_zh"`

	// Tags is an ordered list of short classification strings.
	Tags []string `json:"tags"`

	// IsCustom is true for user- or AI-added events.
	IsCustom bool `json:"is_custom,omitempty"`
}

// DisplayTitle returns the title for the given language code ("en" or "zh").
func (e HistoricalEvent) DisplayTitle(lang string) string {
	if lang == "zh" && e.TitleZH != "" {
		return e.TitleZH
	}
	return e.Title
}

// ProposedEvent is an event produced by AI generation before it is assigned
// an ID and stored.
type ProposedEvent struct {
	Year    float64  `json:"year"`
	Track   Track    `json:"track"`
	Title   string   `json:"title"`
	TitleZH string   `json:"title_zh"`
	Tags    []string `json:"tags"`
}

// EventSource records where a custom event came from. Events sourced from an
// AI search are subject to duplicate suppression on insert.
type EventSource string

const (
	SourceManual   EventSource = "manual"
	SourceAISearch EventSource = "ai_search"
	SourceGenerate EventSource = "generate"
)

// Source is a web citation attached to a search-grounded model response.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// EventDetails is the AI-fetched enrichment record for one event. Immutable
// once cached.
type EventDetails struct {
	// Summary is a short narrative summary of the event.
	Summary string `json:"summary"`

	// ImageQuery is a 2-3 word keyword phrase for an image search API.
	ImageQuery string `json:"image_query"`

	// Sources lists grounding citations, when the backend provides them.
	Sources []Source `json:"sources,omitempty"`
}
