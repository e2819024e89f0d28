package models

// Theme selects the overall visual style of the timeline.
type Theme string

const (
	ThemeStarmap Theme = "Starmap"
	ThemeScroll  Theme = "Scroll"
)

// TimelineStyle is the center-line rendering style.
type TimelineStyle string

const (
	TimelineLine   TimelineStyle = "line"
	TimelineDotted TimelineStyle = "dotted"
)

// PinStyle is the event marker rendering style.
type PinStyle string

const (
	PinDefault PinStyle = "pin"
	PinGlow    PinStyle = "glow"
	PinRing    PinStyle = "ring"
)

// Settings holds the persisted display preferences.
type Settings struct {
	Theme         Theme         `json:"theme"`
	TimelineStyle TimelineStyle `json:"timeline_style"`
	PinStyle      PinStyle      `json:"pin_style"`
}

// DefaultSettings returns the out-of-the-box display preferences.
func DefaultSettings() Settings {
	return Settings{
		Theme:         ThemeStarmap,
		TimelineStyle: TimelineLine,
		PinStyle:      PinDefault,
	}
}
