// Package styles holds the lipgloss theme tokens for the timeline TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// TrackColors defines the identity colors of the two tracks.
type TrackColors struct {
	China string
	World string
}

// ChromeColors defines non-content UI colors.
type ChromeColors struct {
	Header   string
	Footer   string
	Selected string
	Input    string
}

// Theme defines the timeline TUI style tokens. ANSI 256 color codes.
type Theme struct {
	Name string

	Foreground string
	Muted      string
	Accent     string
	Axis       string
	Marker     string

	Track  TrackColors
	Chrome ChromeColors
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"starmap": StarmapTheme,
	"scroll":  ScrollTheme,
}

// StarmapTheme is the default dark palette, cool blues on deep space.
var StarmapTheme = Theme{
	Name:       "starmap",
	Foreground: "252",
	Muted:      "244",
	Accent:     "81",
	Axis:       "60",
	Marker:     "103",
	Track: TrackColors{
		China: "203",
		World: "75",
	},
	Chrome: ChromeColors{
		Header:   "39",
		Footer:   "244",
		Selected: "226",
		Input:    "117",
	},
}

// ScrollTheme is the parchment palette, warm tones for the ancient-scroll look.
var ScrollTheme = Theme{
	Name:       "scroll",
	Foreground: "223",
	Muted:      "137",
	Accent:     "179",
	Axis:       "95",
	Marker:     "137",
	Track: TrackColors{
		China: "167",
		World: "108",
	},
	Chrome: ChromeColors{
		Header:   "179",
		Footer:   "137",
		Selected: "220",
		Input:    "186",
	},
}

// ForName resolves a theme by name, falling back to starmap.
func ForName(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return StarmapTheme
}

func (t Theme) Base() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Foreground))
}

func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted))
}

func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true)
}

func (t Theme) AxisStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Axis))
}

func (t Theme) MarkerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Marker))
}

func (t Theme) TrackStyle(china bool) lipgloss.Style {
	color := t.Track.World
	if china {
		color = t.Track.China
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (t Theme) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Chrome.Selected)).Bold(true)
}

func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Chrome.Header)).Bold(true)
}

func (t Theme) FooterStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Chrome.Footer))
}

func (t Theme) InputStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Chrome.Input))
}
