// Package timeline implements the viewport model behind the pannable,
// zoomable chronology: the year/pixel coordinate transforms, the discrete
// zoom scale table, and gridline marker generation.
package timeline

// Scale is one discrete zoom level. YearsPer1000Px is the density of the
// level; smaller values are more zoomed in. MinYear and MaxYear are range
// hints carried by the table; the viewport does not clamp against them.
type Scale struct {
	Level          int
	YearsPer1000Px float64
	Name           string
	MinYear        float64
	MaxYear        float64
}

// Scales is the fixed ordered zoom table, indexed by zoom level. With the
// pxPerYear formula in Viewport, a level's visible span works out to
// YearsPer1000Px/1000 years, so level 6 shows one millennium.
var Scales = []Scale{
	{Level: 0, YearsPer1000Px: 10_000_000_000, Name: "Deep Time", MinYear: -13_000_000, MaxYear: 3000},
	{Level: 1, YearsPer1000Px: 2_000_000_000, Name: "Prehistory", MinYear: -5_000_000, MaxYear: 3000},
	{Level: 2, YearsPer1000Px: 500_000_000, Name: "Early Humans", MinYear: -1_000_000, MaxYear: 3000},
	{Level: 3, YearsPer1000Px: 100_000_000, Name: "Ice Age", MinYear: -200_000, MaxYear: 3000},
	{Level: 4, YearsPer1000Px: 20_000_000, Name: "Civilization", MinYear: -50_000, MaxYear: 3000},
	{Level: 5, YearsPer1000Px: 5_000_000, Name: "Antiquity", MinYear: -10_000, MaxYear: 3000},
	{Level: 6, YearsPer1000Px: 1_000_000, Name: "Era", MinYear: -3_000, MaxYear: 3000},
	{Level: 7, YearsPer1000Px: 200_000, Name: "Century", MinYear: -3_000, MaxYear: 3000},
	{Level: 8, YearsPer1000Px: 50_000, Name: "Decade", MinYear: -3_000, MaxYear: 3000},
	{Level: 9, YearsPer1000Px: 10_000, Name: "Year", MinYear: -3_000, MaxYear: 3000},
}

// DefaultZoom is the zoom level the timeline opens at, and the level a view
// jumps to when a search result or generated event is selected.
const DefaultZoom = 6

// DefaultCenterYear is the calendar year the timeline opens centered on.
const DefaultCenterYear = 1900

// ClampZoom constrains a zoom level to a valid table index.
func ClampZoom(level int) int {
	if level < 0 {
		return 0
	}
	if level >= len(Scales) {
		return len(Scales) - 1
	}
	return level
}
