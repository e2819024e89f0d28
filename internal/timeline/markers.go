package timeline

import "math"

// markerSteps maps visible-range thresholds to gridline step sizes, in
// descending order. Steps are round numbers so marker years stay legible
// at every zoom level.
var markerSteps = []struct {
	rangeAbove float64
	step       float64
}{
	{5_000_000, 1_000_000},
	{1_000_000, 200_000},
	{200_000, 50_000},
	{50_000, 10_000},
	{10_000, 2_000},
	{2_000, 500},
	{500, 100},
	{100, 20},
	{20, 5},
}

// MarkerStep chooses the gridline step size for a visible year range.
func MarkerStep(r YearRange) float64 {
	span := r.End - r.Start
	for _, entry := range markerSteps {
		if span > entry.rangeAbove {
			return entry.step
		}
	}
	return 1
}

// Markers returns every multiple of the chosen step inside [Start, End).
func Markers(r YearRange) []float64 {
	step := MarkerStep(r)
	first := math.Ceil(r.Start/step) * step

	var years []float64
	for year := first; year < r.End; year += step {
		years = append(years, year)
	}
	return years
}
