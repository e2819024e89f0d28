package timeline

// YearRange is the half-open span of years currently visible.
type YearRange struct {
	Start float64
	End   float64
}

// Viewport maps between calendar years and horizontal pixel positions for
// one rendered timeline. It owns the interaction state for panning and
// zooming. Not safe for concurrent use; it belongs to a single view.
type Viewport struct {
	CenterYear float64
	ZoomLevel  int

	width        float64
	panning      bool
	lastPointerX float64
}

// New creates a viewport centered on year at the given zoom level. The width
// is unknown until SetWidth is called; until then all pixel computations
// return 0.
func New(centerYear float64, zoomLevel int) *Viewport {
	return &Viewport{
		CenterYear: centerYear,
		ZoomLevel:  ClampZoom(zoomLevel),
	}
}

// SetWidth records the rendered track width in pixels.
func (v *Viewport) SetWidth(w float64) {
	if w < 0 {
		w = 0
	}
	v.width = w
}

// Width returns the rendered track width in pixels.
func (v *Viewport) Width() float64 {
	return v.width
}

// Scale returns the active zoom table entry.
func (v *Viewport) Scale() Scale {
	return Scales[ClampZoom(v.ZoomLevel)]
}

// IsPanning reports whether a drag is in progress.
func (v *Viewport) IsPanning() bool {
	return v.panning
}

// pxPerYear is the pixel density at the current zoom, or 0 when the width is
// not yet known.
func (v *Viewport) pxPerYear() float64 {
	if v.width <= 0 {
		return 0
	}
	return v.width / v.Scale().YearsPer1000Px * 1000
}

// YearToPixel converts a calendar year to a horizontal pixel offset within
// the viewport. Pure given the current state.
func (v *Viewport) YearToPixel(year float64) float64 {
	ppy := v.pxPerYear()
	if ppy == 0 {
		return 0
	}
	return (year-v.CenterYear)*ppy + v.width/2
}

// PixelToYear is the exact inverse of YearToPixel.
func (v *Viewport) PixelToYear(px float64) float64 {
	ppy := v.pxPerYear()
	if ppy == 0 {
		return 0
	}
	return (px-v.width/2)/ppy + v.CenterYear
}

// OnWheel applies one zoom step toward the cursor. The year under the cursor
// is read under the old scale before the zoom level changes, then the center
// year is solved so that year lands back on the same pixel under the new
// scale. That ordering is what keeps the cursor anchored.
func (v *Viewport) OnWheel(deltaY float64, cursorPixelX float64) {
	yearAtCursor := v.PixelToYear(cursorPixelX)

	step := 0
	switch {
	case deltaY > 0:
		step = -1
	case deltaY < 0:
		step = 1
	}
	v.ZoomLevel = ClampZoom(v.ZoomLevel + step)

	ppy := v.pxPerYear()
	if ppy == 0 {
		return
	}
	v.CenterYear = yearAtCursor - (cursorPixelX-v.width/2)/ppy
}

// OnPointerDown begins a pan gesture.
func (v *Viewport) OnPointerDown(x float64) {
	v.panning = true
	v.lastPointerX = x
}

// OnPointerMove shifts the center year while panning. Dragging right moves
// the timeline content right, so the center year decreases. No-op when no
// pan is active.
func (v *Viewport) OnPointerMove(x float64) {
	if !v.panning {
		return
	}
	deltaPixels := x - v.lastPointerX
	v.lastPointerX = x

	ppy := v.pxPerYear()
	if ppy == 0 {
		return
	}
	v.CenterYear -= deltaPixels / ppy
}

// OnPointerUp ends the pan gesture. Idempotent.
func (v *Viewport) OnPointerUp() {
	v.panning = false
}

// OnPointerLeave ends the pan gesture unconditionally. Idempotent.
func (v *Viewport) OnPointerLeave() {
	v.panning = false
}

// SetView jumps to the given year and zoom level, bypassing gesture state.
func (v *Viewport) SetView(year float64, zoomLevel int) {
	v.CenterYear = year
	v.ZoomLevel = ClampZoom(zoomLevel)
}

// VisibleYearRange inverse-maps the viewport edges. Callers use it to cull
// off-screen events and to place gridline markers.
func (v *Viewport) VisibleYearRange() YearRange {
	return YearRange{
		Start: v.PixelToYear(0),
		End:   v.PixelToYear(v.width),
	}
}
