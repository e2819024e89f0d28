package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/timeaxis/timeaxis/internal/i18n"
	"github.com/timeaxis/timeaxis/internal/logging"
	"github.com/timeaxis/timeaxis/internal/models"
	"github.com/timeaxis/timeaxis/internal/timeline"
	"github.com/timeaxis/timeaxis/internal/tui/styles"
)

const (
	timelineLoadTimeout = 5 * time.Second
	generateTimeout     = 120 * time.Second
	panFraction         = 0.1
)

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputGenerate
)

type eventsLoadedMsg struct {
	events []models.HistoricalEvent
	err    error
}

type eventsGeneratedMsg struct {
	added   int
	skipped int
	err     error
}

type timelineView struct {
	events    eventSource
	providers providerSource
	gateway   aiGateway
	app       *Model
	log       zerolog.Logger

	vp      *timeline.Viewport
	all     []models.HistoricalEvent
	lastErr error
	loading bool

	selectedID string

	mode       inputMode
	input      string
	generating bool
	status     string
}

func newTimelineView(events eventSource, providers providerSource, gateway aiGateway, app *Model, cfg Config) *timelineView {
	year := cfg.InitialYear
	if year == 0 {
		year = timeline.DefaultCenterYear
	}
	zoom := cfg.InitialZoom
	if zoom <= 0 {
		zoom = timeline.DefaultZoom
	}
	return &timelineView{
		events:    events,
		providers: providers,
		gateway:   gateway,
		app:       app,
		log:       logging.Component("tui.timeline"),
		vp:        timeline.New(year, zoom),
	}
}

func (v *timelineView) Init() tea.Cmd {
	if v.all == nil {
		v.loading = true
		return v.loadEventsCmd()
	}
	return nil
}

// CapturesInput reports whether a text input mode owns the keyboard.
func (v *timelineView) CapturesInput() bool {
	return v.mode != inputNone
}

func (v *timelineView) loadEventsCmd() tea.Cmd {
	events := v.events
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timelineLoadTimeout)
		defer cancel()
		all, err := events.AllEvents(ctx)
		return eventsLoadedMsg{events: all, err: err}
	}
}

func (v *timelineView) generateCmd(prompt string) tea.Cmd {
	providers := v.providers
	gateway := v.gateway
	events := v.events
	lang := string(v.app.Lang())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()

		provider, err := providers.ActiveProvider(ctx)
		if err != nil {
			return eventsGeneratedMsg{err: err}
		}
		if provider == nil || !provider.HasCredentials() {
			return eventsGeneratedMsg{err: errNoAPIKey}
		}

		proposed, err := gateway.GenerateEvents(ctx, prompt, lang, *provider)
		if err != nil {
			return eventsGeneratedMsg{err: err}
		}

		added, skipped := 0, 0
		for _, p := range proposed {
			stored, err := events.AddCustomEvent(ctx, p, models.SourceAISearch)
			if err != nil {
				return eventsGeneratedMsg{added: added, skipped: skipped, err: err}
			}
			if stored == nil {
				skipped++
				continue
			}
			added++
		}
		return eventsGeneratedMsg{added: added, skipped: skipped}
	}
}

var errNoAPIKey = fmt.Errorf("no AI provider API key configured")

func (v *timelineView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case eventsLoadedMsg:
		v.loading = false
		v.lastErr = typed.err
		if typed.err == nil {
			v.all = typed.events
		}
		return nil
	case eventsGeneratedMsg:
		v.generating = false
		lang := v.app.Lang()
		if typed.err != nil {
			if typed.err == errNoAPIKey {
				v.status = i18n.T(lang, "aiSearchNoKey")
			} else {
				v.status = i18n.T(lang, "errorGenerateEvents")
				v.log.Error().Err(typed.err).Msg("generating events")
			}
			return nil
		}
		v.status = fmt.Sprintf("+%d", typed.added)
		return v.loadEventsCmd()
	case tea.KeyMsg:
		return v.handleKey(typed)
	case tea.MouseMsg:
		v.handleMouse(typed)
		return nil
	}
	return nil
}

func (v *timelineView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.mode != inputNone {
		return v.handleInputKey(msg)
	}

	span := v.vp.Scale().YearsPer1000Px / 1000
	switch msg.String() {
	case "left", "h":
		v.vp.CenterYear -= span * panFraction
	case "right", "l":
		v.vp.CenterYear += span * panFraction
	case "+", "=", "up", "k":
		v.vp.OnWheel(-1, v.vp.Width()/2)
	case "-", "_", "down", "j":
		v.vp.OnWheel(1, v.vp.Width()/2)
	case "0":
		v.vp.SetView(timeline.DefaultCenterYear, timeline.DefaultZoom)
	case "n":
		v.moveSelection(1)
	case "p":
		v.moveSelection(-1)
	case "enter":
		if e, ok := v.selectedEvent(); ok {
			return openDetailCmd(e)
		}
	case "/":
		v.mode = inputSearch
		v.input = ""
		v.status = ""
	case "g":
		v.mode = inputGenerate
		v.input = ""
		v.status = ""
	}
	return nil
}

func (v *timelineView) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.mode = inputNone
		v.input = ""
		return nil
	case "enter":
		query := strings.TrimSpace(v.input)
		mode := v.mode
		v.mode = inputNone
		v.input = ""
		if query == "" {
			return nil
		}
		if mode == inputGenerate {
			v.generating = true
			v.status = i18n.T(v.app.Lang(), "generatingEvents")
			return v.generateCmd(query)
		}
		v.jumpTo(query)
		return nil
	case "backspace":
		if len(v.input) > 0 {
			runes := []rune(v.input)
			v.input = string(runes[:len(runes)-1])
		}
		return nil
	}
	if msg.Type == tea.KeyRunes {
		v.input += string(msg.Runes)
	}
	if msg.Type == tea.KeySpace {
		v.input += " "
	}
	return nil
}

// jumpTo centers on a year when the query parses as one, otherwise on the
// first event whose title or tag contains the query.
func (v *timelineView) jumpTo(query string) {
	if year, err := strconv.Atoi(query); err == nil {
		v.vp.SetView(float64(year), timeline.DefaultZoom)
		return
	}

	needle := strings.ToLower(query)
	for _, e := range v.all {
		if matchesEvent(e, needle) {
			v.vp.SetView(e.Year, timeline.DefaultZoom)
			v.selectedID = e.ID
			return
		}
	}
	v.status = query + "?"
}

func matchesEvent(e models.HistoricalEvent, needle string) bool {
	if strings.Contains(strings.ToLower(e.Title), needle) || strings.Contains(strings.ToLower(e.TitleZH), needle) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func (v *timelineView) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.vp.OnWheel(-1, float64(msg.X))
		return
	case tea.MouseButtonWheelDown:
		v.vp.OnWheel(1, float64(msg.X))
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			v.vp.OnPointerDown(float64(msg.X))
		}
	case tea.MouseActionMotion:
		v.vp.OnPointerMove(float64(msg.X))
	case tea.MouseActionRelease:
		v.vp.OnPointerUp()
	}
}

// visibleEvents culls the merged list to the viewport span. The list stays
// year-sorted because the source is.
func (v *timelineView) visibleEvents() []models.HistoricalEvent {
	r := v.vp.VisibleYearRange()
	if r.Start == 0 && r.End == 0 {
		return nil
	}
	out := make([]models.HistoricalEvent, 0, 32)
	for _, e := range v.all {
		if e.Year >= r.Start && e.Year <= r.End {
			out = append(out, e)
		}
	}
	return out
}

func (v *timelineView) selectedEvent() (models.HistoricalEvent, bool) {
	for _, e := range v.all {
		if e.ID == v.selectedID {
			return e, true
		}
	}
	return models.HistoricalEvent{}, false
}

func (v *timelineView) moveSelection(delta int) {
	visible := v.visibleEvents()
	if len(visible) == 0 {
		return
	}
	idx := -1
	for i, e := range visible {
		if e.ID == v.selectedID {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = len(visible) - 1
	}
	if idx >= len(visible) {
		idx = 0
	}
	v.selectedID = visible[idx].ID
}

func (v *timelineView) scaleLabel(lang i18n.Lang) string {
	r := v.vp.VisibleYearRange()
	if r.Start == 0 && r.End == 0 {
		return v.vp.Scale().Name
	}
	return fmt.Sprintf("%s  %s .. %s", v.vp.Scale().Name, i18n.FormatYear(lang, r.Start), i18n.FormatYear(lang, r.End))
}

func (v *timelineView) View(width, height int, theme styles.Theme) string {
	if width <= 0 {
		return ""
	}
	v.vp.SetWidth(float64(width))
	lang := v.app.Lang()

	var b strings.Builder
	b.WriteString(v.renderStatusLine(width, theme, lang))
	b.WriteByte('\n')
	b.WriteString(v.renderTrackRow(width, theme, models.TrackChina))
	b.WriteByte('\n')
	b.WriteString(v.renderAxisRow(width, theme))
	b.WriteByte('\n')
	b.WriteString(v.renderMarkerLabels(width, theme, lang))
	b.WriteByte('\n')
	b.WriteString(v.renderTrackRow(width, theme, models.TrackWorld))
	b.WriteByte('\n')
	b.WriteString(v.renderEventList(width, height-6, theme, lang))
	return b.String()
}

func (v *timelineView) renderStatusLine(width int, theme styles.Theme, lang i18n.Lang) string {
	switch {
	case v.mode == inputSearch:
		return theme.InputStyle().Render("/" + v.input + "▌")
	case v.mode == inputGenerate:
		return theme.InputStyle().Render(i18n.T(lang, "generateEventsPrompt") + " > " + v.input + "▌")
	case v.generating:
		return theme.MutedStyle().Render(i18n.T(lang, "generatingEvents"))
	case v.loading:
		return theme.MutedStyle().Render("...")
	case v.lastErr != nil:
		return theme.MutedStyle().Render(v.lastErr.Error())
	case v.status != "":
		return theme.MutedStyle().Render(v.status)
	}
	china := theme.TrackStyle(true).Render(i18n.T(lang, "china"))
	world := theme.TrackStyle(false).Render(i18n.T(lang, "world"))
	return china + theme.MutedStyle().Render(" / ") + world
}

// renderTrackRow draws one track's pins at their pixel columns.
func (v *timelineView) renderTrackRow(width int, theme styles.Theme, track models.Track) string {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	selectedCol := -1
	for _, e := range v.visibleEvents() {
		if e.Track != track {
			continue
		}
		col := int(v.vp.YearToPixel(e.Year))
		if col < 0 || col >= width {
			continue
		}
		row[col] = v.pinRune()
		if e.ID == v.selectedID {
			selectedCol = col
		}
	}

	style := theme.TrackStyle(track == models.TrackChina)
	if selectedCol < 0 {
		return style.Render(string(row))
	}
	left := string(row[:selectedCol])
	right := string(row[selectedCol+1:])
	return style.Render(left) + theme.SelectedStyle().Render("◆") + style.Render(right)
}

func (v *timelineView) pinRune() rune {
	switch v.app.settings.PinStyle {
	case models.PinGlow:
		return '◉'
	case models.PinRing:
		return '○'
	default:
		return '●'
	}
}

func (v *timelineView) renderAxisRow(width int, theme styles.Theme) string {
	line := '─'
	if v.app.settings.TimelineStyle == models.TimelineDotted {
		line = '┄'
	}
	row := make([]rune, width)
	for i := range row {
		row[i] = line
	}
	for _, year := range timeline.Markers(v.vp.VisibleYearRange()) {
		col := int(v.vp.YearToPixel(year))
		if col >= 0 && col < width {
			row[col] = '┼'
		}
	}
	return theme.AxisStyle().Render(string(row))
}

func (v *timelineView) renderMarkerLabels(width int, theme styles.Theme, lang i18n.Lang) string {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	for _, year := range timeline.Markers(v.vp.VisibleYearRange()) {
		col := int(v.vp.YearToPixel(year))
		label := []rune(markerLabel(lang, year))
		if col < 0 || col+len(label) > width {
			continue
		}
		copy(row[col:], label)
	}
	return theme.MarkerStyle().Render(string(row))
}

// markerLabel is the compact gridline caption: bare year, era suffix only for
// BCE to keep the axis readable.
func markerLabel(lang i18n.Lang, year float64) string {
	y := int64(year)
	if y < 0 {
		return strconv.FormatInt(-y, 10) + " " + i18n.T(lang, "bce")
	}
	return strconv.FormatInt(y, 10)
}

func (v *timelineView) renderEventList(width, rows int, theme styles.Theme, lang i18n.Lang) string {
	if rows <= 0 {
		return ""
	}
	visible := v.visibleEvents()
	lines := make([]string, 0, rows)
	for _, e := range visible {
		if len(lines) >= rows {
			break
		}
		cursor := "  "
		style := theme.Base()
		if e.ID == v.selectedID {
			cursor = "> "
			style = theme.SelectedStyle()
		}
		label := fmt.Sprintf("%s%s  %s", cursor, i18n.FormatYear(lang, e.Year), e.DisplayTitle(string(lang)))
		if e.IsCustom {
			label += " *"
		}
		if len(label) > width && width > 1 {
			label = string([]rune(label)[:width-1]) + "…"
		}
		lines = append(lines, style.Render(label))
	}
	return strings.Join(lines, "\n")
}
