package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/timeaxis/timeaxis/internal/i18n"
	"github.com/timeaxis/timeaxis/internal/models"
	"github.com/timeaxis/timeaxis/internal/timeline"
	"github.com/timeaxis/timeaxis/internal/tui/styles"
)

type stubEvents struct {
	events []models.HistoricalEvent
	added  []models.ProposedEvent
	source models.EventSource
	drop   bool
}

func (s *stubEvents) AllEvents(context.Context) ([]models.HistoricalEvent, error) {
	return append([]models.HistoricalEvent(nil), s.events...), nil
}

func (s *stubEvents) AddCustomEvent(_ context.Context, p models.ProposedEvent, src models.EventSource) (*models.HistoricalEvent, error) {
	s.added = append(s.added, p)
	s.source = src
	if s.drop {
		return nil, nil
	}
	return &models.HistoricalEvent{ID: "custom-" + p.Title, Year: p.Year, Track: p.Track, Title: p.Title, IsCustom: true}, nil
}

type stubProviders struct {
	provider *models.AIProvider
}

func (s *stubProviders) ActiveProvider(context.Context) (*models.AIProvider, error) {
	return s.provider, nil
}

type stubGateway struct {
	proposed  []models.ProposedEvent
	reply     string
	err       error
	chatCalls int
	lastMsg   string
}

func (s *stubGateway) ChatResponse(_ context.Context, _ string, _ []models.ChatMessage, newMessage, _ string, _ models.AIProvider) (string, error) {
	s.chatCalls++
	s.lastMsg = newMessage
	return s.reply, s.err
}

func (s *stubGateway) GenerateEvents(context.Context, string, string, models.AIProvider) ([]models.ProposedEvent, error) {
	return s.proposed, s.err
}

func newTestModel() *Model {
	return &Model{
		settings:  models.DefaultSettings(),
		lang:      i18n.LangEN,
		theme:     styles.StarmapTheme,
		viewStack: []ViewID{ViewTimeline},
		views:     make(map[ViewID]viewModel),
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeString(v viewModel, s string) {
	for _, r := range s {
		v.Update(runeKey(r))
	}
}

func testEvents() []models.HistoricalEvent {
	return []models.HistoricalEvent{
		{ID: "e1", Year: 1492, Track: models.TrackWorld, Title: "Columbus Reaches the Americas"},
		{ID: "e2", Year: 1644, Track: models.TrackChina, Title: "Qing Dynasty Takes Beijing", TitleZH: "清军入关"},
		{ID: "e3", Year: 1969, Track: models.TrackWorld, Title: "Apollo 11 Moon Landing"},
	}
}

func newTestTimelineView(events *stubEvents, gateway *stubGateway, provider *models.AIProvider) *timelineView {
	app := newTestModel()
	v := newTimelineView(events, &stubProviders{provider: provider}, gateway, app, Config{InitialYear: 1700, InitialZoom: 6})
	app.views[ViewTimeline] = v
	return v
}

func TestTimelineLoadAndRender(t *testing.T) {
	v := newTestTimelineView(&stubEvents{events: testEvents()}, &stubGateway{}, nil)

	msg, ok := v.loadEventsCmd()().(eventsLoadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	v.Update(msg)

	out := v.View(100, 24, styles.StarmapTheme)
	require.Contains(t, out, "●")
	require.Contains(t, out, "┼")
	require.Contains(t, out, "Apollo 11 Moon Landing")
	require.Contains(t, out, "1969 CE")
}

func TestTimelineVisibleCulling(t *testing.T) {
	v := newTestTimelineView(&stubEvents{events: testEvents()}, &stubGateway{}, nil)
	v.Update(eventsLoadedMsg{events: testEvents()})
	v.vp.SetWidth(100)

	// Level 6 spans one millennium centered on 1700: 1200..2200.
	visible := v.visibleEvents()
	require.Len(t, visible, 3)

	v.vp.SetView(1700, 8)
	// Level 8 spans 50 years: 1675..1725.
	require.Empty(t, v.visibleEvents())
}

func TestTimelineWheelZoomsTowardCursor(t *testing.T) {
	v := newTestTimelineView(&stubEvents{events: testEvents()}, &stubGateway{}, nil)
	v.vp.SetWidth(100)

	before := v.vp.ZoomLevel
	yearAtCursor := v.vp.PixelToYear(25)
	v.Update(tea.MouseMsg{X: 25, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})

	require.Equal(t, before+1, v.vp.ZoomLevel)
	require.InDelta(t, yearAtCursor, v.vp.PixelToYear(25), 1e-6)
}

func TestTimelineDragPans(t *testing.T) {
	v := newTestTimelineView(&stubEvents{events: testEvents()}, &stubGateway{}, nil)
	v.vp.SetWidth(100)
	center := v.vp.CenterYear

	v.Update(tea.MouseMsg{X: 60, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	v.Update(tea.MouseMsg{X: 70, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	v.Update(tea.MouseMsg{X: 70, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	require.Less(t, v.vp.CenterYear, center)
	require.False(t, v.vp.IsPanning())
}

func TestTimelineSearchJumpsToMatch(t *testing.T) {
	v := newTestTimelineView(&stubEvents{events: testEvents()}, &stubGateway{}, nil)
	v.Update(eventsLoadedMsg{events: testEvents()})
	v.vp.SetWidth(100)

	v.Update(runeKey('/'))
	require.True(t, v.CapturesInput())
	typeString(v, "apollo")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.False(t, v.CapturesInput())
	require.Equal(t, float64(1969), v.vp.CenterYear)
	require.Equal(t, timeline.DefaultZoom, v.vp.ZoomLevel)
	require.Equal(t, "e3", v.selectedID)
}

func TestTimelineSearchYearJump(t *testing.T) {
	v := newTestTimelineView(&stubEvents{events: testEvents()}, &stubGateway{}, nil)
	v.vp.SetWidth(100)

	v.Update(runeKey('/'))
	typeString(v, "-500")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, float64(-500), v.vp.CenterYear)
}

func TestTimelineSelectionAndOpen(t *testing.T) {
	v := newTestTimelineView(&stubEvents{events: testEvents()}, &stubGateway{}, nil)
	v.Update(eventsLoadedMsg{events: testEvents()})
	v.vp.SetWidth(100)

	require.Nil(t, v.Update(runeKey('n')))
	require.Equal(t, "e1", v.selectedID)
	v.Update(runeKey('n'))
	require.Equal(t, "e2", v.selectedID)
	v.Update(runeKey('p'))
	require.Equal(t, "e1", v.selectedID)

	cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	open, ok := cmd().(openDetailMsg)
	require.True(t, ok)
	require.Equal(t, "e1", open.event.ID)
}

func TestTimelineGenerateStoresAISearchEvents(t *testing.T) {
	events := &stubEvents{events: testEvents()}
	gateway := &stubGateway{proposed: []models.ProposedEvent{
		{Year: 1903, Track: models.TrackWorld, Title: "First Powered Flight"},
		{Year: 1927, Track: models.TrackWorld, Title: "Solo Transatlantic Flight"},
	}}
	provider := &models.AIProvider{ID: "p1", Name: "Gemini", APIKey: "key"}
	v := newTestTimelineView(events, gateway, provider)
	v.vp.SetWidth(100)

	v.Update(runeKey('g'))
	typeString(v, "history of flight")
	cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, v.generating)

	msg, ok := cmd().(eventsGeneratedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	require.Equal(t, 2, msg.added)
	require.Equal(t, models.SourceAISearch, events.source)
	require.Len(t, events.added, 2)

	reload := v.Update(msg)
	require.False(t, v.generating)
	require.NotNil(t, reload)
}

func TestTimelineGenerateWithoutKeyShowsHint(t *testing.T) {
	v := newTestTimelineView(&stubEvents{events: testEvents()}, &stubGateway{}, nil)
	v.vp.SetWidth(100)

	v.Update(runeKey('g'))
	typeString(v, "anything")
	cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(eventsGeneratedMsg)
	require.True(t, ok)
	require.Error(t, msg.err)

	v.Update(msg)
	require.Contains(t, v.status, "API Key")
}

func TestTimelineDegenerateWidth(t *testing.T) {
	v := newTestTimelineView(&stubEvents{events: testEvents()}, &stubGateway{}, nil)
	v.Update(eventsLoadedMsg{events: testEvents()})

	// Width never set: no pixel math, no visible events, no panic.
	require.Empty(t, v.visibleEvents())
	require.Equal(t, "", v.View(0, 24, styles.StarmapTheme))
}
