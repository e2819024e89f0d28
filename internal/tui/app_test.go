package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/timeaxis/timeaxis/internal/i18n"
	"github.com/timeaxis/timeaxis/internal/models"
	"github.com/timeaxis/timeaxis/internal/tui/styles"
)

func newWiredTestModel() *Model {
	m := newTestModel()
	events := &stubEvents{events: testEvents()}
	tv := newTimelineView(events, &stubProviders{}, &stubGateway{}, m, Config{})
	dv := newDetailView(&stubEnricher{}, &stubGateway{}, &stubProviders{}, m)
	m.views[ViewTimeline] = tv
	m.views[ViewDetail] = dv
	return m
}

func TestAppQuitKey(t *testing.T) {
	m := newWiredTestModel()
	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestAppOpenDetailPushesView(t *testing.T) {
	m := newWiredTestModel()
	event := models.HistoricalEvent{ID: "e1", Title: "First"}

	_, cmd := m.Update(openDetailMsg{event: event})
	require.NotNil(t, cmd)
	require.Equal(t, ViewDetail, m.activeViewID())

	dv := m.views[ViewDetail].(*detailView)
	require.Equal(t, "e1", dv.event.ID)

	m.Update(popViewMsg{})
	require.Equal(t, ViewTimeline, m.activeViewID())

	// The root view never pops off the stack.
	m.Update(popViewMsg{})
	require.Equal(t, ViewTimeline, m.activeViewID())
}

func TestAppThemeToggle(t *testing.T) {
	m := newWiredTestModel()
	require.Equal(t, styles.StarmapTheme.Name, m.theme.Name)

	cmd, handled := m.handleGlobalKey(runeKey('T'))
	require.True(t, handled)
	require.NotNil(t, cmd)
	require.Equal(t, styles.ScrollTheme.Name, m.theme.Name)
	require.Equal(t, models.ThemeScroll, m.settings.Theme)
}

func TestAppLanguageToggle(t *testing.T) {
	m := newWiredTestModel()
	require.Equal(t, i18n.LangEN, m.Lang())

	_, handled := m.handleGlobalKey(runeKey('L'))
	require.True(t, handled)
	require.Equal(t, i18n.LangZH, m.Lang())
}

func TestAppGlobalKeysYieldWhileTyping(t *testing.T) {
	m := newWiredTestModel()
	tv := m.views[ViewTimeline].(*timelineView)
	tv.Update(runeKey('/'))
	require.True(t, tv.CapturesInput())

	// "q" goes to the search input instead of quitting.
	_, cmd := m.Update(runeKey('q'))
	require.Nil(t, cmd)
	require.Equal(t, "q", tv.input)
}

func TestAppViewRendersChrome(t *testing.T) {
	m := newWiredTestModel()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	tv := m.views[ViewTimeline].(*timelineView)
	tv.Update(eventsLoadedMsg{events: testEvents()})

	out := m.View()
	require.Contains(t, out, "timeaxis")
	require.Contains(t, out, "Mouse Wheel")
}
