// Package tui is the interactive dual-track timeline application.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/timeaxis/timeaxis/internal/ai"
	"github.com/timeaxis/timeaxis/internal/enrich"
	"github.com/timeaxis/timeaxis/internal/i18n"
	"github.com/timeaxis/timeaxis/internal/logging"
	"github.com/timeaxis/timeaxis/internal/models"
	"github.com/timeaxis/timeaxis/internal/store"
	"github.com/timeaxis/timeaxis/internal/tui/styles"
)

type ViewID string

const (
	ViewTimeline ViewID = "timeline"
	ViewDetail   ViewID = "detail"
)

// Config carries the TUI startup options resolved from configuration.
type Config struct {
	Theme       string
	InitialYear float64
	InitialZoom int
}

// eventSource is the slice of the store the timeline view depends on.
type eventSource interface {
	AllEvents(ctx context.Context) ([]models.HistoricalEvent, error)
	AddCustomEvent(ctx context.Context, proposed models.ProposedEvent, source models.EventSource) (*models.HistoricalEvent, error)
}

// aiGateway is the slice of the AI request layer the views depend on.
type aiGateway interface {
	ChatResponse(ctx context.Context, eventTitle string, history []models.ChatMessage, newMessage, lang string, provider models.AIProvider) (string, error)
	GenerateEvents(ctx context.Context, userPrompt, lang string, provider models.AIProvider) ([]models.ProposedEvent, error)
}

// enricher is the detail cache surface used by the detail view.
type enricher interface {
	GetOrFetch(ctx context.Context, event models.HistoricalEvent, lang string) *models.EventDetails
}

// providerSource resolves the active AI provider for chat and generation.
type providerSource interface {
	ActiveProvider(ctx context.Context) (*models.AIProvider, error)
}

// storeProviders adapts the store to the enrichment cache's no-context
// provider lookup.
type storeProviders struct {
	st *store.Store
}

func (p storeProviders) ActiveProvider() *models.AIProvider {
	provider, err := p.st.ActiveProvider(context.Background())
	if err != nil {
		return nil
	}
	return provider
}

type viewModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int, theme styles.Theme) string
}

type pushViewMsg struct {
	id ViewID
}

type popViewMsg struct{}

type openDetailMsg struct {
	event models.HistoricalEvent
}

func pushViewCmd(id ViewID) tea.Cmd {
	return func() tea.Msg {
		return pushViewMsg{id: id}
	}
}

func popViewCmd() tea.Cmd {
	return func() tea.Msg {
		return popViewMsg{}
	}
}

func openDetailCmd(event models.HistoricalEvent) tea.Cmd {
	return func() tea.Msg {
		return openDetailMsg{event: event}
	}
}

// Model is the root bubbletea model: chrome, language and theme state, and
// the view stack.
type Model struct {
	st       *store.Store
	settings models.Settings
	lang     i18n.Lang
	theme    styles.Theme
	log      zerolog.Logger

	width    int
	height   int
	showHelp bool

	viewStack []ViewID
	views     map[ViewID]viewModel
}

// NewModel wires the root model over an opened store and AI service.
func NewModel(ctx context.Context, st *store.Store, svc *ai.Service, cfg Config) (*Model, error) {
	settings, err := st.Settings.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	lang, err := st.Settings.Language(ctx)
	if err != nil {
		return nil, fmt.Errorf("load language: %w", err)
	}

	themeName := strings.TrimSpace(cfg.Theme)
	if themeName == "" {
		themeName = strings.ToLower(string(settings.Theme))
	}

	m := &Model{
		st:        st,
		settings:  settings,
		lang:      i18n.Lang(lang),
		theme:     styles.ForName(themeName),
		log:       logging.Component("tui"),
		viewStack: []ViewID{ViewTimeline},
		views:     make(map[ViewID]viewModel),
	}
	if !m.lang.Valid() {
		m.lang = i18n.LangEN
	}

	cache := enrich.NewCache(svc, storeProviders{st: st})
	m.views[ViewTimeline] = newTimelineView(st, st, svc, m, cfg)
	m.views[ViewDetail] = newDetailView(cache, svc, st, m)
	return m, nil
}

// Run starts the TUI program. It blocks until the user quits.
func Run(ctx context.Context, st *store.Store, svc *ai.Service, cfg Config) error {
	model, err := NewModel(ctx, st, svc, cfg)
	if err != nil {
		return err
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}

func (m *Model) Close() {
	for _, view := range m.views {
		if closer, ok := view.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}

// Lang returns the active interface language.
func (m *Model) Lang() i18n.Lang {
	return m.lang
}

func (m *Model) Init() tea.Cmd {
	if view := m.activeView(); view != nil {
		return view.Init()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case openDetailMsg:
		if view := m.views[ViewDetail]; view != nil {
			if setter, ok := view.(interface {
				SetEvent(models.HistoricalEvent) tea.Cmd
			}); ok {
				cmd := setter.SetEvent(typed.event)
				m.pushView(ViewDetail)
				return m, cmd
			}
		}
		return m, nil
	case pushViewMsg:
		m.pushView(typed.id)
		if view := m.activeView(); view != nil {
			return m, view.Init()
		}
		return m, nil
	case popViewMsg:
		m.popView()
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(typed); handled {
			return m, cmd
		}
	}

	if active := m.activeView(); active != nil {
		return m, active.Update(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	active := m.activeView()
	if active == nil {
		return "no active view"
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}
	body := active.View(m.width, contentHeight, m.theme)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// Views capture the keyboard while in a text input mode.
	if capture, ok := m.activeView().(interface{ CapturesInput() bool }); ok && capture.CapturesInput() {
		return nil, false
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit, true
	case "?":
		m.showHelp = !m.showHelp
		return nil, true
	case "T":
		return m.toggleTheme(), true
	case "L":
		return m.toggleLanguage(), true
	}
	return nil, false
}

func (m *Model) toggleTheme() tea.Cmd {
	if m.theme.Name == styles.StarmapTheme.Name {
		m.theme = styles.ScrollTheme
		m.settings.Theme = models.ThemeScroll
	} else {
		m.theme = styles.StarmapTheme
		m.settings.Theme = models.ThemeStarmap
	}
	settings := m.settings
	st := m.st
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := st.Settings.SetSettings(ctx, settings); err != nil {
			lg := logging.Component("tui")
			lg.Warn().Err(err).Msg("persisting theme")
		}
		return nil
	}
}

func (m *Model) toggleLanguage() tea.Cmd {
	if m.lang == i18n.LangEN {
		m.lang = i18n.LangZH
	} else {
		m.lang = i18n.LangEN
	}
	lang := string(m.lang)
	st := m.st
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := st.Settings.SetLanguage(ctx, lang); err != nil {
			lg := logging.Component("tui")
			lg.Warn().Err(err).Msg("persisting language")
		}
		return nil
	}
}

func (m *Model) renderHeader() string {
	title := "timeaxis"
	scale := ""
	if tv, ok := m.views[ViewTimeline].(*timelineView); ok && m.activeViewID() == ViewTimeline {
		scale = tv.scaleLabel(m.lang)
	}
	left := m.theme.HeaderStyle().Render(title)
	if scale == "" {
		return left
	}
	return left + m.theme.MutedStyle().Render("  "+scale)
}

func (m *Model) renderFooter() string {
	if m.showHelp {
		return m.theme.FooterStyle().Render(helpText(m.lang, m.activeViewID()))
	}
	hint := i18n.T(m.lang, "usageHint")
	return m.theme.FooterStyle().Render(hint + "  |  ? help  q quit")
}

func helpText(lang i18n.Lang, active ViewID) string {
	common := "q quit  ? help  T theme  L " + i18n.T(lang, "language")
	switch active {
	case ViewDetail:
		return common + "  |  e " + i18n.T(lang, "explain") + "  a " + i18n.T(lang, "askAI") + "  i " + i18n.T(lang, "askFollowUp") + "  esc " + i18n.T(lang, "close")
	default:
		return common + "  |  ←/→ pan  +/- zoom  n/p select  enter open  / " + i18n.T(lang, "searchPlaceholder") + "  g " + i18n.T(lang, "generateWithAI")
	}
}

func (m *Model) activeView() viewModel {
	return m.views[m.activeViewID()]
}

func (m *Model) activeViewID() ViewID {
	if len(m.viewStack) == 0 {
		return ViewTimeline
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *Model) pushView(id ViewID) {
	if id == "" {
		return
	}
	if _, ok := m.views[id]; !ok {
		return
	}
	if m.activeViewID() == id {
		return
	}
	m.viewStack = append(m.viewStack, id)
}

func (m *Model) popView() {
	if len(m.viewStack) <= 1 {
		return
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
}
