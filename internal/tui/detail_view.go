package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/timeaxis/timeaxis/internal/i18n"
	"github.com/timeaxis/timeaxis/internal/logging"
	"github.com/timeaxis/timeaxis/internal/models"
	"github.com/timeaxis/timeaxis/internal/tui/styles"
)

const chatTimeout = 120 * time.Second

type detailLoadedMsg struct {
	eventID string
	details *models.EventDetails
}

type chatReplyMsg struct {
	eventID string
	user    string
	reply   string
	err     error
}

// detailView shows the enrichment record and chat for one selected event.
// It owns the cancellation of the in-flight fetch: selecting another event
// or closing the panel abandons the previous request, and the cache drops
// abandoned results.
type detailView struct {
	cache     enricher
	gateway   aiGateway
	providers providerSource
	app       *Model
	log       zerolog.Logger

	event   models.HistoricalEvent
	details *models.EventDetails
	fetched bool
	loading bool

	history     []models.ChatMessage
	chatPending bool
	chatErr     string

	inputActive bool
	input       string

	fetchCancel context.CancelFunc
}

func newDetailView(cache enricher, gateway aiGateway, providers providerSource, app *Model) *detailView {
	return &detailView{
		cache:     cache,
		gateway:   gateway,
		providers: providers,
		app:       app,
		log:       logging.Component("tui.detail"),
	}
}

// SetEvent switches the panel to a new event. Any in-flight fetch for the
// previous event is cancelled first.
func (v *detailView) SetEvent(event models.HistoricalEvent) tea.Cmd {
	v.cancelFetch()

	v.event = event
	v.details = nil
	v.fetched = false
	v.history = nil
	v.chatPending = false
	v.chatErr = ""
	v.inputActive = false
	v.input = ""

	return v.fetchCmd()
}

func (v *detailView) Init() tea.Cmd {
	return nil
}

func (v *detailView) Close() {
	v.cancelFetch()
}

func (v *detailView) CapturesInput() bool {
	return v.inputActive
}

func (v *detailView) cancelFetch() {
	if v.fetchCancel != nil {
		v.fetchCancel()
		v.fetchCancel = nil
	}
}

func (v *detailView) fetchCmd() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	v.fetchCancel = cancel
	v.loading = true

	cache := v.cache
	event := v.event
	lang := string(v.app.Lang())
	return func() tea.Msg {
		details := cache.GetOrFetch(ctx, event, lang)
		return detailLoadedMsg{eventID: event.ID, details: details}
	}
}

func (v *detailView) chatCmd(message string) tea.Cmd {
	gateway := v.gateway
	providers := v.providers
	event := v.event
	history := append([]models.ChatMessage(nil), v.history...)
	lang := string(v.app.Lang())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()

		provider, err := providers.ActiveProvider(ctx)
		if err != nil {
			return chatReplyMsg{eventID: event.ID, user: message, err: err}
		}
		if provider == nil || !provider.HasCredentials() {
			return chatReplyMsg{eventID: event.ID, user: message, err: errNoAPIKey}
		}

		reply, err := gateway.ChatResponse(ctx, event.Title, history, message, lang, *provider)
		return chatReplyMsg{eventID: event.ID, user: message, reply: reply, err: err}
	}
}

func (v *detailView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case detailLoadedMsg:
		if typed.eventID != v.event.ID {
			// Stale result from a superseded selection.
			return nil
		}
		v.loading = false
		v.fetched = true
		v.cancelFetch()
		v.details = typed.details
		return nil
	case chatReplyMsg:
		if typed.eventID != v.event.ID {
			return nil
		}
		v.chatPending = false
		if typed.err != nil {
			if typed.err == errNoAPIKey {
				v.chatErr = i18n.T(v.app.Lang(), "errorSetAPIKey")
			} else {
				v.chatErr = i18n.T(v.app.Lang(), "errorChatResponse")
				v.log.Error().Err(typed.err).Msg("chat response")
			}
			return nil
		}
		v.chatErr = ""
		v.history = append(v.history,
			models.ChatMessage{Role: models.RoleUser, Text: typed.user},
			models.ChatMessage{Role: models.RoleModel, Text: typed.reply},
		)
		return nil
	case tea.KeyMsg:
		return v.handleKey(typed)
	}
	return nil
}

func (v *detailView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.inputActive {
		return v.handleInputKey(msg)
	}

	switch msg.String() {
	case "esc", "backspace":
		v.cancelFetch()
		return popViewCmd()
	case "r":
		if v.fetched && v.details == nil && !v.loading {
			return v.fetchCmd()
		}
	case "e":
		return v.sendChat(i18n.T(v.app.Lang(), "explainPrompt"))
	case "a":
		return v.sendChat(i18n.T(v.app.Lang(), "askPrompt"))
	case "i":
		v.inputActive = true
		v.input = ""
	}
	return nil
}

func (v *detailView) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.inputActive = false
		v.input = ""
		return nil
	case "enter":
		message := strings.TrimSpace(v.input)
		v.inputActive = false
		v.input = ""
		if message == "" {
			return nil
		}
		return v.sendChat(message)
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

func (v *detailView) sendChat(message string) tea.Cmd {
	if v.chatPending {
		return nil
	}
	v.chatPending = true
	v.chatErr = ""
	return v.chatCmd(message)
}

func (v *detailView) View(width, height int, theme styles.Theme) string {
	lang := v.app.Lang()
	wrap := lipgloss.NewStyle().Width(width)

	var sections []string

	title := theme.AccentStyle().Render(v.event.DisplayTitle(string(lang)))
	meta := theme.MutedStyle().Render(i18n.T(lang, "year") + ": " + i18n.FormatYear(lang, v.event.Year))
	if len(v.event.Tags) > 0 {
		meta += theme.MutedStyle().Render("  [" + strings.Join(v.event.Tags, ", ") + "]")
	}
	sections = append(sections, title, meta, "")

	sections = append(sections, theme.HeaderStyle().Render(i18n.T(lang, "aiSummary")))
	switch {
	case v.loading:
		sections = append(sections, theme.MutedStyle().Render("..."))
	case v.details != nil:
		sections = append(sections, wrap.Render(theme.Base().Render(v.details.Summary)))
		if len(v.details.Sources) > 0 {
			sections = append(sections, "", theme.HeaderStyle().Render(i18n.T(lang, "sources")))
			for _, s := range v.details.Sources {
				label := s.Title
				if label == "" {
					label = s.URI
				}
				sections = append(sections, theme.MutedStyle().Render("  • "+label))
			}
		}
	default:
		sections = append(sections, theme.MutedStyle().Render(i18n.T(lang, "errorFetchDetails")+"  (r: "+i18n.T(lang, "retry")+")"))
	}

	sections = append(sections, "", theme.HeaderStyle().Render(i18n.T(lang, "interactiveAI")))
	if len(v.history) == 0 && !v.chatPending && v.chatErr == "" {
		sections = append(sections, theme.MutedStyle().Render(i18n.T(lang, "aiWelcome")))
	}
	for _, m := range v.history {
		prefix := "  "
		style := theme.Base()
		if m.Role == models.RoleUser {
			prefix = "> "
			style = theme.InputStyle()
		}
		sections = append(sections, wrap.Render(style.Render(prefix+m.Text)))
	}
	if v.chatPending {
		sections = append(sections, theme.MutedStyle().Render("..."))
	}
	if v.chatErr != "" {
		sections = append(sections, theme.MutedStyle().Render(v.chatErr))
	}

	if v.inputActive {
		sections = append(sections, theme.InputStyle().Render(i18n.T(lang, "askFollowUp")+" "+v.input+"▌"))
	}

	body := strings.Join(sections, "\n")
	if height > 0 {
		lines := strings.Split(body, "\n")
		if len(lines) > height {
			lines = lines[len(lines)-height:]
			body = strings.Join(lines, "\n")
		}
	}
	return body
}
