package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/timeaxis/timeaxis/internal/logging"
	"github.com/timeaxis/timeaxis/internal/models"
)

// Operation temperatures, matching the intent of each call: factual detail
// fetches run cooler than open-ended chat.
const (
	detailsTemperature  = 0.5
	generateTemperature = 0.6
	chatTemperature     = 0.7
	compatTemperature   = 0.5
)

// Service exposes the three AI operations over both backend variants. It
// owns the native client/session cache; callers pass the provider record on
// every call and the service resolves the backend variant from it once.
type Service struct {
	clients *ClientCache
	compat  *CompatClient
	log     zerolog.Logger
}

// NewService creates the request layer. timeout bounds every backend call.
func NewService(timeout time.Duration) *Service {
	return &Service{
		clients: NewClientCache(timeout),
		compat:  NewCompatClient(timeout),
		log:     logging.Component("ai"),
	}
}

// Clients exposes the native client cache, mainly for invalidation on
// provider edits and for tests.
func (s *Service) Clients() *ClientCache {
	return s.clients
}

// FetchEventDetails asks the backend for the enrichment record of one event.
// The native backend enables search grounding and surfaces citations; the
// compatible backend has none. Cancellation is returned as ctx.Err, never
// logged as a failure.
func (s *Service) FetchEventDetails(ctx context.Context, title, lang string, provider models.AIProvider) (models.EventDetails, error) {
	prompt := detailsPrompt(title, lang)

	var (
		text    string
		sources []SourceRef
		err     error
	)

	switch provider.Kind() {
	case models.BackendCompatible:
		text, err = s.compat.Complete(ctx, provider, nil, prompt, compatTemperature)
	default:
		var client *NativeClient
		client, err = s.clients.Client(provider)
		if err == nil {
			var result GenerateResult
			result, err = client.Generate(ctx, GenerateRequest{
				Model:        provider.Model(),
				Prompt:       prompt,
				Temperature:  detailsTemperature,
				EnableSearch: true,
			})
			text, sources = result.Text, result.Sources
		}
	}
	if err != nil {
		if !IsCancellation(err) {
			s.log.Error().Err(err).Str("title", title).Msg("event details fetch failed")
		}
		return models.EventDetails{}, err
	}

	var parsed struct {
		Summary    string `json:"summary"`
		ImageQuery string `json:"image_query"`
	}
	if err := decodeJSON(text, &parsed); err != nil {
		return models.EventDetails{}, err
	}
	if parsed.Summary == "" || parsed.ImageQuery == "" {
		return models.EventDetails{}, fmt.Errorf("%w: missing summary or image_query", ErrStructuredOutput)
	}

	details := models.EventDetails{
		Summary:    parsed.Summary,
		ImageQuery: parsed.ImageQuery,
	}
	for _, src := range sources {
		details.Sources = append(details.Sources, models.Source{URI: src.URI, Title: src.Title})
	}

	return details, nil
}

// ChatResponse continues the conversation about one event. The native
// backend keeps one session per (event title, model id) topic, recreated on
// topic or credential change and discarded on error; the compatible backend
// replays the system instruction plus the full history on every call.
//
// Turns within one conversation are strictly sequential; callers must not
// overlap them.
func (s *Service) ChatResponse(ctx context.Context, eventTitle string, history []models.ChatMessage, newMessage, lang string, provider models.AIProvider) (string, error) {
	system := chatSystemPrompt(eventTitle, lang)

	if provider.Kind() == models.BackendCompatible {
		full := append([]models.ChatMessage{{Role: models.RoleSystem, Text: system}}, history...)
		return s.compat.Complete(ctx, provider, full, newMessage, compatTemperature)
	}

	client, err := s.clients.Client(provider)
	if err != nil {
		return "", err
	}

	topic := eventTitle + "-" + provider.Model()
	session := s.clients.sessionFor(topic, provider.Model(), system, history)

	reply, err := session.send(ctx, client, newMessage)
	if err != nil {
		// Force recreation on the next turn.
		s.clients.dropSession()
		if !IsCancellation(err) {
			s.log.Error().Err(err).Str("topic", topic).Msg("chat turn failed")
		}
		return "", err
	}

	return reply, nil
}

// GenerateEvents asks the backend for a batch of new events matching a
// free-text prompt. Malformed array elements are dropped rather than
// failing the batch; a non-array response fails with ErrNotArray.
func (s *Service) GenerateEvents(ctx context.Context, userPrompt, lang string, provider models.AIProvider) ([]models.ProposedEvent, error) {
	prompt := generatePrompt(userPrompt, lang)

	var (
		text string
		err  error
	)
	switch provider.Kind() {
	case models.BackendCompatible:
		text, err = s.compat.Complete(ctx, provider, nil, prompt, compatTemperature)
	default:
		var client *NativeClient
		client, err = s.clients.Client(provider)
		if err == nil {
			var result GenerateResult
			result, err = client.Generate(ctx, GenerateRequest{
				Model:        provider.Model(),
				Prompt:       prompt,
				Temperature:  generateTemperature,
				EnableSearch: true,
			})
			text = result.Text
		}
	}
	if err != nil {
		if !IsCancellation(err) {
			s.log.Error().Err(err).Msg("event generation failed")
		}
		return nil, err
	}

	return parseProposedEvents(text)
}

// parseProposedEvents decodes the batch response. Elements that do not
// satisfy the full field-type contract are silently filtered out; partial
// success is the intended policy.
func parseProposedEvents(text string) ([]models.ProposedEvent, error) {
	var raw any
	if err := decodeJSON(text, &raw); err != nil {
		return nil, err
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, ErrNotArray
	}

	var events []models.ProposedEvent
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		year, ok := obj["year"].(float64)
		if !ok {
			continue
		}
		track, ok := obj["track"].(string)
		if !ok || !models.ValidTrack(models.Track(track)) {
			continue
		}
		title, ok := obj["title"].(string)
		if !ok {
			continue
		}
		titleZH, ok := obj["title_zh"].(string)
		if !ok {
			continue
		}
		rawTags, ok := obj["tags"].([]any)
		if !ok {
			continue
		}

		tags := make([]string, 0, len(rawTags))
		for _, t := range rawTags {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}

		events = append(events, models.ProposedEvent{
			Year:    year,
			Track:   models.Track(track),
			Title:   title,
			TitleZH: titleZH,
			Tags:    tags,
		})
	}

	return events, nil
}
