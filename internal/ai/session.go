package ai

import (
	"context"
	"time"

	"github.com/timeaxis/timeaxis/internal/models"
)

// ClientCache owns the memoized native client handle. The handle is rebuilt
// only when the active API key changes, and a key change also invalidates
// any in-progress chat session.
type ClientCache struct {
	timeout time.Duration
	baseURL string

	apiKey string
	client *NativeClient

	session *chatSession
}

// NewClientCache creates an empty cache. Requests are bounded by timeout.
func NewClientCache(timeout time.Duration) *ClientCache {
	return &ClientCache{timeout: timeout}
}

// SetBaseURL overrides the native API endpoint. Used by tests.
func (c *ClientCache) SetBaseURL(url string) {
	c.baseURL = url
	c.Invalidate()
}

// Client returns the native client for the provider's API key, reusing the
// cached handle when the key is unchanged.
func (c *ClientCache) Client(provider models.AIProvider) (*NativeClient, error) {
	if provider.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if c.client != nil && c.apiKey == provider.APIKey {
		return c.client, nil
	}

	c.apiKey = provider.APIKey
	c.client = NewNativeClient(provider.APIKey, c.timeout)
	if c.baseURL != "" {
		c.client.baseURL = c.baseURL
	}
	c.session = nil // credentials changed; any chat session is stale

	return c.client, nil
}

// Invalidate drops the cached client and session.
func (c *ClientCache) Invalidate() {
	c.apiKey = ""
	c.client = nil
	c.session = nil
}

// HasSession reports whether a chat session is active for the topic.
func (c *ClientCache) HasSession(topic string) bool {
	return c.session != nil && c.session.topic == topic
}

// chatSession is one native-backend conversation. The session accumulates
// turns locally; the topic key is event title plus model id, so switching
// events or models starts a fresh conversation.
type chatSession struct {
	topic   string
	model   string
	system  string
	history []geminiContent
}

func newChatSession(topic, model, system string, history []models.ChatMessage) *chatSession {
	s := &chatSession{topic: topic, model: model, system: system}
	for _, msg := range history {
		s.history = append(s.history, geminiContent{
			Role:  string(msg.Role),
			Parts: []geminiPart{{Text: msg.Text}},
		})
	}
	return s
}

// send issues one turn and records both sides in the session history.
func (s *chatSession) send(ctx context.Context, client *NativeClient, message string) (string, error) {
	result, err := client.Generate(ctx, GenerateRequest{
		Model:       s.model,
		System:      s.system,
		History:     s.history,
		Prompt:      message,
		Temperature: chatTemperature,
	})
	if err != nil {
		return "", err
	}

	s.history = append(s.history, userContent(message))
	s.history = append(s.history, geminiContent{Role: "model", Parts: []geminiPart{{Text: result.Text}}})

	return result.Text, nil
}

// sessionFor returns the active session for the topic, creating one seeded
// with the caller's history when the topic changed or none exists.
func (c *ClientCache) sessionFor(topic, model, system string, history []models.ChatMessage) *chatSession {
	if c.session != nil && c.session.topic == topic {
		return c.session
	}
	c.session = newChatSession(topic, model, system, history)
	return c.session
}

// dropSession discards the active session so the next turn recreates it.
func (c *ClientCache) dropSession() {
	c.session = nil
}
