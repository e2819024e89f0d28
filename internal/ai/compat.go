package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/timeaxis/timeaxis/internal/models"
)

// CompatClient calls a generic chat-completion-compatible HTTP API. It is
// stateless: every request carries the full message history.
type CompatClient struct {
	httpClient *http.Client
}

// NewCompatClient creates a compatible-backend client.
func NewCompatClient(timeout time.Duration) *CompatClient {
	return &CompatClient{httpClient: &http.Client{Timeout: timeout}}
}

type compatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type compatRequest struct {
	Model       string          `json:"model"`
	Messages    []compatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type compatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// compatEndpoint joins the provider base URL with the chat-completions path.
func compatEndpoint(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/chat/completions"
}

// toCompatMessages translates chat history to the wire roles. The "model"
// role becomes "assistant" at this boundary.
func toCompatMessages(history []models.ChatMessage, prompt string) []compatMessage {
	out := make([]compatMessage, 0, len(history)+1)
	for _, msg := range history {
		role := string(msg.Role)
		if msg.Role == models.RoleModel {
			role = "assistant"
		}
		out = append(out, compatMessage{Role: role, Content: msg.Text})
	}
	return append(out, compatMessage{Role: "user", Content: prompt})
}

// Complete sends the history plus prompt and returns the first choice's
// content. Non-2xx responses fail with the status code and raw body text.
func (c *CompatClient) Complete(ctx context.Context, provider models.AIProvider, history []models.ChatMessage, prompt string, temperature float64) (string, error) {
	if provider.BaseURL == "" || provider.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	payload, err := json.Marshal(compatRequest{
		Model:       provider.ModelID,
		Messages:    toCompatMessages(history, prompt),
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, compatEndpoint(provider.BaseURL), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+provider.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var parsed compatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrStructuredOutput)
	}

	return parsed.Choices[0].Message.Content, nil
}
