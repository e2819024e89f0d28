package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// NativeClient calls the Gemini generateContent API. Handles are memoized
// per API key by ClientCache; a key change produces a fresh handle.
type NativeClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewNativeClient creates a client for one API key.
func NewNativeClient(apiKey string, timeout time.Duration) *NativeClient {
	return &NativeClient{
		apiKey:     apiKey,
		baseURL:    defaultGeminiBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GenerateRequest is one native text-generation call.
type GenerateRequest struct {
	Model        string
	System       string
	History      []geminiContent
	Prompt       string
	Temperature  float64
	EnableSearch bool
}

// GenerateResult carries the response text plus any grounding citations.
type GenerateResult struct {
	Text    string
	Sources []SourceRef
}

// SourceRef is one web citation from grounding metadata.
type SourceRef struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	Tools             []geminiTool           `json:"tools,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *SourceRef `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// userContent wraps a single user prompt as a content turn.
func userContent(text string) geminiContent {
	return geminiContent{Role: "user", Parts: []geminiPart{{Text: text}}}
}

// Generate performs one generateContent call. Cancellation of ctx aborts the
// request at the transport level.
func (c *NativeClient) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	body := geminiRequest{
		Contents:         append(append([]geminiContent{}, req.History...), userContent(req.Prompt)),
		GenerationConfig: geminiGenerationConfig{Temperature: req.Temperature},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	if req.EnableSearch {
		body.Tools = []geminiTool{{GoogleSearch: &struct{}{}}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return GenerateResult{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return GenerateResult{}, ctx.Err()
		}
		return GenerateResult{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return GenerateResult{}, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return GenerateResult{}, &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return GenerateResult{}, fmt.Errorf("parsing response: %w", err)
	}
	if apiResp.Error != nil {
		return GenerateResult{}, &TransportError{Status: apiResp.Error.Code, Body: apiResp.Error.Message}
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return GenerateResult{}, fmt.Errorf("%w: empty response", ErrStructuredOutput)
	}

	candidate := apiResp.Candidates[0]

	var text string
	for _, part := range candidate.Content.Parts {
		text += part.Text
	}

	var sources []SourceRef
	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk.Web != nil {
				sources = append(sources, *chunk.Web)
			}
		}
	}

	return GenerateResult{Text: text, Sources: sources}, nil
}
