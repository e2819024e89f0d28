package models

// BackendKind selects which request path an AI provider uses. The kind is
// resolved once from the provider record, not inferred per call.
type BackendKind string

const (
	// BackendNative is the dedicated Gemini client with search grounding.
	BackendNative BackendKind = "native"

	// BackendCompatible is a generic chat-completion-style HTTP API.
	BackendCompatible BackendKind = "compatible"
)

// AIProvider is a configured AI backend profile. A non-empty BaseURL selects
// the compatible backend; an empty one selects the native backend.
type AIProvider struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	ModelID string `json:"model_id"`
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
}

// Kind returns the resolved backend variant for the provider.
func (p AIProvider) Kind() BackendKind {
	if p.BaseURL != "" {
		return BackendCompatible
	}
	return BackendNative
}

// HasCredentials reports whether the provider can be used at all.
func (p AIProvider) HasCredentials() bool {
	return p.APIKey != ""
}

// DefaultGeminiModel is used when a native provider has no model configured.
const DefaultGeminiModel = "gemini-2.5-flash-preview-04-17"

// Model returns the configured model id, falling back to the default.
func (p AIProvider) Model() string {
	if p.ModelID != "" {
		return p.ModelID
	}
	return DefaultGeminiModel
}
