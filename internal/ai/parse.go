package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnwrapCodeFence strips a single enclosing markdown code fence, with or
// without a language tag, from a model response. Anything else is returned
// trimmed but untouched.
func UnwrapCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}

	body := strings.TrimSuffix(s, "```")
	body = strings.TrimPrefix(body, "```")

	// Drop the language tag on the opening fence line, if any.
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		first := strings.TrimSpace(body[:idx])
		if first == "" || isFenceTag(first) {
			body = body[idx+1:]
		}
	}

	return strings.TrimSpace(body)
}

func isFenceTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// decodeJSON unwraps a possible code fence and decodes the remainder into v.
func decodeJSON(text string, v any) error {
	cleaned := UnwrapCodeFence(text)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: %v", ErrStructuredOutput, err)
	}
	return nil
}
