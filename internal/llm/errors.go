package llm

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// IsQuotaExhausted reports whether err carries the provider's
// resource-exhaustion signature (HTTP 429 or Gemini's RESOURCE_EXHAUSTED
// status). These get a distinct user-facing message because the condition
// is temporary by definition.
func IsQuotaExhausted(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "resource has been exhausted") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "quota")
}
