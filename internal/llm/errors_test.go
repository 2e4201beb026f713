package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestIsQuotaExhausted(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"api 429", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, true},
		{"wrapped api 429", fmt.Errorf("generate: %w", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}), true},
		{"api 500", &openai.APIError{HTTPStatusCode: http.StatusInternalServerError}, false},
		{"gemini signature", errors.New("429 Resource has been exhausted"), true},
		{"grpc signature", errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), true},
		{"transport", errors.New("connection reset by peer"), false},
	}
	for _, c := range cases {
		if got := IsQuotaExhausted(c.err); got != c.want {
			t.Errorf("%s: IsQuotaExhausted = %v, want %v", c.name, got, c.want)
		}
	}
}
