package llm

import "context"

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	FinishReason     string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// FinishReasonContentFilter marks a generation the provider cut off on
// safety grounds rather than completed.
const FinishReasonContentFilter = "content_filter"

// Params are the generation knobs sent with every request. They are fixed
// at client construction and never change at runtime.
type Params struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}
