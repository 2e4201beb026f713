// Package conversation runs one exchange with the remote model: it replays
// the user's transcript as context, sends the new turn and classifies the
// result. The transcript is persisted only after a successful reply, so a
// failed call leaves the stored history exactly as it was.
package conversation

import (
	"context"
	"log"
	"strings"

	"ai-tutor/internal/auth"
	"ai-tutor/internal/history"
	"ai-tutor/internal/llm"
	"ai-tutor/internal/persona"
)

type Kind int

const (
	KindReply Kind = iota
	KindRefused
	KindEmpty
	KindTransient
	KindQuota
)

func (k Kind) String() string {
	switch k {
	case KindReply:
		return "reply"
	case KindRefused:
		return "refused"
	case KindEmpty:
		return "empty"
	case KindTransient:
		return "transient"
	case KindQuota:
		return "quota"
	}
	return "unknown"
}

// Outcome is how an exchange ended. Text is set only for KindReply.
// Detail carries internal diagnostics for logging and must never be shown
// to the user.
type Outcome struct {
	Kind   Kind
	Text   string
	Detail string
}

type Client struct {
	llm     llm.Client
	store   *history.Store
	persona *persona.Config
}

func New(llmClient llm.Client, store *history.Store, p *persona.Config) *Client {
	return &Client{llm: llmClient, store: store, persona: p}
}

// Converse sends text with the user's accumulated transcript and returns
// the classified outcome. On a reply it appends both turns and saves; a
// save failure is logged but the reply is still delivered.
func (c *Client) Converse(ctx context.Context, text string, user auth.User) Outcome {
	transcript := c.store.Load(user)
	transcript = transcript.Append(history.RoleUser, text)

	msgs := make([]llm.Message, 0, len(transcript)+1)
	if c.persona.SystemPrompt != "" {
		msgs = append(msgs, llm.Message{Role: "system", Content: c.persona.SystemPrompt})
	}
	for _, turn := range transcript {
		role := turn.Role
		if role == history.RoleModel {
			role = "assistant"
		}
		msgs = append(msgs, llm.Message{Role: role, Content: turn.Parts})
	}

	resp, err := c.llm.Generate(ctx, msgs)
	if err != nil {
		if llm.IsQuotaExhausted(err) {
			return Outcome{Kind: KindQuota, Detail: err.Error()}
		}
		return Outcome{Kind: KindTransient, Detail: err.Error()}
	}
	if resp.FinishReason == llm.FinishReasonContentFilter {
		return Outcome{Kind: KindRefused, Detail: resp.FinishReason}
	}
	if strings.TrimSpace(resp.Content) == "" {
		return Outcome{Kind: KindEmpty}
	}

	log.Printf("LLM response [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)

	transcript = transcript.Append(history.RoleModel, resp.Content)
	if err := c.store.Save(user, transcript); err != nil {
		log.Printf("failed to save transcript for %d: %v", user.ID, err)
	}
	return Outcome{Kind: KindReply, Text: resp.Content}
}
