// Package integrations wraps optional third-party AI services.
package integrations

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Narrator rewrites insight summaries with an LLM when configured.
// The zero value (empty API key) always returns the fallback.
type Narrator struct {
	apiKey string
}

// NewNarrator creates a narrator. An empty apiKey disables narration.
func NewNarrator(apiKey string) *Narrator {
	return &Narrator{apiKey: apiKey}
}

// Enabled reports whether an API key is configured.
func (n *Narrator) Enabled() bool {
	return n.apiKey != ""
}

// Narrate sends a prompt and returns the first message content, or fallback
// when narration is disabled or the request fails.
func (n *Narrator) Narrate(ctx context.Context, prompt, fallback string) string {
	if n.apiKey == "" {
		return fallback
	}
	client := openai.NewClient(n.apiKey)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		MaxTokens: 300,
	})
	if err != nil || len(resp.Choices) == 0 {
		return fallback
	}
	return resp.Choices[0].Message.Content
}
