package client

import "context"

// CompletionRequest is a single-turn chat: a system prompt and one user
// message.
type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Completer is implemented by every LLM provider client.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Provider() string
}
