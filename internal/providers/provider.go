// internal/providers/provider.go

// Package providers defines the interfaces for interacting with model
// backends. It abstracts session creation and message exchange so the runner
// does not depend on a concrete API client.
package providers

import "context"

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// Session is one multi-turn conversation. The runner opens a session per
// dataset entry so related questions share report context.
type Session interface {
	// Send appends a user message, obtains the model's reply, and returns
	// its text. The session retains both turns for subsequent calls.
	Send(ctx context.Context, prompt string) (string, error)
}

// ChatProvider opens chat sessions against a model backend.
type ChatProvider interface {
	// NewSession starts a conversation seeded with a system prompt and an
	// optional opening history.
	NewSession(systemPrompt string, opening []ChatMessage) Session
	// Close releases any resources held by the provider.
	Close() error
}
