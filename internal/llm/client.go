// Package llm provides a minimal chat-completions client used by the
// conversational command endpoint.
package llm

import "context"

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client sends a conversation to a language model and returns the
// assistant's reply text.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
