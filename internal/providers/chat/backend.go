package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Backend is the one-shot completion contract the gateway depends on. An
// implementation performs exactly one provider round trip per call, honors
// context cancellation, and keeps no conversational state between calls.
type Backend interface {
	Complete(ctx context.Context, sessionID, model, prompt string) (string, error)
}

// DefaultSystemMessage frames every session for the marketplace domain.
const DefaultSystemMessage = "You are an AI assistant specialized in helping local artisans market their traditional crafts and tell their cultural stories."

// NewSessionID returns a fresh session identifier. Sessions are scoped to a
// single request so no request can influence another's state.
func NewSessionID() string {
	return "artisan-assistant-" + uuid.NewString()
}

// Error describes a failed completion attempt against a provider.
type Error struct {
	Provider string
	Status   int // HTTP status when the provider answered, zero otherwise
	Err      error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
