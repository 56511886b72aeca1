// Package llm talks to the completion services scriptmonkey relies on.
package llm

import (
	"context"
	"fmt"
	"time"
)

// LLM is a completion service.
type LLM interface {
	// Chat sends a single user prompt and returns the raw text reply.
	Chat(ctx context.Context, prompt string) (string, error)
	// ChatJSON sends system instructions and user content and decodes a
	// structured reply shaped like out (a pointer to a struct) into out.
	ChatJSON(ctx context.Context, instructions, content, name string, out any) error
	// Model returns the model identifier requests are sent to.
	Model() string
	// Provider returns which backend this client talks to.
	Provider() Provider
}

// Config holds the settings needed to build a client.
type Config struct {
	Provider Provider
	APIKey   string
	Model    string
	// BaseURL overrides the provider's API endpoint (proxies, tests).
	BaseURL string
	// Timeout bounds a single request. Zero means DefaultTimeout.
	Timeout time.Duration
}

const DefaultTimeout = 120 * time.Second

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// APIError is a non-successful reply from a completion service.
type APIError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}
