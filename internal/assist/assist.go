// Package assist answers free-form aquarium care questions, either through
// the Gemini API or from canned fallback responses when no key is configured.
package assist

import (
	"context"
	"fmt"
)

// Provider is a question-answering backend.
type Provider interface {
	// Answer responds to one aquarium care question.
	Answer(ctx context.Context, question string) (string, error)

	// Name identifies the provider in logs and the stats endpoint.
	Name() string
}

// Assistant wraps a provider with the request-level behavior the API
// promises: empty questions get a prompt to type one, and provider failures
// become an answer rather than an HTTP error.
type Assistant struct {
	provider Provider
}

// New creates an assistant backed by the given provider.
func New(p Provider) *Assistant {
	return &Assistant{provider: p}
}

// ProviderName reports which provider backs this assistant.
func (a *Assistant) ProviderName() string {
	return a.provider.Name()
}

// Ask answers a question. The returned string is always user-presentable.
func (a *Assistant) Ask(ctx context.Context, question string) string {
	if question == "" {
		return "Please type a question."
	}
	answer, err := a.provider.Answer(ctx, question)
	if err != nil {
		return fmt.Sprintf("AI error: %v", err)
	}
	return answer
}
