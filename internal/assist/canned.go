package assist

import (
	"context"
	"strings"
)

const cannedPrefix = "I'm ready! Set SHOAL_GEMINI_API_KEY to get AI answers. Meanwhile: "

// Canned answers from a small set of built-in responses. It backs the
// assistant when no API key is configured so the endpoint never breaks.
type Canned struct{}

// Name implements Provider.
func (Canned) Name() string { return "canned" }

// Answer implements Provider. It special-cases the most common pairing
// question and otherwise points at the topics it can discuss.
func (Canned) Answer(_ context.Context, question string) (string, error) {
	q := strings.ToLower(question)
	if strings.Contains(q, "betta") && strings.Contains(q, "gold") {
		return cannedPrefix + "Bettas and goldfish are not ideal tankmates due to temp and behavior differences.", nil
	}
	return cannedPrefix + "Ask about tank mates, water params, diet, or care tips.", nil
}
