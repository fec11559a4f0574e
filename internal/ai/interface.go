package ai

import (
	"context"
	"strings"
)

// SystemPrompt frames every completion request.
const SystemPrompt = "You are a travel assistant."

// TextModel is the text-in/text-out contract shared by all providers.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.).
type TextModel interface {
	// Complete sends prompt to the model and returns the reply text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// CleanJSONString removes markdown code fences if present (e.g. ```json ... ```).
func CleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```JSON")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
