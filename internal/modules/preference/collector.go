// README: Collector merges model-extracted fields into session state and asks for what is missing.
package preference

import (
	"context"
	"fmt"
	"log/slog"

	"tourplan/internal/ai"
)

// Collector drives the Collecting -> Complete state machine for one message at a time.
type Collector struct {
	model ai.TextModel
}

func NewCollector(model ai.TextModel) *Collector {
	return &Collector{model: model}
}

// Process extracts fields from message, merges them into state and returns the text to show
// the user together with the updated state. The input state is never modified.
//
// Extraction failures are logged and treated as "nothing extracted". An error is only
// returned when the follow-up prompt cannot be generated; the merged state is still returned
// in that case so the caller can keep it.
func (c *Collector) Process(ctx context.Context, message string, state State) (string, State, error) {
	if state.Complete() {
		return CompletionMessage, state, nil
	}

	updated := state.Merge(c.extract(ctx, message))

	missing := updated.Missing()
	if len(missing) == 0 {
		return CompletionMessage, updated, nil
	}

	prompt, err := c.model.Complete(ctx, buildFollowUpPrompt(missing))
	if err != nil {
		return "", updated, fmt.Errorf("generate follow-up prompt: %w", err)
	}
	return prompt, updated, nil
}

func (c *Collector) extract(ctx context.Context, message string) map[Field]string {
	raw, err := c.model.Complete(ctx, buildExtractionPrompt(message))
	if err != nil {
		slog.WarnContext(ctx, "preference extraction call failed", "error", err)
		return nil
	}
	fields, err := ParseExtraction(raw)
	if err != nil {
		slog.WarnContext(ctx, "preference extraction unparseable", "error", err, "raw", raw)
		return nil
	}
	return fields
}
