// README: Itinerary builder turns stored preferences into a one-day plan with one model call.
package itinerary

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tourplan/internal/ai"
)

// Request carries everything the plan prompt is built from. Weather and Attractions are optional.
type Request struct {
	Preferences map[string]string
	Weather     string
	Attractions []string
}

type Builder struct {
	model ai.TextModel
}

func NewBuilder(model ai.TextModel) *Builder {
	return &Builder{model: model}
}

// Build does not check that the preferences are complete; missing fields are left to the model.
func (b *Builder) Build(ctx context.Context, req Request) (string, error) {
	text, err := b.model.Complete(ctx, BuildPrompt(req))
	if err != nil {
		return "", fmt.Errorf("generate itinerary: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// BuildPrompt renders preferences in sorted key order so identical inputs give identical prompts.
func BuildPrompt(req Request) string {
	keys := make([]string, 0, len(req.Preferences))
	for k := range req.Preferences {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Based on these preferences:\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, req.Preferences[k])
	}
	if req.Weather != "" {
		fmt.Fprintf(&b, "\nCurrent weather: %s\n", req.Weather)
	}
	if len(req.Attractions) > 0 {
		b.WriteString("\nWell-rated places you may include:\n")
		for _, a := range req.Attractions {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}
	b.WriteString("\nPlan a one-day itinerary for the user.")
	return b.String()
}
