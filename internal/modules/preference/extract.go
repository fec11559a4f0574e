// README: Extraction and follow-up prompts plus strict parsing of the model's JSON reply.
package preference

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tourplan/internal/ai"
)

var fieldDescriptions = map[Field]string{
	FieldCity:      "The city the user wants to visit.",
	FieldBudget:    "The budget for the trip.",
	FieldInterests: "The user's interests (e.g., historical sites, shopping).",
	FieldStartTime: "The time the user wants to start the trip.",
	FieldEndTime:   "The time the user wants to end the trip.",
}

// isAbsentMarker reports placeholder strings models use instead of null.
func isAbsentMarker(s string) bool {
	switch strings.ToLower(s) {
	case "", "none", "null", "nil", "n/a", "unknown", "not mentioned":
		return true
	}
	return false
}

func buildExtractionPrompt(message string) string {
	var b strings.Builder
	b.WriteString("You are a travel assistant. Extract the following details from the user's message:\n")
	for _, f := range Fields {
		fmt.Fprintf(&b, "- %s: %s\n", f, fieldDescriptions[f])
	}
	b.WriteString("If a detail is not mentioned, use null for it.\n\n")
	fmt.Fprintf(&b, "User's Message: %q\n\n", message)
	b.WriteString("Respond with only a JSON object whose keys are exactly: ")
	b.WriteString(joinFields(Fields))
	b.WriteString(".")
	return b.String()
}

func buildFollowUpPrompt(missing []Field) string {
	return fmt.Sprintf(`You are a travel assistant. Give a short, concise, and interactive
prompt to ask the user to provide the missing details.

Missing details: %s

Respond with only the prompt text for the user.`, joinFields(missing))
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ParseExtraction decodes the model reply into known field values.
// The reply must be a single JSON object; anything else yields an empty result and an error
// describing why. Unknown keys, absent markers and unsupported value types are skipped.
func ParseExtraction(raw string) (map[Field]string, error) {
	out := map[Field]string{}

	dec := json.NewDecoder(strings.NewReader(ai.CleanJSONString(raw)))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return out, fmt.Errorf("decode extraction: %w", err)
	}
	if obj == nil {
		return out, errors.New("decode extraction: not a JSON object")
	}
	if dec.More() {
		return out, errors.New("decode extraction: trailing data after object")
	}

	for key, v := range obj {
		f, ok := ParseField(key)
		if !ok {
			continue
		}
		if s, ok := normalizeValue(v); ok {
			out[f] = s
		}
	}
	return out, nil
}

func normalizeValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if isAbsentMarker(s) {
			return "", false
		}
		return s, true
	case json.Number:
		return t.String(), true
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			switch item.(type) {
			case string, json.Number:
				if s, ok := normalizeValue(item); ok {
					parts = append(parts, s)
				}
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ", "), true
	default:
		return "", false
	}
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(k)
}
