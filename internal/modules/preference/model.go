// README: Preference fields, per-session state and collection status.
package preference

import "errors"

type Field string

const (
	FieldCity      Field = "city"
	FieldBudget    Field = "budget"
	FieldInterests Field = "interests"
	FieldStartTime Field = "start_time"
	FieldEndTime   Field = "end_time"
)

// Fields is the fixed, ordered set of required preferences.
var Fields = []Field{FieldCity, FieldBudget, FieldInterests, FieldStartTime, FieldEndTime}

// CompletionMessage is returned once every field is collected.
const CompletionMessage = "Thank you! All required preferences have been collected."

var (
	ErrUnknownField    = errors.New("unknown preference field")
	ErrSessionNotFound = errors.New("session not found")
)

// ParseField accepts the canonical name and loose variants such as "Start Time".
func ParseField(name string) (Field, bool) {
	f := Field(normalizeKey(name))
	for _, known := range Fields {
		if f == known {
			return f, true
		}
	}
	return "", false
}

type Status string

const (
	StatusCollecting Status = "collecting"
	StatusComplete   Status = "complete"
)

// State holds the collected value of each field; nil means not yet extracted.
// The zero value is a fresh session with every field absent.
type State struct {
	City      *string `json:"city"`
	Budget    *string `json:"budget"`
	Interests *string `json:"interests"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

func (s *State) slot(f Field) **string {
	switch f {
	case FieldCity:
		return &s.City
	case FieldBudget:
		return &s.Budget
	case FieldInterests:
		return &s.Interests
	case FieldStartTime:
		return &s.StartTime
	case FieldEndTime:
		return &s.EndTime
	}
	return nil
}

// Value reports the collected value of f.
func (s State) Value(f Field) (string, bool) {
	p := s.slot(f)
	if p == nil || *p == nil {
		return "", false
	}
	return **p, true
}

// Merge adopts each extracted value whose field is still absent.
// Fields that are already set keep their first value.
func (s State) Merge(extracted map[Field]string) State {
	for f, v := range extracted {
		p := s.slot(f)
		if p == nil || *p != nil {
			continue
		}
		val := v
		*p = &val
	}
	return s
}

// Missing lists the absent fields in canonical order.
func (s State) Missing() []Field {
	var out []Field
	for _, f := range Fields {
		if _, ok := s.Value(f); !ok {
			out = append(out, f)
		}
	}
	return out
}

func (s State) Complete() bool { return len(s.Missing()) == 0 }

func (s State) Status() Status {
	if s.Complete() {
		return StatusComplete
	}
	return StatusCollecting
}

// Values returns the set fields keyed by name.
func (s State) Values() map[string]string {
	out := make(map[string]string, len(Fields))
	for _, f := range Fields {
		if v, ok := s.Value(f); ok {
			out[string(f)] = v
		}
	}
	return out
}
