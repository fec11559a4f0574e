package preference

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fullState() State {
	return State{
		City:      strPtr("Rome"),
		Budget:    strPtr("100"),
		Interests: strPtr("history"),
		StartTime: strPtr("09:00"),
		EndTime:   strPtr("18:00"),
	}
}

func TestProcess_ExtractsAndAsksForMissing(t *testing.T) {
	model := &scriptedModel{
		extractions: []string{`{"city": "Rome", "budget": 100, "interests": null, "start_time": null, "end_time": null}`},
		followUp:    "What are you interested in, and when does your day start and end?",
	}
	c := NewCollector(model)

	reply, state, err := c.Process(context.Background(), "I want to visit Rome with a $100 budget", State{})
	require.NoError(t, err)

	city, ok := state.Value(FieldCity)
	require.True(t, ok)
	assert.Equal(t, "Rome", city)
	budget, ok := state.Value(FieldBudget)
	require.True(t, ok)
	assert.Equal(t, "100", budget)
	assert.Equal(t, []Field{FieldInterests, FieldStartTime, FieldEndTime}, state.Missing())
	assert.Equal(t, StatusCollecting, state.Status())
	assert.Equal(t, model.followUp, reply)

	calls := model.calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0], `"I want to visit Rome with a $100 budget"`)
	assert.Contains(t, calls[1], "Missing details: interests, start_time, end_time")
	assert.NotContains(t, calls[1], "city")
	assert.NotContains(t, calls[1], "budget")
}

func TestProcess_CompleteStateSkipsModel(t *testing.T) {
	model := &scriptedModel{}
	c := NewCollector(model)

	reply, state, err := c.Process(context.Background(), "actually make it Paris", fullState())
	require.NoError(t, err)
	assert.Equal(t, CompletionMessage, reply)
	assert.Equal(t, fullState(), state)
	assert.Empty(t, model.calls())
}

func TestProcess_LastFieldCompletesWithoutFollowUp(t *testing.T) {
	start := fullState()
	start.EndTime = nil
	model := &scriptedModel{extractions: []string{`{"end_time": "20:00"}`}}
	c := NewCollector(model)

	reply, state, err := c.Process(context.Background(), "until 8pm", start)
	require.NoError(t, err)
	assert.Equal(t, CompletionMessage, reply)
	assert.Equal(t, StatusComplete, state.Status())
	assert.Len(t, model.calls(), 1)
}

func TestProcess_UnparseableExtractionLeavesStateUnchanged(t *testing.T) {
	inputs := []string{
		"Sure! The city is Rome.",
		`{"city": "Rome"`,
		`["Rome", "100"]`,
		`__import__('os').system('rm -rf /')`,
		"null",
	}
	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			before := State{Budget: strPtr("50")}
			model := &scriptedModel{extractions: []string{raw}, followUp: "Tell me more."}
			c := NewCollector(model)

			reply, after, err := c.Process(context.Background(), "hello", before)
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.Equal(t, "Tell me more.", reply)
		})
	}
}

func TestProcess_ExtractionCallErrorFailsSoft(t *testing.T) {
	model := &scriptedModel{extractErr: errors.New("upstream 503"), followUp: "Where to?"}
	c := NewCollector(model)

	reply, state, err := c.Process(context.Background(), "hi", State{})
	require.NoError(t, err)
	assert.Equal(t, State{}, state)
	assert.Equal(t, "Where to?", reply)
}

func TestProcess_FollowUpErrorKeepsMergedState(t *testing.T) {
	model := &scriptedModel{
		extractions: []string{`{"city": "Lisbon"}`},
		followErr:   errors.New("quota exceeded"),
	}
	c := NewCollector(model)

	_, state, err := c.Process(context.Background(), "Lisbon please", State{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	city, ok := state.Value(FieldCity)
	require.True(t, ok)
	assert.Equal(t, "Lisbon", city)
}

func TestProcess_FirstWriteWins(t *testing.T) {
	model := &scriptedModel{
		extractions: []string{`{"city": "Paris", "interests": "food"}`},
		followUp:    "When?",
	}
	c := NewCollector(model)

	_, state, err := c.Process(context.Background(), "Paris, food", State{City: strPtr("Rome")})
	require.NoError(t, err)
	city, _ := state.Value(FieldCity)
	assert.Equal(t, "Rome", city)
	interests, _ := state.Value(FieldInterests)
	assert.Equal(t, "food", interests)
}

func TestProcess_DoesNotMutateInput(t *testing.T) {
	model := &scriptedModel{extractions: []string{`{"city": "Oslo"}`}, followUp: "Budget?"}
	c := NewCollector(model)

	in := State{}
	_, _, err := c.Process(context.Background(), "Oslo", in)
	require.NoError(t, err)
	assert.Nil(t, in.City)
}

// TestProcess_RandomSequencesAreMonotonic feeds random extraction sequences and checks that a
// set field never changes or reverts, and that completion matches "no field missing".
func TestProcess_RandomSequencesAreMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := []string{"", "null", "A", "B", "C"}

	for run := 0; run < 50; run++ {
		var extractions []string
		for i := 0; i < 8; i++ {
			var parts []string
			for _, f := range Fields {
				v := values[rng.Intn(len(values))]
				switch v {
				case "":
					continue
				case "null":
					parts = append(parts, fmt.Sprintf("%q: null", f))
				default:
					parts = append(parts, fmt.Sprintf("%q: %q", f, v+string(f)))
				}
			}
			if rng.Intn(5) == 0 {
				extractions = append(extractions, "not json")
				continue
			}
			extractions = append(extractions, "{"+strings.Join(parts, ",")+"}")
		}

		model := &scriptedModel{extractions: extractions, followUp: "more please"}
		c := NewCollector(model)
		state := State{}
		for range extractions {
			reply, next, err := c.Process(context.Background(), "msg", state)
			require.NoError(t, err)
			for _, f := range Fields {
				prev, wasSet := state.Value(f)
				cur, isSet := next.Value(f)
				if wasSet {
					require.True(t, isSet, "field %s reverted to absent", f)
					require.Equal(t, prev, cur, "field %s overwritten", f)
				}
			}
			assert.Equal(t, len(next.Missing()) == 0, next.Status() == StatusComplete)
			if next.Complete() {
				assert.Equal(t, CompletionMessage, reply)
			}
			state = next
		}
	}
}
