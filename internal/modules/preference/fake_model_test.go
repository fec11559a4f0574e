package preference

import (
	"context"
	"strings"
	"sync"
)

// scriptedModel answers extraction prompts from extractions and follow-up prompts with followUp.
type scriptedModel struct {
	mu          sync.Mutex
	extractions []string
	extractErr  error
	followUp    string
	followErr   error
	prompts     []string
}

func (m *scriptedModel) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if isExtractionPrompt(prompt) {
		if m.extractErr != nil {
			return "", m.extractErr
		}
		if len(m.extractions) == 0 {
			return "{}", nil
		}
		out := m.extractions[0]
		m.extractions = m.extractions[1:]
		return out, nil
	}
	if m.followErr != nil {
		return "", m.followErr
	}
	return m.followUp, nil
}

func (m *scriptedModel) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

func isExtractionPrompt(p string) bool {
	return strings.Contains(p, "Extract the following details")
}
