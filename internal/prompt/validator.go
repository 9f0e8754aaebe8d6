package prompt

import (
	"fmt"
	"strings"
)

// ReasonEmptyPrompt is the fallback reason used when validation fails
const ReasonEmptyPrompt = "empty-prompt"

// InvalidPromptError is returned for prompts that must not reach a provider
type InvalidPromptError struct {
	Reason string
}

func (e *InvalidPromptError) Error() string {
	return fmt.Sprintf("invalid prompt: %s", e.Reason)
}

// Validate returns the trimmed prompt, or an InvalidPromptError when v is
// not a string or holds only whitespace.
func Validate(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &InvalidPromptError{Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", &InvalidPromptError{Reason: "prompt is empty"}
	}
	return trimmed, nil
}
