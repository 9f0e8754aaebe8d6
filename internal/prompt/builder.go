package prompt

import (
	"fmt"
	"strings"
)

// MaxPromptRunes caps what is forwarded to a provider
const MaxPromptRunes = 2000

// Builder builds prompts for song generation
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

// BuildSystemPrompt combines the songwriter persona with the output format
func (b *Builder) BuildSystemPrompt() (string, error) {
	system, err := b.loader.GetSystemPrompt()
	if err != nil {
		return "", fmt.Errorf("failed to load system prompt: %w", err)
	}
	format, err := b.loader.GetOutputFormatInstructions()
	if err != nil {
		return "", fmt.Errorf("failed to load output format instructions: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\n")
	sb.WriteString(format)
	return sb.String(), nil
}

// BuildUserPrompt wraps the listener's description
func (b *Builder) BuildUserPrompt(description string) string {
	return fmt.Sprintf("Create a song for this description: %q", Truncate(description, MaxPromptRunes))
}

// Truncate shortens s to at most n runes
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
