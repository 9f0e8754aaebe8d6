package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewPromptBuilder(t *testing.T) {
	builder := NewPromptBuilder()
	if builder == nil {
		t.Fatal("NewPromptBuilder() returned nil")
		return
	}
	if builder.loader == nil {
		t.Fatal("NewPromptBuilder() created builder with nil loader")
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	builder := NewPromptBuilder()
	prompt, err := builder.BuildSystemPrompt()

	if err != nil {
		t.Fatalf("BuildSystemPrompt() returned error: %v", err)
	}

	if !strings.Contains(prompt, "AI jukebox") {
		t.Error("BuildSystemPrompt() does not contain system prompt content")
	}

	if !strings.Contains(prompt, "OUTPUT FORMAT") {
		t.Error("BuildSystemPrompt() does not contain output format instructions")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	builder := NewPromptBuilder()
	got := builder.BuildUserPrompt("synthwave for night driving")

	if !strings.Contains(got, `"synthwave for night driving"`) {
		t.Errorf("BuildUserPrompt() = %q, want quoted description", got)
	}
}

func TestBuildUserPromptTruncatesLongInput(t *testing.T) {
	builder := NewPromptBuilder()
	long := strings.Repeat("é", MaxPromptRunes+500)
	got := builder.BuildUserPrompt(long)

	if strings.Count(got, "é") != MaxPromptRunes {
		t.Errorf("BuildUserPrompt() kept %d runes, want %d", strings.Count(got, "é"), MaxPromptRunes)
	}
	if !utf8.ValidString(got) {
		t.Error("BuildUserPrompt() produced invalid UTF-8")
	}
}
