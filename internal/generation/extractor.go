package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSONFound is returned when the text holds no {...} span
var ErrNoJSONFound = errors.New("no JSON object found in response")

// MalformedJSONError is returned when the candidate span does not parse
type MalformedJSONError struct {
	Candidate string
	Err       error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON in response: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

var (
	codeFencePattern = regexp.MustCompile("```[a-zA-Z]*")
	labelPattern     = regexp.MustCompile(`^\s*[A-Za-z][A-Za-z _-]{0,30}:\s*`)
)

// ExtractJSONText strips code fences and a leading "label:" prefix, then
// returns the span from the first '{' to the last '}'.
func ExtractJSONText(text string) (string, error) {
	cleaned := codeFencePattern.ReplaceAllString(text, "")
	if loc := labelPattern.FindStringIndex(cleaned); loc != nil && !strings.Contains(cleaned[:loc[1]], "{") {
		cleaned = cleaned[loc[1]:]
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return "", ErrNoJSONFound
	}
	return cleaned[start : end+1], nil
}

// ExtractJSON locates and parses the JSON object embedded in a provider
// response. It does not look at individual fields.
func ExtractJSON(text string) (map[string]any, error) {
	candidate, err := ExtractJSONText(text)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(candidate), &out); err != nil {
		return nil, &MalformedJSONError{Candidate: candidate, Err: err}
	}
	return out, nil
}
