package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatCompletionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "Here you go: {\"title\":\"Pixel Quest\"}"}
  }],
  "usage": {"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12}
}`

func openAIServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewOpenAIProvider(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "test-api-key"})
	require.NotNil(t, provider)
	assert.Equal(t, "openai", provider.Name())
	assert.Equal(t, "gpt-4o-mini", provider.Model())
	assert.True(t, provider.Configured())
}

func TestOpenAIProvider_NotConfigured(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIConfig{})
	assert.False(t, provider.Configured())

	_, err := provider.Generate(context.Background(), &GenerationRequest{UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpenAIProvider_BuildRequestParams(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o"})
	params := provider.buildRequestParams(&GenerationRequest{SystemPrompt: "sys", UserPrompt: "user"})

	assert.Equal(t, "gpt-4o", string(params.Model))
	assert.Len(t, params.Messages, 2)
}

func TestOpenAIProvider_BuildRequestParams_OutputSchema(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "k"})

	plain := provider.buildRequestParams(&GenerationRequest{UserPrompt: "user"})
	assert.Nil(t, plain.ResponseFormat.OfJSONSchema)

	params := provider.buildRequestParams(&GenerationRequest{UserPrompt: "user", OutputSchema: GetSongOutputSchema()})
	require.NotNil(t, params.ResponseFormat.OfJSONSchema)
	assert.Equal(t, "GeneratedSong", params.ResponseFormat.OfJSONSchema.JSONSchema.Name)
}

func TestOpenAIProvider_Generate_SendsOutputSchema(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, &body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody))
	}))
	t.Cleanup(srv.Close)
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})

	_, err := provider.Generate(context.Background(), &GenerationRequest{
		SystemPrompt: "s",
		UserPrompt:   "u",
		OutputSchema: GetSongOutputSchema(),
	})
	require.NoError(t, err)

	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok, "response_format missing from %v", body)
	assert.Equal(t, "json_schema", format["type"])
	jsonSchema, ok := format["json_schema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "GeneratedSong", jsonSchema["name"])
	assert.Equal(t, "Metadata for one invented song", jsonSchema["description"])
	schema, ok := jsonSchema["schema"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, schema["properties"], "colorScheme")
	assert.Len(t, schema["required"], 7)
}

func TestOpenAIProvider_Generate(t *testing.T) {
	srv := openAIServer(t, http.StatusOK, chatCompletionBody)
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})

	resp, err := provider.Generate(context.Background(), &GenerationRequest{SystemPrompt: "s", UserPrompt: "u"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, `"title":"Pixel Quest"`)
	assert.Equal(t, 12, resp.Usage.TotalTokens)
}

func TestOpenAIProvider_HTTPError(t *testing.T) {
	srv := openAIServer(t, http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`)
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})

	_, err := provider.Generate(context.Background(), &GenerationRequest{UserPrompt: "u"})
	var httpErr *ProviderHTTPError
	require.True(t, errors.As(err, &httpErr), "got %v", err)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
}
