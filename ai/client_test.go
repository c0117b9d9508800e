package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string, totalTokens int) map[string]interface{} {
	body := map[string]interface{}{
		"id":     "cmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
	if totalTokens > 0 {
		body["usage"] = map[string]interface{}{"total_tokens": totalTokens}
	}
	return body
}

func newTestClient(t *testing.T, handler http.HandlerFunc) Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL + "/"})
}

func TestGenerateSuccess(t *testing.T) {
	payload := "```json\n{\"title\":\"Bread Guide\",\"content\":\"How to bake.\",\"seoTitle\":\"Bread\",\"seoDescription\":\"Baking.\"}\n```"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody(payload, 1234))
	})

	article, err := client.Generate(context.Background(), Request{Keyword: "bake bread"})

	require.NoError(t, err)
	assert.Equal(t, "Bread Guide", article.Title)
	assert.Equal(t, 1234, article.TokensUsed)
}

func TestGenerateUsageOmitted(t *testing.T) {
	payload := "```json\n{\"title\":\"T\",\"content\":\"C\",\"seoTitle\":\"ST\",\"seoDescription\":\"SD\"}\n```"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody(payload, 0))
	})

	article, err := client.Generate(context.Background(), Request{Keyword: "k"})

	require.NoError(t, err)
	assert.Equal(t, 0, article.TokensUsed)
}

func TestGenerateProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"auth"}}`))
	})

	_, err := client.Generate(context.Background(), Request{Keyword: "k"})

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
}

func TestGenerateMalformedPayloadIsParseError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody("sorry, I can't do that", 10))
	})

	_, err := client.Generate(context.Background(), Request{Keyword: "k"})

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestGenerateNotConfigured(t *testing.T) {
	client := NewClient(Config{Model: "m", BaseURL: "http://localhost:1/"})

	_, err := client.Generate(context.Background(), Request{Keyword: "k"})

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBuildPromptSections(t *testing.T) {
	volume := 5400
	difficulty := 35
	prompt := BuildPrompt(Request{
		Keyword: "bake bread",
		Signals: &SEOSignals{SearchVolume: &volume, Difficulty: &difficulty, Competition: "LOW"},
		Website: &WebsiteInfo{Name: "BakeHub", Domain: "bakehub.io"},
	})

	assert.Contains(t, prompt, `Target Keyword: "bake bread"`)
	assert.Contains(t, prompt, "Search Volume: 5400/month")
	assert.Contains(t, prompt, "Difficulty: 35/100")
	assert.Contains(t, prompt, "Website Name: BakeHub")
	assert.Contains(t, prompt, "A helpful online tool")

	bare := BuildPrompt(Request{Keyword: "k"})
	assert.NotContains(t, bare, "Keyword SEO Data")
	assert.NotContains(t, bare, "Website Information")
}
