// Package ai drives the external content-generation provider through an
// OpenAI-compatible chat-completions API (OpenRouter by default).
package ai

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// SEOSignals are optional keyword metrics woven into the prompt.
type SEOSignals struct {
	SearchVolume *int
	Difficulty   *int
	Competition  string
}

// WebsiteInfo is optional branding context for the generated article.
type WebsiteInfo struct {
	Name        string
	Domain      string
	Description string
}

// Request describes one article to generate.
type Request struct {
	Keyword string
	Signals *SEOSignals
	Website *WebsiteInfo
}

// GeneratedArticle is the parsed provider output. All four text fields are
// guaranteed non-empty; TokensUsed is zero when the provider reports no
// usage data.
type GeneratedArticle struct {
	Title          string `json:"title"`
	Content        string `json:"content"`
	SeoTitle       string `json:"seoTitle"`
	SeoDescription string `json:"seoDescription"`
	TokensUsed     int    `json:"tokensUsed"`
}

// Generator is the single capability the pipeline consumes.
type Generator interface {
	// Ready reports whether the client has credentials to work with.
	Ready() error
	Generate(ctx context.Context, req Request) (*GeneratedArticle, error)
	Health(ctx context.Context) error
	Model() string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type openRouterClient struct {
	client openai.Client
	cfg    Config
}

// NewClient builds a Generator backed by an OpenAI-compatible endpoint.
func NewClient(cfg Config) Generator {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	)
	return &openRouterClient{client: client, cfg: cfg}
}

func (c *openRouterClient) Ready() error {
	if c.cfg.APIKey == "" {
		return ErrNotConfigured
	}
	return nil
}

func (c *openRouterClient) Model() string {
	return c.cfg.Model
}

func (c *openRouterClient) Generate(ctx context.Context, req Request) (*GeneratedArticle, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	prompt := BuildPrompt(req)

	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		MaxTokens:        openai.Int(4000),
		Temperature:      openai.Float(0.7),
		TopP:             openai.Float(0.9),
		FrequencyPenalty: openai.Float(0.1),
		PresencePenalty:  openai.Float(0.1),
	})
	if err != nil {
		return nil, providerError(err)
	}

	if len(response.Choices) == 0 {
		return nil, &ParseError{Reason: "provider returned no choices"}
	}

	content := response.Choices[0].Message.Content
	if content == "" {
		return nil, &ParseError{Reason: "provider returned empty content"}
	}

	article, err := parseResponse(content)
	if err != nil {
		return nil, err
	}

	article.TokensUsed = int(response.Usage.TotalTokens)
	return article, nil
}

// Health checks provider connectivity by listing available models.
func (c *openRouterClient) Health(ctx context.Context) error {
	if err := c.Ready(); err != nil {
		return err
	}
	if _, err := c.client.Models.List(ctx); err != nil {
		return providerError(err)
	}
	return nil
}

func providerError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{StatusCode: apiErr.StatusCode, Message: apiErr.Error()}
	}
	return &ProviderError{Message: err.Error()}
}
