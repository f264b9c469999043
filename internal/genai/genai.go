// Package genai provides LLM chat completion clients for campaign generation.
//
// Three providers are supported: OpenAI, Anthropic (through its OpenAI-compatible
// endpoint), and Google Gemini. All providers are exposed behind ClientInterface
// so the conversation flow never knows which vendor is active.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/bluereef/campaignforge/internal/models"
)

// Provider identifies the LLM vendor backing a client.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// Default generation parameters
const (
	// DefaultTemperature is the sampling temperature for all campaign generation calls
	DefaultTemperature = 0.7
	// DefaultMaxTokens caps the completion length for a single call
	DefaultMaxTokens = 4000
	// DefaultTimeout bounds a single completion request
	DefaultTimeout = 120 * time.Second
	// DefaultMaxRetries is the per-request retry budget for transient failures
	DefaultMaxRetries = 2
)

// Default models per provider
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-sonnet-20241022"
	DefaultGeminiModel    = "gemini-2.0-flash"
)

// anthropicBaseURL is Anthropic's OpenAI-compatible endpoint.
const anthropicBaseURL = "https://api.anthropic.com/v1/"

// ClientInterface defines the chat completion operations the flow depends on.
type ClientInterface interface {
	// Generate produces a completion for a single system+user prompt pair.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GenerateWithHistory produces a completion with prior conversation turns
	// included between the system prompt and the final user message.
	GenerateWithHistory(ctx context.Context, systemPrompt string, history []models.ConversationMessage, userPrompt string) (string, error)
}

// Opts holds configuration options for LLM clients.
type Opts struct {
	APIKey      string
	Provider    Provider
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
}

// Option configures LLM clients.
type Option func(*Opts)

// WithAPIKey sets the vendor API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithProvider selects the LLM vendor.
func WithProvider(p Provider) Option {
	return func(o *Opts) { o.Provider = p }
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Opts) { o.Temperature = t }
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) Option {
	return func(o *Opts) { o.MaxTokens = n }
}

// WithTimeout bounds each completion request.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// WithMaxRetries sets how many times a failed request is retried.
func WithMaxRetries(n int) Option {
	return func(o *Opts) { o.MaxRetries = n }
}

func buildOpts(opts []Option) Opts {
	cfg := Opts{
		Provider:    ProviderOpenAI,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Timeout:     DefaultTimeout,
		MaxRetries:  DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewClient creates a chat completion client for the configured provider.
func NewClient(ctx context.Context, opts ...Option) (ClientInterface, error) {
	cfg := buildOpts(opts)
	slog.Debug("genai.NewClient: creating client", "provider", cfg.Provider, "model", cfg.Model)

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key not set for provider %s", cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		return newOpenAIClient(cfg,
			option.WithAPIKey(cfg.APIKey),
			option.WithRequestTimeout(cfg.Timeout),
			option.WithMaxRetries(cfg.MaxRetries)), nil
	case ProviderAnthropic:
		if cfg.Model == "" {
			cfg.Model = DefaultAnthropicModel
		}
		return newOpenAIClient(cfg,
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(anthropicBaseURL),
			option.WithRequestTimeout(cfg.Timeout),
			option.WithMaxRetries(cfg.MaxRetries)), nil
	case ProviderGemini:
		if cfg.Model == "" {
			cfg.Model = DefaultGeminiModel
		}
		return newGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}

// OpenAIClient serves both OpenAI and Anthropic through the same wire protocol.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	provider    Provider
}

func newOpenAIClient(cfg Opts, reqOpts ...option.RequestOption) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(reqOpts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		provider:    cfg.Provider,
	}
}

// Generate produces a completion for a single system+user prompt pair.
func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.GenerateWithHistory(ctx, systemPrompt, nil, userPrompt)
}

// GenerateWithHistory produces a completion with prior turns included.
func (c *OpenAIClient) GenerateWithHistory(ctx context.Context, systemPrompt string, history []models.ConversationMessage, userPrompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(systemPrompt))
	for _, msg := range history {
		switch msg.Role {
		case models.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		case models.RoleUser:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	slog.Debug("OpenAIClient.GenerateWithHistory: sending request",
		"provider", c.provider, "model", c.model, "historyLen", len(history))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               c.model,
		Messages:            messages,
		Temperature:         openai.Float(c.temperature),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		slog.Error("OpenAIClient.GenerateWithHistory: request failed", "provider", c.provider, "error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	content := resp.Choices[0].Message.Content
	slog.Debug("OpenAIClient.GenerateWithHistory: response received",
		"provider", c.provider, "responseLen", len(content))
	return content, nil
}
