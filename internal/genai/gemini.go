package genai

import (
	"context"
	"fmt"
	"log/slog"

	ggenai "google.golang.org/genai"

	"github.com/bluereef/campaignforge/internal/models"
)

// GeminiClient serves chat completions through the Google GenAI SDK.
type GeminiClient struct {
	client      *ggenai.Client
	model       string
	temperature float32
	maxTokens   int32
}

func newGeminiClient(ctx context.Context, cfg Opts) (*GeminiClient, error) {
	client, err := ggenai.NewClient(ctx, &ggenai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		slog.Error("GeminiClient: failed to create client", "error", err)
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
	}, nil
}

// Generate produces a completion for a single system+user prompt pair.
func (c *GeminiClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.GenerateWithHistory(ctx, systemPrompt, nil, userPrompt)
}

// historyContents converts prior conversation turns plus the new user message
// into Gemini content entries. Assistant turns map to the model role.
func historyContents(history []models.ConversationMessage, userPrompt string) []*ggenai.Content {
	contents := make([]*ggenai.Content, 0, len(history)+1)
	for _, msg := range history {
		var role ggenai.Role = ggenai.RoleUser
		if msg.Role == models.RoleAssistant {
			role = ggenai.RoleModel
		}
		contents = append(contents, ggenai.NewContentFromText(msg.Content, role))
	}
	return append(contents, ggenai.NewContentFromText(userPrompt, ggenai.RoleUser))
}

// GenerateWithHistory produces a completion with prior turns included.
func (c *GeminiClient) GenerateWithHistory(ctx context.Context, systemPrompt string, history []models.ConversationMessage, userPrompt string) (string, error) {
	contents := historyContents(history, userPrompt)

	cfg := &ggenai.GenerateContentConfig{
		SystemInstruction: ggenai.NewContentFromText(systemPrompt, ggenai.RoleUser),
		Temperature:       ggenai.Ptr(c.temperature),
		MaxOutputTokens:   c.maxTokens,
	}

	slog.Debug("GeminiClient.GenerateWithHistory: sending request",
		"model", c.model, "historyLen", len(history))

	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		slog.Error("GeminiClient.GenerateWithHistory: request failed", "error", err)
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	slog.Debug("GeminiClient.GenerateWithHistory: response received", "responseLen", len(text))
	return text, nil
}
