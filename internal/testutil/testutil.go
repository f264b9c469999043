// Package testutil provides shared test doubles for CampaignForge tests.
package testutil

import (
	"context"

	"github.com/bluereef/campaignforge/internal/flow"
	"github.com/bluereef/campaignforge/internal/models"
	"github.com/bluereef/campaignforge/internal/store"
)

// StubLLM returns a fixed reply (or error) for every generation call.
type StubLLM struct {
	Reply string
	Err   error
}

func (s *StubLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.Reply, s.Err
}

func (s *StubLLM) GenerateWithHistory(ctx context.Context, systemPrompt string, history []models.ConversationMessage, userPrompt string) (string, error) {
	return s.Reply, s.Err
}

// StubImages returns a fixed data URL for every render.
type StubImages struct {
	URL string
	Err error
}

func (s *StubImages) GenerateImage(ctx context.Context, prompt, style, platform string) (string, error) {
	return s.URL, s.Err
}

func (s *StubImages) GenerateCarouselImages(ctx context.Context, prompts []string, style, platform string) []string {
	urls := make([]string, len(prompts))
	if s.Err == nil {
		for i := range urls {
			urls[i] = s.URL
		}
	}
	return urls
}

// NewTestOrchestrator builds an orchestrator over an in-memory store with
// stubbed LLM and image providers.
func NewTestOrchestrator() *flow.Orchestrator {
	return flow.NewOrchestrator(
		&StubLLM{Reply: "ok"},
		&StubImages{URL: "data:image/png;base64,stub"},
		store.NewInMemoryStore())
}
