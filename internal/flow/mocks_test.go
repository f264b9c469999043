package flow

import (
	"context"
	"sync"

	"github.com/bluereef/campaignforge/internal/models"
)

// mockLLM is a scriptable ClientInterface for tests. When replyFn is nil,
// every call returns reply/err.
type mockLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	replyFn func(systemPrompt, userPrompt string) (string, error)
	calls   []mockLLMCall
}

type mockLLMCall struct {
	systemPrompt string
	userPrompt   string
	historyLen   int
}

func (m *mockLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.GenerateWithHistory(ctx, systemPrompt, nil, userPrompt)
}

func (m *mockLLM) GenerateWithHistory(ctx context.Context, systemPrompt string, history []models.ConversationMessage, userPrompt string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, mockLLMCall{systemPrompt: systemPrompt, userPrompt: userPrompt, historyLen: len(history)})
	fn := m.replyFn
	reply, err := m.reply, m.err
	m.mu.Unlock()

	if fn != nil {
		return fn(systemPrompt, userPrompt)
	}
	return reply, err
}

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockImageGen is a scriptable GeneratorInterface for tests.
type mockImageGen struct {
	mu    sync.Mutex
	url   string
	err   error
	calls int
}

func (m *mockImageGen) GenerateImage(ctx context.Context, prompt, style, platform string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.url, m.err
}

func (m *mockImageGen) GenerateCarouselImages(ctx context.Context, prompts []string, style, platform string) []string {
	results := make([]string, len(prompts))
	for i := range prompts {
		url, err := m.GenerateImage(ctx, prompts[i], style, platform)
		if err == nil {
			results[i] = url
		}
	}
	return results
}
