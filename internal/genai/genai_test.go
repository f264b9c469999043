package genai

import (
	"context"
	"testing"
	"time"

	ggenai "google.golang.org/genai"

	"github.com/bluereef/campaignforge/internal/models"
)

func TestBuildOptsDefaults(t *testing.T) {
	cfg := buildOpts(nil)
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider openai, got %s", cfg.Provider)
	}
	if cfg.Temperature != DefaultTemperature {
		t.Errorf("expected default temperature, got %f", cfg.Temperature)
	}
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("expected default max tokens, got %d", cfg.MaxTokens)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %s", cfg.Timeout)
	}
}

func TestBuildOptsOverrides(t *testing.T) {
	cfg := buildOpts([]Option{
		WithAPIKey("k"),
		WithProvider(ProviderAnthropic),
		WithModel("claude-test"),
		WithTemperature(0.2),
		WithMaxTokens(100),
		WithTimeout(5 * time.Second),
	})
	if cfg.APIKey != "k" || cfg.Provider != ProviderAnthropic || cfg.Model != "claude-test" {
		t.Errorf("options not applied: %+v", cfg)
	}
	if cfg.Temperature != 0.2 || cfg.MaxTokens != 100 || cfg.Timeout != 5*time.Second {
		t.Errorf("options not applied: %+v", cfg)
	}
}

func TestHistoryContentsRoles(t *testing.T) {
	history := []models.ConversationMessage{
		{Role: models.RoleUser, Content: "i sell bread"},
		{Role: models.RoleAssistant, Content: "tell me more"},
	}
	contents := historyContents(history, "to families")
	if len(contents) != 3 {
		t.Fatalf("expected 3 content entries, got %d", len(contents))
	}
	wantRoles := []ggenai.Role{ggenai.RoleUser, ggenai.RoleModel, ggenai.RoleUser}
	for i, want := range wantRoles {
		if got := ggenai.Role(contents[i].Role); got != want {
			t.Errorf("content %d role = %q, want %q", i, got, want)
		}
	}
	if contents[2].Parts[0].Text != "to families" {
		t.Errorf("final user message: %q", contents[2].Parts[0].Text)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), WithProvider(ProviderOpenAI))
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), WithAPIKey("k"), WithProvider(Provider("mystery")))
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewClientDefaultModels(t *testing.T) {
	cli, err := NewClient(context.Background(), WithAPIKey("k"), WithProvider(ProviderOpenAI))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	oc, ok := cli.(*OpenAIClient)
	if !ok {
		t.Fatalf("expected *OpenAIClient, got %T", cli)
	}
	if oc.model != DefaultOpenAIModel {
		t.Errorf("expected default model %s, got %s", DefaultOpenAIModel, oc.model)
	}

	cli, err = NewClient(context.Background(), WithAPIKey("k"), WithProvider(ProviderAnthropic))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	oc = cli.(*OpenAIClient)
	if oc.model != DefaultAnthropicModel {
		t.Errorf("expected default model %s, got %s", DefaultAnthropicModel, oc.model)
	}
}
