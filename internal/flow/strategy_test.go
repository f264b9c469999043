package flow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bluereef/campaignforge/internal/models"
)

func fullProfileState() *models.ConversationState {
	return &models.ConversationState{
		SessionID: "s",
		Profile: models.BusinessProfile{
			Name:           "Crumb & Co",
			Description:    "Food & Bakery",
			TargetAudience: "Families",
		},
		Goals: models.CampaignGoals{
			PrimaryObjective: models.ObjectiveBrandAwareness,
			TargetPlatforms:  []models.Platform{models.PlatformInstagram, models.PlatformFacebook},
		},
	}
}

func TestDevelopStrategyStoresInsights(t *testing.T) {
	llm := &mockLLM{replyFn: func(system, user string) (string, error) {
		if strings.Contains(user, "content pillars") || strings.Contains(system, "content strategist") {
			return "Pillar 1: Fresh Daily\nBaked every morning\n- Photos\n- Videos", nil
		}
		return "generated text", nil
	}}
	agent := &strategyAgent{llm: llm}
	state := fullProfileState()

	resp := agent.DevelopStrategy(context.Background(), state)
	if resp.RequiresClarification {
		t.Fatal("full profile should not need clarification")
	}
	if resp.NextStage != models.StageContentCreation {
		t.Errorf("expected advance to content_creation, got %s", resp.NextStage)
	}
	if state.Insights.CampaignStrategy == "" || state.Insights.PlatformStrategy == "" || state.Insights.KPIFramework == "" {
		t.Errorf("insights not stored: %+v", state.Insights)
	}
	if len(state.Insights.ContentPillars) == 0 {
		t.Error("content pillars not stored")
	}
	if !strings.Contains(resp.Message, "Content Pillars") {
		t.Errorf("summary should list pillars: %q", resp.Message)
	}
}

func TestDevelopStrategyInsufficientInfo(t *testing.T) {
	agent := &strategyAgent{llm: &mockLLM{}}
	state := &models.ConversationState{
		Profile: models.BusinessProfile{Name: "Crumb & Co"},
	}

	resp := agent.DevelopStrategy(context.Background(), state)
	if !resp.RequiresClarification {
		t.Error("missing audience should require clarification")
	}
	if resp.NextStage != "" {
		t.Errorf("stage must not advance, got %s", resp.NextStage)
	}
	if len(resp.Questions) == 0 || len(resp.Questions) > 2 {
		t.Errorf("expected 1-2 clarification questions, got %v", resp.Questions)
	}
}

func TestDevelopStrategyFallsBackToDefaultPillars(t *testing.T) {
	agent := &strategyAgent{llm: &mockLLM{err: errors.New("unavailable")}}
	state := fullProfileState()

	resp := agent.DevelopStrategy(context.Background(), state)
	if resp.NextStage != models.StageContentCreation {
		t.Errorf("failures should not block the stage, got %s", resp.NextStage)
	}
	if len(state.Insights.ContentPillars) != 4 {
		t.Fatalf("expected 4 default pillars, got %d", len(state.Insights.ContentPillars))
	}
	if state.Insights.ContentPillars[0].Name != "Educational Content" {
		t.Errorf("unexpected default pillars: %+v", state.Insights.ContentPillars)
	}
}

func TestParseContentPillars(t *testing.T) {
	response := `Here are your pillars:

Pillar 1: Behind the Oven:
Showing how the bread gets made
- Time-lapse videos
- Baker interviews

Pillar 2: Community Tables:
Stories from our customers
- Customer features`

	pillars := parseContentPillars(response)
	if len(pillars) != 2 {
		t.Fatalf("expected 2 pillars, got %d: %+v", len(pillars), pillars)
	}
	if !strings.Contains(pillars[0].Name, "Behind the Oven") {
		t.Errorf("pillar name: %q", pillars[0].Name)
	}
	if !strings.Contains(pillars[0].Description, "bread gets made") {
		t.Errorf("pillar description: %q", pillars[0].Description)
	}
	if len(pillars[0].ContentTypes) != 2 {
		t.Errorf("content types: %v", pillars[0].ContentTypes)
	}
}

func TestParseContentPillarsNoHeaders(t *testing.T) {
	if got := parseContentPillars("Just a plain paragraph with no structure."); len(got) != 0 {
		t.Errorf("expected no pillars from unstructured text, got %+v", got)
	}
}

func TestFormatObjectivesAndPlatforms(t *testing.T) {
	state := fullProfileState()
	obj := formatObjectives(state)
	if !strings.Contains(obj, "Primary: brand_awareness") {
		t.Errorf("objectives: %q", obj)
	}
	platforms := formatTargetPlatforms(state)
	if platforms != "instagram, facebook" {
		t.Errorf("platforms: %q", platforms)
	}

	empty := &models.ConversationState{}
	if formatObjectives(empty) != "General brand awareness and engagement" {
		t.Errorf("empty objectives: %q", formatObjectives(empty))
	}
	if formatTargetPlatforms(empty) != "Facebook, Instagram, LinkedIn" {
		t.Errorf("empty platforms: %q", formatTargetPlatforms(empty))
	}
}
