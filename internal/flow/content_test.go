package flow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bluereef/campaignforge/internal/models"
)

func foundationState() *models.ConversationState {
	state := fullProfileState()
	state.Insights.CampaignStrategy = "Focus on warmth and craft."
	state.Insights.ContentPillars = []models.ContentPillar{
		{Name: "Fresh Daily", Description: "Morning bakes"},
		{Name: "Community Tables", Description: "Customer stories"},
	}
	return state
}

func TestCreateCampaignContentFanOut(t *testing.T) {
	llm := &mockLLM{reply: "A warm loaf for a cold morning.\nHashtags: #bread #fresh\nVisual: golden crust close-up\nTiming: 8am"}
	creator := &contentCreator{llm: llm}
	state := foundationState()

	resp := creator.CreateCampaignContent(context.Background(), state)
	if resp.NextStage != models.StageReviewRefinement {
		t.Fatalf("expected advance to review_refinement, got %s", resp.NextStage)
	}
	if state.CampaignOutput == nil {
		t.Fatal("campaign output missing")
	}
	// 2 platforms x 2 pillars.
	if len(state.CampaignOutput.Posts) != 4 {
		t.Errorf("expected 4 posts, got %d", len(state.CampaignOutput.Posts))
	}
	for _, post := range state.CampaignOutput.Posts {
		if post.Content == "" {
			t.Error("post content empty")
		}
		if len(post.Hashtags) == 0 {
			t.Errorf("hashtags missing on %s post", post.Platform)
		}
	}
	if state.CampaignOutput.HashtagStrategy == "" {
		t.Error("hashtag strategy missing")
	}
	if len(state.CampaignOutput.Strategy.ContentPillars) != 2 {
		t.Errorf("strategy object pillars: %v", state.CampaignOutput.Strategy.ContentPillars)
	}
}

func TestCreateCampaignContentPillarCap(t *testing.T) {
	llm := &mockLLM{reply: "content"}
	creator := &contentCreator{llm: llm}
	state := foundationState()
	state.Goals.TargetPlatforms = []models.Platform{models.PlatformInstagram}
	state.Insights.ContentPillars = make([]models.ContentPillar, 6)
	for i := range state.Insights.ContentPillars {
		state.Insights.ContentPillars[i] = models.ContentPillar{Name: "P"}
	}

	creator.CreateCampaignContent(context.Background(), state)
	if got := len(state.CampaignOutput.Posts); got != maxPillarsPerCampaign {
		t.Errorf("expected %d posts with pillar cap, got %d", maxPillarsPerCampaign, got)
	}
}

func TestCreateCampaignContentDefaultPlatforms(t *testing.T) {
	creator := &contentCreator{llm: &mockLLM{reply: "content"}}
	state := foundationState()
	state.Goals.TargetPlatforms = nil

	creator.CreateCampaignContent(context.Background(), state)
	platforms := state.CampaignOutput.Platforms()
	if len(platforms) != 2 {
		t.Fatalf("expected default facebook+instagram, got %v", platforms)
	}
}

func TestCreateCampaignContentAllFailuresFallBack(t *testing.T) {
	creator := &contentCreator{llm: &mockLLM{err: errors.New("down")}}
	state := foundationState()

	resp := creator.CreateCampaignContent(context.Background(), state)
	if resp.NextStage != models.StageReviewRefinement {
		t.Errorf("failures must not block the stage, got %s", resp.NextStage)
	}
	for _, post := range state.CampaignOutput.Posts {
		if !strings.Contains(post.Content, "Exciting updates coming soon!") {
			t.Errorf("expected fallback post, got %q", post.Content)
		}
		if post.CallToAction != "Follow for more updates!" {
			t.Errorf("fallback CTA: %q", post.CallToAction)
		}
	}
}

func TestParsePostContentSections(t *testing.T) {
	content := `Start your day the warm way.
Fresh from our ovens every morning.
Hashtags: #bread #morning #fresh
Call to action:
Visit us before 9am for the first batch.
Visual description:
A golden sourdough on a wooden board, steam rising.
Timing:
Post at 7:30am on weekdays.`

	parsed := parsePostContent(content)
	if !strings.Contains(parsed.content, "Start your day") {
		t.Errorf("content: %q", parsed.content)
	}
	if len(parsed.hashtags) != 3 || parsed.hashtags[0] != "bread" {
		t.Errorf("hashtags: %v", parsed.hashtags)
	}
	if !strings.Contains(parsed.cta, "before 9am") {
		t.Errorf("cta: %q", parsed.cta)
	}
	if !strings.Contains(parsed.imagePrompt, "golden sourdough") {
		t.Errorf("image prompt: %q", parsed.imagePrompt)
	}
	if !strings.Contains(parsed.timing, "7:30am") {
		t.Errorf("timing: %q", parsed.timing)
	}
}

func TestParsePostContentInlineSections(t *testing.T) {
	parsed := parsePostContent("A warm loaf for a cold morning.\nHashtags: #bread #fresh\nVisual: golden crust close-up\nTiming: 8am")
	if parsed.content != "A warm loaf for a cold morning." {
		t.Errorf("content: %q", parsed.content)
	}
	if len(parsed.hashtags) != 2 || parsed.hashtags[0] != "bread" || parsed.hashtags[1] != "fresh" {
		t.Errorf("same-line hashtags lost: %v", parsed.hashtags)
	}
	if parsed.imagePrompt != "golden crust close-up" {
		t.Errorf("same-line image prompt lost: %q", parsed.imagePrompt)
	}
	if parsed.timing != "8am" {
		t.Errorf("same-line timing lost: %q", parsed.timing)
	}
}

func TestParsePostContentHashtagHeaderWithoutColon(t *testing.T) {
	parsed := parsePostContent("Caption line.\nSuggested hashtags below\n#bread #fresh")
	// The header line itself never becomes caption text.
	if parsed.content != "Caption line." {
		t.Errorf("content: %q", parsed.content)
	}
	if len(parsed.hashtags) != 2 {
		t.Errorf("hashtags: %v", parsed.hashtags)
	}
}

func TestParsePostContentFallsBackToRaw(t *testing.T) {
	raw := "Visual: only a visual line here"
	parsed := parsePostContent(raw)
	// Header-only replies keep the whole text as the caption.
	if parsed.content != raw {
		t.Errorf("expected raw fallback, got %q", parsed.content)
	}
}

func TestCreateSinglePostTruncatesForPlatform(t *testing.T) {
	long := strings.Repeat("tweet tweet ", 40)
	creator := &contentCreator{llm: &mockLLM{reply: long}}
	state := foundationState()

	post := creator.createSinglePost(context.Background(), state, models.PlatformTwitter, state.Insights.ContentPillars[0])
	if len(post.Content) > 280 {
		t.Errorf("twitter post exceeds limit: %d chars", len(post.Content))
	}
}

func TestCreateStrategyObjectTruncatesSummaryOnRuneBoundary(t *testing.T) {
	creator := &contentCreator{llm: &mockLLM{}}
	state := foundationState()
	state.Insights.CampaignStrategy = strings.Repeat("héllo wörld ", 100)

	strategy := creator.createStrategyObject(state)
	if !utf8.ValidString(strategy.ExecutiveSummary) {
		t.Errorf("summary truncation split a rune: %q", strategy.ExecutiveSummary)
	}
	if utf8.RuneCountInString(strategy.ExecutiveSummary) > 500 {
		t.Errorf("summary too long: %d runes", utf8.RuneCountInString(strategy.ExecutiveSummary))
	}
}

func TestExtractBrandStyle(t *testing.T) {
	state := &models.ConversationState{
		Profile: models.BusinessProfile{
			BrandVoice: "Luxury and strong",
			Industry:   models.IndustryTechnology,
		},
	}
	got := extractBrandStyle(state)
	if !strings.Contains(got, "Luxury and strong") || !strings.Contains(got, "modern, clean, innovative") {
		t.Errorf("brand style: %q", got)
	}
	if extractBrandStyle(&models.ConversationState{}) != "professional, brand-consistent" {
		t.Error("empty profile should use the default style")
	}
}
