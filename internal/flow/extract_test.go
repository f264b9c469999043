package flow

import (
	"context"
	"testing"

	"github.com/bluereef/campaignforge/internal/models"
)

func TestIsComprehensiveInfo(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    bool
	}{
		{"numbered list", "1. We sell bread\n2. To families", true},
		{"short casual", "i sell bread", false},
		{"long but plain", "this is a fairly long message about a shop that goes on and on without much detail or punctuation at all just words words words words words words words", false},
		{"long and dense", "We are a bakery in Lisbon, founded in 1999, selling sourdough, rye, and baguettes. Our customers love us. We deliver daily. We also cater events.", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsComprehensiveInfo(tc.message); got != tc.want {
				t.Errorf("IsComprehensiveInfo(%q) = %v, want %v", tc.message, got, tc.want)
			}
		})
	}
}

func TestExtractKeywordMatching(t *testing.T) {
	e := &extractor{llm: &mockLLM{reply: "summary"}}
	state := &models.ConversationState{}

	e.Extract(context.Background(), state, "i sell bread from my Crumb company to families")

	if state.Profile.Name != "Crumb" {
		t.Errorf("name extraction failed: %q", state.Profile.Name)
	}
	if state.Profile.Description != "Food & Bakery" {
		t.Errorf("business type extraction failed: %q", state.Profile.Description)
	}
	if state.Profile.TargetAudience != "Families" {
		t.Errorf("audience extraction failed: %q", state.Profile.TargetAudience)
	}
}

func TestExtractRestaurantScenario(t *testing.T) {
	e := &extractor{llm: &mockLLM{reply: "summary"}}
	state := &models.ConversationState{}

	e.Extract(context.Background(), state, "I run a Malaysian restaurant called Nasi Lemak Express")

	if state.Profile.Description != "Food & Restaurant" {
		t.Errorf("restaurant category not extracted: %q", state.Profile.Description)
	}
	// Name extraction is best effort; "a" precedes "run" so no name is found.
	if state.Profile.Name != "" {
		t.Errorf("no name pattern should match here, got %q", state.Profile.Name)
	}
}

func TestExtractNeverOverwrites(t *testing.T) {
	e := &extractor{llm: &mockLLM{reply: "summary"}}
	state := &models.ConversationState{
		Profile: models.BusinessProfile{
			Name:           "Crumb",
			Description:    "Food & Bakery",
			TargetAudience: "Families",
		},
	}

	e.Extract(context.Background(), state, "we also do tech consulting for professionals")

	if state.Profile.Description != "Food & Bakery" {
		t.Errorf("description was overwritten: %q", state.Profile.Description)
	}
	if state.Profile.TargetAudience != "Families" {
		t.Errorf("audience was overwritten: %q", state.Profile.TargetAudience)
	}
}

func TestExtractFirstMatchWins(t *testing.T) {
	e := &extractor{llm: &mockLLM{}}
	state := &models.ConversationState{}

	// "bread" appears before "food" in the rule order.
	e.Extract(context.Background(), state, "our food truck sells bread")
	if state.Profile.Description != "Food & Bakery" {
		t.Errorf("expected first rule to win, got %q", state.Profile.Description)
	}
}

func TestExtractStructuredLiterals(t *testing.T) {
	e := &extractor{llm: &mockLLM{reply: "Found: protein smoothie brand"}}
	state := &models.ConversationState{}

	briefing := "1. ProteinRX sells protein smoothie drinks in accessible canned format, available everywhere.\n" +
		"2. Target: gym goers age 20-45.\n" +
		"3. Brand voice: luxury and strong.\n" +
		"4. Colors red and black, font Lato, dumbbell logo.\n" +
		"5. Competitors: traditional protein powder brands.\n" +
		"6. Goal: brand awareness on instagram, $30 per day budget."

	e.Extract(context.Background(), state, briefing)

	if state.Profile.Name != "ProteinRX" {
		t.Errorf("name: %q", state.Profile.Name)
	}
	if state.Profile.Description != "Health & Fitness - Protein Smoothie Drinks" {
		t.Errorf("description: %q", state.Profile.Description)
	}
	if state.Profile.TargetAudience != "Gym-goers and fitness enthusiasts (20-45 years old)" {
		t.Errorf("audience: %q", state.Profile.TargetAudience)
	}
	if state.Profile.BrandVoice != "Luxury and strong" {
		t.Errorf("brand voice: %q", state.Profile.BrandVoice)
	}
	if len(state.Profile.UniqueSellingPoints) != 2 {
		t.Errorf("selling points: %v", state.Profile.UniqueSellingPoints)
	}
	if state.Goals.PrimaryObjective != models.ObjectiveBrandAwareness {
		t.Errorf("objective: %q", state.Goals.PrimaryObjective)
	}
	if len(state.Goals.TargetPlatforms) != 1 || state.Goals.TargetPlatforms[0] != models.PlatformInstagram {
		t.Errorf("platforms: %v", state.Goals.TargetPlatforms)
	}
	if state.Goals.BudgetRange != "$30/day" {
		t.Errorf("budget: %q", state.Goals.BudgetRange)
	}
	if state.Insights.BrandAssets["colors"] != "Red and black" || state.Insights.BrandAssets["font"] != "Lato" {
		t.Errorf("brand assets: %v", state.Insights.BrandAssets)
	}
	if state.Insights.StructuredResponse != briefing {
		t.Error("raw briefing should be kept as an insight")
	}
	if state.Insights.ParsedInfo != "Found: protein smoothie brand" {
		t.Errorf("parsed info: %q", state.Insights.ParsedInfo)
	}
}

func TestExtractStructuredSurvivesLLMFailure(t *testing.T) {
	e := &extractor{llm: &mockLLM{err: context.DeadlineExceeded}}
	state := &models.ConversationState{}

	e.Extract(context.Background(), state, "1. We sell antique chairs to collectors\n2. Instagram focus")

	if state.Profile.Description != "Antiques & Collectibles" {
		t.Errorf("keyword extraction must run despite LLM failure: %q", state.Profile.Description)
	}
	if state.Insights.ParsedInfo != "" {
		t.Error("parsed info should be empty when the LLM call fails")
	}
}

func TestBudgetPatternVariants(t *testing.T) {
	for _, msg := range []string{"budget is $25 per day", "we spend 25/day", "25 daily"} {
		e := &extractor{llm: &mockLLM{}}
		state := &models.ConversationState{}
		e.Extract(context.Background(), state, "1. details details\n2. "+msg)
		if state.Goals.BudgetRange != "$25/day" {
			t.Errorf("budget from %q = %q", msg, state.Goals.BudgetRange)
		}
	}
}
