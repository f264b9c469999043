package models

import (
	"testing"
	"time"
)

func TestStageOrdering(t *testing.T) {
	ordered := []Stage{
		StageGreeting,
		StageDiscovery,
		StageBrandAnalysis,
		StageStrategyDevelopment,
		StageContentCreation,
		StageReviewRefinement,
		StageFinalization,
	}
	for i := 1; i < len(ordered); i++ {
		if !ordered[i-1].Before(ordered[i]) {
			t.Errorf("expected %s to precede %s", ordered[i-1], ordered[i])
		}
	}
	if StageFinalization.Before(StageGreeting) {
		t.Error("finalization must not precede greeting")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Stage
		want     bool
	}{
		{StageGreeting, StageStrategyDevelopment, true},
		{StageDiscovery, StageDiscovery, true},
		{StageReviewRefinement, StageContentCreation, false},
		{StageGreeting, Stage("launch"), false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsValidStage(t *testing.T) {
	if !IsValidStage(StageContentCreation) {
		t.Error("content_creation should be valid")
	}
	if IsValidStage(Stage("launch")) {
		t.Error("unknown stage should be invalid")
	}
	if Stage("launch").Index() != -1 {
		t.Error("unknown stage index should be -1")
	}
}

func TestIsValidPlatform(t *testing.T) {
	if !IsValidPlatform(PlatformInstagram) {
		t.Error("instagram should be valid")
	}
	if IsValidPlatform(Platform("myspace")) {
		t.Error("myspace should be invalid")
	}
}

func TestInsightsCollected(t *testing.T) {
	var in Insights
	if got := in.Collected(); len(got) != 0 {
		t.Errorf("expected no insights collected, got %v", got)
	}

	in.CampaignStrategy = "strategy text"
	in.ContentPillars = []ContentPillar{{Name: "Educational Content"}}
	got := in.Collected()
	if len(got) != 2 {
		t.Fatalf("expected 2 insights, got %v", got)
	}
	if got[0] != "campaign_strategy" || got[1] != "content_pillars" {
		t.Errorf("unexpected insight keys: %v", got)
	}
	if !in.HasStrategyFoundation() {
		t.Error("expected strategy foundation to be present")
	}
}

func TestConversationStateUserTurns(t *testing.T) {
	state := &ConversationState{
		Messages: []ConversationMessage{
			{Role: RoleAssistant, Content: "hello", Timestamp: time.Now()},
			{Role: RoleUser, Content: "hi", Timestamp: time.Now()},
			{Role: RoleAssistant, Content: "tell me more", Timestamp: time.Now()},
			{Role: RoleUser, Content: "I sell bread", Timestamp: time.Now()},
		},
	}
	if got := state.UserTurns(); got != 2 {
		t.Errorf("expected 2 user turns, got %d", got)
	}
	if state.HasBasicInfo() {
		t.Error("expected no basic info on empty profile")
	}
	state.Profile.Description = "Food & Bakery"
	if !state.HasBasicInfo() {
		t.Error("expected basic info once description is set")
	}
}

func TestCampaignOutputPlatforms(t *testing.T) {
	out := &CampaignOutput{Posts: []SocialPost{
		{Platform: PlatformInstagram},
		{Platform: PlatformFacebook},
		{Platform: PlatformInstagram},
	}}
	platforms := out.Platforms()
	if len(platforms) != 2 {
		t.Fatalf("expected 2 distinct platforms, got %v", platforms)
	}
}
