// Package models defines the core data structures for CampaignForge.
//
// It includes the conversation stage machine types, business profile and
// campaign goal records, and the generated campaign output shared across modules.
package models

import (
	"errors"
	"time"
)

// Stage identifies a phase of a conversation's linear progress.
type Stage string

const (
	// StageGreeting is the initial stage where the campaign idea is collected.
	StageGreeting Stage = "greeting"
	// StageDiscovery asks follow-up questions about the business.
	StageDiscovery Stage = "discovery"
	// StageBrandAnalysis is a legacy alias stage handled by the same analyzer as discovery.
	StageBrandAnalysis Stage = "brand_analysis"
	// StageStrategyDevelopment synthesizes the campaign strategy.
	StageStrategyDevelopment Stage = "strategy_development"
	// StageContentCreation generates the platform posts.
	StageContentCreation Stage = "content_creation"
	// StageReviewRefinement offers review options over the generated campaign.
	StageReviewRefinement Stage = "review_refinement"
	// StageFinalization emits the final campaign summary. Terminal.
	StageFinalization Stage = "finalization"
)

// stageOrder is the canonical forward ordering of conversation stages.
var stageOrder = map[Stage]int{
	StageGreeting:            0,
	StageDiscovery:           1,
	StageBrandAnalysis:       2,
	StageStrategyDevelopment: 3,
	StageContentCreation:     4,
	StageReviewRefinement:    5,
	StageFinalization:        6,
}

// IsValidStage checks if the given stage is part of the canonical set.
func IsValidStage(s Stage) bool {
	_, ok := stageOrder[s]
	return ok
}

// Index returns the position of the stage in the canonical ordering, or -1.
func (s Stage) Index() int {
	idx, ok := stageOrder[s]
	if !ok {
		return -1
	}
	return idx
}

// Before reports whether s precedes other in the canonical ordering.
func (s Stage) Before(other Stage) bool {
	return s.Index() < other.Index()
}

// CanTransition reports whether moving from one stage to another keeps the
// conversation moving forward. Staying put counts as forward; handlers that
// loop a session back to an earlier stage are deliberate exceptions and are
// logged by the orchestrator.
func CanTransition(from, to Stage) bool {
	if !IsValidStage(from) || !IsValidStage(to) {
		return false
	}
	return !to.Before(from)
}

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser marks a message written by the user.
	RoleUser Role = "user"
	// RoleAssistant marks a message produced by a stage handler.
	RoleAssistant Role = "assistant"
	// RoleSystem marks an injected system message.
	RoleSystem Role = "system"
)

// Industry categorizes the business being marketed.
type Industry string

const (
	IndustryRetail               Industry = "retail"
	IndustryFoodBeverage         Industry = "food_beverage"
	IndustryTechnology           Industry = "technology"
	IndustryHealthcare           Industry = "healthcare"
	IndustryFinance              Industry = "finance"
	IndustryEducation            Industry = "education"
	IndustryRealEstate           Industry = "real_estate"
	IndustryAutomotive           Industry = "automotive"
	IndustryBeautyFashion        Industry = "beauty_fashion"
	IndustryFitnessWellness      Industry = "fitness_wellness"
	IndustryEntertainment        Industry = "entertainment"
	IndustryProfessionalServices Industry = "professional_services"
	IndustryOther                Industry = "other"
)

// Objective is a campaign goal.
type Objective string

const (
	ObjectiveBrandAwareness    Objective = "brand_awareness"
	ObjectiveEngagement        Objective = "engagement"
	ObjectiveLeadGeneration    Objective = "lead_generation"
	ObjectiveSalesConversion   Objective = "sales_conversion"
	ObjectiveWebsiteTraffic    Objective = "website_traffic"
	ObjectiveAppDownloads      Objective = "app_downloads"
	ObjectiveEventPromotion    Objective = "event_promotion"
	ObjectiveCustomerRetention Objective = "customer_retention"
)

// Platform is a supported social media platform.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformPinterest Platform = "pinterest"
)

// IsValidPlatform checks if the given platform is supported.
func IsValidPlatform(p Platform) bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformLinkedIn, PlatformTwitter,
		PlatformTikTok, PlatformYouTube, PlatformPinterest:
		return true
	default:
		return false
	}
}

// Error variables for better error handling and testability
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrOutputNotReady  = errors.New("campaign not ready")
	ErrEmptyMessage    = errors.New("message cannot be empty")
)

// ConversationMessage is a single exchanged message.
type ConversationMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// BusinessProfile holds what is known about the business. All fields are
// optional and populated incrementally as extraction heuristics match user text.
type BusinessProfile struct {
	Name                string   `json:"name,omitempty"`
	Industry            Industry `json:"industry,omitempty"`
	Description         string   `json:"description,omitempty"`
	TargetAudience      string   `json:"target_audience,omitempty"`
	BrandVoice          string   `json:"brand_voice,omitempty"`
	BrandValues         []string `json:"brand_values,omitempty"`
	UniqueSellingPoints []string `json:"unique_selling_points,omitempty"`
	Competitors         []string `json:"competitors,omitempty"`
	Website             string   `json:"website,omitempty"`
}

// CampaignGoals captures what the campaign should achieve.
type CampaignGoals struct {
	PrimaryObjective     Objective   `json:"primary_objective,omitempty"`
	SecondaryObjectives  []Objective `json:"secondary_objectives,omitempty"`
	TargetPlatforms      []Platform  `json:"target_platforms,omitempty"`
	BudgetRange          string      `json:"budget_range,omitempty"`
	DurationWeeks        int         `json:"duration_weeks,omitempty"`
	SpecificRequirements string      `json:"specific_requirements,omitempty"`
}

// ContentPillar is a named recurring theme used to group generated posts.
type ContentPillar struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	ContentTypes []string `json:"content_types,omitempty"`
	Examples     []string `json:"examples,omitempty"`
}

// Insights is the session-scoped store of intermediate artifacts produced by
// one stage and consumed by a later one.
type Insights struct {
	BrandAnalysis       string            `json:"brand_analysis,omitempty"`
	CampaignStrategy    string            `json:"campaign_strategy,omitempty"`
	ContentPillars      []ContentPillar   `json:"content_pillars,omitempty"`
	PlatformStrategy    string            `json:"platform_strategy,omitempty"`
	KPIFramework        string            `json:"kpi_framework,omitempty"`
	StructuredResponse  string            `json:"structured_response,omitempty"`
	ParsedInfo          string            `json:"parsed_info,omitempty"`
	BrandAssets         map[string]string `json:"brand_assets,omitempty"`
	ConversationSummary string            `json:"conversation_summary,omitempty"`
}

// Collected lists the names of the insights that have been populated.
func (i Insights) Collected() []string {
	var keys []string
	if i.BrandAnalysis != "" {
		keys = append(keys, "brand_analysis")
	}
	if i.CampaignStrategy != "" {
		keys = append(keys, "campaign_strategy")
	}
	if len(i.ContentPillars) > 0 {
		keys = append(keys, "content_pillars")
	}
	if i.PlatformStrategy != "" {
		keys = append(keys, "platform_strategy")
	}
	if i.KPIFramework != "" {
		keys = append(keys, "kpi_framework")
	}
	if i.StructuredResponse != "" {
		keys = append(keys, "structured_response")
	}
	if i.ParsedInfo != "" {
		keys = append(keys, "parsed_info")
	}
	if len(i.BrandAssets) > 0 {
		keys = append(keys, "brand_assets")
	}
	if i.ConversationSummary != "" {
		keys = append(keys, "conversation_summary")
	}
	return keys
}

// HasStrategyFoundation reports whether the strategy stage has produced the
// artifacts that content creation depends on.
func (i Insights) HasStrategyFoundation() bool {
	return i.CampaignStrategy != "" && len(i.ContentPillars) > 0
}

// SocialPost is one generated piece of platform content. Immutable once added
// to the campaign output except for image URL backfill.
type SocialPost struct {
	Platform        Platform `json:"platform"`
	Content         string   `json:"content"`
	Hashtags        []string `json:"hashtags,omitempty"`
	ImagePrompt     string   `json:"image_prompt,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	CallToAction    string   `json:"call_to_action,omitempty"`
	PostType        string   `json:"post_type"`
	OptimalTiming   string   `json:"optimal_timing,omitempty"`
	EngagementHooks []string `json:"engagement_hooks,omitempty"`
}

// CampaignStrategy is the structured strategy record assembled when content
// creation completes.
type CampaignStrategy struct {
	ExecutiveSummary           string   `json:"executive_summary"`
	TargetAudienceAnalysis     string   `json:"target_audience_analysis"`
	ContentPillars             []string `json:"content_pillars,omitempty"`
	BrandPositioning           string   `json:"brand_positioning"`
	CompetitiveDifferentiation string   `json:"competitive_differentiation"`
	KeyMessages                []string `json:"key_messages,omitempty"`
	SuccessMetrics             []string `json:"success_metrics,omitempty"`
}

// CampaignOutput is the final campaign package.
type CampaignOutput struct {
	Strategy         CampaignStrategy `json:"strategy"`
	Posts            []SocialPost     `json:"posts"`
	VisualGuidelines string           `json:"visual_guidelines,omitempty"`
	HashtagStrategy  string           `json:"hashtag_strategy,omitempty"`
}

// Platforms returns the distinct platforms covered by the output's posts.
func (o *CampaignOutput) Platforms() []Platform {
	seen := make(map[Platform]bool)
	var platforms []Platform
	for _, post := range o.Posts {
		if !seen[post.Platform] {
			seen[post.Platform] = true
			platforms = append(platforms, post.Platform)
		}
	}
	return platforms
}

// ConversationState is the complete per-session state. Owned exclusively by
// the orchestrator and mutated only through orchestrator methods.
type ConversationState struct {
	SessionID      string                `json:"session_id"`
	CurrentStage   Stage                 `json:"current_stage"`
	Messages       []ConversationMessage `json:"messages"`
	Profile        BusinessProfile       `json:"business_profile"`
	Goals          CampaignGoals         `json:"campaign_goals"`
	Insights       Insights              `json:"extracted_insights"`
	CampaignOutput *CampaignOutput       `json:"campaign_output,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"last_updated"`
}

// HasBasicInfo reports whether the minimum business identity is known.
func (s *ConversationState) HasBasicInfo() bool {
	return s.Profile.Name != "" || s.Profile.Description != ""
}

// UserTurns counts the user messages exchanged so far.
func (s *ConversationState) UserTurns() int {
	n := 0
	for _, msg := range s.Messages {
		if msg.Role == RoleUser {
			n++
		}
	}
	return n
}

// AgentResponse is what a stage handler returns to the orchestrator.
type AgentResponse struct {
	Message               string         `json:"message"`
	Questions             []string       `json:"questions,omitempty"`
	Suggestions           []string       `json:"suggestions,omitempty"`
	NextStage             Stage          `json:"next_stage,omitempty"`
	RequiresClarification bool           `json:"requires_clarification"`
	Confidence            float64        `json:"confidence"`
	Metadata              map[string]any `json:"metadata,omitempty"`
}

// Conversation status values returned to callers.
const (
	// ConversationStatusActive indicates a normal conversational turn.
	ConversationStatusActive = "active"
	// ConversationStatusError indicates the turn could not be processed.
	ConversationStatusError = "error"
)

// ConversationResponse is the external response shape for a conversation turn.
type ConversationResponse struct {
	SessionID             string         `json:"session_id"`
	Message               string         `json:"message"`
	Stage                 Stage          `json:"stage"`
	Questions             []string       `json:"questions,omitempty"`
	Suggestions           []string       `json:"suggestions,omitempty"`
	RequiresClarification bool           `json:"requires_clarification"`
	Confidence            float64        `json:"confidence"`
	Metadata              map[string]any `json:"metadata,omitempty"`
	Status                string         `json:"status"`
}

// SessionSummary is the read-only view of a conversation's progress.
type SessionSummary struct {
	SessionID         string          `json:"session_id"`
	Stage             Stage           `json:"stage"`
	Profile           BusinessProfile `json:"company_info"`
	Goals             CampaignGoals   `json:"campaign_goals"`
	InsightsCollected []string        `json:"insights_collected"`
	MessageCount      int             `json:"message_count"`
	CreatedAt         time.Time       `json:"created_at"`
	LastUpdated       time.Time       `json:"last_updated"`
	Progress          float64         `json:"progress"`
}
