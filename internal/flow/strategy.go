package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bluereef/campaignforge/internal/genai"
	"github.com/bluereef/campaignforge/internal/models"
	"github.com/bluereef/campaignforge/internal/util"
)

// defaultDurationWeeks applies when the user never mentions a timeline.
const defaultDurationWeeks = 12

// strategyAgent develops the campaign strategy: overall approach, content
// pillars, platform optimization, and the KPI framework.
type strategyAgent struct {
	llm genai.ClientInterface
}

// DevelopStrategy runs the strategy stage. It asks for clarification when
// key facts are still missing, otherwise it makes four LLM calls and stores
// the results as session insights.
func (s *strategyAgent) DevelopStrategy(ctx context.Context, state *models.ConversationState) models.AgentResponse {
	if !s.hasSufficientInfo(state) {
		slog.Debug("strategyAgent.DevelopStrategy: insufficient info", "sessionID", state.SessionID)
		return models.AgentResponse{
			Message:               "I need a bit more information to develop an effective strategy. What are your primary goals for social media marketing?",
			Questions:             s.clarificationQuestions(state),
			RequiresClarification: true,
		}
	}

	strategy := s.createStrategy(ctx, state)
	pillars := s.generateContentPillars(ctx, state)
	platformStrategy := s.optimizeForPlatforms(ctx, state, strategy)
	kpiFramework := s.createKPIFramework(ctx, state)

	state.Insights.CampaignStrategy = strategy
	state.Insights.ContentPillars = pillars
	state.Insights.PlatformStrategy = platformStrategy
	state.Insights.KPIFramework = kpiFramework

	slog.Info("strategyAgent.DevelopStrategy: strategy complete",
		"sessionID", state.SessionID, "pillars", len(pillars))

	return models.AgentResponse{
		Message:   formatStrategySummary(pillars),
		NextStage: models.StageContentCreation,
		Metadata: map[string]any{
			"strategy":          strategy,
			"content_pillars":   pillars,
			"platform_strategy": platformStrategy,
		},
	}
}

// hasSufficientInfo requires a name, an industry or description, an audience,
// and either an objective or chosen platforms.
func (s *strategyAgent) hasSufficientInfo(state *models.ConversationState) bool {
	profile := state.Profile
	goals := state.Goals
	return profile.Name != "" &&
		(profile.Industry != "" || profile.Description != "") &&
		profile.TargetAudience != "" &&
		(goals.PrimaryObjective != "" || len(goals.TargetPlatforms) > 0)
}

func (s *strategyAgent) clarificationQuestions(state *models.ConversationState) []string {
	var questions []string
	if state.Goals.PrimaryObjective == "" {
		questions = append(questions, "What's your main goal for social media - increasing brand awareness, generating leads, or driving sales?")
	}
	if len(state.Goals.TargetPlatforms) == 0 {
		questions = append(questions, "Which social media platforms are most important for reaching your target audience?")
	}
	if state.Goals.BudgetRange == "" {
		questions = append(questions, "What's your approximate monthly budget for social media marketing?")
	}
	if len(questions) > 2 {
		questions = questions[:2]
	}
	return questions
}

func (s *strategyAgent) createStrategy(ctx context.Context, state *models.ConversationState) string {
	prompt := fmt.Sprintf(campaignStrategyPrompt,
		state.Insights.BrandAnalysis,
		formatObjectives(state),
		formatTargetPlatforms(state),
		orDefault(state.Goals.BudgetRange, "Budget flexible"),
		formatTimeline(state))

	strategy, err := s.llm.Generate(ctx, strategyDevelopmentSystemPrompt, prompt)
	if err != nil {
		slog.Warn("strategyAgent.createStrategy: generation failed", "error", err)
		return "Comprehensive social media strategy developed focusing on brand awareness and audience engagement."
	}
	return strategy
}

func (s *strategyAgent) generateContentPillars(ctx context.Context, state *models.ConversationState) []models.ContentPillar {
	prompt := fmt.Sprintf(contentPillarGeneratorPrompt,
		formatBrandInfo(state),
		formatObjectives(state),
		orDefault(state.Profile.TargetAudience, "target audience"),
		orDefault(string(state.Profile.Industry), "general business"))

	reply, err := s.llm.Generate(ctx,
		"You are a content strategist developing content pillars for social media campaigns.",
		prompt)
	if err != nil {
		slog.Warn("strategyAgent.generateContentPillars: generation failed", "error", err)
		return defaultContentPillars()
	}

	pillars := parseContentPillars(reply)
	if len(pillars) == 0 {
		return defaultContentPillars()
	}
	return pillars
}

func (s *strategyAgent) optimizeForPlatforms(ctx context.Context, state *models.ConversationState, strategy string) string {
	overview := util.TruncateText(strategy, 1000, "")
	prompt := fmt.Sprintf(platformOptimizationPrompt, overview, formatTargetPlatforms(state))

	platformStrategy, err := s.llm.Generate(ctx,
		"You are a platform optimization specialist for social media marketing.",
		prompt)
	if err != nil {
		slog.Warn("strategyAgent.optimizeForPlatforms: generation failed", "error", err)
		return "Platform-specific strategies developed for optimal performance across selected channels."
	}
	return platformStrategy
}

func (s *strategyAgent) createKPIFramework(ctx context.Context, state *models.ConversationState) string {
	prompt := fmt.Sprintf(kpiFrameworkPrompt,
		formatObjectives(state),
		orDefault(state.Goals.SpecificRequirements, "General business growth"),
		formatTargetPlatforms(state),
		formatTimeline(state))

	kpiFramework, err := s.llm.Generate(ctx,
		"You are a social media analytics specialist developing KPI frameworks.",
		prompt)
	if err != nil {
		slog.Warn("strategyAgent.createKPIFramework: generation failed", "error", err)
		return "KPI framework established focusing on engagement, reach, and conversion metrics."
	}
	return kpiFramework
}

// parseContentPillars scans the reply line by line. A line mentioning
// "pillar" with a colon starts a new pillar; dashed lines under it become
// content types or examples, everything else extends the description.
func parseContentPillars(response string) []models.ContentPillar {
	var pillars []models.ContentPillar
	var current *models.ContentPillar

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lineLower := strings.ToLower(line)
		if strings.Contains(lineLower, "pillar") && strings.Contains(line, ":") {
			if current != nil {
				pillars = append(pillars, *current)
			}
			current = &models.ContentPillar{
				Name: strings.TrimSpace(strings.ReplaceAll(line, ":", "")),
			}
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			item := line[2:]
			if strings.Contains(strings.ToLower(current.Description), "example") {
				current.Examples = append(current.Examples, item)
			} else {
				current.ContentTypes = append(current.ContentTypes, item)
			}
		} else {
			current.Description = strings.TrimSpace(current.Description + " " + line)
		}
	}
	if current != nil {
		pillars = append(pillars, *current)
	}
	return pillars
}

// defaultContentPillars is the stock pillar set used when generation or
// parsing fails.
func defaultContentPillars() []models.ContentPillar {
	return []models.ContentPillar{
		{
			Name:         "Educational Content",
			Description:  "Share valuable insights and tips related to your industry",
			ContentTypes: []string{"How-to guides", "Industry insights", "Tips and tricks"},
			Examples:     []string{"Behind-the-scenes content", "Expert interviews", "Tutorial videos"},
		},
		{
			Name:         "Brand Story",
			Description:  "Showcase your company culture and values",
			ContentTypes: []string{"Company culture", "Team highlights", "Mission and values"},
			Examples:     []string{"Employee spotlights", "Company milestones", "Value-driven content"},
		},
		{
			Name:         "Customer Success",
			Description:  "Highlight customer achievements and testimonials",
			ContentTypes: []string{"Success stories", "Testimonials", "Case studies"},
			Examples:     []string{"Customer features", "Before/after showcases", "Review highlights"},
		},
		{
			Name:         "Industry Leadership",
			Description:  "Position your brand as a thought leader",
			ContentTypes: []string{"Industry trends", "Expert opinions", "Innovation updates"},
			Examples:     []string{"Trend analysis", "Industry commentary", "Innovation showcases"},
		},
	}
}

func formatStrategySummary(pillars []models.ContentPillar) string {
	names := make([]string, 0, 4)
	for _, pillar := range pillars {
		if len(names) == 4 {
			break
		}
		names = append(names, orDefault(pillar.Name, "Content Theme"))
	}

	var sb strings.Builder
	sb.WriteString("Perfect! I've developed a comprehensive social media strategy for you.\n\n")
	sb.WriteString("**Key Strategy Elements:**\n")
	sb.WriteString("• **Content Pillars:** " + strings.Join(names, ", ") + "\n")
	sb.WriteString("• **Platform Focus:** Optimized for your target platforms\n")
	sb.WriteString("• **Engagement Strategy:** Built around your brand voice and audience preferences\n")
	sb.WriteString("• **Performance Tracking:** Clear KPIs and success metrics\n\n")
	sb.WriteString("Would you like me to start creating specific social media posts based on this strategy, or would you like to refine any particular aspect first?")
	return sb.String()
}

func formatObjectives(state *models.ConversationState) string {
	goals := state.Goals
	var objectives []string
	if goals.PrimaryObjective != "" {
		objectives = append(objectives, "Primary: "+string(goals.PrimaryObjective))
	}
	if len(goals.SecondaryObjectives) > 0 {
		secondary := make([]string, len(goals.SecondaryObjectives))
		for i, obj := range goals.SecondaryObjectives {
			secondary[i] = string(obj)
		}
		objectives = append(objectives, "Secondary: "+strings.Join(secondary, ", "))
	}
	if goals.SpecificRequirements != "" {
		objectives = append(objectives, "Requirements: "+goals.SpecificRequirements)
	}
	if len(objectives) == 0 {
		return "General brand awareness and engagement"
	}
	return strings.Join(objectives, "; ")
}

func formatTargetPlatforms(state *models.ConversationState) string {
	platforms := state.Goals.TargetPlatforms
	if len(platforms) == 0 {
		return "Facebook, Instagram, LinkedIn"
	}
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func formatTimeline(state *models.ConversationState) string {
	weeks := state.Goals.DurationWeeks
	if weeks == 0 {
		weeks = defaultDurationWeeks
	}
	return fmt.Sprintf("%d weeks", weeks)
}

func formatBrandInfo(state *models.ConversationState) string {
	profile := state.Profile
	var parts []string
	if profile.Name != "" {
		parts = append(parts, "Company: "+profile.Name)
	}
	if profile.Industry != "" {
		parts = append(parts, "Industry: "+string(profile.Industry))
	}
	if profile.Description != "" {
		parts = append(parts, "Description: "+profile.Description)
	}
	if len(profile.BrandValues) > 0 {
		parts = append(parts, "Values: "+strings.Join(profile.BrandValues, ", "))
	}
	if len(profile.UniqueSellingPoints) > 0 {
		parts = append(parts, "USPs: "+strings.Join(profile.UniqueSellingPoints, ", "))
	}
	return strings.Join(parts, "\n")
}
