package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bluereef/campaignforge/internal/genai"
	"github.com/bluereef/campaignforge/internal/models"
)

// Discovery question categories, in priority order.
const (
	categoryBusinessBasics   = "business_basics"
	categoryTargetAudience   = "target_audience"
	categoryBrandIdentity    = "brand_identity"
	categoryCompetitive      = "competitive_landscape"
	categoryGoalsObjectives  = "goals_objectives"
	categoryGeneralDiscovery = "general"
)

// maxDiscoveryTurns bounds how many user turns the discovery phase may hold
// a session before it moves on regardless of missing information.
const maxDiscoveryTurns = 3

// brandAnalyzer runs the discovery phase: it decides whether enough is known
// about the business and either asks follow-up questions or advances the
// session to strategy development.
type brandAnalyzer struct {
	llm genai.ClientInterface
}

// AnalyzeConversation evaluates the session and returns the next reply.
func (b *brandAnalyzer) AnalyzeConversation(ctx context.Context, state *models.ConversationState) models.AgentResponse {
	discoveryTurns := state.UserTurns()
	missing := b.missingInformation(state)

	slog.Debug("brandAnalyzer.AnalyzeConversation: evaluating",
		"sessionID", state.SessionID, "userTurns", discoveryTurns, "missing", missing)

	if len(missing) > 0 && discoveryTurns < maxDiscoveryTurns && !state.HasBasicInfo() {
		questions := b.generateDiscoveryQuestions(ctx, state, missing)
		return models.AgentResponse{
			Message:               strings.Join(questions, " "),
			Questions:             questions,
			NextStage:             models.StageDiscovery,
			RequiresClarification: true,
		}
	}

	// Enough info gathered, or enough turns spent asking. Move forward.
	summaryPrompt := fmt.Sprintf(`Based on our conversation, I understand you have a business in %s.

Let me create a social media strategy for you. I'll develop a campaign that focuses on showcasing your products and connecting with your target audience.`,
		orDefault(state.Profile.Description, "your industry"))

	reply, err := b.llm.Generate(ctx,
		"You are a marketing consultant who has gathered enough information and is ready to create a strategy.",
		summaryPrompt)
	if err != nil {
		slog.Warn("brandAnalyzer.AnalyzeConversation: summary generation failed", "error", err)
		reply = "Perfect! I have enough information about your business. Let me create a social media strategy for you now."
	}
	return models.AgentResponse{
		Message:   reply,
		NextStage: models.StageStrategyDevelopment,
	}
}

// missingInformation lists the discovery categories still unanswered.
func (b *brandAnalyzer) missingInformation(state *models.ConversationState) []string {
	var missing []string
	profile := state.Profile

	if profile.Name == "" || profile.Industry == "" {
		missing = append(missing, categoryBusinessBasics)
	}
	if profile.TargetAudience == "" {
		missing = append(missing, categoryTargetAudience)
	}
	if profile.BrandVoice == "" && len(profile.BrandValues) == 0 {
		missing = append(missing, categoryBrandIdentity)
	}
	if len(profile.Competitors) == 0 {
		missing = append(missing, categoryCompetitive)
	}
	if state.Goals.PrimaryObjective == "" {
		missing = append(missing, categoryGoalsObjectives)
	}
	return missing
}

// generateDiscoveryQuestions asks the LLM for natural follow-up questions,
// falling back to canned questions per category when the call fails.
func (b *brandAnalyzer) generateDiscoveryQuestions(ctx context.Context, state *models.ConversationState, missing []string) []string {
	lastUserMessage := ""
	for i := len(state.Messages) - 1; i >= 0; i-- {
		if state.Messages[i].Role == models.RoleUser {
			lastUserMessage = state.Messages[i].Content
			break
		}
	}

	reply, err := b.llm.Generate(ctx,
		"You are a friendly marketing consultant. Have a natural conversation and ask helpful questions.",
		fmt.Sprintf(discoveryQuestionPrompt, lastUserMessage))
	if err != nil {
		slog.Warn("brandAnalyzer.generateDiscoveryQuestions: generation failed", "error", err)
		category := categoryGeneralDiscovery
		if len(missing) > 0 {
			category = missing[0]
		}
		return fallbackQuestions(category)
	}

	questions := extractQuestions(reply)
	if len(questions) == 0 {
		return []string{strings.TrimSpace(reply)}
	}
	if len(questions) > 2 {
		questions = questions[:2]
	}
	return questions
}

// extractQuestions pulls question sentences out of an LLM reply.
func extractQuestions(response string) []string {
	var questions []string
	for _, sentence := range strings.Split(response, ".") {
		sentence = strings.TrimSpace(sentence)
		if idx := strings.Index(sentence, "?"); idx >= 0 {
			questions = append(questions, strings.TrimSpace(sentence[:idx+1]))
		}
	}
	return questions
}

func fallbackQuestions(category string) []string {
	switch category {
	case categoryBusinessBasics:
		return []string{"That sounds interesting! What makes your bread special compared to others?"}
	case categoryTargetAudience:
		return []string{"Who do you typically sell to - local families, restaurants, or other customers?"}
	case categoryBrandIdentity:
		return []string{"What's most important to you about how customers see your business?"}
	case categoryCompetitive:
		return []string{"Are there other bread sellers in your area you compete with?"}
	case categoryGoalsObjectives:
		return []string{"What would you like to achieve with social media for your business?"}
	default:
		return []string{"That's great! Tell me more about what kind of bread you make."}
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
