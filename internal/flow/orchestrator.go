// Package flow implements the conversational campaign generation pipeline.
//
// An Orchestrator drives each session through a fixed stage sequence
// (greeting, discovery, brand analysis, strategy development, content
// creation, review, finalization) and delegates stage work to specialized
// agents. Sessions live in a store.Store so any backend can hold them.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bluereef/campaignforge/internal/genai"
	"github.com/bluereef/campaignforge/internal/images"
	"github.com/bluereef/campaignforge/internal/models"
	"github.com/bluereef/campaignforge/internal/store"
)

// History bounds: once a session exceeds maxHistoryMessages, the oldest
// messages are dropped down to trimmedHistoryMessages.
const (
	maxHistoryMessages     = 50
	trimmedHistoryMessages = 40
)

// greetingMessage opens every session. The demo persona is pre-seeded with
// the ProteinRX profile so the consultant can speak concretely from turn one.
const greetingMessage = "Hi! I'm your dedicated marketing consultant for ProteinRX. I know all about your luxury protein smoothie brand - the convenient canned drinks targeting gym-goers (20-45), your red & black branding with the dumbbell logo, and focus on Instagram for brand awareness. Do you have any specific campaign ideas or themes you'd like to implement for ProteinRX?"

// errorReplyMessage is the fail-open reply when a turn cannot be processed.
const errorReplyMessage = "I apologize, but I encountered an issue. Could you please rephrase your message?"

// Orchestrator coordinates the conversation agents and session persistence.
type Orchestrator struct {
	llm       genai.ClientInterface
	store     store.Store
	extractor *extractor
	brand     *brandAnalyzer
	strategy  *strategyAgent
	content   *contentCreator
	visual    *visualAgent

	historyWindow int
}

// Opts holds orchestrator configuration.
type Opts struct {
	// HistoryWindow caps how many prior messages are sent to the LLM per call.
	HistoryWindow int
}

// Option configures the orchestrator.
type Option func(*Opts)

// WithHistoryWindow sets the LLM context window in messages.
func WithHistoryWindow(n int) Option {
	return func(o *Opts) { o.HistoryWindow = n }
}

// DefaultHistoryWindow is the number of prior messages included in LLM calls.
const DefaultHistoryWindow = 10

// NewOrchestrator creates the conversation orchestrator.
func NewOrchestrator(llm genai.ClientInterface, imageGen images.GeneratorInterface, st store.Store, opts ...Option) *Orchestrator {
	cfg := Opts{HistoryWindow: DefaultHistoryWindow}
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("flow.NewOrchestrator: creating orchestrator", "historyWindow", cfg.HistoryWindow)
	return &Orchestrator{
		llm:           llm,
		store:         st,
		extractor:     &extractor{llm: llm},
		brand:         &brandAnalyzer{llm: llm},
		strategy:      &strategyAgent{llm: llm},
		content:       &contentCreator{llm: llm},
		visual:        &visualAgent{images: imageGen, llm: llm},
		historyWindow: cfg.HistoryWindow,
	}
}

// StartSession creates a new session pre-seeded with the demo brand profile
// and returns the opening greeting.
func (o *Orchestrator) StartSession(ctx context.Context) (*models.ConversationResponse, error) {
	sessionID := uuid.NewString()
	now := time.Now().UTC()

	state := &models.ConversationState{
		SessionID:    sessionID,
		CurrentStage: models.StageGreeting,
		Profile: models.BusinessProfile{
			Name:                "ProteinRX",
			Industry:            models.IndustryFitnessWellness,
			Description:         "Health & Fitness - Protein Smoothie Drinks",
			TargetAudience:      "Gym-goers and fitness enthusiasts (20-45 years old)",
			BrandVoice:          "Luxury and strong",
			UniqueSellingPoints: []string{"Convenient canned format for accessibility", "Available everywhere"},
			Competitors:         []string{"Traditional protein powder brands"},
		},
		Goals: models.CampaignGoals{
			PrimaryObjective: models.ObjectiveBrandAwareness,
			TargetPlatforms:  []models.Platform{models.PlatformInstagram},
		},
		Insights: models.Insights{
			BrandAssets: map[string]string{
				"colors": "Red and black",
				"font":   "Lato",
				"logo":   "Dumbbell symbol",
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	o.addMessage(state, models.RoleAssistant, greetingMessage)

	if err := o.store.SaveSession(state); err != nil {
		return nil, fmt.Errorf("failed to save new session: %w", err)
	}
	slog.Info("Orchestrator.StartSession: session started", "sessionID", sessionID)

	return &models.ConversationResponse{
		SessionID: sessionID,
		Message:   greetingMessage,
		Stage:     models.StageGreeting,
		Status:    models.ConversationStatusActive,
	}, nil
}

// ContinueSession processes one user turn. It never returns a Go error for
// conversational failures; problems surface as a response with error status
// so the conversation can always continue.
func (o *Orchestrator) ContinueSession(ctx context.Context, sessionID, userMessage string) *models.ConversationResponse {
	state, err := o.store.GetSession(sessionID)
	if err != nil {
		slog.Error("Orchestrator.ContinueSession: session load failed", "error", err, "sessionID", sessionID)
		return errorResponse(sessionID, "error")
	}
	if state == nil {
		slog.Debug("Orchestrator.ContinueSession: unknown session", "sessionID", sessionID)
		return &models.ConversationResponse{
			SessionID: sessionID,
			Message:   "Session not found",
			Status:    models.ConversationStatusError,
		}
	}

	o.addMessage(state, models.RoleUser, userMessage)
	o.extractor.Extract(ctx, state, userMessage)

	var response models.AgentResponse
	if IsComprehensiveInfo(userMessage) {
		// A structured briefing short-circuits discovery entirely.
		state.CurrentStage = models.StageStrategyDevelopment
		response = o.acknowledgeBriefing(ctx, state, userMessage)
	} else {
		response = o.processStage(ctx, state)
	}

	o.addMessage(state, models.RoleAssistant, response.Message)
	if response.NextStage != "" {
		if !models.CanTransition(state.CurrentStage, response.NextStage) {
			slog.Debug("Orchestrator.ContinueSession: stage rollback",
				"sessionID", sessionID, "from", state.CurrentStage, "to", response.NextStage)
		}
		state.CurrentStage = response.NextStage
	}
	state.UpdatedAt = time.Now().UTC()

	if err := o.store.SaveSession(state); err != nil {
		slog.Error("Orchestrator.ContinueSession: session save failed", "error", err, "sessionID", sessionID)
	}

	return &models.ConversationResponse{
		SessionID:             sessionID,
		Message:               response.Message,
		Stage:                 state.CurrentStage,
		Questions:             response.Questions,
		Suggestions:           response.Suggestions,
		RequiresClarification: response.RequiresClarification,
		Confidence:            response.Confidence,
		Metadata:              response.Metadata,
		Status:                models.ConversationStatusActive,
	}
}

// acknowledgeBriefing thanks the user for a detailed briefing and announces
// the jump to strategy development.
func (o *Orchestrator) acknowledgeBriefing(ctx context.Context, state *models.ConversationState, userMessage string) models.AgentResponse {
	reply, err := o.llm.GenerateWithHistory(ctx,
		"You are a marketing consultant who just received comprehensive business information. Acknowledge what you learned and say you'll create their strategy now.",
		o.recentHistory(state),
		fmt.Sprintf("The user provided detailed information: %s\n\nAcknowledge their details and transition to creating their social media strategy.", userMessage))
	if err != nil {
		slog.Warn("Orchestrator.acknowledgeBriefing: generation failed", "error", err)
		reply = "Perfect! I have all the information I need about your business. Let me create a comprehensive social media strategy for you now."
	}
	return models.AgentResponse{
		Message:   reply,
		NextStage: models.StageStrategyDevelopment,
	}
}

// processStage dispatches the turn to the agent owning the current stage.
// Agent panics or failures degrade to a clarification reply.
func (o *Orchestrator) processStage(ctx context.Context, state *models.ConversationState) (response models.AgentResponse) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Orchestrator.processStage: stage panicked", "stage", state.CurrentStage, "panic", r)
			response = models.AgentResponse{
				Message:               "I'm analyzing your information. Could you tell me more about your business goals?",
				RequiresClarification: true,
			}
		}
	}()

	switch state.CurrentStage {
	case models.StageGreeting:
		return o.handleGreetingStage(ctx, state)
	case models.StageDiscovery, models.StageBrandAnalysis:
		return o.brand.AnalyzeConversation(ctx, state)
	case models.StageStrategyDevelopment:
		return o.strategy.DevelopStrategy(ctx, state)
	case models.StageContentCreation:
		return o.handleContentStage(ctx, state)
	case models.StageReviewRefinement:
		return o.handleReviewStage(state)
	case models.StageFinalization:
		return o.handleFinalizationStage(state)
	default:
		return models.AgentResponse{
			Message:               "Let me help you with that. What would you like to know about your social media strategy?",
			RequiresClarification: true,
		}
	}
}

// handleGreetingStage turns the user's first idea into three campaign
// concepts and jumps straight to strategy development.
func (o *Orchestrator) handleGreetingStage(ctx context.Context, state *models.ConversationState) models.AgentResponse {
	var lastUser string
	if n := len(state.Messages); n > 0 && state.Messages[n-1].Role == models.RoleUser {
		lastUser = state.Messages[n-1].Content
	}
	if lastUser == "" {
		return models.AgentResponse{
			Message:               greetingMessage,
			RequiresClarification: true,
		}
	}

	reply, err := o.llm.Generate(ctx,
		"You are a specialized marketing consultant for ProteinRX. Generate multiple campaign plans based on the user's input idea.",
		fmt.Sprintf(greetingCampaignPrompt, lastUser))
	if err != nil {
		slog.Warn("Orchestrator.handleGreetingStage: campaign generation failed, retrying simpler prompt", "error", err)
		simple := fmt.Sprintf(`Create 3 campaign ideas for ProteinRX protein smoothies based on this user idea: %s

For each campaign, include:
- Campaign Name
- Strategy
- Instagram Caption

Be specific and actionable.`, lastUser)
		reply, err = o.llm.Generate(ctx, "You are a marketing consultant for ProteinRX.", simple)
		if err != nil {
			slog.Error("Orchestrator.handleGreetingStage: simple generation also failed", "error", err)
			reply = fmt.Sprintf("I encountered an error generating campaigns. Let me try a different approach for your '%s' campaign idea.", lastUser)
		}
	}
	return models.AgentResponse{
		Message:   reply,
		NextStage: models.StageStrategyDevelopment,
	}
}

// handleContentStage creates the campaign content and then renders visuals
// for the generated posts.
func (o *Orchestrator) handleContentStage(ctx context.Context, state *models.ConversationState) models.AgentResponse {
	response := o.content.CreateCampaignContent(ctx, state)
	if state.CampaignOutput != nil && o.visual != nil {
		o.visual.GenerateVisualsForPosts(ctx, state.CampaignOutput.Posts, state)
	}
	return response
}

func (o *Orchestrator) handleReviewStage(state *models.ConversationState) models.AgentResponse {
	if state.CampaignOutput == nil {
		return models.AgentResponse{
			Message:   "I'm still working on your campaign content. Let me finish that up for you.",
			NextStage: models.StageContentCreation,
		}
	}

	platforms := state.CampaignOutput.Platforms()
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Perfect! I've created your complete social media campaign with %d posts across %s. ",
		len(state.CampaignOutput.Posts), strings.Join(names, ", "))
	sb.WriteString("Would you like me to:\n\n")
	sb.WriteString("• Show you the specific posts I've created\n")
	sb.WriteString("• Adjust the content style or messaging\n")
	sb.WriteString("• Create additional posts for other platforms\n")
	sb.WriteString("• Finalize everything and provide your campaign package\n\n")
	sb.WriteString("What would you prefer?")

	return models.AgentResponse{
		Message: sb.String(),
		Suggestions: []string{
			"Show me the posts",
			"Adjust the content style",
			"Add more platforms",
			"Finalize the campaign",
		},
		NextStage:             models.StageFinalization,
		RequiresClarification: true,
	}
}

func (o *Orchestrator) handleFinalizationStage(state *models.ConversationState) models.AgentResponse {
	if state.CampaignOutput == nil {
		return models.AgentResponse{
			Message:   "Let me complete your campaign first.",
			NextStage: models.StageContentCreation,
		}
	}
	return models.AgentResponse{
		Message:  campaignSummary(state),
		Metadata: map[string]any{"campaign_finalized": true},
	}
}

// campaignSummary renders the final campaign package message.
func campaignSummary(state *models.ConversationState) string {
	output := state.CampaignOutput
	platforms := output.Platforms()
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = capitalize(string(p))
	}

	var sb strings.Builder
	sb.WriteString("🎉 **Your Social Media Campaign is Ready!**\n\n")
	sb.WriteString("**Campaign Overview:**\n")
	fmt.Fprintf(&sb, "• Company: %s\n", state.Profile.Name)
	fmt.Fprintf(&sb, "• Industry: %s\n", orDefault(string(state.Profile.Industry), "General Business"))
	fmt.Fprintf(&sb, "• Target Audience: %s\n\n", orDefault(state.Profile.TargetAudience, "Your defined audience"))
	sb.WriteString("**Content Package:**\n")
	fmt.Fprintf(&sb, "• %d social media posts created\n", len(output.Posts))
	fmt.Fprintf(&sb, "• Platforms: %s\n", strings.Join(names, ", "))
	sb.WriteString("• Complete visual concepts for each post\n")
	sb.WriteString("• Strategic hashtag recommendations\n")
	sb.WriteString("• Optimized posting schedule\n\n")
	sb.WriteString("**What's Included:**\n")
	sb.WriteString("• Comprehensive brand strategy\n")
	sb.WriteString("• Platform-specific content optimization\n")
	sb.WriteString("• Visual design specifications\n")
	sb.WriteString("• Performance tracking guidelines\n")
	sb.WriteString("• Content calendar framework\n\n")
	sb.WriteString("Your campaign is ready to launch! You can now implement these posts and start building your social media presence. ")
	sb.WriteString("Would you like me to explain any specific aspect of your campaign or help you with implementation planning?")
	return sb.String()
}

// GetSummary returns the session's progress summary.
func (o *Orchestrator) GetSummary(sessionID string) (*models.SessionSummary, error) {
	state, err := o.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, models.ErrSessionNotFound
	}
	return &models.SessionSummary{
		SessionID:         state.SessionID,
		Stage:             state.CurrentStage,
		Profile:           state.Profile,
		Goals:             state.Goals,
		InsightsCollected: state.Insights.Collected(),
		MessageCount:      len(state.Messages),
		CreatedAt:         state.CreatedAt,
		LastUpdated:       state.UpdatedAt,
		Progress:          calculateProgress(state),
	}, nil
}

// GetOutput returns the finished campaign package.
func (o *Orchestrator) GetOutput(sessionID string) (*models.CampaignOutput, error) {
	state, err := o.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, models.ErrSessionNotFound
	}
	if state.CampaignOutput == nil {
		return nil, models.ErrOutputNotReady
	}
	return state.CampaignOutput, nil
}

// CloseSession deletes a session, reporting whether it existed.
func (o *Orchestrator) CloseSession(sessionID string) (bool, error) {
	existed, err := o.store.DeleteSession(sessionID)
	if err != nil {
		return false, err
	}
	slog.Info("Orchestrator.CloseSession: done", "sessionID", sessionID, "existed", existed)
	return existed, nil
}

// ActiveSessions lists all stored session ids.
func (o *Orchestrator) ActiveSessions() ([]string, error) {
	return o.store.ListSessionIDs()
}

// addMessage appends to history and trims the oldest messages once the cap
// is exceeded.
func (o *Orchestrator) addMessage(state *models.ConversationState, role models.Role, content string) {
	state.Messages = append(state.Messages, models.ConversationMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if len(state.Messages) > maxHistoryMessages {
		state.Messages = state.Messages[len(state.Messages)-trimmedHistoryMessages:]
	}
}

// recentHistory returns the trailing window of messages for LLM calls.
func (o *Orchestrator) recentHistory(state *models.ConversationState) []models.ConversationMessage {
	if len(state.Messages) <= o.historyWindow {
		return state.Messages
	}
	return state.Messages[len(state.Messages)-o.historyWindow:]
}

// Stage weights for progress reporting.
var stageWeights = map[models.Stage]float64{
	models.StageGreeting:            0.1,
	models.StageDiscovery:           0.3,
	models.StageBrandAnalysis:       0.5,
	models.StageStrategyDevelopment: 0.7,
	models.StageContentCreation:     0.9,
	models.StageReviewRefinement:    0.95,
	models.StageFinalization:        1.0,
}

// fieldBonus is added to progress per known profile or goal field.
const fieldBonus = 0.02

func calculateProgress(state *models.ConversationState) float64 {
	progress := stageWeights[state.CurrentStage]
	if state.Profile.Name != "" {
		progress += fieldBonus
	}
	if state.Profile.Industry != "" {
		progress += fieldBonus
	}
	if state.Profile.TargetAudience != "" {
		progress += fieldBonus
	}
	if state.Goals.PrimaryObjective != "" {
		progress += fieldBonus
	}
	if len(state.Goals.TargetPlatforms) > 0 {
		progress += fieldBonus
	}
	if progress > 1.0 {
		progress = 1.0
	}
	return progress
}

func errorResponse(sessionID string, stage models.Stage) *models.ConversationResponse {
	return &models.ConversationResponse{
		SessionID: sessionID,
		Message:   errorReplyMessage,
		Stage:     stage,
		Status:    models.ConversationStatusError,
	}
}
