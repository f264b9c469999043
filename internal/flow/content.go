package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bluereef/campaignforge/internal/genai"
	"github.com/bluereef/campaignforge/internal/models"
	"github.com/bluereef/campaignforge/internal/util"
)

// maxPillarsPerCampaign caps the fan-out per platform.
const maxPillarsPerCampaign = 4

// defaultPostObjective is the objective passed to the post generator.
const defaultPostObjective = "engagement"

// contentCreator generates the platform posts and assembles the final
// campaign package.
type contentCreator struct {
	llm genai.ClientInterface
}

// CreateCampaignContent runs the content creation stage. Posts are generated
// concurrently for every platform and pillar pair; individual failures become
// fallback posts so the campaign is always complete.
func (c *contentCreator) CreateCampaignContent(ctx context.Context, state *models.ConversationState) models.AgentResponse {
	if !state.Insights.HasStrategyFoundation() {
		slog.Debug("contentCreator.CreateCampaignContent: strategy foundation missing", "sessionID", state.SessionID)
		return models.AgentResponse{
			Message:               "I need the strategy foundation before creating content. Let me develop that first.",
			RequiresClarification: true,
		}
	}

	posts := c.generatePlatformPosts(ctx, state)
	c.addVisualConcepts(ctx, posts, state)
	hashtagStrategy := c.developHashtagStrategy(ctx, state)

	state.CampaignOutput = &models.CampaignOutput{
		Strategy:        c.createStrategyObject(state),
		Posts:           posts,
		HashtagStrategy: hashtagStrategy,
	}

	slog.Info("contentCreator.CreateCampaignContent: campaign assembled",
		"sessionID", state.SessionID, "posts", len(posts))

	platforms := make([]string, 0)
	for _, p := range state.CampaignOutput.Platforms() {
		platforms = append(platforms, string(p))
	}
	return models.AgentResponse{
		Message:   formatContentSummary(posts),
		NextStage: models.StageReviewRefinement,
		Metadata: map[string]any{
			"posts_created": len(posts),
			"platforms":     platforms,
		},
	}
}

// generatePlatformPosts fans out one post per (platform, pillar) pair. Each
// task writes its slot in the results slice and never returns an error, so a
// failing sibling cannot cancel the rest of the batch.
func (c *contentCreator) generatePlatformPosts(ctx context.Context, state *models.ConversationState) []models.SocialPost {
	platforms := state.Goals.TargetPlatforms
	if len(platforms) == 0 {
		platforms = []models.Platform{models.PlatformFacebook, models.PlatformInstagram}
	}
	pillars := state.Insights.ContentPillars
	if len(pillars) > maxPillarsPerCampaign {
		pillars = pillars[:maxPillarsPerCampaign]
	}

	type task struct {
		platform models.Platform
		pillar   models.ContentPillar
	}
	var tasks []task
	for _, platform := range platforms {
		for _, pillar := range pillars {
			tasks = append(tasks, task{platform: platform, pillar: pillar})
		}
	}

	results := make([]models.SocialPost, len(tasks))
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range tasks {
		g.Go(func() error {
			results[i] = c.createSinglePost(ctx, state, t.platform, t.pillar)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// createSinglePost generates and parses one post, substituting a fallback
// post when the LLM call fails.
func (c *contentCreator) createSinglePost(ctx context.Context, state *models.ConversationState, platform models.Platform, pillar models.ContentPillar) models.SocialPost {
	prompt := fmt.Sprintf(socialPostGeneratorPrompt,
		formatBrandGuidelines(state),
		formatContentPillar(pillar),
		string(platform),
		defaultPostObjective,
		orDefault(state.Profile.TargetAudience, "target audience"))

	content, err := c.llm.Generate(ctx, contentCreatorSystemPrompt, prompt)
	if err != nil {
		slog.Warn("contentCreator.createSinglePost: generation failed",
			"platform", platform, "pillar", pillar.Name, "error", err)
		return fallbackPost(platform, pillar)
	}

	parsed := parsePostContent(content)
	return models.SocialPost{
		Platform:        platform,
		Content:         util.FormatPlatformContent(parsed.content, string(platform)),
		Hashtags:        util.CleanHashtags(parsed.hashtags),
		ImagePrompt:     parsed.imagePrompt,
		CallToAction:    parsed.cta,
		PostType:        "standard",
		OptimalTiming:   parsed.timing,
		EngagementHooks: parsed.engagementHooks,
	}
}

// addVisualConcepts rewrites each post's image prompt into a detailed visual
// concept. Failures leave the original prompt in place.
func (c *contentCreator) addVisualConcepts(ctx context.Context, posts []models.SocialPost, state *models.ConversationState) {
	for i := range posts {
		if posts[i].ImagePrompt == "" {
			continue
		}
		prompt := fmt.Sprintf(visualContentPrompt,
			posts[i].ImagePrompt,
			string(posts[i].Platform),
			extractBrandStyle(state),
			"engagement and brand consistency")

		concept, err := c.llm.Generate(ctx,
			"You are a creative director developing visual concepts for social media.",
			prompt)
		if err != nil {
			slog.Warn("contentCreator.addVisualConcepts: enhancement failed", "platform", posts[i].Platform, "error", err)
			continue
		}
		posts[i].ImagePrompt = concept
	}
}

func (c *contentCreator) developHashtagStrategy(ctx context.Context, state *models.ConversationState) string {
	prompt := fmt.Sprintf(hashtagStrategyPrompt,
		formatBrandInfo(state),
		orDefault(state.Profile.TargetAudience, "general audience"),
		formatTargetPlatforms(state),
		extractContentThemes(state))

	strategy, err := c.llm.Generate(ctx, "You are a social media hashtag strategist.", prompt)
	if err != nil {
		slog.Warn("contentCreator.developHashtagStrategy: generation failed", "error", err)
		return "Hashtag strategy developed focusing on brand, industry, and engagement hashtags."
	}
	return strategy
}

func (c *contentCreator) createStrategyObject(state *models.ConversationState) models.CampaignStrategy {
	summary := util.TruncateText(state.Insights.CampaignStrategy, 500, "")
	if summary == "" {
		summary = "Comprehensive social media strategy developed"
	}

	pillarNames := make([]string, 0, len(state.Insights.ContentPillars))
	for _, pillar := range state.Insights.ContentPillars {
		pillarNames = append(pillarNames, pillar.Name)
	}

	return models.CampaignStrategy{
		ExecutiveSummary:           summary,
		TargetAudienceAnalysis:     orDefault(state.Profile.TargetAudience, "Target audience analysis completed"),
		ContentPillars:             pillarNames,
		BrandPositioning:           "Strategic positioning for " + state.Profile.Name,
		CompetitiveDifferentiation: "Unique brand differentiation strategy",
		KeyMessages:                []string{"Brand awareness", "Audience engagement", "Community building"},
		SuccessMetrics:             []string{"Engagement rate", "Reach", "Brand awareness", "Conversions"},
	}
}

// parsedPost holds the tagged sections recovered from a generated post.
type parsedPost struct {
	content         string
	hashtags        []string
	cta             string
	imagePrompt     string
	timing          string
	engagementHooks []string
}

// parsePostContent splits a generated reply into sections using header
// keywords. Text after the header's colon belongs to the new section; lines
// before any header are caption content. A reply with no recognizable
// sections is used whole as the caption.
func parsePostContent(content string) parsedPost {
	var parsed parsedPost
	section := "content"
	var caption, cta, image, timing strings.Builder

	add := func(text string) {
		switch section {
		case "content":
			caption.WriteString(text + " ")
		case "hashtags":
			for _, tag := range strings.Fields(text) {
				if strings.HasPrefix(tag, "#") {
					parsed.hashtags = append(parsed.hashtags, strings.TrimPrefix(tag, "#"))
				}
			}
		case "cta":
			cta.WriteString(text + " ")
		case "image_prompt":
			image.WriteString(text + " ")
		case "timing":
			timing.WriteString(text + " ")
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lineLower := strings.ToLower(line)
		header := ""
		switch {
		case strings.Contains(lineLower, "hashtag"):
			header = "hashtags"
		case strings.Contains(lineLower, "call to action") || strings.Contains(lineLower, "cta"):
			header = "cta"
		case strings.Contains(lineLower, "visual") || strings.Contains(lineLower, "image"):
			header = "image_prompt"
		case strings.Contains(lineLower, "timing"):
			header = "timing"
		}
		if header != "" {
			section = header
			if idx := strings.Index(line, ":"); idx >= 0 {
				if rest := strings.TrimSpace(line[idx+1:]); rest != "" {
					add(rest)
				}
			}
			continue
		}
		add(line)
	}

	parsed.content = strings.TrimSpace(caption.String())
	parsed.cta = strings.TrimSpace(cta.String())
	parsed.imagePrompt = strings.TrimSpace(image.String())
	parsed.timing = strings.TrimSpace(timing.String())

	if parsed.content == "" {
		parsed.content = strings.TrimSpace(content)
	}
	return parsed
}

func fallbackPost(platform models.Platform, pillar models.ContentPillar) models.SocialPost {
	return models.SocialPost{
		Platform:     platform,
		Content:      fmt.Sprintf("Exciting updates coming soon! Stay tuned for more %s.", orDefault(pillar.Name, "content")),
		Hashtags:     []string{"#business", "#social", "#updates"},
		ImagePrompt:  "Professional business visual with brand colors",
		CallToAction: "Follow for more updates!",
		PostType:     "standard",
	}
}

func formatContentSummary(posts []models.SocialPost) string {
	platformCounts := map[string]int{}
	var order []string
	for _, post := range posts {
		platform := string(post.Platform)
		if _, seen := platformCounts[platform]; !seen {
			order = append(order, platform)
		}
		platformCounts[platform]++
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎉 I've created %d social media posts for your campaign!\n\n", len(posts))
	sb.WriteString("**Content Created:**\n")
	for _, platform := range order {
		fmt.Fprintf(&sb, "• %s: %d posts\n", capitalize(platform), platformCounts[platform])
	}
	sb.WriteString("\nEach post is optimized for its platform with:\n")
	sb.WriteString("• Platform-specific content format and length\n")
	sb.WriteString("• Strategic hashtags for maximum reach\n")
	sb.WriteString("• Compelling calls-to-action\n")
	sb.WriteString("• Visual concept descriptions for image creation\n\n")
	sb.WriteString("Would you like to review the posts, make any adjustments, or shall we finalize your campaign?")
	return sb.String()
}

func formatBrandGuidelines(state *models.ConversationState) string {
	profile := state.Profile
	var guidelines []string
	if profile.Name != "" {
		guidelines = append(guidelines, "Brand: "+profile.Name)
	}
	if profile.BrandVoice != "" {
		guidelines = append(guidelines, "Voice: "+profile.BrandVoice)
	}
	if len(profile.BrandValues) > 0 {
		guidelines = append(guidelines, "Values: "+strings.Join(profile.BrandValues, ", "))
	}
	if profile.TargetAudience != "" {
		guidelines = append(guidelines, "Audience: "+profile.TargetAudience)
	}
	if analysis := state.Insights.BrandAnalysis; analysis != "" {
		guidelines = append(guidelines, "Brand Analysis: "+util.TruncateText(analysis, 200, "")+"...")
	}
	return strings.Join(guidelines, "\n")
}

func formatContentPillar(pillar models.ContentPillar) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pillar: %s\n", orDefault(pillar.Name, "Content Theme"))
	fmt.Fprintf(&sb, "Description: %s\n", pillar.Description)
	if len(pillar.ContentTypes) > 0 {
		fmt.Fprintf(&sb, "Content Types: %s\n", strings.Join(pillar.ContentTypes, ", "))
	}
	if len(pillar.Examples) > 0 {
		examples := pillar.Examples
		if len(examples) > 3 {
			examples = examples[:3]
		}
		fmt.Fprintf(&sb, "Examples: %s", strings.Join(examples, ", "))
	}
	return sb.String()
}

// extractBrandStyle derives a visual style string from voice and industry.
func extractBrandStyle(state *models.ConversationState) string {
	var elements []string
	if state.Profile.BrandVoice != "" {
		elements = append(elements, state.Profile.BrandVoice)
	}
	if state.Profile.Industry != "" {
		industryStyles := map[models.Industry]string{
			models.IndustryFoodBeverage: "warm, appetizing, lifestyle-focused",
			models.IndustryTechnology:   "modern, clean, innovative",
			models.IndustryHealthcare:   "professional, trustworthy, caring",
			models.IndustryFinance:      "professional, reliable, sophisticated",
		}
		style, ok := industryStyles[state.Profile.Industry]
		if !ok {
			style = "professional"
		}
		elements = append(elements, style)
	}
	if len(elements) == 0 {
		return "professional, brand-consistent"
	}
	return strings.Join(elements, ", ")
}

func extractContentThemes(state *models.ConversationState) string {
	var themes []string
	for _, pillar := range state.Insights.ContentPillars {
		if pillar.Name != "" {
			themes = append(themes, pillar.Name)
		}
	}
	if len(themes) == 0 {
		return "business, industry, engagement"
	}
	return strings.Join(themes, ", ")
}
