package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bluereef/campaignforge/internal/genai"
	"github.com/bluereef/campaignforge/internal/images"
	"github.com/bluereef/campaignforge/internal/models"
)

// defaultCarouselSlides is how many images a carousel request produces.
const defaultCarouselSlides = 3

// visualAgent turns image prompts into rendered visuals. Generation only
// backfills ImageURL; the text content of a post is never touched here.
type visualAgent struct {
	images images.GeneratorInterface
	llm    genai.ClientInterface
}

// GenerateVisualsForPosts renders an image for every post with an image
// prompt, concurrently. A failed render leaves the post's ImageURL empty.
func (v *visualAgent) GenerateVisualsForPosts(ctx context.Context, posts []models.SocialPost, state *models.ConversationState) {
	g, ctx := errgroup.WithContext(ctx)
	for i := range posts {
		if posts[i].ImagePrompt == "" {
			continue
		}
		g.Go(func() error {
			url, err := v.generatePostVisual(ctx, &posts[i], state)
			if err != nil {
				slog.Warn("visualAgent.GenerateVisualsForPosts: render failed",
					"platform", posts[i].Platform, "error", err)
				return nil
			}
			posts[i].ImageURL = url
			return nil
		})
	}
	_ = g.Wait()
}

func (v *visualAgent) generatePostVisual(ctx context.Context, post *models.SocialPost, state *models.ConversationState) (string, error) {
	enhanced := v.enhanceImagePrompt(ctx, post.ImagePrompt, post.Platform, state)
	style := determineVisualStyle(state, post.Platform)
	return v.images.GenerateImage(ctx, enhanced, style, string(post.Platform))
}

// enhanceImagePrompt asks the LLM to fold brand context into the prompt,
// returning the original prompt when the call fails.
func (v *visualAgent) enhanceImagePrompt(ctx context.Context, original string, platform models.Platform, state *models.ConversationState) string {
	width, height := images.PlatformDimensions(string(platform))
	enhancementPrompt := fmt.Sprintf(`Enhance this image prompt for %s social media post:

Original prompt: %s

Brand context:
- Company: %s
- Industry: %s
- Brand voice: %s
- Target audience: %s

Platform specifications:
- Platform: %s
- Optimal dimensions: %dx%d

Enhance the prompt to include brand-appropriate visual elements, optimize for the platform, and appeal to the target audience.

Return only the enhanced prompt, nothing else.`,
		platform, original,
		state.Profile.Name,
		orDefault(string(state.Profile.Industry), "general business"),
		orDefault(state.Profile.BrandVoice, "professional"),
		orDefault(state.Profile.TargetAudience, "general audience"),
		platform, width, height)

	enhanced, err := v.llm.Generate(ctx,
		"You are a visual content specialist optimizing image prompts for social media.",
		enhancementPrompt)
	if err != nil {
		slog.Warn("visualAgent.enhanceImagePrompt: enhancement failed", "error", err)
		return original
	}
	return strings.TrimSpace(enhanced)
}

// GenerateCarouselVisuals renders a set of related images for a carousel
// post. Failed slides are dropped from the result.
func (v *visualAgent) GenerateCarouselVisuals(ctx context.Context, post models.SocialPost, state *models.ConversationState, numSlides int) []string {
	if numSlides <= 0 {
		numSlides = defaultCarouselSlides
	}
	prompts := v.createCarouselPrompts(ctx, post.ImagePrompt, numSlides)
	style := determineVisualStyle(state, post.Platform)

	rendered := v.images.GenerateCarouselImages(ctx, prompts, style, string(post.Platform))
	var valid []string
	for _, url := range rendered {
		if url != "" {
			valid = append(valid, url)
		}
	}
	return valid
}

func (v *visualAgent) createCarouselPrompts(ctx context.Context, basePrompt string, numSlides int) []string {
	reply, err := v.llm.Generate(ctx,
		"You are a visual storytelling expert creating carousel content.",
		fmt.Sprintf(carouselVariationPrompt, numSlides, basePrompt))
	if err != nil {
		slog.Warn("visualAgent.createCarouselPrompts: generation failed", "error", err)
		prompts := make([]string, numSlides)
		for i := range prompts {
			prompts[i] = fmt.Sprintf("%s - variation %d", basePrompt, i+1)
		}
		return prompts
	}
	return parseCarouselPrompts(reply, numSlides)
}

// parseCarouselPrompts reads "Slide N: prompt" lines, padding with generic
// variations when the reply came up short.
func parseCarouselPrompts(response string, numSlides int) []string {
	var prompts []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(line), "slide") && strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			prompts = append(prompts, strings.TrimSpace(parts[1]))
		}
	}
	for len(prompts) < numSlides {
		prompts = append(prompts, fmt.Sprintf("Additional visual variation %d", len(prompts)+1))
	}
	return prompts[:numSlides]
}

// determineVisualStyle picks a style keyword from industry, platform, and
// brand voice. Brand voice wins when it names a clear register.
func determineVisualStyle(state *models.ConversationState, platform models.Platform) string {
	if voice := strings.ToLower(state.Profile.BrandVoice); voice != "" {
		switch {
		case strings.Contains(voice, "fun") || strings.Contains(voice, "playful"):
			return "vibrant"
		case strings.Contains(voice, "professional") || strings.Contains(voice, "corporate"):
			return "professional"
		case strings.Contains(voice, "elegant") || strings.Contains(voice, "luxury"):
			return "elegant"
		}
	}

	platformStyles := map[models.Platform]string{
		models.PlatformInstagram: "vibrant",
		models.PlatformLinkedIn:  "professional",
		models.PlatformTikTok:    "vibrant",
		models.PlatformFacebook:  "casual",
		models.PlatformTwitter:   "modern",
		models.PlatformYouTube:   "engaging",
	}
	if style, ok := platformStyles[platform]; ok {
		return style
	}

	industryStyles := map[models.Industry]string{
		models.IndustryFoodBeverage:    "vibrant",
		models.IndustryTechnology:      "modern",
		models.IndustryHealthcare:      "professional",
		models.IndustryFinance:         "professional",
		models.IndustryRetail:          "vibrant",
		models.IndustryEducation:       "professional",
		models.IndustryRealEstate:      "elegant",
		models.IndustryAutomotive:      "modern",
		models.IndustryBeautyFashion:   "elegant",
		models.IndustryFitnessWellness: "vibrant",
		models.IndustryEntertainment:   "vibrant",
	}
	if style, ok := industryStyles[state.Profile.Industry]; ok {
		return style
	}
	return "professional"
}
