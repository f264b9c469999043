// Package images generates campaign visuals from text prompts.
//
// The primary backend is the Gemini image preview model; when it fails or
// returns no image data, generation falls back to Pollinations.ai once.
// Results are returned as data URLs so callers never handle raw bytes.
package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	ggenai "google.golang.org/genai"
)

// DefaultImageModel is the Gemini model used for image generation.
const DefaultImageModel = "gemini-2.5-flash-image-preview"

// DefaultPollinationsURL is the free fallback image endpoint.
const DefaultPollinationsURL = "https://image.pollinations.ai"

// DefaultTimeout bounds a single image request.
const DefaultTimeout = 120 * time.Second

// maxPromptLength caps the prompt sent to the fallback endpoint.
const maxPromptLength = 200

// GeneratorInterface defines the image operations the visual agent depends on.
type GeneratorInterface interface {
	// GenerateImage produces a data URL for the prompt, or an error when both
	// backends fail.
	GenerateImage(ctx context.Context, prompt, style, platform string) (string, error)

	// GenerateCarouselImages produces one data URL per prompt. Entries are
	// empty strings for prompts that failed.
	GenerateCarouselImages(ctx context.Context, prompts []string, style, platform string) []string
}

// Opts holds configuration options for the image service.
type Opts struct {
	APIKey          string
	Model           string
	PollinationsURL string
	Timeout         time.Duration
}

// Option configures the image service.
type Option func(*Opts)

// WithAPIKey sets the Gemini API key. Without a key only the fallback runs.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel overrides the Gemini image model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// WithPollinationsURL overrides the fallback endpoint.
func WithPollinationsURL(u string) Option {
	return func(o *Opts) { o.PollinationsURL = u }
}

// WithTimeout bounds each image request.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// Service generates images with Gemini and falls back to Pollinations.
type Service struct {
	gemini          *ggenai.Client
	model           string
	pollinationsURL string
	httpClient      *http.Client
}

// NewService creates an image generation service.
func NewService(ctx context.Context, opts ...Option) (*Service, error) {
	cfg := Opts{
		Model:           DefaultImageModel,
		PollinationsURL: DefaultPollinationsURL,
		Timeout:         DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("images.NewService: creating service", "model", cfg.Model, "hasAPIKey", cfg.APIKey != "")

	s := &Service{
		model:           cfg.Model,
		pollinationsURL: strings.TrimRight(cfg.PollinationsURL, "/"),
		httpClient:      &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.APIKey != "" {
		client, err := ggenai.NewClient(ctx, &ggenai.ClientConfig{APIKey: cfg.APIKey})
		if err != nil {
			return nil, fmt.Errorf("creating Gemini image client: %w", err)
		}
		s.gemini = client
	}
	return s, nil
}

// GenerateImage produces a data URL for the prompt. The Gemini backend runs
// first when configured; a single fallback hop to Pollinations follows any
// Gemini failure. The fallback's own failure is final.
func (s *Service) GenerateImage(ctx context.Context, prompt, style, platform string) (string, error) {
	enhanced := EnhancePrompt(prompt, style, platform)
	slog.Debug("ImageService.GenerateImage: generating", "platform", platform, "promptLen", len(enhanced))

	if s.gemini != nil {
		dataURL, err := s.generateWithGemini(ctx, enhanced)
		if err == nil {
			return dataURL, nil
		}
		slog.Warn("ImageService.GenerateImage: Gemini failed, trying Pollinations", "error", err)
	}
	return s.generateWithPollinations(ctx, enhanced)
}

// GenerateCarouselImages produces one data URL per prompt, sequentially.
func (s *Service) GenerateCarouselImages(ctx context.Context, prompts []string, style, platform string) []string {
	results := make([]string, len(prompts))
	for i, prompt := range prompts {
		dataURL, err := s.GenerateImage(ctx, prompt, style, platform)
		if err != nil {
			slog.Warn("ImageService.GenerateCarouselImages: slide failed", "slide", i, "error", err)
			continue
		}
		results[i] = dataURL
	}
	return results
}

func (s *Service) generateWithGemini(ctx context.Context, prompt string) (string, error) {
	contents := []*ggenai.Content{ggenai.NewContentFromText(prompt, ggenai.RoleUser)}
	res, err := s.gemini.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini image generation: %w", err)
	}
	for _, cand := range res.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			encoded := base64.StdEncoding.EncodeToString(part.InlineData.Data)
			slog.Debug("ImageService.generateWithGemini: image received", "mimeType", mimeType, "bytes", len(part.InlineData.Data))
			return fmt.Sprintf("data:%s;base64,%s", mimeType, encoded), nil
		}
	}
	return "", fmt.Errorf("no image data in gemini response")
}

func (s *Service) generateWithPollinations(ctx context.Context, prompt string) (string, error) {
	if runes := []rune(prompt); len(runes) > maxPromptLength {
		prompt = string(runes[:maxPromptLength])
	}
	reqURL := fmt.Sprintf("%s/prompt/%s?model=flux&width=1024&height=1024&nologo=true&enhance=true",
		s.pollinationsURL, url.PathEscape(prompt))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("building pollinations request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pollinations request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("pollinations error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	imageBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading pollinations response: %w", err)
	}
	slog.Debug("ImageService.generateWithPollinations: image received", "bytes", len(imageBytes))
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageBytes), nil
}

// styleModifiers adjusts the visual register of a prompt.
var styleModifiers = map[string]string{
	"professional": "professional, clean, corporate style",
	"casual":       "casual, friendly, approachable style",
	"modern":       "modern, minimalist, contemporary design",
	"vibrant":      "vibrant colors, energetic, eye-catching",
	"elegant":      "elegant, sophisticated, luxury aesthetic",
}

// platformSpecs adds per-platform framing hints.
var platformSpecs = map[string]string{
	"instagram": "Instagram-optimized, square format, visually striking",
	"facebook":  "Facebook-optimized, engaging, shareable",
	"linkedin":  "LinkedIn-optimized, professional, business-appropriate",
	"twitter":   "Twitter-optimized, attention-grabbing, concise visual",
	"tiktok":    "TikTok-optimized, vertical format, trendy, youth-oriented",
}

// EnhancePrompt augments a raw prompt with style, platform, and quality hints.
func EnhancePrompt(prompt, style, platform string) string {
	enhanced := prompt
	if mod, ok := styleModifiers[strings.ToLower(style)]; ok {
		enhanced += ", " + mod
	}
	if spec, ok := platformSpecs[strings.ToLower(platform)]; ok {
		enhanced += ", " + spec
	}
	return enhanced + ", high quality, professional photography, good lighting"
}

// platformDimensions holds the optimal post image size per platform.
var platformDimensions = map[string][2]int{
	"instagram": {1080, 1080},
	"facebook":  {1200, 630},
	"linkedin":  {1200, 627},
	"twitter":   {1200, 675},
	"tiktok":    {1080, 1920},
	"youtube":   {1280, 720},
	"pinterest": {1000, 1500},
}

// PlatformDimensions returns the optimal width and height for a platform,
// defaulting to a 1024 square.
func PlatformDimensions(platform string) (width, height int) {
	if dims, ok := platformDimensions[strings.ToLower(platform)]; ok {
		return dims[0], dims[1]
	}
	return 1024, 1024
}
