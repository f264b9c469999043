package util

import (
	"time"

	"github.com/bluereef/campaignforge/internal/models"
)

// CampaignReport is the exportable performance view of a finished campaign.
type CampaignReport struct {
	CampaignSummary CampaignReportSummary `json:"campaign_summary"`
	ContentAnalysis ContentAnalysis       `json:"content_analysis"`
	NextSteps       []string              `json:"next_steps"`
}

// CampaignReportSummary describes the campaign at a glance.
type CampaignReportSummary struct {
	Company       string    `json:"company"`
	Objective     string    `json:"objective,omitempty"`
	Platforms     []string  `json:"platforms"`
	DurationWeeks int       `json:"duration_weeks"`
	PostsCreated  int       `json:"posts_created"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// ContentAnalysis aggregates simple metrics over the generated posts.
type ContentAnalysis struct {
	TotalPosts           int            `json:"total_posts"`
	PlatformDistribution map[string]int `json:"platform_distribution"`
	HashtagCount         int            `json:"hashtag_count"`
	AverageContentLength int            `json:"average_content_length"`
}

// DefaultCampaignDurationWeeks applies when the goals never specified one.
const DefaultCampaignDurationWeeks = 4

// CreateCampaignReport builds a report over the generated posts.
func CreateCampaignReport(company, objective string, platforms []string, durationWeeks int, posts []models.SocialPost) CampaignReport {
	if durationWeeks <= 0 {
		durationWeeks = DefaultCampaignDurationWeeks
	}

	analysis := ContentAnalysis{
		TotalPosts:           len(posts),
		PlatformDistribution: make(map[string]int),
	}
	totalLength := 0
	for _, post := range posts {
		analysis.PlatformDistribution[string(post.Platform)]++
		analysis.HashtagCount += len(post.Hashtags)
		totalLength += len(post.Content)
	}
	if len(posts) > 0 {
		analysis.AverageContentLength = totalLength / len(posts)
	}

	return CampaignReport{
		CampaignSummary: CampaignReportSummary{
			Company:       company,
			Objective:     objective,
			Platforms:     platforms,
			DurationWeeks: durationWeeks,
			PostsCreated:  len(posts),
			GeneratedAt:   time.Now().UTC(),
		},
		ContentAnalysis: analysis,
		NextSteps: []string{
			"Review and approve all content",
			"Schedule posts in your social media management tool",
			"Monitor engagement and adjust strategy as needed",
			"Create additional content for ongoing campaigns",
		},
	}
}
