package util

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractHashtags(t *testing.T) {
	tags := ExtractHashtags("Fuel up! #fitness #ProteinRX no tag here")
	if len(tags) != 2 {
		t.Fatalf("expected 2 hashtags, got %v", tags)
	}
	if tags[0] != "#fitness" || tags[1] != "#ProteinRX" {
		t.Errorf("unexpected hashtags: %v", tags)
	}
}

func TestCleanHashtags(t *testing.T) {
	tags := CleanHashtags([]string{"#fitness", "fitness", "  #gym_life ", "#bad tag!", ""})
	if len(tags) != 2 {
		t.Fatalf("expected 2 cleaned hashtags, got %v", tags)
	}
	if tags[0] != "#fitness" || tags[1] != "#gym_life" {
		t.Errorf("unexpected cleaned hashtags: %v", tags)
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("short", 10, "..."); got != "short" {
		t.Errorf("short text should be unchanged, got %q", got)
	}
	got := TruncateText("this is a long sentence", 10, "...")
	if len(got) > 10 {
		t.Errorf("truncated text too long: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected suffix, got %q", got)
	}
}

func TestTruncateTextMultibyte(t *testing.T) {
	got := TruncateText(strings.Repeat("café ", 100), 20, "...")
	if !utf8.ValidString(got) {
		t.Errorf("truncation split a rune: %q", got)
	}
	if utf8.RuneCountInString(got) > 20 {
		t.Errorf("truncated text too long: %d runes", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected suffix, got %q", got)
	}
}

func TestFormatPlatformContent(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := FormatPlatformContent(long, "twitter")
	if len(got) > 280 {
		t.Errorf("twitter content exceeds limit: %d", len(got))
	}
	if FormatPlatformContent("fine", "instagram") != "fine" {
		t.Error("short content should pass through")
	}
}
