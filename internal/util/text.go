package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	hashtagPattern      = regexp.MustCompile(`#(\w+)`)
	validHashtagPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// platformContentLimits holds per-platform caption length limits in characters.
var platformContentLimits = map[string]int{
	"twitter":   280,
	"instagram": 2200,
	"facebook":  8000,
	"linkedin":  3000,
	"tiktok":    2200,
	"youtube":   5000,
	"pinterest": 500,
}

// DefaultContentLimit applies when the platform is unknown.
const DefaultContentLimit = 2000

// ExtractHashtags returns all hashtags present in text, with the leading '#'.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, "#"+m[1])
	}
	return tags
}

// CleanHashtags normalizes and de-duplicates hashtags, dropping invalid ones.
// Tags are returned with a single leading '#'.
func CleanHashtags(tags []string) []string {
	seen := make(map[string]bool)
	var cleaned []string
	for _, tag := range tags {
		t := strings.ReplaceAll(strings.TrimSpace(tag), "#", "")
		if t == "" || !validHashtagPattern.MatchString(t) {
			continue
		}
		key := "#" + t
		if !seen[key] {
			seen[key] = true
			cleaned = append(cleaned, key)
		}
	}
	return cleaned
}

// TruncateText truncates text to maxLength characters, appending suffix when
// cut. The cut never splits a multi-byte rune.
func TruncateText(text string, maxLength int, suffix string) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	cut := maxLength - utf8.RuneCountInString(suffix)
	if cut < 0 {
		cut = 0
	}
	return strings.TrimRight(string(runes[:cut]), " \t\n") + suffix
}

// FormatPlatformContent trims content down to the platform's caption limit.
func FormatPlatformContent(content, platform string) string {
	limit, ok := platformContentLimits[strings.ToLower(platform)]
	if !ok {
		limit = DefaultContentLimit
	}
	if utf8.RuneCountInString(content) > limit {
		return TruncateText(content, limit, "...")
	}
	return content
}
