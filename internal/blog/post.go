// Package blog assembles persisted posts from generated content. All
// helpers are pure functions of their input.
package blog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/alitypes/scribe/internal/models"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9 -]`)
	slugSpaces       = regexp.MustCompile(`\s+`)
	slugHyphens      = regexp.MustCompile(`-+`)

	mdHeaders = regexp.MustCompile(`#{1,6}\s+`)
	mdBold    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalic  = regexp.MustCompile(`\*(.*?)\*`)
	mdLinks   = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	mdLines   = regexp.MustCompile(`\n+`)
)

// GenerateSlug derives the URL-safe identifier for a title: lowercase,
// special characters stripped, whitespace collapsed to single hyphens.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ReadTime estimates reading time at 200 words per minute, rounded up.
func ReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Excerpt strips markdown formatting and returns roughly the first 200
// characters of the plain text. The cut lands on a rune boundary so
// multibyte text never produces an invalid excerpt.
func Excerpt(content string) string {
	plain := mdHeaders.ReplaceAllString(content, "")
	plain = mdBold.ReplaceAllString(plain, "$1")
	plain = mdItalic.ReplaceAllString(plain, "$1")
	plain = mdLinks.ReplaceAllString(plain, "$1")
	plain = mdLines.ReplaceAllString(plain, " ")
	plain = strings.TrimSpace(plain)

	if utf8.RuneCountInString(plain) > 200 {
		runes := []rune(plain)
		return string(runes[:197]) + "..."
	}
	return plain
}

// categoryBuckets map content keywords to a category; first match wins.
var categoryBuckets = []struct {
	matches  []string
	category string
}{
	{[]string{"fashion", "style", "clothing"}, "Fashion"},
	{[]string{"seo", "marketing", "digital"}, "Marketing"},
	{[]string{"business", "entrepreneur", "startup"}, "Business"},
	{[]string{"design", "ui", "ux"}, "Design"},
	{[]string{"code", "programming", "development"}, "Development"},
	{[]string{"technology", "tech", "ai"}, "Technology"},
}

// SuggestCategory picks a category from recognizable content keywords,
// defaulting to General.
func SuggestCategory(content string) string {
	contentLower := strings.ToLower(content)
	for _, bucket := range categoryBuckets {
		for _, m := range bucket.matches {
			if strings.Contains(contentLower, m) {
				return bucket.category
			}
		}
	}
	return "General"
}

// ExtractTitle pulls the title from content: the first H1, else the first
// non-empty line, else a fixed placeholder.
func ExtractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "Untitled Post"
}

// InsertImageBanner splices an image reference directly below the H1, or
// prepends it when the content has no H1.
func InsertImageBanner(content, title, imageURL string) string {
	if imageURL == "" {
		return content
	}

	banner := fmt.Sprintf("![%s](%s)", title, imageURL)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") {
			rest := append([]string{"", banner, ""}, lines[i+1:]...)
			return strings.Join(append(lines[:i+1:i+1], rest...), "\n")
		}
	}
	return banner + "\n\n" + content
}

// New assembles a BlogPost from a generated content package. The title
// comes from the content's H1 when present, else the topic. Slug
// uniqueness is not checked; two posts can share a slug and lookups
// return the newest.
func New(topic string, pkg models.ContentPackage, now time.Time) models.BlogPost {
	title := ExtractTitle(pkg.Content)
	if title == "Untitled Post" && topic != "" {
		title = topic
	}

	content := InsertImageBanner(pkg.Content, title, pkg.ImageURL)

	return models.BlogPost{
		ID:          uuid.NewString(),
		Title:       title,
		Slug:        GenerateSlug(title),
		Content:     content,
		Excerpt:     Excerpt(pkg.Content),
		Category:    SuggestCategory(pkg.Content),
		ReadTime:    ReadTime(pkg.Content),
		PublishedAt: now.UTC().Format("2006-01-02"),
		Keywords:    pkg.Keywords,
		Image:       pkg.ImageURL,
	}
}
