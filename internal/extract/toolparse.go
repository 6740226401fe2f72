package extract

import (
	"regexp"
	"strings"

	"github.com/alitypes/scribe/internal/models"
)

// Tier-1 parsers operate on the raw output of a single tool invocation.
// Each returns its zero value when the output is unusable, which pushes
// resolution down to the final-text tier.

var (
	toolKeywordsPrefix  = regexp.MustCompile(`(?i)^[^\n]*keywords?:\s*`)
	toolCompetitorEntry = regexp.MustCompile(`([^(;]+)\(([^)]+)\)`)
	toolCompetitorCount = regexp.MustCompile(`(?i)^found\s+\d+\s+competitors?:\s*`)

	toolImageSuccess = regexp.MustCompile(`(?i)image generated successfully:\s*(/generated-images/\S+\.jpg)`)
	toolImageAbs     = regexp.MustCompile(`/generated-images/[^\s)]+\.jpg`)
	toolImageRel     = regexp.MustCompile(`generated-images/[^\s)]+\.jpg`)
	toolImageSaved   = regexp.MustCompile(`(?i)image\s+(?:saved|generated)\s+(?:at|to):\s*([^\s\n]+)`)
	toolImageURL     = regexp.MustCompile(`(?i)image\s+url:\s*([^\s\n]+)`)
)

// parseToolKeywords splits a keyword tool report into individual
// keywords. The report's narrative lead-in ("Found 5 trending
// keywords:", "Using topic-specific fallback keywords:") is stripped,
// and stray narrative fragments are filtered out.
func parseToolKeywords(output string) []string {
	cleaned := toolKeywordsPrefix.ReplaceAllString(strings.TrimSpace(output), "")

	var keywords []string
	for _, part := range strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		kw := strings.TrimSpace(part)
		lower := strings.ToLower(kw)
		if len(kw) <= 2 || strings.Contains(lower, "using") || strings.Contains(lower, "fallback") {
			continue
		}
		keywords = append(keywords, kw)
		if len(keywords) == 10 {
			break
		}
	}
	return keywords
}

// parseToolCompetitors pulls "Title (URL)" entries out of a competitor
// tool report, capped at three, and passes the full report through as
// the insights text.
func parseToolCompetitors(output string) ([]models.Competitor, string) {
	trimmed := strings.TrimSpace(output)
	body := toolCompetitorCount.ReplaceAllString(trimmed, "")

	var competitors []models.Competitor
	for _, m := range toolCompetitorEntry.FindAllStringSubmatch(body, 3) {
		title := strings.Trim(strings.TrimSpace(m[1]), ";")
		url := strings.TrimSpace(m[2])
		if title == "" || url == "" {
			continue
		}
		competitors = append(competitors, models.Competitor{Title: strings.TrimSpace(title), URL: url})
	}

	if len(competitors) == 0 {
		return nil, ""
	}
	return competitors, trimmed
}

// parseToolImageURL resolves the stored image path from an image tool
// report, trying the explicit success message before bare path patterns.
func parseToolImageURL(output string) (string, bool) {
	url, ok := first(
		func() (string, bool) { return submatch(toolImageSuccess, output) },
		func() (string, bool) { return wholeMatch(toolImageAbs, output) },
		func() (string, bool) { return wholeMatch(toolImageRel, output) },
		func() (string, bool) { return submatch(toolImageSaved, output) },
		func() (string, bool) { return submatch(toolImageURL, output) },
	)
	if !ok {
		return "", false
	}
	return normalizeImagePath(url), true
}

// parseToolContent accepts a content tool report as the blog body when
// it looks like markdown or is substantial enough to be an article.
func parseToolContent(output string) (string, bool) {
	content := CleanContent(strings.TrimSpace(output))
	if strings.HasPrefix(content, "#") || len(content) > 500 {
		return content, true
	}
	return "", false
}

// normalizeImagePath ensures a site-relative image path.
func normalizeImagePath(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "/") {
		return url
	}
	return "/" + url
}

func submatch(re *regexp.Regexp, s string) (string, bool) {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	return "", false
}

func wholeMatch(re *regexp.Regexp, s string) (string, bool) {
	if m := re.FindString(s); m != "" {
		return m, true
	}
	return "", false
}
