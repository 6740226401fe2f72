package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Tier-2 parsers operate on the agent's final text: structured markers
// first, looser prose heuristics second, synthesized placeholders last.

var (
	keywordsMarker = regexp.MustCompile(`(?i)KEYWORDS:\s*([^\n]+)`)
	keywordsLoose  = regexp.MustCompile(`(?i)(?:keywords?|trending|found)[\s\S]*?:([\s\S]*?)(?:\n\n|\.|$)`)

	competitorsMarker = regexp.MustCompile(`(?i)COMPETITORS:\s*([^\n]+)`)
	insightsLoose     = regexp.MustCompile(`(?i)competitor[\s\S]*?insights?[\s\S]*?:([\s\S]*?)(?:\n\n|$)`)

	imageMarker = regexp.MustCompile(`(?i)IMAGE_URL:\s*([^\s\n]+)`)

	contentBlock  = regexp.MustCompile(`(?i)BLOG_CONTENT_START:\s*([\s\S]*?)\s*BLOG_CONTENT_END:`)
	markdownBlock = regexp.MustCompile(`(?:^|\n)(# [^\n]+[\s\S]*?)(?:\n\nKEYWORDS:|\n\nCOMPETITORS:|$)`)

	socialBlock    = regexp.MustCompile(`(?i)SOCIAL_POSTS_START:\s*([\s\S]*?)\s*SOCIAL_POSTS_END:`)
	socialLoose    = []*regexp.Regexp{
		regexp.MustCompile(`(?i)social media[\s\S]*?posts?[\s\S]*?:([\s\S]*?)(?:\n\n|$)`),
		regexp.MustCompile(`(?i)social posts?[\s\S]*?:([\s\S]*?)(?:\n\n|$)`),
		regexp.MustCompile(`(?i)posts?[\s\S]*?social[\s\S]*?:([\s\S]*?)(?:\n\n|$)`),
	}
	numberedItem   = regexp.MustCompile(`\d+\.\s+(.+)`)
	numberedPrefix = regexp.MustCompile(`^\d+\.\s*`)
)

// keywordsFromFinalText never returns an empty slice.
func keywordsFromFinalText(finalText string) []string {
	if m := keywordsMarker.FindStringSubmatch(finalText); m != nil {
		if kws := splitTrimmed(m[1], ","); len(kws) > 0 {
			return capN(kws, 10)
		}
	}
	if m := keywordsLoose.FindStringSubmatch(finalText); m != nil {
		if kws := splitTrimmed(m[1], ",\n"); len(kws) > 0 {
			return capN(kws, 10)
		}
	}
	return []string{"seo", "content", "marketing", "strategy"}
}

// insightsFromFinalText never returns an empty string.
func insightsFromFinalText(finalText string) string {
	if m := competitorsMarker.FindStringSubmatch(finalText); m != nil {
		if competitors := splitTrimmed(m[1], ","); len(competitors) > 0 {
			return fmt.Sprintf("Found %d competitors: %s", len(competitors), strings.Join(competitors, ", "))
		}
	}
	if m := insightsLoose.FindStringSubmatch(finalText); m != nil {
		if insights := strings.TrimSpace(m[1]); insights != "" {
			return insights
		}
	}
	return "Competitor analysis completed using web scraping tools."
}

func imageURLFromFinalText(finalText string) (string, bool) {
	url, ok := first(
		func() (string, bool) { return submatch(imageMarker, finalText) },
		func() (string, bool) { return submatch(toolImageSuccess, finalText) },
		func() (string, bool) { return wholeMatch(toolImageAbs, finalText) },
		func() (string, bool) { return wholeMatch(toolImageRel, finalText) },
		func() (string, bool) { return submatch(toolImageSaved, finalText) },
		func() (string, bool) { return submatch(toolImageURL, finalText) },
	)
	if !ok {
		return "", false
	}
	return normalizeImagePath(url), true
}

// contentFromFinalText never returns an empty string: a marker block or a
// long markdown block when present, else a placeholder article for the
// topic.
func contentFromFinalText(finalText, topic string) string {
	if m := contentBlock.FindStringSubmatch(finalText); m != nil {
		if content := CleanContent(strings.TrimSpace(m[1])); len(content) > 100 {
			return content
		}
	}
	if m := markdownBlock.FindStringSubmatch(finalText); m != nil && len(m[1]) > 500 {
		return CleanContent(strings.TrimSpace(m[1]))
	}
	return placeholderContent(topic)
}

func placeholderContent(topic string) string {
	lower := strings.ToLower(topic)
	return fmt.Sprintf(`# %s

## Introduction

This comprehensive guide explores %s and provides valuable insights for readers interested in this topic.

## Key Points

Understanding %s is crucial in today's digital landscape. This article covers the essential aspects you need to know.

## Conclusion

%s continues to be an important topic with significant implications for the future.

*This content was generated automatically. Please review and enhance as needed.*`, topic, lower, lower, topic)
}

// socialPostsFromFinalText never returns an empty slice.
func socialPostsFromFinalText(finalText string) []string {
	if m := socialBlock.FindStringSubmatch(finalText); m != nil {
		var posts []string
		for _, line := range strings.Split(m[1], "\n") {
			post := strings.TrimSpace(numberedPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
			if len(post) > 10 {
				posts = append(posts, post)
			}
		}
		if len(posts) > 0 {
			return capN(posts, 4)
		}
	}

	for _, pattern := range socialLoose {
		m := pattern.FindStringSubmatch(finalText)
		if m == nil {
			continue
		}
		var posts []string
		for _, line := range strings.Split(m[1], "\n") {
			post := strings.TrimSpace(line)
			if len(post) > 10 && !strings.Contains(post, "**") {
				posts = append(posts, post)
			}
		}
		if len(posts) > 0 {
			return capN(posts, 4)
		}
	}

	// Numbered list items of tweetable length.
	if items := numberedItem.FindAllStringSubmatch(finalText, -1); len(items) >= 2 {
		var posts []string
		for _, item := range items {
			post := strings.TrimSpace(item[1])
			if len(post) > 20 && len(post) < 280 {
				posts = append(posts, post)
			}
		}
		if len(posts) > 0 {
			return capN(posts, 4)
		}
	}

	return []string{
		"🚀 Just published a comprehensive guide on this topic! Check it out and let me know your thoughts.",
		"💡 New insights on this important topic - everything you need to know in one place.",
		"🎯 Expert analysis and actionable tips in our latest blog post. Link in bio!",
		"⚡ Don't miss this deep dive into the latest trends and strategies. Worth the read!",
	}
}

func splitTrimmed(s, cutset string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(cutset, r)
	}) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func capN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
