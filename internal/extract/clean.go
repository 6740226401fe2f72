package extract

import (
	"regexp"
	"strings"
)

var (
	sectionHeading = regexp.MustCompile(`(?i)^(keywords?|competitors?|social media posts?):`)

	leakedKeywords    = regexp.MustCompile(`(?i)KEYWORDS:\s*[^\n]*`)
	leakedCompetitors = regexp.MustCompile(`(?i)COMPETITORS:\s*[^\n]*`)
	leakedImageURL    = regexp.MustCompile(`(?i)IMAGE_URL:\s*[^\n]*`)
	leakedSocialBlock = regexp.MustCompile(`(?i)SOCIAL_POSTS_START:[\s\S]*?SOCIAL_POSTS_END:`)
	leakedContentTags = regexp.MustCompile(`(?i)BLOG_CONTENT_START:|BLOG_CONTENT_END:`)

	extraBlankLines = regexp.MustCompile(`\n\n\n+`)
)

// CleanContent scrubs agent metadata out of blog markdown: embedded
// keyword, competitor, and social sections, leaked structured markers,
// and runs of blank lines. Cleaning already-clean content is a no-op, so
// the function is idempotent.
func CleanContent(content string) string {
	content = dropMetadataSections(content)

	content = leakedKeywords.ReplaceAllString(content, "")
	content = leakedCompetitors.ReplaceAllString(content, "")
	content = leakedImageURL.ReplaceAllString(content, "")
	content = leakedSocialBlock.ReplaceAllString(content, "")
	content = leakedContentTags.ReplaceAllString(content, "")

	content = extraBlankLines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// dropMetadataSections removes a metadata section from its heading line
// until the next blank line or markdown heading.
func dropMetadataSections(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0:0]
	skipping := false
	for _, line := range lines {
		if skipping {
			if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
				skipping = false
			} else {
				continue
			}
		}
		if sectionHeading.MatchString(line) {
			skipping = true
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
