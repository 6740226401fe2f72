// Package extract recovers a structured content package from a
// tool-calling agent's transcript. The agent is asked to emit structured
// markers, but compliance is not guaranteed, so every field is resolved
// through a cascade of parsers: per-tool output first, structured markers
// in the final text second, looser heuristics third, and a synthesized
// placeholder last. Extraction never fails and is a pure function of its
// input.
package extract

import (
	"regexp"

	"github.com/alitypes/scribe/internal/models"
)

// Tool names as the agent sees them.
const (
	ToolKeywordResearch    = "keyword_research"
	ToolCompetitorAnalysis = "competitor_analysis"
	ToolContentGeneration  = "content_generation"
	ToolImageGeneration    = "image_generation"
	ToolSocialMedia        = "social_media_generation"
)

// Extract builds a fully-populated ContentPackage from the agent's final
// text and its recorded tool invocations. topic seeds the placeholder
// content when nothing usable can be recovered; when empty, a topic is
// derived from the final text itself.
func Extract(topic, finalText string, steps []models.ToolStep) models.ContentPackage {
	pkg := fromToolSteps(steps)

	if len(pkg.Keywords) == 0 {
		pkg.Keywords = keywordsFromFinalText(finalText)
	}
	if pkg.CompetitorInsights == "" {
		pkg.CompetitorInsights = insightsFromFinalText(finalText)
	}
	if pkg.ImageURL == "" {
		if url, ok := imageURLFromFinalText(finalText); ok {
			pkg.ImageURL = url
		}
	}
	if pkg.Content == "" {
		pkg.Content = contentFromFinalText(finalText, resolveTopic(topic, finalText))
	}

	// The social tool's raw output is a numbered list embedded in the
	// agent's narrative, so posts always come from the final text.
	pkg.SocialPosts = socialPostsFromFinalText(finalText)

	return pkg
}

// fromToolSteps runs the tier-1 parsers over recorded tool outputs.
func fromToolSteps(steps []models.ToolStep) models.ContentPackage {
	var pkg models.ContentPackage
	for _, step := range steps {
		switch step.ToolName {
		case ToolKeywordResearch:
			if kws := parseToolKeywords(step.Output); len(kws) > 0 {
				pkg.Keywords = kws
			}
		case ToolCompetitorAnalysis:
			competitors, insights := parseToolCompetitors(step.Output)
			if len(competitors) > 0 {
				pkg.Competitors = competitors
			}
			if insights != "" {
				pkg.CompetitorInsights = insights
			}
		case ToolImageGeneration:
			if url, ok := parseToolImageURL(step.Output); ok {
				pkg.ImageURL = url
			}
		case ToolContentGeneration:
			if content, ok := parseToolContent(step.Output); ok {
				pkg.Content = content
			}
		}
	}
	return pkg
}

var topicPattern = regexp.MustCompile(`(?i)topic[:\s]+"([^"]+)"`)

// resolveTopic prefers the caller-supplied topic, falling back to a
// quoted topic mention in the agent's text.
func resolveTopic(topic, finalText string) string {
	if topic != "" {
		return topic
	}
	if m := topicPattern.FindStringSubmatch(finalText); m != nil {
		return m[1]
	}
	return "Generated Content Topic"
}

// first returns the first successful result from a chain of candidate
// extractors. Pattern order is load-bearing throughout this package.
func first[T any](candidates ...func() (T, bool)) (T, bool) {
	for _, candidate := range candidates {
		if v, ok := candidate(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
