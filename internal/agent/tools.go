package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/alitypes/scribe/internal/ai"
	"github.com/alitypes/scribe/internal/extract"
	"github.com/alitypes/scribe/internal/models"
	"github.com/alitypes/scribe/internal/seo"
)

// KeywordResearcher finds keywords for a topic.
type KeywordResearcher interface {
	Research(ctx context.Context, topic string) []string
}

// CompetitorAnalyzer finds top-ranking pages for a topic.
type CompetitorAnalyzer interface {
	Analyze(ctx context.Context, topic string) seo.CompetitorAnalysis
}

// ContentWriter produces the blog post body.
type ContentWriter interface {
	Generate(ctx context.Context, topic string, keywords []string, competitorInsights string) string
}

// ImageGenerator produces and stores a banner image, returning its
// public URL or "" when unavailable.
type ImageGenerator interface {
	Generate(ctx context.Context, topic string, keywords []string) string
}

// Toolbox exposes the content pipeline's capabilities as callable tools
// and renders their results as natural-language reports for the model.
type Toolbox struct {
	keywords    KeywordResearcher
	competitors CompetitorAnalyzer
	writer      ContentWriter
	images      ImageGenerator
}

func NewToolbox(keywords KeywordResearcher, competitors CompetitorAnalyzer, writer ContentWriter, images ImageGenerator) *Toolbox {
	return &Toolbox{
		keywords:    keywords,
		competitors: competitors,
		writer:      writer,
		images:      images,
	}
}

// Decls describes the toolbox to a tool-calling model.
func (t *Toolbox) Decls() []ai.FunctionDecl {
	topicParam := map[string]any{"type": "string", "description": "The blog topic"}
	keywordsParam := map[string]any{"type": "string", "description": "Comma-separated keywords"}

	return []ai.FunctionDecl{
		{
			Name:        extract.ToolKeywordResearch,
			Description: "Research trending keywords for a given topic",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{"topic": topicParam},
				"required":   []string{"topic"},
			},
		},
		{
			Name:        extract.ToolCompetitorAnalysis,
			Description: "Analyze competitors by inspecting search results for a given topic",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{"topic": topicParam},
				"required":   []string{"topic"},
			},
		},
		{
			Name:        extract.ToolImageGeneration,
			Description: "Generate a blog banner image for a topic",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic":    topicParam,
					"keywords": keywordsParam,
				},
				"required": []string{"topic", "keywords"},
			},
		},
		{
			Name:        extract.ToolContentGeneration,
			Description: "Write an SEO-optimized blog post in markdown",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic":              topicParam,
					"keywords":           keywordsParam,
					"competitorInsights": map[string]any{"type": "string", "description": "Insights from competitor analysis"},
				},
				"required": []string{"topic", "keywords"},
			},
		},
		{
			Name:        extract.ToolSocialMedia,
			Description: "Generate social media posts promoting a blog topic",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic":    topicParam,
					"keywords": keywordsParam,
				},
				"required": []string{"topic", "keywords"},
			},
		},
	}
}

// Call executes one tool and returns its report. Unknown tool names get
// an error report rather than an error, keeping the conversation going.
func (t *Toolbox) Call(ctx context.Context, call ai.FunctionCall) string {
	topic := call.Args["topic"]
	keywords := splitKeywords(call.Args["keywords"])

	switch call.Name {
	case extract.ToolKeywordResearch:
		found := t.keywords.Research(ctx, topic)
		return fmt.Sprintf("Found %d trending keywords: %s", len(found), strings.Join(found, ", "))

	case extract.ToolCompetitorAnalysis:
		analysis := t.competitors.Analyze(ctx, topic)
		return fmt.Sprintf("Found %d competitors: %s\n\nInsights: %s",
			len(analysis.Competitors), formatCompetitors(analysis.Competitors), analysis.Insights)

	case extract.ToolImageGeneration:
		url := t.images.Generate(ctx, topic, keywords)
		if url == "" {
			return "Image generation unavailable, continuing without a banner image"
		}
		return fmt.Sprintf("Image generated successfully: %s", url)

	case extract.ToolContentGeneration:
		return t.writer.Generate(ctx, topic, keywords, call.Args["competitorInsights"])

	case extract.ToolSocialMedia:
		posts := seo.GenerateSocialPosts(topic, keywords)
		var sb strings.Builder
		sb.WriteString("Social Media Posts Generated:")
		for i, post := range posts {
			sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, post))
		}
		return sb.String()

	default:
		return fmt.Sprintf("Unknown tool: %s", call.Name)
	}
}

func formatCompetitors(competitors []models.Competitor) string {
	entries := make([]string, len(competitors))
	for i, c := range competitors {
		entries[i] = fmt.Sprintf("%s (%s)", c.Title, c.URL)
	}
	return strings.Join(entries, "; ")
}

func splitKeywords(s string) []string {
	var keywords []string
	for _, part := range strings.Split(s, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
