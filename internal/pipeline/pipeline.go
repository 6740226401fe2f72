// Package pipeline orchestrates content generation. Two strategies
// produce a ContentPackage for a topic: a fixed-order pipeline that
// calls each stage directly, and a tool-calling agent whose transcript
// is run through the structured extractor. Either way the service layer
// turns the package into a persisted blog post.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/alitypes/scribe/internal/agent"
	"github.com/alitypes/scribe/internal/extract"
	"github.com/alitypes/scribe/internal/models"
	"github.com/alitypes/scribe/internal/seo"
)

// ErrEmptyTopic is the only failure mode of content generation itself;
// every stage degrades to a fallback rather than erroring.
var ErrEmptyTopic = errors.New("topic is required")

// Runner produces a content package for a topic.
type Runner interface {
	Run(ctx context.Context, topic string) (models.ContentPackage, error)
}

// Pipeline runs the generation stages in fixed order, feeding each
// stage's output into the next.
type Pipeline struct {
	keywords    agent.KeywordResearcher
	competitors agent.CompetitorAnalyzer
	writer      agent.ContentWriter
	images      agent.ImageGenerator
}

func New(keywords agent.KeywordResearcher, competitors agent.CompetitorAnalyzer, writer agent.ContentWriter, images agent.ImageGenerator) *Pipeline {
	return &Pipeline{
		keywords:    keywords,
		competitors: competitors,
		writer:      writer,
		images:      images,
	}
}

// Run executes keyword research, competitor analysis, content writing,
// image generation, and social post generation in sequence. Only an
// empty topic fails.
func (p *Pipeline) Run(ctx context.Context, topic string) (models.ContentPackage, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return models.ContentPackage{}, ErrEmptyTopic
	}

	slog.Info("Starting content pipeline", "topic", topic)

	keywords := p.keywords.Research(ctx, topic)
	analysis := p.competitors.Analyze(ctx, topic)
	content := p.writer.Generate(ctx, topic, keywords, analysis.Insights)
	imageURL := p.images.Generate(ctx, topic, keywords)
	socialPosts := seo.GenerateSocialPosts(topic, keywords)

	slog.Info("Content pipeline finished",
		"topic", topic,
		"keywords", len(keywords),
		"competitors", len(analysis.Competitors),
		"image", imageURL != "")

	return models.ContentPackage{
		Keywords:           keywords,
		Competitors:        analysis.Competitors,
		CompetitorInsights: analysis.Insights,
		ImageURL:           imageURL,
		Content:            content,
		SocialPosts:        socialPosts,
	}, nil
}

// AgentRunner produces a content package by letting a tool-calling
// model drive the stages, then extracting structure from its output.
type AgentRunner struct {
	agent *agent.Agent
}

func NewAgentRunner(a *agent.Agent) *AgentRunner {
	return &AgentRunner{agent: a}
}

func (r *AgentRunner) Run(ctx context.Context, topic string) (models.ContentPackage, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return models.ContentPackage{}, ErrEmptyTopic
	}

	result, err := r.agent.Run(ctx, topic)
	if err != nil {
		return models.ContentPackage{}, err
	}
	return extract.Extract(topic, result.FinalText, result.Steps), nil
}
