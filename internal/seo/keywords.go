package seo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alitypes/scribe/internal/trends"
)

// TrendsSource is the slice of the trends client this package needs.
type TrendsSource interface {
	RelatedQueries(ctx context.Context, keyword string) (*trends.RelatedQueries, error)
}

// fallbackKeywords maps topic substrings to curated keyword lists used
// when the trends lookup fails or comes back empty. Ordered so that a
// topic matching several buckets always resolves the same way.
var fallbackKeywords = []struct {
	match    string
	keywords []string
}{
	{"climate change", []string{"global warming", "carbon emissions", "renewable energy", "sustainability", "greenhouse gases", "environmental impact", "clean energy", "climate action"}},
	{"ai", []string{"artificial intelligence", "machine learning", "deep learning", "neural networks", "automation", "chatgpt", "generative ai", "ai tools"}},
	{"seo", []string{"search engine optimization", "keyword research", "backlinks", "content marketing", "SERP ranking", "google algorithm", "organic traffic", "seo tools"}},
	{"fashion", []string{"sustainable fashion", "fashion trends", "style guide", "fashion week", "designer brands", "fast fashion", "clothing trends", "fashion industry"}},
	{"business", []string{"entrepreneurship", "startup", "business strategy", "leadership", "market analysis", "business growth", "digital transformation", "business model"}},
}

var genericKeywords = []string{"trending", "popular", "guide", "tips", "best practices", "how to", "benefits", "examples"}

// KeywordResearcher resolves trending keywords for a topic, degrading to
// static lists when the trends provider is unavailable.
type KeywordResearcher struct {
	trends TrendsSource
}

func NewKeywordResearcher(source TrendsSource) *KeywordResearcher {
	return &KeywordResearcher{trends: source}
}

// Research returns up to 10 lowercase, deduplicated keywords for a topic.
// It never fails and never returns an empty slice.
func (r *KeywordResearcher) Research(ctx context.Context, topic string) []string {
	if r.trends != nil {
		related, err := r.trends.RelatedQueries(ctx, topic)
		if err != nil {
			slog.Warn("Trends lookup failed, using fallback keywords", "topic", topic, "error", err)
		} else if keywords := mergeRelatedQueries(related); len(keywords) > 0 {
			slog.Info("Found trending keywords", "topic", topic, "count", len(keywords))
			return keywords
		} else {
			slog.Warn("Trends lookup returned no usable data", "topic", topic)
		}
	}
	return FallbackKeywords(topic)
}

// mergeRelatedQueries takes up to 5 rising and 5 top queries, lowercases
// them, and deduplicates preserving first-seen order, capped at 10.
func mergeRelatedQueries(related *trends.RelatedQueries) []string {
	if related == nil {
		return nil
	}

	var merged []string
	merged = append(merged, firstN(related.Rising, 5)...)
	merged = append(merged, firstN(related.Top, 5)...)

	seen := make(map[string]bool, len(merged))
	keywords := make([]string, 0, len(merged))
	for _, q := range merged {
		q = strings.ToLower(strings.TrimSpace(q))
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		keywords = append(keywords, q)
		if len(keywords) == 10 {
			break
		}
	}
	return keywords
}

// FallbackKeywords returns the curated list whose bucket key appears in
// the topic, or a generic list when nothing matches.
func FallbackKeywords(topic string) []string {
	topicLower := strings.ToLower(topic)
	for _, bucket := range fallbackKeywords {
		if strings.Contains(topicLower, bucket.match) {
			return bucket.keywords
		}
	}
	return genericKeywords
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
