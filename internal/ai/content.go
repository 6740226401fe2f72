package ai

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
)

// ContentGenerator writes the blog post body. When a text provider is
// configured it is asked first; on any failure (or with no provider at
// all) one of the long-form fallback templates is used instead, so
// generation always succeeds.
type ContentGenerator struct {
	provider Provider
	rng      *rand.Rand
}

// NewContentGenerator creates a content generator. provider may be nil.
// rng drives fallback template selection and is injectable so tests can
// pin the choice.
func NewContentGenerator(provider Provider, rng *rand.Rand) *ContentGenerator {
	return &ContentGenerator{provider: provider, rng: rng}
}

// Generate returns markdown starting with an H1 heading. It never fails.
func (g *ContentGenerator) Generate(ctx context.Context, topic string, keywords []string, competitorInsights string) string {
	if g.provider != nil {
		prompt := BuildContentPrompt(topic, keywords, competitorInsights)
		resp, err := g.provider.Chat(ctx, ChatRequest{
			Messages:    []Message{{Role: "user", Content: prompt}},
			Temperature: 0.7,
			MaxTokens:   8192,
		})
		if err != nil {
			slog.Warn("Text generation failed, using template content", "topic", topic, "provider", g.provider.Name(), "error", err)
		} else if content := strings.TrimSpace(resp.Content); content != "" {
			slog.Info("Generated content", "topic", topic, "provider", resp.Provider, "tokens", resp.TokensUsed)
			return ensureHeading(content, topic)
		}
	}
	return g.fallbackContent(topic, keywords)
}

// BuildContentPrompt constructs the blog post prompt.
func BuildContentPrompt(topic string, keywords []string, competitorInsights string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write a comprehensive, SEO-optimized blog post about %q.\n\n", topic))
	sb.WriteString(fmt.Sprintf("Keywords to include: %s\n", strings.Join(keywords, ", ")))
	sb.WriteString(fmt.Sprintf("Competitor insights: %s\n\n", competitorInsights))
	sb.WriteString("Requirements:\n")
	sb.WriteString("- 2000+ words\n")
	sb.WriteString("- Proper markdown formatting with headers (H1, H2, H3)\n")
	sb.WriteString("- Include the keywords naturally throughout\n")
	sb.WriteString("- Professional, engaging tone\n")
	sb.WriteString("- Include actionable insights\n")
	sb.WriteString("- Add a compelling introduction and conclusion\n\n")
	sb.WriteString("Format as markdown starting with an H1 title.")
	return sb.String()
}

// ensureHeading guarantees the content starts with an H1.
func ensureHeading(content, topic string) string {
	if strings.HasPrefix(content, "#") {
		return content
	}
	return fmt.Sprintf("# %s\n\n%s", topic, content)
}

func (g *ContentGenerator) fallbackContent(topic string, keywords []string) string {
	kw := func(i int, fallback string) string {
		if i < len(keywords) && keywords[i] != "" {
			return keywords[i]
		}
		return fallback
	}

	templates := []func() string{
		func() string { return ultimateGuideTemplate(topic, kw) },
		func() string { return beginnersGuideTemplate(topic, kw) },
	}

	idx := 0
	if g.rng != nil {
		idx = g.rng.Intn(len(templates))
	}
	slog.Info("Using fallback content template", "topic", topic, "template", idx)
	return templates[idx]()
}

func ultimateGuideTemplate(topic string, kw func(int, string) string) string {
	return fmt.Sprintf(`# The Ultimate Guide to %[1]s

## Introduction

In today's digital landscape, understanding %[1]s has become more crucial than ever. This comprehensive guide will walk you through everything you need to know about %[2]s and related concepts.

## What is %[1]s?

%[1]s represents a significant opportunity for businesses and individuals alike. With the rise of %[3]s, mastering these concepts can give you a competitive edge.

## Key Benefits

- **Enhanced Performance**: Implementing %[2]s strategies can dramatically improve your results
- **Cost Efficiency**: Smart approaches to %[1]s can reduce overhead while maximizing impact
- **Future-Proofing**: Stay ahead of trends with cutting-edge %[4]s

## Best Practices

### 1. Strategic Planning
When approaching %[1]s, it's essential to have a clear strategy. Consider these factors:
- Target audience analysis
- Competitive landscape review
- Resource allocation

### 2. Implementation
Focus on %[2]s while maintaining quality standards. The key is to balance innovation with proven methodologies.

### 3. Optimization
Continuous improvement is crucial. Monitor your %[5]s and adjust accordingly.

## Common Mistakes to Avoid

- Rushing the implementation process
- Ignoring %[6]s
- Failing to measure results

## Conclusion

Mastering %[1]s requires dedication and the right approach. By focusing on %[2]s and following these guidelines, you'll be well on your way to success.

Remember, the key to effective %[1]s lies in understanding your audience and delivering value consistently.`,
		topic,
		kw(0, "the fundamentals"),
		kw(1, "digital transformation"),
		kw(2, "techniques"),
		kw(1, "metrics"),
		kw(2, "user feedback"))
}

func beginnersGuideTemplate(topic string, kw func(int, string) string) string {
	return fmt.Sprintf(`# %[1]s: A Complete Beginner's Guide

## Getting Started

Welcome to the world of %[1]s! Whether you're new to %[2]s or looking to improve your existing knowledge, this guide has you covered.

## Understanding the Basics

%[1]s encompasses several key areas:

### Core Concepts
- %[3]s
- %[4]s
- %[5]s

### Why %[1]s Matters

In recent years, %[2]s has become increasingly important for:
- Business growth
- Competitive advantage
- Customer satisfaction

## Step-by-Step Approach

### Phase 1: Foundation
Start with understanding the basics of %[2]s. This involves:
1. Research and analysis
2. Planning your approach
3. Setting clear objectives

### Phase 2: Implementation
Put your knowledge into practice:
- Apply %[6]s
- Monitor progress regularly
- Make data-driven adjustments

### Phase 3: Optimization
Refine your approach based on results:
- Analyze performance metrics
- Identify improvement opportunities
- Scale successful initiatives

## Tools and Resources

To succeed with %[1]s, consider these essential tools:
- Analytics platforms for measuring %[2]s
- Automation tools for %[7]s
- Community resources for ongoing learning

## Real-World Examples

Let's look at how successful companies approach %[1]s:

**Case Study 1**: A company focused on %[2]s and saw 150%% improvement in their results.

**Case Study 2**: By implementing %[6]s, another business reduced costs by 30%%.

## Future Trends

The landscape of %[1]s is constantly evolving. Key trends to watch:
- Integration with %[8]s
- Increased focus on %[2]s
- Growing importance of data-driven decisions

## Conclusion

%[1]s offers tremendous opportunities for those willing to invest the time and effort. Start with the basics, focus on %[2]s, and gradually build your expertise.

Success in %[1]s doesn't happen overnight, but with consistent effort and the right approach, you can achieve remarkable results.`,
		topic,
		kw(0, "the fundamentals"),
		kw(0, "Fundamental principles"),
		kw(1, "Best practices"),
		kw(2, "Advanced techniques"),
		kw(1, "proven strategies"),
		kw(1, "efficiency"),
		kw(2, "emerging technologies"))
}
