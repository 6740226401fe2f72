// Package agent drives a tool-calling model through the content
// pipeline. Instead of invoking each stage in a fixed order, the model
// decides which tools to call and composes the final content package
// itself; every tool invocation is recorded so the structured extractor
// can recover results the model fails to report.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alitypes/scribe/internal/ai"
	"github.com/alitypes/scribe/internal/models"
)

const maxIterations = 10

const systemPrompt = `You are an expert SEO content creation agent with access to specialized tools.

Your job is to create comprehensive content packages by using ALL available tools in sequence:

1. ALWAYS start with keyword_research tool to find trending keywords
2. Then use competitor_analysis tool to understand the competitive landscape
3. Use content_generation tool to write the blog post (using keywords and competitor insights)
4. Use image_generation tool to create a blog banner image
5. Finally use social_media_generation tool to create promotional posts

After using all tools, provide the results in this EXACT format (as plain text):

KEYWORDS: keyword1, keyword2, keyword3, keyword4, keyword5
COMPETITORS: competitor1|url1, competitor2|url2, competitor3|url3
IMAGE_URL: /generated-images/filename.jpg
BLOG_CONTENT_START:
[paste the full blog content here]
BLOG_CONTENT_END:
SOCIAL_POSTS_START:
1. [social post 1]
2. [social post 2]
3. [social post 3]
4. [social post 4]
SOCIAL_POSTS_END:

This format makes it easy to extract each piece of data. Always use ALL the tools and provide results in this exact format.`

// Agent runs the tool-calling conversation loop.
type Agent struct {
	llm   ai.ToolCaller
	tools *Toolbox
}

func New(llm ai.ToolCaller, tools *Toolbox) *Agent {
	return &Agent{llm: llm, tools: tools}
}

// Result is the agent's final text plus the recorded tool invocations.
type Result struct {
	FinalText string
	Steps     []models.ToolStep
}

// Run converses with the model until it stops requesting tools or the
// iteration cap is reached. The recorded steps are returned even when
// the conversation ends at the cap.
func (a *Agent) Run(ctx context.Context, topic string) (*Result, error) {
	decls := a.tools.Decls()
	history := []ai.ToolMessage{{Role: "user", Text: userPrompt(topic)}}

	var steps []models.ToolStep
	lastText := ""

	for i := 0; i < maxIterations; i++ {
		turn, err := a.llm.ChatTools(ctx, systemPrompt, history, decls)
		if err != nil {
			return nil, fmt.Errorf("agent turn %d: %w", i+1, err)
		}

		if turn.Text != "" {
			lastText = turn.Text
		}
		history = append(history, ai.ToolMessage{Role: "model", Text: turn.Text, Calls: turn.Calls})

		if len(turn.Calls) == 0 {
			slog.Info("Agent finished", "topic", topic, "iterations", i+1, "steps", len(steps))
			return &Result{FinalText: turn.Text, Steps: steps}, nil
		}

		for _, call := range turn.Calls {
			slog.Info("Agent tool call", "tool", call.Name, "topic", topic)
			output := a.tools.Call(ctx, call)
			steps = append(steps, models.ToolStep{ToolName: call.Name, Output: output})
			history = append(history, ai.ToolMessage{
				Role:     "tool",
				Response: &ai.FunctionResponse{Name: call.Name, Content: output},
			})
		}
	}

	slog.Warn("Agent hit iteration cap", "topic", topic, "steps", len(steps))
	return &Result{FinalText: lastText, Steps: steps}, nil
}

func userPrompt(topic string) string {
	return fmt.Sprintf(`I need you to act as a comprehensive SEO content creation agent for the topic: %q.

Please execute the following tasks in sequence:

1. First, use the keyword_research tool to find trending keywords related to %q
2. Then, use the competitor_analysis tool to analyze what competitors are doing for %q
3. Next, use the image_generation tool to create a relevant blog banner image for %q
4. Then, use the content_generation tool to write a comprehensive blog post about %q using the keywords and competitor insights you found
5. Finally, provide 4 social media posts that promote this content

Make sure to use the actual tool outputs to inform each subsequent step.`, topic, topic, topic, topic, topic)
}
