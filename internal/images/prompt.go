package images

import (
	"fmt"
	"strings"
)

// promptBuckets map topic substrings to a scene description and a style.
// The scene format slots in the topic's top keywords. Order matters:
// first match wins.
var promptBuckets = []struct {
	matches []string
	scene   string
	style   string
}{
	{
		matches: []string{"climate", "environment"},
		scene:   "Beautiful earth from space showing green forests and blue oceans, %s, environmental conservation",
		style:   "photorealistic, nature photography, vibrant colors",
	},
	{
		matches: []string{"ai", "artificial intelligence", "tech"},
		scene:   "Futuristic AI technology concept, %s, digital innovation, neural networks",
		style:   "sci-fi, digital art, blue and purple tones",
	},
	{
		matches: []string{"business", "marketing"},
		scene:   "Modern business office environment, %s, professional workspace, growth charts",
		style:   "corporate, professional photography, bright lighting",
	},
	{
		matches: []string{"health", "wellness"},
		scene:   "Healthy lifestyle concept, %s, wellness and vitality",
		style:   "clean, minimalist, natural lighting",
	},
	{
		matches: []string{"education", "learning"},
		scene:   "Educational concept with books and learning materials, %s, knowledge and growth",
		style:   "academic, inspiring, warm lighting",
	},
}

// BuildImagePrompt composes a text-to-image prompt from the topic bucket
// and up to three keywords.
func BuildImagePrompt(topic string, keywords []string) string {
	topKeywords := keywords
	if len(topKeywords) > 3 {
		topKeywords = topKeywords[:3]
	}
	joined := strings.Join(topKeywords, ", ")

	base, style := scenePrompt(topic, joined)
	return fmt.Sprintf("%s, %s, high quality, detailed, 16:9 aspect ratio, blog header image", base, style)
}

func scenePrompt(topic, joinedKeywords string) (string, string) {
	topicLower := strings.ToLower(topic)
	for _, bucket := range promptBuckets {
		for _, m := range bucket.matches {
			if strings.Contains(topicLower, m) {
				return fmt.Sprintf(bucket.scene, joinedKeywords), bucket.style
			}
		}
	}
	base := fmt.Sprintf("Abstract concept representing %s, %s, innovation and progress", topic, joinedKeywords)
	return base, "modern, conceptual, professional"
}
