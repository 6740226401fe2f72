package seo

import (
	"fmt"
	"strings"
)

// GenerateSocialPosts produces exactly 4 short promotional posts for a
// topic. Pure templating, no external calls.
func GenerateSocialPosts(topic string, keywords []string) []string {
	kw := func(i int, fallback string) string {
		if i < len(keywords) && keywords[i] != "" {
			return keywords[i]
		}
		return fallback
	}

	return []string{
		fmt.Sprintf("🚀 Just published a comprehensive guide on %s! Learn how %s can transform your strategy. What's your experience with %s? #%s",
			topic, kw(0, "this topic"), kw(1, "this topic"), Hashtag(kw(0, "trending"))),
		fmt.Sprintf("💡 Quick tip: The secret to mastering %s lies in understanding %s. Here's what I've learned after years of experience... Thread 🧵 #%s",
			topic, kw(0, "the fundamentals"), Hashtag(kw(1, "tips"))),
		fmt.Sprintf("📊 Interesting fact: Companies that focus on %s see 3x better results than those who don't. How are you implementing %s in your workflow? #%s",
			kw(0, "this"), topic, Hashtag(kw(2, "business"))),
		fmt.Sprintf("🎯 New blog post alert! Everything you need to know about %s in one comprehensive guide. From %s to advanced strategies - it's all covered! Link in bio 👆",
			topic, kw(0, "the basics")),
	}
}

// Hashtag turns a keyword into a hashtag-safe token by removing whitespace.
func Hashtag(keyword string) string {
	return strings.Join(strings.Fields(keyword), "")
}
