package models

import "time"

// BlogPost is the persisted form of a generated article. The slug is the
// public lookup key and never changes after creation.
type BlogPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Content     string   `json:"content,omitempty"`
	Excerpt     string   `json:"excerpt"`
	Category    string   `json:"category"`
	ReadTime    string   `json:"read_time"`
	PublishedAt string   `json:"published_at"`
	Keywords    []string `json:"keywords"`
	Image       string   `json:"image,omitempty"`
}

// Competitor is a single ranked search result for a topic.
type Competitor struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ContentPackage is the fully-populated output of one generation run.
// Every field always has a usable value; ImageURL is the one exception
// and is empty when image generation is unconfigured or failed.
type ContentPackage struct {
	Keywords           []string     `json:"keywords"`
	Competitors        []Competitor `json:"competitors"`
	CompetitorInsights string       `json:"competitor_insights"`
	ImageURL           string       `json:"image_url,omitempty"`
	Content            string       `json:"content"`
	SocialPosts        []string     `json:"social_posts"`
}

// ToolStep records one tool invocation made by the agent: which tool ran
// and the raw text it returned.
type ToolStep struct {
	ToolName string
	Output   string
}

// Session is a logged-in dashboard session.
type Session struct {
	ID        int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
