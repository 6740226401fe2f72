package seo

import (
	"strings"
	"testing"

	"github.com/alitypes/scribe/internal/models"
)

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{
			name: "redirect wrapper",
			link: "/url?q=https://example.com/guide&sa=U&ved=abc",
			want: "https://example.com/guide",
		},
		{
			name: "direct link untouched",
			link: "https://example.com/direct",
			want: "https://example.com/direct",
		},
		{
			name: "wrapper without q",
			link: "/url?sa=U&ved=abc",
			want: "/url?sa=U&ved=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unwrapRedirect(tt.link); got != tt.want {
				t.Errorf("unwrapRedirect(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

func TestPlaceholderCompetitors(t *testing.T) {
	got := placeholderCompetitors("Solar Power")

	if len(got) != 3 {
		t.Fatalf("got %d placeholders, want 3", len(got))
	}
	if got[0].Title != "Ultimate Guide to Solar Power" {
		t.Errorf("first title = %q", got[0].Title)
	}
	if got[0].URL != "https://example.com/solar-power-guide" {
		t.Errorf("first url = %q", got[0].URL)
	}
	if got[2].URL != "https://demo.com/solar-power-complete-guide" {
		t.Errorf("third url = %q", got[2].URL)
	}
}

func TestCompetitorInsightsBase(t *testing.T) {
	competitors := []models.Competitor{
		{Title: "Plain Article", URL: "https://a.example"},
		{Title: "Another Plain One", URL: "https://b.example"},
	}

	got := competitorInsights(competitors)

	if !strings.HasPrefix(got, "Analysis of top 2 search results") {
		t.Errorf("insights should open with the competitor count: %q", got)
	}
	if strings.Contains(got, "guide-style content") {
		t.Error("guide sentence should not appear without matching titles")
	}
}

func TestCompetitorInsightsTriggerSentences(t *testing.T) {
	competitors := []models.Competitor{
		{Title: "Ultimate Guide to X", URL: "https://a.example"},
		{Title: "X: Best Practices and Tips", URL: "https://b.example"},
		{Title: "Everything You Need to Know About X", URL: "https://c.example"},
	}

	got := competitorInsights(competitors)

	for _, want := range []string{
		"comprehensive guide-style content",
		"actionable tips and best practice recommendations",
		"complete resources for this topic",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("insights missing trigger sentence %q:\n%s", want, got)
		}
	}
}

func TestCompetitorInsightsPlaceholdersTriggerAll(t *testing.T) {
	// Placeholder titles contain guide, tips, and complete/everything, so
	// the fallback path always produces the full set of observations.
	got := competitorInsights(placeholderCompetitors("anything"))
	if !strings.Contains(got, "guide-style content") || !strings.Contains(got, "complete resources") {
		t.Errorf("placeholder insights incomplete:\n%s", got)
	}
}
