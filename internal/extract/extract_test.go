package extract

import (
	"strings"
	"testing"

	"github.com/alitypes/scribe/internal/models"
)

func TestParseToolKeywords(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "report prefix stripped",
			output: "Using researched keywords: ai tools, machine learning, deep learning",
			want:   []string{"ai tools", "machine learning", "deep learning"},
		},
		{
			name:   "newline separated",
			output: "seo basics\ncontent strategy\nlink building",
			want:   []string{"seo basics", "content strategy", "link building"},
		},
		{
			name:   "short and narrative words filtered",
			output: "ai, ml, using fallback keywords, keyword research",
			want:   []string{"keyword research"},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseToolKeywords(tt.output)
			if len(got) != len(tt.want) {
				t.Fatalf("parseToolKeywords() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("keyword[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseToolKeywordsCap(t *testing.T) {
	parts := make([]string, 15)
	for i := range parts {
		parts[i] = strings.Repeat("kw", 2) + string(rune('a'+i))
	}
	got := parseToolKeywords(strings.Join(parts, ", "))
	if len(got) != 10 {
		t.Errorf("got %d keywords, want 10", len(got))
	}
}

func TestParseToolCompetitors(t *testing.T) {
	output := "Found 3 competitors: Ultimate Guide (https://example.com/guide); Top Tips (https://sample.com/tips); Complete Overview (https://demo.com/overview)"
	competitors, insights := parseToolCompetitors(output)

	if len(competitors) != 3 {
		t.Fatalf("got %d competitors, want 3", len(competitors))
	}
	if competitors[0].Title != "Ultimate Guide" || competitors[0].URL != "https://example.com/guide" {
		t.Errorf("first competitor = %+v", competitors[0])
	}
	if competitors[2].Title != "Complete Overview" {
		t.Errorf("third competitor title = %q", competitors[2].Title)
	}
	if insights != strings.TrimSpace(output) {
		t.Errorf("insights should carry the full report, got %q", insights)
	}
}

func TestParseToolCompetitorsNoEntries(t *testing.T) {
	competitors, insights := parseToolCompetitors("no structured results today")
	if competitors != nil || insights != "" {
		t.Errorf("expected empty result, got %v / %q", competitors, insights)
	}
}

func TestParseToolImageURL(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
		ok     bool
	}{
		{
			name:   "success message",
			output: "Image generated successfully: /generated-images/ai-trends-1700000000000.jpg",
			want:   "/generated-images/ai-trends-1700000000000.jpg",
			ok:     true,
		},
		{
			name:   "bare path",
			output: "stored the banner at /generated-images/topic-123.jpg for the post",
			want:   "/generated-images/topic-123.jpg",
			ok:     true,
		},
		{
			name:   "relative path normalized",
			output: "see generated-images/topic-123.jpg",
			want:   "/generated-images/topic-123.jpg",
			ok:     true,
		},
		{
			name:   "saved-at phrasing",
			output: "Image saved to: /img/banner.png",
			want:   "/img/banner.png",
			ok:     true,
		},
		{
			name:   "no image",
			output: "image generation failed",
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseToolImageURL(tt.output)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseToolImageURL() = %q, %v, want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseToolContent(t *testing.T) {
	if got, ok := parseToolContent("# My Post\n\nShort but markdown."); !ok || !strings.HasPrefix(got, "# My Post") {
		t.Errorf("markdown content rejected: %q, %v", got, ok)
	}
	if _, ok := parseToolContent("a short note"); ok {
		t.Error("short non-markdown output should be rejected")
	}
	long := strings.Repeat("plain text without any heading ", 30)
	if _, ok := parseToolContent(long); !ok {
		t.Error("long plain output should be accepted")
	}
}

func TestKeywordsFromFinalTextMarker(t *testing.T) {
	text := "Here is the package.\n\nKEYWORDS: solar power, renewable energy, green tech\n\ndone"
	got := keywordsFromFinalText(text)
	want := []string{"solar power", "renewable energy", "green tech"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKeywordsFromFinalTextFallback(t *testing.T) {
	got := keywordsFromFinalText("nothing structured here at all")
	want := []string{"seo", "content", "marketing", "strategy"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInsightsFromFinalText(t *testing.T) {
	text := "COMPETITORS: Guide One, Guide Two\n\nrest"
	got := insightsFromFinalText(text)
	if got != "Found 2 competitors: Guide One, Guide Two" {
		t.Errorf("insights = %q", got)
	}

	if got := insightsFromFinalText("no mentions"); got != "Competitor analysis completed using web scraping tools." {
		t.Errorf("fallback insights = %q", got)
	}
}

func TestImageURLFromFinalTextMarkerWins(t *testing.T) {
	text := "IMAGE_URL: /generated-images/from-marker.jpg\nImage generated successfully: /generated-images/from-tool.jpg"
	got, ok := imageURLFromFinalText(text)
	if !ok || got != "/generated-images/from-marker.jpg" {
		t.Errorf("imageURLFromFinalText() = %q, %v", got, ok)
	}
}

func TestContentFromFinalTextBlock(t *testing.T) {
	body := "# Solar Power\n\n" + strings.Repeat("Solar panels convert sunlight into electricity. ", 5)
	text := "preamble\n\nBLOG_CONTENT_START:\n" + body + "\nBLOG_CONTENT_END:\n\nKEYWORDS: solar"
	got := contentFromFinalText(text, "Solar Power")
	if !strings.HasPrefix(got, "# Solar Power") {
		t.Errorf("content should start with heading, got %q", got[:40])
	}
	if strings.Contains(got, "BLOG_CONTENT") || strings.Contains(got, "KEYWORDS:") {
		t.Error("markers leaked into content")
	}
}

func TestContentFromFinalTextMarkdownHeuristic(t *testing.T) {
	body := "# Wind Energy\n\n" + strings.Repeat("Wind turbines capture kinetic energy from moving air. ", 12)
	text := "Some chatter first.\n" + body + "\n\nKEYWORDS: wind, turbines"
	got := contentFromFinalText(text, "Wind Energy")
	if !strings.HasPrefix(got, "# Wind Energy") {
		t.Errorf("heuristic should find markdown block, got %q", got[:40])
	}
	if strings.Contains(got, "KEYWORDS:") {
		t.Error("trailing marker leaked into content")
	}
}

func TestContentFromFinalTextPlaceholder(t *testing.T) {
	got := contentFromFinalText("the agent rambled without producing anything usable", "Urban Gardening")
	if !strings.HasPrefix(got, "# Urban Gardening") {
		t.Errorf("placeholder should head with topic, got %q", got[:40])
	}
	if !strings.Contains(got, "## Introduction") || !strings.Contains(got, "## Conclusion") {
		t.Error("placeholder missing skeleton sections")
	}
}

func TestSocialPostsFromFinalTextBlock(t *testing.T) {
	text := `SOCIAL_POSTS_START:
1. 🚀 Big news about solar energy today!
2. 💡 Five things you didn't know about panels.
3. 📊 The numbers behind the solar boom.
4. 🎯 How to pick the right installer.
5. extra post beyond the cap goes here
SOCIAL_POSTS_END:`
	got := socialPostsFromFinalText(text)
	if len(got) != 4 {
		t.Fatalf("got %d posts, want 4", len(got))
	}
	if got[0] != "🚀 Big news about solar energy today!" {
		t.Errorf("first post = %q", got[0])
	}
}

func TestSocialPostsFromFinalTextNumbered(t *testing.T) {
	text := `Summary of the work:
1. This is a tweetable insight about the topic at hand.
2. Another sharable line that fits well within a tweet.
3. ok`
	got := socialPostsFromFinalText(text)
	if len(got) != 2 {
		t.Fatalf("got %d posts, want 2: %v", len(got), got)
	}
}

func TestSocialPostsFromFinalTextFallback(t *testing.T) {
	got := socialPostsFromFinalText("nothing here")
	if len(got) != 4 {
		t.Fatalf("got %d posts, want 4", len(got))
	}
	for _, post := range got {
		if len(post) < 10 {
			t.Errorf("fallback post too short: %q", post)
		}
	}
}

func TestCleanContent(t *testing.T) {
	dirty := `# Title

Body paragraph one.

Keywords: a, b, c
more keyword lines

## Section

KEYWORDS: leaked, markers
IMAGE_URL: /generated-images/x.jpg

SOCIAL_POSTS_START:
1. post
SOCIAL_POSTS_END:

Final paragraph.`
	got := CleanContent(dirty)

	for _, leaked := range []string{"Keywords:", "KEYWORDS:", "IMAGE_URL:", "SOCIAL_POSTS"} {
		if strings.Contains(got, leaked) {
			t.Errorf("cleaned content still contains %q:\n%s", leaked, got)
		}
	}
	if !strings.Contains(got, "## Section") || !strings.Contains(got, "Final paragraph.") {
		t.Error("cleaning removed real content")
	}
	if strings.Contains(got, "\n\n\n") {
		t.Error("blank lines not collapsed")
	}
}

func TestCleanContentIdempotent(t *testing.T) {
	dirty := "# Title\n\nBody.\n\nKEYWORDS: x, y\n\nMore."
	once := CleanContent(dirty)
	twice := CleanContent(once)
	if once != twice {
		t.Errorf("cleaning is not idempotent:\n%q\n%q", once, twice)
	}
}

func TestExtractPrefersToolOutputs(t *testing.T) {
	steps := []models.ToolStep{
		{ToolName: ToolKeywordResearch, Output: "Using researched keywords: rooftop solar, net metering, inverters"},
		{ToolName: ToolCompetitorAnalysis, Output: "Found 1 competitors: Solar Guide (https://example.com/solar)"},
		{ToolName: ToolImageGeneration, Output: "Image generated successfully: /generated-images/solar-1.jpg"},
		{ToolName: ToolContentGeneration, Output: "# Rooftop Solar\n\nA proper article body."},
	}
	finalText := "KEYWORDS: wrong, keywords\nIMAGE_URL: /generated-images/wrong.jpg"

	pkg := Extract("Rooftop Solar", finalText, steps)

	if len(pkg.Keywords) != 3 || pkg.Keywords[0] != "rooftop solar" {
		t.Errorf("keywords = %v", pkg.Keywords)
	}
	if len(pkg.Competitors) != 1 || pkg.Competitors[0].URL != "https://example.com/solar" {
		t.Errorf("competitors = %v", pkg.Competitors)
	}
	if pkg.ImageURL != "/generated-images/solar-1.jpg" {
		t.Errorf("image url = %q", pkg.ImageURL)
	}
	if !strings.HasPrefix(pkg.Content, "# Rooftop Solar") {
		t.Errorf("content = %q", pkg.Content)
	}
	if len(pkg.SocialPosts) != 4 {
		t.Errorf("got %d social posts, want 4", len(pkg.SocialPosts))
	}
}

func TestExtractFallsBackToFinalText(t *testing.T) {
	finalText := "KEYWORDS: geothermal, heat pumps\n\nBLOG_CONTENT_START:\n# Geothermal\n\n" +
		strings.Repeat("Ground-source systems move heat instead of making it. ", 4) +
		"\nBLOG_CONTENT_END:"

	pkg := Extract("Geothermal", finalText, nil)

	if len(pkg.Keywords) != 2 || pkg.Keywords[0] != "geothermal" {
		t.Errorf("keywords = %v", pkg.Keywords)
	}
	if !strings.HasPrefix(pkg.Content, "# Geothermal") {
		t.Errorf("content = %q", pkg.Content)
	}
	if pkg.ImageURL != "" {
		t.Errorf("image url should be empty, got %q", pkg.ImageURL)
	}
}

func TestExtractPlaceholderUsesTopic(t *testing.T) {
	pkg := Extract("Quantum Computing", "no markers, no markdown, no nothing", nil)
	if !strings.Contains(pkg.Content, "# Quantum Computing") {
		t.Errorf("placeholder heading missing topic: %q", pkg.Content[:60])
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	steps := []models.ToolStep{
		{ToolName: ToolKeywordResearch, Output: "alpha energy, beta storage"},
	}
	finalText := "KEYWORDS: gamma\n\n# A Post\n\nBody."

	a := Extract("Energy", finalText, steps)
	b := Extract("Energy", finalText, steps)

	if a.Content != b.Content || len(a.Keywords) != len(b.Keywords) || a.ImageURL != b.ImageURL {
		t.Error("repeated extraction differed")
	}
}
