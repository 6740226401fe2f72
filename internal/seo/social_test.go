package seo

import (
	"strings"
	"testing"
)

func TestGenerateSocialPosts(t *testing.T) {
	posts := GenerateSocialPosts("Solar Power", []string{"solar panels", "net metering", "inverters"})

	if len(posts) != 4 {
		t.Fatalf("got %d posts, want 4", len(posts))
	}
	if !strings.Contains(posts[0], "Solar Power") || !strings.Contains(posts[0], "solar panels") {
		t.Errorf("first post missing topic or keyword: %q", posts[0])
	}
	if !strings.Contains(posts[0], "#solarpanels") {
		t.Errorf("first post missing hashtag: %q", posts[0])
	}
	if !strings.Contains(posts[2], "#inverters") {
		t.Errorf("third post should hashtag the third keyword: %q", posts[2])
	}
}

func TestGenerateSocialPostsNoKeywords(t *testing.T) {
	posts := GenerateSocialPosts("Solar Power", nil)

	if len(posts) != 4 {
		t.Fatalf("got %d posts, want 4", len(posts))
	}
	for i, post := range posts {
		if post == "" {
			t.Errorf("post %d is empty", i)
		}
		if !strings.Contains(post, "Solar Power") {
			t.Errorf("post %d missing topic: %q", i, post)
		}
	}
}

func TestHashtag(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"solar panels", "solarpanels"},
		{"  spaced  out  ", "spacedout"},
		{"single", "single"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Hashtag(tt.keyword); got != tt.want {
			t.Errorf("Hashtag(%q) = %q, want %q", tt.keyword, got, tt.want)
		}
	}
}
