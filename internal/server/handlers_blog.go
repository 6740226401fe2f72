package server

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/alitypes/scribe/internal/database"
	"github.com/alitypes/scribe/internal/models"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var posts []models.BlogPost
	var err error
	if category != "" {
		posts, err = s.db.ListPostsByCategory(category)
	} else {
		posts, err = s.db.ListPosts()
	}
	if err != nil {
		slog.Error("Failed to list posts", "error", err)
		http.Error(w, "Internal error", 500)
		return
	}

	categories, err := s.db.ListCategories()
	if err != nil {
		slog.Error("Failed to list categories", "error", err)
	}

	s.render(w, "home", map[string]any{
		"Page":       "home",
		"Posts":      posts,
		"Categories": categories,
		"Category":   category,
	})
}

func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	post, err := s.db.GetPostBySlug(slug)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("Failed to load post", "slug", slug, "error", err)
		http.Error(w, "Internal error", 500)
		return
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(post.Content), &buf); err != nil {
		slog.Error("Failed to render markdown", "slug", slug, "error", err)
		http.Error(w, "Internal error", 500)
		return
	}

	social, err := s.db.GetSocialPosts(slug)
	if err != nil {
		slog.Error("Failed to load social posts", "slug", slug, "error", err)
	}

	s.render(w, "post", map[string]any{
		"Page":        "post",
		"Post":        post,
		"ContentHTML": template.HTML(buf.String()),
		"SocialPosts": social,
	})
}
