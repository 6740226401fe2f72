package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alitypes/scribe/internal/database"
	"github.com/alitypes/scribe/internal/pipeline"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	post, pkg, err := s.svc.Generate(r.Context(), req.Topic)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyTopic) {
			jsonError(w, "Topic is required", http.StatusBadRequest)
			return
		}
		slog.Error("Content generation failed", "topic", req.Topic, "error", err)
		jsonError(w, "Failed to generate content", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]any{
		"success":            true,
		"slug":               post.Slug,
		"title":              post.Title,
		"keywords":           post.Keywords,
		"competitors":        pkg.Competitors,
		"competitorInsights": pkg.CompetitorInsights,
		"socialPosts":        pkg.SocialPosts,
		"imageUrl":           post.Image,
		"message":            "Content generated successfully",
	})
}

func (s *Server) handleAPIPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.db.ListPosts()
	if err != nil {
		slog.Error("API: failed to list posts", "error", err)
		jsonError(w, "Failed to list posts", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]any{"posts": posts})
}

func (s *Server) handleAPIPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	post, err := s.db.GetPostBySlug(slug)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			jsonError(w, "Post not found", http.StatusNotFound)
			return
		}
		slog.Error("API: failed to load post", "slug", slug, "error", err)
		jsonError(w, "Failed to load post", http.StatusInternalServerError)
		return
	}

	social, _ := s.db.GetSocialPosts(slug)

	jsonResponse(w, map[string]any{
		"post":        post,
		"socialPosts": social,
	})
}

func (s *Server) handleAPIPostDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	post, err := s.db.DeletePost(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			jsonError(w, "Post not found", http.StatusNotFound)
			return
		}
		slog.Error("API: failed to delete post", "id", id, "error", err)
		jsonError(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}

	s.removeStoredImage(post.Image)

	slog.Info("Post deleted", "id", id, "slug", post.Slug)
	jsonResponse(w, map[string]any{"success": true, "slug": post.Slug})
}

func (s *Server) handleAPICategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.db.ListCategories()
	if err != nil {
		slog.Error("API: failed to list categories", "error", err)
		jsonError(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]any{"categories": categories})
}

// removeStoredImage deletes a post's banner from disk when it lives in
// the managed image directory. Best effort.
func (s *Server) removeStoredImage(imageURL string) {
	prefix := s.store.PublicPath() + "/"
	if !strings.HasPrefix(imageURL, prefix) {
		return
	}
	if err := s.store.Remove(strings.TrimPrefix(imageURL, prefix)); err != nil {
		slog.Warn("Failed to remove stored image", "url", imageURL, "error", err)
	}
}

func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
