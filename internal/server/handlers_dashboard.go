package server

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	posts, err := s.db.ListPosts()
	if err != nil {
		slog.Error("Failed to list posts", "error", err)
		http.Error(w, "Internal error", 500)
		return
	}

	count, err := s.db.PostCount()
	if err != nil {
		slog.Error("Failed to count posts", "error", err)
	}

	categories, err := s.db.ListCategories()
	if err != nil {
		slog.Error("Failed to list categories", "error", err)
	}

	dbSize := "n/a"
	if size, err := s.db.DatabaseSizeBytes(); err == nil {
		dbSize = humanize.Bytes(uint64(size))
	} else {
		slog.Warn("Failed to stat database", "error", err)
	}

	s.render(w, "dashboard", map[string]any{
		"Page":          "dashboard",
		"Posts":         posts,
		"PostCount":     count,
		"Categories":    categories,
		"DatabaseSize":  dbSize,
		"Mode":          s.cfg.Generation.Mode,
		"TextProvider":  s.cfg.Generation.TextProvider,
		"ImagesEnabled": s.cfg.Generation.HuggingFaceAPIKey != "",
	})
}
