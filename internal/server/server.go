// Package server is the HTTP layer: a public blog frontend, a
// session-protected dashboard, and the JSON API the dashboard drives.
package server

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	scribe "github.com/alitypes/scribe"
	"github.com/alitypes/scribe/internal/config"
	"github.com/alitypes/scribe/internal/database"
	"github.com/alitypes/scribe/internal/pipeline"
	"github.com/alitypes/scribe/internal/storage"
)

type Server struct {
	cfg     config.Config
	db      *database.DB
	svc     *pipeline.Service
	store   *storage.DiskStore
	version string
	pages   map[string]*template.Template
	httpSrv *http.Server
}

func New(cfg config.Config, db *database.DB, svc *pipeline.Service, store *storage.DiskStore, version string) *Server {
	return &Server{
		cfg:     cfg,
		db:      db,
		svc:     svc,
		store:   store,
		version: version,
	}
}

// Start loads templates, sets up routes, and starts the HTTP server.
func (s *Server) Start() error {
	if err := s.loadTemplates(); err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	mux := http.NewServeMux()
	s.routes(mux)

	handler := recoveryMiddleware(loggingMiddleware(mux))

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	slog.Info("Starting server", "addr", addr)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) routes(mux *http.ServeMux) {
	// Static assets and generated images — always public
	staticFS, _ := fs.Sub(scribe.StaticFS, "web/static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))
	mux.Handle("GET "+s.store.PublicPath()+"/",
		http.StripPrefix(s.store.PublicPath()+"/", http.FileServer(http.Dir(s.store.Dir()))))

	// Public blog frontend
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /blog/{slug}", s.handleBlogPost)

	// Auth routes — public
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLoginSubmit)
	mux.HandleFunc("POST /logout", s.handleLogout)

	// Dashboard and its API — protected by session auth
	mux.Handle("GET /dashboard", s.requireAuth(http.HandlerFunc(s.handleDashboard)))
	mux.Handle("POST /api/generate", s.requireAuth(http.HandlerFunc(s.handleGenerate)))
	mux.Handle("GET /api/posts", s.requireAuth(http.HandlerFunc(s.handleAPIPosts)))
	mux.Handle("GET /api/posts/{slug}", s.requireAuth(http.HandlerFunc(s.handleAPIPost)))
	mux.Handle("DELETE /api/posts/{id}", s.requireAuth(http.HandlerFunc(s.handleAPIPostDelete)))
	mux.Handle("GET /api/categories", s.requireAuth(http.HandlerFunc(s.handleAPICategories)))
}

func (s *Server) loadTemplates() error {
	funcMap := template.FuncMap{
		"safe": func(str string) template.HTML {
			return template.HTML(str)
		},
		"joinKeywords": func(keywords []string) string {
			out := ""
			for i, kw := range keywords {
				if i > 0 {
					out += ", "
				}
				out += kw
			}
			return out
		},
	}

	s.pages = make(map[string]*template.Template)

	pageNames := []string{"home", "post", "login", "dashboard"}
	for _, page := range pageNames {
		t, err := template.New("base.html").Funcs(funcMap).ParseFS(scribe.TemplateFS,
			"web/templates/layouts/base.html",
			"web/templates/pages/"+page+".html",
		)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", page, err)
		}
		s.pages[page] = t
	}

	return nil
}

// render executes a full page template.
func (s *Server) render(w http.ResponseWriter, page string, data map[string]any) {
	tmpl, ok := s.pages[page]
	if !ok {
		http.Error(w, "Template not found", 500)
		return
	}

	data["Version"] = s.version

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		slog.Error("Template execution error", "page", page, "error", err)
	}
}
