package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alitypes/scribe/internal/auth"
	"github.com/alitypes/scribe/internal/models"
)

const sessionTTL = 7 * 24 * time.Hour

// isHTTPS checks if the original request was made over HTTPS by examining
// the X-Forwarded-Proto header (set by reverse proxies) or the TLS state.
func isHTTPS(r *http.Request) bool {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}
	return r.TLS != nil
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", map[string]any{"Page": "login"})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.render(w, "login", map[string]any{
			"Page":  "login",
			"Error": "Email and password are required",
		})
		return
	}

	if !auth.VerifyCredentials(s.cfg.Auth, email, password) {
		slog.Debug("Login failed", "email", email)
		s.render(w, "login", map[string]any{
			"Page":  "login",
			"Error": "Invalid email or password",
		})
		return
	}

	token, err := auth.GenerateToken()
	if err != nil {
		slog.Error("Failed to generate session token", "error", err)
		http.Error(w, "Internal error", 500)
		return
	}

	sess := &models.Session{
		Token:     token,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.db.CreateSession(sess); err != nil {
		slog.Error("Failed to create session", "error", err)
		http.Error(w, "Internal error", 500)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	slog.Info("User logged in", "email", email)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.db.DeleteSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
