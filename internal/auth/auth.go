package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/alitypes/scribe/internal/config"
)

// VerifyCredentials checks a login attempt against the configured single
// operator account. A bcrypt hash is preferred when present; otherwise the
// plaintext password from the config is compared in constant time.
func VerifyCredentials(cfg config.AuthConfig, email, password string) bool {
	if cfg.Email == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(cfg.Email), []byte(email)) != 1 {
		return false
	}

	if cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(password)) == nil
	}
	if cfg.Password != "" {
		return subtle.ConstantTimeCompare([]byte(cfg.Password), []byte(password)) == 1
	}
	return false
}

// HashPassword hashes a plaintext password using bcrypt with cost 12.
// Used by operators to produce a password_hash for the config file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// GenerateToken produces a cryptographically random token suitable for
// session IDs (32 bytes, base64url-encoded, 43 characters).
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
