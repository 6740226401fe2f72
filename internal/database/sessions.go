package database

import (
	"database/sql"
	"errors"

	"github.com/alitypes/scribe/internal/models"
)

// CreateSession inserts a new session record.
func (db *DB) CreateSession(sess *models.Session) error {
	result, err := db.conn.Exec(
		`INSERT INTO sessions (token, expires_at) VALUES (?, ?)`,
		sess.Token, sess.ExpiresAt.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return err
	}
	sess.ID, _ = result.LastInsertId()
	return nil
}

// GetSession returns a session by token if it has not expired.
func (db *DB) GetSession(token string) (models.Session, error) {
	var s models.Session
	var expiresAt, createdAt string

	err := db.conn.QueryRow(`
		SELECT id, token, expires_at, created_at FROM sessions
		WHERE token = ? AND expires_at > datetime('now')`, token).
		Scan(&s.ID, &s.Token, &expiresAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	if err != nil {
		return s, err
	}

	s.ExpiresAt, _ = parseTime(expiresAt)
	s.CreatedAt, _ = parseTime(createdAt)
	return s, nil
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(token string) error {
	_, err := db.conn.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// DeleteExpiredSessions removes sessions past their expiry, returning the count.
func (db *DB) DeleteExpiredSessions() (int64, error) {
	result, err := db.conn.Exec(`DELETE FROM sessions WHERE expires_at <= datetime('now')`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
