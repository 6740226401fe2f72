package database

import "fmt"

// SaveSocialPosts replaces the stored promotional posts for a slug.
func (db *DB) SaveSocialPosts(slug string, posts []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM social_posts WHERE post_slug = ?`, slug); err != nil {
		return fmt.Errorf("clear social posts: %w", err)
	}

	for i, content := range posts {
		if _, err := tx.Exec(
			`INSERT INTO social_posts (post_slug, position, content) VALUES (?, ?, ?)`,
			slug, i, content); err != nil {
			return fmt.Errorf("insert social post: %w", err)
		}
	}

	return tx.Commit()
}

// GetSocialPosts returns the promotional posts for a slug in original order.
func (db *DB) GetSocialPosts(slug string) ([]string, error) {
	rows, err := db.conn.Query(
		`SELECT content FROM social_posts WHERE post_slug = ? ORDER BY position ASC`, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		posts = append(posts, content)
	}
	return posts, rows.Err()
}
