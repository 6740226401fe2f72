package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alitypes/scribe/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

const postColumns = `id, title, slug, content, excerpt, category, read_time, published_at, keywords, image`

// CreatePost inserts a new blog post. The caller is responsible for having
// populated ID, slug, and the derived fields.
func (db *DB) CreatePost(p *models.BlogPost) error {
	keywords, err := json.Marshal(p.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO posts (id, title, slug, content, excerpt, category, read_time, published_at, keywords, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.Category,
		p.ReadTime, p.PublishedAt, string(keywords), p.Image)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetPostBySlug returns the newest post with the given slug, content included.
func (db *DB) GetPostBySlug(slug string) (models.BlogPost, error) {
	row := db.conn.QueryRow(`
		SELECT `+postColumns+` FROM posts
		WHERE slug = ? ORDER BY published_at DESC, created_at DESC LIMIT 1`, slug)
	return scanPost(row)
}

// GetPost returns a post by ID.
func (db *DB) GetPost(id string) (models.BlogPost, error) {
	row := db.conn.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// ListPosts returns all posts ordered by publish time descending.
// Content is omitted to keep listings light.
func (db *DB) ListPosts() ([]models.BlogPost, error) {
	rows, err := db.conn.Query(`
		SELECT id, title, slug, '', excerpt, category, read_time, published_at, keywords, image
		FROM posts ORDER BY published_at DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPostsByCategory returns posts in a category, newest first.
func (db *DB) ListPostsByCategory(category string) ([]models.BlogPost, error) {
	rows, err := db.conn.Query(`
		SELECT id, title, slug, '', excerpt, category, read_time, published_at, keywords, image
		FROM posts WHERE category = ? COLLATE NOCASE
		ORDER BY published_at DESC, created_at DESC`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListCategories returns the distinct categories in use.
func (db *DB) ListCategories() ([]string, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT category FROM posts ORDER BY category ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeletePost removes a post and its social posts in one transaction.
// Returns the deleted post so callers can clean up associated assets.
func (db *DB) DeletePost(id string) (models.BlogPost, error) {
	post, err := db.GetPost(id)
	if err != nil {
		return models.BlogPost{}, err
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return models.BlogPost{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		return models.BlogPost{}, fmt.Errorf("delete post: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM social_posts WHERE post_slug = ?`, post.Slug); err != nil {
		return models.BlogPost{}, fmt.Errorf("delete social posts: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.BlogPost{}, fmt.Errorf("delete post: %w", err)
	}
	return post, nil
}

// PostCount returns the number of stored posts.
func (db *DB) PostCount() (int, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (models.BlogPost, error) {
	var p models.BlogPost
	var keywords string

	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt,
		&p.Category, &p.ReadTime, &p.PublishedAt, &keywords, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, err
	}

	if err := json.Unmarshal([]byte(keywords), &p.Keywords); err != nil {
		p.Keywords = nil
	}
	return p, nil
}
