package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/alitypes/scribe/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func samplePost(id, slug string) *models.BlogPost {
	return &models.BlogPost{
		ID:          id,
		Title:       "Solar Power Guide",
		Slug:        slug,
		Content:     "# Solar Power Guide\n\nBody text.",
		Excerpt:     "Body text.",
		Category:    "Technology",
		ReadTime:    "1 min read",
		PublishedAt: "2025-06-01",
		Keywords:    []string{"solar", "panels"},
		Image:       "/generated-images/solar.jpg",
	}
}

func TestCreateAndGetPost(t *testing.T) {
	db := newTestDB(t)

	post := samplePost("id-1", "solar-power-guide")
	if err := db.CreatePost(post); err != nil {
		t.Fatalf("CreatePost() error: %v", err)
	}

	got, err := db.GetPostBySlug("solar-power-guide")
	if err != nil {
		t.Fatalf("GetPostBySlug() error: %v", err)
	}
	if got.ID != "id-1" || got.Title != "Solar Power Guide" {
		t.Errorf("got %+v", got)
	}
	if got.Content != post.Content {
		t.Errorf("content = %q", got.Content)
	}
	if len(got.Keywords) != 2 || got.Keywords[0] != "solar" {
		t.Errorf("keywords = %v", got.Keywords)
	}

	byID, err := db.GetPost("id-1")
	if err != nil {
		t.Fatalf("GetPost() error: %v", err)
	}
	if byID.Slug != "solar-power-guide" {
		t.Errorf("slug = %q", byID.Slug)
	}
}

func TestGetPostNotFound(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.GetPostBySlug("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if _, err := db.GetPost("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDuplicateSlugReturnsNewest(t *testing.T) {
	db := newTestDB(t)

	older := samplePost("id-old", "shared-slug")
	older.PublishedAt = "2025-01-01"
	newer := samplePost("id-new", "shared-slug")
	newer.PublishedAt = "2025-06-01"

	if err := db.CreatePost(older); err != nil {
		t.Fatal(err)
	}
	if err := db.CreatePost(newer); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetPostBySlug("shared-slug")
	if err != nil {
		t.Fatalf("GetPostBySlug() error: %v", err)
	}
	if got.ID != "id-new" {
		t.Errorf("got %q, want the newest post", got.ID)
	}
}

func TestListPostsOmitsContent(t *testing.T) {
	db := newTestDB(t)

	if err := db.CreatePost(samplePost("id-1", "slug-1")); err != nil {
		t.Fatal(err)
	}

	posts, err := db.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts() error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}
	if posts[0].Content != "" {
		t.Errorf("listing should omit content, got %q", posts[0].Content)
	}
	if posts[0].Excerpt == "" {
		t.Error("listing should keep excerpt")
	}
}

func TestListPostsByCategoryCaseInsensitive(t *testing.T) {
	db := newTestDB(t)

	post := samplePost("id-1", "slug-1")
	post.Category = "Technology"
	if err := db.CreatePost(post); err != nil {
		t.Fatal(err)
	}

	posts, err := db.ListPostsByCategory("technology")
	if err != nil {
		t.Fatalf("ListPostsByCategory() error: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("got %d posts, want 1", len(posts))
	}
}

func TestListCategories(t *testing.T) {
	db := newTestDB(t)

	a := samplePost("id-1", "slug-1")
	a.Category = "Technology"
	b := samplePost("id-2", "slug-2")
	b.Category = "Business"

	if err := db.CreatePost(a); err != nil {
		t.Fatal(err)
	}
	if err := db.CreatePost(b); err != nil {
		t.Fatal(err)
	}

	got, err := db.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories() error: %v", err)
	}
	if len(got) != 2 || got[0] != "Business" || got[1] != "Technology" {
		t.Errorf("categories = %v", got)
	}
}

func TestDeletePostRemovesSocialPosts(t *testing.T) {
	db := newTestDB(t)

	post := samplePost("id-1", "slug-1")
	if err := db.CreatePost(post); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveSocialPosts("slug-1", []string{"post one", "post two"}); err != nil {
		t.Fatal(err)
	}

	deleted, err := db.DeletePost("id-1")
	if err != nil {
		t.Fatalf("DeletePost() error: %v", err)
	}
	if deleted.Slug != "slug-1" {
		t.Errorf("deleted slug = %q", deleted.Slug)
	}

	if _, err := db.GetPost("id-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("post should be gone, got %v", err)
	}
	social, err := db.GetSocialPosts("slug-1")
	if err != nil {
		t.Fatalf("GetSocialPosts() error: %v", err)
	}
	if len(social) != 0 {
		t.Errorf("social posts should be gone, got %v", social)
	}
}

func TestSocialPostsRoundTrip(t *testing.T) {
	db := newTestDB(t)

	posts := []string{"🚀 first", "💡 second", "📊 third", "🎯 fourth"}
	if err := db.SaveSocialPosts("some-slug", posts); err != nil {
		t.Fatalf("SaveSocialPosts() error: %v", err)
	}

	got, err := db.GetSocialPosts("some-slug")
	if err != nil {
		t.Fatalf("GetSocialPosts() error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d posts, want 4", len(got))
	}
	for i := range posts {
		if got[i] != posts[i] {
			t.Errorf("post[%d] = %q, want %q", i, got[i], posts[i])
		}
	}

	// Saving again replaces rather than appends.
	if err := db.SaveSocialPosts("some-slug", []string{"only one"}); err != nil {
		t.Fatal(err)
	}
	got, err = db.GetSocialPosts("some-slug")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "only one" {
		t.Errorf("got %v after resave", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)

	sess := &models.Session{
		Token:     "tok-valid",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := db.CreateSession(sess); err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}

	if _, err := db.GetSession("tok-valid"); err != nil {
		t.Errorf("GetSession() error: %v", err)
	}

	if err := db.DeleteSession("tok-valid"); err != nil {
		t.Fatalf("DeleteSession() error: %v", err)
	}
	if _, err := db.GetSession("tok-valid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted session lookup = %v, want ErrNotFound", err)
	}
}

func TestExpiredSessionsInvisible(t *testing.T) {
	db := newTestDB(t)

	expired := &models.Session{
		Token:     "tok-expired",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := db.CreateSession(expired); err != nil {
		t.Fatal(err)
	}

	if _, err := db.GetSession("tok-expired"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session lookup = %v, want ErrNotFound", err)
	}

	n, err := db.DeleteExpiredSessions()
	if err != nil {
		t.Fatalf("DeleteExpiredSessions() error: %v", err)
	}
	if n != 1 {
		t.Errorf("removed %d sessions, want 1", n)
	}
}

func TestDatabaseSizeBytes(t *testing.T) {
	db := newTestDB(t)

	size, err := db.DatabaseSizeBytes()
	if err != nil {
		t.Fatalf("DatabaseSizeBytes() error: %v", err)
	}
	if size <= 0 {
		t.Errorf("size = %d, want > 0 after migration", size)
	}
}

func TestPostCount(t *testing.T) {
	db := newTestDB(t)

	n, err := db.PostCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("empty db count = %d", n)
	}

	if err := db.CreatePost(samplePost("id-1", "slug-1")); err != nil {
		t.Fatal(err)
	}
	n, err = db.PostCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
