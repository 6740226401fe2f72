package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alitypes/scribe/internal/blog"
	"github.com/alitypes/scribe/internal/database"
	"github.com/alitypes/scribe/internal/models"
	"github.com/alitypes/scribe/internal/similarity"
)

// Service turns generated content packages into persisted blog posts.
type Service struct {
	runner Runner
	db     *database.DB
	dupes  *similarity.Checker
	now    func() time.Time
}

func NewService(runner Runner, db *database.DB) *Service {
	return &Service{
		runner: runner,
		db:     db,
		dupes:  similarity.New(0.85, 3),
		now:    time.Now,
	}
}

// Generate produces and stores a blog post for the topic, returning the
// saved post together with the generated package so callers can report
// competitors, insights, and social posts. Social posts are persisted
// alongside the post.
func (s *Service) Generate(ctx context.Context, topic string) (models.BlogPost, models.ContentPackage, error) {
	pkg, err := s.runner.Run(ctx, topic)
	if err != nil {
		return models.BlogPost{}, models.ContentPackage{}, err
	}

	post := blog.New(topic, pkg, s.now())
	s.flagDuplicate(post)
	if err := s.db.CreatePost(&post); err != nil {
		return models.BlogPost{}, models.ContentPackage{}, fmt.Errorf("save post: %w", err)
	}
	if err := s.db.SaveSocialPosts(post.Slug, pkg.SocialPosts); err != nil {
		// The post itself is saved; losing social posts is not fatal.
		slog.Warn("Failed to save social posts", "slug", post.Slug, "error", err)
	}

	slog.Info("Blog post created", "title", post.Title, "slug", post.Slug, "category", post.Category)
	return post, pkg, nil
}

// flagDuplicate warns when the new post reads almost the same as an
// existing one, which happens when fallback templates fire repeatedly
// for similar topics. The post is still saved; the operator decides.
func (s *Service) flagDuplicate(post models.BlogPost) {
	existing, err := s.db.ListPosts()
	if err != nil {
		return
	}

	excerpts := make([]string, 0, len(existing))
	for _, p := range existing {
		if p.Excerpt != "" {
			excerpts = append(excerpts, p.Excerpt)
		}
	}

	if s.dupes.IsDuplicate(post.Excerpt, excerpts) {
		slog.Warn("Generated post closely resembles an existing post", "slug", post.Slug)
	}
}
