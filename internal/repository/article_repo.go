package repository

import (
	"context"
	"time"

	"github.com/newcodes7/smalltown-crawler/internal/entity"
)

// ArticleRepository defines the persistence contract for crawled
// articles.
type ArticleRepository interface {
	// ExistsActiveByLink reports whether an article with the exact link
	// exists among non-deleted rows.
	ExistsActiveByLink(ctx context.Context, link string) (bool, error)
	// Insert stores a candidate for an organization and returns the
	// persisted row with id and timestamps filled in.
	Insert(ctx context.Context, organizationID int64, candidate *entity.CandidateArticle) (*entity.Article, error)
	// CountSince returns the number of articles created for an
	// organization at or after the given instant.
	CountSince(ctx context.Context, organizationID int64, since time.Time) (int64, error)
}
