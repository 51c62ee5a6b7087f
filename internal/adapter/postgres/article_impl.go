package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/newcodes7/smalltown-crawler/internal/entity"
)

// ArticleRepoImpl provides a concrete implementation for the ArticleRepository interface using PostgreSQL.
type ArticleRepoImpl struct {
	db *pgxpool.Pool
}

// NewArticleRepo creates a new instance of ArticleRepoImpl.
func NewArticleRepo(db *pgxpool.Pool) *ArticleRepoImpl {
	return &ArticleRepoImpl{db: db}
}

// ExistsActiveByLink reports whether an article with the exact link exists among non-deleted rows.
func (r *ArticleRepoImpl) ExistsActiveByLink(ctx context.Context, link string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM article WHERE link = $1 AND deleted_at IS NULL
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, link).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Insert stores a candidate article for an organization and returns the persisted row.
func (r *ArticleRepoImpl) Insert(ctx context.Context, organizationID int64, candidate *entity.CandidateArticle) (*entity.Article, error) {
	query := `
		INSERT INTO article (organization_id, title, summary, link, thumbnail_image, view_count, like_count, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, 0, $6, now(), now())
		RETURNING id, created_at, updated_at;
	`
	article := &entity.Article{
		OrganizationID: organizationID,
		Title:          candidate.Title,
		Summary:        candidate.Summary,
		Link:           candidate.Link,
		ThumbnailImage: candidate.ThumbnailImage,
		PublishedAt:    candidate.PublishedAt,
	}
	err := r.db.QueryRow(ctx, query,
		organizationID,
		candidate.Title,
		candidate.Summary,
		candidate.Link,
		candidate.ThumbnailImage,
		candidate.PublishedAt,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return article, nil
}

// CountSince returns the number of articles created for an organization at or after the given instant.
func (r *ArticleRepoImpl) CountSince(ctx context.Context, organizationID int64, since time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM article WHERE organization_id = $1 AND created_at >= $2;
	`
	var count int64
	if err := r.db.QueryRow(ctx, query, organizationID, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
