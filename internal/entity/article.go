package entity

import "time"

// CandidateArticle is the ephemeral output of an extraction strategy.
// It lives only between extraction and the dedup step; persistence turns
// it into an Article.
type CandidateArticle struct {
	Title          string
	Link           string
	Summary        string
	ThumbnailImage string
	PublishedAt    time.Time
}

// Article mirrors the `article` PostgreSQL table schema.
// Uniqueness is enforced at the business level by exact link equality
// among rows with deleted_at IS NULL.
type Article struct {
	ID             int64      `json:"id"`
	OrganizationID int64      `json:"organization_id"`
	Title          string     `json:"title"`
	Summary        string     `json:"summary,omitempty"`
	Link           string     `json:"link"`
	ThumbnailImage string     `json:"thumbnail_image,omitempty"`
	ViewCount      int        `json:"view_count"`
	LikeCount      int        `json:"like_count"`
	ReadingTime    int        `json:"reading_time,omitempty"`
	PublishedAt    time.Time  `json:"published_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`
}
