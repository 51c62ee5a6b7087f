package repository

import (
	"context"
	"time"
)

// LinkCacheRepository is a best-effort cache of article links already
// known to be persisted. It short-circuits the database exists check
// during dedup; the database remains the source of truth, so cache
// errors are advisory.
type LinkCacheRepository interface {
	// MarkSeen records a link as persisted, with an expiry.
	MarkSeen(ctx context.Context, link string, expiry time.Duration) error
	// IsSeen reports whether a link was recently recorded.
	IsSeen(ctx context.Context, link string) (bool, error)
}
