package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/newcodes7/smalltown-crawler/pkg/utils"
	"github.com/redis/go-redis/v9"
)

const seenLinkPrefix = "article_link:"

// LinkCacheRepoImpl provides a concrete implementation for the LinkCacheRepository interface using Redis.
type LinkCacheRepoImpl struct {
	client *redis.Client
}

// NewLinkCacheRepo creates a new instance of LinkCacheRepoImpl.
func NewLinkCacheRepo(client *redis.Client) *LinkCacheRepoImpl {
	return &LinkCacheRepoImpl{client: client}
}

// generateKey creates a consistent Redis key for a given link by hashing it.
func (r *LinkCacheRepoImpl) generateKey(link string) string {
	return fmt.Sprintf("%s%s", seenLinkPrefix, utils.HashURL(link))
}

// MarkSeen records a persisted link by setting a key in Redis with a specific expiry time.
func (r *LinkCacheRepoImpl) MarkSeen(ctx context.Context, link string, expiry time.Duration) error {
	key := r.generateKey(link)
	// SETEX is atomic and sets the key with an expiry.
	return r.client.SetEx(ctx, key, "1", expiry).Err()
}

// IsSeen checks if a link was recently recorded by checking for the existence of its key.
func (r *LinkCacheRepoImpl) IsSeen(ctx context.Context, link string) (bool, error) {
	key := r.generateKey(link)
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return val == 1, nil
}
