package repository

import (
	"context"

	"github.com/newcodes7/smalltown-crawler/internal/entity"
)

// OrganizationRepository defines the read-only contract the crawler has
// against the organization store.
type OrganizationRepository interface {
	// ListEligible returns all organizations that are not soft-deleted
	// and have a non-blank blog link.
	ListEligible(ctx context.Context) ([]entity.Organization, error)
	// FindEligibleByID returns the organization with the given id among
	// non-deleted rows, or nil when no such row exists.
	FindEligibleByID(ctx context.Context, id int64) (*entity.Organization, error)
}
