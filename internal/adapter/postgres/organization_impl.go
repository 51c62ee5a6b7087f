package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/newcodes7/smalltown-crawler/internal/entity"
)

// OrganizationRepoImpl provides a concrete implementation for the OrganizationRepository interface using PostgreSQL.
type OrganizationRepoImpl struct {
	db *pgxpool.Pool
}

// NewOrganizationRepo creates a new instance of OrganizationRepoImpl.
func NewOrganizationRepo(db *pgxpool.Pool) *OrganizationRepoImpl {
	return &OrganizationRepoImpl{db: db}
}

// ListEligible returns all non-deleted organizations with a non-blank blog link.
func (r *OrganizationRepoImpl) ListEligible(ctx context.Context) ([]entity.Organization, error) {
	query := `
		SELECT id, name, home_link, blog_link, crew_link, logo_url, created_at, updated_at, deleted_at
		FROM organization
		WHERE blog_link IS NOT NULL AND btrim(blog_link) != '' AND deleted_at IS NULL
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []entity.Organization
	for rows.Next() {
		var org entity.Organization
		if err := scanOrganization(rows, &org); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

// FindEligibleByID returns the non-deleted organization with the given id, or nil when absent.
func (r *OrganizationRepoImpl) FindEligibleByID(ctx context.Context, id int64) (*entity.Organization, error) {
	query := `
		SELECT id, name, home_link, blog_link, crew_link, logo_url, created_at, updated_at, deleted_at
		FROM organization
		WHERE id = $1 AND deleted_at IS NULL;
	`
	row := r.db.QueryRow(ctx, query, id)

	var org entity.Organization
	if err := scanOrganization(row, &org); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func scanOrganization(row pgx.Row, org *entity.Organization) error {
	var homeLink, blogLink, crewLink, logoURL *string
	err := row.Scan(
		&org.ID,
		&org.Name,
		&homeLink,
		&blogLink,
		&crewLink,
		&logoURL,
		&org.CreatedAt,
		&org.UpdatedAt,
		&org.DeletedAt,
	)
	if err != nil {
		return err
	}
	if homeLink != nil {
		org.HomeLink = *homeLink
	}
	if blogLink != nil {
		org.BlogLink = *blogLink
	}
	if crewLink != nil {
		org.CrewLink = *crewLink
	}
	if logoURL != nil {
		org.LogoURL = *logoURL
	}
	return nil
}
