package entity

import (
	"strings"
	"time"
)

// Organization mirrors the `organization` PostgreSQL table schema.
// The crawler treats organizations as read-only input; rows are managed
// by the admin service.
type Organization struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	HomeLink  string     `json:"home_link,omitempty"`
	BlogLink  string     `json:"blog_link,omitempty"`
	CrewLink  string     `json:"crew_link,omitempty"`
	LogoURL   string     `json:"logo_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// HasBlogLink reports whether the organization has a usable blog URL.
func (o *Organization) HasBlogLink() bool {
	return strings.TrimSpace(o.BlogLink) != ""
}
