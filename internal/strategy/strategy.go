// Package strategy implements the pluggable blog extraction strategies
// and their selection by blog URL.
package strategy

import (
	"context"
	"errors"
	"strings"

	"github.com/newcodes7/smalltown-crawler/internal/browser"
	"github.com/newcodes7/smalltown-crawler/internal/entity"
	"github.com/newcodes7/smalltown-crawler/pkg/utils"
)

const (
	// minTitleLength filters out navigation fragments and decorative
	// headings picked up by the generic selectors.
	minTitleLength = 5
	// maxSummaryLength caps the stored summary, in runes.
	maxSummaryLength = 200
)

// ErrNoDefaultStrategy is returned by NewSelector when no default
// strategy was registered. This is a configuration error and fatal.
var ErrNoDefaultStrategy = errors.New("no default strategy registered")

// Strategy extracts candidate articles from one organization's blog
// through a browser session.
type Strategy interface {
	// CanHandle reports whether this strategy knows how to crawl the
	// given blog URL.
	CanHandle(blogURL string) bool
	// Extract navigates the session and returns the candidate articles
	// found on the blog. Individual malformed entries are skipped, not
	// fatal; an error means the whole page could not be processed.
	Extract(ctx context.Context, session browser.Session, org *entity.Organization) ([]entity.CandidateArticle, error)
	// Name identifies the strategy in logs and metrics.
	Name() string
}

// Selector resolves the most specific strategy for a blog URL, falling
// back to the single default strategy.
type Selector struct {
	specialized []Strategy
	fallback    Strategy
}

// NewSelector builds a selector from the registered strategies. The
// slice order of specialized strategies is the match order.
func NewSelector(fallback Strategy, specialized ...Strategy) (*Selector, error) {
	if fallback == nil {
		return nil, ErrNoDefaultStrategy
	}
	return &Selector{specialized: specialized, fallback: fallback}, nil
}

// Select returns the first specialized strategy whose CanHandle accepts
// the blog URL, or the default strategy when none match.
func (s *Selector) Select(blogURL string) Strategy {
	for _, st := range s.specialized {
		if st.CanHandle(blogURL) {
			return st
		}
	}
	return s.fallback
}

// resolveLink turns a possibly-relative href into an absolute URL.
// Root-relative hrefs are appended to the blog link, which is how the
// tracked platforms structure their post URLs; anything else that is not
// already absolute is dropped by returning the empty string.
func resolveLink(blogLink, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		return ""
	}
	base := utils.NormalizeBase(blogLink)
	if base == "" {
		return ""
	}
	return base + href
}

// truncateSummary trims a summary to maxSummaryLength runes, appending
// an ellipsis marker when it was cut.
func truncateSummary(summary string) string {
	summary = strings.TrimSpace(summary)
	runes := []rune(summary)
	if len(runes) <= maxSummaryLength {
		return summary
	}
	return string(runes[:maxSummaryLength]) + "..."
}
