package entity

import "time"

// CrawlResult describes the outcome of one crawl attempt for one
// organization. It is immutable once constructed; a failed attempt is
// never retried within the same call.
type CrawlResult struct {
	Organization  *Organization `json:"organization,omitempty"`
	Articles      []Article     `json:"articles,omitempty"`
	Success       bool          `json:"success"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	CrawledAt     time.Time     `json:"crawled_at"`
	TotalArticles int           `json:"total_articles"`
	NewArticles   int           `json:"new_articles"`
}

// SuccessResult builds a result for a completed crawl. totalArticles is
// the number of candidates the strategy extracted, articles the subset
// that survived dedup and was persisted.
func SuccessResult(org *Organization, articles []Article, totalArticles int) *CrawlResult {
	return &CrawlResult{
		Organization:  org,
		Articles:      articles,
		Success:       true,
		CrawledAt:     time.Now(),
		TotalArticles: totalArticles,
		NewArticles:   len(articles),
	}
}

// FailureResult builds a failed result. org is nil only when the
// organization id itself could not be resolved.
func FailureResult(org *Organization, errorMessage string) *CrawlResult {
	return &CrawlResult{
		Organization: org,
		Success:      false,
		ErrorMessage: errorMessage,
		CrawledAt:    time.Now(),
	}
}

// CrawlStats is the aggregate view over all eligible organizations,
// recomputed on demand.
type CrawlStats struct {
	TotalOrganizations int64     `json:"total_organizations"`
	TotalNewArticles   int64     `json:"total_new_articles"`
	LastCrawledAt      time.Time `json:"last_crawled_at"`
}
