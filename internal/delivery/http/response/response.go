package response

import (
	"time"

	"github.com/newcodes7/smalltown-crawler/internal/entity"
)

// CrawlAllResponse summarizes a full crawl batch.
type CrawlAllResponse struct {
	Success            bool                  `json:"success"`
	Message            string                `json:"message"`
	TotalOrganizations int                   `json:"total_organizations"`
	SuccessCount       int                   `json:"success_count"`
	FailureCount       int                   `json:"failure_count"`
	TotalNewArticles   int                   `json:"total_new_articles"`
	Results            []*entity.CrawlResult `json:"results"`
}

// CrawlOneResponse reports a single organization crawl.
type CrawlOneResponse struct {
	Success          bool                `json:"success"`
	Message          string              `json:"message"`
	OrganizationName string              `json:"organization_name,omitempty"`
	TotalArticles    int                 `json:"total_articles"`
	NewArticles      int                 `json:"new_articles"`
	Result           *entity.CrawlResult `json:"result,omitempty"`
}

// StatsResponse is the aggregate statistics DTO.
type StatsResponse struct {
	TotalOrganizations int64     `json:"total_organizations"`
	TotalNewArticles   int64     `json:"total_new_articles"`
	LastCrawledAt      time.Time `json:"last_crawled_at"`
}
