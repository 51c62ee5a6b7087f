package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/newcodes7/smalltown-crawler/internal/browser"
	"github.com/newcodes7/smalltown-crawler/internal/entity"
	"github.com/newcodes7/smalltown-crawler/internal/repository"
	"github.com/newcodes7/smalltown-crawler/internal/strategy"
	"github.com/newcodes7/smalltown-crawler/pkg/metrics"
)

const (
	defaultWorkers      = 5
	defaultJobTimeout   = 5 * time.Minute
	defaultLinkCacheTTL = 72 * time.Hour
	statsWindow         = 24 * time.Hour
)

// Crawler defines the trigger surface consumed by the HTTP layer and the
// scheduler. Crawl methods return result values, never errors: every
// failure mode is reported through the result's success flag.
type Crawler interface {
	// CrawlOne crawls a single organization's blog and persists the
	// articles not previously seen.
	CrawlOne(ctx context.Context, organizationID int64) *entity.CrawlResult
	// CrawlAll crawls every eligible organization over a bounded worker
	// pool. One result per organization, minus jobs abandoned at their
	// per-job deadline. Order is not significant.
	CrawlAll(ctx context.Context) []*entity.CrawlResult
	// Stats recomputes the aggregate crawl statistics.
	Stats(ctx context.Context) (*entity.CrawlStats, error)
}

// Options carries the runtime crawl configuration. Passed explicitly so
// tests can vary it per case.
type Options struct {
	Enabled      bool
	Workers      int
	JobTimeout   time.Duration
	LinkCacheTTL time.Duration
}

type crawlerUseCase struct {
	orgRepo     repository.OrganizationRepository
	articleRepo repository.ArticleRepository
	linkCache   repository.LinkCacheRepository // optional
	browsers    browser.Manager
	selector    *strategy.Selector
	opts        Options
}

// NewCrawlerUseCase creates the crawl orchestrator. linkCache may be nil,
// in which case dedup goes straight to the article store.
func NewCrawlerUseCase(
	orgRepo repository.OrganizationRepository,
	articleRepo repository.ArticleRepository,
	linkCache repository.LinkCacheRepository,
	browsers browser.Manager,
	selector *strategy.Selector,
	opts Options,
) Crawler {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = defaultJobTimeout
	}
	if opts.LinkCacheTTL <= 0 {
		opts.LinkCacheTTL = defaultLinkCacheTTL
	}
	return &crawlerUseCase{
		orgRepo:     orgRepo,
		articleRepo: articleRepo,
		linkCache:   linkCache,
		browsers:    browsers,
		selector:    selector,
		opts:        opts,
	}
}

// CrawlOne resolves, validates, extracts, dedups and persists for one
// organization. The browser session is released on every exit path.
func (uc *crawlerUseCase) CrawlOne(ctx context.Context, organizationID int64) *entity.CrawlResult {
	org, err := uc.orgRepo.FindEligibleByID(ctx, organizationID)
	if err != nil {
		slog.Error("organization lookup failed", "organization_id", organizationID, "error", err)
		return entity.FailureResult(nil, fmt.Sprintf("organization lookup failed: %v", err))
	}
	if org == nil {
		return entity.FailureResult(nil, fmt.Sprintf("organization not found: %d", organizationID))
	}
	if !org.HasBlogLink() {
		return entity.FailureResult(org, "no blog link")
	}

	session, err := uc.browsers.Acquire(ctx)
	if err != nil {
		slog.Error("browser session unavailable", "org", org.Name, "error", err)
		metrics.CrawlsTotal.WithLabelValues("failure", "none").Inc()
		return entity.FailureResult(org, fmt.Sprintf("browser session unavailable: %v", err))
	}
	defer session.Release()

	st := uc.selector.Select(org.BlogLink)
	slog.Info("crawl started", "org", org.Name, "provider", st.Name())

	start := time.Now()
	candidates, err := st.Extract(ctx, session, org)
	metrics.CrawlDuration.WithLabelValues(st.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Error("extraction failed", "org", org.Name, "provider", st.Name(), "error", err)
		metrics.CrawlsTotal.WithLabelValues("failure", st.Name()).Inc()
		return entity.FailureResult(org, err.Error())
	}

	saved := make([]entity.Article, 0, len(candidates))
	for i := range candidates {
		candidate := candidates[i]
		seen, err := uc.linkSeen(ctx, candidate.Link)
		if err != nil {
			metrics.CrawlsTotal.WithLabelValues("failure", st.Name()).Inc()
			return entity.FailureResult(org, fmt.Sprintf("dedup check failed: %v", err))
		}
		if seen {
			continue
		}
		article, err := uc.articleRepo.Insert(ctx, org.ID, &candidate)
		if err != nil {
			metrics.CrawlsTotal.WithLabelValues("failure", st.Name()).Inc()
			return entity.FailureResult(org, fmt.Sprintf("persist article: %v", err))
		}
		uc.markSeen(ctx, candidate.Link)
		saved = append(saved, *article)
	}

	metrics.CrawlsTotal.WithLabelValues("success", st.Name()).Inc()
	metrics.NewArticlesTotal.WithLabelValues(st.Name()).Add(float64(len(saved)))
	slog.Info("crawl finished", "org", org.Name, "total", len(candidates), "new", len(saved))
	return entity.SuccessResult(org, saved, len(candidates))
}

// CrawlAll fans one job per eligible organization out over the worker
// pool and collects each result with an individual deadline. A job that
// misses its deadline is logged and dropped from the batch but keeps
// running to completion, so its browser session is still released.
func (uc *crawlerUseCase) CrawlAll(ctx context.Context) []*entity.CrawlResult {
	if !uc.opts.Enabled {
		slog.Info("crawling is disabled")
		return []*entity.CrawlResult{}
	}

	orgs, err := uc.orgRepo.ListEligible(ctx)
	if err != nil {
		slog.Error("listing eligible organizations failed", "error", err)
		return []*entity.CrawlResult{}
	}
	slog.Info("crawl cycle started", "organizations", len(orgs))

	type pendingJob struct {
		org  entity.Organization
		done chan *entity.CrawlResult
	}

	sem := make(chan struct{}, uc.opts.Workers)
	jobs := make([]pendingJob, 0, len(orgs))
	for _, org := range orgs {
		// Buffered so an abandoned job can still deliver and exit.
		job := pendingJob{org: org, done: make(chan *entity.CrawlResult, 1)}
		jobs = append(jobs, job)
		go func(id int64, done chan<- *entity.CrawlResult) {
			sem <- struct{}{}
			defer func() { <-sem }()
			done <- uc.CrawlOne(ctx, id)
		}(org.ID, job.done)
	}

	results := make([]*entity.CrawlResult, 0, len(jobs))
	for _, job := range jobs {
		select {
		case result := <-job.done:
			results = append(results, result)
		case <-time.After(uc.opts.JobTimeout):
			metrics.CrawlJobsAbandoned.Inc()
			slog.Error("crawl job deadline exceeded", "org", job.org.Name, "timeout", uc.opts.JobTimeout)
		}
	}

	slog.Info("crawl cycle finished", "processed", len(results), "submitted", len(jobs))
	return results
}

// Stats counts eligible organizations and the articles created within
// the trailing window.
func (uc *crawlerUseCase) Stats(ctx context.Context) (*entity.CrawlStats, error) {
	since := time.Now().Add(-statsWindow)

	orgs, err := uc.orgRepo.ListEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}

	var totalNew int64
	for _, org := range orgs {
		count, err := uc.articleRepo.CountSince(ctx, org.ID, since)
		if err != nil {
			return nil, fmt.Errorf("count articles for %s: %w", org.Name, err)
		}
		totalNew += count
	}

	return &entity.CrawlStats{
		TotalOrganizations: int64(len(orgs)),
		TotalNewArticles:   totalNew,
		LastCrawledAt:      time.Now(),
	}, nil
}

// linkSeen consults the cache first, then the store. Cache errors are
// logged and ignored; the store answer is authoritative.
func (uc *crawlerUseCase) linkSeen(ctx context.Context, link string) (bool, error) {
	if uc.linkCache != nil {
		seen, err := uc.linkCache.IsSeen(ctx, link)
		if err != nil {
			slog.Debug("link cache check failed", "link", link, "error", err)
		} else if seen {
			return true, nil
		}
	}
	return uc.articleRepo.ExistsActiveByLink(ctx, link)
}

func (uc *crawlerUseCase) markSeen(ctx context.Context, link string) {
	if uc.linkCache == nil {
		return
	}
	if err := uc.linkCache.MarkSeen(ctx, link, uc.opts.LinkCacheTTL); err != nil {
		slog.Debug("link cache update failed", "link", link, "error", err)
	}
}
