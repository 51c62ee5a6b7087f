package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/newcodes7/smalltown-crawler/internal/browser"
	"github.com/newcodes7/smalltown-crawler/internal/entity"
)

// Generic selectors tuned to catch common article containers across
// self-hosted blogs.
const (
	genericContainerSelector = "article, .post, .entry, .blog-post, .item, " +
		"[class*='post'], [class*='article'], [class*='entry'], " +
		"[id*='post'], [id*='article'], [id*='entry']"
	genericTitleSelector = "h1, h2, h3, h4, .title, .post-title, .entry-title, " +
		"[class*='title'], [class*='heading'], a[href]"
	genericSummarySelector = ".summary, .excerpt, .description, .content, p, " +
		"[class*='summary'], [class*='excerpt'], [class*='desc']"

	// renderWait gives client-side rendered blogs time to paint before
	// the DOM is read.
	renderWait = 2 * time.Second
)

// DefaultStrategy handles every blog not claimed by a specialized
// strategy. It prefers the blog's syndication feed and falls back to
// structural HTML extraction when no feed yields entries.
type DefaultStrategy struct{}

// NewDefaultStrategy creates the fallback extraction strategy.
func NewDefaultStrategy() *DefaultStrategy {
	return &DefaultStrategy{}
}

func (s *DefaultStrategy) CanHandle(string) bool { return true }

func (s *DefaultStrategy) Name() string { return "Default" }

// Extract probes well-known feed URLs first and stops at the first one
// yielding entries; otherwise it renders the blog page and applies the
// structural selectors.
func (s *DefaultStrategy) Extract(ctx context.Context, session browser.Session, org *entity.Organization) ([]entity.CandidateArticle, error) {
	if candidates := s.extractFromFeeds(ctx, session, org); len(candidates) > 0 {
		return candidates, nil
	}
	return s.extractFromPage(ctx, session, org)
}

func (s *DefaultStrategy) extractFromFeeds(ctx context.Context, session browser.Session, org *entity.Organization) []entity.CandidateArticle {
	for _, feedURL := range feedCandidateURLs(org.BlogLink) {
		if ctx.Err() != nil {
			return nil
		}
		if err := session.Navigate(ctx, feedURL); err != nil {
			slog.Debug("feed URL not reachable", "org", org.Name, "url", feedURL, "error", err)
			continue
		}
		pageHTML, err := session.HTML(ctx)
		if err != nil {
			slog.Debug("could not read feed document", "org", org.Name, "url", feedURL, "error", err)
			continue
		}
		candidates, err := parseFeedEntries(unwrapFeedDocument(pageHTML), time.Now())
		if err != nil {
			slog.Debug("document is not a valid feed", "org", org.Name, "url", feedURL, "error", err)
			continue
		}
		if len(candidates) > 0 {
			slog.Info("extracted articles from feed", "org", org.Name, "url", feedURL, "count", len(candidates))
			return candidates
		}
	}
	return nil
}

func (s *DefaultStrategy) extractFromPage(ctx context.Context, session browser.Session, org *entity.Organization) ([]entity.CandidateArticle, error) {
	if err := session.Navigate(ctx, org.BlogLink); err != nil {
		return nil, fmt.Errorf("navigate to blog: %w", err)
	}

	select {
	case <-time.After(renderWait):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	pageHTML, err := session.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("read page source: %w", err)
	}

	candidates, err := s.parsePage(pageHTML, org)
	if err != nil {
		return nil, err
	}
	slog.Info("extracted articles from page", "org", org.Name, "count", len(candidates))
	return candidates, nil
}

// parsePage applies the structural selectors (with any per-host
// overrides) to a rendered page. A malformed element is skipped, never
// fatal to the batch.
func (s *DefaultStrategy) parsePage(pageHTML string, org *entity.Organization) ([]entity.CandidateArticle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var rule hostRule
	if u, err := url.Parse(org.BlogLink); err == nil {
		rule, _ = ruleForHost(u.Hostname())
	}

	containerSel := rule.containerSelector
	if containerSel == "" {
		containerSel = genericContainerSelector
	}

	var candidates []entity.CandidateArticle
	doc.Find(containerSel).Each(func(_ int, el *goquery.Selection) {
		candidate, ok := s.parseElement(el, rule, org)
		if !ok {
			return
		}
		candidates = append(candidates, candidate)
	})
	return candidates, nil
}

func (s *DefaultStrategy) parseElement(el *goquery.Selection, rule hostRule, org *entity.Organization) (entity.CandidateArticle, bool) {
	titleSel := rule.titleSelector
	if titleSel == "" {
		titleSel = genericTitleSelector
	}
	titleEl := el.Find(titleSel).First()
	if titleEl.Length() == 0 {
		return entity.CandidateArticle{}, false
	}
	title := strings.TrimSpace(titleEl.Text())
	if len([]rune(title)) < minTitleLength {
		return entity.CandidateArticle{}, false
	}

	href, _ := titleEl.Attr("href")
	if href == "" {
		href, _ = el.Find("a[href]").First().Attr("href")
	}
	if href == "" {
		// The container itself may be the anchor (card-style layouts).
		href, _ = el.Attr("href")
	}
	link := s.resolveWithRule(org.BlogLink, href, rule)
	if link == "" {
		return entity.CandidateArticle{}, false
	}

	summary := ""
	if summaryEl := el.Find(genericSummarySelector).First(); summaryEl.Length() > 0 {
		summary = truncateSummary(summaryEl.Text())
	}

	thumbnail := ""
	imageSel := rule.imageSelector
	if imageSel == "" {
		imageSel = "img"
	}
	if src, ok := el.Find(imageSel).First().Attr("src"); ok {
		if resolved := resolveLink(org.BlogLink, src); resolved != "" {
			thumbnail = resolved
		}
	}

	publishedAt := time.Now()
	if rule.dateSelector != "" {
		if parsed, ok := parseDate(el.Find(rule.dateSelector).First().Text(), time.Now()); ok {
			publishedAt = parsed
		}
	} else if datetime, ok := el.Find("time[datetime]").First().Attr("datetime"); ok {
		if parsed, ok := parseDate(datetime, time.Now()); ok {
			publishedAt = parsed
		}
	}

	return entity.CandidateArticle{
		Title:          title,
		Link:           link,
		Summary:        summary,
		ThumbnailImage: thumbnail,
		PublishedAt:    publishedAt,
	}, true
}

// resolveWithRule honors a host rule's link prefix before falling back
// to base-URL resolution.
func (s *DefaultStrategy) resolveWithRule(blogLink, href string, rule hostRule) string {
	href = strings.TrimSpace(href)
	if rule.linkPrefix != "" && strings.HasPrefix(href, "/") {
		return rule.linkPrefix + href
	}
	return resolveLink(blogLink, href)
}
