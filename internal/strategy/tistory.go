package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/newcodes7/smalltown-crawler/internal/browser"
	"github.com/newcodes7/smalltown-crawler/internal/entity"
)

// TistoryStrategy crawls Tistory-hosted blogs, the self-hosted platform
// most of the tracked Korean organizations use. Tistory themes vary but
// the list markup is consistent enough for a fixed selector set.
type TistoryStrategy struct{}

// NewTistoryStrategy creates the Tistory-specific extraction strategy.
func NewTistoryStrategy() *TistoryStrategy {
	return &TistoryStrategy{}
}

func (s *TistoryStrategy) CanHandle(blogURL string) bool {
	return strings.Contains(blogURL, "tistory.com")
}

func (s *TistoryStrategy) Name() string { return "Tistory" }

func (s *TistoryStrategy) Extract(ctx context.Context, session browser.Session, org *entity.Organization) ([]entity.CandidateArticle, error) {
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
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var candidates []entity.CandidateArticle
	doc.Find("article, .item_post, .post-item, .entry-content").Each(func(_ int, el *goquery.Selection) {
		candidate, ok := s.parseArticle(el, org)
		if !ok {
			return
		}
		candidates = append(candidates, candidate)
	})

	slog.Info("tistory crawl finished", "org", org.Name, "count", len(candidates))
	return candidates, nil
}

func (s *TistoryStrategy) parseArticle(el *goquery.Selection, org *entity.Organization) (entity.CandidateArticle, bool) {
	titleEl := el.Find("h1, h2, h3, .title, .post-title, a[href]").First()
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
	link := resolveLink(org.BlogLink, href)
	if link == "" {
		return entity.CandidateArticle{}, false
	}

	summary := ""
	if summaryEl := el.Find(".summary, .excerpt, .description, p").First(); summaryEl.Length() > 0 {
		summary = truncateSummary(summaryEl.Text())
	}

	thumbnail := ""
	if src, ok := el.Find("img").First().Attr("src"); ok {
		if resolved := resolveLink(org.BlogLink, src); resolved != "" {
			thumbnail = resolved
		}
	}

	publishedAt := time.Now()
	if dateEl := el.Find(".date, .post-date, [class*='date'], time").First(); dateEl.Length() > 0 {
		text := dateEl.Text()
		if datetime, ok := dateEl.Attr("datetime"); ok {
			text = datetime
		}
		if parsed, ok := parseDate(text, time.Now()); ok {
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
