package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/newcodes7/smalltown-crawler/internal/browser"
	"github.com/newcodes7/smalltown-crawler/internal/entity"
	"github.com/newcodes7/smalltown-crawler/pkg/utils"
)

// Medium serves its images through a resizing proxy; stripping the
// resize segment yields the original file.
var mediumResizePattern = regexp.MustCompile(`/resize:fill:\d+:\d+/`)

var botDetectionPhrases = []string{
	"are you a robot",
	"human verification",
	"verify you are human",
	"captcha",
}

// MediumStrategy crawls Medium-hosted publications through their archive
// pages. Medium actively fingerprints automation, so navigation is
// interleaved with human-pacing delays, scroll simulation, and an
// interstitial check with one bounded retry.
type MediumStrategy struct {
	// pause is the human-pacing delay, replaceable in tests.
	pause func(ctx context.Context, min, max time.Duration) error
}

// NewMediumStrategy creates the Medium-specific extraction strategy.
func NewMediumStrategy() *MediumStrategy {
	return &MediumStrategy{pause: sleepBetween}
}

func (s *MediumStrategy) CanHandle(blogURL string) bool {
	return strings.Contains(blogURL, "medium.com")
}

func (s *MediumStrategy) Name() string { return "Medium" }

func (s *MediumStrategy) Extract(ctx context.Context, session browser.Session, org *entity.Organization) ([]entity.CandidateArticle, error) {
	archiveURL := utils.NormalizeBase(org.BlogLink) + "/archive"
	if err := s.navigateChecked(ctx, session, archiveURL); err != nil {
		return nil, fmt.Errorf("open archive page: %w", err)
	}

	if err := s.simulateHumanBehavior(ctx, session); err != nil {
		return nil, err
	}

	pageHTML, err := session.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("read archive page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse archive page: %w", err)
	}

	yearLinks := s.timebucketLinks(doc)
	if len(yearLinks) == 0 {
		// Small publications have no year buckets; the archive page
		// itself lists the posts.
		return s.parseArticles(doc, org), nil
	}

	var candidates []entity.CandidateArticle
	for i, link := range yearLinks {
		if ctx.Err() != nil {
			return candidates, ctx.Err()
		}
		pageCandidates, err := s.crawlArchivePage(ctx, session, org, link)
		if err != nil {
			slog.Warn("archive year page failed", "org", org.Name, "url", link, "error", err)
			continue
		}
		candidates = append(candidates, pageCandidates...)

		// Pace only between year pages; there is nothing left to load
		// after the last one.
		if i < len(yearLinks)-1 {
			if err := s.pause(ctx, 2*time.Second, 8*time.Second); err != nil {
				return candidates, err
			}
		}
	}

	slog.Info("medium crawl finished", "org", org.Name, "count", len(candidates))
	return candidates, nil
}

func (s *MediumStrategy) crawlArchivePage(ctx context.Context, session browser.Session, org *entity.Organization, pageURL string) ([]entity.CandidateArticle, error) {
	if err := s.navigateChecked(ctx, session, pageURL); err != nil {
		return nil, err
	}
	if err := s.simulateHumanBehavior(ctx, session); err != nil {
		return nil, err
	}

	pageHTML, err := session.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, err
	}
	return s.parseArticles(doc, org), nil
}

func (s *MediumStrategy) timebucketLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("div[class*='timebucket'] a[href]").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})
	return links
}

func (s *MediumStrategy) parseArticles(doc *goquery.Document, org *entity.Organization) []entity.CandidateArticle {
	var candidates []entity.CandidateArticle
	doc.Find("div.postArticle[data-post-id]").Each(func(_ int, el *goquery.Selection) {
		candidate, ok := s.parseArticle(el, org)
		if !ok {
			return
		}
		candidates = append(candidates, candidate)
	})
	return candidates
}

func (s *MediumStrategy) parseArticle(el *goquery.Selection, org *entity.Organization) (entity.CandidateArticle, bool) {
	title := strings.TrimSpace(el.Find("h3").First().Text())
	if title == "" {
		return entity.CandidateArticle{}, false
	}

	// The first anchors in a postArticle card are author and collection
	// links; the post link is the fourth.
	anchors := el.Find("a[href]")
	if anchors.Length() < 4 {
		return entity.CandidateArticle{}, false
	}
	href, _ := anchors.Eq(3).Attr("href")
	link := resolveLink(org.BlogLink, href)
	if link == "" {
		return entity.CandidateArticle{}, false
	}

	thumbnail := ""
	if src, ok := el.Find("img[class*='progressiveMedia-image']").First().Attr("src"); ok {
		thumbnail = mediumResizePattern.ReplaceAllString(src, "/")
	}

	publishedAt := time.Now()
	if datetime, ok := el.Find("time").First().Attr("datetime"); ok {
		if parsed, err := time.Parse(time.RFC3339, datetime); err == nil {
			publishedAt = parsed.Local()
		}
	}

	return entity.CandidateArticle{
		Title:          title,
		Link:           link,
		ThumbnailImage: thumbnail,
		PublishedAt:    publishedAt,
	}, true
}

// navigateChecked navigates and, when the response is a bot-detection
// interstitial, waits like a human and retries once.
func (s *MediumStrategy) navigateChecked(ctx context.Context, session browser.Session, pageURL string) error {
	if err := session.Navigate(ctx, pageURL); err != nil {
		return err
	}

	detected, err := s.botDetected(ctx, session)
	if err != nil || !detected {
		return err
	}

	slog.Warn("bot detection interstitial, backing off", "url", pageURL)
	if err := s.pause(ctx, 5*time.Second, 10*time.Second); err != nil {
		return err
	}
	if err := session.Navigate(ctx, pageURL); err != nil {
		return err
	}

	detected, err = s.botDetected(ctx, session)
	if err != nil {
		return err
	}
	if detected {
		return fmt.Errorf("bot detection interstitial persisted for %s", pageURL)
	}
	return nil
}

func (s *MediumStrategy) botDetected(ctx context.Context, session browser.Session) (bool, error) {
	location, err := session.Location(ctx)
	if err != nil {
		return false, err
	}
	lowerURL := strings.ToLower(location)
	if strings.Contains(lowerURL, "robot") || strings.Contains(lowerURL, "verify") {
		return true, nil
	}

	pageHTML, err := session.HTML(ctx)
	if err != nil {
		return false, err
	}
	lowerHTML := strings.ToLower(pageHTML)
	for _, phrase := range botDetectionPhrases {
		if strings.Contains(lowerHTML, phrase) {
			return true, nil
		}
	}
	return false, nil
}

// simulateHumanBehavior scrolls the page in small random steps and moves
// the mouse so the session reads like an attended browser.
func (s *MediumStrategy) simulateHumanBehavior(ctx context.Context, session browser.Session) error {
	if err := s.pause(ctx, 2*time.Second, 4*time.Second); err != nil {
		return err
	}

	for i := 0; i < 3; i++ {
		scroll := 200 + rand.IntN(300)
		if err := session.Evaluate(ctx, fmt.Sprintf("window.scrollBy(0, %d)", scroll)); err != nil {
			return err
		}
		if err := s.pause(ctx, 500*time.Millisecond, 1500*time.Millisecond); err != nil {
			return err
		}
	}

	if err := session.Evaluate(ctx, "window.scrollTo(0, 0)"); err != nil {
		return err
	}
	mouseMove := fmt.Sprintf(
		"document.dispatchEvent(new MouseEvent('mousemove', {clientX: %d, clientY: %d}))",
		100+rand.IntN(800), 100+rand.IntN(600),
	)
	return session.Evaluate(ctx, mouseMove)
}

// sleepBetween pauses for a random duration in [min, max), aborting on
// context cancellation.
func sleepBetween(ctx context.Context, min, max time.Duration) error {
	d := min + rand.N(max-min)
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
