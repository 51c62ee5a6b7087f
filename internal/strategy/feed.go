package strategy

import (
	"slices"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/newcodes7/smalltown-crawler/internal/entity"
	"github.com/newcodes7/smalltown-crawler/pkg/utils"
)

// Well-known feed path suffixes, probed in order.
var feedSuffixes = []string{"/feed", "/rss", "/atom.xml", "/feeds/posts/default"}

// feedCandidateURLs synthesizes plausible syndication feed URLs for a
// blog. Medium-hosted blogs get their feed endpoints probed first since
// those almost always exist and skip the anti-bot interstitial.
func feedCandidateURLs(blogLink string) []string {
	base := utils.NormalizeBase(blogLink)
	if base == "" {
		return nil
	}

	var candidates []string
	if strings.Contains(base, "medium.com") {
		candidates = append(candidates, base+"/feed", base+"/rss")
	}
	for _, suffix := range feedSuffixes {
		url := base + suffix
		if !slices.Contains(candidates, url) {
			candidates = append(candidates, url)
		}
	}
	return candidates
}

const xmlViewerMarker = "webkit-xml-viewer-source-xml"

// unwrapFeedDocument extracts the raw XML from a page rendered by the
// browser. Chrome wraps XML documents in its viewer markup
// (webkit-xml-viewer-source-xml); the original document is recovered
// from that wrapper, otherwise the whole page is assumed to be the
// feed. The wrapper content must not go through an HTML parser: HTML
// treats <link> as a void element, which detaches RSS entry link text
// from its element and empties every entry link. The XML is sliced out
// of the serialized page instead.
func unwrapFeedDocument(pageHTML string) string {
	start := strings.Index(pageHTML, xmlViewerMarker)
	if start < 0 {
		return pageHTML
	}
	open := strings.Index(pageHTML[start:], ">")
	if open < 0 {
		return pageHTML
	}
	body := pageHTML[start+open+1:]

	end := matchingDivEnd(body)
	if end < 0 {
		return pageHTML
	}
	inner := strings.TrimSpace(body[:end])
	if inner == "" {
		return pageHTML
	}
	return inner
}

// matchingDivEnd returns the offset of the close tag balancing an
// already-open div, walking nested divs so markup inside the feed (Atom
// xhtml content) does not cut the document short. Returns -1 when the
// markup never closes.
func matchingDivEnd(s string) int {
	depth := 1
	offset := 0
	for {
		closeIdx := strings.Index(s[offset:], "</div>")
		if closeIdx < 0 {
			return -1
		}
		openIdx := strings.Index(s[offset:], "<div")
		if openIdx >= 0 && openIdx < closeIdx {
			depth++
			offset += openIdx + len("<div")
			continue
		}
		depth--
		if depth == 0 {
			return offset + closeIdx
		}
		offset += closeIdx + len("</div>")
	}
}

// parseFeedEntries parses an RSS or Atom document into candidate
// articles. Entries without a link are skipped. The error is non-nil
// only when the document is not a valid feed at all.
func parseFeedEntries(feedXML string, now time.Time) ([]entity.CandidateArticle, error) {
	parsed, err := gofeed.NewParser().ParseString(feedXML)
	if err != nil {
		return nil, err
	}

	candidates := make([]entity.CandidateArticle, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" || strings.TrimSpace(item.Title) == "" {
			continue
		}

		publishedAt := now
		switch {
		case item.PublishedParsed != nil:
			publishedAt = item.PublishedParsed.Local()
		case item.UpdatedParsed != nil:
			publishedAt = item.UpdatedParsed.Local()
		}

		candidates = append(candidates, entity.CandidateArticle{
			Title:       strings.TrimSpace(item.Title),
			Link:        item.Link,
			Summary:     truncateSummary(stripHTML(item.Description)),
			PublishedAt: publishedAt,
		})
	}
	return candidates, nil
}

// stripHTML reduces an HTML fragment to its text content.
func stripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
