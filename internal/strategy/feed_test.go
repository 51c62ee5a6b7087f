package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Tech Blog</title>
    <item>
      <title>Scaling the Ingest Pipeline</title>
      <link>https://example.com/posts/scaling</link>
      <description>&lt;p&gt;How we &lt;b&gt;scaled&lt;/b&gt; ingest.&lt;/p&gt;</description>
      <pubDate>Tue, 05 Mar 2024 09:00:00 +0900</pubDate>
    </item>
    <item>
      <title>Postmortem: The Friday Deploy</title>
      <link>https://example.com/posts/postmortem</link>
    </item>
    <item>
      <title>Untitled entry without link</title>
    </item>
    <item>
      <title>Migrating to Kubernetes</title>
      <link>https://example.com/posts/k8s</link>
    </item>
  </channel>
</rss>`

func TestFeedCandidateURLs(t *testing.T) {
	got := feedCandidateURLs("https://blog.example.com/")
	assert.Equal(t, []string{
		"https://blog.example.com/feed",
		"https://blog.example.com/rss",
		"https://blog.example.com/atom.xml",
		"https://blog.example.com/feeds/posts/default",
	}, got)
}

func TestFeedCandidateURLsMediumPriority(t *testing.T) {
	got := feedCandidateURLs("https://medium.com/netflix-techblog")
	require.True(t, len(got) >= 2)
	assert.Equal(t, "https://medium.com/netflix-techblog/feed", got[0])
	assert.Equal(t, "https://medium.com/netflix-techblog/rss", got[1])
	// No duplicates from the common suffix list.
	seen := map[string]bool{}
	for _, u := range got {
		assert.False(t, seen[u], "duplicate candidate %s", u)
		seen[u] = true
	}
}

func TestFeedCandidateURLsBlankBase(t *testing.T) {
	assert.Empty(t, feedCandidateURLs("   "))
}

func TestUnwrapFeedDocument(t *testing.T) {
	wrapped := `<html><body><div id="webkit-xml-viewer-source-xml">` + sampleRSS + `</div></body></html>`
	assert.Equal(t, sampleRSS, unwrapFeedDocument(wrapped))

	// Plain documents pass through untouched.
	assert.Equal(t, sampleRSS, unwrapFeedDocument(sampleRSS))
}

func TestUnwrapFeedDocumentKeepsEntryLinks(t *testing.T) {
	// RSS <link> elements carry their URL as text. An HTML round-trip
	// would treat <link> as a void element and orphan that text, so the
	// unwrapped document must be the untouched XML.
	wrapped := `<html><body><div id="webkit-xml-viewer-source-xml">` + sampleRSS + `</div></body></html>`

	candidates, err := parseFeedEntries(unwrapFeedDocument(wrapped), time.Now())
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "https://example.com/posts/scaling", candidates[0].Link)
	assert.Equal(t, "https://example.com/posts/postmortem", candidates[1].Link)
	assert.Equal(t, "https://example.com/posts/k8s", candidates[2].Link)
}

func TestUnwrapFeedDocumentIgnoresViewerChrome(t *testing.T) {
	// The viewer builds its pretty-print tree out of divs after the
	// source wrapper; none of it may leak into the feed.
	wrapped := `<html><body><div id="webkit-xml-viewer-source-xml">` + sampleRSS +
		`</div><div class="pretty-print"><div class="collapsible">rendered tree</div></div></body></html>`
	assert.Equal(t, sampleRSS, unwrapFeedDocument(wrapped))
}

func TestUnwrapFeedDocumentNestedDivContent(t *testing.T) {
	feed := `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom">` +
		`<entry><title>Entry</title><content type="xhtml"><div>inner <div>nested</div></div></content></entry></feed>`
	wrapped := `<html><body><div id="webkit-xml-viewer-source-xml">` + feed + `</div></body></html>`
	assert.Equal(t, feed, unwrapFeedDocument(wrapped))
}

func TestParseFeedEntries(t *testing.T) {
	now := time.Now()
	candidates, err := parseFeedEntries(sampleRSS, now)
	require.NoError(t, err)

	// The entry without a link is skipped.
	require.Len(t, candidates, 3)

	first := candidates[0]
	assert.Equal(t, "Scaling the Ingest Pipeline", first.Title)
	assert.Equal(t, "https://example.com/posts/scaling", first.Link)
	assert.Equal(t, "How we scaled ingest.", first.Summary)
	wantPublished := time.Date(2024, 3, 5, 9, 0, 0, 0, time.FixedZone("KST", 9*3600))
	assert.True(t, first.PublishedAt.Equal(wantPublished), "got %v", first.PublishedAt)

	// Entries without a date default to the extraction time.
	assert.Equal(t, now, candidates[1].PublishedAt)
}

func TestParseFeedEntriesRejectsHTML(t *testing.T) {
	_, err := parseFeedEntries("<html><body>not a feed</body></html>", time.Now())
	assert.Error(t, err)
}
