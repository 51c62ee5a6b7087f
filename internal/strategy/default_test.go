package strategy

import (
	"context"
	"testing"

	"github.com/newcodes7/smalltown-crawler/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogPage = `<html><body>
<article>
  <h2>Designing Our Event Bus</h2>
  <a href="/posts/event-bus">read</a>
  <p>Why we moved from polling to an event bus, and what broke along the way.</p>
  <img src="/images/event-bus.png">
</article>
<article>
  <h2>Profiling Go Services</h2>
  <a href="https://example.com/posts/profiling">read</a>
</article>
<article>
  <h2>FYI</h2>
  <a href="/posts/fyi">read</a>
</article>
</body></html>`

func testOrg(blogLink string) *entity.Organization {
	return &entity.Organization{ID: 1, Name: "Example Corp", BlogLink: blogLink}
}

func TestDefaultStrategyHTMLFallback(t *testing.T) {
	session := newFakeSession(map[string]string{
		"https://example.com/blog": blogPage,
	})
	org := testOrg("https://example.com/blog")

	candidates, err := NewDefaultStrategy().Extract(context.Background(), session, org)
	require.NoError(t, err)

	// Two valid articles; the 3-character title is filtered out.
	require.Len(t, candidates, 2)

	assert.Equal(t, "Designing Our Event Bus", candidates[0].Title)
	assert.Equal(t, "https://example.com/blog/posts/event-bus", candidates[0].Link)
	assert.Contains(t, candidates[0].Summary, "event bus")
	assert.Equal(t, "https://example.com/blog/images/event-bus.png", candidates[0].ThumbnailImage)

	assert.Equal(t, "Profiling Go Services", candidates[1].Title)
	assert.Equal(t, "https://example.com/posts/profiling", candidates[1].Link)
}

func TestDefaultStrategyPrefersFeed(t *testing.T) {
	session := newFakeSession(map[string]string{
		"https://example.com/blog/feed": sampleRSS,
		"https://example.com/blog":      blogPage,
	})
	org := testOrg("https://example.com/blog")

	candidates, err := NewDefaultStrategy().Extract(context.Background(), session, org)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, "https://example.com/posts/scaling", candidates[0].Link)

	// The blog page itself is never rendered once a feed works.
	assert.NotContains(t, session.navigated, "https://example.com/blog")
}

func TestDefaultStrategyFeedWrappedByXMLViewer(t *testing.T) {
	wrapped := `<html><body><div id="webkit-xml-viewer-source-xml">` + sampleRSS + `</div></body></html>`
	session := newFakeSession(map[string]string{
		"https://example.com/blog/feed": wrapped,
	})

	candidates, err := NewDefaultStrategy().Extract(context.Background(), session, testOrg("https://example.com/blog"))
	require.NoError(t, err)
	assert.Len(t, candidates, 3)
}

func TestDefaultStrategyUnreachableBlog(t *testing.T) {
	session := newFakeSession(nil)

	_, err := NewDefaultStrategy().Extract(context.Background(), session, testOrg("https://gone.example.com"))
	assert.Error(t, err)
}

func TestDefaultStrategyHostRuleLinkPrefix(t *testing.T) {
	page := `<html><body>
<ul class="list_article">
  <li>
    <span class="tit_subject">Shipping the New Editor</span>
    <a href="/@team/123">go</a>
    <span class="publish_time">3일 전</span>
  </li>
</ul>
</body></html>`
	session := newFakeSession(map[string]string{
		"https://brunch.co.kr/@team": page,
	})

	candidates, err := NewDefaultStrategy().Extract(context.Background(), session, testOrg("https://brunch.co.kr/@team"))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "https://brunch.co.kr/@team/123", candidates[0].Link)
}
