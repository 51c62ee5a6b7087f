package strategy

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mediumCards = `<html><body>
<div class="postArticle" data-post-id="abc123">
  <a href="/@author">author</a>
  <a href="/publication">pub</a>
  <a href="/publication/about">about</a>
  <a href="/publication/scaling-search-abc123">post</a>
  <h3>Scaling Search at Example</h3>
  <img class="progressiveMedia-image" src="https://cdn.example.com/resize:fill:300:200/img.png">
  <time datetime="2024-02-10T08:30:00Z">Feb 10</time>
</div>
<div class="postArticle" data-post-id="def456">
  <a href="/@author">author</a>
  <a href="/publication">pub</a>
  <a href="/publication/about">about</a>
  <a href="https://medium.com/publication/inside-our-cdn-def456">post</a>
  <h3>Inside Our CDN</h3>
</div>
<div class="postArticle" data-post-id="ghi789">
  <a href="/@author">only two anchors</a>
  <a href="/publication">pub</a>
  <h3>Card Missing Its Post Link</h3>
</div>
</body></html>`

func TestMediumParseArticles(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(mediumCards))
	require.NoError(t, err)

	org := testOrg("https://medium.com/publication")
	candidates := NewMediumStrategy().parseArticles(doc, org)

	// The card without a fourth anchor is skipped.
	require.Len(t, candidates, 2)

	first := candidates[0]
	assert.Equal(t, "Scaling Search at Example", first.Title)
	assert.Equal(t, "https://medium.com/publication/publication/scaling-search-abc123", first.Link)
	// The resize segment is stripped from the thumbnail.
	assert.Equal(t, "https://cdn.example.com/img.png", first.ThumbnailImage)
	assert.Equal(t, 2024, first.PublishedAt.Year())

	assert.Equal(t, "https://medium.com/publication/inside-our-cdn-def456", candidates[1].Link)
}

func TestMediumExtractWithoutTimebuckets(t *testing.T) {
	session := newFakeSession(map[string]string{
		"https://medium.com/publication/archive": mediumCards,
	})
	org := testOrg("https://medium.com/publication")

	s := NewMediumStrategy()
	s.pause = func(context.Context, time.Duration, time.Duration) error { return nil }

	candidates, err := s.Extract(context.Background(), session, org)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, []string{"https://medium.com/publication/archive"}, session.navigated)
}

func TestMediumExtractWalksTimebuckets(t *testing.T) {
	archive := `<html><body>
<div class="timebucket">
  <a href="https://medium.com/publication/archive/2023">2023</a>
  <a href="https://medium.com/publication/archive/2024">2024</a>
</div>
</body></html>`
	session := newFakeSession(map[string]string{
		"https://medium.com/publication/archive":      archive,
		"https://medium.com/publication/archive/2023": mediumCards,
		"https://medium.com/publication/archive/2024": mediumCards,
	})
	org := testOrg("https://medium.com/publication")

	s := NewMediumStrategy()
	var interPagePauses int
	s.pause = func(_ context.Context, min, max time.Duration) error {
		if min == 2*time.Second && max == 8*time.Second {
			interPagePauses++
		}
		return nil
	}

	candidates, err := s.Extract(context.Background(), session, org)
	require.NoError(t, err)
	assert.Len(t, candidates, 4)
	assert.Equal(t, []string{
		"https://medium.com/publication/archive",
		"https://medium.com/publication/archive/2023",
		"https://medium.com/publication/archive/2024",
	}, session.navigated)
	// Paced between the two year pages, not after the last one.
	assert.Equal(t, 1, interPagePauses)
}

func TestMediumBotDetection(t *testing.T) {
	session := newFakeSession(map[string]string{
		"https://medium.com/publication/archive": `<html><body><h1>Are you a robot?</h1></body></html>`,
	})
	require.NoError(t, session.Navigate(context.Background(), "https://medium.com/publication/archive"))

	detected, err := NewMediumStrategy().botDetected(context.Background(), session)
	require.NoError(t, err)
	assert.True(t, detected)
}

func TestMediumCanHandle(t *testing.T) {
	s := NewMediumStrategy()
	assert.True(t, s.CanHandle("https://medium.com/netflix-techblog"))
	assert.True(t, s.CanHandle("https://engineering.medium.com"))
	assert.False(t, s.CanHandle("https://techblog.woowahan.com"))
}
