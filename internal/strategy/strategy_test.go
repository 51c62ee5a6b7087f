package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorPrefersSpecializedStrategies(t *testing.T) {
	selector, err := NewSelector(NewDefaultStrategy(), NewMediumStrategy(), NewTistoryStrategy())
	require.NoError(t, err)

	tests := []struct {
		blogURL string
		want    string
	}{
		{"https://medium.com/netflix-techblog", "Medium"},
		{"https://netflixtechblog.medium.com", "Medium"},
		{"https://woowabros.tistory.com", "Tistory"},
		{"https://tech.kakao.com/blog", "Default"},
		{"", "Default"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, selector.Select(tt.blogURL).Name(), "blog URL %q", tt.blogURL)
	}
}

func TestNewSelectorRequiresDefault(t *testing.T) {
	_, err := NewSelector(nil, NewMediumStrategy())
	assert.ErrorIs(t, err, ErrNoDefaultStrategy)
}

func TestResolveLink(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"absolute kept", "https://example.com/blog", "https://example.com/posts/1", "https://example.com/posts/1"},
		{"root-relative appended to base", "https://example.com/blog/", "/posts/1", "https://example.com/blog/posts/1"},
		{"bare relative dropped", "https://example.com/blog", "posts/1", ""},
		{"empty dropped", "https://example.com/blog", "", ""},
		{"whitespace dropped", "https://example.com/blog", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLink(tt.base, tt.href))
		})
	}
}

func TestTruncateSummary(t *testing.T) {
	short := "a short summary"
	assert.Equal(t, short, truncateSummary(short))

	long := strings.Repeat("가", 250)
	got := truncateSummary(long)
	assert.Equal(t, strings.Repeat("가", 200)+"...", got)
	assert.Len(t, []rune(got), 203)
}

func TestRuleForHost(t *testing.T) {
	rule, ok := ruleForHost("brunch.co.kr")
	require.True(t, ok)
	assert.Equal(t, "https://brunch.co.kr", rule.linkPrefix)

	_, ok = ruleForHost("blog.example.com")
	assert.False(t, ok)
}
