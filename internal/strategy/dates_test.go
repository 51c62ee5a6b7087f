package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateAbsoluteLayouts(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		text string
		want time.Time
	}{
		{"2023-03-05", time.Date(2023, 3, 5, 0, 0, 0, 0, time.Local)},
		{"2023.03.05", time.Date(2023, 3, 5, 0, 0, 0, 0, time.Local)},
		{"2023. 3. 5.", time.Date(2023, 3, 5, 0, 0, 0, 0, time.Local)},
		{"2023년 3월 5일", time.Date(2023, 3, 5, 0, 0, 0, 0, time.Local)},
		{"Mar 5, 2023", time.Date(2023, 3, 5, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, ok := parseDate(tt.text, now)
		require.True(t, ok, "parseDate(%q)", tt.text)
		assert.Equal(t, tt.want, got, "parseDate(%q)", tt.text)
	}
}

func TestParseDateRelativePhrases(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		text string
		want time.Time
	}{
		{"3일 전", now.AddDate(0, 0, -3)},
		{"2개월 전", now.AddDate(0, -2, 0)},
		{"1년 전", now.AddDate(-1, 0, 0)},
		{"5시간 전", now.Add(-5 * time.Hour)},
		{"3 days ago", now.AddDate(0, 0, -3)},
		{"2 months ago", now.AddDate(0, -2, 0)},
		{"1 year ago", now.AddDate(-1, 0, 0)},
	}
	for _, tt := range tests {
		got, ok := parseDate(tt.text, now)
		require.True(t, ok, "parseDate(%q)", tt.text)
		assert.Equal(t, tt.want, got, "parseDate(%q)", tt.text)
	}
}

func TestParseDateUnknownFormats(t *testing.T) {
	now := time.Now()
	for _, text := range []string{"", "yesterday-ish", "soon", "지난 주 언젠가"} {
		_, ok := parseDate(text, now)
		assert.False(t, ok, "parseDate(%q)", text)
	}
}
