package strategy

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date formats seen across the tracked blogs. Korean tech blogs commonly
// use dotted dates ("2023. 3. 5.") or relative phrases ("3일 전").
var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006.01.02",
	"2006. 1. 2.",
	"2006. 01. 02.",
	"2006년 1월 2일",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

var relativePattern = regexp.MustCompile(`^(\d+)\s*(년|개월|주|일|시간|분|years?|months?|weeks?|days?|hours?|minutes?)\s*(전|ago)$`)

// parseDate parses a published date in any of the known absolute layouts
// or as a relative phrase, evaluated against now. ok is false when no
// format matched; callers then fall back to the extraction time.
func parseDate(text string, now time.Time) (t time.Time, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range absoluteLayouts {
		if parsed, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return parsed, true
		}
	}

	return parseRelativeDate(text, now)
}

// parseRelativeDate handles free-text "N units ago" phrases, both Korean
// and English.
func parseRelativeDate(text string, now time.Time) (time.Time, bool) {
	m := relativePattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	switch unit := m[2]; {
	case unit == "년" || strings.HasPrefix(unit, "year"):
		return now.AddDate(-n, 0, 0), true
	case unit == "개월" || strings.HasPrefix(unit, "month"):
		return now.AddDate(0, -n, 0), true
	case unit == "주" || strings.HasPrefix(unit, "week"):
		return now.AddDate(0, 0, -7*n), true
	case unit == "일" || strings.HasPrefix(unit, "day"):
		return now.AddDate(0, 0, -n), true
	case unit == "시간" || strings.HasPrefix(unit, "hour"):
		return now.Add(-time.Duration(n) * time.Hour), true
	case unit == "분" || strings.HasPrefix(unit, "minute"):
		return now.Add(-time.Duration(n) * time.Minute), true
	}
	return time.Time{}, false
}
