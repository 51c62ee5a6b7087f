package strategy

import "strings"

// hostRule refines the default HTML extraction for a known platform.
// Empty fields fall back to the generic selectors.
type hostRule struct {
	// containerSelector overrides the generic article container set.
	containerSelector string
	// titleSelector overrides the generic title lookup.
	titleSelector string
	// dateSelector points at the element carrying the published date.
	dateSelector string
	// imageSelector overrides the thumbnail lookup.
	imageSelector string
	// linkPrefix, when set, is prepended to relative hrefs instead of
	// resolving them against the blog URL.
	linkPrefix string
}

// hostRules maps a host fragment to its extraction overrides. Adding a
// platform is a data change only; the fallback walk in the default
// strategy does not care which rule matched.
var hostRules = map[string]hostRule{
	"d2.naver.com": {
		containerSelector: ".cont_post",
		titleSelector:     "h2 a",
		dateSelector:      "dd.posted_at",
	},
	"techblog.woowahan.com": {
		containerSelector: ".post-item",
		titleSelector:     "h2.post-title",
		dateSelector:      ".post-author-date",
		imageSelector:     ".post-thumbnail img",
	},
	"toss.tech": {
		containerSelector: "ul li a[href^='/article']",
		dateSelector:      "span[class*='date']",
	},
	"brunch.co.kr": {
		containerSelector: ".list_article li",
		titleSelector:     ".tit_subject",
		dateSelector:      ".publish_time",
		linkPrefix:        "https://brunch.co.kr",
	},
}

// ruleForHost returns the override rule whose fragment appears in the
// host, if any.
func ruleForHost(host string) (hostRule, bool) {
	for fragment, rule := range hostRules {
		if host != "" && strings.Contains(host, fragment) {
			return rule, true
		}
	}
	return hostRule{}, false
}
