// Platform resolution from URL domains.

package hit

import (
	"sort"
	"strings"
)

// domainPlatforms maps URL domains to normalized platform names.
// Kept as data rather than conditionals so new platforms are one-line
// additions and a single test covers the whole table.
var domainPlatforms = map[string]string{
	"instagram.com":      "Instagram",
	"twitter.com":        "Twitter",
	"x.com":              "Twitter/X",
	"facebook.com":       "Facebook",
	"linkedin.com":       "LinkedIn",
	"tiktok.com":         "TikTok",
	"youtube.com":        "YouTube",
	"github.com":         "GitHub",
	"pinterest.com":      "Pinterest",
	"reddit.com":         "Reddit",
	"quora.com":          "Quora",
	"scholar.google.com": "Google Scholar",
	"researchgate.net":   "ResearchGate",
	"academia.edu":       "Academia.edu",
	"wordpress.com":      "WordPress",
	"blogspot.com":       "Blogger",
	"medium.com":         "Medium",
}

// sortedDomains holds table keys longest-first so that
// scholar.google.com wins over google.com style overlaps.
var sortedDomains = func() []string {
	domains := make([]string, 0, len(domainPlatforms))
	for d := range domainPlatforms {
		domains = append(domains, d)
	}
	sort.Slice(domains, func(i, j int) bool {
		if len(domains[i]) != len(domains[j]) {
			return len(domains[i]) > len(domains[j])
		}
		return domains[i] < domains[j]
	})
	return domains
}()

// ResolvePlatform returns the platform name for a URL via longest-match
// domain lookup. Unknown domains and empty URLs resolve to "Web".
// The function is pure and total; every provider and the scorer use it
// so platform-derived bonuses stay consistent.
func ResolvePlatform(rawURL string) string {
	if rawURL == "" {
		return "Web"
	}
	lower := strings.ToLower(rawURL)
	for _, domain := range sortedDomains {
		if strings.Contains(lower, domain) {
			return domainPlatforms[domain]
		}
	}
	return "Web"
}
