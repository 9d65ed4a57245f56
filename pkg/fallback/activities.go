package fallback

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/osprey-dev/namesift/pkg/hit"
)

// DefaultActivityPlatforms is the platform list used when an activities
// request does not name its own.
var DefaultActivityPlatforms = []string{"instagram", "twitter", "facebook", "tiktok"} //nolint:gochecknoglobals // static default

// activitySearchURLs maps a lowercase platform name to its direct
// user-search endpoint. %s receives the form-encoded name.
var activitySearchURLs = map[string]string{ //nolint:gochecknoglobals // static policy table
	"instagram": "https://www.instagram.com/web/search/topsearch/?query=%s",
	"twitter":   "https://twitter.com/search?q=%s&src=typed_query",
	"facebook":  "https://www.facebook.com/search/people/?q=%s",
	"tiktok":    "https://www.tiktok.com/search/user?q=%s",
	"youtube":   "https://www.youtube.com/results?search_query=%s",
	"linkedin":  "https://www.linkedin.com/search/results/people/?keywords=%s",
}

// PlatformSearchURL returns the direct search endpoint for a platform,
// falling back to a Google query scoped to the platform name.
func PlatformSearchURL(platform, name string) string {
	if tmpl, ok := activitySearchURLs[strings.ToLower(platform)]; ok {
		return fmt.Sprintf(tmpl, url.QueryEscape(name))
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(name+" "+platform)
}

// Activities builds the deterministic activity-search result set for a
// name: two entries per requested platform plus two cross-platform
// Google entries. Like DirectLinks, it is a pure function of its inputs.
func Activities(name string, platforms []string) []hit.RawHit {
	if len(platforms) == 0 {
		platforms = DefaultActivityPlatforms
	}
	hits := make([]hit.RawHit, 0, 2*len(platforms)+2)

	for _, p := range platforms {
		title := titleCase(p)
		link := PlatformSearchURL(p, name)
		hits = append(hits,
			hit.RawHit{
				Source:       title + " - Profile Activity",
				Preview:      fmt.Sprintf("Search %s for '%s' user activities, posts, likes, and interactions", title, name),
				Platform:     title,
				Link:         link,
				Category:     hit.CategorySocialMedia,
				Score:        0.85,
				Verified:     true,
				ActivityType: "profile_activity",
			},
			hit.RawHit{
				Source:       title + " - Interaction Analysis",
				Preview:      fmt.Sprintf("Analyze %s interactions for '%s' including comments, shares, and engagement patterns", title, name),
				Platform:     title,
				Link:         link,
				Category:     hit.CategorySocialMedia,
				Score:        0.80,
				Verified:     true,
				ActivityType: "engagement_analysis",
			},
		)
	}

	hits = append(hits,
		hit.RawHit{
			Source:       "Google Activity Search",
			Preview:      fmt.Sprintf("Search Google for '%s' social media activities, posts, and online presence across all platforms", name),
			Platform:     "Google",
			Link:         "https://www.google.com/search?q=" + url.QueryEscape(name+" social media posts activities"),
			Category:     hit.CategoryGeneral,
			Score:        0.90,
			Verified:     true,
			ActivityType: "comprehensive_search",
		},
		hit.RawHit{
			Source:       "Cross-Platform Activity Analysis",
			Preview:      fmt.Sprintf("Comprehensive analysis of '%s' activities across Instagram, Twitter, Facebook, and TikTok", name),
			Platform:     "Multi-Platform",
			Link:         "https://www.google.com/search?q=" + url.QueryEscape(name+" instagram twitter facebook tiktok"),
			Category:     hit.CategoryGeneral,
			Score:        0.88,
			Verified:     true,
			ActivityType: "cross_platform",
		},
	)
	return hits
}

// titleCase uppercases the first byte of an ASCII platform token.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
