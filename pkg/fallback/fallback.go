// Package fallback synthesizes direct platform search links so a query
// never comes back empty, no matter how many scrapers failed.
package fallback

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/osprey-dev/namesift/pkg/hit"
)

// Floor values for under-population checks.
const (
	// PipelineFloor is the minimum result count for a full pipeline run.
	PipelineFloor = 10
	// SocialFloor is the minimum for the social-only sub-stage.
	SocialFloor = 5
	// ProfessionalFloor is the minimum for the professional sub-stage.
	ProfessionalFloor = 3
)

// platformEntry describes one synthesized direct-search result. The URL
// template receives the encoded name via %s.
type platformEntry struct {
	source   string
	preview  string // %s receives the raw name
	linkTmpl string // %s receives the encoded name
	platform string
	score    float64
	plusEnc  bool // encode spaces as + instead of %20
}

// platformEntries is ordered by descending score. The scores are fixed
// per platform and independent of query outcome.
var platformEntries = []platformEntry{ //nolint:gochecknoglobals // static policy table
	{
		source:   "Instagram Direct Search",
		preview:  "Search Instagram for '%s' - Find profiles, posts, stories, and followers",
		linkTmpl: "https://www.instagram.com/web/search/topsearch/?query=%s",
		platform: "Instagram",
		score:    0.95,
	},
	{
		source:   "Google Comprehensive Search",
		preview:  "Search Google for '%s' across all websites, social media, and public records",
		linkTmpl: "https://www.google.com/search?q=%s+profile+social+media",
		platform: "Google",
		score:    0.92,
		plusEnc:  true,
	},
	{
		source:   "LinkedIn Professional Search",
		preview:  "Find '%s' professional profiles, work history, and career information",
		linkTmpl: "https://www.linkedin.com/search/results/people/?keywords=%s",
		platform: "LinkedIn",
		score:    0.90,
	},
	{
		source:   "Facebook People Search",
		preview:  "Search Facebook for '%s' public profiles, pages, and posts",
		linkTmpl: "https://www.facebook.com/search/people/?q=%s",
		platform: "Facebook",
		score:    0.88,
	},
	{
		source:   "Twitter/X User Search",
		preview:  "Find '%s' on Twitter/X for tweets, replies, and social activity",
		linkTmpl: "https://twitter.com/search?q=%s&src=typed_query&f=user",
		platform: "Twitter/X",
		score:    0.85,
	},
	{
		source:   "TikTok User Search",
		preview:  "Search TikTok for '%s' user accounts and video content",
		linkTmpl: "https://www.tiktok.com/search/user?q=%s",
		platform: "TikTok",
		score:    0.82,
	},
	{
		source:   "YouTube Channel Search",
		preview:  "Find '%s' YouTube channels, videos, and subscriber information",
		linkTmpl: "https://www.youtube.com/results?search_query=%s&sp=EgIQAg%%253D%%253D",
		platform: "YouTube",
		score:    0.80,
		plusEnc:  true,
	},
	{
		source:   "GitHub Developer Search",
		preview:  "Search GitHub for '%s' developer profiles and code repositories",
		linkTmpl: "https://github.com/search?q=%s&type=users",
		platform: "GitHub",
		score:    0.78,
		plusEnc:  true,
	},
	{
		source:   "Pinterest Profile Search",
		preview:  "Find '%s' on Pinterest for boards, pins, and creative content",
		linkTmpl: "https://www.pinterest.com/search/people/?q=%s",
		platform: "Pinterest",
		score:    0.75,
	},
	{
		source:   "Reddit User Search",
		preview:  "Search Reddit for '%s' user accounts, posts, and comment history",
		linkTmpl: "https://www.reddit.com/search/?q=%s&type=user",
		platform: "Reddit",
		score:    0.72,
	},
}

// DirectLinks builds the full synthesized result list for a name. It is
// a pure function of the name: same input, same output, every time.
func DirectLinks(name string) []hit.RawHit {
	hits := make([]hit.RawHit, 0, len(platformEntries))
	for _, e := range platformEntries {
		enc := encodeQuery(name, e.plusEnc)
		hits = append(hits, hit.RawHit{
			Source:   e.source,
			Preview:  fmt.Sprintf(e.preview, name),
			Platform: e.platform,
			Link:     fmt.Sprintf(e.linkTmpl, enc),
			Category: hit.CategoryFallback,
			Score:    e.score,
			Verified: true,
		})
	}
	return hits
}

// EnsureMinimum appends the synthesized direct-search links when the
// result list is shorter than floor. Existing results keep their
// positions; injected entries go at the end, leaving final ordering to
// the ranker.
func EnsureMinimum(results []hit.RawHit, name string, floor int) []hit.RawHit {
	if len(results) >= floor {
		return results
	}
	return append(results, DirectLinks(name)...)
}

// encodeQuery percent-encodes a name for a platform URL. Most platforms
// take %20 for spaces; a few want the form-encoding + instead.
func encodeQuery(name string, plus bool) string {
	if plus {
		return url.QueryEscape(name)
	}
	return strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}
