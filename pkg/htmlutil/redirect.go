package htmlutil

import (
	"regexp"
	"strings"
)

// Search engines and consent walls sometimes hand back an interstitial
// page whose only content is a client-side redirect. These patterns
// recover the real destination so the follower can continue.
var (
	metaRefreshRe = regexp.MustCompile(
		`(?i)<meta[^>]+http-equiv\s*=\s*["']?refresh["']?[^>]+content\s*=\s*["']?\d+\s*;\s*url\s*=\s*["']?([^"'>\s]+)`)
	metaRefreshReversedRe = regexp.MustCompile(
		`(?i)<meta[^>]+content\s*=\s*["']?\d+\s*;\s*url\s*=\s*["']?([^"'>\s]+)[^>]+http-equiv\s*=\s*["']?refresh["']?`)

	jsRedirectRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)window\.location(?:\.href)?\s*=\s*["']([^"']+)["']`),
		regexp.MustCompile(`(?i)(?:^|[^\w.])location(?:\.href)?\s*=\s*["']([^"']+)["']`),
		regexp.MustCompile(`(?i)document\.location(?:\.href)?\s*=\s*["']([^"']+)["']`),
		regexp.MustCompile(`(?i)window\.location\.replace\s*\(\s*["']([^"']+)["']\s*\)`),
		regexp.MustCompile(`(?i)(?:^|[^\w.])location\.replace\s*\(\s*["']([^"']+)["']\s*\)`),
		regexp.MustCompile(`(?i)window\.location\.assign\s*\(\s*["']([^"']+)["']\s*\)`),
	}
)

// ExtractRedirectURL returns the destination of a meta-refresh or
// JavaScript redirect found in the page, or "" when the page is a real
// document.
func ExtractRedirectURL(page string) string {
	for _, re := range []*regexp.Regexp{metaRefreshRe, metaRefreshReversedRe} {
		if m := re.FindStringSubmatch(page); len(m) > 1 {
			return trimURLArtifacts(m[1])
		}
	}
	for _, re := range jsRedirectRes {
		m := re.FindStringSubmatch(page)
		if len(m) < 2 {
			continue
		}
		u := trimURLArtifacts(m[1])
		// Fragment-only and self-referential targets are page behavior,
		// not redirects.
		if u != "" && !strings.HasPrefix(u, "#") && u != "." && u != "./" {
			return u
		}
	}
	return ""
}

func trimURLArtifacts(u string) string {
	u = strings.TrimSpace(u)
	u = strings.TrimSuffix(u, `"`)
	u = strings.TrimSuffix(u, `'`)
	return strings.TrimSuffix(u, `>`)
}
