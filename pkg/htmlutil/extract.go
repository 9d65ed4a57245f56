// Package htmlutil provides HTML processing helpers for scraped search pages.
package htmlutil

import (
	"html"
	"regexp"
	"strings"
)

// StripTags removes HTML tags and returns plain text.
func StripTags(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}
	content := tagPattern.ReplaceAllString(htmlContent, " ")
	content = DecodeHTMLEntities(content)
	content = multiSpacePattern.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// Title extracts the title from HTML content.
func Title(htmlContent string) string {
	if matches := titlePattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(DecodeHTMLEntities(matches[1]))
	}
	if matches := ogTitlePattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(DecodeHTMLEntities(matches[1]))
	}
	if matches := firstH1Pattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(DecodeHTMLEntities(matches[1]))
	}
	return ""
}

// Description extracts the meta description from HTML content.
func Description(htmlContent string) string {
	if matches := descPattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(DecodeHTMLEntities(matches[1]))
	}
	if matches := ogDescPattern.FindStringSubmatch(htmlContent); len(matches) > 1 {
		return strings.TrimSpace(DecodeHTMLEntities(matches[1]))
	}
	return ""
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	multiSpacePattern = regexp.MustCompile(`\s+`)
	titlePattern      = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	ogTitlePattern    = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`)
	firstH1Pattern    = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)
	descPattern       = regexp.MustCompile(`(?i)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`)
	ogDescPattern     = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)
)

// IsNotFound detects common "404" or "not found" pages so a dead link is
// never counted as a verified mention.
func IsNotFound(text string) bool {
	lower := strings.ToLower(text)
	patterns := []string{
		"404 not found",
		"page not found",
		"error 404",
		"the page you requested cannot be found",
		"user not found",
		"profile not found",
		"account not found",
		"user does not exist",
		"no such user",
		"this page doesn't exist",
		"this profile is not available",
		"this account has been suspended",
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsBlockedPage detects consent walls, captchas, and bot checks that
// search engines serve instead of results. Pages matching this are not
// worth parsing and must not be cached as successes.
func IsBlockedPage(htmlContent string) bool {
	lower := strings.ToLower(htmlContent)
	patterns := []string{
		"our systems have detected unusual traffic",
		"detected unusual traffic from your computer network",
		"before you continue to google",
		"g-recaptcha",
		"id=\"captcha",
		"are you a robot",
		"enable javascript and cookies to continue",
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// DecodeHTMLEntities decodes HTML entities in extracted text. Search
// engines encode snippets a second time inside the markup, so text
// that already passed through a parser can still carry &amp; and
// friends.
func DecodeHTMLEntities(s string) string {
	return html.UnescapeString(s)
}
