// Package auth sources session cookies from local browsers so scrapers
// can fetch pages that gate results behind a login.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // Import all browser cookie stores
	"github.com/browserutils/kooky/browser/chrome"
	"github.com/browserutils/kooky/browser/firefox"
)

// siteDomains maps scraped site names to their cookie domains.
var siteDomains = map[string]string{
	"google":     "google.com",
	"bing":       "bing.com",
	"duckduckgo": "duckduckgo.com",
	"instagram":  "instagram.com",
	"linkedin":   "linkedin.com",
	"facebook":   "facebook.com",
	"twitter":    "x.com",
	"tiktok":     "tiktok.com",
}

// siteEssentialCookies maps site names to the cookie names worth sending.
// Sites without an entry get every cookie kooky finds for the domain.
var siteEssentialCookies = map[string][]string{
	"google":    {"SID", "HSID", "SSID", "SAPISID", "NID"},
	"instagram": {"sessionid", "csrftoken"},
	"linkedin":  {"li_at", "JSESSIONID", "lidc", "bcookie"},
	"facebook":  {"c_user", "xs", "fr"},
	"twitter":   {"auth_token", "ct0", "kdt", "twid"},
	"tiktok":    {"sessionid"},
}

// BrowserSource reads cookies from browser cookie stores. Environment
// variables of the form NAMESIFT_COOKIES_<SITE> (e.g.
// NAMESIFT_COOKIES_GOOGLE="SID=...;NID=...") take priority over any
// browser store.
type BrowserSource struct {
	logger *slog.Logger
}

// NewBrowserSource creates a new browser cookie source.
func NewBrowserSource(logger *slog.Logger) *BrowserSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowserSource{logger: logger}
}

// Cookies returns cookies for the given site from the environment or
// browser stores. Unknown sites and read failures yield nil, nil:
// scraping proceeds unauthenticated.
func (s *BrowserSource) Cookies(ctx context.Context, site string) (map[string]string, error) {
	if cookies := cookiesFromEnv(site); len(cookies) > 0 {
		s.logger.DebugContext(ctx, "using cookies from environment", "site", site, "count", len(cookies))
		return cookies, nil
	}

	domain, ok := siteDomains[site]
	if !ok {
		return nil, nil //nolint:nilnil // no cookies for unknown site is not an error
	}

	s.logger.DebugContext(ctx, "reading browser cookies", "site", site, "domain", domain)

	// Try Firefox-family profiles first (readable without OS keychain access)
	cookies := s.tryFirefoxProfiles(ctx, domain, site)
	if len(cookies) > 0 {
		return cookies, nil
	}

	cookies = s.tryChromeProfiles(ctx, domain, site)
	if len(cookies) > 0 {
		return cookies, nil
	}

	// Fall back to kooky's automatic browser detection
	kookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.DomainHasSuffix(domain))
	if err != nil {
		s.logger.Debug("failed to read browser cookies", "site", site, "error", err)
		return nil, nil //nolint:nilnil // failed browser read is not a fatal error
	}

	if len(kookies) == 0 {
		return nil, nil //nolint:nilnil // no browser cookies is not an error
	}

	return s.filterEssentialCookies(kookies, site), nil
}

// cookiesFromEnv parses NAMESIFT_COOKIES_<SITE> into a cookie map.
func cookiesFromEnv(site string) map[string]string {
	raw := os.Getenv("NAMESIFT_COOKIES_" + strings.ToUpper(site))
	if raw == "" {
		return nil
	}
	cookies := make(map[string]string)
	for pair := range strings.SplitSeq(raw, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if found && name != "" {
			cookies[name] = value
		}
	}
	return cookies
}

// tryFirefoxProfiles attempts to read cookies from Firefox profiles.
func (s *BrowserSource) tryFirefoxProfiles(ctx context.Context, domain, site string) map[string]string {
	home := os.Getenv("HOME")
	if home == "" {
		return nil
	}

	dirs := []string{
		filepath.Join(home, "Library", "Application Support", "Firefox", "Profiles"),
		filepath.Join(home, ".mozilla", "firefox"),
	}

	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*", "cookies.sqlite"))
		if err != nil || len(matches) == 0 {
			continue
		}
		for _, f := range matches {
			kookies, err := firefox.ReadCookies(ctx, f, kooky.Valid, kooky.DomainHasSuffix(domain))
			if err != nil {
				s.logger.Debug("failed to read Firefox cookies",
					"profile", filepath.Base(filepath.Dir(f)),
					"site", site,
					"error", err)
				continue
			}
			if len(kookies) > 0 {
				s.logger.Debug("found Firefox cookies",
					"profile", filepath.Base(filepath.Dir(f)),
					"site", site,
					"count", len(kookies))
				return s.filterEssentialCookies(kookies, site)
			}
		}
	}

	return nil
}

// tryChromeProfiles attempts to read cookies from Chrome profiles.
func (s *BrowserSource) tryChromeProfiles(ctx context.Context, domain, site string) map[string]string {
	home := os.Getenv("HOME")
	if home == "" {
		return nil
	}

	baseDirs := []string{
		filepath.Join(home, "Library", "Application Support", "Google", "Chrome"),
		filepath.Join(home, ".config", "google-chrome"),
	}

	for _, base := range baseDirs {
		for i := range 6 {
			profile := "Default"
			if i > 0 {
				profile = fmt.Sprintf("Profile %d", i)
			}
			cookiesFile := filepath.Join(base, profile, "Cookies")
			if _, err := os.Stat(cookiesFile); err != nil {
				continue
			}

			kookies, err := chrome.ReadCookies(ctx, cookiesFile, kooky.Valid, kooky.DomainHasSuffix(domain))
			if err != nil {
				// Chrome encrypts cookies with an OS keychain key; decryption can fail headless
				if strings.Contains(err.Error(), "encryption") || strings.Contains(err.Error(), "decrypt") {
					s.logger.Warn("Chrome cookies exist but cannot be decrypted",
						"profile", profile,
						"site", site,
						"hint", "use Firefox, or set NAMESIFT_COOKIES_"+strings.ToUpper(site))
				} else {
					s.logger.Debug("failed to read Chrome cookies", "profile", profile, "site", site, "error", err)
				}
				continue
			}

			if len(kookies) > 0 {
				s.logger.Debug("found Chrome cookies", "profile", profile, "site", site, "count", len(kookies))
				return s.filterEssentialCookies(kookies, site)
			}
		}
	}

	return nil
}

// filterEssentialCookies extracts only the required cookies for a site.
func (s *BrowserSource) filterEssentialCookies(kookies []*kooky.Cookie, site string) map[string]string {
	essential, ok := siteEssentialCookies[site]
	if !ok {
		// No filter defined, return all cookies
		cookies := make(map[string]string)
		for _, c := range kookies {
			cookies[c.Name] = c.Value
		}
		return cookies
	}

	essentialSet := make(map[string]bool)
	for _, name := range essential {
		essentialSet[name] = true
	}

	cookies := make(map[string]string)
	for _, c := range kookies {
		if essentialSet[c.Name] {
			cookies[c.Name] = c.Value
		}
	}

	// Log which essential cookies were found vs missing
	var found, missing []string
	for _, name := range essential {
		if _, ok := cookies[name]; ok {
			found = append(found, name)
		} else {
			missing = append(missing, name)
		}
	}

	if len(found) > 0 {
		s.logger.Info("browser cookies found", "site", site, "keys", found)
	}
	if len(missing) > 0 {
		s.logger.Info("browser cookies missing", "site", site, "keys", missing)
	}

	return cookies
}
