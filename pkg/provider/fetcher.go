package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/osprey-dev/namesift/pkg/auth"
	"github.com/osprey-dev/namesift/pkg/htmlutil"
	"github.com/osprey-dev/namesift/pkg/httpcache"
)

// Fetcher performs cached, rate-limited page fetches for providers.
type Fetcher struct {
	client  *http.Client
	cache   httpcache.Cacher
	cookies *auth.BrowserSource
	logger  *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithCache sets the HTTP response cache.
func WithCache(cache httpcache.Cacher) FetcherOption {
	return func(f *Fetcher) { f.cache = cache }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = logger }
}

// WithBrowserCookies enables reading session cookies from local browsers.
func WithBrowserCookies(source *auth.BrowserSource) FetcherOption {
	return func(f *Fetcher) { f.cookies = source }
}

// WithHTTPClient overrides the HTTP client (tests).
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = client }
}

// NewFetcher creates a Fetcher. Without options it uses a cookie-jarred
// client, no cache, and the default logger.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	jar, _ := cookiejar.New(nil) //nolint:errcheck // nil options never fail
	f := &Fetcher{
		client: &http.Client{Timeout: 20 * time.Second, Jar: jar},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// maxInterstitialHops bounds how many client-side redirects Get will
// chase before giving up on the page.
const maxInterstitialHops = 2

// Get fetches a URL as a browser would, with caching and per-domain
// rate limiting. Consent walls and captcha pages come back as an error
// and are never cached as successes. Meta-refresh and JavaScript
// interstitials are followed to the real document.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	for hop := 0; ; hop++ {
		body, err := f.fetchOnce(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		dest := htmlutil.ExtractRedirectURL(string(body))
		if dest == "" {
			return body, nil
		}
		if hop >= maxInterstitialHops {
			return nil, fmt.Errorf("interstitial loop at %s", rawURL)
		}
		resolved, err := resolveRelative(rawURL, dest)
		if err != nil {
			return body, nil //nolint:nilerr // unparsable target, page stands
		}
		f.logger.DebugContext(ctx, "following interstitial redirect", "from", rawURL, "to", resolved)
		rawURL = resolved
	}
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	f.applyCookies(ctx, req)

	body, err := httpcache.FetchURLWithValidator(ctx, f.cache, f.client, req, f.logger, func(b []byte) bool {
		return !htmlutil.IsBlockedPage(string(b))
	})
	if err != nil {
		return nil, err
	}
	if htmlutil.IsBlockedPage(string(body)) {
		return nil, fmt.Errorf("blocked page served for %s", req.URL.Host)
	}
	return body, nil
}

// resolveRelative makes a redirect target absolute against the page it
// came from.
func resolveRelative(base, ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if refURL.IsAbs() {
		return ref, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// applyCookies attaches any browser session cookies for the target site.
func (f *Fetcher) applyCookies(ctx context.Context, req *http.Request) {
	if f.cookies == nil {
		return
	}
	site := siteForHost(req.URL)
	if site == "" {
		return
	}
	cookies, err := f.cookies.Cookies(ctx, site)
	if err != nil || len(cookies) == 0 {
		return
	}
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

// siteForHost maps a request host to an auth site name.
func siteForHost(u *url.URL) string {
	host := u.Hostname()
	for site, domain := range map[string]string{
		"google":     "google.com",
		"bing":       "bing.com",
		"duckduckgo": "duckduckgo.com",
		"instagram":  "instagram.com",
		"linkedin":   "linkedin.com",
		"facebook":   "facebook.com",
		"twitter":    "x.com",
		"tiktok":     "tiktok.com",
	} {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return site
		}
	}
	return ""
}
