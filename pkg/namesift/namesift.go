// Package namesift provides a unified API for finding online mentions
// of a person by name.
//
// Basic usage:
//
//	results, err := namesift.Search(ctx, "Jane Doe")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    fmt.Println(r.Platform, r.Score, r.Link)
//	}
//
// With caching, browser cookies and the enhanced first pass:
//
//	cache, _ := httpcache.New(24 * time.Hour)
//	results, _ := namesift.Search(ctx, "Jane Doe",
//	    namesift.WithHTTPCache(cache),
//	    namesift.WithBrowserCookies(),
//	    namesift.WithEnhanced())
//
// Or drive the pipeline directly:
//
//	import "github.com/osprey-dev/namesift/pkg/pipeline"
//	pipe := pipeline.New(fetcher, pipeline.WithVerification(10))
//	resp := pipe.Search(ctx, pipeline.Request{Name: "Jane Doe"}, sink)
package namesift

import (
	"context"
	"log/slog"

	"github.com/osprey-dev/namesift/pkg/auth"
	"github.com/osprey-dev/namesift/pkg/face"
	"github.com/osprey-dev/namesift/pkg/hit"
	"github.com/osprey-dev/namesift/pkg/httpcache"
	"github.com/osprey-dev/namesift/pkg/pipeline"
	"github.com/osprey-dev/namesift/pkg/provider"
)

type (
	// RawHit re-exports hit.RawHit for convenience.
	RawHit = hit.RawHit
	// Progress re-exports pipeline.Progress for convenience.
	Progress = pipeline.Progress
	// HTTPCache re-exports httpcache.Cache for convenience.
	HTTPCache = httpcache.Cache
)

// Re-export common errors.
var (
	ErrNoResults   = hit.ErrNoResults
	ErrRateLimited = hit.ErrRateLimited
	ErrBadInput    = hit.ErrBadInput
)

// Option configures a Search call.
type Option func(*config)

//nolint:govet // fieldalignment: intentional layout for readability
type config struct {
	logger         *slog.Logger
	cache          httpcache.Cacher
	extractor      face.Extractor
	progress       pipeline.Sink
	image          []byte
	verifyTop      int
	useEnhanced    bool
	browserCookies bool
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithHTTPCache sets the HTTP cache for upstream responses.
func WithHTTPCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithBrowserCookies enables reading search-engine and platform cookies
// from browser stores.
func WithBrowserCookies() Option {
	return func(c *config) { c.browserCookies = true }
}

// WithEnhanced tries the larger comprehensive provider set first,
// falling back to the standard staged pipeline when it comes up short.
func WithEnhanced() Option {
	return func(c *config) { c.useEnhanced = true }
}

// WithImage attaches a photo to the search. A detected face boosts
// scored results.
func WithImage(image []byte) Option {
	return func(c *config) { c.image = image }
}

// WithExtractor sets the face-embedding extractor used for uploads.
func WithExtractor(extractor face.Extractor) Option {
	return func(c *config) { c.extractor = extractor }
}

// WithProgress registers a sink for stage-progress events.
func WithProgress(sink pipeline.Sink) Option {
	return func(c *config) { c.progress = sink }
}

// WithVerification content-checks the top n results before returning.
func WithVerification(n int) Option {
	return func(c *config) { c.verifyTop = n }
}

// Search finds ranked online mentions of the named person. It never
// returns an empty list for a non-empty name: when scraping yields too
// little, deterministic direct-search entries fill the gap.
func Search(ctx context.Context, name string, opts ...Option) []RawHit {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	resp := newPipeline(cfg).Search(ctx, pipeline.Request{
		Name:        name,
		Image:       cfg.image,
		UseEnhanced: cfg.useEnhanced,
	}, cfg.progress)
	return resp.Results
}

// Activities returns synthesized activity-search entries for the name
// on the given platforms (all defaults when platforms is nil).
func Activities(ctx context.Context, name string, platforms []string, opts ...Option) []RawHit {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return newPipeline(cfg).Activities(ctx, name, platforms)
}

// Comprehensive sweeps Google across every query category for the name.
func Comprehensive(ctx context.Context, name string, maxResults int, opts ...Option) []RawHit {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return newPipeline(cfg).Comprehensive(ctx, name, maxResults)
}

// NewPipeline builds a ready-to-use pipeline with the same options the
// package-level functions accept. Callers who serve many requests
// should build one and reuse it.
func NewPipeline(opts ...Option) *pipeline.Pipeline {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return newPipeline(cfg)
}

func newPipeline(cfg *config) *pipeline.Pipeline {
	fopts := []provider.FetcherOption{provider.WithLogger(cfg.logger)}
	if cfg.cache != nil {
		fopts = append(fopts, provider.WithCache(cfg.cache))
	}
	if cfg.browserCookies {
		fopts = append(fopts, provider.WithBrowserCookies(auth.NewBrowserSource(cfg.logger)))
	}
	fetcher := provider.NewFetcher(fopts...)

	popts := []pipeline.Option{pipeline.WithLogger(cfg.logger)}
	if cfg.extractor != nil {
		popts = append(popts, pipeline.WithExtractor(cfg.extractor))
	}
	if cfg.verifyTop > 0 {
		popts = append(popts, pipeline.WithVerification(cfg.verifyTop))
	}
	return pipeline.New(fetcher, popts...)
}
