// Package pipeline sequences providers into one ranked answer for a
// person lookup: staged fetching with progress reporting, scoring,
// deduplication, ranking, and the guaranteed-results backstop.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/osprey-dev/namesift/pkg/face"
	"github.com/osprey-dev/namesift/pkg/fallback"
	"github.com/osprey-dev/namesift/pkg/hit"
	"github.com/osprey-dev/namesift/pkg/provider"
)

// maxResults caps the final list returned for one request.
const maxResults = 150

// enhancedThreshold is how many deduplicated results the enhanced
// attempt must produce to be kept; at or below it the attempt is
// discarded wholesale and the standard pipeline runs instead.
const enhancedThreshold = 8

// Progress is one event emitted while a search runs.
type Progress struct {
	Stage        string `json:"stage"`
	Platform     string `json:"platform"`
	ResultsFound int    `json:"results_found"`
	Percent      int    `json:"progress"`
}

// Sink receives progress events as the pipeline advances.
type Sink func(Progress)

// Request describes one search.
type Request struct {
	Name        string
	Image       []byte
	UseEnhanced bool
}

// Response is the outcome of one search.
type Response struct {
	RunID        string
	Results      []hit.RawHit
	EnhancedUsed bool
}

// Pipeline orchestrates a search run.
type Pipeline struct {
	fetcher   *provider.Fetcher
	extractor face.Extractor
	logger    *slog.Logger
	enhanced  EnhancedRunner
	stages    []Stage
	threshold int
	floor     int
	cap       int
	verifyTop int
}

// EnhancedRunner produces the enhanced attempt's candidate list.
type EnhancedRunner func(ctx context.Context, name string) []hit.RawHit

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithExtractor sets the face-embedding extractor. Without one, image
// uploads are validated and preprocessed but contribute no face signal.
func WithExtractor(extractor face.Extractor) Option {
	return func(p *Pipeline) { p.extractor = extractor }
}

// WithEnhancedRunner replaces the enhanced attempt implementation.
func WithEnhancedRunner(runner EnhancedRunner) Option {
	return func(p *Pipeline) { p.enhanced = runner }
}

// WithStages replaces the standard stage list.
func WithStages(stages []Stage) Option {
	return func(p *Pipeline) { p.stages = stages }
}

// WithEnhancedThreshold overrides the enhanced replace-or-fallback
// cutoff.
func WithEnhancedThreshold(n int) Option {
	return func(p *Pipeline) { p.threshold = n }
}

// WithFloor overrides the whole-pipeline minimum result count.
func WithFloor(n int) Option {
	return func(p *Pipeline) { p.floor = n }
}

// WithVerification makes the pipeline fetch and content-check the top n
// unverified results before returning. Each check is a live page fetch,
// so this is off by default.
func WithVerification(n int) Option {
	return func(p *Pipeline) { p.verifyTop = n }
}

// New creates a Pipeline around a fetcher.
func New(fetcher *provider.Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:   fetcher,
		logger:    slog.Default(),
		threshold: enhancedThreshold,
		floor:     fallback.PipelineFloor,
		cap:       maxResults,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.stages == nil {
		p.stages = p.standardStages()
	}
	if p.enhanced == nil {
		p.enhanced = func(ctx context.Context, name string) []hit.RawHit {
			return p.runEnhanced(ctx, name, p.logger)
		}
	}
	return p
}
