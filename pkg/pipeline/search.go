package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/osprey-dev/namesift/pkg/face"
	"github.com/osprey-dev/namesift/pkg/fallback"
	"github.com/osprey-dev/namesift/pkg/hit"
	"github.com/osprey-dev/namesift/pkg/provider"
	"github.com/osprey-dev/namesift/pkg/rank"
)

// maxConcurrentProviders bounds simultaneous provider fetches within
// one stage.
const maxConcurrentProviders = 3

// Search runs one request through the pipeline. It never returns an
// error: orchestration failures degrade to a single explanatory entry
// so callers always have something to render.
func (p *Pipeline) Search(ctx context.Context, req Request, sink Sink) (resp Response) {
	resp.RunID = uuid.NewString()
	logger := p.logger.With("run_id", resp.RunID)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "pipeline panic", "panic", r)
			resp.Results = errorResults(fmt.Sprintf("Search failed: %v", r))
			resp.EnhancedUsed = false
		}
	}()

	emit := progressEmitter(sink)
	name := strings.TrimSpace(req.Name)

	var embedding face.Embedding
	if len(req.Image) > 0 {
		emit("Image Analysis", "Face Detection & Processing", 0, 2)
		embedding = p.extractEmbedding(ctx, req.Image, logger)
	}

	if name == "" {
		resp.Results = p.imageOnlyResults(req, embedding)
		return resp
	}

	if req.UseEnhanced {
		emit("Attempting Enhanced Search", "All Platforms", 0, 10)
		enhanced := p.enhanced(ctx, name)
		if len(enhanced) > p.threshold {
			emit("Enhanced Search Successful", "All Platforms", len(enhanced), 100)
			resp.Results = capResults(enhanced, p.cap)
			resp.EnhancedUsed = true
			return resp
		}
		logger.WarnContext(ctx, "enhanced search insufficient, using standard", "enhanced_results", len(enhanced))
		emit("Enhanced insufficient, using standard", "Standard Search", 0, 15)
	}

	// Progress checkpoints never move backwards: after an enhanced
	// attempt has already reported 15, the standard schedule starts
	// there instead of at 5.
	initPct := 5
	if req.UseEnhanced {
		initPct = 15
	}
	emit("Initializing Search", "System", 0, initPct)

	var all []hit.RawHit
	found := 0
	for _, stage := range p.stages {
		if ctx.Err() != nil {
			break
		}
		emit(stage.Label, stage.Platforms, found, stage.StartPct)
		hits := p.runStage(ctx, stage, name, logger)
		all = append(all, hits...)
		found += len(hits)
		emit(stage.Label, stage.Platforms, found, stage.EndPct)
	}

	emit("Processing Results", "Deduplication & Ranking", found, 95)
	results := rank.Process(all)

	if p.verifyTop > 0 {
		results = p.verifyResults(ctx, results, name, logger)
		rank.Sort(results)
	}

	if embedding != nil {
		boostForFaceSignal(results)
	}

	results = fallback.EnsureMinimum(results, name, p.floor)
	rank.Sort(results)
	results = capResults(results, p.cap)

	emit("Processing Results", "Finalizing comprehensive analysis", len(results), 100)
	logger.InfoContext(ctx, "search finished", "name", name, "results", len(results))

	resp.Results = results
	return resp
}

// Activities returns the deterministic activity-search results for a
// name across the requested platforms.
func (p *Pipeline) Activities(_ context.Context, name string, platforms []string) []hit.RawHit {
	return fallback.Activities(name, platforms)
}

// Comprehensive sweeps Google across every category for one name.
func (p *Pipeline) Comprehensive(ctx context.Context, name string, limit int) []hit.RawHit {
	return provider.Comprehensive(ctx, p.fetcher, name, limit, p.logger)
}

// runStage executes one stage's providers with bounded concurrency.
// A provider panic or error is contained to that provider.
func (p *Pipeline) runStage(ctx context.Context, stage Stage, name string, logger *slog.Logger) []hit.RawHit {
	var hits []hit.RawHit
	if stage.Lead != nil {
		hits = append(hits, stage.Lead(name)...)
	}

	var mu sync.Mutex
	var genuine int
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProviders)
	for _, prov := range stage.Providers {
		g.Go(func() error {
			fetched := fetchSafely(gctx, prov, name, logger)
			mu.Lock()
			hits = append(hits, fetched...)
			genuine += len(fetched)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	if stage.Backstop != nil && genuine < stage.Floor {
		logger.WarnContext(ctx, "stage under-populated, adding guaranteed results",
			"stage", stage.Label, "genuine", genuine, "floor", stage.Floor)
		hits = append(hits, stage.Backstop(name)...)
	}
	return hits
}

// fetchSafely invokes one provider, converting panics and errors into
// zero results.
func fetchSafely(ctx context.Context, prov provider.Provider, name string, logger *slog.Logger) (hits []hit.RawHit) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "provider panic", "provider", prov.Name(), "panic", r)
			hits = nil
		}
	}()

	hits, err := prov.Fetch(ctx, name)
	if err != nil {
		logger.WarnContext(ctx, "provider failed", "provider", prov.Name(), "error", err)
		return nil
	}
	return hits
}

// runEnhanced is the larger provider set tried before the standard
// pipeline: the comprehensive category sweep plus activity probes.
func (p *Pipeline) runEnhanced(ctx context.Context, name string, logger *slog.Logger) []hit.RawHit {
	results := p.Comprehensive(ctx, name, 100)

	activities := fallback.Activities(name, nil)
	if len(activities) > 10 {
		activities = activities[:10]
	}
	results = append(results, activities...)

	results = rank.Process(results)
	logger.InfoContext(ctx, "enhanced attempt finished", "results", len(results))
	return results
}

// verifyResults content-checks the top unverified hits, rewarding
// confirmed mentions and discounting pages that never name the person.
func (p *Pipeline) verifyResults(ctx context.Context, results []hit.RawHit, name string, logger *slog.Logger) []hit.RawHit {
	checked := 0
	for i := range results {
		if checked >= p.verifyTop || ctx.Err() != nil {
			break
		}
		if results[i].Verified || results[i].Link == "" {
			continue
		}
		checked++
		ok, err := provider.VerifyMention(ctx, p.fetcher, &results[i], name)
		switch {
		case err != nil:
			logger.DebugContext(ctx, "verification fetch failed", "link", results[i].Link, "error", err)
		case ok:
			results[i].Score = min(0.95, results[i].Score+0.1)
		default:
			results[i].Score = max(0.3, results[i].Score-0.2)
		}
	}
	return results
}

// extractEmbedding preprocesses the upload and asks the extractor for a
// face vector. Any failure yields nil; the search continues on name
// alone.
func (p *Pipeline) extractEmbedding(ctx context.Context, image []byte, logger *slog.Logger) face.Embedding {
	if p.extractor == nil {
		return nil
	}
	prepared, err := face.Preprocess(image)
	if err != nil {
		logger.WarnContext(ctx, "image preprocessing failed", "error", err)
		return nil
	}
	embedding, err := p.extractor.Extract(ctx, prepared)
	if err != nil {
		logger.WarnContext(ctx, "face extraction failed", "error", err)
		return nil
	}
	logger.InfoContext(ctx, "face embedding extracted", "dimensions", len(embedding))
	return embedding
}

// imageOnlyResults handles requests that carried a photo but no name.
func (p *Pipeline) imageOnlyResults(req Request, embedding face.Embedding) []hit.RawHit {
	if len(req.Image) == 0 {
		return []hit.RawHit{{
			Source:  "No Search Parameters",
			Preview: "Please provide either a name or an image with a detectable face to perform a search.",
			Score:   0,
		}}
	}
	if embedding == nil {
		return errorResults("No face detected in the image. Please ensure the image contains a clear, visible human face.")
	}
	return []hit.RawHit{{
		Source: "Face Detection",
		Preview: fmt.Sprintf(
			"Face detected successfully. Face embedding extracted with %d dimensions. Please provide a name to search across platforms.",
			len(embedding)),
		Score: 0.6,
	}}
}

// boostForFaceSignal nudges scored hits upward when a face embedding
// accompanied the name. Synthetic zero-score entries stay put and no
// hit crosses the scorer's ceiling.
func boostForFaceSignal(results []hit.RawHit) {
	for i := range results {
		if results[i].Score > 0 {
			results[i].Score = min(0.95, results[i].Score+0.1)
		}
	}
}

// errorResults is the degraded single-entry payload for orchestration
// failures.
func errorResults(msg string) []hit.RawHit {
	return []hit.RawHit{{Source: "Error", Preview: msg, Score: 0}}
}

// capResults truncates to the pipeline-wide result cap.
func capResults(results []hit.RawHit, limit int) []hit.RawHit {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// progressEmitter wraps a possibly-nil sink.
func progressEmitter(sink Sink) func(stage, platform string, found, pct int) {
	return func(stage, platform string, found, pct int) {
		if sink == nil {
			return
		}
		sink(Progress{Stage: stage, Platform: platform, ResultsFound: found, Percent: pct})
	}
}
