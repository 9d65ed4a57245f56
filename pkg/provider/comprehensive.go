package provider

import (
	"context"
	"log/slog"

	"github.com/osprey-dev/namesift/pkg/hit"
	"github.com/osprey-dev/namesift/pkg/rank"
)

// comprehensiveOrder lists the categories the comprehensive Google
// sweep covers, in the order they are swept.
var comprehensiveOrder = []hit.Category{ //nolint:gochecknoglobals // static policy table
	hit.CategorySocialMedia,
	hit.CategoryProfessional,
	hit.CategoryAcademic,
	hit.CategoryNews,
	hit.CategoryPersonalWeb,
	hit.CategoryForum,
	hit.CategoryImages,
	hit.CategoryLocation,
}

// ComprehensiveCategories returns the category tags the sweep covers.
func ComprehensiveCategories() []hit.Category {
	out := make([]hit.Category, len(comprehensiveOrder))
	copy(out, comprehensiveOrder)
	return out
}

// Comprehensive sweeps Google across every category for one name and
// returns the deduplicated, ranked union capped at maxResults.
// Categories are swept sequentially; each category fans its queries out
// internally. Failed categories contribute nothing.
func Comprehensive(ctx context.Context, fetcher *Fetcher, name string, maxResults int, logger *slog.Logger) []hit.RawHit {
	if logger == nil {
		logger = slog.Default()
	}

	var all []hit.RawHit
	for _, category := range comprehensiveOrder {
		if ctx.Err() != nil {
			break
		}
		p := NewCategoryProvider(fetcher, Google, category, logger)
		hits, err := p.Fetch(ctx, name)
		if err != nil {
			logger.WarnContext(ctx, "category sweep failed", "category", category, "error", err)
			continue
		}
		all = append(all, hits...)
	}

	all = rank.Process(all)
	if maxResults > 0 && len(all) > maxResults {
		all = all[:maxResults]
	}
	logger.InfoContext(ctx, "comprehensive sweep finished", "name", name, "results", len(all))
	return all
}
