package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/osprey-dev/namesift/pkg/hit"
	"github.com/osprey-dev/namesift/pkg/score"
)

// maxConcurrentQueries bounds simultaneous fetches within one provider
// so the per-domain rate limiter is not fighting a stampede.
const maxConcurrentQueries = 3

// resultsPerQuery caps how many parsed entries one query contributes.
const resultsPerQuery = 4

// categoryQueries builds the search queries for each result category.
// The quoting matters: exact-phrase name matching keeps the engine from
// returning every page mentioning either name token.
var categoryQueries = map[hit.Category]func(name string) []string{ //nolint:gochecknoglobals // static policy table
	hit.CategorySocialMedia: func(name string) []string {
		compact := strings.ReplaceAll(name, " ", "")
		return []string{
			fmt.Sprintf(`"%s" site:instagram.com profile OR bio`, name),
			fmt.Sprintf(`@%s instagram`, compact),
			fmt.Sprintf(`"%s" site:twitter.com OR site:x.com profile`, name),
			fmt.Sprintf(`"%s" site:facebook.com profile OR page`, name),
			fmt.Sprintf(`"%s" site:linkedin.com/in/ profile`, name),
			fmt.Sprintf(`"%s" site:tiktok.com/@%s`, name, compact),
			fmt.Sprintf(`"%s" site:youtube.com/channel OR site:youtube.com/c`, name),
			fmt.Sprintf(`"%s" site:pinterest.com`, name),
		}
	},
	hit.CategoryProfessional: func(name string) []string {
		return []string{
			fmt.Sprintf(`"%s" linkedin OR professional OR career`, name),
			fmt.Sprintf(`"%s" company OR organization OR workplace`, name),
			fmt.Sprintf(`"%s" job title OR position OR role`, name),
			fmt.Sprintf(`"%s" business OR entrepreneur OR founder`, name),
			fmt.Sprintf(`"%s" CV OR resume OR curriculum vitae`, name),
		}
	},
	hit.CategoryAcademic: func(name string) []string {
		return []string{
			fmt.Sprintf(`"%s" site:scholar.google.com`, name),
			fmt.Sprintf(`"%s" research OR publication OR paper`, name),
			fmt.Sprintf(`"%s" university OR college OR school`, name),
			fmt.Sprintf(`"%s" PhD OR degree OR education`, name),
			fmt.Sprintf(`"%s" site:researchgate.net`, name),
			fmt.Sprintf(`"%s" site:academia.edu`, name),
		}
	},
	hit.CategoryNews: func(name string) []string {
		return []string{
			fmt.Sprintf(`"%s" news OR article OR press`, name),
			fmt.Sprintf(`"%s" interview OR podcast OR media`, name),
			fmt.Sprintf(`"%s" award OR recognition OR achievement`, name),
			fmt.Sprintf(`"%s" featured OR mentioned OR quoted`, name),
		}
	},
	hit.CategoryPersonalWeb: func(name string) []string {
		return []string{
			fmt.Sprintf(`"%s" personal website OR homepage`, name),
			fmt.Sprintf(`"%s" blog OR blogger`, name),
			fmt.Sprintf(`"%s" portfolio OR showcase`, name),
			fmt.Sprintf(`"%s" about me OR bio`, name),
			fmt.Sprintf(`"%s" site:wordpress.com OR site:blogspot.com`, name),
		}
	},
	hit.CategoryForum: func(name string) []string {
		return []string{
			fmt.Sprintf(`"%s" site:reddit.com`, name),
			fmt.Sprintf(`"%s" forum OR discussion OR community`, name),
			fmt.Sprintf(`"%s" site:quora.com`, name),
			fmt.Sprintf(`"%s" site:stackoverflow.com`, name),
		}
	},
	hit.CategoryImages: func(name string) []string {
		return []string{
			fmt.Sprintf(`"%s" person OR photo`, name),
			fmt.Sprintf(`"%s" profile picture OR avatar`, name),
		}
	},
	hit.CategoryLocation: func(name string) []string {
		return []string{
			fmt.Sprintf(`"%s" location OR address OR city`, name),
			fmt.Sprintf(`"%s" hometown OR origin OR from`, name),
			fmt.Sprintf(`"%s" lives in OR based in OR located`, name),
		}
	},
	hit.CategoryGeneral: func(name string) []string {
		return []string{
			fmt.Sprintf(`"%s"`, name),
			fmt.Sprintf(`"%s" profile`, name),
			fmt.Sprintf(`"%s" social media`, name),
		}
	},
}

// Queries returns the configured search queries for a category, or nil
// for categories with no query set.
func Queries(category hit.Category, name string) []string {
	build, ok := categoryQueries[category]
	if !ok {
		return nil
	}
	return build(name)
}

// CategoryProvider scrapes one engine for one result category.
type CategoryProvider struct {
	fetcher  *Fetcher
	logger   *slog.Logger
	engine   Engine
	category hit.Category
}

// NewCategoryProvider builds a provider for one category on one engine.
func NewCategoryProvider(fetcher *Fetcher, engine Engine, category hit.Category, logger *slog.Logger) *CategoryProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryProvider{fetcher: fetcher, engine: engine, category: category, logger: logger}
}

// Name implements Provider.
func (p *CategoryProvider) Name() string {
	return p.engine.Name + " " + categoryLabel(p.category)
}

// Category implements Provider.
func (p *CategoryProvider) Category() hit.Category { return p.category }

// Fetch runs the category's query set against the engine. Individual
// query failures are logged and skipped; the provider only errors when
// the category has no queries at all.
func (p *CategoryProvider) Fetch(ctx context.Context, name string) ([]hit.RawHit, error) {
	queries := Queries(p.category, name)
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: no queries for category %s", hit.ErrBadInput, p.category)
	}

	var mu sync.Mutex
	var hits []hit.RawHit

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQueries)
	for _, query := range queries {
		g.Go(func() error {
			results, err := p.engine.Search(gctx, p.fetcher, query, resultsPerQuery)
			if err != nil {
				p.logger.DebugContext(gctx, "query failed", "provider", p.Name(), "query", query, "error", err)
				return nil //nolint:nilerr // one dead query must not kill the stage
			}
			converted := p.convert(results, name)
			mu.Lock()
			hits = append(hits, converted...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	p.logger.InfoContext(ctx, "provider finished", "provider", p.Name(), "hits", len(hits))
	return hits, nil
}

// convert scores parsed entries and keeps the relevant ones.
func (p *CategoryProvider) convert(results []Result, name string) []hit.RawHit {
	hits := make([]hit.RawHit, 0, len(results))
	for _, r := range results {
		h := hit.RawHit{
			Title:    r.Title,
			Snippet:  r.Snippet,
			Link:     r.Link,
			Preview:  truncate(r.Snippet, 250),
			Category: p.category,
		}
		res := score.Apply(&h, name)
		if !res.Relevant {
			continue
		}
		h.Source = h.Platform + " - " + categoryLabel(p.category)
		hits = append(hits, h)
	}
	return hits
}

// categoryLabel renders a category tag for humans: "social_media"
// becomes "Social Media".
func categoryLabel(category hit.Category) string {
	words := strings.Split(string(category), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// truncate shortens s to maxLen runes, appending an ellipsis when
// anything was cut.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return strings.TrimSpace(string(r[:maxLen])) + "..."
}
