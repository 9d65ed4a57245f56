package pipeline

import (
	"github.com/osprey-dev/namesift/pkg/fallback"
	"github.com/osprey-dev/namesift/pkg/hit"
	"github.com/osprey-dev/namesift/pkg/provider"
)

// Stage is one step of the standard pipeline: a group of providers for
// one concern, with its progress checkpoints and optional deterministic
// entries around it.
type Stage struct {
	// Lead entries are prepended before any provider runs (e.g. the
	// direct Instagram profile checks).
	Lead func(name string) []hit.RawHit
	// Backstop entries are appended when the stage's genuine hit count
	// falls below Floor.
	Backstop  func(name string) []hit.RawHit
	Label     string
	Platforms string
	Providers []provider.Provider
	StartPct  int
	EndPct    int
	Floor     int
}

// standardStages builds the default stage list. Percentages are a fixed
// schedule, not derived from work remaining; clients only need them to
// move forward.
func (p *Pipeline) standardStages() []Stage {
	google := func(cat hit.Category) provider.Provider {
		return provider.NewCategoryProvider(p.fetcher, provider.Google, cat, p.logger)
	}
	return []Stage{
		{
			Label:     "Social Media Analysis",
			Platforms: "Instagram, Twitter, Facebook",
			StartPct:  15,
			EndPct:    25,
			Providers: []provider.Provider{google(hit.CategorySocialMedia)},
			Lead:      fallback.InstagramPriority,
			Floor:     fallback.SocialFloor,
			Backstop:  fallback.GuaranteedSocial,
		},
		{
			Label:     "Professional Networks",
			Platforms: "LinkedIn, GitHub",
			StartPct:  35,
			EndPct:    45,
			Providers: []provider.Provider{google(hit.CategoryProfessional)},
			Floor:     fallback.ProfessionalFloor,
			Backstop:  fallback.GuaranteedProfessional,
		},
		{
			Label:     "Academic Platforms",
			Platforms: "Google Scholar, ResearchGate",
			StartPct:  55,
			EndPct:    65,
			Providers: []provider.Provider{google(hit.CategoryAcademic)},
		},
		{
			Label:     "Web Content Analysis",
			Platforms: "Google, Bing, DuckDuckGo",
			StartPct:  75,
			EndPct:    85,
			Providers: []provider.Provider{
				provider.NewCategoryProvider(p.fetcher, provider.Google, hit.CategoryGeneral, p.logger),
				provider.NewCategoryProvider(p.fetcher, provider.Bing, hit.CategoryGeneral, p.logger),
				provider.NewCategoryProvider(p.fetcher, provider.DuckDuckGo, hit.CategoryGeneral, p.logger),
			},
		},
		{
			Label:     "News & Publications",
			Platforms: "News Sites, Blogs",
			StartPct:  90,
			EndPct:    95,
			Providers: []provider.Provider{google(hit.CategoryNews)},
		},
	}
}
