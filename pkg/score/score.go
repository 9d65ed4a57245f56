// Package score assigns relevance confidence to candidate hits.
//
// The scoring policy is additive: a universal base plus category and
// platform bonuses, name-match bonuses, small rewards for profile-like
// vocabulary, and a penalty for spam vocabulary, clamped to [floor, 0.95].
// The exact constants are tuned by observation, not derived; treat them
// as defaults rather than business rules.
package score

import (
	"strings"

	"github.com/osprey-dev/namesift/pkg/hit"
)

const (
	universalBase = 0.5

	exactMatchBonus   = 0.25
	partialMatchMax   = 0.2
	qualityBonusEach  = 0.05
	qualityBonusCap   = 0.25
	spamPenalty       = 0.3
	partialAcceptance = 0.6

	maxScore      = 0.95
	contentFloor  = 0.25
	absoluteFloor = 0.1
)

// categoryBonuses is the per-category base bonus added to the universal base.
var categoryBonuses = map[hit.Category]float64{
	hit.CategorySocialMedia:  0.2,
	hit.CategoryProfessional: 0.25,
	hit.CategoryAcademic:     0.3,
	hit.CategoryNews:         0.35,
	hit.CategoryPersonalWeb:  0.15,
	hit.CategoryForum:        0.1,
	hit.CategoryLocation:     0.1,
}

const defaultCategoryBonus = 0.1

// platformBonuses rewards hits from platforms where a name match is a
// stronger identity signal.
var platformBonuses = map[string]float64{
	"LinkedIn":       0.2,
	"Google Scholar": 0.25,
	"Instagram":      0.15,
	"Twitter":        0.15,
	"Twitter/X":      0.15,
	"Facebook":       0.1,
	"GitHub":         0.1,
	"YouTube":        0.1,
	"TikTok":         0.08,
}

const defaultPlatformBonus = 0.05

// qualityIndicators are vocabulary hints that the page is about a person.
var qualityIndicators = []string{
	"profile", "bio", "about", "official", "verified",
	"professional", "academic", "research", "publication",
}

// spamIndicators mark content unlikely to be the genuine person.
var spamIndicators = []string{"fake", "spam", "bot", "parody"}

// Result describes the outcome of scoring one hit.
type Result struct {
	Score      float64
	ExactMatch bool
	Relevant   bool
}

// Apply scores the hit in place for the given query name and returns the
// scoring result. It never fails: missing fields default to empty strings
// and an empty category scores as "general". Verified is set only on an
// exact full-name match; content verification elsewhere may also set it.
func Apply(h *hit.RawHit, name string) Result {
	if h.Category == "" {
		h.Category = hit.CategoryGeneral
	}
	if h.Platform == "" {
		h.Platform = hit.ResolvePlatform(h.Link)
	}

	res := Evaluate(h.Text(), name, h.Category, h.Platform)
	h.Score = res.Score
	if res.ExactMatch {
		h.Verified = true
	}
	return res
}

// Evaluate computes the confidence for extracted text without touching a
// hit. Exposed separately so providers can pre-filter obviously
// irrelevant extractions before building hits.
func Evaluate(text, name string, category hit.Category, platform string) Result {
	textLower := strings.ToLower(text)
	nameLower := strings.ToLower(strings.TrimSpace(name))

	score := universalBase
	if bonus, ok := categoryBonuses[category]; ok {
		score += bonus
	} else {
		score += defaultCategoryBonus
	}

	var res Result

	// Exact full-name substring is the strongest content signal.
	if nameLower != "" && strings.Contains(textLower, nameLower) {
		score += exactMatchBonus
		res.ExactMatch = true
		res.Relevant = true
	}

	// Partial match: fraction of name tokens present, ignoring short
	// tokens like middle initials. Accepted as relevant at 60%.
	if frac := tokenFraction(nameLower, textLower); frac > 0 {
		score += frac * partialMatchMax
		if frac >= partialAcceptance {
			res.Relevant = true
		}
	}

	if bonus, ok := platformBonuses[platform]; ok {
		score += bonus
	} else {
		score += defaultPlatformBonus
	}

	var quality float64
	for _, indicator := range qualityIndicators {
		if strings.Contains(textLower, indicator) {
			quality += qualityBonusEach
		}
	}
	if quality > qualityBonusCap {
		quality = qualityBonusCap
	}
	score += quality

	for _, indicator := range spamIndicators {
		if strings.Contains(textLower, indicator) {
			score -= spamPenalty
			break
		}
	}

	floor := absoluteFloor
	if text != "" {
		floor = contentFloor
	}
	if score < floor {
		score = floor
	}
	if score > maxScore {
		score = maxScore
	}

	res.Score = score
	return res
}

// Relevant reports whether extracted text plausibly refers to the named
// person: an exact substring match, or at least 60% of the name tokens
// present.
func Relevant(text, name string) bool {
	textLower := strings.ToLower(text)
	nameLower := strings.ToLower(strings.TrimSpace(name))
	if nameLower == "" {
		return false
	}
	if strings.Contains(textLower, nameLower) {
		return true
	}
	return tokenFraction(nameLower, textLower) >= partialAcceptance
}

// tokenFraction returns the fraction of name tokens longer than two
// characters found in the text. Single-token names yield 0 here; the
// exact-substring check covers them.
func tokenFraction(nameLower, textLower string) float64 {
	tokens := strings.Fields(nameLower)
	if len(tokens) < 2 {
		return 0
	}

	var considered, found int
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		considered++
		if strings.Contains(textLower, tok) {
			found++
		}
	}
	if considered == 0 {
		return 0
	}
	return float64(found) / float64(considered)
}
