// Package hit defines the common types for candidate mention results.
package hit

import (
	"errors"
)

// Common errors returned by provider packages.
var (
	ErrNoResults   = errors.New("no results")
	ErrRateLimited = errors.New("rate limited")
	ErrBadInput    = errors.New("invalid input")
)

// Category groups hits for ranking priority. It is distinct from the
// platform a hit originates from.
type Category string

// Category constants, in descending ranking priority.
const (
	CategorySocialMedia  Category = "social_media"
	CategoryProfessional Category = "professional"
	CategoryAcademic     Category = "academic"
	CategoryNews         Category = "news"
	CategoryPersonalWeb  Category = "personal_web"
	CategoryForum        Category = "forum"
	CategoryImages       Category = "images"
	CategoryLocation     Category = "location"
	CategoryFallback     Category = "fallback"
	CategoryGeneral      Category = "general"
)

// RawHit represents one normalized candidate mention of a person,
// scraped from a search engine or synthesized by the fallback generator.
//
//nolint:govet // fieldalignment: intentional layout for readability
type RawHit struct {
	// Source is a human-readable origin description,
	// e.g. "Instagram - Profile Found".
	Source string `json:"source"`

	// Preview is a truncated human-readable summary or snippet.
	Preview string `json:"preview"`

	// Platform is the normalized platform name resolved from the link
	// domain ("Instagram", "LinkedIn", "Web", ...).
	Platform string `json:"platform"`

	// Link is the canonical URL. Empty is permitted for synthetic entries.
	Link string `json:"link,omitempty"`

	// Category tags the pipeline stage this hit came from and drives
	// ranking priority.
	Category Category `json:"category"`

	// Score is the confidence in [0,1]. The scorer clamps it; fallback
	// entries carry fixed per-platform values.
	Score float64 `json:"score"`

	// Verified is true for fallback-generated entries and for hits whose
	// page content was confirmed to mention the name.
	Verified bool `json:"verified"`

	// Raw extracted text, kept for scoring and display.
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet,omitempty"`

	// ActivityType is set for activity-search entries only.
	ActivityType string `json:"activity_type,omitempty"`

	// Fields holds optional free-form metadata (username suggestions,
	// engagement counters). Never participates in ranking or dedup.
	Fields map[string]string `json:"fields,omitempty"`
}

// Text returns the combined extracted text used for relevance checks.
func (h *RawHit) Text() string {
	switch {
	case h.Title != "" && h.Snippet != "":
		return h.Title + " " + h.Snippet
	case h.Title != "":
		return h.Title
	default:
		return h.Snippet
	}
}

// HasContent reports whether the hit carries any extractable text.
// Hits without content are dropped before scoring.
func (h *RawHit) HasContent() bool {
	return h.Title != "" || h.Snippet != "" || h.Preview != ""
}

// Key returns the dedup identity: the link when present, otherwise the
// source label plus the leading 50 bytes of the preview. Synthetic
// entries without links must not collapse into each other by URL.
func (h *RawHit) Key() string {
	if h.Link != "" {
		return h.Link
	}
	preview := h.Preview
	if len(preview) > 50 {
		preview = preview[:50]
	}
	return h.Source + "\x00" + preview
}
