// Package provider implements the data-fetchers that turn a person's
// name into candidate mentions: search-engine scrapes grouped by
// category, plus direct platform lookups. Every provider is allowed to
// fail; callers treat an error as zero results.
package provider

import (
	"context"

	"github.com/osprey-dev/namesift/pkg/hit"
)

// Provider fetches candidate mentions for a name from one source.
type Provider interface {
	// Name identifies the provider in logs and progress events.
	Name() string
	// Category is the result category this provider populates.
	Category() hit.Category
	// Fetch returns zero or more candidate hits. An error means the
	// source was unreachable or unparsable; partial results alongside
	// a nil error are fine.
	Fetch(ctx context.Context, name string) ([]hit.RawHit, error)
}

// Func adapts a function to the Provider interface.
type Func struct {
	Fn    func(ctx context.Context, name string) ([]hit.RawHit, error)
	Label string
	Cat   hit.Category
}

// Name implements Provider.
func (f Func) Name() string { return f.Label }

// Category implements Provider.
func (f Func) Category() hit.Category { return f.Cat }

// Fetch implements Provider.
func (f Func) Fetch(ctx context.Context, name string) ([]hit.RawHit, error) {
	return f.Fn(ctx, name)
}
