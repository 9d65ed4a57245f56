package provider

import (
	"context"

	"github.com/osprey-dev/namesift/pkg/hit"
	"github.com/osprey-dev/namesift/pkg/htmlutil"
	"github.com/osprey-dev/namesift/pkg/score"
)

// verifyBodyLimit bounds how much of a page is inspected when checking
// that a name actually appears on it.
const verifyBodyLimit = 128 * 1024

// VerifyMention fetches a hit's page and confirms the name appears in
// its visible text. On confirmation the hit is marked verified; dead or
// irrelevant pages leave it untouched. Fetch failures are reported so
// the caller can decide whether to drop or keep the unverified hit.
func VerifyMention(ctx context.Context, fetcher *Fetcher, h *hit.RawHit, name string) (bool, error) {
	if h.Link == "" {
		return false, nil
	}

	body, err := fetcher.Get(ctx, h.Link)
	if err != nil {
		return false, err
	}
	if len(body) > verifyBodyLimit {
		body = body[:verifyBodyLimit]
	}

	page := string(body)
	text := htmlutil.Title(page) + " " + htmlutil.Description(page) + " " + htmlutil.StripTags(page)
	if htmlutil.IsNotFound(text) {
		return false, nil
	}
	if !score.Relevant(text, name) {
		return false, nil
	}

	h.Verified = true
	return true, nil
}
