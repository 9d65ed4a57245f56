package rank

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/osprey-dev/namesift/pkg/hit"
)

func TestDedupeKeepsHigherScore(t *testing.T) {
	hits := []hit.RawHit{
		{Source: "Google", Link: "https://example.com/p", Score: 0.6},
		{Source: "Bing", Link: "https://example.com/p", Score: 0.8},
	}
	got := Dedupe(hits)
	if len(got) != 1 {
		t.Fatalf("Dedupe() returned %d hits, want 1", len(got))
	}
	if got[0].Score != 0.8 || got[0].Source != "Bing" {
		t.Errorf("Dedupe() kept %+v, want the 0.8 Bing hit", got[0])
	}
}

func TestDedupeVerifiedTieBreak(t *testing.T) {
	hits := []hit.RawHit{
		{Source: "Google", Link: "https://example.com/p", Score: 0.7},
		{Source: "Bing", Link: "https://example.com/p", Score: 0.7, Verified: true},
		{Source: "DuckDuckGo", Link: "https://example.com/p", Score: 0.7},
	}
	got := Dedupe(hits)
	if len(got) != 1 {
		t.Fatalf("Dedupe() returned %d hits, want 1", len(got))
	}
	if !got[0].Verified || got[0].Source != "Bing" {
		t.Errorf("Dedupe() kept %+v, want the verified Bing hit", got[0])
	}
}

func TestDedupePreservesFirstSeenOrder(t *testing.T) {
	hits := []hit.RawHit{
		{Source: "a", Link: "https://a.example", Score: 0.5},
		{Source: "b", Link: "https://b.example", Score: 0.5},
		{Source: "a2", Link: "https://a.example", Score: 0.9},
		{Source: "c", Link: "https://c.example", Score: 0.5},
	}
	got := Dedupe(hits)
	links := make([]string, len(got))
	for i, h := range got {
		links[i] = h.Link
	}
	want := []string{"https://a.example", "https://b.example", "https://c.example"}
	if diff := cmp.Diff(want, links); diff != "" {
		t.Errorf("Dedupe() order mismatch (-want +got):\n%s", diff)
	}
	if got[0].Source != "a2" {
		t.Errorf("Dedupe() kept %q in first slot, want the replacement a2", got[0].Source)
	}
}

func TestDedupeLinklessHitsDistinct(t *testing.T) {
	hits := []hit.RawHit{
		{Source: "Instagram", Preview: "first person", Score: 0.5},
		{Source: "Instagram", Preview: "second person", Score: 0.5},
	}
	if got := Dedupe(hits); len(got) != 2 {
		t.Errorf("Dedupe() collapsed distinct linkless hits: got %d, want 2", len(got))
	}
}

func TestDedupeIdempotent(t *testing.T) {
	hits := []hit.RawHit{
		{Source: "Google", Link: "https://example.com/a", Score: 0.6},
		{Source: "Bing", Link: "https://example.com/a", Score: 0.8},
		{Source: "Google", Link: "https://example.com/b", Score: 0.4},
	}
	once := Dedupe(hits)
	twice := Dedupe(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Dedupe() not idempotent (-once +twice):\n%s", diff)
	}
}

func TestSortCategoryThenScore(t *testing.T) {
	hits := []hit.RawHit{
		{Source: "fallback", Category: hit.CategoryFallback, Score: 0.95},
		{Source: "news", Category: hit.CategoryNews, Score: 0.4},
		{Source: "social-low", Category: hit.CategorySocialMedia, Score: 0.3},
		{Source: "social-high", Category: hit.CategorySocialMedia, Score: 0.9},
	}
	Sort(hits)
	wantOrder := []string{"social-high", "social-low", "news", "fallback"}
	for i, want := range wantOrder {
		if hits[i].Source != want {
			t.Errorf("Sort()[%d] = %q, want %q", i, hits[i].Source, want)
		}
	}
}

func TestSortGeneralOutranksFallback(t *testing.T) {
	hits := []hit.RawHit{
		{Source: "direct-instagram", Category: hit.CategoryFallback, Score: 0.95},
		{Source: "genuine-web", Category: hit.CategoryGeneral, Score: 0.55},
		{Source: "direct-reddit", Category: hit.CategoryFallback, Score: 0.72},
	}
	Sort(hits)
	wantOrder := []string{"genuine-web", "direct-instagram", "direct-reddit"}
	for i, want := range wantOrder {
		if hits[i].Source != want {
			t.Errorf("Sort()[%d] = %q, want %q", i, hits[i].Source, want)
		}
	}
}

func TestSortStableOnTies(t *testing.T) {
	hits := []hit.RawHit{
		{Source: "first", Category: hit.CategoryForum, Score: 0.5},
		{Source: "second", Category: hit.CategoryForum, Score: 0.5},
		{Source: "third", Category: hit.CategoryForum, Score: 0.5},
	}
	Sort(hits)
	for i, want := range []string{"first", "second", "third"} {
		if hits[i].Source != want {
			t.Errorf("Sort()[%d] = %q, want %q (stable order)", i, hits[i].Source, want)
		}
	}
}

func TestProcess(t *testing.T) {
	hits := []hit.RawHit{
		{Source: "dup-low", Link: "https://example.com/x", Category: hit.CategoryForum, Score: 0.3},
		{Source: "pro", Link: "https://linkedin.com/in/x", Category: hit.CategoryProfessional, Score: 0.7},
		{Source: "dup-high", Link: "https://example.com/x", Category: hit.CategoryForum, Score: 0.8},
	}
	got := Process(hits)
	if len(got) != 2 {
		t.Fatalf("Process() returned %d hits, want 2", len(got))
	}
	if got[0].Source != "pro" || got[1].Source != "dup-high" {
		t.Errorf("Process() order = [%s %s], want [pro dup-high]", got[0].Source, got[1].Source)
	}
}
