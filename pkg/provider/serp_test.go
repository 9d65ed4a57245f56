package provider

import (
	"errors"
	"testing"

	"github.com/osprey-dev/namesift/pkg/hit"
)

const googlePage = `<html><body>
<div class="g">
  <div class="yuRUbf"><a href="https://www.linkedin.com/in/janedoe"><h3>Jane Doe - Software Engineer</h3></a></div>
  <div class="VwiC3b">Jane Doe is a software engineer based in Berlin.</div>
</div>
<div class="g">
  <a href="/url?q=https://github.com/janedoe&amp;sa=U"><h3>janedoe (Jane Doe) · GitHub</h3></a>
  <span class="aCOpRe">Jane Doe has 42 repositories available.</span>
</div>
<div class="g">
  <a href="https://example.com/nolink"></a>
</div>
</body></html>`

func TestParseGoogle(t *testing.T) {
	results, err := ParseGoogle([]byte(googlePage))
	if err != nil {
		t.Fatalf("ParseGoogle() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("ParseGoogle() returned %d results, want 2", len(results))
	}
	if results[0].Link != "https://www.linkedin.com/in/janedoe" {
		t.Errorf("results[0].Link = %q", results[0].Link)
	}
	if results[0].Title != "Jane Doe - Software Engineer" {
		t.Errorf("results[0].Title = %q", results[0].Title)
	}
	if results[0].Snippet != "Jane Doe is a software engineer based in Berlin." {
		t.Errorf("results[0].Snippet = %q", results[0].Snippet)
	}
	// Redirect wrapper unwrapped to the destination.
	if results[1].Link != "https://github.com/janedoe" {
		t.Errorf("results[1].Link = %q, want unwrapped GitHub URL", results[1].Link)
	}
}

func TestParseGoogleDoubleEncodedText(t *testing.T) {
	// Engines sometimes serve snippets encoded twice: the parser's own
	// decode pass leaves &amp; in the text, which a second pass fixes.
	page := `<html><body>
<div class="g">
  <a href="https://example.com/janedoe"><h3>Jane Doe &amp;amp; Associates</h3></a>
  <span class="aCOpRe">Legal counsel at Doe &amp;amp; Smith &amp;quot;LLP&amp;quot; Berlin.</span>
</div>
</body></html>`
	results, err := ParseGoogle([]byte(page))
	if err != nil {
		t.Fatalf("ParseGoogle() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("ParseGoogle() returned %d results, want 1", len(results))
	}
	if results[0].Title != "Jane Doe & Associates" {
		t.Errorf("results[0].Title = %q, want decoded ampersand", results[0].Title)
	}
	if results[0].Snippet != `Legal counsel at Doe & Smith "LLP" Berlin.` {
		t.Errorf("results[0].Snippet = %q, want fully decoded snippet", results[0].Snippet)
	}
}

func TestParseGoogleEmptyPage(t *testing.T) {
	_, err := ParseGoogle([]byte(`<html><body><p>nothing here</p></body></html>`))
	if !errors.Is(err, hit.ErrNoResults) {
		t.Errorf("ParseGoogle() error = %v, want ErrNoResults", err)
	}
}

func TestParseBing(t *testing.T) {
	page := `<html><body><ol id="b_results">
<li class="b_algo">
  <h2><a href="https://twitter.com/janedoe">Jane Doe (@janedoe) / X</a></h2>
  <div class="b_caption"><p>The latest posts from Jane Doe.</p></div>
</li>
</ol></body></html>`
	results, err := ParseBing([]byte(page))
	if err != nil {
		t.Fatalf("ParseBing() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("ParseBing() returned %d results, want 1", len(results))
	}
	if results[0].Link != "https://twitter.com/janedoe" || results[0].Snippet != "The latest posts from Jane Doe." {
		t.Errorf("ParseBing() result = %+v", results[0])
	}
}

func TestParseDuckDuckGo(t *testing.T) {
	page := `<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.instagram.com%2Fjanedoe%2F&amp;rut=abc">Jane Doe (@janedoe)</a>
  <a class="result__snippet" href="#">Photos and videos from Jane Doe.</a>
</div>
</body></html>`
	results, err := ParseDuckDuckGo([]byte(page))
	if err != nil {
		t.Fatalf("ParseDuckDuckGo() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("ParseDuckDuckGo() returned %d results, want 1", len(results))
	}
	if results[0].Link != "https://www.instagram.com/janedoe/" {
		t.Errorf("ParseDuckDuckGo() link = %q, want unwrapped Instagram URL", results[0].Link)
	}
}

func TestCleanRedirect(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/url?q=https://example.com/a&sa=U", "https://example.com/a"},
		{"https://example.com/direct", "https://example.com/direct"},
		{"/relative/path", ""},
		{"javascript:void(0)", ""},
	}
	for _, tt := range tests {
		if got := cleanRedirect(tt.in); got != tt.want {
			t.Errorf("cleanRedirect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
