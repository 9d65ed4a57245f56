package provider

import (
	"context"
	"net/url"
)

// Engine is one scrapeable search engine: how to build a query URL and
// how to pull results out of its markup.
type Engine struct {
	URL   func(query string) string
	Parse func(body []byte) ([]Result, error)
	Name  string
}

var (
	// Google is the primary engine; richest results, strictest rate limits.
	Google = Engine{
		Name: "Google",
		URL: func(query string) string {
			return "https://www.google.com/search?q=" + url.QueryEscape(query) + "&num=10"
		},
		Parse: ParseGoogle,
	}

	// Bing tolerates scraping better than Google and serves as the
	// second opinion for the general web stage.
	Bing = Engine{
		Name: "Bing",
		URL: func(query string) string {
			return "https://www.bing.com/search?q=" + url.QueryEscape(query)
		},
		Parse: ParseBing,
	}

	// DuckDuckGo's html endpoint needs no JavaScript at all.
	DuckDuckGo = Engine{
		Name: "DuckDuckGo",
		URL: func(query string) string {
			return "https://html.duckduckgo.com/html/?q=" + url.QueryEscape(query)
		},
		Parse: ParseDuckDuckGo,
	}
)

// Search fetches one query against the engine and returns up to limit
// parsed results.
func (e Engine) Search(ctx context.Context, fetcher *Fetcher, query string, limit int) ([]Result, error) {
	body, err := fetcher.Get(ctx, e.URL(query))
	if err != nil {
		return nil, err
	}
	results, err := e.Parse(body)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
