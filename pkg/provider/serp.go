package provider

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/osprey-dev/namesift/pkg/hit"
	"github.com/osprey-dev/namesift/pkg/htmlutil"
)

// Result is one raw entry lifted out of a results page before
// scoring or categorization.
type Result struct {
	Title   string
	Snippet string
	Link    string
}

// Google markup churns constantly, so every selector is a fallback
// list: the first one that matches anything wins.
var (
	googleResultSelectors  = []string{"div.g", "div.tF2Cxc", "div.MjjYud", "div.yuRUbf"}
	googleTitleSelectors   = []string{"h3", "h3.LC20lb", "h3.r", "a h3"}
	googleSnippetSelectors = []string{"span.aCOpRe", "span.hgKElc", "div.VwiC3b", "div.yXK7lf", "div.s", "span.st", "div.BNeawe"}
)

// ParseGoogle extracts organic results from a Google results page.
func ParseGoogle(body []byte) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var blocks *goquery.Selection
	for _, sel := range googleResultSelectors {
		blocks = doc.Find(sel)
		if blocks.Length() > 0 {
			break
		}
	}
	if blocks == nil || blocks.Length() == 0 {
		return nil, hit.ErrNoResults
	}

	var results []Result
	blocks.Each(func(_ int, block *goquery.Selection) {
		r := Result{
			Title:   firstText(block, googleTitleSelectors),
			Snippet: firstText(block, googleSnippetSelectors),
			Link:    extractHref(block),
		}
		if r.Title != "" && r.Link != "" {
			results = append(results, r)
		}
	})
	if len(results) == 0 {
		return nil, hit.ErrNoResults
	}
	return results, nil
}

// ParseBing extracts organic results from a Bing results page.
func ParseBing(body []byte) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var results []Result
	doc.Find("li.b_algo").Each(func(_ int, block *goquery.Selection) {
		anchor := block.Find("h2 a").First()
		link, _ := anchor.Attr("href")
		r := Result{
			Title:   cleanText(anchor.Text()),
			Snippet: cleanText(block.Find("div.b_caption p").First().Text()),
			Link:    link,
		}
		if r.Title != "" && strings.HasPrefix(r.Link, "http") {
			results = append(results, r)
		}
	})
	if len(results) == 0 {
		return nil, hit.ErrNoResults
	}
	return results, nil
}

// ParseDuckDuckGo extracts results from the html.duckduckgo.com layout.
func ParseDuckDuckGo(body []byte) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var results []Result
	doc.Find("div.result").Each(func(_ int, block *goquery.Selection) {
		anchor := block.Find("a.result__a").First()
		link, _ := anchor.Attr("href")
		r := Result{
			Title:   cleanText(anchor.Text()),
			Snippet: cleanText(block.Find("a.result__snippet").First().Text()),
			Link:    cleanRedirect(link),
		}
		if r.Title != "" && strings.HasPrefix(r.Link, "http") {
			results = append(results, r)
		}
	})
	if len(results) == 0 {
		return nil, hit.ErrNoResults
	}
	return results, nil
}

// firstText returns the text of the first selector that matches inside
// the block.
func firstText(block *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if el := block.Find(sel).First(); el.Length() > 0 {
			if text := cleanText(el.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// cleanText trims extracted text and decodes the entity layer the
// engines leave behind. Goquery decodes once during parsing; snippets
// served double-encoded still show &amp; after that pass.
func cleanText(s string) string {
	return strings.TrimSpace(htmlutil.DecodeHTMLEntities(s))
}

// extractHref pulls the destination URL out of a result block's first
// anchor, unwrapping Google's /url?q= redirect when present.
func extractHref(block *goquery.Selection) string {
	href, ok := block.Find("a").First().Attr("href")
	if !ok {
		return ""
	}
	return cleanRedirect(href)
}

// cleanRedirect unwraps engine redirect URLs (/url?q=... and DDG's
// uddg= form) to the real destination. Anything else passes through if
// it is already absolute.
func cleanRedirect(href string) string {
	switch {
	case strings.HasPrefix(href, "/url?q="), strings.HasPrefix(href, "https://www.google.com/url?q="):
		u, err := url.Parse(href)
		if err != nil {
			return ""
		}
		return u.Query().Get("q")
	case strings.Contains(href, "duckduckgo.com/l/?"):
		u, err := url.Parse(href)
		if err != nil {
			return ""
		}
		if dest := u.Query().Get("uddg"); dest != "" {
			return dest
		}
		return ""
	case strings.HasPrefix(href, "http"):
		return href
	default:
		return ""
	}
}
