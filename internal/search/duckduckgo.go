// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/lead-engine/internal/httputil"
	"github.com/pdiddy/lead-engine/pkg/types"
)

// duckduckgoBase is the HTML (no-JS) search endpoint. Declared as a var so
// tests can substitute an httptest server.
var duckduckgoBase = "https://html.duckduckgo.com/html/"

// DuckDuckGoBackend scrapes the DuckDuckGo HTML results page. It needs no
// API key.
type DuckDuckGoBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *DuckDuckGoBackend) Name() string { return "duckduckgo" }

// Search returns up to cfg.MaxResults hits for query.
func (b *DuckDuckGoBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchItem, error) {
	doc, err := httputil.FetchDocument(ctx, b.Client, duckduckgoBase+"?q="+url.QueryEscape(query), cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("DuckDuckGo request: %w", err)
	}

	var items []types.SearchItem
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if cfg.MaxResults > 0 && len(items) >= cfg.MaxResults {
			return false
		}
		a := s.Find(".result__a").First()
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		link := resolveRedirect(href)
		if link == "" {
			return true
		}
		items = append(items, types.SearchItem{
			Link:    link,
			Title:   strings.TrimSpace(a.Text()),
			Snippet: strings.Join(strings.Fields(s.Find(".result__snippet").Text()), " "),
			Source:  "duckduckgo",
		})
		return true
	})
	return items, nil
}

// resolveRedirect extracts the target from a DuckDuckGo redirect link
// (//duckduckgo.com/l/?uddg=<escaped target>). Direct links pass through.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	return ""
}

func newHTTPClient(cfg types.SearchConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}
