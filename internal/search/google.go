// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/lead-engine/internal/httputil"
	"github.com/pdiddy/lead-engine/pkg/types"
)

// googleAPIBase is the Custom Search JSON API endpoint. Declared as a var
// so tests can substitute an httptest server.
var googleAPIBase = "https://www.googleapis.com/customsearch/v1"

// googleMaxNum is the largest page size the API accepts.
const googleMaxNum = 10

// GoogleBackend queries the Google Custom Search JSON API.
type GoogleBackend struct {
	Client *http.Client
	APIKey string
	CSEID  string
}

// Name returns the backend identifier.
func (b *GoogleBackend) Name() string { return "google" }

// Search returns the first page of results for query.
func (b *GoogleBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchItem, error) {
	num := cfg.MaxResults
	if num <= 0 || num > googleMaxNum {
		num = googleMaxNum
	}

	params := url.Values{
		"key": {b.APIKey},
		"cx":  {b.CSEID},
		"q":   {query},
		"num": {strconv.Itoa(num)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Google API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google API returned HTTP %d", resp.StatusCode)
	}

	var gr googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("parsing Google response: %w", err)
	}

	items := make([]types.SearchItem, 0, len(gr.Items))
	for _, it := range gr.Items {
		if it.Link == "" {
			continue
		}
		items = append(items, types.SearchItem{
			Link:    it.Link,
			Title:   it.Title,
			Snippet: it.Snippet,
			Source:  "google",
		})
	}
	return items, nil
}

// Custom Search API JSON structures.
type googleResponse struct {
	Items []googleItem `json:"items"`
}

type googleItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	HTMLSnippet string `json:"htmlSnippet"`
}
