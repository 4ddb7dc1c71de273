// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search runs web queries against one or more providers and
// returns unified, de-duplicated hits.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// Backend searches a single provider. Each backend (Google Custom Search,
// DuckDuckGo) implements this interface per the Strategy pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.SearchItem, error)
}

// Searcher is what the discovery pipeline needs from web search.
type Searcher interface {
	Search(ctx context.Context, query string) (types.SearchResponse, error)
}

// Aggregator fans a query out to all backends concurrently and merges the
// hits in backend order.
type Aggregator struct {
	Backends []Backend
	Config   types.SearchConfig
}

// NewAggregator returns an Aggregator over backends with cfg defaults applied.
func NewAggregator(cfg types.SearchConfig, backends ...Backend) *Aggregator {
	return &Aggregator{Backends: backends, Config: cfg.WithDefaults()}
}

// Search queries every backend. A failing backend is logged and skipped;
// an error is returned only when the query is empty, no backend is
// configured, or every backend failed.
func (a *Aggregator) Search(ctx context.Context, query string) (types.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.SearchResponse{}, fmt.Errorf("query is empty")
	}
	if len(a.Backends) == 0 {
		return types.SearchResponse{}, fmt.Errorf("no search backends configured")
	}

	results := make([][]types.SearchItem, len(a.Backends))
	errs := make([]error, len(a.Backends))

	var g errgroup.Group
	for i, b := range a.Backends {
		g.Go(func() error {
			items, err := b.Search(ctx, query, a.Config)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", b.Name(), err)
				zap.L().Warn("search: backend failed",
					zap.String("backend", b.Name()), zap.String("query", query), zap.Error(err))
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	var all []types.SearchItem
	failed := 0
	for i := range a.Backends {
		if errs[i] != nil {
			failed++
			continue
		}
		all = append(all, results[i]...)
	}
	if failed == len(a.Backends) {
		return types.SearchResponse{Query: query}, errors.Join(errs...)
	}

	return types.SearchResponse{Query: query, Items: deduplicate(all)}, nil
}

// deduplicate keeps the first item for each normalized link.
func deduplicate(items []types.SearchItem) []types.SearchItem {
	seen := make(map[string]bool, len(items))
	out := make([]types.SearchItem, 0, len(items))
	for _, it := range items {
		key := normalizeLink(it.Link)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

// normalizeLink lower-cases the host, drops the scheme, a leading "www."
// and a trailing slash so http://www.acme.com/ and https://acme.com match.
func normalizeLink(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(raw)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	key := host + strings.TrimSuffix(u.EscapedPath(), "/")
	if u.RawQuery != "" {
		key += "?" + u.RawQuery
	}
	return key
}

// FromConfig builds the backends enabled in cfg.
func FromConfig(cfg types.SearchConfig) []Backend {
	cfg = cfg.WithDefaults()
	client := newHTTPClient(cfg)
	var backends []Backend
	if cfg.EnableGoogle && cfg.GoogleAPIKey != "" && cfg.GoogleCSEID != "" {
		backends = append(backends, &GoogleBackend{Client: client, APIKey: cfg.GoogleAPIKey, CSEID: cfg.GoogleCSEID})
	}
	if cfg.EnableDuckDuckGo {
		backends = append(backends, &DuckDuckGoBackend{Client: client})
	}
	return backends
}
