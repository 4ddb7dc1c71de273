// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	name  string
	items []types.SearchItem
	err   error
	calls int32
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) Search(_ context.Context, _ string, _ types.SearchConfig) ([]types.SearchItem, error) {
	atomic.AddInt32(&m.calls, 1)
	return m.items, m.err
}

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults: 10,
	}
}

// --- Aggregator ---

func TestAggregatorMergesInBackendOrder(t *testing.T) {
	a := &mockBackend{name: "a", items: []types.SearchItem{
		{Link: "https://acme.com", Source: "a"},
		{Link: "https://twitter.com/acme", Source: "a"},
	}}
	b := &mockBackend{name: "b", items: []types.SearchItem{
		{Link: "https://www.acme.com/", Source: "b"},
		{Link: "https://facebook.com/acme", Source: "b"},
	}}

	resp, err := NewAggregator(testCfg(), a, b).Search(context.Background(), "  Acme  ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Query != "Acme" {
		t.Errorf("Query = %q, want %q", resp.Query, "Acme")
	}
	want := []string{"https://acme.com", "https://twitter.com/acme", "https://facebook.com/acme"}
	got := resp.Links()
	if len(got) != len(want) {
		t.Fatalf("got %d links %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if resp.Items[0].Source != "a" {
		t.Errorf("duplicate should keep the first backend's hit, got source %q", resp.Items[0].Source)
	}
}

func TestAggregatorPartialFailure(t *testing.T) {
	ok := &mockBackend{name: "ok", items: []types.SearchItem{{Link: "https://acme.com"}}}
	bad := &mockBackend{name: "bad", err: errors.New("boom")}

	resp, err := NewAggregator(testCfg(), bad, ok).Search(context.Background(), "acme")
	if err != nil {
		t.Fatalf("one failing backend should not fail the search: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Errorf("got %d items, want 1", len(resp.Items))
	}
}

func TestAggregatorAllFail(t *testing.T) {
	a := &mockBackend{name: "a", err: errors.New("down")}
	b := &mockBackend{name: "b", err: errors.New("quota")}

	_, err := NewAggregator(testCfg(), a, b).Search(context.Background(), "acme")
	if err == nil {
		t.Fatal("expected error when every backend fails")
	}
	if !strings.Contains(err.Error(), "down") || !strings.Contains(err.Error(), "quota") {
		t.Errorf("error should carry every backend failure, got %v", err)
	}
}

func TestAggregatorRejectsEmptyQuery(t *testing.T) {
	m := &mockBackend{name: "m"}
	if _, err := NewAggregator(testCfg(), m).Search(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty query")
	}
	if atomic.LoadInt32(&m.calls) != 0 {
		t.Error("backend should not be called for an empty query")
	}
}

func TestAggregatorNoBackends(t *testing.T) {
	if _, err := NewAggregator(testCfg()).Search(context.Background(), "acme"); err == nil {
		t.Fatal("expected error with no backends")
	}
}

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"https://acme.com", "http://www.acme.com/", true},
		{"https://ACME.com/About", "https://acme.com/About/", true},
		{"https://acme.com/about", "https://acme.com/careers", false},
		{"https://acme.com/?p=1", "https://acme.com/?p=2", false},
	}
	for _, tt := range tests {
		got := normalizeLink(tt.a) == normalizeLink(tt.b)
		if got != tt.same {
			t.Errorf("normalizeLink(%q) == normalizeLink(%q) is %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}

func TestFromConfig(t *testing.T) {
	cfg := testCfg()
	cfg.EnableDuckDuckGo = true
	cfg.EnableGoogle = true
	if got := FromConfig(cfg); len(got) != 1 || got[0].Name() != "duckduckgo" {
		t.Errorf("google without credentials should be skipped, got %d backends", len(got))
	}

	cfg.GoogleAPIKey = "k"
	cfg.GoogleCSEID = "cx"
	got := FromConfig(cfg)
	if len(got) != 2 || got[0].Name() != "google" || got[1].Name() != "duckduckgo" {
		t.Errorf("unexpected backends: %v", got)
	}
}

// --- Google ---

func TestGoogleSearchRequestParams(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[
			{"title":"Acme Inc","link":"https://acme.com","snippet":"Acme makes things."},
			{"title":"no link","link":"","snippet":"dropped"}
		]}`)
	}))
	defer ts.Close()

	old := googleAPIBase
	googleAPIBase = ts.URL
	defer func() { googleAPIBase = old }()

	cfg := testCfg()
	cfg.MaxResults = 50

	b := &GoogleBackend{Client: ts.Client(), APIKey: "secret", CSEID: "engine"}
	items, err := b.Search(context.Background(), `"Acme" email format`, cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := captured.URL.Query()
	if got := q.Get("key"); got != "secret" {
		t.Errorf("key = %q", got)
	}
	if got := q.Get("cx"); got != "engine" {
		t.Errorf("cx = %q", got)
	}
	if got := q.Get("q"); got != `"Acme" email format` {
		t.Errorf("q = %q", got)
	}
	if got := q.Get("num"); got != "10" {
		t.Errorf("num = %q, want capped at 10", got)
	}
	if got := captured.Header.Get("User-Agent"); got != "test/0.1" {
		t.Errorf("User-Agent = %q", got)
	}

	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Link != "https://acme.com" || items[0].Snippet != "Acme makes things." || items[0].Source != "google" {
		t.Errorf("unexpected item %+v", items[0])
	}
}

func TestGoogleSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	old := googleAPIBase
	googleAPIBase = ts.URL
	defer func() { googleAPIBase = old }()

	b := &GoogleBackend{Client: ts.Client()}
	if _, err := b.Search(context.Background(), "acme", testCfg()); err == nil {
		t.Fatal("expected error on HTTP 403")
	}
}

// --- DuckDuckGo ---

const ddgPage = `<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=%s&rut=abc">Acme  Inc</a>
  <a class="result__snippet">The most common Acme email
     format is first.last@acme.com (82%%).</a>
</div>
<div class="result">
  <a class="result__a" href="https://twitter.com/acme">Acme on X</a>
  <div class="result__snippet">Follow us</div>
</div>
<div class="result">
  <a class="result__a" href="/relative">skip me</a>
</div>
<div class="result">
  <span>no anchor</span>
</div>
</body></html>`

func TestDuckDuckGoSearch(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprintf(w, ddgPage, url.QueryEscape("https://www.acme.com/"))
	}))
	defer ts.Close()

	old := duckduckgoBase
	duckduckgoBase = ts.URL + "/html/"
	defer func() { duckduckgoBase = old }()

	b := &DuckDuckGoBackend{Client: ts.Client()}
	items, err := b.Search(context.Background(), `"Acme" email format`, testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != `"Acme" email format` {
		t.Errorf("q = %q", gotQuery)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	if items[0].Link != "https://www.acme.com/" {
		t.Errorf("redirect not decoded: %q", items[0].Link)
	}
	if items[0].Title != "Acme  Inc" {
		t.Errorf("Title = %q", items[0].Title)
	}
	if want := "The most common Acme email format is first.last@acme.com (82%)."; items[0].Snippet != want {
		t.Errorf("Snippet = %q, want %q", items[0].Snippet, want)
	}
	if items[1].Link != "https://twitter.com/acme" {
		t.Errorf("direct link = %q", items[1].Link)
	}
}

func TestDuckDuckGoMaxResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, ddgPage, url.QueryEscape("https://acme.com"))
	}))
	defer ts.Close()

	old := duckduckgoBase
	duckduckgoBase = ts.URL
	defer func() { duckduckgoBase = old }()

	cfg := testCfg()
	cfg.MaxResults = 1
	items, err := (&DuckDuckGoBackend{Client: ts.Client()}).Search(context.Background(), "acme", cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items, want 1", len(items))
	}
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		href, want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Facme.com%2Fabout", "https://acme.com/about"},
		{"https://acme.com", "https://acme.com"},
		{"/relative", ""},
		{"javascript:void(0)", ""},
	}
	for _, tt := range tests {
		if got := resolveRedirect(tt.href); got != tt.want {
			t.Errorf("resolveRedirect(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
