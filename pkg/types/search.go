// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchItem is one ranked hit returned by a web search backend.
type SearchItem struct {
	// Link is the result URL.
	Link string `json:"link" yaml:"link"`

	// Title is the result title as returned by the provider.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Snippet is the plain-text excerpt shown under the result. Providers
	// sometimes leave markup such as <b> in it.
	Snippet string `json:"snippet" yaml:"snippet"`

	// Source identifies which backend produced the item (e.g. "google", "duckduckgo").
	Source string `json:"source" yaml:"source"`
}

// SearchResponse holds the items returned for one query, in rank order.
type SearchResponse struct {
	Query string       `json:"query" yaml:"query"`
	Items []SearchItem `json:"items" yaml:"items"`
}

// Links returns the item links in rank order.
func (r SearchResponse) Links() []string {
	out := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.Link)
	}
	return out
}

// Snippets returns the item snippets in rank order.
func (r SearchResponse) Snippets() []string {
	out := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.Snippet)
	}
	return out
}
