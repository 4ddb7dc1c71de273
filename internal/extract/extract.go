// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls email-format statistics out of search snippets.
//
// Email-format directories publish lines such as
//
//	1. first.last@acme.com (82.4%) ... 10.2% ; first@acme.com 7.4% ; last@acme.com
//	35% ; first.last 20% ; flast
//
// Two forms are recognised: the ranked "1. pattern (NN.N%)" entry and the
// repeating "NN.N% ; pattern" separator list. The @domain part is optional;
// a pattern must contain a first or last token.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/lead-engine/pkg/types"
)

const (
	percentExpr = `(\d{1,3}(?:\.\d+)?%)`
	patternExpr = `([A-Za-z_'.\-]+(?:@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,})?)`
)

var (
	// separatorRe matches "10.2% ; first@acme.com", repeated.
	separatorRe = regexp.MustCompile(percentExpr + `\s*;\s*` + patternExpr)

	// rankedRe matches the top entry "1. first.last@acme.com (82.4%)".
	rankedRe = regexp.MustCompile(`(?:^|[^\d])1\.\s*` + patternExpr + `\s*\(` + percentExpr + `\)`)
)

// Relevant reports whether a snippet may carry email-format statistics.
// Snippets with <b> highlighting or [ markers are provider noise.
func Relevant(s string) bool {
	if !strings.Contains(s, "@") {
		return false
	}
	if !strings.Contains(s, "first") && !strings.Contains(s, "last") {
		return false
	}
	return !strings.Contains(s, "<b>") && !strings.Contains(s, "[")
}

// Patterns extracts {pattern, percentage} pairs from snippets in the order
// they appear, keeping only the first pair seen for each pattern.
func Patterns(snippets []string) []types.EmailPattern {
	var all []types.EmailPattern
	for _, s := range snippets {
		if !Relevant(s) {
			continue
		}
		all = append(all, fromSnippet(s)...)
	}
	return Dedupe(all)
}

type hit struct {
	pos int
	p   types.EmailPattern
}

// fromSnippet returns the pairs in s ordered by where their pattern starts.
func fromSnippet(s string) []types.EmailPattern {
	var hits []hit
	add := func(pos int, pat, pct string) {
		pat = strings.TrimRight(pat, ".-")
		if !hasNameToken(pat) {
			return
		}
		hits = append(hits, hit{pos: pos, p: types.EmailPattern{Pattern: pat, Percentage: pct}})
	}
	for _, m := range separatorRe.FindAllStringSubmatchIndex(s, -1) {
		add(m[4], s[m[4]:m[5]], s[m[2]:m[3]])
	}
	if m := rankedRe.FindStringSubmatchIndex(s); m != nil {
		add(m[2], s[m[2]:m[3]], s[m[4]:m[5]])
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := make([]types.EmailPattern, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.p)
	}
	return out
}

// hasNameToken reports whether the local part of p uses a first or last token.
func hasNameToken(p string) bool {
	local, _, _ := strings.Cut(p, "@")
	return strings.Contains(local, "first") || strings.Contains(local, "last")
}

// Dedupe drops later entries whose Pattern was already seen.
func Dedupe(patterns []types.EmailPattern) []types.EmailPattern {
	seen := make(map[string]bool, len(patterns))
	out := make([]types.EmailPattern, 0, len(patterns))
	for _, p := range patterns {
		if seen[p.Pattern] {
			continue
		}
		seen[p.Pattern] = true
		out = append(out, p)
	}
	return out
}
