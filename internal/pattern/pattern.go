// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pattern turns email-format templates and a person's name into
// candidate addresses. Templates use the tokens first_initial, last_initial,
// first, last and the quoted separator '.', e.g. "first_initial.last@acme.com".
package pattern

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// NamingConventions is the fixed fallback list tried, in order, when no
// company-specific pattern verifies.
var NamingConventions = []string{
	"first.last",
	"first_initial.last",
	"firstlast",
	"first_initiallast",
	"first",
	"last",
	"first_last",
	"lastfirst_initial",
	"last.first",
}

// Name holds the tokens substituted into templates.
type Name struct {
	First string
	Last  string
}

// FirstInitial returns the first rune of First, or "".
func (n Name) FirstInitial() string { return initial(n.First) }

// LastInitial returns the first rune of Last, or "".
func (n Name) LastInitial() string { return initial(n.Last) }

func initial(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// SplitName lower-cases and folds diacritics out of a full name, then takes
// the first two whitespace-separated tokens. A missing last name yields "".
func SplitName(full string) Name {
	parts := strings.Fields(fold(full))
	var n Name
	if len(parts) > 0 {
		n.First = parts[0]
	}
	if len(parts) > 1 {
		n.Last = parts[1]
	}
	return n
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Expand substitutes name tokens into template and sanitizes the result.
// Substitution is a single left-to-right pass, so a name that itself
// contains a token (e.g. "alastair") is never substituted twice.
func Expand(template string, n Name) (string, error) {
	r := strings.NewReplacer(
		"first_initial", n.FirstInitial(),
		"last_initial", n.LastInitial(),
		"first", n.First,
		"last", n.Last,
		"'.'", ".",
	)
	s := r.Replace(strings.ToLower(template))
	s = strings.Join(strings.Fields(s), "")
	return SanitizeEmail(s)
}

// Generate expands every pattern for personName and grades each result
// with th. Patterns that do not produce a valid address are dropped; the
// output keeps input order.
func Generate(patterns []types.EmailPattern, personName string, th Thresholds) []types.CandidateEmail {
	n := SplitName(personName)
	out := make([]types.CandidateEmail, 0, len(patterns))
	for _, p := range patterns {
		email, err := Expand(p.Pattern, n)
		if err != nil {
			zap.L().Debug("pattern: dropping candidate",
				zap.String("pattern", p.Pattern), zap.Error(err))
			continue
		}
		pct := ParsePercentage(p.Percentage)
		status, valid := th.Grade(pct)
		out = append(out, types.CandidateEmail{
			Email:                email,
			SourcePattern:        p.Pattern,
			ConfidencePercentage: pct,
			ValidationStatus:     status,
			Valid:                valid,
			Type:                 types.EmailWork,
		})
	}
	return out
}

// Conventions returns NamingConventions bound to domain, with no
// confidence statistic.
func Conventions(domain string) []types.EmailPattern {
	out := make([]types.EmailPattern, 0, len(NamingConventions))
	for _, c := range NamingConventions {
		out = append(out, types.EmailPattern{Pattern: c + "@" + domain})
	}
	return out
}
