// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package links sorts raw search-result URLs into company touchpoints
// (official site and social profiles).
//
// The rules are heuristics. A URL "contains the company" when it contains
// the company's compact name or its acronym, so short acronyms can match
// unrelated sites, and companies whose domain differs from their name are
// missed. When two URLs compete for the same category the shorter one wins
// on the assumption that it is the homepage rather than a subpage.
package links

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// socialDomains are always kept by the pre-filter regardless of name match.
var socialDomains = []string{
	"facebook.com",
	"twitter.com",
	"linkedin.com",
	"instagram.com",
	"youtube.com",
}

// legalSuffixes are dropped from a company name before building its
// compact form, so "Acme Corp" matches acme.com.
var legalSuffixes = map[string]bool{
	"corp": true, "corporation": true, "inc": true, "llc": true, "ltd": true,
	"limited": true, "gmbh": true, "co": true, "company": true, "group": true,
	"plc": true, "sa": true, "ag": true,
}

var youtubeChannelRe = regexp.MustCompile(`(?i)youtube\.com/(?:channel/|c/|user/|@)[^/?#]+`)

// Company holds the match keys derived from a company name.
type Company struct {
	// Compact is the lower-cased name without legal suffixes, spaces or punctuation.
	Compact string

	// Acronym is built from the first letter of each word, legal suffixes
	// excluded. It is empty when shorter than two letters.
	Acronym string
}

// NewCompany derives match keys from name.
func NewCompany(name string) Company {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var core []string
	for _, w := range words {
		if !legalSuffixes[w] {
			core = append(core, w)
		}
	}
	if len(core) == 0 {
		core = words
	}

	var acronym strings.Builder
	for _, w := range core {
		for _, r := range w {
			acronym.WriteRune(r)
			break
		}
	}
	c := Company{Compact: strings.Join(core, ""), Acronym: acronym.String()}
	if len([]rune(c.Acronym)) < 2 {
		c.Acronym = ""
	}
	return c
}

// Matches reports whether s mentions the company, case-insensitively.
func (c Company) Matches(s string) bool {
	s = strings.ToLower(s)
	if c.Compact != "" && strings.Contains(s, c.Compact) {
		return true
	}
	return c.Acronym != "" && strings.Contains(s, c.Acronym)
}

func hasSocialDomain(raw string) bool {
	lower := strings.ToLower(raw)
	for _, d := range socialDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// hostIs reports whether host equals domain or is a subdomain of it.
func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// Classify returns the touchpoint category of a single URL.
func Classify(raw string, c Company) types.LinkType {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return types.LinkUnknown
	}
	host := strings.ToLower(u.Hostname())

	path := u.Path
	if path == "" {
		path = "/"
	}
	switch {
	case path == "/" && u.RawQuery == "" && c.Matches(raw):
		return types.LinkOfficial
	case hostIs(host, "youtube.com") && youtubeChannelRe.MatchString(raw):
		return types.LinkYouTube
	case hostIs(host, "facebook.com"):
		return types.LinkFacebook
	case hostIs(host, "instagram.com"):
		return types.LinkInstagram
	case hostIs(host, "twitter.com") && c.Matches(raw):
		return types.LinkTwitter
	default:
		return types.LinkUnknown
	}
}

// ClassifyAll filters urls to those mentioning the company or a social
// network, classifies them, and keeps at most one link per category,
// preferring the shorter. When linkedinURL is set it is appended as the
// linkedin entry.
func ClassifyAll(urls []string, companyName, linkedinURL string) []types.ClassifiedLink {
	c := NewCompany(companyName)
	out := make([]types.ClassifiedLink, 0, 6)

	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" || !(c.Matches(raw) || hasSocialDomain(raw)) {
			continue
		}
		t := Classify(raw, c)
		if t == types.LinkUnknown {
			continue
		}
		out = insert(out, types.ClassifiedLink{Link: raw, Type: t})
	}

	if linkedinURL = strings.TrimSpace(linkedinURL); linkedinURL != "" {
		out = append(out, types.ClassifiedLink{Link: linkedinURL, Type: types.LinkLinkedIn})
	}
	return out
}

// insert adds l, or replaces the entry of the same type when l is shorter.
func insert(set []types.ClassifiedLink, l types.ClassifiedLink) []types.ClassifiedLink {
	for i, existing := range set {
		if existing.Type != l.Type {
			continue
		}
		if len(l.Link) < len(existing.Link) {
			set[i] = l
		}
		return set
	}
	return append(set, l)
}
