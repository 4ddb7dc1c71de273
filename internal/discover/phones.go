// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/lead-engine/internal/search"
	"github.com/pdiddy/lead-engine/pkg/types"
)

var (
	phoneRe = regexp.MustCompile(`\+?\(?\d[\d\s().-]{6,}\d`)

	// countryRe reads an explicit calling code: "+44 20..." or "+1-415...".
	countryRe = regexp.MustCompile(`^\+(\d{1,3})[\s.(-]`)
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15

	phoneTypeWork = "Work"
)

// FindPhones searches for the company's phone numbers. A failed search
// yields no phones.
func FindPhones(ctx context.Context, s search.Searcher, companyName string) []types.Phone {
	query := quote(companyName) + " phone number"
	resp, err := s.Search(ctx, query)
	if err != nil {
		zap.L().Warn("discover: phone search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	return ParsePhones(resp.Snippets())
}

// ParsePhones pulls phone-like sequences out of text, normalized to digits
// with an optional leading "+", de-duplicated in order of appearance.
func ParsePhones(texts []string) []types.Phone {
	var out []types.Phone
	seen := make(map[string]bool)
	for _, t := range texts {
		for _, m := range phoneRe.FindAllString(t, -1) {
			m = strings.TrimSpace(m)
			digits := nonDigitRe.ReplaceAllString(m, "")
			if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
				continue
			}
			if looksLikeYearRange(m) {
				continue
			}
			number := digits
			if strings.HasPrefix(m, "+") {
				number = "+" + digits
			}
			if seen[digits] {
				continue
			}
			seen[digits] = true

			p := types.Phone{Phone: number, Type: phoneTypeWork}
			if cc := countryRe.FindStringSubmatch(m); cc != nil {
				p.Country = cc[1]
			}
			out = append(out, p)
		}
	}
	return out
}

var yearRangeRe = regexp.MustCompile(`^(?:19|20)\d{2}\s*-\s*(?:19|20)\d{2}$`)

// looksLikeYearRange rejects matches such as "2019 - 2023".
func looksLikeYearRange(s string) bool {
	return yearRangeRe.MatchString(s)
}
