// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/lead-engine/internal/search"
)

// CompanyInfo holds descriptive company facts read from search snippets.
type CompanyInfo struct {
	Location    string
	CompanySize string
	Founded     string
}

var (
	locationRe = regexp.MustCompile(
		`(?i:headquartered in|headquarters(?: is| are)? in|headquarters:|based in|located in)\s+` +
			`([A-Z][a-z]+(?:[ -][A-Z][a-z]+)*(?:,\s*[A-Z][A-Za-z]+(?:[ -][A-Z][a-z]+)*)?)`)

	sizeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i:company size|employees)\s*:\s*(\d[\d,]*(?:\s*(?:-|to)\s*\d[\d,]*)?\+?)`),
		regexp.MustCompile(`(\d[\d,]*(?:\s*(?:-|to)\s*\d[\d,]*)?\+?)\s+(?i:employees)`),
	}

	foundedRe = regexp.MustCompile(`(?i:founded|established)(?:\s+in|\s*:)?\s+((?:18|19|20)\d{2})\b`)
)

// FindInfo searches for the company's location, size and founding year. A
// failed search yields an empty CompanyInfo.
func FindInfo(ctx context.Context, s search.Searcher, companyName string) CompanyInfo {
	query := quote(companyName) + " headquarters company size founded"
	resp, err := s.Search(ctx, query)
	if err != nil {
		zap.L().Warn("discover: info search failed", zap.String("query", query), zap.Error(err))
		return CompanyInfo{}
	}
	return ParseInfo(resp.Snippets())
}

// ParseInfo reads each field from the first text that carries it.
func ParseInfo(texts []string) CompanyInfo {
	var info CompanyInfo
	for _, t := range texts {
		if info.Location == "" {
			if m := locationRe.FindStringSubmatch(t); m != nil {
				info.Location = strings.TrimSpace(m[1])
			}
		}
		if info.CompanySize == "" {
			for _, re := range sizeRes {
				if m := re.FindStringSubmatch(t); m != nil {
					info.CompanySize = strings.Join(strings.Fields(m[1]), " ")
					break
				}
			}
		}
		if info.Founded == "" {
			if m := foundedRe.FindStringSubmatch(t); m != nil {
				info.Founded = m[1]
			}
		}
	}
	return info
}
