// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pattern

import (
	"strconv"
	"strings"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// Thresholds grades a confidence percentage. Above 95 is high and valid,
// above 85 is medium and valid; anything else is low and valid only when
// above ValidAbove. All comparisons are strict.
type Thresholds struct {
	ValidAbove float64
}

var (
	// ExtractionThresholds apply to patterns freshly extracted from search.
	ExtractionThresholds = Thresholds{ValidAbove: 75}

	// CachedThresholds apply to patterns read back from a company record.
	CachedThresholds = Thresholds{ValidAbove: 85}
)

// Grade maps a percentage to a status and validity. A nil percentage is
// low and not valid.
func (t Thresholds) Grade(pct *float64) (types.ValidationStatus, bool) {
	if pct == nil {
		return types.StatusLow, false
	}
	switch p := *pct; {
	case p > 95:
		return types.StatusHigh, true
	case p > 85:
		return types.StatusMedium, true
	default:
		return types.StatusLow, p > t.ValidAbove
	}
}

// ParsePercentage reads values like "35.2%", "90" or " 12 % ". It returns
// nil when s holds no number.
func ParsePercentage(s string) *float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// MarkVerified promotes a candidate that passed the full verification
// pipeline, whatever its originating confidence.
func MarkVerified(c types.CandidateEmail) types.CandidateEmail {
	c.ValidationStatus = types.StatusHigh
	c.Valid = true
	return c
}
