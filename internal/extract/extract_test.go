// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/lead-engine/pkg/types"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"format line", "1. first.last@acme.com (82.4%)", true},
		{"no at", "first.last is the most common format", false},
		{"no first or last", "contact us at info@acme.com", false},
		{"capitalised tokens only", "First.Last@acme.com (82%)", false},
		{"bold markup", "1. <b>first</b>.last@acme.com (82.4%)", false},
		{"bracket marker", "[PDF] first.last@acme.com 10% ; first@acme.com", false},
		{"last only", "10% ; last@acme.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Relevant(tt.in))
		})
	}
}

func TestPatternsBothForms(t *testing.T) {
	snippet := "Acme Corp uses 4 email formats: 1. first.last@acme.com (82.4%). " +
		"Other formats: 10.2% ; first@acme.com 7.4% ; last@acme.com."

	got := Patterns([]string{snippet})
	assert.Equal(t, []types.EmailPattern{
		{Pattern: "first.last@acme.com", Percentage: "82.4%"},
		{Pattern: "first@acme.com", Percentage: "10.2%"},
		{Pattern: "last@acme.com", Percentage: "7.4%"},
	}, got)
}

func TestPatternsSeparatorOnly(t *testing.T) {
	got := Patterns([]string{"35% ; first_initiallast@globex.io 20.5% ; first'.'last@globex.io"})
	assert.Equal(t, []types.EmailPattern{
		{Pattern: "first_initiallast@globex.io", Percentage: "35%"},
		{Pattern: "first'.'last@globex.io", Percentage: "20.5%"},
	}, got)
}

func TestPatternsDomainless(t *testing.T) {
	got := Patterns([]string{
		"Acme Corp (jane@acme.com) email formats: 35% ; first.last 20% ; flast.",
		"jane@acme.com uses 1. first_last (82.4%)",
	})
	assert.Equal(t, []types.EmailPattern{
		{Pattern: "first.last", Percentage: "35%"},
		{Pattern: "flast", Percentage: "20%"},
		{Pattern: "first_last", Percentage: "82.4%"},
	}, got)
}

func TestPatternsNeedNameToken(t *testing.T) {
	got := Patterns([]string{"first.last@acme.com is common: 40% ; info 30% ; jdoe@acme.com 20% ; last"})
	assert.Equal(t, []types.EmailPattern{
		{Pattern: "last", Percentage: "20%"},
	}, got)
}

func TestPatternsDedupKeepsFirst(t *testing.T) {
	got := Patterns([]string{
		"1. first.last@acme.com (61%)",
		"Acme email format 1. first.last@acme.com (90%)",
		"12% ; first.last@acme.com 5% ; last@acme.com",
	})
	assert.Equal(t, []types.EmailPattern{
		{Pattern: "first.last@acme.com", Percentage: "61%"},
		{Pattern: "last@acme.com", Percentage: "5%"},
	}, got)
}

func TestPatternsIgnoresNoise(t *testing.T) {
	got := Patterns([]string{
		"<b>Acme</b> 1. first.last@acme.com (82.4%)",
		"[Acme] 10% ; first@acme.com",
		"Email us: hello@acme.com",
	})
	assert.Empty(t, got)
}

func TestPatternsRankedNeedsStandaloneOne(t *testing.T) {
	got := Patterns([]string{"11. first.last@acme.com (3%)"})
	assert.Empty(t, got)
}

func TestDedupe(t *testing.T) {
	in := []types.EmailPattern{
		{Pattern: "a@x.com", Percentage: "1%"},
		{Pattern: "b@x.com", Percentage: "2%"},
		{Pattern: "a@x.com", Percentage: "3%"},
	}
	assert.Equal(t, in[:2], Dedupe(in))
}
