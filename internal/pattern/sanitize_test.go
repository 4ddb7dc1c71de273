// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "clean", in: "jane.doe@acme.com", want: "jane.doe@acme.com"},
		{name: "quotes and slashes", in: `"jane.doe"@acme.com`, want: "jane.doe@acme.com"},
		{name: "colon semicolon ampersand", in: "mailto:jane&doe;@acme.com", want: "mailtojanedoe@acme.com"},
		{name: "stray commas", in: ",,jane.doe@acme.com,", want: "jane.doe@acme.com"},
		{name: "plus stripped from local", in: "jane+news@acme.com", want: "janenews@acme.com"},
		{name: "percent stripped from local", in: "jane%doe@acme.com", want: "janedoe@acme.com"},
		{name: "no at", in: "jane.doe.acme.com", wantErr: true},
		{name: "no tld", in: "jane@acme", wantErr: true},
		{name: "inner comma", in: "jane,doe@acme.com", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "local only symbols", in: "+%@acme.com", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeEmail(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeEmailIdempotent(t *testing.T) {
	for _, in := range []string{
		"jane.doe@acme.com",
		`"j.doe"@sub.acme.co.uk`,
		"a_b-c@x-y.io",
		"jane+tag@acme.com",
	} {
		once, err := SanitizeEmail(in)
		require.NoError(t, err, in)
		twice, err := SanitizeEmail(once)
		require.NoError(t, err, once)
		assert.Equal(t, once, twice)
	}
}
