// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lead-engine/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func acmeRecord() *types.CompanyRecord {
	return &types.CompanyRecord{
		Key:  "acme.com",
		Name: "Acme",
		EmailPatterns: []types.EmailPattern{
			{Pattern: "first.last@acme.com", Percentage: "82%"},
		},
		Phones: []types.Phone{{Phone: "+14155550100", Type: "Work", Country: "1"}},
		Links: []types.ClassifiedLink{
			{Link: "https://acme.com", Type: types.LinkOfficial},
			{Link: "https://twitter.com/acme", Type: types.LinkTwitter},
		},
		Location:    "Springfield",
		CompanySize: "51-200",
		Founded:     "1999",
	}
}

func TestCompanyKey(t *testing.T) {
	tests := []struct {
		name, company, url, want string
	}{
		{"url wins", "Acme", "https://www.Acme.com/", "acme.com"},
		{"http url", "Acme", "http://acme.com/about", "acme.com/about"},
		{"name only", "  Acme   Widgets ", "", "name:acme widgets"},
		{"blank url", "Acme", "   ", "name:acme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompanyKey(tt.company, tt.url))
		})
	}
}

func TestGetCompanyMiss(t *testing.T) {
	s := testStore(t)
	rec, err := s.GetCompany(context.Background(), "nobody.example")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestPutGetCompany(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	in := acmeRecord()
	require.NoError(t, s.PutCompany(ctx, in))
	assert.False(t, in.CreatedAt.IsZero(), "CreatedAt should be stamped")

	got, err := s.GetCompany(ctx, "acme.com")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.EmailPatterns, got.EmailPatterns)
	assert.Equal(t, in.Phones, got.Phones)
	assert.Equal(t, in.Links, got.Links)
	assert.Equal(t, "Springfield", got.Location)
	assert.Equal(t, "51-200", got.CompanySize)
	assert.Equal(t, "1999", got.Founded)
	assert.WithinDuration(t, in.CreatedAt, got.CreatedAt, time.Millisecond)
	assert.Equal(t, "https://acme.com", got.OfficialLink())
}

func TestPutCompanyNilSlices(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutCompany(ctx, &types.CompanyRecord{Key: "name:bare", Name: "Bare"}))
	got, err := s.GetCompany(ctx, "name:bare")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.EmailPatterns)
	assert.Empty(t, got.Links)
	assert.Equal(t, "", got.Location)
}

func TestPutCompanyLastWriteWins(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := acmeRecord()
	require.NoError(t, s.PutCompany(ctx, first))

	second := acmeRecord()
	second.EmailPatterns = []types.EmailPattern{{Pattern: "flast@acme.com", Percentage: "60%"}}
	require.NoError(t, s.PutCompany(ctx, second))

	got, err := s.GetCompany(ctx, "acme.com")
	require.NoError(t, err)
	assert.Equal(t, "flast@acme.com", got.EmailPatterns[0].Pattern)

	all, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPutCompanyEmptyKey(t *testing.T) {
	s := testStore(t)
	assert.Error(t, s.PutCompany(context.Background(), &types.CompanyRecord{Name: "x"}))
}

func TestListCompaniesOrdered(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for _, k := range []string{"zeta.io", "acme.com", "name:mid"} {
		require.NoError(t, s.PutCompany(ctx, &types.CompanyRecord{Key: k, Name: k}))
	}
	all, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "acme.com", all[0].Key)
	assert.Equal(t, "name:mid", all[1].Key)
	assert.Equal(t, "zeta.io", all[2].Key)
}

func TestAddLeadAndFindKnownContacts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.AddLead(ctx, &types.Lead{
		Owner: "user-1", IdentityID: "jane-doe-123",
		Name: "Jane Doe", Company: "Acme",
		Emails: []string{"jane@acme.com"},
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = s.AddLead(ctx, &types.Lead{
		Owner: "admin", IdentityID: "jane-doe-123",
		Emails: []string{"jane.doe@acme.com"},
		Phones: []types.Phone{{Phone: "+14155550100", Type: "Work"}},
	})
	require.NoError(t, err)

	// No emails or phones: not a known contact.
	_, err = s.AddLead(ctx, &types.Lead{Owner: "user-2", IdentityID: "jane-doe-123"})
	require.NoError(t, err)

	_, err = s.AddLead(ctx, &types.Lead{Owner: "user-1", IdentityID: "someone-else", Emails: []string{"x@y.com"}})
	require.NoError(t, err)

	got, err := s.FindKnownContacts(ctx, "jane-doe-123")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "user-1", got[0].Owner)
	assert.Equal(t, []string{"jane@acme.com"}, got[0].Emails)
	assert.Equal(t, "admin", got[1].Owner)
	assert.Equal(t, 2, got[1].Size())
}

func TestFindKnownContactsNone(t *testing.T) {
	s := testStore(t)
	got, err := s.FindKnownContacts(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAddLeadRequiresOwnerAndIdentity(t *testing.T) {
	s := testStore(t)
	_, err := s.AddLead(context.Background(), &types.Lead{Owner: "u"})
	assert.Error(t, err)
	_, err = s.AddLead(context.Background(), &types.Lead{IdentityID: "i"})
	assert.Error(t, err)
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewStore(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	require.NoError(t, s.PutCompany(ctx, acmeRecord()))
	require.NoError(t, s.Close())

	s2, err := NewStore(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetCompany(ctx, "acme.com")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

// --- export ---

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutCompany(ctx, acmeRecord()))

	var buf bytes.Buffer
	require.NoError(t, s.Export(ctx, &buf, FormatYAML))

	var got []types.CompanyRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "acme.com", got[0].Key)
	assert.Contains(t, buf.String(), "first.last@acme.com")
}

func TestExportJSON(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutCompany(ctx, acmeRecord()))

	var buf bytes.Buffer
	require.NoError(t, s.Export(ctx, &buf, FormatJSON))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0]["name"])
}

func TestExportEmptyJSON(t *testing.T) {
	s := testStore(t)
	var buf bytes.Buffer
	require.NoError(t, s.Export(context.Background(), &buf, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestExportUnknownFormat(t *testing.T) {
	s := testStore(t)
	var buf bytes.Buffer
	assert.Error(t, s.Export(context.Background(), &buf, "csv"))
}
