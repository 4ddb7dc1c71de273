// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// ExportFormat selects the encoding used by Export.
type ExportFormat string

const (
	FormatYAML ExportFormat = "yaml"
	FormatJSON ExportFormat = "json"
)

// Export writes every cached company record to w in the given format.
func (s *Store) Export(ctx context.Context, w io.Writer, format ExportFormat) error {
	records, err := s.ListCompanies(ctx)
	if err != nil {
		return err
	}
	if records == nil {
		records = []types.CompanyRecord{}
	}

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return eris.Wrap(err, "store: encoding YAML export")
		}
		return eris.Wrap(enc.Close(), "store: flushing YAML export")
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(records), "store: encoding JSON export")
	default:
		return eris.Errorf("store: unknown export format %q", format)
	}
}
