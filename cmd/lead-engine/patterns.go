// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lead-engine/internal/extract"
	"github.com/pdiddy/lead-engine/internal/pattern"
	"github.com/pdiddy/lead-engine/pkg/types"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Extract email patterns from text and generate candidates",
}

// --- extract subcommand ---

var patternsExtractCmd = &cobra.Command{
	Use:   "extract [snippet...]",
	Short: "Extract {pattern, percentage} pairs from search snippets",
	Long: `Extract reads search snippets (arguments, or one per line from --file
or stdin) and prints the email format statistics they contain, in order,
keeping the first occurrence of each pattern.`,
	RunE: runPatternsExtract,
}

func runPatternsExtract(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	asJSON, _ := cmd.Flags().GetBool("json")

	snippets := args
	if len(snippets) == 0 {
		var r io.Reader = cmd.InOrStdin()
		if file != "" {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		lines, err := readLines(r)
		if err != nil {
			return err
		}
		snippets = lines
	}

	patterns := extract.Patterns(snippets)
	if patterns == nil {
		patterns = []types.EmailPattern{}
	}
	return printOut(cmd.OutOrStdout(), patterns, asJSON)
}

// --- generate subcommand ---

var patternsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate graded candidate emails for a person",
	Long: `Generate substitutes the person's name into each pattern and grades the
result by the pattern's percentage. Patterns come from --pattern flags
("first.last@acme.com:82%") or a YAML file (--file) holding a list of
{pattern, percentage}. With --domain and no patterns, the built-in naming
conventions are used.`,
	Example: `  lead-engine patterns generate --person "Jane Doe" --pattern "first.last@acme.com:90%"
  lead-engine patterns generate --person "Jane Doe" --domain acme.com`,
	RunE: runPatternsGenerate,
}

func runPatternsGenerate(cmd *cobra.Command, args []string) error {
	person, _ := cmd.Flags().GetString("person")
	file, _ := cmd.Flags().GetString("file")
	flagPatterns, _ := cmd.Flags().GetStringArray("pattern")
	domain, _ := cmd.Flags().GetString("domain")
	thresholds, _ := cmd.Flags().GetString("thresholds")
	asJSON, _ := cmd.Flags().GetBool("json")

	th, err := parseThresholds(thresholds)
	if err != nil {
		return err
	}

	var patterns []types.EmailPattern
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &patterns); err != nil {
			return fmt.Errorf("parsing %s: %w", file, err)
		}
	}
	for _, p := range flagPatterns {
		patterns = append(patterns, parsePatternFlag(p))
	}
	if len(patterns) == 0 {
		if domain == "" {
			return fmt.Errorf("provide --pattern, --file or --domain")
		}
		patterns = pattern.Conventions(domain)
	}

	return printOut(cmd.OutOrStdout(), pattern.Generate(patterns, person, th), asJSON)
}

// parsePatternFlag splits "first.last@acme.com:82%" at the last colon.
func parsePatternFlag(s string) types.EmailPattern {
	if i := strings.LastIndex(s, ":"); i > 0 {
		return types.EmailPattern{Pattern: s[:i], Percentage: s[i+1:]}
	}
	return types.EmailPattern{Pattern: s}
}

func parseThresholds(s string) (pattern.Thresholds, error) {
	switch strings.ToLower(s) {
	case "", "extraction":
		return pattern.ExtractionThresholds, nil
	case "cached":
		return pattern.CachedThresholds, nil
	default:
		return pattern.Thresholds{}, fmt.Errorf("unknown thresholds %q: use extraction or cached", s)
	}
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}

func init() {
	patternsCmd.PersistentFlags().Bool("json", false, "output as JSON instead of YAML")

	patternsExtractCmd.Flags().String("file", "", "read snippets from a file, one per line")

	patternsGenerateCmd.Flags().String("person", "", "person's full name (required)")
	patternsGenerateCmd.Flags().String("file", "", "YAML file with a list of {pattern, percentage}")
	patternsGenerateCmd.Flags().StringArray("pattern", nil, `pattern with optional percentage, e.g. "first.last@acme.com:82%"`)
	patternsGenerateCmd.Flags().String("domain", "", "use the built-in naming conventions on this domain")
	patternsGenerateCmd.Flags().String("thresholds", "extraction", "validity thresholds: extraction (>75) or cached (>85)")
	_ = patternsGenerateCmd.MarkFlagRequired("person")

	patternsCmd.AddCommand(patternsExtractCmd)
	patternsCmd.AddCommand(patternsGenerateCmd)
	rootCmd.AddCommand(patternsCmd)
}
