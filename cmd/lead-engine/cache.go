// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lead-engine/internal/store"
	"github.com/pdiddy/lead-engine/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and export the company cache",
}

// --- show subcommand ---

var cacheShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Print one cached company record",
	Long: `Show prints the record stored under key. Without a key, the key is
derived from --url, or from --company when no URL is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCacheShow,
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	company, _ := cmd.Flags().GetString("company")
	url, _ := cmd.Flags().GetString("url")
	asJSON, _ := cmd.Flags().GetBool("json")

	var key string
	switch {
	case len(args) == 1:
		key = args[0]
	case company != "" || url != "":
		key = store.CompanyKey(company, url)
	default:
		return fmt.Errorf("provide a key, --url or --company")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.GetCompany(cmd.Context(), key)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no cached company under %q", key)
	}
	return printOut(cmd.OutOrStdout(), rec, asJSON)
}

// --- export subcommand ---

var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the company cache to YAML or JSON",
	Long: `Export writes every cached company record to stdout, or to --output
when given.`,
	RunE: runCacheExport,
}

func runCacheExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := st.Export(cmd.Context(), w, store.ExportFormat(format)); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", output)
	}
	return nil
}

func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.NewStore(types.StoreConfig{DataDir: cfg.Store.DataDir})
}

func init() {
	cacheShowCmd.Flags().String("company", "", "company name used to derive the key")
	cacheShowCmd.Flags().String("url", "", "company URL used to derive the key")
	cacheShowCmd.Flags().Bool("json", false, "output as JSON instead of YAML")

	cacheExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	cacheExportCmd.Flags().String("output", "", "write to this file instead of stdout")

	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheExportCmd)
	rootCmd.AddCommand(cacheCmd)
}
