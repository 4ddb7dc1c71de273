// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/lead-engine/pkg/types"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find a person's work email, plus company phones and links",
	Long: `Discover looks up contacts already known for --identity, then the
company cache, then live web search. Candidate emails are generated from
the company's email patterns and verified one at a time over DNS and SMTP;
when none verifies, common naming conventions are tried on the company's
official domain. A fresh search result is cached when it found at least one
email pattern.`,
	Example: `  lead-engine discover --company "Acme Corp" --person "Jane Doe"
  lead-engine discover --company Acme --person "Jane Doe" \
      --company-url https://www.linkedin.com/company/acme --json`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().String("company", "", "company name (required)")
	discoverCmd.Flags().String("person", "", "person's full name (required)")
	discoverCmd.Flags().String("company-url", "", "canonical company URL, usually its LinkedIn page")
	discoverCmd.Flags().String("identity", "", "external identity key, e.g. a LinkedIn profile id")
	discoverCmd.Flags().String("exclude", "", "email the caller already has; omitted from results")
	discoverCmd.Flags().Bool("json", false, "output as JSON instead of YAML")
	_ = discoverCmd.MarkFlagRequired("company")
	_ = discoverCmd.MarkFlagRequired("person")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	req := types.DiscoveryRequest{}
	req.CompanyName, _ = cmd.Flags().GetString("company")
	req.PersonName, _ = cmd.Flags().GetString("person")
	req.CompanyURL, _ = cmd.Flags().GetString("company-url")
	req.IdentityKey, _ = cmd.Flags().GetString("identity")
	req.ExcludeEmail, _ = cmd.Flags().GetString("exclude")
	asJSON, _ := cmd.Flags().GetBool("json")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.orchestrator.Discover(cmd.Context(), req)
	if err != nil {
		return err
	}
	return printOut(cmd.OutOrStdout(), res, asJSON)
}
