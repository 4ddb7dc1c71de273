// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lead-engine/internal/discover"
	"github.com/pdiddy/lead-engine/pkg/types"
)

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Record known contacts",
}

var leadAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a lead's known emails and phones",
	Long: `Add stores a lead for --identity owned by --owner. Discovery for the
same identity uses the emails and phones of the admin owner's lead when
there is one, otherwise the lead with the most contacts.`,
	Example: `  lead-engine lead add --owner admin --identity jane-doe-4b1 \
      --name "Jane Doe" --company Acme --email jane@acme.com --phone "+1 415 555 0100"`,
	RunE: runLeadAdd,
}

func runLeadAdd(cmd *cobra.Command, args []string) error {
	lead := types.Lead{}
	lead.Owner, _ = cmd.Flags().GetString("owner")
	lead.IdentityID, _ = cmd.Flags().GetString("identity")
	lead.Name, _ = cmd.Flags().GetString("name")
	lead.Company, _ = cmd.Flags().GetString("company")
	lead.Emails, _ = cmd.Flags().GetStringSlice("email")
	phones, _ := cmd.Flags().GetStringSlice("phone")
	lead.Phones = discover.ParsePhones(phones)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.AddLead(cmd.Context(), &lead)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added lead %d (%d emails, %d phones)\n", id, len(lead.Emails), len(lead.Phones))
	return nil
}

func init() {
	leadAddCmd.Flags().String("owner", "", "owner id (required)")
	leadAddCmd.Flags().String("identity", "", "external identity key, e.g. a LinkedIn profile id (required)")
	leadAddCmd.Flags().String("name", "", "person's full name")
	leadAddCmd.Flags().String("company", "", "company name")
	leadAddCmd.Flags().StringSlice("email", nil, "known email (repeatable)")
	leadAddCmd.Flags().StringSlice("phone", nil, "known phone number (repeatable)")
	_ = leadAddCmd.MarkFlagRequired("owner")
	_ = leadAddCmd.MarkFlagRequired("identity")

	leadCmd.AddCommand(leadAddCmd)
	rootCmd.AddCommand(leadCmd)
}
