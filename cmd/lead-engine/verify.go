// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lead-engine/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [email...]",
	Short: "Check email addresses over DNS and SMTP",
	Long: `Verify runs each address through syntax, domain, MX and mailbox checks
and stops at the first failing step. Step numbers are 1 (syntax), 3 (domain
has MX records), 4 (MX hosts usable) and 6 (mailbox accepted).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Bool("json", false, "output as JSON instead of a table")
	rootCmd.AddCommand(verifyCmd)
}

type verifyOutput struct {
	Email string `json:"email" yaml:"email"`
	types.VerificationResult `yaml:",inline"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	v, err := newVerifier()
	if err != nil {
		return err
	}

	results := make([]verifyOutput, 0, len(args))
	for _, email := range args {
		results = append(results, verifyOutput{Email: email, VerificationResult: v.Verify(cmd.Context(), email)})
	}

	if asJSON {
		return printOut(cmd.OutOrStdout(), results, true)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-40s  %-7s  %-14s  %s\n", "Email", "Result", "Step", "Reason")
	for _, r := range results {
		verdict := "fail"
		if r.Success {
			verdict = "ok"
		}
		fmt.Fprintf(w, "%-40s  %-7s  %d %-12s  %s\n", r.Email, verdict, r.Step, r.Step, r.Reason)
	}
	return nil
}
