// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/lead-engine/internal/links"
)

var linksCmd = &cobra.Command{
	Use:   "links [url...]",
	Short: "Classify URLs into a company's official and social links",
	Long: `Links keeps the URLs that mention the company or a social network and
classifies them as official, facebook, twitter, instagram or youtube,
keeping the shortest URL per category. --linkedin is appended as the
linkedin entry.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		company, _ := cmd.Flags().GetString("company")
		linkedin, _ := cmd.Flags().GetString("linkedin")
		asJSON, _ := cmd.Flags().GetBool("json")
		return printOut(cmd.OutOrStdout(), links.ClassifyAll(args, company, linkedin), asJSON)
	},
}

func init() {
	linksCmd.Flags().String("company", "", "company name (required)")
	linksCmd.Flags().String("linkedin", "", "canonical LinkedIn company URL")
	linksCmd.Flags().Bool("json", false, "output as JSON instead of YAML")
	_ = linksCmd.MarkFlagRequired("company")

	rootCmd.AddCommand(linksCmd)
}
