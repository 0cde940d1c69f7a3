package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/catalog"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the gene catalog for dependency issues",
		Long: `Validate the stored gene catalog for dependency issues.

This command checks for:
  - Dangling references (genes requiring non-existent IDs)
  - Self-references (genes that require themselves)
  - Cycles in the requires graph

Examples:
  genograph validate
  genograph validate --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			geneStore, err := openStore(root)
			if err != nil {
				return err
			}
			defer geneStore.Close()

			genes, err := geneStore.ListGenes(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list genes: %w", err)
			}

			cat := catalog.New()
			var issues []string
			for _, g := range genes {
				if addErr := cat.Add(g); addErr != nil {
					issues = append(issues, addErr.Error())
				}
			}
			for _, ve := range cat.Validate() {
				issues = append(issues, ve.String())
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"valid":  len(issues) == 0,
					"genes":  len(genes),
					"issues": issues,
				})
			}

			if len(issues) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Gene catalog is valid (%d genes, no issues found)\n", len(genes))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Found %d issue(s) in the gene catalog:\n\n", len(issues))
			for _, issue := range issues {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", issue)
			}
			return nil
		},
	}
}
