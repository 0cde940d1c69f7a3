package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/models"
	"github.com/driftlab/genograph/internal/resolver"
	"github.com/driftlab/genograph/internal/store"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <strain-id> <gene-id>",
		Short: "Check whether a strain can acquire a gene",
		Long: `Check a target gene's prerequisites against a strain's genome.

An unknown strain resolves against an empty genome, so this works before
the strain exists.

Examples:
  genograph resolve STAPH_V1 mecA
  genograph resolve STAPH_V1 mecA --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			strainID, geneID := args[0], args[1]

			geneStore, err := openStore(root)
			if err != nil {
				return err
			}
			defer geneStore.Close()

			ctx := context.Background()
			cat, err := store.LoadCatalog(ctx, geneStore)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			genome := models.NewGenome()
			strain, err := geneStore.GetStrain(ctx, strainID)
			if err != nil {
				return fmt.Errorf("failed to get strain: %w", err)
			}
			if strain != nil {
				genome = strain.Genome
			}

			ex, err := resolver.Explain(cat, genome, geneID)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(ex)
			}

			if ex.Eligible {
				fmt.Fprintf(cmd.OutOrStdout(), "%s can acquire %s\n", strainID, geneID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s cannot acquire %s: %s\n", strainID, geneID, ex.Reason)
			}
			for _, check := range ex.Checks {
				marker := "missing"
				if check.Acquired {
					marker = "acquired"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", check.GeneID, marker)
			}
			return nil
		},
	}
}
