package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/catalog"
	"github.com/driftlab/genograph/internal/models"
	"github.com/driftlab/genograph/internal/resolver"
	"github.com/driftlab/genograph/internal/store"
)

func newAcquireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "acquire <strain-id> <gene-id>",
		Short: "Acquire a gene for a strain",
		Long: `Acquire a gene for a strain after verifying its prerequisites.

The strain is created on first acquisition. Acquisition fails when the
gene's prerequisites are not yet in the strain's genome.

Examples:
  genograph acquire STAPH_V1 g01
  genograph acquire STAPH_V1 mecA --json`,
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

			strain, err := geneStore.GetStrain(ctx, strainID)
			if err != nil {
				return fmt.Errorf("failed to get strain: %w", err)
			}
			if strain == nil {
				strain = models.NewStrain(strainID)
				if err := geneStore.PutStrain(ctx, strain); err != nil {
					return fmt.Errorf("failed to create strain: %w", err)
				}
			}

			ok, err := resolver.CanActivate(cat, strain.Genome, geneID)
			if err != nil {
				if errors.Is(err, catalog.ErrUnknownGene) {
					return fmt.Errorf("gene %s is not in the catalog", geneID)
				}
				return err
			}
			if !ok {
				ex, exErr := resolver.Explain(cat, strain.Genome, geneID)
				reason := "prerequisites missing"
				if exErr == nil {
					reason = ex.Reason
				}
				return fmt.Errorf("acquisition blocked: %s", reason)
			}

			gene, _ := cat.Get(geneID)
			if err := geneStore.AcquireGene(ctx, strain.ID, gene.ID, gene.Resistance); err != nil {
				return fmt.Errorf("failed to record acquisition: %w", err)
			}

			level := models.ClassifyResistance(gene.Resistance)
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"strain":     strain.ID,
					"gene":       gene.ID,
					"resistance": gene.Resistance,
					"level":      level,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s acquired %s (resistance %.2f, %s)\n",
				strain.ID, gene.ID, gene.Resistance, level)
			return nil
		},
	}
}
