package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/models"
	"github.com/driftlab/genograph/internal/store"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List genes or strains",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			showStrains, _ := cmd.Flags().GetBool("strains")

			geneStore, err := openStore(root)
			if err != nil {
				return err
			}
			defer geneStore.Close()

			ctx := context.Background()

			if showStrains {
				return listStrains(ctx, cmd, geneStore, jsonOut)
			}

			genes, err := geneStore.ListGenes(ctx)
			if err != nil {
				return fmt.Errorf("failed to list genes: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"genes": genes,
					"count": len(genes),
				})
			}

			if len(genes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No genes loaded yet.")
				fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'genograph load <catalog.yaml>' to import a gene catalog.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Gene catalog (%d):\n\n", len(genes))
			for i, g := range genes {
				level := models.ClassifyResistance(g.Resistance)
				fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s] %s (resistance %.2f)\n", i+1, level, g.ID, g.Resistance)
				if g.Name != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "   Name: %s\n", g.Name)
				}
				if len(g.Requires) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "   Requires: %s\n", strings.Join(g.Requires, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("strains", false, "List strains instead of genes")

	return cmd
}

func listStrains(ctx context.Context, cmd *cobra.Command, gs store.GeneStore, jsonOut bool) error {
	strains, err := gs.ListStrains(ctx)
	if err != nil {
		return fmt.Errorf("failed to list strains: %w", err)
	}

	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
			"strains": strains,
			"count":   len(strains),
		})
	}

	if len(strains) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No strains tracked yet.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Tracked strains (%d):\n\n", len(strains))
	for i, s := range strains {
		level := models.ClassifyResistance(s.Resistance)
		fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s] %s (resistance %.2f, %d genes)\n",
			i+1, level, s.ID, s.Resistance, len(s.Acquisitions))
		if len(s.Acquisitions) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "   Genome: %s\n", strings.Join(s.Acquisitions, " -> "))
		}
	}
	return nil
}
