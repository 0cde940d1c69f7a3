package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/catalog"
	"github.com/driftlab/genograph/internal/store"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <catalog.yaml>",
		Short: "Load a gene catalog into the store",
		Long: `Load a gene catalog from a YAML file into the project store.

The catalog is validated before import: malformed genes, duplicate IDs,
dangling prerequisite references, and dependency cycles all reject the file.

Examples:
  genograph load catalogs/mrsa.yaml
  genograph load catalogs/mrsa.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cat, err := catalog.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			geneStore, err := openStore(root)
			if err != nil {
				return err
			}
			defer geneStore.Close()

			ctx := context.Background()
			if err := store.ImportCatalog(ctx, geneStore, cat); err != nil {
				return fmt.Errorf("failed to import catalog: %w", err)
			}
			if err := geneStore.Sync(ctx); err != nil {
				return fmt.Errorf("failed to sync store: %w", err)
			}

			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status": "loaded",
					"genes":  cat.Len(),
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d genes from %s\n", cat.Len(), args[0])
			}
			return nil
		},
	}
}
