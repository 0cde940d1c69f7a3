package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/models"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <strain-id>",
		Short: "Show a strain's genome and threat classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			strainID := args[0]

			geneStore, err := openStore(root)
			if err != nil {
				return err
			}
			defer geneStore.Close()

			strain, err := geneStore.GetStrain(context.Background(), strainID)
			if err != nil {
				return fmt.Errorf("failed to get strain: %w", err)
			}
			if strain == nil {
				return fmt.Errorf("strain %s not found", strainID)
			}

			level := models.ClassifyResistance(strain.Resistance)
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"strain":     strain.ID,
					"resistance": strain.Resistance,
					"level":      level,
					"genome":     strain.Acquisitions,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Strain %s\n", strain.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Resistance: %.2f\n", strain.Resistance)
			fmt.Fprintf(cmd.OutOrStdout(), "  Level:      %s\n", level)
			if len(strain.Acquisitions) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  Genome:     (empty)\n")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "  Genome:     %s\n", strings.Join(strain.Acquisitions, " -> "))
			}
			return nil
		},
	}
}
