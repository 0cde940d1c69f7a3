package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Visualize the gene dependency graph",
		Long:  `Output the gene dependency graph in DOT (Graphviz) or JSON format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			geneStore, err := openStore(root)
			if err != nil {
				return err
			}
			defer geneStore.Close()

			ctx := context.Background()
			var content string

			switch visualization.Format(format) {
			case visualization.FormatDOT:
				content, err = visualization.RenderDOT(ctx, geneStore)
				if err != nil {
					return fmt.Errorf("render DOT: %w", err)
				}

			case visualization.FormatJSON:
				result, err := visualization.RenderJSON(ctx, geneStore)
				if err != nil {
					return fmt.Errorf("render JSON: %w", err)
				}
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
				content = string(data) + "\n"

			default:
				return fmt.Errorf("unsupported format %q (use 'dot' or 'json')", format)
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(content), 0644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote graph to %s\n", output)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().String("format", "dot", "Output format: dot or json")
	cmd.Flags().String("output", "", "Write output to a file instead of stdout")

	return cmd
}
