package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/phenocode"
)

// buildCodec loads a frequency file and derives the coding tree and table.
func buildCodec(path string) (*phenocode.Tree, phenocode.CodeTable, error) {
	table, err := phenocode.LoadFrequencyFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load frequency table: %w", err)
	}
	tree, err := phenocode.Build(table)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build coding tree: %w", err)
	}
	return tree, tree.Codes(), nil
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <trait>...",
		Short: "Encode a phenotype trait sequence",
		Long: `Encode a phenotype trait sequence using a prefix code built from
trait frequencies. Frequent traits get shorter codes.

Examples:
  genograph encode --freq traits.yaml mobile virulent mobile
  genograph encode --freq traits.yaml --json dormant dormant`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			freqPath, _ := cmd.Flags().GetString("freq")

			_, codes, err := buildCodec(freqPath)
			if err != nil {
				return err
			}

			bits, err := phenocode.Encode(args, codes)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"bits":   bits,
					"traits": len(args),
					"length": len(bits),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), bits)
			return nil
		},
	}

	cmd.Flags().String("freq", "", "Trait frequency YAML file")
	cmd.MarkFlagRequired("freq")

	return cmd
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <bits>",
		Short: "Decode a prefix-coded bit string",
		Long: `Decode a bit string back into the phenotype trait sequence it was
encoded from. The same frequency file used for encoding must be given;
any other table produces a different code and the bits will not decode.

Examples:
  genograph decode --freq traits.yaml 0110100
  genograph decode --freq traits.yaml --json 0110100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			freqPath, _ := cmd.Flags().GetString("freq")

			tree, _, err := buildCodec(freqPath)
			if err != nil {
				return err
			}

			traits, err := tree.Decode(args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"traits": traits,
					"count":  len(traits),
				})
			}
			for _, trait := range traits {
				fmt.Fprintln(cmd.OutOrStdout(), trait)
			}
			return nil
		},
	}

	cmd.Flags().String("freq", "", "Trait frequency YAML file")
	cmd.MarkFlagRequired("freq")

	return cmd
}

func newCodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Print the prefix code table for a frequency file",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			freqPath, _ := cmd.Flags().GetString("freq")

			table, err := phenocode.LoadFrequencyFile(freqPath)
			if err != nil {
				return fmt.Errorf("failed to load frequency table: %w", err)
			}
			tree, err := phenocode.Build(table)
			if err != nil {
				return fmt.Errorf("failed to build coding tree: %w", err)
			}
			codes := tree.Codes()

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(codes)
			}

			// Walk the table order rather than the map for stable output.
			for _, trait := range table.Traits() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", trait, codes[trait])
			}
			return nil
		},
	}

	cmd.Flags().String("freq", "", "Trait frequency YAML file")
	cmd.MarkFlagRequired("freq")

	return cmd
}
