package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/store"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "genograph",
		Short: "Genograph - gene acquisition modeling for resistance research",
		Long: `genograph models how strains acquire resistance genes over a dependency
graph. Genes gate each other through prerequisites; strains walk the graph,
acquiring what their genome allows, while a governance observer classifies
threat levels and flags containment breaches.

It also carries a phenotype codec that builds optimal prefix codes from
trait frequencies for compact trait-sequence encoding.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newLoadCmd(),
		newListCmd(),
		newValidateCmd(),
		newResolveCmd(),
		newAcquireCmd(),
		newStatusCmd(),
		newSimulateCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newCodesCmd(),
		newGraphCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "genograph version %s\n", version)
			}
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize genograph tracking in current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			dir := filepath.Join(root, store.DirName)

			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create %s directory: %w", store.DirName, err)
			}

			manifestPath := filepath.Join(dir, "manifest.yaml")
			if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
				manifest := `# Genograph Manifest
version: "1.0"
created: %s

# Gene catalogs and strain state live in this directory
# Run 'genograph load <catalog.yaml>' to import a gene catalog
# Run 'genograph list' to see loaded genes
`
				content := fmt.Sprintf(manifest, time.Now().Format(time.RFC3339))
				if err := os.WriteFile(manifestPath, []byte(content), 0644); err != nil {
					return fmt.Errorf("failed to create manifest.yaml: %w", err)
				}
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"status": "initialized",
					"path":   dir,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s/ in %s\n", store.DirName, root)
			}
			return nil
		},
	}
}

// openStore opens the SQLite store for an initialized project root.
func openStore(root string) (*store.SQLiteStore, error) {
	dir := filepath.Join(root, store.DirName)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not initialized. Run 'genograph init' first", store.DirName)
	}
	return store.NewSQLiteStore(root)
}
