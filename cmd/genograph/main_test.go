package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "genograph",
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")
	return rootCmd
}

// run executes a command tree with the given args and returns stdout.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// initProject initializes a genograph project in a temp directory and loads
// the given catalog YAML, returning the project root.
func initProject(t *testing.T, catalogYAML string) string {
	t.Helper()
	tmpDir := t.TempDir()

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newInitCmd())
	if _, err := run(t, rootCmd, "init", "--root", tmpDir); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if catalogYAML != "" {
		catalogPath := filepath.Join(tmpDir, "catalog.yaml")
		if err := os.WriteFile(catalogPath, []byte(catalogYAML), 0600); err != nil {
			t.Fatalf("failed to write catalog: %v", err)
		}
		rootCmd = newTestRootCmd()
		rootCmd.AddCommand(newLoadCmd())
		if _, err := run(t, rootCmd, "load", catalogPath, "--root", tmpDir); err != nil {
			t.Fatalf("load failed: %v", err)
		}
	}
	return tmpDir
}

const testCatalogYAML = `version: "1.0"
genes:
  - id: g01
    name: efflux pump
    resistance: 0.2
  - id: g02
    name: porin loss
    resistance: 0.5
    requires: [g01]
  - id: mecA
    name: PBP2a
    resistance: 0.9
    requires: [g01, g02]
`

func TestVersionCmd(t *testing.T) {
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newVersionCmd())

	out, err := run(t, rootCmd, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("expected version %s in output, got %q", version, out)
	}
}

func TestVersionCmdJSON(t *testing.T) {
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newVersionCmd())

	out, err := run(t, rootCmd, "version", "--json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	var result map[string]string
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if result["version"] != version {
		t.Errorf("expected version %s, got %s", version, result["version"])
	}
}

func TestInitCmd(t *testing.T) {
	tmpDir := t.TempDir()

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newInitCmd())
	if _, err := run(t, rootCmd, "init", "--root", tmpDir); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, ".genograph", "manifest.yaml")); err != nil {
		t.Errorf("expected manifest.yaml to exist: %v", err)
	}
}

func TestOpenStoreRequiresInit(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := openStore(tmpDir); err == nil {
		t.Fatal("expected error for uninitialized root")
	}
}
