package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestBackupRestoreCmd(t *testing.T) {
	srcDir := initProject(t, testCatalogYAML)

	// Acquire something so strain state is part of the snapshot.
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newAcquireCmd())
	if _, err := run(t, rootCmd, "acquire", "STAPH_V1", "g01", "--root", srcDir); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	backupPath := filepath.Join(t.TempDir(), "snap.bak")
	rootCmd = newTestRootCmd()
	rootCmd.AddCommand(newBackupCmd())
	out, err := run(t, rootCmd, "backup", "--output", backupPath, "--root", srcDir)
	if err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	if !strings.Contains(out, "3 genes and 1 strains") {
		t.Errorf("unexpected backup summary: %s", out)
	}

	// Restore into a fresh project.
	dstDir := initProject(t, "")
	rootCmd = newTestRootCmd()
	rootCmd.AddCommand(newRestoreCmd())
	out, err = run(t, rootCmd, "restore", backupPath, "--root", dstDir)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out, "Restored 3 genes") {
		t.Errorf("unexpected restore summary: %s", out)
	}

	rootCmd = newTestRootCmd()
	rootCmd.AddCommand(newStatusCmd())
	out, err = run(t, rootCmd, "status", "STAPH_V1", "--root", dstDir)
	if err != nil {
		t.Fatalf("status after restore failed: %v", err)
	}
	if !strings.Contains(out, "g01") {
		t.Errorf("restored strain missing genome, got:\n%s", out)
	}
}
