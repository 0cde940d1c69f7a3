// Package backup provides snapshot and restore for the genograph store.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/driftlab/genograph/internal/models"
	"github.com/driftlab/genograph/internal/store"
)

// Snapshot is the payload of a backup file: the full gene catalog plus all
// tracked strains.
type Snapshot struct {
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	Genes     []models.Gene   `json:"genes"`
	Strains   []models.Strain `json:"strains"`
}

// Backup exports all genes and strains from the store to a backup file.
func Backup(ctx context.Context, gs store.GeneStore, outputPath string) (*Snapshot, error) {
	genes, err := gs.ListGenes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genes: %w", err)
	}
	strains, err := gs.ListStrains(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list strains: %w", err)
	}

	snap := &Snapshot{
		Version:   FormatVersion,
		CreatedAt: time.Now().UTC(),
		Genes:     genes,
		Strains:   strains,
	}

	if err := Write(outputPath, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// RestoreMode controls how restore handles existing data.
type RestoreMode string

const (
	// RestoreMerge skips genes and strains that already exist (default).
	RestoreMerge RestoreMode = "merge"
	// RestoreReplace overwrites existing genes and strains with the backup's
	// versions. The store is not cleared; entries absent from the backup are
	// left alone.
	RestoreReplace RestoreMode = "replace"
)

// RestoreResult contains statistics about the restore operation.
type RestoreResult struct {
	GenesRestored   int `json:"genes_restored"`
	GenesSkipped    int `json:"genes_skipped"`
	StrainsRestored int `json:"strains_restored"`
	StrainsSkipped  int `json:"strains_skipped"`
}

// Restore imports genes and strains from a backup file into the store.
func Restore(ctx context.Context, gs store.GeneStore, inputPath string, mode RestoreMode) (*RestoreResult, error) {
	if mode != RestoreMerge && mode != RestoreReplace {
		return nil, fmt.Errorf("invalid restore mode: %s (use merge or replace)", mode)
	}

	snap, err := Read(inputPath)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{}

	for _, g := range snap.Genes {
		if mode == RestoreMerge {
			existing, err := gs.GetGene(ctx, g.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check gene %s: %w", g.ID, err)
			}
			if existing != nil {
				result.GenesSkipped++
				continue
			}
		}
		if err := gs.PutGene(ctx, g); err != nil {
			return nil, fmt.Errorf("failed to restore gene %s: %w", g.ID, err)
		}
		result.GenesRestored++
	}

	for i := range snap.Strains {
		s := &snap.Strains[i]
		if mode == RestoreMerge {
			existing, err := gs.GetStrain(ctx, s.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check strain %s: %w", s.ID, err)
			}
			if existing != nil {
				result.StrainsSkipped++
				continue
			}
		}
		if err := gs.PutStrain(ctx, s); err != nil {
			return nil, fmt.Errorf("failed to restore strain %s: %w", s.ID, err)
		}
		result.StrainsRestored++
	}

	if err := gs.Sync(ctx); err != nil {
		return nil, fmt.Errorf("failed to sync after restore: %w", err)
	}

	return result, nil
}

// DefaultBackupDir returns the backup directory under a project root.
func DefaultBackupDir(root string) string {
	return filepath.Join(root, store.DirName, "backups")
}

// GenerateBackupPath creates a timestamped backup filename in the given directory.
func GenerateBackupPath(dir string) string {
	ts := time.Now().Format("20060102-150405")
	return filepath.Join(dir, fmt.Sprintf("genograph-backup-%s.bak", ts))
}

// RotateBackups keeps only the most recent keepN backups, deleting older ones.
// Backup filenames embed their timestamp, so name order is age order.
func RotateBackups(dir string, keepN int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "genograph-backup-") {
			backups = append(backups, e.Name())
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(backups)))

	if len(backups) > keepN {
		for _, name := range backups[keepN:] {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				return fmt.Errorf("failed to remove old backup %s: %w", name, err)
			}
		}
	}
	return nil
}
