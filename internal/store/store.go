// Package store defines the GeneStore interface for persisting gene catalogs
// and strain state, with in-memory and SQLite implementations.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/driftlab/genograph/internal/catalog"
	"github.com/driftlab/genograph/internal/models"
)

// ErrStrainNotFound is returned when an operation references an unknown strain.
var ErrStrainNotFound = errors.New("strain not found")

// GeneStore persists the gene catalog and strain evolution state.
//
// Gene rows are write-once (a catalog is loaded, then read); strain state is
// single-writer per strain. Implementations must be safe for concurrent
// readers.
type GeneStore interface {
	// Gene operations
	PutGene(ctx context.Context, gene models.Gene) error
	GetGene(ctx context.Context, id string) (*models.Gene, error) // nil, nil when absent
	ListGenes(ctx context.Context) ([]models.Gene, error)         // insertion order

	// Strain operations
	PutStrain(ctx context.Context, strain *models.Strain) error
	GetStrain(ctx context.Context, id string) (*models.Strain, error) // nil, nil when absent
	ListStrains(ctx context.Context) ([]models.Strain, error)

	// AcquireGene appends a gene to a strain's genome and updates its
	// resistance score. Acquiring an already-held gene only refreshes the
	// score.
	AcquireGene(ctx context.Context, strainID, geneID string, resistance float64) error

	// Persistence
	Sync(ctx context.Context) error
	Close() error
}

// LoadCatalog builds a validated catalog from the genes in the store.
func LoadCatalog(ctx context.Context, s GeneStore) (*catalog.Catalog, error) {
	genes, err := s.ListGenes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing genes: %w", err)
	}
	return catalog.Build(genes)
}

// ImportCatalog writes every gene of a validated catalog into the store.
func ImportCatalog(ctx context.Context, s GeneStore, c *catalog.Catalog) error {
	for _, g := range c.Genes() {
		if err := s.PutGene(ctx, g); err != nil {
			return fmt.Errorf("storing gene %s: %w", g.ID, err)
		}
	}
	return nil
}
