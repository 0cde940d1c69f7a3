package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/driftlab/genograph/internal/models"
)

// MemoryStore implements GeneStore for testing and ephemeral runs.
type MemoryStore struct {
	mu        sync.RWMutex
	genes     map[string]models.Gene
	geneOrder []string
	strains   map[string]*models.Strain
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		genes:   make(map[string]models.Gene),
		strains: make(map[string]*models.Strain),
	}
}

// PutGene adds a gene to the store. Re-putting an existing ID overwrites the
// definition but keeps its original position.
func (s *MemoryStore) PutGene(ctx context.Context, gene models.Gene) error {
	if err := gene.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.genes[gene.ID]; !exists {
		s.geneOrder = append(s.geneOrder, gene.ID)
	}
	s.genes[gene.ID] = gene
	return nil
}

// GetGene retrieves a gene by ID. Returns nil if not found.
func (s *MemoryStore) GetGene(ctx context.Context, id string) (*models.Gene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gene, exists := s.genes[id]
	if !exists {
		return nil, nil
	}
	return &gene, nil
}

// ListGenes returns all genes in insertion order.
func (s *MemoryStore) ListGenes(ctx context.Context) ([]models.Gene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Gene, 0, len(s.geneOrder))
	for _, id := range s.geneOrder {
		out = append(out, s.genes[id])
	}
	return out, nil
}

// PutStrain stores a strain. The stored copy is independent of the caller's.
func (s *MemoryStore) PutStrain(ctx context.Context, strain *models.Strain) error {
	if strain == nil || strain.ID == "" {
		return fmt.Errorf("strain ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.strains[strain.ID] = cloneStrain(strain)
	return nil
}

// GetStrain retrieves a strain by ID. Returns nil if not found.
func (s *MemoryStore) GetStrain(ctx context.Context, id string) (*models.Strain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	strain, exists := s.strains[id]
	if !exists {
		return nil, nil
	}
	return cloneStrain(strain), nil
}

// ListStrains returns all strains in unspecified order.
func (s *MemoryStore) ListStrains(ctx context.Context) ([]models.Strain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Strain, 0, len(s.strains))
	for _, strain := range s.strains {
		out = append(out, *cloneStrain(strain))
	}
	return out, nil
}

// AcquireGene appends a gene to the strain's genome.
func (s *MemoryStore) AcquireGene(ctx context.Context, strainID, geneID string, resistance float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	strain, exists := s.strains[strainID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrStrainNotFound, strainID)
	}
	strain.Acquire(geneID, resistance)
	return nil
}

// Sync is a no-op for in-memory storage.
func (s *MemoryStore) Sync(ctx context.Context) error {
	return nil
}

// Close is a no-op for in-memory storage.
func (s *MemoryStore) Close() error {
	return nil
}

func cloneStrain(in *models.Strain) *models.Strain {
	out := *in
	out.Genome = in.Genome.Clone()
	out.Acquisitions = append([]string(nil), in.Acquisitions...)
	return &out
}
