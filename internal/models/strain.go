package models

import (
	"time"

	"github.com/google/uuid"
)

// Strain represents one evolving entity walking the gene dependency graph.
// Its genome grows monotonically as genes are acquired; a strain is owned by a
// single evolution loop and must not be mutated concurrently with its reads.
type Strain struct {
	ID string `json:"id" yaml:"id"`

	// Genome is the set of acquired gene IDs.
	Genome Genome `json:"genome" yaml:"genome"`

	// Resistance is the resistance score of the most recently acquired gene.
	Resistance float64 `json:"resistance" yaml:"resistance"`

	// Acquisitions records gene IDs in acquisition order.
	Acquisitions []string `json:"acquisitions,omitempty" yaml:"acquisitions,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewStrain creates a strain with an empty genome. If id is empty, a UUID is
// generated.
func NewStrain(id string) *Strain {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	return &Strain{
		ID:        id,
		Genome:    NewGenome(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Acquire adds a gene to the strain's genome and updates its resistance score.
// Callers must only invoke this after the resolver has confirmed eligibility.
func (s *Strain) Acquire(geneID string, resistance float64) {
	if !s.Genome.Has(geneID) {
		s.Acquisitions = append(s.Acquisitions, geneID)
	}
	s.Genome.Add(geneID)
	s.Resistance = resistance
	s.UpdatedAt = time.Now().UTC()
}

// LastAcquired returns the most recently acquired gene ID, or "" for a strain
// with an empty genome.
func (s *Strain) LastAcquired() string {
	if len(s.Acquisitions) == 0 {
		return ""
	}
	return s.Acquisitions[len(s.Acquisitions)-1]
}
