package models

import (
	"fmt"
	"sort"
)

// Gene represents a single node in the genomic dependency graph.
// A gene could stand for a nucleotide sequence, a protein structure, or a
// trait; what matters here is its identity, its resistance contribution, and
// the genes that must already be present before it can activate.
type Gene struct {
	// Identity
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Resistance is the resistance factor conferred by this gene (0.0-1.0).
	Resistance float64 `json:"resistance" yaml:"resistance"`

	// Requires lists gene IDs that must be in a strain's genome before this
	// gene can activate. Order is preserved from the catalog definition.
	Requires []string `json:"requires,omitempty" yaml:"requires,omitempty"`
}

// Validate checks that the gene definition is well-formed on its own.
// Cross-gene checks (dangling references, cycles) belong to catalog validation.
func (g Gene) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("gene ID is required")
	}
	if g.Resistance < 0 || g.Resistance > 1 {
		return fmt.Errorf("gene %s: resistance must be in [0.0, 1.0], got %f", g.ID, g.Resistance)
	}
	for _, dep := range g.Requires {
		if dep == g.ID {
			return fmt.Errorf("gene %s: requires itself", g.ID)
		}
	}
	return nil
}

// Genome is the set of gene IDs a strain has acquired. It only ever grows;
// genes are never removed from a genome.
type Genome map[string]bool

// NewGenome creates an empty genome.
func NewGenome() Genome {
	return make(Genome)
}

// Has reports whether the genome contains the given gene ID.
func (g Genome) Has(id string) bool {
	return g[id]
}

// Add records the acquisition of a gene. Adding an already-present gene is a
// no-op.
func (g Genome) Add(id string) {
	g[id] = true
}

// IDs returns the gene IDs in the genome in sorted order.
func (g Genome) IDs() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy of the genome.
func (g Genome) Clone() Genome {
	out := make(Genome, len(g))
	for id := range g {
		out[id] = true
	}
	return out
}
