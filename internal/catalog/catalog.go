// Package catalog maintains the repository of known genes and validates the
// dependency graph over them.
package catalog

import (
	"errors"
	"fmt"

	"github.com/driftlab/genograph/internal/models"
)

// Sentinel errors for catalog operations. Callers branch on these with
// errors.Is.
var (
	ErrUnknownGene       = errors.New("unknown gene")
	ErrDuplicateGene     = errors.New("duplicate gene")
	ErrCyclicDependency  = errors.New("cyclic dependency")
	ErrDanglingReference = errors.New("dangling reference")
)

// Catalog is the repository of gene definitions. Genes are added once during
// construction; after Build succeeds the catalog is read-only and safe for
// unsynchronized concurrent reads.
type Catalog struct {
	genes map[string]models.Gene
	order []string // insertion order, for deterministic listing
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{genes: make(map[string]models.Gene)}
}

// Build constructs a catalog from gene definitions and validates the
// dependency graph. It fails on the first malformed gene, on duplicate IDs,
// and on any graph-level issue (dangling references or cycles).
func Build(genes []models.Gene) (*Catalog, error) {
	c := New()
	for _, g := range genes {
		if err := c.Add(g); err != nil {
			return nil, err
		}
	}
	if errs := c.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("catalog validation failed: %w", errs[0].Unwrap())
	}
	return c, nil
}

// Add registers a gene definition. The gene is validated in isolation;
// graph-level checks happen in Validate.
func (c *Catalog) Add(g models.Gene) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if _, exists := c.genes[g.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGene, g.ID)
	}
	c.genes[g.ID] = g
	c.order = append(c.order, g.ID)
	return nil
}

// Get returns the gene with the given ID.
func (c *Catalog) Get(id string) (models.Gene, bool) {
	g, ok := c.genes[id]
	return g, ok
}

// Len returns the number of genes in the catalog.
func (c *Catalog) Len() int {
	return len(c.genes)
}

// IDs returns all gene IDs in insertion order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Genes returns all gene definitions in insertion order.
func (c *Catalog) Genes() []models.Gene {
	out := make([]models.Gene, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.genes[id])
	}
	return out
}
