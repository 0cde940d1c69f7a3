// Package resolver decides whether a strain's genome satisfies the
// prerequisites for activating a target gene. It is a pure query layer:
// nothing here mutates the catalog or the genome.
package resolver

import (
	"fmt"

	"github.com/driftlab/genograph/internal/catalog"
	"github.com/driftlab/genograph/internal/models"
)

// CanActivate reports whether the genome satisfies every prerequisite of the
// target gene. An unknown target yields false and a typed error wrapping
// catalog.ErrUnknownGene, so callers can distinguish "unknown gene" from
// "not yet eligible".
//
// The check only inspects the target's direct prerequisites. Callers wanting
// multi-hop resolution feed candidates in topological order, which the
// acyclicity guarantee from catalog validation makes well-defined.
func CanActivate(cat *catalog.Catalog, genome models.Genome, targetID string) (bool, error) {
	target, ok := cat.Get(targetID)
	if !ok {
		return false, fmt.Errorf("%w: %s", catalog.ErrUnknownGene, targetID)
	}

	for _, dep := range target.Requires {
		if !genome.Has(dep) {
			return false, nil
		}
	}
	return true, nil
}

// Explanation provides detailed info about why a gene is or isn't eligible.
type Explanation struct {
	GeneID   string              `json:"gene_id"`
	Eligible bool                `json:"eligible"`
	Reason   string              `json:"reason"`
	Checks   []PrerequisiteCheck `json:"checks,omitempty"`
}

// PrerequisiteCheck shows the result of evaluating one prerequisite.
type PrerequisiteCheck struct {
	GeneID   string `json:"gene_id"`
	Acquired bool   `json:"acquired"`
}

// Explain evaluates eligibility and reports the status of each prerequisite.
// For an unknown target it returns the same typed error as CanActivate.
func Explain(cat *catalog.Catalog, genome models.Genome, targetID string) (Explanation, error) {
	target, ok := cat.Get(targetID)
	if !ok {
		return Explanation{}, fmt.Errorf("%w: %s", catalog.ErrUnknownGene, targetID)
	}

	ex := Explanation{GeneID: targetID, Eligible: true}
	if len(target.Requires) == 0 {
		ex.Reason = "no prerequisites - always eligible"
		return ex, nil
	}

	missing := 0
	for _, dep := range target.Requires {
		acquired := genome.Has(dep)
		if !acquired {
			missing++
		}
		ex.Checks = append(ex.Checks, PrerequisiteCheck{GeneID: dep, Acquired: acquired})
	}

	if missing > 0 {
		ex.Eligible = false
		ex.Reason = fmt.Sprintf("missing %d of %d prerequisites", missing, len(target.Requires))
	} else {
		ex.Reason = "all prerequisites acquired"
	}
	return ex, nil
}
