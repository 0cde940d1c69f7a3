package catalog

import (
	"fmt"
)

// ValidationError describes one dependency-graph issue found in a catalog.
type ValidationError struct {
	GeneID string `json:"gene_id"`
	RefID  string `json:"ref_id,omitempty"` // the problematic reference, if any
	Issue  string `json:"issue"`            // "dangling", "cycle", "self-reference"
}

// String returns a human-readable description of the validation error.
func (e ValidationError) String() string {
	switch e.Issue {
	case "cycle":
		return fmt.Sprintf("cycle: %s participates in a requires cycle via %s", e.GeneID, e.RefID)
	default:
		return fmt.Sprintf("%s: %s requires %s", e.Issue, e.GeneID, e.RefID)
	}
}

// Unwrap maps the issue to its sentinel error so Build can surface a typed
// failure.
func (e ValidationError) Unwrap() error {
	if e.Issue == "cycle" {
		return fmt.Errorf("%w: %s -> %s", ErrCyclicDependency, e.GeneID, e.RefID)
	}
	return fmt.Errorf("%w: %s -> %s", ErrDanglingReference, e.GeneID, e.RefID)
}

// Validate checks the dependency graph for consistency. It reports:
//   - dangling references (requires points at a gene not in the catalog)
//   - self-references (a gene requiring itself; also caught by Gene.Validate)
//   - cycles in the requires graph
//
// A catalog with any cycle is invalid and must not be used for resolution.
func (c *Catalog) Validate() []ValidationError {
	var errs []ValidationError

	for _, id := range c.order {
		g := c.genes[id]
		for _, ref := range g.Requires {
			if ref == id {
				errs = append(errs, ValidationError{GeneID: id, RefID: ref, Issue: "self-reference"})
				continue
			}
			if _, ok := c.genes[ref]; !ok {
				errs = append(errs, ValidationError{GeneID: id, RefID: ref, Issue: "dangling"})
			}
		}
	}

	errs = append(errs, c.findCycles()...)
	return errs
}

// visit states for cycle detection.
const (
	unvisited = iota
	inProgress
	done
)

// findCycles runs a depth-first search over the requires graph and reports
// one error per back edge found. Dangling references are skipped; they are
// reported separately.
func (c *Catalog) findCycles() []ValidationError {
	state := make(map[string]int, len(c.genes))
	var errs []ValidationError

	var walk func(id string)
	walk = func(id string) {
		state[id] = inProgress
		for _, ref := range c.genes[id].Requires {
			if _, ok := c.genes[ref]; !ok || ref == id {
				continue
			}
			switch state[ref] {
			case unvisited:
				walk(ref)
			case inProgress:
				errs = append(errs, ValidationError{GeneID: id, RefID: ref, Issue: "cycle"})
			}
		}
		state[id] = done
	}

	for _, id := range c.order {
		if state[id] == unvisited {
			walk(id)
		}
	}
	return errs
}
