// Package phenocode builds minimum-redundancy prefix codes over phenotype
// trait frequencies and provides lossless encode/decode of trait sequences.
package phenocode

import (
	"errors"
	"fmt"
)

// Sentinel errors for codec operations.
var (
	ErrEmptyAlphabet  = errors.New("empty alphabet")
	ErrDuplicateTrait = errors.New("duplicate trait")
	ErrMalformedCode  = errors.New("malformed code")
	ErrUnknownTrait   = errors.New("unknown trait")
)

// Node is one node of a code tree. A node is either a leaf carrying exactly
// one trait, or an internal node with exactly two children. The Leaf tag is
// explicit; traversal never relies on nil-checking children.
type Node struct {
	Leaf      bool
	Trait     string  // set only on leaves
	Frequency float64 // cumulative frequency of the subtree

	Left, Right *Node // set only on internal nodes
}

// Tree is an immutable prefix-code tree. The root is the entry point for
// decode traversal.
type Tree struct {
	root *Node
}

// FrequencyTable is an insertion-ordered mapping from trait to positive
// frequency. The insertion order doubles as the deterministic tie-break key
// during tree construction, so two builds from the same table always produce
// the same code.
type FrequencyTable struct {
	traits []string
	freqs  map[string]float64
}

// NewFrequencyTable creates an empty frequency table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{freqs: make(map[string]float64)}
}

// Set registers a trait with its frequency. Frequencies must be positive and
// traits must be unique.
func (ft *FrequencyTable) Set(trait string, freq float64) error {
	if trait == "" {
		return fmt.Errorf("trait name is required")
	}
	if freq <= 0 {
		return fmt.Errorf("trait %s: frequency must be positive, got %f", trait, freq)
	}
	if _, exists := ft.freqs[trait]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTrait, trait)
	}
	ft.traits = append(ft.traits, trait)
	ft.freqs[trait] = freq
	return nil
}

// Len returns the number of traits in the table.
func (ft *FrequencyTable) Len() int {
	return len(ft.traits)
}

// Traits returns the trait names in insertion order.
func (ft *FrequencyTable) Traits() []string {
	out := make([]string, len(ft.traits))
	copy(out, ft.traits)
	return out
}

// CodeTable maps each trait to its bit-string code. Codes are prefix-free by
// construction: they are only ever assigned at leaves.
type CodeTable map[string]string
