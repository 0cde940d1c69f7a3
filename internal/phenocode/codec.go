package phenocode

import (
	"fmt"
	"strings"
)

// Encode concatenates the code of each trait in input order.
// Returns ErrUnknownTrait (wrapped with the trait name) when a trait has no
// entry in the table.
func Encode(traits []string, table CodeTable) (string, error) {
	var b strings.Builder
	for _, trait := range traits {
		code, ok := table[trait]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownTrait, trait)
		}
		b.WriteString(code)
	}
	return b.String(), nil
}

// Decode walks the tree from the root one bit at a time ('0' left, '1'
// right), emits a trait on reaching a leaf, and restarts from the root.
// Returns ErrMalformedCode when the input contains a byte other than '0'/'1',
// descends past the edge of the tree, or ends mid-traversal on an internal
// node.
func (t *Tree) Decode(bits string) ([]string, error) {
	if t == nil || t.root == nil {
		return nil, ErrMalformedCode
	}

	var out []string
	current := t.root
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			current = current.Left
		case '1':
			current = current.Right
		default:
			return nil, fmt.Errorf("%w: invalid bit %q at offset %d", ErrMalformedCode, bits[i], i)
		}

		if current == nil {
			return nil, fmt.Errorf("%w: no code path at offset %d", ErrMalformedCode, i)
		}
		if current.Leaf {
			out = append(out, current.Trait)
			current = t.root
		}
	}

	if current != t.root {
		return nil, fmt.Errorf("%w: input ends mid-traversal", ErrMalformedCode)
	}
	return out, nil
}
