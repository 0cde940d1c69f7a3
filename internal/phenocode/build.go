package phenocode

import (
	"container/heap"
)

// heapEntry wraps a node with a sequence number. The sequence number breaks
// frequency ties: original traits get their table insertion index, merged
// nodes get the next number in sequence. Removal order is therefore fully
// deterministic for a given table.
type heapEntry struct {
	node *Node
	seq  int
}

type nodeHeap []heapEntry

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].node.Frequency != h[j].node.Frequency {
		return h[i].node.Frequency < h[j].node.Frequency
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(heapEntry)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

// Build constructs a prefix-code tree from the frequency table using the
// standard greedy construction: repeatedly merge the two lowest-frequency
// nodes until one remains. Requires at least one trait.
//
// A single-trait alphabet still gets a non-empty code: the lone leaf is hung
// off an internal root, so the trait's code is "0".
func Build(table *FrequencyTable) (*Tree, error) {
	if table == nil || table.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}

	h := make(nodeHeap, 0, table.Len())
	seq := 0
	for _, trait := range table.traits {
		h = append(h, heapEntry{
			node: &Node{Leaf: true, Trait: trait, Frequency: table.freqs[trait]},
			seq:  seq,
		})
		seq++
	}
	heap.Init(&h)

	if h.Len() == 1 {
		leaf := h[0].node
		return &Tree{root: &Node{Frequency: leaf.Frequency, Left: leaf, Right: nil}}, nil
	}

	for h.Len() > 1 {
		left := heap.Pop(&h).(heapEntry)
		right := heap.Pop(&h).(heapEntry)

		merged := &Node{
			Frequency: left.node.Frequency + right.node.Frequency,
			Left:      left.node,
			Right:     right.node,
		}
		heap.Push(&h, heapEntry{node: merged, seq: seq})
		seq++
	}

	return &Tree{root: h[0].node}, nil
}

// Codes derives the code table by walking the tree from the root, appending
// "0" on left descent and "1" on right descent, and recording a code only at
// leaves.
func (t *Tree) Codes() CodeTable {
	codes := make(CodeTable)
	if t == nil || t.root == nil {
		return codes
	}
	assignCodes(t.root, "", codes)
	return codes
}

func assignCodes(n *Node, prefix string, codes CodeTable) {
	if n == nil {
		return
	}
	if n.Leaf {
		codes[n.Trait] = prefix
		return
	}
	assignCodes(n.Left, prefix+"0", codes)
	assignCodes(n.Right, prefix+"1", codes)
}
