package huffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// BuildTree builds a Huffman tree from a list of weighted symbols.
//
// The list must hold at least 2 records, or else ErrInsufficientSymbols is
// returned.  Records are not deduplicated: a Symbol listed twice becomes two
// leaves.
//
// The two lightest items are merged repeatedly until one remains, and the
// first of each pair becomes the left child.  Ties between equal weights are
// broken by insertion order (input records in list order, then merged nodes
// in order of creation), so the result is deterministic.
//
func BuildTree(symbols []WeightedSymbol) (*Node, error) {
	if len(symbols) < 2 {
		return nil, errors.Wrapf(ErrInsufficientSymbols, "got %d", len(symbols))
	}

	// Step 1: build a minheap with one leaf per record.

	h := nodeHeap{list: make([]nodeAndSeq, 0, len(symbols))}
	for _, ws := range symbols {
		h.list = append(h.list, nodeAndSeq{NewLeaf(ws.Symbol, ws.Weight), h.next})
		h.next++
	}
	h.Init()

	// Step 2: pop two, merge, push the merged node back.

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndSeq)
		b := heap.Pop(&h).(nodeAndSeq)
		heap.Push(&h, nodeAndSeq{node: NewInternal(a.node, b.node), seq: h.next})
		h.next++
	}

	root := heap.Pop(&h).(nodeAndSeq)
	assert.Assertf(!root.node.leaf, "root of a %d-symbol tree is a leaf", len(symbols))
	return root.node, nil
}

// type nodeAndSeq + type nodeHeap {{{

type nodeAndSeq struct {
	node *Node
	seq  uint64
}

type nodeHeap struct {
	list []nodeAndSeq
	next uint64
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.node.weight != b.node.weight {
		return a.node.weight < b.node.weight
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndSeq))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nodeAndSeq{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
