package huffman

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/chronos-tachyon/rgz/bits"
)

// Node is a node in a Huffman tree.  A leaf holds a Symbol and its weight; an
// internal node exclusively owns two children and caches the sum of their
// weights.
type Node struct {
	left   *Node
	right  *Node
	weight uint32
	symbol Symbol
	leaf   bool
}

// NewLeaf returns a leaf Node.
func NewLeaf(symbol Symbol, weight uint32) *Node {
	return &Node{symbol: symbol, weight: weight, leaf: true}
}

// NewInternal returns an internal Node that takes ownership of left and
// right.  The weight is the sum of the children's weights, saturating at
// math.MaxUint32.
func NewInternal(left *Node, right *Node) *Node {
	if left == nil || right == nil {
		panic(errors.New("huffman: internal node requires two children"))
	}
	return &Node{
		left:   left,
		right:  right,
		weight: saturatingAdd(left.weight, right.weight),
	}
}

// IsLeaf returns true if this Node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Symbol returns the Symbol of a leaf.  It returns 0 for internal nodes.
func (n *Node) Symbol() Symbol {
	return n.symbol
}

// Weight returns the weight of a leaf, or the cached subtree weight of an
// internal node.
func (n *Node) Weight() uint32 {
	return n.weight
}

// Left returns the child reached by a 0 bit, or nil for a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the child reached by a 1 bit, or nil for a leaf.
func (n *Node) Right() *Node {
	return n.right
}

// Decode walks the tree from n, consuming one bit from the front of seq per
// internal node: 0 selects the left child and 1 selects the right child.  It
// returns the Symbol of the leaf reached; seq holds the remaining bits.
//
// If seq runs out before a leaf is reached, Decode returns ErrTruncatedInput
// and the bits consumed so far are lost.
//
func (n *Node) Decode(seq *bits.Sequence) (Symbol, error) {
	node := n
	for !node.leaf {
		bit, ok := seq.PopFront()
		if !ok {
			return 0, ErrTruncatedInput
		}
		if bit == bits.Zero {
			node = node.left
		} else {
			node = node.right
		}
		if node == nil {
			return 0, ErrInvalidCode
		}
	}
	return node.symbol, nil
}

// DecodeN decodes up to count symbols from seq, or until seq is empty if
// count is negative.  It returns the decoded symbols and the number of bits
// consumed.  On error, the symbols decoded before the failure are returned
// along with it.
func (n *Node) DecodeN(seq *bits.Sequence, count int) ([]Symbol, int, error) {
	if n.leaf && count < 0 {
		return nil, 0, errors.Wrap(ErrInsufficientSymbols, "a single-leaf tree cannot consume input")
	}

	var out []Symbol
	if count > 0 {
		out = make([]Symbol, 0, count)
	}

	consumed := 0
	for count < 0 || len(out) < count {
		if count < 0 && seq.IsEmpty() {
			break
		}
		before := seq.Len()
		symbol, err := n.Decode(seq)
		consumed += before - seq.Len()
		if err != nil {
			return out, consumed, errors.Wrapf(err, "decoding symbol %d", len(out))
		}
		out = append(out, symbol)
	}
	return out, consumed, nil
}

// SymbolLengths walks the tree depth-first, left child before right child,
// and returns one SymbolLength per leaf with Length equal to the leaf's
// depth.  The order is a by-product of the tree shape; sort the result with
// SortSymbolLengths before passing it to BuildTable.
func (n *Node) SymbolLengths() []SymbolLength {
	var out []SymbolLength
	n.symbolLengths(0, &out)
	return out
}

func (n *Node) symbolLengths(depth byte, out *[]SymbolLength) {
	if n.leaf {
		*out = append(*out, SymbolLength{Symbol: n.symbol, Length: depth})
		return
	}
	if n.left != nil {
		n.left.symbolLengths(depth+1, out)
	}
	if n.right != nil {
		n.right.symbolLengths(depth+1, out)
	}
}

// Codes returns the path from n to every leaf, i.e. the code that Decode
// maps back to each Symbol.
func (n *Node) Codes() map[Symbol]bits.Sequence {
	out := make(map[Symbol]bits.Sequence)
	var path bits.Sequence
	n.codes(path, out)
	return out
}

func (n *Node) codes(path bits.Sequence, out map[Symbol]bits.Sequence) {
	if n.leaf {
		out[n.symbol] = path
		return
	}
	if n.left != nil {
		p := path.Clone()
		p.Append(bits.Zero)
		n.left.codes(p, out)
	}
	if n.right != nil {
		p := path.Clone()
		p.Append(bits.One)
		n.right.codes(p, out)
	}
}

// String returns a compact representation of the subtree rooted at n.
func (n *Node) String() string {
	if n.leaf {
		return fmt.Sprintf("%d:%d", n.symbol, n.weight)
	}
	return fmt.Sprintf("(%v %v)", n.left, n.right)
}

var _ fmt.Stringer = (*Node)(nil)
