package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/rgz/bits"
)

// Table maps each Symbol of a canonical Huffman code to its Code.  A Table is
// immutable once built and safe for concurrent use.
type Table struct {
	pairs   []SymbolLength
	codes   map[Symbol]Code
	minSize byte
	maxSize byte
}

// CountLengths returns the number of symbols having each code length present
// in pairs.  The entry for length 0 is always present and always 0, which is
// the seed of the base-code recurrence in BaseCodes.
func CountLengths(pairs []SymbolLength) map[byte]int {
	counts := make(map[byte]int)
	for _, p := range pairs {
		counts[p.Length]++
	}
	counts[0] = 0
	return counts
}

// BaseCodes returns, for every length in counts, the first code value
// assigned at that length, per RFC 1951 Section 3.2.2 step 2:
//
//     code = 0
//     for bits = 1 .. max: code = (code + count[bits-1]) << 1
//
// The recurrence runs over every length from 1 up to the longest, but only
// lengths present in counts appear in the result.  The count for length 0 is
// taken to be 0 regardless of its value in counts.
//
func BaseCodes(counts map[byte]int) map[byte]uint32 {
	var maxSize byte
	for size := range counts {
		if size > maxSize {
			maxSize = size
		}
	}

	out := make(map[byte]uint32, len(counts))
	if _, found := counts[0]; found {
		out[0] = 0
	}

	var code uint64
	for size := 1; size <= int(maxSize); size++ {
		var prev uint64
		if size > 1 {
			prev = uint64(counts[byte(size-1)])
		}
		code = (code + prev) << 1
		if _, found := counts[byte(size)]; found {
			out[byte(size)] = uint32(code)
		}
	}
	return out
}

// BuildTable builds the canonical Huffman code for pairs.
//
// Codes are handed out in the order of pairs: the first record of each
// length receives that length's base code, the next receives base+1, and so
// on.  To reproduce the canonical assignment of RFC 1951, pairs must already
// be sorted by (Length, Symbol) ascending; see SortSymbolLengths.  Records
// with a Length of 0 are skipped.
//
// BuildTable rejects lengths above MaxCodeSize (ErrCodeTooLong), symbols
// listed twice with non-zero lengths (ErrDuplicateSymbol), and length sets
// whose Kraft sum exceeds 1 (ErrOversubscribed).  Incomplete codes, whose
// Kraft sum is below 1, are permitted.
//
func BuildTable(pairs []SymbolLength) (*Table, error) {
	var seen [int(MaxSymbol) + 1]bool
	var numCodes int
	var minSize, maxSize byte
	for index, p := range pairs {
		if p.Length == 0 {
			continue
		}

		// forbid codes with sizes greater than MaxCodeSize
		if p.Length > MaxCodeSize {
			return nil, errors.Wrapf(ErrCodeTooLong, "record %d: symbol %d has length %d, max %d", index, p.Symbol, p.Length, MaxCodeSize)
		}

		if seen[p.Symbol] {
			return nil, errors.Wrapf(ErrDuplicateSymbol, "record %d: symbol %d", index, p.Symbol)
		}
		seen[p.Symbol] = true

		if numCodes == 0 {
			minSize = p.Length
			maxSize = p.Length
		} else if minSize > p.Length {
			minSize = p.Length
		} else if maxSize < p.Length {
			maxSize = p.Length
		}
		numCodes++
	}

	counts := CountLengths(pairs)
	if used := kraftUsage(counts, maxSize); used > uint64(1)<<maxSize {
		return nil, errors.Wrapf(ErrOversubscribed, "lengths use %d of %d codes at %d bits", used, uint64(1)<<maxSize, maxSize)
	}

	nextCode := BaseCodes(counts)

	t := &Table{
		pairs:   make([]SymbolLength, len(pairs)),
		codes:   make(map[Symbol]Code, numCodes),
		minSize: minSize,
		maxSize: maxSize,
	}
	copy(t.pairs, pairs)

	for _, p := range pairs {
		if p.Length == 0 {
			continue
		}

		code, found := nextCode[p.Length]
		assert.Assertf(found, "no base code for counted length %d", p.Length)
		nextCode[p.Length] = code + 1

		t.codes[p.Symbol] = MakeReversedCode(p.Length, code)
	}

	return t, nil
}

// kraftUsage returns the number of maxSize-bit code slots that counts
// occupies.  The code is a valid prefix code iff the result is at most
// 1<<maxSize, and complete iff it is equal.
func kraftUsage(counts map[byte]int, maxSize byte) uint64 {
	var used uint64
	for size, count := range counts {
		if size == 0 || count == 0 {
			continue
		}
		used += uint64(count) << (maxSize - size)
	}
	return used
}

// Code returns the Code assigned to symbol.
func (t *Table) Code(symbol Symbol) (Code, bool) {
	hc, found := t.codes[symbol]
	return hc, found
}

// Sequence returns the code assigned to symbol as a bits.Sequence, most
// significant bit first.
func (t *Table) Sequence(symbol Symbol) (bits.Sequence, bool) {
	hc, found := t.codes[symbol]
	if !found {
		return bits.Sequence{}, false
	}
	return hc.Sequence(), true
}

// Len returns the number of symbols with a code.
func (t *Table) Len() int {
	return len(t.codes)
}

// MinSize is the bit length of the shortest code.
func (t *Table) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *Table) MaxSize() byte {
	return t.maxSize
}

// Symbols returns the symbols with a code, in ascending order.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, 0, len(t.codes))
	for symbol := range t.codes {
		out = append(out, symbol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SymbolLengths returns a copy of the records used to build this Table.
func (t *Table) SymbolLengths() []SymbolLength {
	out := make([]SymbolLength, len(t.pairs))
	copy(out, t.pairs)
	return out
}

// Tree builds a decoding tree holding every code in this Table.  Leaves carry
// a weight of 0.  If the code is incomplete, some bit paths lead nowhere and
// Node.Decode reports ErrInvalidCode for them.
func (t *Table) Tree() (*Node, error) {
	if len(t.codes) == 0 {
		return nil, errors.Wrap(ErrInsufficientSymbols, "table has no codes")
	}

	root := &Node{}
	for _, symbol := range t.Symbols() {
		hc := t.codes[symbol]
		node := root
		for i := byte(0); i < hc.Size; i++ {
			assert.Assertf(!node.leaf, "code %s for symbol %d passes through a leaf", hc, symbol)
			child := &node.left
			if (hc.Bits>>i)&1 != 0 {
				child = &node.right
			}
			if *child == nil {
				*child = &Node{}
			}
			node = *child
		}
		assert.Assertf(node.left == nil && node.right == nil, "code %s for symbol %d is a prefix of another code", hc, symbol)
		node.leaf = true
		node.symbol = symbol
	}
	return root, nil
}

// Dump writes a programmer-readable debugging dump of the Table to the given
// writer, ordered by code.
func (t *Table) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Table{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	keys := make(byCode, 0, len(t.codes))
	for symbol, hc := range t.codes {
		keys = append(keys, symbolAndCode{symbol, hc})
	}
	keys.Sort()
	for _, sc := range keys {
		fmt.Fprintf(&buf, "\tCode(%d) = %s\n", sc.symbol, sc.code)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// String returns a short description of this Table.
func (t *Table) String() string {
	return fmt.Sprintf("(canonical Huffman table with %d symbols, with coded lengths of %d .. %d bits)", len(t.codes), t.minSize, t.maxSize)
}

var _ fmt.Stringer = (*Table)(nil)

// type symbolAndCode + type byCode {{{

type symbolAndCode struct {
	symbol Symbol
	code   Code
}

type byCode []symbolAndCode

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i].code, list[j].code
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Value() < b.Value()
}

var _ sort.Interface = byCode(nil)

// }}}
