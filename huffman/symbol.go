package huffman

import (
	"math"
	"sort"
)

// Symbol represents a symbol in a byte-sized alphabet.
type Symbol uint8

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxUint8)

// MaxCodeSize is the longest code, in bits, that a Table can hold.
const MaxCodeSize = 32

// WeightedSymbol pairs a Symbol with its weight (i.e. number of occurrences).
// Records that repeat a Symbol are not merged.
type WeightedSymbol struct {
	Symbol Symbol
	Weight uint32
}

// SymbolLength pairs a Symbol with the bit length of its code.  A Length of
// 0 means the Symbol is absent from the code.
type SymbolLength struct {
	Symbol Symbol
	Length byte
}

// SortSymbolLengths sorts list by (Length, Symbol) ascending, which is the
// order BuildTable expects for a canonical code.
func SortSymbolLengths(list []SymbolLength) {
	sort.Stable(byLength(list))
}

// type byLength {{{

type byLength []SymbolLength

func (list byLength) Len() int {
	return len(list)
}

func (list byLength) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byLength) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Length != b.Length {
		return a.Length < b.Length
	}
	return a.Symbol < b.Symbol
}

var _ sort.Interface = byLength(nil)

// }}}
