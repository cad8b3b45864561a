package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/chronos-tachyon/rgz/bits"
)

// Encoder implements an encoder for canonical Huffman codes derived from
// symbol weights.
type Encoder struct {
	table *Table
}

// NewEncoder builds the canonical Huffman code for the given weighted
// symbols.  It is a composition of the two construction routes:
//
//   1. BuildTree merges the weights into a tree, which fixes each symbol's
//      code length (the "first pass");
//
//   2. the lengths are sorted by (Length, Symbol) and handed to BuildTable,
//      which assigns the canonical code values (the "second pass").
//
// The resulting codes need not match the tree's own bit paths, but they have
// the same lengths, so the encoded size is the same.
//
func NewEncoder(symbols []WeightedSymbol) (*Encoder, error) {
	root, err := BuildTree(symbols)
	if err != nil {
		return nil, errors.Wrap(err, "first pass")
	}

	pairs := root.SymbolLengths()
	SortSymbolLengths(pairs)

	table, err := BuildTable(pairs)
	if err != nil {
		return nil, errors.Wrap(err, "second pass")
	}

	return &Encoder{table: table}, nil
}

// Frequencies counts the occurrences of each byte in data and returns one
// WeightedSymbol per byte value that occurs, in ascending Symbol order.
func Frequencies(data []byte) []WeightedSymbol {
	var counts [int(MaxSymbol) + 1]uint32
	for _, b := range data {
		counts[b] = saturatingAdd(counts[b], 1)
	}

	out := make([]WeightedSymbol, 0, len(counts))
	for symbol, freq := range counts {
		if freq != 0 {
			out = append(out, WeightedSymbol{Symbol: Symbol(symbol), Weight: freq})
		}
	}
	return out
}

// Encode returns the Huffman code for a Symbol.
func (e *Encoder) Encode(symbol Symbol) (Code, bool) {
	return e.table.Code(symbol)
}

// EncodeAll concatenates the codes for every byte of data.  It returns
// ErrUnknownSymbol if a byte has no code.
func (e *Encoder) EncodeAll(data []byte) (bits.Sequence, error) {
	var out bits.Sequence
	for index, b := range data {
		hc, found := e.table.Code(Symbol(b))
		if !found {
			return bits.Sequence{}, errors.Wrapf(ErrUnknownSymbol, "byte %d at offset %d", b, index)
		}
		out.Concat(hc.Sequence())
	}
	return out, nil
}

// Table returns the canonical code table behind this Encoder.
func (e *Encoder) Table() *Table {
	return e.table
}

// MinSize is the bit length of the shortest legal code.
func (e *Encoder) MinSize() byte {
	return e.table.MinSize()
}

// MaxSize is the bit length of the longest legal code.
func (e *Encoder) MaxSize() byte {
	return e.table.MaxSize()
}

// SizeBySymbol returns the code length of every Symbol from 0 up to the
// largest Symbol with a code, 0 meaning no code.  This array can be
// transmitted to another party and passed through SymbolLengthsFromSizes and
// BuildTable to reconstruct this Huffman code on the receiving end.
//
func (e *Encoder) SizeBySymbol() []byte {
	symbols := e.table.Symbols()
	if len(symbols) == 0 {
		return nil
	}
	out := make([]byte, int(symbols[len(symbols)-1])+1)
	for _, symbol := range symbols {
		hc, _ := e.table.Code(symbol)
		out[symbol] = hc.Size
	}
	return out
}

// SymbolLengthsFromSizes converts a per-Symbol array of code lengths, as
// produced by Encoder.SizeBySymbol, into records in ascending Symbol order.
// Sort them with SortSymbolLengths before calling BuildTable.
func SymbolLengthsFromSizes(sizes []byte) []SymbolLength {
	out := make([]SymbolLength, 0, len(sizes))
	for symbol, size := range sizes {
		if symbol > int(MaxSymbol) {
			break
		}
		out = append(out, SymbolLength{Symbol: Symbol(symbol), Length: size})
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e *Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.MaxSize())
	for _, symbol := range e.table.Symbols() {
		hc, _ := e.table.Code(symbol)
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
