package huffman

import (
	"fmt"
	mathbits "math/bits"
	"strconv"

	"github.com/chronos-tachyon/rgz/bits"
)

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The least significant bit
	// of Bits is the first bit.
	Bits uint32
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint32) Code {
	return Code{Size: size, Bits: bits}
}

// MakeReversedCode constructs a Code from a sequence of bits that's in the
// wrong order, i.e. the least significant bit is the *last* bit in the
// sequence, instead of the first.
//
// Canonical code values are computed in this order, so this is how Table
// stores them.
//
func MakeReversedCode(size byte, bits uint32) Code {
	return MakeCode(size, reverseBits(size, bits))
}

// Reversed returns the corresponding Code with the bits in reverse order.
func (hc Code) Reversed() Code {
	return MakeReversedCode(hc.Size, hc.Bits)
}

// Value returns the numeric value of this Code when read first bit first,
// i.e. the canonical code value.
func (hc Code) Value() uint32 {
	return reverseBits(hc.Size, hc.Bits)
}

// Sequence renders this Code as a bits.Sequence, first bit at the front.
func (hc Code) Sequence() bits.Sequence {
	var seq bits.Sequence
	for i := byte(0); i < hc.Size; i++ {
		seq.Append(bits.Bit((hc.Bits >> i) & 1))
	}
	return seq
}

// String returns the string representation of this Code, first bit first.
func (hc Code) String() string {
	return strconv.Quote(hc.Sequence().String())
}

// GoString returns a Go expression that reconstructs this Code.
func (hc Code) GoString() string {
	return fmt.Sprintf("huffman.MakeCode(%d, %#x)", hc.Size, hc.Bits)
}

var _ fmt.Stringer = Code{}
var _ fmt.GoStringer = Code{}

func reverseBits(size byte, bits uint32) uint32 {
	if size == 0 {
		return 0
	}
	return mathbits.Reverse32(bits) >> (32 - size)
}
