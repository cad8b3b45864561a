// Package bits implements ordered sequences of binary digits, the currency
// used by the Huffman encoder and decoder for codes and bitstreams.
package bits

import (
	"bytes"
	"io"
	"strings"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// Bit is a single binary digit.
type Bit uint8

const (
	Zero Bit = 0
	One  Bit = 1
)

// ErrInvalidDigit is returned by Parse for characters other than '0' and '1'.
var ErrInvalidDigit = errors.New("invalid binary digit")

// Sequence is an ordered sequence of bits.  Bits are appended at the back and
// consumed from the front.  When a Sequence holds a Huffman code, the front is
// the most significant bit.
//
// The zero value is an empty Sequence ready for use.
type Sequence struct {
	bits []Bit
	head int
}

// Of returns a Sequence holding the given bits.
func Of(list ...Bit) Sequence {
	var seq Sequence
	seq.bits = make([]Bit, len(list))
	copy(seq.bits, list)
	return seq
}

// Parse builds a Sequence from a string of '0' and '1' characters.
func Parse(str string) (Sequence, error) {
	var seq Sequence
	seq.bits = make([]Bit, 0, len(str))
	for i, ch := range str {
		switch ch {
		case '0':
			seq.bits = append(seq.bits, Zero)
		case '1':
			seq.bits = append(seq.bits, One)
		default:
			return Sequence{}, errors.Wrapf(ErrInvalidDigit, "%q at offset %d", ch, i)
		}
	}
	return seq, nil
}

// MustParse is like Parse but panics on error.  Intended for tests and
// package-level tables.
func MustParse(str string) Sequence {
	seq, err := Parse(str)
	if err != nil {
		panic(err)
	}
	return seq
}

// FromUint returns the low n bits of value, most significant bit first.
func FromUint(value uint64, n uint) Sequence {
	var seq Sequence
	seq.bits = make([]Bit, 0, n)
	for i := int(n) - 1; i >= 0; i-- {
		seq.bits = append(seq.bits, Bit((value>>uint(i))&1))
	}
	return seq
}

// FromBytes returns the first n bits of data, reading each byte from its most
// significant bit to its least significant bit.
func FromBytes(data []byte, n int) (Sequence, error) {
	if n < 0 || n > 8*len(data) {
		return Sequence{}, errors.Errorf("bit count %d out of range for %d bytes", n, len(data))
	}

	var seq Sequence
	seq.bits = make([]Bit, 0, n)
	r := bitio.NewReader(bytes.NewReader(data))
	for i := 0; i < n; i++ {
		b, err := r.ReadBool()
		if err != nil {
			return Sequence{}, errors.Wrapf(err, "reading bit %d", i)
		}
		seq.Append(fromBool(b))
	}
	return seq, nil
}

// FromDeflate returns the bits of data in DEFLATE order (RFC 1951 Section
// 3.1.1): each byte is read from its least significant bit upward.  The first
// skip bits are dropped.
func FromDeflate(data []byte, skip int) Sequence {
	total := 8 * len(data)
	if skip < 0 {
		skip = 0
	}
	if skip > total {
		skip = total
	}

	var seq Sequence
	seq.bits = make([]Bit, 0, total-skip)
	for i := skip; i < total; i++ {
		seq.bits = append(seq.bits, Bit((data[i>>3]>>uint(i&7))&1))
	}
	return seq
}

// Len returns the number of bits remaining in the sequence.
func (seq Sequence) Len() int {
	return len(seq.bits) - seq.head
}

// IsEmpty returns true if no bits remain.
func (seq Sequence) IsEmpty() bool {
	return seq.Len() == 0
}

// At returns the i'th remaining bit, counting from the front.
func (seq Sequence) At(i int) Bit {
	return seq.bits[seq.head+i]
}

// Append adds a bit at the back of the sequence.
//
// After bits have been popped from the front, Append moves the remaining bits
// to fresh storage, so it never writes over bits that an earlier copy of the
// Sequence can still see.  Copies share storage like slices do otherwise; use
// Clone for a copy that both sides may append to.
func (seq *Sequence) Append(b Bit) {
	if seq.head != 0 {
		rest := make([]Bit, len(seq.bits)-seq.head, len(seq.bits)-seq.head+1)
		copy(rest, seq.bits[seq.head:])
		seq.bits = rest
		seq.head = 0
	}
	seq.bits = append(seq.bits, b&1)
}

// Concat appends every bit of other at the back of the sequence.
func (seq *Sequence) Concat(other Sequence) {
	for i, n := 0, other.Len(); i < n; i++ {
		seq.Append(other.At(i))
	}
}

// PopFront removes and returns the bit at the front of the sequence.  It
// returns false if the sequence is empty.
func (seq *Sequence) PopFront() (Bit, bool) {
	if seq.head >= len(seq.bits) {
		return Zero, false
	}
	b := seq.bits[seq.head]
	seq.head++
	return b, true
}

// Clone returns an independent copy of the remaining bits.
func (seq Sequence) Clone() Sequence {
	return Of(seq.bits[seq.head:]...)
}

// Bits returns a copy of the remaining bits.
func (seq Sequence) Bits() []Bit {
	out := make([]Bit, seq.Len())
	copy(out, seq.bits[seq.head:])
	return out
}

// Equal returns true if both sequences hold the same remaining bits.
func (seq Sequence) Equal(other Sequence) bool {
	n := seq.Len()
	if n != other.Len() {
		return false
	}
	for i := 0; i < n; i++ {
		if seq.At(i) != other.At(i) {
			return false
		}
	}
	return true
}

// HasPrefix returns true if prefix is a (not necessarily proper) prefix of
// the sequence.
func (seq Sequence) HasPrefix(prefix Sequence) bool {
	n := prefix.Len()
	if n > seq.Len() {
		return false
	}
	for i := 0; i < n; i++ {
		if seq.At(i) != prefix.At(i) {
			return false
		}
	}
	return true
}

// Pack writes the remaining bits to w, front first, filling each byte from
// its most significant bit.  The final byte is padded with zeros.  It returns
// the number of bytes written.
func (seq Sequence) Pack(w io.Writer) (int, error) {
	cw := &countingWriter{w: w}
	bw := bitio.NewWriter(cw)
	for i, n := 0, seq.Len(); i < n; i++ {
		if err := bw.WriteBool(seq.At(i) == One); err != nil {
			return cw.n, errors.Wrapf(err, "writing bit %d", i)
		}
	}
	if err := bw.Close(); err != nil {
		return cw.n, errors.Wrap(err, "flushing bit writer")
	}
	return cw.n, nil
}

// String returns the bits as '0' and '1' characters, front first.
func (seq Sequence) String() string {
	var sb strings.Builder
	sb.Grow(seq.Len())
	for i, n := 0, seq.Len(); i < n; i++ {
		sb.WriteByte('0' + byte(seq.At(i)))
	}
	return sb.String()
}

func fromBool(b bool) Bit {
	if b {
		return One
	}
	return Zero
}

type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}
