package bits

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequence_AppendPopFront(t *testing.T) {
	var seq Sequence
	require.True(t, seq.IsEmpty())

	seq.Append(One)
	seq.Append(Zero)
	seq.Append(One)
	require.Equal(t, 3, seq.Len())
	require.Equal(t, "101", seq.String())

	b, ok := seq.PopFront()
	require.True(t, ok)
	require.Equal(t, One, b)
	require.Equal(t, "01", seq.String())

	_, _ = seq.PopFront()
	_, _ = seq.PopFront()
	_, ok = seq.PopFront()
	require.False(t, ok)
	require.True(t, seq.IsEmpty())

	seq.Append(One)
	require.Equal(t, "1", seq.String())
}

func TestParse(t *testing.T) {
	seq, err := Parse("0110")
	require.NoError(t, err)
	require.Equal(t, []Bit{Zero, One, One, Zero}, seq.Bits())

	_, err = Parse("01x")
	require.ErrorIs(t, err, ErrInvalidDigit)

	empty, err := Parse("")
	require.NoError(t, err)
	require.True(t, empty.IsEmpty())
}

func TestFromUint(t *testing.T) {
	require.Equal(t, "1110", FromUint(14, 4).String())
	require.Equal(t, "00", FromUint(0, 2).String())
	require.Equal(t, "010", FromUint(2, 3).String())
	require.Equal(t, "", FromUint(7, 0).String())
}

func TestFromBytes(t *testing.T) {
	seq, err := FromBytes([]byte{0xA5, 0xF0}, 12)
	require.NoError(t, err)
	require.Equal(t, "101001011111", seq.String())

	_, err = FromBytes([]byte{0xFF}, 9)
	require.Error(t, err)
}

func TestFromDeflate(t *testing.T) {
	// 0x03 = 0b00000011, read LSB first.
	seq := FromDeflate([]byte{0x03, 0x80}, 0)
	require.Equal(t, "1100000000000001", seq.String())

	seq = FromDeflate([]byte{0x03, 0x80}, 3)
	require.Equal(t, "0000000000001", seq.String())

	require.True(t, FromDeflate([]byte{0xFF}, 100).IsEmpty())
}

func TestSequence_HasPrefixEqualClone(t *testing.T) {
	seq := MustParse("11010")
	require.True(t, seq.HasPrefix(MustParse("110")))
	require.True(t, seq.HasPrefix(MustParse("11010")))
	require.True(t, seq.HasPrefix(Sequence{}))
	require.False(t, seq.HasPrefix(MustParse("111")))
	require.False(t, seq.HasPrefix(MustParse("110101")))

	clone := seq.Clone()
	_, _ = clone.PopFront()
	require.Equal(t, "11010", seq.String())
	require.Equal(t, "1010", clone.String())
	require.True(t, clone.Equal(MustParse("1010")))
	require.False(t, clone.Equal(seq))
}

func TestSequence_AppendAfterPopKeepsCopies(t *testing.T) {
	a := MustParse("01")
	b := a
	_, _ = a.PopFront()
	_, _ = a.PopFront()
	a.Append(One)
	require.Equal(t, "01", b.String())
	require.Equal(t, "1", a.String())

	c := MustParse("110")
	d := c
	_, _ = c.PopFront()
	c.Append(Zero)
	c.Append(One)
	require.Equal(t, "110", d.String())
	require.Equal(t, "1001", c.String())
}

func TestSequence_Concat(t *testing.T) {
	seq := MustParse("10")
	seq.Concat(MustParse("011"))
	require.Equal(t, "10011", seq.String())
}

func TestSequence_PackRoundTrip(t *testing.T) {
	seq := MustParse("1010010111111")

	var buf bytes.Buffer
	n, err := seq.Pack(&buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte{0xA5, 0xF8}, buf.Bytes())

	back, err := FromBytes(buf.Bytes(), seq.Len())
	require.NoError(t, err)
	require.True(t, back.Equal(seq))
}
