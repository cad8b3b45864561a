package huffman

import (
	"testing"
)

func TestCode(t *testing.T) {
	type testRow struct {
		size  byte
		value uint32
		str   string
	}

	testData := [...]testRow{
		{size: 0, value: 0x0, str: `""`},
		{size: 2, value: 0x0, str: `"00"`},
		{size: 3, value: 0x2, str: `"010"`},
		{size: 4, value: 0xe, str: `"1110"`},
		{size: 9, value: 0x190, str: `"110010000"`},
	}
	for _, row := range testData {
		hc := MakeReversedCode(row.size, row.value)
		t.Run(row.str, func(t *testing.T) {
			if actual := hc.String(); actual != row.str {
				t.Errorf("wrong string:\n\texpect: %s\n\tactual: %s", row.str, actual)
			}
			if actual := hc.Value(); actual != row.value {
				t.Errorf("wrong value: expect %#x, got %#x", row.value, actual)
			}
			if actual := hc.Reversed().Reversed(); actual != hc {
				t.Errorf("double reversal changed %#v into %#v", hc, actual)
			}
			if actual := hc.Sequence().Len(); actual != int(row.size) {
				t.Errorf("wrong length: expect %d, got %d", row.size, actual)
			}
		})
	}
}
