package huffman

import (
	"math"
)

// saturatingAdd returns a+b, clamped to math.MaxUint32.
func saturatingAdd(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		sum = math.MaxUint32
	}
	return sum
}
