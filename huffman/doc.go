// Package huffman implements Huffman codes as used by DEFLATE.
//
// Two independent routes lead to a code assignment.  BuildTree merges
// weighted symbols into a binary tree (the weight-driven route), and
// BuildTable assigns canonical codes from per-symbol bit lengths (the
// length-driven route).  Node.SymbolLengths connects the first to the second,
// and Table.Tree connects the second back to tree decoding.
//
// References:
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffman
