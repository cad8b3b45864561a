package gzip

import (
	"fmt"

	"github.com/pkg/errors"
)

// BlockType is the BTYPE field of a DEFLATE block header.
type BlockType uint8

const (
	Stored BlockType = iota
	FixedHuffman
	DynamicHuffman
	Reserved
)

var blockTypeNames = [...]string{
	Stored:         "stored",
	FixedHuffman:   "fixed Huffman",
	DynamicHuffman: "dynamic Huffman",
	Reserved:       "reserved",
}

// String returns the name of the block type.
func (t BlockType) String() string {
	if int(t) < len(blockTypeNames) {
		return blockTypeNames[t]
	}
	return fmt.Sprintf("BlockType(%d)", uint8(t))
}

// BlockHeader is the 3-bit header at the start of every DEFLATE block.
type BlockHeader struct {
	Final bool
	Type  BlockType
}

// String returns a short description of the block header.
func (bh BlockHeader) String() string {
	return fmt.Sprintf("{final: %v, type: %v}", bh.Final, bh.Type)
}

// DecodeBlockHeader interprets the three low-order bits of b as a DEFLATE
// block header, least significant bit first: bit 0 is BFINAL and bits 1-2
// are BTYPE.
//
// Only single-block streams are supported, so a BFINAL of 0 yields
// ErrMultiBlockUnsupported; this is checked before BTYPE.  A BTYPE of 11
// yields ErrReservedBlockType.  The decoded header is returned even on error.
//
func DecodeBlockHeader(b byte) (BlockHeader, error) {
	bh := BlockHeader{
		Final: b&0x01 != 0,
		Type:  BlockType((b >> 1) & 0x03),
	}

	if !bh.Final {
		return bh, ErrMultiBlockUnsupported
	}
	if bh.Type == Reserved {
		return bh, errors.Wrapf(ErrReservedBlockType, "header byte %#02x", b)
	}
	return bh, nil
}
