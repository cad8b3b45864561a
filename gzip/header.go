// Package gzip parses the framing of a gzip member (RFC 1952) up to and
// including the header of its first DEFLATE block (RFC 1951), and hands the
// block's bits to the Huffman decoder.
//
// Decompression itself is not implemented here.  Unsupported features are
// reported as errors rather than skipped, so that callers can tell "not yet
// supported" apart from "corrupt".
package gzip

import (
	"encoding/binary"
	"fmt"
)

const (
	gzipID1     = 0x1f
	gzipID2     = 0x8b
	gzipDeflate = 8

	// OSUnix is the OS header value for Unix.
	OSUnix = 3
)

// FLG bits, RFC 1952 Section 2.3.1.
const (
	FlagText      = 1 << 0
	FlagHeaderCRC = 1 << 1
	FlagExtra     = 1 << 2
	FlagName      = 1 << 3
	FlagComment   = 1 << 4

	flagReserved = 0xe0
)

// Header is the header of a gzip member.  It is not modified after parsing.
type Header struct {
	ID1               byte
	ID2               byte
	CompressionMethod byte
	Flags             byte
	ModTime           [4]byte // captured, not interpreted
	ExtraFlags        byte
	OS                byte

	// Name is the original filename without its NUL terminator.
	Name []byte

	// Optional fields, present only when the Parser accepts the
	// corresponding FLG bits.
	Extra       []byte
	Comment     []byte
	HeaderCRC16 uint16
}

// Filename returns the original filename.  Parser guarantees it is valid
// UTF-8.
func (h *Header) Filename() string {
	return string(h.Name)
}

// HasFlag returns true if the given FLG bit is set.
func (h *Header) HasFlag(flag byte) bool {
	return h.Flags&flag != 0
}

// ModTimeUnix returns the raw MTIME field as a little-endian integer.
func (h *Header) ModTimeUnix() uint32 {
	return binary.LittleEndian.Uint32(h.ModTime[:])
}

// String returns a short description of the header.
func (h *Header) String() string {
	return fmt.Sprintf("{cm: %d, flg: %#02x, xfl: %d, os: %d, name: %q}", h.CompressionMethod, h.Flags, h.ExtraFlags, h.OS, h.Name)
}
