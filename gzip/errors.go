package gzip

import (
	"github.com/pkg/errors"
)

var (
	// ErrTruncatedHeader is returned when the input ends in the middle of a
	// header field.
	ErrTruncatedHeader = errors.New("gzip: truncated header")

	// ErrInvalidMagic is returned when the member does not start with the
	// identification bytes 0x1f 0x8b.
	ErrInvalidMagic = errors.New("gzip: invalid header identification bytes")

	// ErrUnsupportedCompressionMethod is returned for any CM other than 8
	// (DEFLATE).
	ErrUnsupportedCompressionMethod = errors.New("gzip: unsupported compression method")

	// ErrUnsupportedFlags is returned for FLG values the Parser does not
	// accept.
	ErrUnsupportedFlags = errors.New("gzip: unsupported flags")

	// ErrUnsupportedOperatingSystem is returned for OS values the Parser does
	// not accept.
	ErrUnsupportedOperatingSystem = errors.New("gzip: unsupported operating system")

	// ErrInvalidFilenameEncoding is returned when the original filename is
	// not valid UTF-8.
	ErrInvalidFilenameEncoding = errors.New("gzip: original filename is not valid UTF-8")

	// ErrHeaderChecksum is returned when the optional header CRC-16 does not
	// match.
	ErrHeaderChecksum = errors.New("gzip: invalid header checksum")

	// ErrReservedBlockType is returned for the reserved DEFLATE block type 11.
	ErrReservedBlockType = errors.New("deflate: reserved block type")

	// ErrMultiBlockUnsupported is returned when the first DEFLATE block is
	// not the final block.
	ErrMultiBlockUnsupported = errors.New("deflate: streams with more than one block are not supported")
)
