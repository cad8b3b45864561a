package huffman

import (
	"github.com/pkg/errors"
)

var (
	// ErrInsufficientSymbols is returned when a tree is requested from fewer
	// than two symbols.
	ErrInsufficientSymbols = errors.New("huffman: at least 2 symbols are required to build a tree")

	// ErrTruncatedInput is returned when decoding needs another bit but the
	// input is exhausted.
	ErrTruncatedInput = errors.New("huffman: not enough bits to decode a symbol")

	// ErrInvalidCode is returned when a bit path leads to no symbol, which is
	// possible only for trees built from incomplete codes.
	ErrInvalidCode = errors.New("huffman: bit sequence does not match any code")

	// ErrOversubscribed is returned when a set of code lengths cannot form a
	// prefix code (the Kraft sum exceeds 1).
	ErrOversubscribed = errors.New("huffman: code lengths are over-subscribed")

	// ErrDuplicateSymbol is returned when a symbol is assigned more than one
	// non-zero code length.
	ErrDuplicateSymbol = errors.New("huffman: duplicate symbol")

	// ErrCodeTooLong is returned for code lengths above MaxCodeSize.
	ErrCodeTooLong = errors.New("huffman: code length too long")

	// ErrUnknownSymbol is returned when encoding a symbol that has no code.
	ErrUnknownSymbol = errors.New("huffman: symbol has no code")
)
