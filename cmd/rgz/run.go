package main

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/chronos-tachyon/rgz/gzip"
	"github.com/chronos-tachyon/rgz/huffman"
	"github.com/chronos-tachyon/rgz/internal/config"
)

// analysis is the outcome of coding one input with its own canonical
// Huffman code.
type analysis struct {
	encoder    *huffman.Encoder
	inputSize  int
	codedBits  int
	packedSize int
}

// analyze builds a canonical code from the byte histogram of data, codes
// data with it, and decodes the result again through the table's tree.
func analyze(data []byte) (*analysis, error) {
	encoder, err := huffman.NewEncoder(huffman.Frequencies(data))
	if err != nil {
		return nil, errors.Wrap(err, "error building Huffman code")
	}

	coded, err := encoder.EncodeAll(data)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding input")
	}

	packedSize, err := coded.Pack(io.Discard)
	if err != nil {
		return nil, errors.Wrap(err, "error packing coded bits")
	}

	tree, err := encoder.Table().Tree()
	if err != nil {
		return nil, errors.Wrap(err, "error building decode tree")
	}

	remaining := coded.Clone()
	symbols, consumed, err := tree.DecodeN(&remaining, len(data))
	if err != nil {
		return nil, errors.Wrap(err, "error decoding coded bits")
	}
	if consumed != coded.Len() || !remaining.IsEmpty() {
		return nil, errors.Errorf("decoder consumed %d of %d coded bits", consumed, coded.Len())
	}

	decoded := make([]byte, len(symbols))
	for i, symbol := range symbols {
		decoded[i] = byte(symbol)
	}
	if !bytes.Equal(decoded, data) {
		return nil, errors.New("decoded bytes do not match the input")
	}

	return &analysis{
		encoder:    encoder,
		inputSize:  len(data),
		codedBits:  coded.Len(),
		packedSize: packedSize,
	}, nil
}

func parserOptions(cfg *config.Config, log logrus.FieldLogger) []gzip.Option {
	opts := []gzip.Option{gzip.WithLogger(log)}
	if cfg.TOML.Gzip.RFC1952Flags {
		opts = append(opts, gzip.WithRFC1952Flags())
	}
	if cfg.TOML.Gzip.AnyOS {
		opts = append(opts, gzip.WithAnyOS())
	}
	return opts
}

func compress(cfg *config.Config, data []byte, out io.Writer) error {
	llog := logrus.WithFields(logrus.Fields{
		"method": "compress",
		"file":   cfg.CLI.File,
	})

	a, err := analyze(data)
	if err != nil {
		return err
	}

	llog.Infof("input size: %d bytes", a.inputSize)
	llog.Infof("distinct symbols: %d", a.encoder.Table().Len())
	llog.Infof("code lengths: %d .. %d bits", a.encoder.MinSize(), a.encoder.MaxSize())
	llog.Infof("coded size: %d bits (%d bytes packed)", a.codedBits, a.packedSize)
	llog.Debug("decode round trip ok")

	if cfg.TOML.Huffman.HideTable {
		return nil
	}

	if _, err := a.encoder.Table().Dump(out); err != nil {
		return errors.Wrap(err, "error writing code table")
	}

	return nil
}

func decompress(cfg *config.Config, data []byte) error {
	llog := logrus.WithFields(logrus.Fields{
		"method": "decompress",
		"file":   cfg.CLI.File,
	})

	m, err := gzip.Parse(data, parserOptions(cfg, llog)...)
	if err != nil {
		return err
	}

	h := m.Header
	llog.Infof("original filename: %q", h.Filename())
	llog.Infof("flags: %#02x (name: %v, comment: %v, extra: %v, header crc: %v)",
		h.Flags, h.HasFlag(gzip.FlagName), h.HasFlag(gzip.FlagComment),
		h.HasFlag(gzip.FlagExtra), h.HasFlag(gzip.FlagHeaderCRC))
	llog.Infof("mtime: %d", h.ModTimeUnix())
	llog.Infof("os: %d", h.OS)
	llog.Infof("block header at offset %d: %v", m.Offset, m.Block)
	llog.Infof("block payload: %d bits", m.PayloadBits().Len())

	llog.Warn("block contents are not decoded")

	return nil
}
