package main

import (
	"bytes"
	stdgzip "compress/gzip"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/rgz/gzip"
	"github.com/chronos-tachyon/rgz/huffman"
	"github.com/chronos-tachyon/rgz/internal/config"
)

func testConfig(file string) *config.Config {
	return &config.Config{
		CLI: &config.CLI{File: file, Mode: config.ModeAuto},
		TOML: &config.TOML{
			Config:  &config.TOMLConfig{LogLevel: config.DefaultLogLevel},
			Gzip:    &config.TOMLGzip{},
			Huffman: &config.TOMLHuffman{},
		},
	}
}

func TestAnalyze(t *testing.T) {
	a, err := analyze([]byte("abracadabra"))
	require.NoError(t, err)
	require.Equal(t, 11, a.inputSize)
	require.Equal(t, 23, a.codedBits)
	require.Equal(t, 3, a.packedSize)
	require.Equal(t, 5, a.encoder.Table().Len())
	require.Equal(t, byte(1), a.encoder.MinSize())
	require.Equal(t, byte(3), a.encoder.MaxSize())

	var all []byte
	for i := 0; i < 256; i++ {
		for j := 0; j <= i%7; j++ {
			all = append(all, byte(i))
		}
	}
	a, err = analyze(all)
	require.NoError(t, err)
	require.Equal(t, 256, a.encoder.Table().Len())
}

func TestAnalyze_TooFewSymbols(t *testing.T) {
	_, err := analyze([]byte("aaaa"))
	require.True(t, errors.Is(err, huffman.ErrInsufficientSymbols))

	_, err = analyze(nil)
	require.True(t, errors.Is(err, huffman.ErrInsufficientSymbols))
}

func TestCompress_Table(t *testing.T) {
	cfg := testConfig("input.txt")

	var out bytes.Buffer
	require.NoError(t, compress(cfg, []byte("mississippi"), &out))
	require.NotEmpty(t, out.String())

	out.Reset()
	cfg.TOML.Huffman.HideTable = true
	require.NoError(t, compress(cfg, []byte("mississippi"), &out))
	require.Empty(t, out.String())
}

func gzipMember(t *testing.T, content []byte, name string, os byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := stdgzip.NewWriter(&buf)
	w.Name = name
	w.OS = os
	_, err := w.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecompress(t *testing.T) {
	cfg := testConfig("empty.txt.rgz")
	require.Equal(t, config.ModeDecompress, cfg.Mode())

	require.NoError(t, decompress(cfg, gzipMember(t, nil, "empty.txt", gzip.OSUnix)))

	err := decompress(cfg, gzipMember(t, []byte("abc abc abc"), "abc.txt", gzip.OSUnix))
	require.True(t, errors.Is(err, gzip.ErrMultiBlockUnsupported))

	err = decompress(cfg, gzipMember(t, nil, "empty.txt", 0))
	require.True(t, errors.Is(err, gzip.ErrUnsupportedOperatingSystem))

	cfg.TOML.Gzip.AnyOS = true
	require.NoError(t, decompress(cfg, gzipMember(t, nil, "empty.txt", 0)))

	err = decompress(cfg, []byte("not gzip"))
	require.True(t, errors.Is(err, gzip.ErrInvalidMagic))
}

func TestParserOptions(t *testing.T) {
	cfg := testConfig("x.rgz")
	require.Len(t, parserOptions(cfg, nil), 1)

	cfg.TOML.Gzip.RFC1952Flags = true
	cfg.TOML.Gzip.AnyOS = true
	require.Len(t, parserOptions(cfg, nil), 3)
}
