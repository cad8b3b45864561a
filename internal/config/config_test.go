package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "hello")

	cfg, err := New([]string{input, "--config", filepath.Join(dir, DefaultConfigFile)})
	require.Error(t, err, "explicitly named config file that does not exist")

	// No rgz.toml in the package directory, so defaults apply.
	cfg, err = New([]string{input})
	require.NoError(t, err)
	require.Equal(t, ModeAuto, cfg.CLI.Mode)
	require.Equal(t, ModeCompress, cfg.Mode())
	require.Equal(t, DefaultLogLevel, cfg.TOML.Config.LogLevel)
	require.Equal(t, logrus.InfoLevel, cfg.LogLevel())
	require.False(t, cfg.TOML.Gzip.RFC1952Flags)
	require.False(t, cfg.TOML.Gzip.AnyOS)
	require.False(t, cfg.TOML.Huffman.HideTable)
}

func TestNew_TOML(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "archive.rgz", "")
	configFile := writeFile(t, dir, "custom.toml", `
[config]
log_level = "warn"

[gzip]
rfc1952_flags = true
any_os = true

[huffman]
hide_table = true
`)

	cfg, err := New([]string{input, "-c", configFile})
	require.NoError(t, err)
	require.Equal(t, ModeDecompress, cfg.Mode())
	require.Equal(t, logrus.WarnLevel, cfg.LogLevel())
	require.True(t, cfg.TOML.Gzip.RFC1952Flags)
	require.True(t, cfg.TOML.Gzip.AnyOS)
	require.True(t, cfg.TOML.Huffman.HideTable)

	cfg, err = New([]string{input, "-c", configFile, "--debug", "--mode", ModeCompress})
	require.NoError(t, err)
	require.Equal(t, ModeCompress, cfg.Mode())
	require.Equal(t, logrus.DebugLevel, cfg.LogLevel())
}

func TestNew_Errors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", "hello")
	badLevel := writeFile(t, dir, "bad-level.toml", "[config]\nlog_level = \"loud\"\n")
	badSyntax := writeFile(t, dir, "bad-syntax.toml", "[config\n")

	_, err := New(nil)
	require.Error(t, err)

	_, err = New([]string{filepath.Join(dir, "missing.txt")})
	require.Error(t, err)

	_, err = New([]string{input, "--mode", "sideways"})
	require.Error(t, err)

	_, err = New([]string{input, "-c", badLevel})
	require.Error(t, err)

	_, err = New([]string{input, "-c", badSyntax})
	require.Error(t, err)
}

func TestHasCompressedFileExtension(t *testing.T) {
	require.True(t, HasCompressedFileExtension("notes.txt.rgz"))
	require.True(t, HasCompressedFileExtension(".rgz"))
	require.False(t, HasCompressedFileExtension("notes.txt"))
	require.False(t, HasCompressedFileExtension("gz"))
	require.False(t, HasCompressedFileExtension(""))
}

func TestValidate(t *testing.T) {
	require.Error(t, Validate(nil))
	require.Error(t, Validate(&Config{CLI: &CLI{File: "x", Mode: ModeAuto}}))

	toml := &TOML{}
	require.NoError(t, setTOMLDefaults(toml))
	require.NoError(t, Validate(&Config{CLI: &CLI{File: "x", Mode: ModeAuto}, TOML: toml}))
	require.Error(t, Validate(&Config{CLI: &CLI{Mode: ModeAuto}, TOML: toml}))
}
