package config

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	EnvVarPrefix            = "RGZ"
	CompressedFileExtension = ".rgz"

	DefaultConfigFile = "rgz.toml"
	DefaultLogLevel   = "info"

	ModeAuto       = "auto"
	ModeCompress   = "compress"
	ModeDecompress = "decompress"
)

var (
	// VERSION gets set during build
	VERSION = "0.0.0"

	validModes = map[string]struct{}{
		ModeAuto:       {},
		ModeCompress:   {},
		ModeDecompress: {},
	}
)

type Config struct {
	CLI  *CLI
	TOML *TOML
}

type TOML struct {
	Config  *TOMLConfig  `toml:"config"`
	Gzip    *TOMLGzip    `toml:"gzip"`
	Huffman *TOMLHuffman `toml:"huffman"`
}

type TOMLConfig struct {
	LogLevel string `toml:"log_level"`
}

type TOMLGzip struct {
	RFC1952Flags bool `toml:"rfc1952_flags"`
	AnyOS        bool `toml:"any_os"`
}

type TOMLHuffman struct {
	HideTable bool `toml:"hide_table"`
}

type CLI struct {
	File       string `kong:"arg,help='File to compress or decompress',type='existingfile'"`
	ConfigFile string `kong:"help='Path to the TOML config file',default='rgz.toml',short='c'"`
	Mode       string `kong:"help='One of auto, compress, decompress; auto picks decompress for .rgz files',default='auto',enum='auto,compress,decompress',short='m'"`

	Debug   bool             `kong:"help='Enable debug output',short='d'"`
	Quiet   bool             `kong:"help='Disable showing settings',short='q'"`
	Version kong.VersionFlag `help:"Show version and exit" short:"v" env:"-"`

	// Internal bits
	Ctx *kong.Context `kong:"-"`
}

func NewConfig() (*Config, error) {
	// Attempt to load .env
	_ = godotenv.Load(".env")

	return New(os.Args[1:])
}

// New builds a Config from the given command line arguments (without the
// program name).
func New(args []string) (*Config, error) {
	cli, err := readCLIArgs(args)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing CLI args")
	}

	tomlConfig, err := readTOML(cli.ConfigFile, cli.ConfigFile != DefaultConfigFile)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}

	cfg := &Config{
		CLI:  cli,
		TOML: tomlConfig,
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "error validating config")
	}

	return cfg, nil
}

// Mode returns the effective mode, resolving ModeAuto by file extension.
func (c *Config) Mode() string {
	if c.CLI.Mode != ModeAuto && c.CLI.Mode != "" {
		return c.CLI.Mode
	}
	if HasCompressedFileExtension(c.CLI.File) {
		return ModeDecompress
	}
	return ModeCompress
}

// LogLevel returns the configured log level; --debug overrides the config
// file.
func (c *Config) LogLevel() logrus.Level {
	if c.CLI.Debug {
		return logrus.DebugLevel
	}
	level, err := logrus.ParseLevel(c.TOML.Config.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func HasCompressedFileExtension(filename string) bool {
	return strings.HasSuffix(filename, CompressedFileExtension)
}

func setTOMLDefaults(t *TOML) error {
	if t == nil {
		return errors.New("toml config cannot be nil")
	}

	if t.Config == nil {
		t.Config = &TOMLConfig{}
	}

	if t.Gzip == nil {
		t.Gzip = &TOMLGzip{}
	}

	if t.Huffman == nil {
		t.Huffman = &TOMLHuffman{}
	}

	// Set defaults for [config]
	if t.Config.LogLevel == "" {
		t.Config.LogLevel = DefaultLogLevel
	}

	return nil
}

func Validate(c *Config) error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	if err := validateCLIArgs(c.CLI); err != nil {
		return errors.Wrap(err, "error validating CLI args")
	}

	if err := validateTOML(c.TOML); err != nil {
		return errors.Wrap(err, "error validating toml config")
	}

	return nil
}

func validateTOML(t *TOML) error {
	if t == nil {
		return errors.New("toml config cannot be nil")
	}

	// Validate [config]
	if err := validateTOMLConfig(t.Config); err != nil {
		return errors.Wrap(err, "config error(s)")
	}

	if t.Gzip == nil {
		return errors.New("gzip cannot be empty")
	}

	if t.Huffman == nil {
		return errors.New("huffman cannot be empty")
	}

	return nil
}

func validateTOMLConfig(c *TOMLConfig) error {
	if c == nil {
		return errors.New("config cannot be empty")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "config.log_level %s is invalid", c.LogLevel)
	}

	return nil
}

func readCLIArgs(args []string) (*CLI, error) {
	cli := &CLI{}

	parser, err := kong.New(cli,
		kong.Name("rgz"),
		kong.Description("Canonical Huffman coder and gzip member inspector"),
		kong.UsageOnError(),
		kong.DefaultEnvars(EnvVarPrefix),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"version": VERSION,
		})
	if err != nil {
		return nil, errors.Wrap(err, "error creating CLI parser")
	}

	cli.Ctx, err = parser.Parse(args)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing args")
	}

	if err := validateCLIArgs(cli); err != nil {
		return nil, errors.Wrap(err, "error validating args")
	}

	return cli, nil
}

func validateCLIArgs(cli *CLI) error {
	if cli == nil {
		return errors.New("cli cannot be nil")
	}

	if cli.File == "" {
		return errors.New("file cannot be empty")
	}

	if _, ok := validModes[cli.Mode]; !ok {
		return errors.Errorf("mode %s is invalid", cli.Mode)
	}

	return nil
}

// readTOML loads the config file.  A missing file is only an error when it
// was asked for explicitly.
func readTOML(file string, explicit bool) (*TOML, error) {
	tomlConfig := &TOML{}

	// Attempt to load file
	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, tomlConfig); err != nil {
			return nil, errors.Wrap(err, "error parsing TOML config")
		}
	case os.IsNotExist(err) && !explicit:
		// fall through to defaults
	default:
		return nil, errors.Wrap(err, "error reading file")
	}

	// Set defaults
	if err := setTOMLDefaults(tomlConfig); err != nil {
		return nil, errors.Wrap(err, "error setting TOML defaults")
	}

	// Validate loaded config
	if err := validateTOML(tomlConfig); err != nil {
		return nil, errors.Wrap(err, "error validating TOML config")
	}

	return tomlConfig, nil
}
