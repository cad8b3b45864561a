package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/chronos-tachyon/rgz/internal/config"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Println("ERROR: ", err)
		os.Exit(1)
	}

	logrus.SetLevel(cfg.LogLevel())
	if cfg.CLI.Debug {
		logrus.Info("debug mode enabled")
	}

	if !cfg.CLI.Quiet {
		displayConfig(cfg)
	}

	data, err := os.ReadFile(cfg.CLI.File)
	if err != nil {
		logrus.Errorf("unable to read input: %s", err)
		os.Exit(1)
	}

	switch cfg.Mode() {
	case config.ModeDecompress:
		err = decompress(cfg, data)
	default:
		err = compress(cfg, data, os.Stdout)
	}
	if err != nil {
		logrus.Errorf("error during %s: %s", cfg.Mode(), err)
		os.Exit(1)
	}
}

func displayConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	logrus.Info("rgz settings:")
	logrus.Info("  [CLI]")
	logrus.Infof("  version: %s", config.VERSION)
	logrus.Infof("  file: %s", cfg.CLI.File)
	logrus.Infof("  mode: %s (%s)", cfg.CLI.Mode, cfg.Mode())
	logrus.Infof("  debug: %v", cfg.CLI.Debug)
	logrus.Infof("  config file: %s", cfg.CLI.ConfigFile)
	logrus.Infof("  quiet: %v", cfg.CLI.Quiet)
	logrus.Info("")
	logrus.Info("  [CONFIG]")
	logrus.Infof("  config.log_level: %s", cfg.TOML.Config.LogLevel)
	logrus.Info("")
	logrus.Info("  [GZIP]")
	logrus.Infof("  gzip.rfc1952_flags: %v", cfg.TOML.Gzip.RFC1952Flags)
	logrus.Infof("  gzip.any_os: %v", cfg.TOML.Gzip.AnyOS)
	logrus.Info("")
	logrus.Info("  [HUFFMAN]")
	logrus.Infof("  huffman.hide_table: %v", cfg.TOML.Huffman.HideTable)
}
