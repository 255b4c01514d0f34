// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// smith-address encodes, decodes, and inspects 32-byte value
// addresses.
//
//	smith-address encode [--hex] <data>    immediate address for short data
//	smith-address decode <address>         kind and inline data of an address
//	smith-address put [--child <address>]  address for a value read from stdin
//
// Addresses are printed and accepted as 64 hex characters. With --json
// each command prints one JSON object instead of plain text.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/smith/lib/config"
	"github.com/bureau-foundation/smith/lib/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "smith-address: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	json       bool
}

// environment is what a command runs against.
type environment struct {
	options globalOptions
	config  *config.Config
	logger  *slog.Logger
	stdin   io.Reader
	stdout  io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Handle --version before flag parsing to match other binaries.
	if len(args) > 0 && args[0] == "--version" {
		version.Fprint(stdout, "smith-address")
		return nil
	}

	var options globalOptions
	flagSet := pflag.NewFlagSet("smith-address", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	addGlobalFlags(flagSet, &options)
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	remaining := flagSet.Args()
	if len(remaining) == 0 {
		printUsage(stderr, flagSet)
		return fmt.Errorf("no command given")
	}

	command, ok := commands[remaining[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (want encode, decode, or put)", remaining[0])
	}

	commandFlags := pflag.NewFlagSet("smith-address "+remaining[0], pflag.ContinueOnError)
	commandFlags.SetOutput(stderr)
	addGlobalFlags(commandFlags, &options)
	parameters := command.flags(commandFlags)
	if err := commandFlags.Parse(remaining[1:]); err != nil {
		return err
	}

	cfg, err := loadConfig(options.configPath)
	if err != nil {
		return err
	}
	if options.logLevel != "" {
		cfg.LogLevel = options.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return command.run(&environment{
		options: options,
		config:  cfg,
		logger:  logger,
		stdin:   stdin,
		stdout:  stdout,
	}, parameters, commandFlags.Args())
}

func addGlobalFlags(flagSet *pflag.FlagSet, options *globalOptions) {
	flagSet.StringVar(&options.configPath, "config", options.configPath, "path to a smith config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&options.logLevel, "log-level", options.logLevel, "log level: debug, info, warn, or error")
	flagSet.BoolVar(&options.json, "json", options.json, "print JSON instead of plain text")
}

// loadConfig reads the --config file, else $SMITH_CONFIG, else uses
// the defaults. A one-shot encoder has no required settings.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv(config.EnvironmentVariable) != "" {
		return config.Load()
	}
	return config.Default(), nil
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `smith-address — encode and inspect 32-byte value addresses.

Usage:
  smith-address [flags] encode [--hex] <data>
  smith-address [flags] decode <address>
  smith-address [flags] put [--child <address>]... < value

Flags:
%s`, flagSet.FlagUsages())
}
