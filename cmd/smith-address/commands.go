// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/smith/lib/address"
	"github.com/bureau-foundation/smith/lib/refhash"
	"github.com/bureau-foundation/smith/lib/valuestore"
)

// command is one subcommand. flags registers its own flags and returns
// a pointer to them, which run receives back.
type command struct {
	flags func(*pflag.FlagSet) any
	run   func(env *environment, parameters any, args []string) error
}

var commands = map[string]command{
	"encode": {flags: encodeFlags, run: runEncode},
	"decode": {flags: noFlags, run: runDecode},
	"put":    {flags: putFlags, run: runPut},
}

func noFlags(*pflag.FlagSet) any { return nil }

// addressSummary is the --json output of every command.
type addressSummary struct {
	Address   address.Address `json:"address"`
	Kind      string          `json:"kind"`
	Length    *int            `json:"length,omitempty"`
	Auxiliary string          `json:"auxiliary_hex,omitempty"`
	Ref       string          `json:"ref,omitempty"`
}

func summarize(addr address.Address) addressSummary {
	summary := addressSummary{Address: addr, Kind: addr.Kind().String()}
	immediate, reference, isImmediate := addr.AsImmediate()
	if isImmediate {
		length := immediate.Len()
		summary.Length = &length
		summary.Auxiliary = hex.EncodeToString(immediate.Auxiliary())
	} else {
		summary.Ref = refhash.FormatRef(reference)
	}
	return summary
}

func printSummary(env *environment, summary addressSummary) error {
	if env.options.json {
		encoder := json.NewEncoder(env.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}
	_, err := fmt.Fprintln(env.stdout, summary.Address)
	return err
}

type encodeParameters struct {
	hexInput bool
}

func encodeFlags(flagSet *pflag.FlagSet) any {
	var parameters encodeParameters
	flagSet.BoolVarP(&parameters.hexInput, "hex", "x", false, "data argument is hex-encoded")
	return &parameters
}

func runEncode(env *environment, parameters any, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("encode takes exactly one data argument, got %d", len(args))
	}
	auxiliary := []byte(args[0])
	if parameters.(*encodeParameters).hexInput {
		decoded, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("decoding hex data: %w", err)
		}
		auxiliary = decoded
	}

	immediate, err := address.NewImmediate(auxiliary)
	if err != nil {
		return err
	}
	env.logger.Debug("encoded immediate", "length", immediate.Len())
	return printSummary(env, summarize(immediate.Address()))
}

func runDecode(env *environment, _ any, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("decode takes exactly one address argument, got %d", len(args))
	}
	addr, err := address.Parse(args[0])
	if err != nil {
		return err
	}

	summary := summarize(addr)
	if env.options.json {
		return printSummary(env, summary)
	}
	if summary.Length != nil {
		auxiliary, _ := hex.DecodeString(summary.Auxiliary)
		_, err = fmt.Fprintf(env.stdout, "immediate %d %s\n", *summary.Length, strconv.Quote(string(auxiliary)))
		return err
	}
	_, err = fmt.Fprintf(env.stdout, "reference %s\n", summary.Ref)
	return err
}

type putParameters struct {
	children []string
}

func putFlags(flagSet *pflag.FlagSet) any {
	var parameters putParameters
	flagSet.StringArrayVar(&parameters.children, "child", nil, "address of a child value (repeatable)")
	return &parameters
}

// runPut reads a value's auxiliary data from stdin and prints the
// address a store assigns it. The store lives only for this process.
func runPut(env *environment, parameters any, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("put reads the value from stdin and takes no arguments")
	}
	auxiliary, err := io.ReadAll(env.stdin)
	if err != nil {
		return fmt.Errorf("reading value: %w", err)
	}

	var children []address.Address
	for _, text := range parameters.(*putParameters).children {
		child, err := address.Parse(text)
		if err != nil {
			return fmt.Errorf("--child %s: %w", text, err)
		}
		children = append(children, child)
	}

	store := valuestore.New(env.config.StoreOptions(env.logger))
	addr, err := store.Put(context.Background(), valuestore.Value{Auxiliary: auxiliary, Children: children})
	if err != nil {
		return err
	}

	stats := store.Stats()
	env.logger.Info("put value",
		"kind", addr.Kind().String(),
		"auxiliary_bytes", len(auxiliary),
		"children", len(children),
		"encoded_bytes", stats.EncodedBytes,
		"stored_bytes", stats.StoredBytes,
	)
	return printSummary(env, summarize(addr))
}
