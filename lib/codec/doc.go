// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides smith's standard CBOR encoding configuration.
//
// CBOR is the on-disk and wire form for everything smith stores:
// addresses (32-byte byte strings, see lib/address), stored value
// records in lib/valuestore, and any metadata that travels with them.
// JSON is used only for human-facing output such as the smith-address
// CLI's --json mode.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. A
// stored record is hashed after encoding, so the same logical record
// must always produce the same bytes or its Reference would change.
//
//	data, err := codec.Marshal(record)
//	err = codec.Unmarshal(data, &record)
//
// Struct tags follow one rule: `cbor` tags for types that are only ever
// CBOR, `json` tags for types that are also printed as JSON (fxamacker
// falls back to json tags when no cbor tag is present). Never both on
// one field.
package codec
