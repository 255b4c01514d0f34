// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package valuestore is an in-memory content-addressed value store
// built on lib/address.
//
// [Store.Put] decides how a value is addressed. A value with no
// children and at most 31 bytes of auxiliary data becomes an
// Immediate: the address is the value and nothing is stored. Anything
// else is CBOR-encoded (lib/codec), named by its content hash
// (lib/refhash), optionally compressed with LZ4 or zstd, and kept in
// memory under that Reference.
//
// [Store.Get] is the inverse. Immediates are decoded in place with no
// lookup. References are looked up, decompressed, decoded, and their
// content re-hashed; a mismatch is reported as [ErrCorrupt] rather
// than returned to the caller.
//
// [Store.Walk] visits a value and all of its descendants depth-first.
//
// A Store is safe for concurrent use.
package valuestore
