// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package refhash derives Reference addresses from value content.
//
// A value that cannot be an Immediate (it has children, or more than
// 31 bytes of auxiliary data) is named by the BLAKE3 keyed hash of its
// content. The key is a fixed domain constant so these hashes never
// collide with BLAKE3 hashes computed elsewhere for other purposes.
//
// The hashed message is the auxiliary length as a big-endian uint64,
// the auxiliary bytes, then the 32 bytes of each child address in
// order. The length prefix keeps a trailing child from being read as
// auxiliary data. The digest's tag bit is then cleared (see
// address.NewReference), so a Reference carries 255 bits of hash.
//
//   - [HashValue] -- Reference for auxiliary data plus children
//   - [FormatRef] -- short "ref-" form for logs and CLI output
package refhash
