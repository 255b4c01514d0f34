// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package address implements the 32-byte addresses that name values in
// a smith value store.
//
// Every address is exactly 32 bytes and is one of two kinds:
//
//   - [Immediate] -- inlines up to 31 bytes of auxiliary data for a
//     value with no children. Reading the value needs no lookup.
//   - [Reference] -- names a value stored elsewhere, because it has
//     children or more auxiliary data than fits inline. Its body is
//     owned by whatever produced it (see lib/refhash).
//
// [Address] holds either kind. Bit 0 of byte 31 (the tag bit) decides
// which: set means Immediate, clear means Reference. The three types
// are named [32]byte arrays, so a *[32]byte, *Address, *Immediate, and
// *Reference can all view the same memory without copying.
//
// # Immediate layout
//
// The auxiliary bytes come first, followed by zero padding up to byte
// 30, followed by the metadata byte:
//
//	bit    7    6..2    1    0
//	       0    len     0    1
//
// The padding and reserved bits are required to be zero so that two
// Immediates carrying the same auxiliary bytes are byte-identical.
// Address equality is therefore value equality, and `==` on the array
// types is the whole comparison.
//
// # Decoding
//
// Bytes from outside the process go through [ImmediateFromBytes],
// [FromBytes], [Parse], or one of the unmarshal methods, all of which
// validate. [ImmediateFromBytesUnchecked] skips validation and is only
// for bytes this package already produced.
package address
