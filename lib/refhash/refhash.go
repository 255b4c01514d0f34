// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package refhash

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/smith/lib/address"
)

// domainKey is a 32-byte key for BLAKE3 keyed hashing.
type domainKey [32]byte

// valueDomainKey is the ASCII domain name zero-padded to 32 bytes.
// Changing it changes every Reference ever produced.
var valueDomainKey = domainKey{
	's', 'm', 'i', 't', 'h', '.', 'v', 'a', 'l', 'u', 'e', 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// HashValue computes the Reference for a value with the given
// auxiliary data and children. The same content always yields the
// same Reference; the result is a Reference even for content that
// would fit in an Immediate.
func HashValue(auxiliary []byte, children []address.Address) address.Reference {
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(valueDomainKey[:])
	if err != nil {
		panic("refhash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(auxiliary)))
	hasher.Write(length[:])
	hasher.Write(auxiliary)
	for index := range children {
		hasher.Write(children[index][:])
	}

	var digest [address.Size]byte
	copy(digest[:], hasher.Sum(nil))
	return address.NewReference(digest)
}

// FormatRef returns the short form of a Reference: "ref-" followed by
// the first 12 hex characters.
func FormatRef(reference address.Reference) string {
	return "ref-" + hex.EncodeToString(reference[:6])
}
