// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package address

import "encoding/hex"

// Reference is an address for a value stored outside the address:
// one with children, or with more auxiliary data than an [Immediate]
// holds. Apart from the tag bit (bit 0 of byte 31, always clear) its
// bytes belong to the producer, normally a content hash from
// lib/refhash.
type Reference [Size]byte

// NewReference turns 32 bytes of producer data into a Reference by
// clearing the tag bit. The other 255 bits are kept as given.
func NewReference(body [Size]byte) Reference {
	body[metadataIndex] &^= tagBit
	return Reference(body)
}

// ReferenceFromBytes views bytes as a Reference. The returned pointer
// aliases bytes. Returns false if the tag bit marks bytes as an
// Immediate.
func ReferenceFromBytes(bytes *[Size]byte) (*Reference, bool) {
	if bytes[metadataIndex]&tagBit != 0 {
		return nil, false
	}
	return (*Reference)(bytes), true
}

// Bytes returns the full 32-byte representation.
func (reference *Reference) Bytes() *[Size]byte {
	return (*[Size]byte)(reference)
}

// Address returns the Reference as an [Address].
func (reference Reference) Address() Address {
	return Address(reference)
}

// String returns the hex encoding of all 32 bytes.
func (reference Reference) String() string {
	return hex.EncodeToString(reference[:])
}
