// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"encoding/hex"
	"fmt"
)

// Size is the number of bytes in every address.
const Size = 32

// MaxAuxiliary is the largest auxiliary payload an Immediate can
// carry. One byte of the 32 is the metadata byte.
const MaxAuxiliary = Size - 1

const (
	metadataIndex = Size - 1

	// tagBit is set for Immediates and clear for References.
	tagBit = 0b0000_0001

	// metadataCheckMask selects the reserved bits and the tag bit.
	// For a well-formed Immediate they read 0_00000_01.
	metadataCheckMask = 0b1000_0011

	lengthShift = 2
)

// Immediate is an address that stores a small value's auxiliary data
// inline. A valid Immediate has no children and at most
// [MaxAuxiliary] bytes of auxiliary data.
type Immediate [Size]byte

// Empty is the Immediate of the value with no auxiliary data: all zero
// except the metadata byte, which is 0x01.
var Empty = Immediate{metadataIndex: tagBit}

// ImmediateFromAuxiliary encodes auxiliary data as an Immediate.
// Returns false if auxiliary is longer than [MaxAuxiliary].
func ImmediateFromAuxiliary(auxiliary []byte) (Immediate, bool) {
	if len(auxiliary) > MaxAuxiliary {
		return Immediate{}, false
	}
	var immediate Immediate
	copy(immediate[:], auxiliary)
	immediate[metadataIndex] = byte(len(auxiliary))<<lengthShift | tagBit
	return immediate, true
}

// NewImmediate is [ImmediateFromAuxiliary] with an error that wraps
// [ErrOversizedAuxiliary].
func NewImmediate(auxiliary []byte) (Immediate, error) {
	immediate, ok := ImmediateFromAuxiliary(auxiliary)
	if !ok {
		return Immediate{}, fmt.Errorf("%d bytes of auxiliary data, at most %d fit inline: %w",
			len(auxiliary), MaxAuxiliary, ErrOversizedAuxiliary)
	}
	return immediate, nil
}

// ImmediateFromBytes views bytes as an Immediate after checking the
// metadata byte and the padding. The returned pointer aliases bytes.
// Returns false if bytes is not a well-formed Immediate; it never
// panics on any input.
func ImmediateFromBytes(bytes *[Size]byte) (*Immediate, bool) {
	if checkImmediate(bytes) != nil {
		return nil, false
	}
	return ImmediateFromBytesUnchecked(bytes), true
}

// ImmediateFromBytesUnchecked views bytes as an Immediate without any
// validation. The caller must already know bytes is a well-formed
// Immediate, typically because this package encoded it. Feeding it
// bytes from a file, socket, or user yields an Immediate whose
// auxiliary data and equality are meaningless; use
// [ImmediateFromBytes] for those.
func ImmediateFromBytesUnchecked(bytes *[Size]byte) *Immediate {
	return (*Immediate)(bytes)
}

// checkImmediate reports why bytes is not a well-formed Immediate.
func checkImmediate(bytes *[Size]byte) error {
	metadata := bytes[metadataIndex]
	if metadata&metadataCheckMask != tagBit {
		return fmt.Errorf("metadata byte %#08b has reserved or tag bits wrong: %w", metadata, ErrMalformedAddress)
	}
	length := int(metadata >> lengthShift)
	for index := length; index < metadataIndex; index++ {
		if bytes[index] != 0 {
			return fmt.Errorf("padding byte %d is %#02x for auxiliary length %d: %w",
				index, bytes[index], length, ErrMalformedAddress)
		}
	}
	return nil
}

// Validate returns an error wrapping [ErrMalformedAddress] if the
// Immediate is not in canonical form.
func (immediate Immediate) Validate() error {
	return checkImmediate((*[Size]byte)(&immediate))
}

// Bytes returns the full 32-byte representation, including padding
// and metadata. This is not the auxiliary data.
func (immediate *Immediate) Bytes() *[Size]byte {
	return (*[Size]byte)(immediate)
}

// Array returns a copy of the 32-byte representation.
func (immediate Immediate) Array() [Size]byte {
	return [Size]byte(immediate)
}

// Len returns the number of auxiliary bytes, read from bits 6..2 of
// the metadata byte. Always at most [MaxAuxiliary].
func (immediate Immediate) Len() int {
	return int(immediate[metadataIndex]>>lengthShift) & MaxAuxiliary
}

// Auxiliary returns the auxiliary data. The slice is backed by a copy
// of the address, so writing to it does not change the receiver.
func (immediate Immediate) Auxiliary() []byte {
	length := immediate.Len()
	return immediate[:length:length]
}

// AuxiliaryMut returns the auxiliary data as a slice that aliases the
// address. Writes through it change the value in place; its length
// and capacity are both the auxiliary length, so the padding and
// metadata byte cannot be reached through it (append reallocates).
//
// Any two Immediates with the same auxiliary length share the same
// padding and metadata, so rewriting these bytes always leaves a
// well-formed Immediate. The caller must not hold this slice while
// another goroutine reads the same Immediate.
func (immediate *Immediate) AuxiliaryMut() []byte {
	length := immediate.Len()
	return immediate[:length:length]
}

// Address returns the Immediate as an [Address].
func (immediate Immediate) Address() Address {
	return Address(immediate)
}

// String returns the hex encoding of all 32 bytes.
func (immediate Immediate) String() string {
	return hex.EncodeToString(immediate[:])
}
