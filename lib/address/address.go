// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"encoding/hex"
	"fmt"
)

// Kind identifies which interpretation applies to an [Address].
type Kind uint8

const (
	// KindReference is an address whose tag bit is clear.
	KindReference Kind = iota

	// KindImmediate is an address whose tag bit is set.
	KindImmediate
)

// String returns "immediate" or "reference".
func (kind Kind) String() string {
	switch kind {
	case KindImmediate:
		return "immediate"
	case KindReference:
		return "reference"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(kind))
	}
}

// Address is a 32-byte value address, either an [Immediate] or a
// [Reference]. Both are reinterpretations of the same bytes; only the
// tag bit says which one applies. Two Addresses are equal exactly when
// their bytes are, so Address works as a map key.
type Address [Size]byte

// Kind reads the tag bit.
func (address Address) Kind() Kind {
	if address[metadataIndex]&tagBit != 0 {
		return KindImmediate
	}
	return KindReference
}

// AsImmediate returns the Immediate interpretation and true when the
// tag bit is set, or the Reference interpretation and false when it
// is clear. Both results are copies; only the one selected by the
// boolean is meaningful.
func (address Address) AsImmediate() (Immediate, Reference, bool) {
	if address.Kind() == KindImmediate {
		return Immediate(address), Reference{}, true
	}
	return Immediate{}, Reference(address), false
}

// AsExternal is the complement of [Address.AsImmediate]: the Reference
// interpretation and true when the tag bit is clear, otherwise the
// Immediate interpretation and false.
func (address Address) AsExternal() (Reference, Immediate, bool) {
	immediate, reference, isImmediate := address.AsImmediate()
	return reference, immediate, !isImmediate
}

// AsImmediateMut returns a mutable view of the address. Exactly one of
// the results is non-nil, and it aliases the address's bytes. The
// caller must not read or write the address through any other path
// while holding the view.
func (address *Address) AsImmediateMut() (*Immediate, *Reference) {
	if address.Kind() == KindImmediate {
		return (*Immediate)(address), nil
	}
	return nil, (*Reference)(address)
}

// AsExternalMut is the complement of [Address.AsImmediateMut], with
// the same exclusivity rule.
func (address *Address) AsExternalMut() (*Reference, *Immediate) {
	immediate, reference := address.AsImmediateMut()
	return reference, immediate
}

// Bytes returns the 32-byte representation regardless of kind.
func (address *Address) Bytes() *[Size]byte {
	return (*[Size]byte)(address)
}

// Equal reports whether two addresses have identical bytes. Same as ==.
func (address Address) Equal(other Address) bool {
	return address == other
}

// Validate returns an error wrapping [ErrMalformedAddress] if the
// address is an Immediate that is not in canonical form. References
// carry no constraint beyond the tag bit and always pass.
func (address Address) Validate() error {
	if address.Kind() == KindReference {
		return nil
	}
	return checkImmediate((*[Size]byte)(&address))
}

// FromBytes copies data into an Address and validates it. data must be
// exactly [Size] bytes.
func FromBytes(data []byte) (Address, error) {
	if len(data) != Size {
		return Address{}, fmt.Errorf("address is %d bytes, want %d: %w", len(data), Size, ErrMalformedAddress)
	}
	address := Address(data)
	if err := address.Validate(); err != nil {
		return Address{}, err
	}
	return address, nil
}

// Parse decodes the 64-character hex form produced by [Address.String].
func Parse(hexString string) (Address, error) {
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return Address{}, fmt.Errorf("parsing address: %w: %w", ErrMalformedAddress, err)
	}
	return FromBytes(decoded)
}

// String returns the hex encoding of all 32 bytes.
func (address Address) String() string {
	return hex.EncodeToString(address[:])
}
