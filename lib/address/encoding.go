// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"fmt"

	"github.com/bureau-foundation/smith/lib/codec"
)

// MarshalText encodes the address as 64 hex characters. JSON uses this.
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText parses and validates the hex form.
func (address *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*address = parsed
	return nil
}

// MarshalBinary returns the raw 32 bytes.
func (address Address) MarshalBinary() ([]byte, error) {
	return address[:], nil
}

// UnmarshalBinary validates and copies exactly 32 raw bytes.
func (address *Address) UnmarshalBinary(data []byte) error {
	parsed, err := FromBytes(data)
	if err != nil {
		return err
	}
	*address = parsed
	return nil
}

// MarshalCBOR encodes the address as a 32-byte CBOR byte string, the
// on-disk and wire form. Takes precedence over the text form that
// lib/codec would otherwise pick.
func (address Address) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(address[:])
}

// UnmarshalCBOR decodes a CBOR byte string and validates it.
func (address *Address) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := codec.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding address: %w: %w", ErrMalformedAddress, err)
	}
	return address.UnmarshalBinary(raw)
}
