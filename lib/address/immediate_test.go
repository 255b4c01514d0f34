// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"bytes"
	"errors"
	"testing"
)

const lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing elit."

func TestEmpty(t *testing.T) {
	if got := Empty.Auxiliary(); len(got) != 0 {
		t.Errorf("Empty.Auxiliary() = %x, want empty", got)
	}
	want := [Size]byte{31: 0x01}
	if *Empty.Bytes() != want {
		t.Errorf("Empty.Bytes() = %x, want %x", *Empty.Bytes(), want)
	}
	if err := Empty.Validate(); err != nil {
		t.Errorf("Empty.Validate() = %v", err)
	}
	encoded, ok := ImmediateFromAuxiliary(nil)
	if !ok {
		t.Fatal("ImmediateFromAuxiliary(nil) failed")
	}
	if encoded != Empty {
		t.Errorf("ImmediateFromAuxiliary(nil) = %s, want Empty", encoded)
	}
}

func TestImmediateHelloWorld(t *testing.T) {
	immediate, ok := ImmediateFromAuxiliary([]byte("Hello, world!"))
	if !ok {
		t.Fatal("ImmediateFromAuxiliary(\"Hello, world!\") failed")
	}
	raw := immediate.Array()
	if !bytes.Equal(raw[:13], []byte("Hello, world!")) {
		t.Errorf("auxiliary bytes = %q", raw[:13])
	}
	for index := 13; index < 31; index++ {
		if raw[index] != 0 {
			t.Errorf("padding byte %d = %#02x, want 0", index, raw[index])
		}
	}
	if raw[31] != 0x35 {
		t.Errorf("metadata byte = %#02x, want 0x35", raw[31])
	}

	decoded, ok := ImmediateFromBytes(&raw)
	if !ok {
		t.Fatal("ImmediateFromBytes rejected an encoded immediate")
	}
	if got := string(decoded.Auxiliary()); got != "Hello, world!" {
		t.Errorf("Auxiliary() = %q, want %q", got, "Hello, world!")
	}
}

func TestImmediateRoundTripAllLengths(t *testing.T) {
	for length := 0; length <= MaxAuxiliary; length++ {
		auxiliary := make([]byte, length)
		for index := range auxiliary {
			// Nonzero so a bad length or offset can't hide in the padding.
			auxiliary[index] = byte(0xA0 + index)
		}

		immediate, ok := ImmediateFromAuxiliary(auxiliary)
		if !ok {
			t.Fatalf("ImmediateFromAuxiliary(%d bytes) failed", length)
		}
		raw := immediate.Array()
		decoded, ok := ImmediateFromBytes(&raw)
		if !ok {
			t.Fatalf("ImmediateFromBytes rejected %d-byte immediate %x", length, raw)
		}
		if got := decoded.Auxiliary(); !bytes.Equal(got, auxiliary) {
			t.Errorf("round trip of %d bytes = %x, want %x", length, got, auxiliary)
		}
		if decoded.Len() != length {
			t.Errorf("Len() = %d, want %d", decoded.Len(), length)
		}
		if kind := decoded.Address().Kind(); kind != KindImmediate {
			t.Errorf("Kind() = %v, want immediate", kind)
		}
	}
}

func TestImmediateFromAuxiliaryOversized(t *testing.T) {
	for _, length := range []int{32, 33, 57, 1024} {
		if _, ok := ImmediateFromAuxiliary(make([]byte, length)); ok {
			t.Errorf("ImmediateFromAuxiliary(%d bytes) succeeded, want failure", length)
		}
	}
	if _, ok := ImmediateFromAuxiliary([]byte(lorem)); ok {
		t.Errorf("ImmediateFromAuxiliary(%d-byte lorem) succeeded, want failure", len(lorem))
	}

	_, err := NewImmediate([]byte(lorem))
	if !errors.Is(err, ErrOversizedAuxiliary) {
		t.Errorf("NewImmediate(lorem) error = %v, want ErrOversizedAuxiliary", err)
	}
}

func TestImmediateFromBytesMalformed(t *testing.T) {
	tests := []struct {
		name  string
		bytes [Size]byte
	}{
		{"reserved bit 1 set", [Size]byte{31: 0b0000_0011}},
		{"reserved bit 7 set", [Size]byte{31: 0b1000_0001}},
		{"tag bit clear", [Size]byte{31: 0b0000_0000}},
		{"padding byte 5 set with length 2", [Size]byte{0: 'h', 1: 'i', 5: 1, 31: 2<<2 | 1}},
		{"last padding byte set with length 0", [Size]byte{30: 0xFF, 31: 0x01}},
		{"first padding byte set with length 30", func() [Size]byte {
			var raw [Size]byte
			raw[30] = 1
			raw[31] = 30<<2 | 1
			return raw
		}()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw := test.bytes
			if _, ok := ImmediateFromBytes(&raw); ok {
				t.Errorf("ImmediateFromBytes(%x) succeeded, want failure", raw)
			}
			if err := Immediate(raw).Validate(); !errors.Is(err, ErrMalformedAddress) {
				t.Errorf("Validate() = %v, want ErrMalformedAddress", err)
			}
		})
	}
}

func TestImmediateFromBytesAliases(t *testing.T) {
	raw := [Size]byte{0: 'a', 31: 1<<2 | 1}
	view, ok := ImmediateFromBytes(&raw)
	if !ok {
		t.Fatal("ImmediateFromBytes rejected a valid immediate")
	}
	view.AuxiliaryMut()[0] = 'z'
	if raw[0] != 'z' {
		t.Errorf("write through view did not reach the underlying bytes: %q", raw[0])
	}
	if view.Bytes() != &raw {
		t.Error("Bytes() does not alias the decoded array")
	}
}

func TestImmediateFromBytesUnchecked(t *testing.T) {
	immediate, _ := ImmediateFromAuxiliary([]byte("trusted"))
	raw := immediate.Array()
	view := ImmediateFromBytesUnchecked(&raw)
	if got := string(view.Auxiliary()); got != "trusted" {
		t.Errorf("Auxiliary() = %q, want %q", got, "trusted")
	}
}

func TestAuxiliaryMut(t *testing.T) {
	immediate, _ := ImmediateFromAuxiliary([]byte("abcdef"))
	before := immediate.Array()

	payload := immediate.AuxiliaryMut()
	if len(payload) != 6 || cap(payload) != 6 {
		t.Fatalf("AuxiliaryMut() len=%d cap=%d, want 6 and 6", len(payload), cap(payload))
	}
	copy(payload, "ABCDEF")
	// Appending must reallocate instead of writing padding.
	_ = append(payload, 'X', 'Y')

	if got := string(immediate.Auxiliary()); got != "ABCDEF" {
		t.Errorf("Auxiliary() after mutation = %q, want %q", got, "ABCDEF")
	}
	if immediate.Len() != 6 {
		t.Errorf("Len() after mutation = %d, want 6", immediate.Len())
	}
	after := immediate.Array()
	if !bytes.Equal(after[6:], before[6:]) {
		t.Errorf("bytes outside the payload changed: %x -> %x", before[6:], after[6:])
	}
	if err := immediate.Validate(); err != nil {
		t.Errorf("Validate() after mutation = %v", err)
	}
}

func TestAuxiliaryIsCopy(t *testing.T) {
	immediate, _ := ImmediateFromAuxiliary([]byte("keep"))
	immediate.Auxiliary()[0] = 'X'
	if got := string(immediate.Auxiliary()); got != "keep" {
		t.Errorf("Auxiliary() = %q after writing to a previous result, want %q", got, "keep")
	}
}

func TestEqualAuxiliaryGivesEqualImmediates(t *testing.T) {
	first, _ := ImmediateFromAuxiliary([]byte{1, 2, 3})
	second, _ := ImmediateFromAuxiliary([]byte{1, 2, 3})
	if first != second {
		t.Errorf("equal auxiliary encoded differently: %s vs %s", first, second)
	}
	third, _ := ImmediateFromAuxiliary([]byte{1, 2, 3, 0})
	if first == third {
		t.Error("trailing zero byte must change the length and hence the address")
	}
}
