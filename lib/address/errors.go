// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package address

import "errors"

// ErrMalformedAddress is wrapped by every error returned for bytes
// that are not a valid address: wrong length, reserved or tag bits set
// wrong, or nonzero padding in an Immediate.
var ErrMalformedAddress = errors.New("malformed address")

// ErrOversizedAuxiliary is wrapped by the error returned when more
// than [MaxAuxiliary] bytes are asked to be stored inline.
var ErrOversizedAuxiliary = errors.New("auxiliary data too large for an immediate address")
