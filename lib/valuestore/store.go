// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package valuestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/smith/lib/address"
	"github.com/bureau-foundation/smith/lib/codec"
	"github.com/bureau-foundation/smith/lib/refhash"
)

// ErrNotFound is returned when a Reference is not in the store.
var ErrNotFound = errors.New("value not found")

// ErrCorrupt is returned when a stored record does not decode or does
// not hash back to its Reference.
var ErrCorrupt = errors.New("stored value is corrupt")

// Value is a stored value: auxiliary bytes plus the addresses of its
// children.
type Value struct {
	Auxiliary []byte
	Children  []address.Address
}

// record is the stored encoding of a Value. Children are raw arrays
// because they were validated on the way in and the record hash is
// verified on the way out.
type record struct {
	Auxiliary []byte     `cbor:"auxiliary"`
	Children  [][32]byte `cbor:"children,omitempty"`
}

// entry is one stored record.
type entry struct {
	compression Compression
	size        int
	data        []byte
}

// Options configures a Store.
type Options struct {
	// Compression is applied to each record at least
	// CompressionThreshold bytes long after CBOR encoding. Zero value
	// is CompressionAuto.
	Compression Compression

	// CompressionThreshold is the encoded size below which records
	// are stored uncompressed. Zero means DefaultCompressionThreshold.
	CompressionThreshold int

	// Logger receives debug records for stores and warnings for
	// corrupt entries. Nil discards.
	Logger *slog.Logger
}

// DefaultCompressionThreshold is used when Options leaves it zero.
const DefaultCompressionThreshold = 128

// Stats summarizes the store's contents.
type Stats struct {
	// Entries is the number of stored records.
	Entries int

	// EncodedBytes is the total CBOR-encoded size of all records.
	EncodedBytes int64

	// StoredBytes is the total size after compression.
	StoredBytes int64
}

// Store holds values that need a Reference.
type Store struct {
	compression Compression
	threshold   int
	logger      *slog.Logger

	mu      sync.RWMutex
	entries map[address.Reference]entry
	stats   Stats
}

// New creates an empty Store.
func New(options Options) *Store {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	threshold := options.CompressionThreshold
	if threshold <= 0 {
		threshold = DefaultCompressionThreshold
	}
	return &Store{
		compression: options.Compression,
		threshold:   threshold,
		logger:      logger,
		entries:     make(map[address.Reference]entry),
	}
}

// Put stores value if needed and returns its address. Every child
// must be a valid address; it does not need to be in this store.
// Putting the same value twice returns the same address and stores it
// once.
func (store *Store) Put(ctx context.Context, value Value) (address.Address, error) {
	if err := ctx.Err(); err != nil {
		return address.Address{}, err
	}

	if len(value.Children) == 0 {
		if immediate, ok := address.ImmediateFromAuxiliary(value.Auxiliary); ok {
			return immediate.Address(), nil
		}
	}

	children := make([][32]byte, len(value.Children))
	for index, child := range value.Children {
		if err := child.Validate(); err != nil {
			return address.Address{}, fmt.Errorf("child %d: %w", index, err)
		}
		children[index] = child
	}

	reference := refhash.HashValue(value.Auxiliary, value.Children)

	store.mu.RLock()
	_, exists := store.entries[reference]
	store.mu.RUnlock()
	if exists {
		return reference.Address(), nil
	}

	encoded, err := codec.Marshal(record{Auxiliary: value.Auxiliary, Children: children})
	if err != nil {
		return address.Address{}, fmt.Errorf("encoding value %s: %w", refhash.FormatRef(reference), err)
	}

	compression := CompressionNone
	if len(encoded) >= store.threshold {
		compression = store.compression
	}
	data, compression, err := compress(encoded, compression)
	if err != nil {
		return address.Address{}, fmt.Errorf("compressing value %s: %w", refhash.FormatRef(reference), err)
	}

	store.mu.Lock()
	if _, exists := store.entries[reference]; !exists {
		store.entries[reference] = entry{compression: compression, size: len(encoded), data: data}
		store.stats.Entries++
		store.stats.EncodedBytes += int64(len(encoded))
		store.stats.StoredBytes += int64(len(data))
	}
	store.mu.Unlock()

	store.logger.Debug("stored value",
		"ref", refhash.FormatRef(reference),
		"auxiliary_bytes", len(value.Auxiliary),
		"children", len(value.Children),
		"compression", compression.String(),
		"stored_bytes", len(data),
	)
	return reference.Address(), nil
}

// Get returns the value named by addr. Immediates are decoded without
// touching the store. The returned slices are not shared with the
// store.
func (store *Store) Get(ctx context.Context, addr address.Address) (Value, error) {
	if err := ctx.Err(); err != nil {
		return Value{}, err
	}

	immediate, reference, isImmediate := addr.AsImmediate()
	if isImmediate {
		if err := immediate.Validate(); err != nil {
			return Value{}, err
		}
		return Value{Auxiliary: immediate.Auxiliary()}, nil
	}
	return store.resolve(reference)
}

// Has reports whether addr can be resolved without error: always for
// a valid Immediate, and for a Reference only when it is stored.
func (store *Store) Has(addr address.Address) bool {
	_, reference, isImmediate := addr.AsImmediate()
	if isImmediate {
		return addr.Validate() == nil
	}
	store.mu.RLock()
	defer store.mu.RUnlock()
	_, exists := store.entries[reference]
	return exists
}

// Stats returns a snapshot of the store's size.
func (store *Store) Stats() Stats {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.stats
}

// resolve loads, decodes, and verifies a stored record.
func (store *Store) resolve(reference address.Reference) (Value, error) {
	store.mu.RLock()
	stored, exists := store.entries[reference]
	store.mu.RUnlock()
	if !exists {
		return Value{}, fmt.Errorf("%s: %w", refhash.FormatRef(reference), ErrNotFound)
	}

	encoded, err := decompress(stored.data, stored.compression, stored.size)
	if err != nil {
		return Value{}, store.corrupt(reference, err)
	}
	var decoded record
	if err := codec.Unmarshal(encoded, &decoded); err != nil {
		return Value{}, store.corrupt(reference, err)
	}

	value := Value{Auxiliary: decoded.Auxiliary}
	if len(decoded.Children) > 0 {
		value.Children = make([]address.Address, len(decoded.Children))
		for index, child := range decoded.Children {
			value.Children[index] = address.Address(child)
		}
	}
	if got := refhash.HashValue(value.Auxiliary, value.Children); got != reference {
		return Value{}, store.corrupt(reference, fmt.Errorf("content hashes to %s", refhash.FormatRef(got)))
	}
	return value, nil
}

func (store *Store) corrupt(reference address.Reference, cause error) error {
	store.logger.Warn("corrupt stored value",
		"ref", refhash.FormatRef(reference),
		"error", cause,
	)
	return fmt.Errorf("%s: %w: %w", refhash.FormatRef(reference), ErrCorrupt, cause)
}
