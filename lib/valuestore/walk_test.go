// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package valuestore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/smith/lib/address"
)

// buildTree stores root -> {small, middle -> {large}} and returns the
// addresses.
func buildTree(t *testing.T, store *Store) (root, small, middle, large address.Address) {
	t.Helper()
	ctx := context.Background()
	put := func(value Value) address.Address {
		t.Helper()
		addr, err := store.Put(ctx, value)
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
		return addr
	}
	small = put(Value{Auxiliary: []byte("small")})
	large = put(Value{Auxiliary: []byte(strings.Repeat("large ", 10))})
	middle = put(Value{Auxiliary: []byte("middle"), Children: []address.Address{large}})
	root = put(Value{Children: []address.Address{small, middle}})
	return root, small, middle, large
}

func TestWalkVisitsDepthFirst(t *testing.T) {
	store := New(Options{})
	root, small, middle, large := buildTree(t, store)

	type visit struct {
		addr  address.Address
		depth int
	}
	var visits []visit
	err := store.Walk(context.Background(), root, func(addr address.Address, value Value, depth int) error {
		visits = append(visits, visit{addr, depth})
		if addr == small && string(value.Auxiliary) != "small" {
			t.Errorf("small value auxiliary = %q", value.Auxiliary)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []visit{{root, 0}, {small, 1}, {middle, 1}, {large, 2}}
	if len(visits) != len(want) {
		t.Fatalf("Walk visited %d values, want %d", len(visits), len(want))
	}
	for index := range want {
		if visits[index] != want[index] {
			t.Errorf("visit %d = %s at depth %d, want %s at depth %d",
				index, visits[index].addr, visits[index].depth, want[index].addr, want[index].depth)
		}
	}
}

func TestWalkSkipChildren(t *testing.T) {
	store := New(Options{})
	root, _, middle, large := buildTree(t, store)

	err := store.Walk(context.Background(), root, func(addr address.Address, value Value, depth int) error {
		if addr == large {
			t.Error("visited a child of a skipped value")
		}
		if addr == middle {
			return SkipChildren
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
}

func TestWalkStopsOnError(t *testing.T) {
	store := New(Options{})
	root, _, _, _ := buildTree(t, store)
	stop := errors.New("stop")

	count := 0
	err := store.Walk(context.Background(), root, func(address.Address, Value, int) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("Walk error = %v, want the callback's error", err)
	}
	if count != 2 {
		t.Errorf("callback ran %d times, want 2", count)
	}
}

func TestWalkMissingChild(t *testing.T) {
	store := New(Options{})
	missing := address.NewReference([32]byte{0: 0x42}).Address()
	root, err := store.Put(context.Background(), Value{Children: []address.Address{missing}})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	err = store.Walk(context.Background(), root, func(address.Address, Value, int) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Walk error = %v, want ErrNotFound", err)
	}
}
