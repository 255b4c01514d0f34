// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package valuestore

import (
	"context"
	"errors"

	"github.com/bureau-foundation/smith/lib/address"
)

// SkipChildren may be returned by a WalkFunc to skip the children of
// the value just visited. Walk itself never returns it.
var SkipChildren = errors.New("skip children")

// WalkFunc is called by [Store.Walk] once per visited value, with the
// value's address and its depth below the root.
type WalkFunc func(addr address.Address, value Value, depth int) error

// Walk visits root and every descendant depth-first, children in
// order. A child reachable along several paths is visited once per
// path. The first error from fn, from resolving a Reference, or from
// ctx stops the walk and is returned.
func (store *Store) Walk(ctx context.Context, root address.Address, fn WalkFunc) error {
	value, err := store.Get(ctx, root)
	if err != nil {
		return err
	}
	return store.walk(ctx, root, value, 0, fn)
}

func (store *Store) walk(ctx context.Context, addr address.Address, value Value, depth int, fn WalkFunc) error {
	if err := fn(addr, value, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	for _, child := range value.Children {
		if err := ctx.Err(); err != nil {
			return err
		}

		var childValue Value
		if child.Kind() == address.KindImmediate {
			// Children come out of verified records and were
			// validated by Put, so the checks can be skipped.
			childValue = Value{Auxiliary: address.ImmediateFromBytesUnchecked(child.Bytes()).Auxiliary()}
		} else {
			_, reference, _ := child.AsImmediate()
			resolved, err := store.resolve(reference)
			if err != nil {
				return err
			}
			childValue = resolved
		}

		if err := store.walk(ctx, child, childValue, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
