// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import (
	"fmt"
	"sync/atomic"
)

// Variant selects how the racers access the FlagPair.
type Variant int

const (
	// Plain uses ordinary loads and stores. The hardware (and the compiler)
	// may let a racer's load complete before its store is visible to the
	// other CPU, so store->load reordering is observable.
	Plain Variant = iota
	// Atomic uses sync/atomic loads and stores. Go atomics are sequentially
	// consistent, which makes this the control run: no round can observe a
	// reorder.
	Atomic
)

// Body is one racer's half of a round: write its own cell, read the
// partner's cell and return the value read.
type Body func(f *FlagPair) int64

func (v Variant) String() string {
	switch v {
	case Plain:
		return "plain"
	case Atomic:
		return "atomic"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	switch v {
	case Plain, Atomic:
		return []byte(v.String()), nil
	}
	return nil, fmt.Errorf("%w: unknown variant %d", ErrInvalidConfig, int(v))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	switch string(text) {
	case "plain":
		*v = Plain
	case "atomic":
		*v = Atomic
	default:
		return fmt.Errorf("%w: unknown variant %q (want plain or atomic)", ErrInvalidConfig, text)
	}
	return nil
}

// Bodies returns the racer A and racer B bodies of v.
func (v Variant) Bodies() (a, b Body) {
	if v == Atomic {
		return atomicBodyA, atomicBodyB
	}
	return plainBodyA, plainBodyB
}

// The plain bodies race by construction; keep them out of the race
// detector's instrumentation and out of the caller's inlined code.

//go:norace
//go:noinline
func plainBodyA(f *FlagPair) int64 {
	f.A = 1
	return f.B
}

//go:norace
//go:noinline
func plainBodyB(f *FlagPair) int64 {
	f.B = 1
	return f.A
}

func atomicBodyA(f *FlagPair) int64 {
	atomic.StoreInt64(&f.A, 1)
	return atomic.LoadInt64(&f.B)
}

func atomicBodyB(f *FlagPair) int64 {
	atomic.StoreInt64(&f.B, 1)
	return atomic.LoadInt64(&f.A)
}
