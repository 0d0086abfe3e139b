// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// FlagPair is the shared state of one litmus round: racer A writes A and
// reads B, racer B writes B and reads A.
//
// The cells are deliberately unsynchronized. The only ordering the harness
// provides is reset-before-start and done-before-evaluate; the order of a
// racer's write relative to its partner's read is what is being measured.
type FlagPair struct {
	_ cpu.CacheLinePad
	A int64
	_ cpu.CacheLinePad
	B int64
	_ cpu.CacheLinePad
}

// Reset stores 0 to both cells. It must be called while both racers are
// parked on their start signals.
func (f *FlagPair) Reset() {
	atomic.StoreInt64(&f.A, 0)
	atomic.StoreInt64(&f.B, 0)
}

// Load returns the current cells. It must be called after both racers
// have signalled done.
func (f *FlagPair) Load() (a, b int64) {
	return atomic.LoadInt64(&f.A), atomic.LoadInt64(&f.B)
}
