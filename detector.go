// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

// RoundResult is everything the coordinator observed about one round.
type RoundResult struct {
	Round int // 1-based round index

	// A and B are the cells as seen by the coordinator after both racers
	// signalled done. With the real bodies both are 1.
	A, B int64

	R1 int64 // racer A's read of B
	R2 int64 // racer B's read of A

	PlaceA, PlaceB Placement
}

// Reordered reports whether a round witnessed store->load reordering:
// both racers read 0 from the partner's cell although both cells were
// written. No sequentially consistent interleaving of
//
//	A = 1; r1 = B    ||    B = 1; r2 = A
//
// produces r1 == r2 == 0.
//
// A single zero is not flagged; it is indistinguishable from one racer
// simply running first.
func Reordered(r1, r2 int64) bool {
	return r1 == 0 && r2 == 0
}

// Tally is the running count of a harness run. Rounds >= Reorders always
// holds and both only grow.
type Tally struct {
	Rounds   int `json:"rounds"`
	Reorders int `json:"reorders"`

	// SameCPU counts rounds where both bodies ran on the same CPU, where no
	// reorder can be observed.
	SameCPU int `json:"sameCPU"`
	// CrossNode counts rounds where the bodies ran on different NUMA nodes.
	CrossNode int `json:"crossNode"`
}

// Detection is reported for every round classified as a reorder.
type Detection struct {
	Count  int // reorders detected so far, including this one
	Round  int
	Result RoundResult
}

// Detector classifies rounds and keeps the Tally. It is owned by the
// coordinator goroutine.
type Detector struct {
	tally Tally
}

// Observe classifies res and updates the tally. Every call counts as one
// completed round.
func (d *Detector) Observe(res RoundResult) (Detection, bool) {
	d.tally.Rounds++
	if res.PlaceA.CPU == res.PlaceB.CPU {
		d.tally.SameCPU++
	}
	if res.PlaceA.Node != res.PlaceB.Node {
		d.tally.CrossNode++
	}
	if !Reordered(res.R1, res.R2) {
		return Detection{}, false
	}
	d.tally.Reorders++
	return Detection{Count: d.tally.Reorders, Round: res.Round, Result: res}, true
}

// Tally returns the counts so far.
func (d *Detector) Tally() Tally {
	return d.tally
}
