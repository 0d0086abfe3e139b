// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import "testing"

func TestReordered(t *testing.T) {
	for _, c := range []struct {
		r1, r2 int64
		want   bool
	}{
		{0, 0, true},
		{0, 1, false},
		{1, 0, false},
		{1, 1, false},
	} {
		if got := Reordered(c.r1, c.r2); got != c.want {
			t.Fatalf("Reordered(%d, %d) got %v; want %v", c.r1, c.r2, got, c.want)
		}
	}
}

func TestDetectorTally(t *testing.T) {
	var d Detector
	regs := [][2]int64{{1, 0}, {0, 0}, {1, 1}, {0, 1}, {0, 0}, {0, 0}}
	prev := d.Tally()
	want := 0
	for i, r := range regs {
		det, ok := d.Observe(RoundResult{Round: i + 1, R1: r[0], R2: r[1]})
		if ok != Reordered(r[0], r[1]) {
			t.Fatalf("round %d: got detection %v", i+1, ok)
		}
		if ok {
			want++
			if det.Count != want || det.Round != i+1 {
				t.Fatalf("round %d: got %+v; want count %d", i+1, det, want)
			}
		}
		tl := d.Tally()
		if tl.Rounds != i+1 || tl.Reorders != want {
			t.Fatalf("round %d: got %+v", i+1, tl)
		}
		if tl.Reorders > tl.Rounds || tl.Rounds < prev.Rounds || tl.Reorders < prev.Reorders {
			t.Fatalf("round %d: tally %+v after %+v", i+1, tl, prev)
		}
		prev = tl
	}
}

func TestDetectorPlacement(t *testing.T) {
	var d Detector
	d.Observe(RoundResult{R1: 1, PlaceA: Placement{CPU: 3}, PlaceB: Placement{CPU: 3}})
	d.Observe(RoundResult{R1: 1, PlaceA: Placement{CPU: 1, Node: 0}, PlaceB: Placement{CPU: 9, Node: 1}})
	d.Observe(RoundResult{R1: 1, PlaceA: Placement{CPU: 1}, PlaceB: Placement{CPU: 2}})
	tl := d.Tally()
	if tl.SameCPU != 1 || tl.CrossNode != 1 || tl.Rounds != 3 || tl.Reorders != 0 {
		t.Fatalf("got %+v", tl)
	}
}

func TestDelaySpin(t *testing.T) {
	if n := (Delay{}).Spin(); n != 1 {
		t.Fatalf("got %d draws; want 1", n)
	}
	d := Delay{Max: 7, Sentinel: 7}
	for i := 0; i < 1000; i++ {
		if n := d.Spin(); n < 1 {
			t.Fatalf("got %d draws", n)
		}
	}
}
