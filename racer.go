// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import (
	"fmt"

	"github.com/lrita/numa"
)

// Delay describes the random spin a racer performs before its body. Each
// iteration draws uniformly from [0, Max]; the spin ends when the draw
// equals Sentinel.
type Delay struct {
	Max      uint32 `json:"max"`
	Sentinel uint32 `json:"sentinel"`
}

// Spin busy-waits for a random number of draws and returns how many draws
// it took. It never yields the processor: the point is to shift the two
// racers' instruction timing relative to each other, which a sleep or a
// scheduler yield would swamp.
func (d Delay) Spin() (n int) {
	span := d.Max + 1
	for {
		n++
		var x uint32
		if span != 0 {
			x = fastrand() % span
		}
		if x == d.Sentinel {
			return n
		}
	}
}

// Placement is where a racer executed its body.
type Placement struct {
	CPU  int
	Node int
}

// racer is one side of the litmus test. Its fields other than start and
// done are written only by the racer goroutine between its start Wait and
// its done Signal, and read by the coordinator only after the done Wait.
type racer struct {
	name  string
	body  Body
	delay Delay
	cpu   int // CPU to pin to, or -1

	start Signal
	done  Signal

	reg   int64 // value read from the partner's cell
	place Placement
}

// run is the racer goroutine. ready receives the pinning result before the
// first round.
func (r *racer) run(flags *FlagPair, exit *Shutdown, ready chan<- error) {
	err := pinThread(r.cpu)
	if err != nil {
		err = fmt.Errorf("racer %s: %w", r.name, err)
	}
	ready <- err
	for {
		r.start.Wait()
		if exit.Requested() {
			r.done.Signal()
			return
		}

		runtime_procPin()
		r.delay.Spin()
		r.reg = r.body(flags)
		r.place.CPU, r.place.Node = numa.GetCPUAndNode()
		runtime_procUnpin()

		r.done.Signal()
	}
}
