// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// Summary is the aggregate result of one harness run.
type Summary struct {
	RunID       uuid.UUID
	Variant     Variant
	Tally       Tally
	Elapsed     time.Duration
	Interrupted bool // shutdown was requested before all rounds ran
}

// Rate returns the fraction of completed rounds that detected a reorder.
func (s Summary) Rate() float64 {
	if s.Tally.Rounds == 0 {
		return 0
	}
	return float64(s.Tally.Reorders) / float64(s.Tally.Rounds)
}

// OneIn returns n such that about one in every n rounds detected a
// reorder, or 0 if none did.
func (s Summary) OneIn() int {
	if s.Tally.Reorders == 0 {
		return 0
	}
	return int(float64(s.Tally.Rounds)/float64(s.Tally.Reorders) + 0.5)
}

// Reporter consumes the events of a run, in order, exactly once.
// Reorder is called from the coordinator goroutine for every detection and
// Finish once after the racers have stopped.
type Reporter interface {
	Reorder(d Detection)
	Finish(s Summary)
}

// Reporters fans events out to each reporter in order.
type Reporters []Reporter

func (rs Reporters) Reorder(d Detection) {
	for _, r := range rs {
		r.Reorder(d)
	}
}

func (rs Reporters) Finish(s Summary) {
	for _, r := range rs {
		r.Finish(s)
	}
}

// LogReporter writes human readable lines to Logger.
type LogReporter struct {
	Logger *log.Logger
	// Verbose adds the cells, registers and placement to every detection.
	Verbose bool
}

func (l *LogReporter) Reorder(d Detection) {
	l.Logger.Printf("%d reorders detected after %d iterations", d.Count, d.Round)
	if l.Verbose {
		r := &d.Result
		l.Logger.Printf("    A=%d, B=%d, r1=%d, r2=%d, cpus=%d/%d, nodes=%d/%d",
			r.A, r.B, r.R1, r.R2, r.PlaceA.CPU, r.PlaceB.CPU, r.PlaceA.Node, r.PlaceB.Node)
	}
}

func (l *LogReporter) Finish(s Summary) {
	t := s.Tally
	if s.Interrupted {
		l.Logger.Printf("run %s interrupted after %d iterations", s.RunID, t.Rounds)
	}
	l.Logger.Printf("Total %d reorders detected after %d iterations (%s)", t.Reorders, t.Rounds, s.Variant)
	if n := s.OneIn(); n > 0 {
		l.Logger.Printf("That's about 1 in every %d executions or %4.2f%%", n, 100*s.Rate())
	}
	if l.Verbose {
		l.Logger.Printf("same cpu: %d, cross node: %d", t.SameCPU, t.CrossNode)
	}
	l.Logger.Printf("Total time: %d milliseconds", s.Elapsed.Milliseconds())
}
