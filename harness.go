// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import (
	"context"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Harness runs the store->load litmus test: two racer goroutines and the
// coordinator that drives them round by round.
//
// Each round the coordinator resets the FlagPair, releases both racers,
// waits for both to finish and classifies the pair of values they read.
// The only happens-before edges inside a round are reset -> start and
// done -> evaluate; nothing orders one racer's store against the other
// racer's load.
//
// A Harness runs once.
type Harness struct {
	cfg      Config
	logger   *log.Logger
	reporter Reporters
	onRound  func(RoundResult)

	shutdown Shutdown // polled by the coordinator before every round
	exit     Shutdown // polled by the racers, set only by release
	flags    FlagPair
	racers   [2]racer
	det      Detector
	ran      atomic.Bool
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger for diagnostics. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithReporter adds r to the reporters receiving detections and the
// final summary.
func WithReporter(r Reporter) Option {
	return func(h *Harness) { h.reporter = append(h.reporter, r) }
}

// WithOnRound calls fn with the result of every evaluated round, on the
// coordinator goroutine, before the round is classified.
func WithOnRound(fn func(RoundResult)) Option {
	return func(h *Harness) { h.onRound = fn }
}

// New returns a Harness for cfg.
func New(cfg Config, opts ...Option) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &Harness{
		cfg:    cfg,
		logger: log.New(io.Discard, "", 0),
	}
	a, b := cfg.Variant.Bodies()
	h.racers[0] = racer{name: "A", body: a, delay: cfg.Delay, cpu: -1}
	h.racers[1] = racer{name: "B", body: b, delay: cfg.Delay, cpu: -1}
	if len(cfg.PinCPUs) == 2 {
		h.racers[0].cpu = cfg.PinCPUs[0]
		h.racers[1].cpu = cfg.PinCPUs[1]
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Shutdown returns the harness's shutdown flag. Triggering it stops the
// run after the round in flight.
func (h *Harness) Shutdown() *Shutdown {
	return &h.shutdown
}

// Run executes up to cfg.Rounds rounds, stopping early when ctx is done or
// the shutdown flag is triggered. It returns once both racers have exited.
//
// The only errors are a repeated Run and a failure to pin a racer to its
// CPU, in which case no round is executed. Detecting no reorders is not an
// error.
func (h *Harness) Run(ctx context.Context) (Summary, error) {
	if !h.ran.CompareAndSwap(false, true) {
		return Summary{}, ErrAlreadyRun
	}
	stop := h.shutdown.WatchContext(ctx)
	defer stop()

	if h.cfg.ProfileRate > 0 {
		old := swapProfileRate(h.cfg.ProfileRate)
		defer swapProfileRate(old)
	}

	sum := Summary{RunID: uuid.New(), Variant: h.cfg.Variant}
	h.logger.Printf("run %s: %d rounds, variant %s, delay [0, %d] until %d",
		sum.RunID, h.cfg.Rounds, h.cfg.Variant, h.cfg.Delay.Max, h.cfg.Delay.Sentinel)

	var wg sync.WaitGroup
	ready := make(chan error, len(h.racers))
	for i := range h.racers {
		r := &h.racers[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.run(&h.flags, &h.exit, ready)
		}()
	}
	var err error
	for range h.racers {
		if e := <-ready; e != nil {
			h.logger.Printf("run %s: %v", sum.RunID, e)
			if err == nil {
				err = e
			}
		}
	}

	begin := time.Now()
	if err == nil {
		sum.Interrupted = h.loop()
	}
	h.release()
	wg.Wait()
	sum.Elapsed = time.Since(begin)
	sum.Tally = h.det.Tally()

	if err != nil {
		return sum, err
	}
	h.reporter.Finish(sum)
	return sum, nil
}

// loop runs the rounds and reports whether it stopped because of a
// shutdown request.
func (h *Harness) loop() (interrupted bool) {
	a, b := &h.racers[0], &h.racers[1]
	for round := 1; round <= h.cfg.Rounds; round++ {
		if h.shutdown.Requested() {
			return true
		}

		h.flags.Reset()

		a.start.Signal()
		b.start.Signal()

		a.done.Wait()
		b.done.Wait()

		res := RoundResult{
			Round:  round,
			R1:     a.reg,
			R2:     b.reg,
			PlaceA: a.place,
			PlaceB: b.place,
		}
		res.A, res.B = h.flags.Load()
		if h.onRound != nil {
			h.onRound(res)
		}
		if d, ok := h.det.Observe(res); ok {
			profileDetection(d)
			h.reporter.Reorder(d)
		}
	}
	return false
}

// release performs the final start/done exchange. Both racers are parked
// on their start signals between rounds; after being released with the
// exit flag set they signal done and return without running their body.
// Racers watch exit, not shutdown, so a shutdown mid-round never cuts the
// round short.
func (h *Harness) release() {
	h.exit.Trigger()
	for i := range h.racers {
		h.racers[i].start.Signal()
	}
	for i := range h.racers {
		h.racers[i].done.Wait()
	}
}
