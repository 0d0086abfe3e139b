// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import "sync"

// Signal is a binary semaphore used as a one-way rendezvous between two
// goroutines. Wait blocks until a permit is available and consumes it;
// Signal makes a permit available and wakes one waiter.
//
// At most one permit is outstanding: signalling an already signalled
// Signal is legal and still satisfies exactly one later Wait. The harness
// always pairs Signal and Wait 1:1 per round.
//
// The zero value has no permit and is ready to use.
// A Signal must not be copied after first use.
type Signal struct {
	noCopy noCopy

	mu     sync.Mutex
	cond   sync.Cond
	permit bool
}

// Wait blocks the calling goroutine until a permit is present, then
// consumes it.
func (s *Signal) Wait() {
	s.mu.Lock()
	if s.cond.L == nil {
		s.cond.L = &s.mu
	}
	// cond.Wait may return without a permit; re-check the predicate.
	for !s.permit {
		s.cond.Wait()
	}
	s.permit = false
	s.mu.Unlock()
}

// Signal makes one permit available and wakes one waiter, if any.
func (s *Signal) Signal() {
	s.mu.Lock()
	if s.cond.L == nil {
		s.cond.L = &s.mu
	}
	s.permit = true
	s.mu.Unlock()
	s.cond.Signal()
}

// noCopy may be embedded into structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
