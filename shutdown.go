// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// Shutdown is a one-way flag: it starts clear, is set by the first Trigger
// and is never cleared. The harness polls it between rounds.
//
// The zero value is ready to use.
type Shutdown struct {
	noCopy noCopy

	set  atomic.Bool
	once sync.Once
	mu   sync.Mutex
	ch   chan struct{}
}

// Trigger sets the flag. Calls after the first are no-ops.
func (s *Shutdown) Trigger() {
	s.once.Do(func() {
		s.set.Store(true)
		close(s.done())
	})
}

// Requested reports whether Trigger has been called.
func (s *Shutdown) Requested() bool {
	return s.set.Load()
}

// Done returns a channel that is closed by the first Trigger.
func (s *Shutdown) Done() <-chan struct{} {
	return s.done()
}

func (s *Shutdown) done() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// WatchContext triggers s when ctx is done. The returned stop function
// releases the watcher without triggering.
func (s *Shutdown) WatchContext(ctx context.Context) (stop func()) {
	return watch[struct{}](s, ctx.Done())
}

// NotifySignals triggers s when the process receives any of sigs, or
// os.Interrupt and SIGTERM if none are given. The returned stop function
// restores the default signal behaviour.
func (s *Shutdown) NotifySignals(sigs ...os.Signal) (stop func()) {
	if len(sigs) == 0 {
		// signal.Notify with no signals would also relay SIGURG, which
		// the runtime sends itself for goroutine preemption.
		sigs = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	c := make(chan os.Signal, 1)
	signal.Notify(c, sigs...)
	stopWatch := watch[os.Signal](s, c)
	return func() {
		signal.Stop(c)
		stopWatch()
	}
}

// watch triggers s on the first receive from c. stop returns once the
// watcher has exited; a receive after stop never triggers s.
func watch[T any](s *Shutdown, c <-chan T) (stop func()) {
	quit := make(chan struct{})
	exited := make(chan struct{})
	var once sync.Once
	go func() {
		defer close(exited)
		select {
		case <-c:
			s.Trigger()
		case <-quit:
		case <-s.Done():
		}
	}()
	return func() {
		once.Do(func() { close(quit) })
		<-exited
	}
}
