// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import (
	"context"
	"testing"
	"time"
)

func TestShutdownTrigger(t *testing.T) {
	var s Shutdown
	if s.Requested() {
		t.Fatal("zero Shutdown is requested")
	}
	select {
	case <-s.Done():
		t.Fatal("Done closed before Trigger")
	default:
	}
	s.Trigger()
	s.Trigger()
	if !s.Requested() {
		t.Fatal("Trigger did not set the flag")
	}
	<-s.Done()
}

func TestShutdownWatchContext(t *testing.T) {
	var s Shutdown
	ctx, cancel := context.WithCancel(context.Background())
	stop := s.WatchContext(ctx)
	defer stop()
	cancel()
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context cancellation did not trigger shutdown")
	}
}

func TestShutdownWatchStop(t *testing.T) {
	var s Shutdown
	ctx, cancel := context.WithCancel(context.Background())
	stop := s.WatchContext(ctx)
	stop()
	stop()
	cancel()
	time.Sleep(20 * time.Millisecond)
	if s.Requested() {
		t.Fatal("stopped watcher triggered shutdown")
	}
}
