// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import (
	"testing"
	"time"
)

func TestSignalWaitAfterSignal(t *testing.T) {
	var s Signal
	s.Signal()
	s.Wait() // must not block
}

func TestSignalSaturates(t *testing.T) {
	var s Signal
	s.Signal()
	s.Signal()
	s.Wait()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("second Wait consumed a permit that was never produced")
	case <-time.After(50 * time.Millisecond):
	}
	s.Signal()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait not woken by Signal")
	}
}

func TestSignalBlocksUntilSignalled(t *testing.T) {
	var s Signal
	woke := make(chan struct{})
	go func() {
		s.Wait()
		close(woke)
	}()
	select {
	case <-woke:
		t.Fatal("Wait returned without a permit")
	case <-time.After(20 * time.Millisecond):
	}
	s.Signal()
	<-woke
}

func TestSignalPingPong(t *testing.T) {
	N := 100000
	if testing.Short() {
		N /= 100
	}
	var ping, pong Signal
	var seen int
	go func() {
		for i := 0; i < N; i++ {
			ping.Wait()
			seen++
			pong.Signal()
		}
	}()
	for i := 0; i < N; i++ {
		ping.Signal()
		pong.Wait()
		if seen != i+1 {
			t.Fatalf("got %d; want %d", seen, i+1)
		}
	}
}

func BenchmarkSignalRoundTrip(b *testing.B) {
	var ping, pong Signal
	go func() {
		for {
			ping.Wait()
			pong.Signal()
		}
	}()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ping.Signal()
		pong.Wait()
	}
}
