// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import (
	"runtime/pprof"
	"sync"
	"sync/atomic"
)

// ProfileName is the name of the runtime/pprof profile that holds sampled
// reorder detections.
const ProfileName = "github.com/lrita/reorder"

var (
	profilerate int64 // fraction sampled
	profile     = pprof.NewProfile(ProfileName)

	samplesmu sync.Mutex
	samples   []*Detection // live keys of profile, oldest first

	// maxProfileSamples bounds the profile; the oldest sample is dropped
	// to make room for a new one.
	maxProfileSamples = 4096
)

// SetProfileFraction controls the fraction of reorder detections that are
// reported in the "github.com/lrita/reorder" profile. On average 1/rate
// detections are reported. The previous rate is returned.
//
// The profile keeps at most the 4096 most recent samples.
//
// To turn off profiling entirely, pass rate 0; this also drops the
// samples recorded so far.
// To just read the current rate, pass rate < 0.
func SetProfileFraction(rate int) int {
	if rate < 0 {
		return int(atomic.LoadInt64(&profilerate))
	}
	old := swapProfileRate(rate)
	if rate == 0 {
		// clean last profiling record.
		samplesmu.Lock()
		for _, s := range samples {
			profile.Remove(s)
		}
		samples = nil
		samplesmu.Unlock()
	}
	return old
}

// swapProfileRate sets the rate without touching recorded samples.
func swapProfileRate(rate int) int {
	return int(atomic.SwapInt64(&profilerate, int64(rate)))
}

// profileDetection samples d into the profile with the caller's stack.
func profileDetection(d Detection) {
	rate := atomic.LoadInt64(&profilerate)
	if rate <= 0 || int64(fastrand())%rate != 0 {
		return
	}
	key := &d
	samplesmu.Lock()
	defer samplesmu.Unlock()
	if len(samples) >= maxProfileSamples && len(samples) > 0 {
		profile.Remove(samples[0])
		samples[0] = nil
		samples = samples[1:]
	}
	samples = append(samples, key)
	profile.Add(key, 1)
}
