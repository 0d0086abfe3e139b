// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package reorder

import (
	"fmt"
	"runtime"
)

func pinThread(cpu int) error {
	runtime.LockOSThread()
	if cpu < 0 {
		return nil
	}
	return fmt.Errorf("%w: cpu pinning is only supported on linux", ErrAffinity)
}
