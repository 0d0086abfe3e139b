// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reorder

import (
	"errors"
	"fmt"
	"math"
	"os"

	"sigs.k8s.io/yaml"
)

var (
	// ErrInvalidConfig is wrapped by every configuration error.
	ErrInvalidConfig = errors.New("reorder: invalid config")
	// ErrAffinity is wrapped by errors pinning a racer to a CPU.
	ErrAffinity = errors.New("reorder: cannot set cpu affinity")
	// ErrAlreadyRun is returned by a second call to Harness.Run.
	ErrAlreadyRun = errors.New("reorder: harness already run")
)

// Config describes one harness run.
type Config struct {
	// Rounds is the number of rounds to run unless shut down earlier.
	Rounds int `json:"rounds"`
	// Delay is the random spin each racer performs before its body.
	Delay Delay `json:"delay"`
	// Variant selects plain or atomic cell accesses.
	Variant Variant `json:"variant"`
	// PinCPUs optionally pins racer A and racer B to the given CPUs.
	// It is either empty or has exactly two entries.
	PinCPUs []int `json:"pinCPUs,omitempty"`
	// ProfileRate is the profile sampling rate (see SetProfileFraction)
	// for the duration of the run; the previous rate is restored when Run
	// returns, samples taken are kept. 0 leaves the profile untouched.
	ProfileRate int `json:"profileRate,omitempty"`
}

// DefaultConfig returns the classic experiment: 100000 rounds, a delay
// drawn from [0, 7] that stops on 0, plain accesses, no pinning.
func DefaultConfig() Config {
	return Config{
		Rounds:  100000,
		Delay:   Delay{Max: 7, Sentinel: 0},
		Variant: Plain,
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep
// their DefaultConfig values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks cfg for values the harness cannot run with.
func (c *Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidConfig, c.Rounds)
	}
	if c.Delay.Max > math.MaxInt32 {
		return fmt.Errorf("%w: delay max %d too large", ErrInvalidConfig, c.Delay.Max)
	}
	if c.Delay.Sentinel > c.Delay.Max {
		return fmt.Errorf("%w: delay sentinel %d outside [0, %d]", ErrInvalidConfig, c.Delay.Sentinel, c.Delay.Max)
	}
	if c.Variant != Plain && c.Variant != Atomic {
		return fmt.Errorf("%w: unknown variant %d", ErrInvalidConfig, int(c.Variant))
	}
	switch len(c.PinCPUs) {
	case 0:
	case 2:
		for _, cpu := range c.PinCPUs {
			if cpu < 0 {
				return fmt.Errorf("%w: negative cpu %d", ErrInvalidConfig, cpu)
			}
		}
	default:
		return fmt.Errorf("%w: pinCPUs needs two entries, got %d", ErrInvalidConfig, len(c.PinCPUs))
	}
	if c.ProfileRate < 0 {
		return fmt.Errorf("%w: negative profile rate %d", ErrInvalidConfig, c.ProfileRate)
	}
	return nil
}
