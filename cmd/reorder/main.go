// Command reorder runs the store->load reordering litmus test and reports
// how often both racers read the other's flag as 0.
//
//	reorder                      # 100000 rounds, plain accesses
//	reorder -variant atomic      # control run, never detects
//	reorder -pin 0,2 -v          # pin the racers, print every detection
//
// Send SIGINT to stop early; the rounds run so far are still reported.
// The sampled detections profile can be inspected with:
//
//	reorder -pprof localhost:6060 -profile-rate 1
//	go tool pprof "http://localhost:6060/debug/pprof/github.com/lrita/reorder"
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/lrita/numa"

	"github.com/lrita/reorder"
	"github.com/lrita/reorder/race"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := log.New(os.Stderr, "", log.Lshortfile)

	fs := flag.NewFlagSet("reorder", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "YAML config `file`; flags override its values")
		rounds      = fs.Int("rounds", 0, "number of rounds (default 100000)")
		variant     = fs.String("variant", "", "cell access variant: plain or atomic (default plain)")
		pin         = fs.String("pin", "", "pin racer A and racer B to `cpuA,cpuB` (linux only)")
		verbose     = fs.Bool("v", false, "print cells, registers and placement for every detection")
		pprofAddr   = fs.String("pprof", "", "serve net/http/pprof on `addr`")
		profileRate = fs.Int("profile-rate", 0, "sample 1/rate detections into the reorder profile")
	)
	var delayMax, sentinel uint32
	fs.Func("delay-max", "upper bound of the random delay draw (default 7)", uint32Flag(&delayMax))
	fs.Func("delay-sentinel", "draw that ends the random delay", uint32Flag(&sentinel))
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := reorder.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = reorder.LoadConfig(*configPath); err != nil {
			logger.Println(err)
			return 2
		}
	}
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rounds":
			cfg.Rounds = *rounds
		case "delay-max":
			cfg.Delay.Max = delayMax
		case "delay-sentinel":
			cfg.Delay.Sentinel = sentinel
		case "variant":
			if err := cfg.Variant.UnmarshalText([]byte(*variant)); err != nil {
				flagErr = err
			}
		case "pin":
			cpus, err := parseCPUs(*pin)
			if err != nil {
				flagErr = err
			}
			cfg.PinCPUs = cpus
		case "profile-rate":
			cfg.ProfileRate = *profileRate
		}
	})
	if flagErr != nil {
		logger.Println(flagErr)
		return 2
	}

	out := log.New(os.Stdout, "", 0)
	h, err := reorder.New(cfg,
		reorder.WithLogger(logger),
		reorder.WithReporter(&reorder.LogReporter{Logger: out, Verbose: *verbose}),
	)
	if err != nil {
		logger.Println(err)
		return 2
	}

	if *pprofAddr != "" {
		go func() {
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				logger.Printf("pprof: %v", err)
			}
		}()
	}

	out.Printf("GOMAXPROCS=%d, NUMA nodes=%d, race detector=%v",
		runtime.GOMAXPROCS(0), numa.MaxNodeID()+1, race.Enabled)
	if runtime.GOMAXPROCS(0) < 2 {
		logger.Println("GOMAXPROCS < 2: the racers cannot run in parallel, expect no reorders")
	}

	stop := h.Shutdown().NotifySignals(os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := h.Run(context.Background()); err != nil {
		logger.Println(err)
		return 1
	}
	return 0
}

// uint32Flag returns a flag.Func setter that rejects values that do not
// fit in 32 bits instead of truncating them.
func uint32Flag(dst *uint32) func(string) error {
	return func(s string) error {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return err
		}
		*dst = uint32(n)
		return nil
	}
}

// parseCPUs parses "a,b" into two CPU ids.
func parseCPUs(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("-pin wants two comma separated cpus, got %q", s)
	}
	cpus := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("-pin: %v", err)
		}
		cpus[i] = n
	}
	return cpus, nil
}
