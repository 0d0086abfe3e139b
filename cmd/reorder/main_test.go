package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCPUs(t *testing.T) {
	cpus, err := parseCPUs("0, 3")
	if err != nil {
		t.Fatal(err)
	}
	if len(cpus) != 2 || cpus[0] != 0 || cpus[1] != 3 {
		t.Fatalf("got %v; want [0 3]", cpus)
	}
	for _, s := range []string{"", "1", "1,2,3", "a,b"} {
		if _, err := parseCPUs(s); err == nil {
			t.Fatalf("parseCPUs(%q) succeeded", s)
		}
	}
}

func TestRunBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-variant", "relaxed"},
		{"-rounds", "0"},
		{"-pin", "1"},
		{"-delay-max", "2", "-delay-sentinel", "5"},
		{"-rounds", "10", "-variant", "atomic", "-delay-max", "4294967297"},
		{"-rounds", "10", "-delay-sentinel", "4294967296"},
		{"-delay-max", "-1"},
		{"-config", filepath.Join(os.TempDir(), "reorder-does-not-exist.yaml")},
	} {
		if code := run(args); code != 2 {
			t.Fatalf("run(%q) got exit %d; want 2", args, code)
		}
	}
}

func TestUint32Flag(t *testing.T) {
	var v uint32
	set := uint32Flag(&v)
	if err := set("4294967295"); err != nil || v != 4294967295 {
		t.Fatalf("got %d, %v; want 4294967295", v, err)
	}
	if err := set("4294967297"); err == nil {
		t.Fatalf("4294967297 accepted as %d", v)
	}
	if v != 4294967295 {
		t.Fatalf("rejected value changed the flag to %d", v)
	}
}

func TestRunSmall(t *testing.T) {
	if code := run([]string{"-rounds", "100", "-variant", "atomic"}); code != 0 {
		t.Fatalf("got exit %d; want 0", code)
	}
}
