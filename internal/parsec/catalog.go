package parsec

import (
	"fmt"
	"sort"
)

// benchmarks is the supported subset of the PARSEC 3.0 suite. Workloads not
// listed here are rejected before any subprocess is started.
var benchmarks = map[string]bool{
	"blackscholes":  true,
	"bodytrack":     true,
	"canneal":       true,
	"dedup":         true,
	"facesim":       true,
	"ferret":        true,
	"fluidanimate":  true,
	"freqmine":      true,
	"raytrace":      true,
	"streamcluster": true,
	"swaptions":     true,
	"vips":          true,
	"x264":          true,
}

// inputSets are the input set names parsecmgmt accepts for -i.
var inputSets = map[string]bool{
	"test":      true,
	"simdev":    true,
	"simsmall":  true,
	"simmedium": true,
	"simlarge":  true,
	"native":    true,
}

// Benchmarks returns the supported benchmark names in sorted order.
func Benchmarks() []string {
	names := make([]string, 0, len(benchmarks))
	for name := range benchmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateNames checks every requested benchmark against the supported set.
// It fails on the first unknown name so that an invocation mixing valid and
// invalid names executes nothing.
func ValidateNames(names []string) error {
	for _, name := range names {
		if !benchmarks[name] {
			return fmt.Errorf("unknown benchmark %q (supported: %v)", name, Benchmarks())
		}
	}
	return nil
}

// ValidInputSet reports whether name is a parsecmgmt input set.
func ValidInputSet(name string) bool {
	return inputSets[name]
}
