package main

import (
	"github.com/i5heu/GoNativeCollections/internal/testbench"
	"github.com/i5heu/GoNativeCollections/pkg/baseline"
	"github.com/i5heu/GoNativeCollections/pkg/nativequeue"
	"github.com/i5heu/GoNativeCollections/pkg/nativestack"
)

// Implementation represents a container implementation under test.
type Implementation struct {
	name        string
	description string
	pkgName     string
	features    []string
	// newCycler builds a container of the given capacity and returns the
	// function releasing it.
	newCycler func(capacity int) (testbench.Cycler[int64], func() error, error)
}

func noRelease() error { return nil }

// getImplementations enumerates the native containers and their Go-heap baselines.
func getImplementations() []Implementation {
	return []Implementation{
		{
			name:        "NativeQueue",
			pkgName:     "nativequeue",
			description: "Fixed-capacity FIFO in an off-heap mapping with calibration.",
			features:    []string{"FIFO", "Off-Heap", "Clear"},
			newCycler: func(capacity int) (testbench.Cycler[int64], func() error, error) {
				q, err := nativequeue.New[int64](capacity)
				if err != nil {
					return nil, nil, err
				}
				qp := &q
				return testbench.FIFOCycler[int64](qp), qp.Dispose, nil
			},
		},
		{
			name:        "NativeStack",
			pkgName:     "nativestack",
			description: "Fixed-capacity LIFO in an off-heap mapping.",
			features:    []string{"LIFO", "Off-Heap", "Clear"},
			newCycler: func(capacity int) (testbench.Cycler[int64], func() error, error) {
				s, err := nativestack.New[int64](capacity)
				if err != nil {
					return nil, nil, err
				}
				sp := &s
				return testbench.LIFOCycler[int64](sp), sp.Dispose, nil
			},
		},
		{
			name:        "Golang Buffered Channel",
			pkgName:     "baseline",
			description: "Buffered channel driven with non-blocking select.",
			features:    []string{"FIFO", "Go-Heap"},
			newCycler: func(capacity int) (testbench.Cycler[int64], func() error, error) {
				return testbench.FIFOCycler[int64](baseline.NewChannelQueue[int64](capacity)), noRelease, nil
			},
		},
		{
			name:        "SliceQueue",
			pkgName:     "baseline",
			description: "Ring buffer over a heap slice.",
			features:    []string{"FIFO", "Go-Heap"},
			newCycler: func(capacity int) (testbench.Cycler[int64], func() error, error) {
				return testbench.FIFOCycler[int64](baseline.NewSliceQueue[int64](capacity)), noRelease, nil
			},
		},
		{
			name:        "SequenceQueue",
			pkgName:     "baseline",
			description: "Power-of-two ring with per-slot atomic sequence numbers.",
			features:    []string{"FIFO", "Go-Heap", "Atomic"},
			newCycler: func(capacity int) (testbench.Cycler[int64], func() error, error) {
				return testbench.FIFOCycler[int64](baseline.NewSequenceQueue[int64](capacity)), noRelease, nil
			},
		},
		{
			name:        "SliceStack",
			pkgName:     "baseline",
			description: "Append/truncate stack over a heap slice.",
			features:    []string{"LIFO", "Go-Heap"},
			newCycler: func(capacity int) (testbench.Cycler[int64], func() error, error) {
				return testbench.LIFOCycler[int64](baseline.NewSliceStack[int64](capacity)), noRelease, nil
			},
		},
	}
}
