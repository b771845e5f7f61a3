package testbench

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/i5heu/GoNativeCollections/internal/collection"
)

// Workload names a fill/drain pattern the harness drives a container through.
type Workload string

const (
	// WorkloadFillDrain fills the container to capacity, then takes every
	// element back out, verifying the order.
	WorkloadFillDrain Workload = "fill-drain"

	// WorkloadFillClear fills the container to capacity, then drops the
	// contents in one step when the container supports Clear.
	WorkloadFillClear Workload = "fill-clear"
)

// Order is the removal order a Cycler promises.
type Order int

const (
	OrderFIFO Order = iota
	OrderLIFO
)

// Config describes one bench session.
type Config struct {
	Capacity   int           `yaml:"capacity" json:"capacity"`
	Iterations int           `yaml:"iterations" json:"iterations"`
	Duration   time.Duration `yaml:"duration" json:"duration"`
	Workloads  []Workload    `yaml:"workloads" json:"workloads"`
}

// DefaultConfig is used for every field a profile leaves unset.
func DefaultConfig() Config {
	return Config{
		Capacity:   1024,
		Iterations: 3,
		Duration:   2 * time.Second,
		Workloads:  []Workload{WorkloadFillDrain, WorkloadFillClear},
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Capacity == 0 {
		c.Capacity = d.Capacity
	}
	if c.Iterations == 0 {
		c.Iterations = d.Iterations
	}
	if c.Duration == 0 {
		c.Duration = d.Duration
	}
	if len(c.Workloads) == 0 {
		c.Workloads = d.Workloads
	}
	return c
}

// Validate rejects configurations the harness cannot run.
func (c Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", c.Duration)
	}
	for _, w := range c.Workloads {
		switch w {
		case WorkloadFillDrain, WorkloadFillClear:
		default:
			return fmt.Errorf("unknown workload %q", w)
		}
	}
	return nil
}

// Cycler is the uniform surface the harness drives.
type Cycler[T any] interface {
	collection.Sized
	Put(T) bool
	Take() (T, bool)
	Order() Order

	// TryClear drops the contents in one step and reports whether the
	// underlying container supports that.
	TryClear() bool
}

// clearer is implemented by containers that can drop their contents at once.
type clearer interface {
	Clear()
}

// tryClear clears c when its container supports it.
func tryClear(c any) bool {
	if cl, ok := c.(clearer); ok {
		cl.Clear()
		return true
	}
	return false
}

type fifoCycler[T any, Q interface {
	collection.Sized
	collection.FIFO[T]
}] struct {
	q Q
}

func (c fifoCycler[T, Q]) Capacity() int   { return c.q.Capacity() }
func (c fifoCycler[T, Q]) Count() int      { return c.q.Count() }
func (c fifoCycler[T, Q]) IsEmpty() bool   { return c.q.IsEmpty() }
func (c fifoCycler[T, Q]) IsFull() bool    { return c.q.IsFull() }
func (c fifoCycler[T, Q]) Put(v T) bool    { return c.q.TryEnqueue(v) }
func (c fifoCycler[T, Q]) Take() (T, bool) { return c.q.TryDequeue() }
func (c fifoCycler[T, Q]) Order() Order    { return OrderFIFO }
func (c fifoCycler[T, Q]) TryClear() bool  { return tryClear(c.q) }

// FIFOCycler adapts a queue to the harness.
func FIFOCycler[T any, Q interface {
	collection.Sized
	collection.FIFO[T]
}](q Q) Cycler[T] {
	return fifoCycler[T, Q]{q: q}
}

type lifoCycler[T any, S interface {
	collection.Sized
	collection.LIFO[T]
}] struct {
	s S
}

func (c lifoCycler[T, S]) Capacity() int   { return c.s.Capacity() }
func (c lifoCycler[T, S]) Count() int      { return c.s.Count() }
func (c lifoCycler[T, S]) IsEmpty() bool   { return c.s.IsEmpty() }
func (c lifoCycler[T, S]) IsFull() bool    { return c.s.IsFull() }
func (c lifoCycler[T, S]) Put(v T) bool    { return c.s.TryPush(v) }
func (c lifoCycler[T, S]) Take() (T, bool) { return c.s.TryPop() }
func (c lifoCycler[T, S]) Order() Order    { return OrderLIFO }
func (c lifoCycler[T, S]) TryClear() bool  { return tryClear(c.s) }

// LIFOCycler adapts a stack to the harness.
func LIFOCycler[T any, S interface {
	collection.Sized
	collection.LIFO[T]
}](s S) Cycler[T] {
	return lifoCycler[T, S]{s: s}
}

// Result holds the measurements of one timed run.
type Result struct {
	Ops        int64
	Cycles     int64
	Elapsed    time.Duration
	Mallocs    uint64 // heap objects allocated during the run
	TotalAlloc uint64 // heap bytes allocated during the run
	NumGC      uint32 // GC cycles completed during the run
}

// Throughput is operations per second.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

// RunTimedWorkload drives c through workload w until testDuration expires,
// counting every successful Put and Take as one operation. Heap activity is
// measured from runtime.MemStats around the run. A fill/drain cycle that
// returns elements out of order aborts the run with an error.
func RunTimedWorkload[T comparable](
	ctx context.Context,
	c Cycler[T],
	w Workload,
	testDuration time.Duration,
	valueGenerator func(int) T,
) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, testDuration)
	defer cancel()

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	var res Result
	start := time.Now()
	capacity := c.Capacity()

	for ctx.Err() == nil {
		for i := 0; i < capacity; i++ {
			if !c.Put(valueGenerator(i)) {
				return res, fmt.Errorf("put %d of %d refused (count %d)", i, capacity, c.Count())
			}
			res.Ops++
		}

		if w == WorkloadFillClear && c.TryClear() {
			res.Ops++
		} else {
			for i := 0; i < capacity; i++ {
				got, ok := c.Take()
				if !ok {
					return res, fmt.Errorf("take %d of %d failed (count %d)", i, capacity, c.Count())
				}
				want := valueGenerator(i)
				if c.Order() == OrderLIFO {
					want = valueGenerator(capacity - 1 - i)
				}
				if got != want {
					return res, fmt.Errorf("cycle %d: take %d returned %v, want %v", res.Cycles, i, got, want)
				}
				res.Ops++
			}
		}
		res.Cycles++
	}

	res.Elapsed = time.Since(start)
	runtime.ReadMemStats(&after)
	res.Mallocs = after.Mallocs - before.Mallocs
	res.TotalAlloc = after.TotalAlloc - before.TotalAlloc
	res.NumGC = after.NumGC - before.NumGC

	return res, nil
}
