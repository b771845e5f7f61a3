package native

import "sync/atomic"

// Stats is a snapshot of process-wide native allocation counters.
type Stats struct {
	LiveBlocks  int64
	LiveBytes   int64
	TotalAllocs int64
	TotalFrees  int64
}

type counters struct {
	liveBlocks  atomic.Int64
	liveBytes   atomic.Int64
	totalAllocs atomic.Int64
	totalFrees  atomic.Int64
}

var stats counters

func (c *counters) recordAlloc(size int) {
	c.liveBlocks.Add(1)
	c.liveBytes.Add(int64(size))
	c.totalAllocs.Add(1)
}

func (c *counters) recordFree(size int) {
	c.liveBlocks.Add(-1)
	c.liveBytes.Add(-int64(size))
	c.totalFrees.Add(1)
}

// ReadStats returns the current counters.
func ReadStats() Stats {
	return Stats{
		LiveBlocks:  stats.liveBlocks.Load(),
		LiveBytes:   stats.liveBytes.Load(),
		TotalAllocs: stats.totalAllocs.Load(),
		TotalFrees:  stats.totalFrees.Load(),
	}
}
