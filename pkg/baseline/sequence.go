package baseline

import "sync/atomic"

type sequenceCell[T any] struct {
	sequence atomic.Uint64
	value    T
}

// SequenceQueue is a bounded ring whose slots carry sequence numbers, the
// layout used by lock-free MPMC queues. It never spins: a slot that is not
// ready fails the call. It is here to price the per-slot atomics against the
// plain native queue, not for concurrent use.
type SequenceQueue[T any] struct {
	buffer     []sequenceCell[T]
	mask       uint64
	enqueuePos atomic.Uint64
	dequeuePos atomic.Uint64
}

// NewSequenceQueue rounds capacity up to a power of 2, minimum 1.
func NewSequenceQueue[T any](capacity int) *SequenceQueue[T] {
	size := uint64(1)
	for size < uint64(max(capacity, 1)) {
		size <<= 1
	}
	q := &SequenceQueue[T]{
		buffer: make([]sequenceCell[T], size),
		mask:   size - 1,
	}
	for i := range q.buffer {
		q.buffer[i].sequence.Store(uint64(i))
	}
	return q
}

func (q *SequenceQueue[T]) TryEnqueue(val T) bool {
	pos := q.enqueuePos.Load()
	cell := &q.buffer[pos&q.mask]
	if cell.sequence.Load() != pos {
		return false
	}
	if !q.enqueuePos.CompareAndSwap(pos, pos+1) {
		return false
	}
	cell.value = val
	cell.sequence.Store(pos + 1)
	return true
}

func (q *SequenceQueue[T]) TryDequeue() (val T, ok bool) {
	pos := q.dequeuePos.Load()
	cell := &q.buffer[pos&q.mask]
	if cell.sequence.Load() != pos+1 {
		return val, false
	}
	if !q.dequeuePos.CompareAndSwap(pos, pos+1) {
		return val, false
	}
	val = cell.value
	var zero T
	cell.value = zero
	// Free for the writer one lap ahead.
	cell.sequence.Store(pos + uint64(len(q.buffer)))
	return val, true
}

func (q *SequenceQueue[T]) Capacity() int { return len(q.buffer) }
func (q *SequenceQueue[T]) Count() int {
	return int(q.enqueuePos.Load() - q.dequeuePos.Load())
}
func (q *SequenceQueue[T]) IsEmpty() bool { return q.Count() == 0 }
func (q *SequenceQueue[T]) IsFull() bool  { return q.Count() == len(q.buffer) }
