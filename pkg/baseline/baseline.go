// Package baseline holds Go-heap containers with the same bounded semantics
// as the native ones. The bench harness runs them side by side to show what
// the garbage collector costs on the same workload.
package baseline

// ChannelQueue is a bounded FIFO backed by a buffered channel.
type ChannelQueue[T any] struct {
	ch chan T
}

func NewChannelQueue[T any](capacity int) *ChannelQueue[T] {
	// A zero-capacity channel is an unbuffered synchronization primitive,
	// not an empty buffer, so the minimum is 1.
	if capacity < 1 {
		capacity = 1
	}
	return &ChannelQueue[T]{
		ch: make(chan T, capacity),
	}
}

func (q *ChannelQueue[T]) TryEnqueue(val T) bool {
	select {
	case q.ch <- val:
		return true
	default:
		return false
	}
}

func (q *ChannelQueue[T]) TryDequeue() (val T, ok bool) {
	select {
	case val = <-q.ch:
		return val, true
	default:
		return val, false
	}
}

func (q *ChannelQueue[T]) Capacity() int { return cap(q.ch) }
func (q *ChannelQueue[T]) Count() int    { return len(q.ch) }
func (q *ChannelQueue[T]) IsEmpty() bool { return len(q.ch) == 0 }
func (q *ChannelQueue[T]) IsFull() bool  { return len(q.ch) == cap(q.ch) }

// SliceQueue is a bounded ring-buffer FIFO over a heap slice.
type SliceQueue[T any] struct {
	items []T
	head  int
	count int
}

func NewSliceQueue[T any](capacity int) *SliceQueue[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &SliceQueue[T]{items: make([]T, capacity)}
}

func (q *SliceQueue[T]) TryEnqueue(val T) bool {
	if q.count == len(q.items) {
		return false
	}
	q.items[(q.head+q.count)%len(q.items)] = val
	q.count++
	return true
}

func (q *SliceQueue[T]) TryDequeue() (val T, ok bool) {
	if q.count == 0 {
		return val, false
	}
	val = q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return val, true
}

func (q *SliceQueue[T]) Capacity() int { return len(q.items) }
func (q *SliceQueue[T]) Count() int    { return q.count }
func (q *SliceQueue[T]) IsEmpty() bool { return q.count == 0 }
func (q *SliceQueue[T]) IsFull() bool  { return q.count == len(q.items) }

// SliceStack is a bounded LIFO over an append-grown heap slice.
type SliceStack[T any] struct {
	items    []T
	capacity int
}

func NewSliceStack[T any](capacity int) *SliceStack[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &SliceStack[T]{capacity: capacity}
}

func (s *SliceStack[T]) TryPush(val T) bool {
	if len(s.items) == s.capacity {
		return false
	}
	s.items = append(s.items, val)
	return true
}

func (s *SliceStack[T]) TryPop() (val T, ok bool) {
	if len(s.items) == 0 {
		return val, false
	}
	val = s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return val, true
}

func (s *SliceStack[T]) Capacity() int { return s.capacity }
func (s *SliceStack[T]) Count() int    { return len(s.items) }
func (s *SliceStack[T]) IsEmpty() bool { return len(s.items) == 0 }
func (s *SliceStack[T]) IsFull() bool  { return len(s.items) == s.capacity }
