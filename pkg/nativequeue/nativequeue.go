// Package nativequeue implements Queue, a fixed-capacity FIFO whose elements
// live in off-heap memory.
//
// The queue keeps two coordinate systems. Enqueue appends at the physical
// slot equal to the current Count, while StartIndex and EndIndex advance
// modulo the capacity as elements are dequeued and enqueued. After a partial
// drain the two no longer agree, so the physical layout of the buffer is only
// trustworthy after Calibrate, which every contiguous accessor (AsReadOnly,
// Enumerator, All, Pin, Unsafe) runs first.
package nativequeue

import (
	"fmt"
	"iter"

	"github.com/i5heu/GoNativeCollections/internal/native"
	"github.com/i5heu/GoNativeCollections/pkg/enumerator"
	nerrors "github.com/i5heu/GoNativeCollections/pkg/errors"
	"github.com/i5heu/GoNativeCollections/pkg/readonly"
)

// Queue is a bounded FIFO queue. The zero value is the void queue.
type Queue[T any] struct {
	buf   native.Block[T]
	count int
	start int // physical slot of the oldest element
	tail  int // EndIndex + 1, so the zero value needs no fix-up
}

// Void returns the zero-capacity sentinel queue.
func Void[T any]() Queue[T] {
	return Queue[T]{}
}

// New allocates an empty, zero-filled queue with room for capacity elements.
// capacity <= 0 yields the void queue.
func New[T any](capacity int) (Queue[T], error) {
	buf, err := native.Alloc[T](capacity)
	if err != nil {
		return Queue[T]{}, err
	}
	return Queue[T]{buf: buf}, nil
}

// FromSlice copies src into a full queue; src[0] is dequeued first.
func FromSlice[T any](src []T) (Queue[T], error) {
	buf, err := native.AllocCopy(src)
	if err != nil {
		return Queue[T]{}, err
	}
	return Queue[T]{buf: buf, count: len(src), tail: len(src)}, nil
}

func (q Queue[T]) Capacity() int         { return q.buf.Len() }
func (q Queue[T]) Count() int            { return q.count }
func (q Queue[T]) ByteCapacity() int     { return q.buf.ByteLen() }
func (q Queue[T]) CurrentByteCount() int { return q.count * native.SizeOf[T]() }
func (q Queue[T]) IsEmpty() bool         { return q.count == 0 }
func (q Queue[T]) IsFull() bool          { return q.count == q.buf.Len() }

// StartIndex is the physical slot Dequeue and Peek read next.
func (q Queue[T]) StartIndex() int { return q.start }

// EndIndex is the logical slot of the newest element, -1 before the first
// Enqueue.
func (q Queue[T]) EndIndex() int { return q.tail - 1 }

func (q *Queue[T]) push(item T) {
	q.buf.Slice()[q.count] = item
	q.count++
	if q.tail >= q.buf.Len() {
		q.tail = 1
	} else {
		q.tail++
	}
}

// Enqueue appends item at physical slot Count, failing with an out-of-range
// error when the queue is full.
func (q *Queue[T]) Enqueue(item T) error {
	if q.count >= q.buf.Len() {
		return nerrors.Full("nativequeue.Enqueue", q.buf.Len())
	}
	q.push(item)
	return nil
}

// TryEnqueue is Enqueue reporting a full queue as false.
func (q *Queue[T]) TryEnqueue(item T) bool {
	if q.count >= q.buf.Len() {
		return false
	}
	q.push(item)
	return true
}

func (q *Queue[T]) pop() T {
	s := q.buf.Slice()
	item := s[q.start]
	var zero T
	s[q.start] = zero

	if q.start >= len(s)-1 {
		q.start = 0
	} else {
		q.start++
	}
	q.count--
	return item
}

// Dequeue removes and returns the element at StartIndex, zeroing its slot.
// It fails with an invalid-operation error when the queue is empty.
func (q *Queue[T]) Dequeue() (T, error) {
	if q.count == 0 {
		var zero T
		return zero, nerrors.Empty("nativequeue.Dequeue")
	}
	return q.pop(), nil
}

// TryDequeue is Dequeue reporting an empty queue as false and the zero value.
func (q *Queue[T]) TryDequeue() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.pop(), true
}

// Peek returns the element Dequeue would return without removing it.
func (q Queue[T]) Peek() (T, error) {
	if q.count == 0 {
		var zero T
		return zero, nerrors.Empty("nativequeue.Peek")
	}
	return q.buf.Slice()[q.start], nil
}

// TryPeek is Peek reporting an empty queue as false and the zero value.
func (q Queue[T]) TryPeek() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.buf.Slice()[q.start], true
}

// Calibrate moves the Count elements of the logical window, which starts at
// StartIndex and may wrap past the end of the buffer, down to physical slot 0,
// then resets StartIndex to 0 and EndIndex to Count-1. Slots vacated by a
// non-wrapping move are zeroed. It does nothing for an empty queue or one
// already starting at 0, so calling it twice equals calling it once.
func (q *Queue[T]) Calibrate() {
	if q.count == 0 || q.start == 0 {
		return
	}

	s := q.buf.Slice()
	if q.start+q.count <= len(s) {
		copy(s, s[q.start:q.start+q.count])
		clear(s[q.count : q.start+q.count])
	} else {
		rotateLeft(s, q.start)
	}

	q.start = 0
	q.tail = q.count
}

// rotateLeft moves s[k] to s[0] in place, preserving cyclic order.
func rotateLeft[T any](s []T, k int) {
	reverse(s[:k])
	reverse(s[k:])
	reverse(s)
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Clear drops every element and zeroes the buffer without releasing it.
func (q *Queue[T]) Clear() {
	clear(q.buf.Slice())
	q.count = 0
	q.start = 0
	q.tail = 0
}

// AsReadOnly calibrates and borrows the live window as a read-only view.
func (q *Queue[T]) AsReadOnly() readonly.Collection[T] {
	return readonly.Borrow(q.Unsafe())
}

// Enumerator calibrates and returns a single-pass walker in FIFO order.
// Calibrating the queue again invalidates it.
func (q *Queue[T]) Enumerator() enumerator.Enumerator[T] {
	return enumerator.New(q.Unsafe())
}

// All calibrates and ranges over (position, value) in FIFO order.
func (q *Queue[T]) All() iter.Seq2[int, T] {
	return enumerator.Seq(q.Unsafe())
}

// Pin calibrates and returns the address of the oldest element, nil when
// empty. The pointer dangles after Dispose or a later Calibrate.
func (q *Queue[T]) Pin() *T {
	live := q.Unsafe()
	if len(live) == 0 {
		return nil
	}
	return &live[0]
}

// Unsafe calibrates and borrows the live window directly.
func (q *Queue[T]) Unsafe() []T {
	q.Calibrate()
	if q.count == 0 {
		return nil
	}
	return q.buf.Slice()[:q.count:q.count]
}

// Buffer borrows the entire physical buffer without calibrating. It exists
// to inspect the raw layout; logical order is only guaranteed after Calibrate.
func (q Queue[T]) Buffer() []T {
	return q.buf.Slice()
}

// Dispose releases the buffer and turns q into the void queue. Disposing a
// void or already disposed queue is a no-op.
func (q *Queue[T]) Dispose() error {
	err := q.buf.Free()
	*q = Queue[T]{}
	return err
}

// Equal compares identity: same buffer and identical bookkeeping.
func (q Queue[T]) Equal(other Queue[T]) bool {
	return q == other
}

// Hash is the identity hash consistent with Equal.
func (q Queue[T]) Hash() uint64 {
	return native.Hash(q.buf.Addr(), q.buf.Len(), q.count, q.start, q.tail)
}

func (q Queue[T]) String() string {
	return fmt.Sprintf("Queue[%s][Count: %d | Capacity: %d]", native.ElementName[T](), q.count, q.buf.Len())
}
