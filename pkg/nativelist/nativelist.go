// Package nativelist implements List, a fixed-capacity append list whose
// elements live in off-heap memory.
package nativelist

import (
	"fmt"
	"iter"

	"github.com/i5heu/GoNativeCollections/internal/native"
	"github.com/i5heu/GoNativeCollections/pkg/enumerator"
	nerrors "github.com/i5heu/GoNativeCollections/pkg/errors"
	"github.com/i5heu/GoNativeCollections/pkg/readonly"
)

// List is a bounded, index-addressable list. Its capacity is fixed at
// construction and the buffer never grows.
//
// List is a value type: copying it shares the buffer. Exactly one copy must
// call Dispose. The zero value is the void list.
type List[T any] struct {
	buf   native.Block[T]
	count int
}

// Void returns the zero-capacity sentinel list.
func Void[T any]() List[T] {
	return List[T]{}
}

// New allocates an empty list with room for capacity elements.
// capacity <= 0 yields the void list.
func New[T any](capacity int) (List[T], error) {
	buf, err := native.Alloc[T](capacity)
	if err != nil {
		return List[T]{}, err
	}
	return List[T]{buf: buf}, nil
}

// FromSlice copies src into a new list whose capacity and count are len(src).
func FromSlice[T any](src []T) (List[T], error) {
	buf, err := native.AllocCopy(src)
	if err != nil {
		return List[T]{}, err
	}
	return List[T]{buf: buf, count: len(src)}, nil
}

func (l List[T]) Capacity() int         { return l.buf.Len() }
func (l List[T]) Count() int            { return l.count }
func (l List[T]) ByteCapacity() int     { return l.buf.ByteLen() }
func (l List[T]) CurrentByteCount() int { return l.count * native.SizeOf[T]() }
func (l List[T]) IsEmpty() bool         { return l.count == 0 }
func (l List[T]) IsFull() bool          { return l.count == l.buf.Len() }

// Get returns the element at index. Any index below the capacity is
// readable, including slots past Count.
func (l List[T]) Get(index int) (T, error) {
	if index < 0 || index >= l.buf.Len() {
		var zero T
		return zero, nerrors.OutOfRange("nativelist.Get", index, l.buf.Len())
	}
	return l.buf.Slice()[index], nil
}

// Set overwrites the element at index. Like Get it is bounded by the
// capacity, not by Count, and does not change Count.
func (l List[T]) Set(index int, item T) error {
	if index < 0 || index >= l.buf.Len() {
		return nerrors.OutOfRange("nativelist.Set", index, l.buf.Len())
	}
	l.buf.Slice()[index] = item
	return nil
}

// Add appends item, failing with an out-of-range error when the list is full.
func (l *List[T]) Add(item T) error {
	if l.count >= l.buf.Len() {
		return nerrors.Full("nativelist.Add", l.buf.Len())
	}
	l.buf.Slice()[l.count] = item
	l.count++
	return nil
}

// TryAdd appends item and reports whether there was room.
func (l *List[T]) TryAdd(item T) bool {
	if l.count >= l.buf.Len() {
		return false
	}
	l.buf.Slice()[l.count] = item
	l.count++
	return true
}

// TryAddRange copies items onto the tail.
//
// It returns false without copying when items is empty or the list is full.
// With allOrNothing set, a run longer than the free space is refused as a
// whole; otherwise as many elements as fit are copied.
func (l *List[T]) TryAddRange(items []T, allOrNothing bool) bool {
	free := l.buf.Len() - l.count
	if len(items) == 0 || free <= 0 {
		return false
	}

	n := len(items)
	if n > free {
		if allOrNothing {
			return false
		}
		n = free
	}

	copy(l.buf.Slice()[l.count:], items[:n])
	l.count += n
	return true
}

// TryGet is Get reporting failure as false and the zero value.
func (l List[T]) TryGet(index int) (T, bool) {
	if index < 0 || index >= l.buf.Len() {
		var zero T
		return zero, false
	}
	return l.buf.Slice()[index], true
}

// TryGetRange returns a zero-copy view of up to length live elements
// starting at start. See readonly.RangeOf for the failure rules.
func (l List[T]) TryGetRange(start, length int, allOrNothing bool) (readonly.Collection[T], bool) {
	return readonly.RangeOf(l.live(), start, length, allOrNothing)
}

// Clear forgets every element without releasing the buffer.
func (l *List[T]) Clear() {
	l.count = 0
}

// AsReadOnly borrows the live elements as a read-only view.
func (l List[T]) AsReadOnly() readonly.Collection[T] {
	return readonly.Borrow(l.live())
}

// Enumerator returns a single-pass walker over the live elements.
func (l List[T]) Enumerator() enumerator.Enumerator[T] {
	return enumerator.New(l.live())
}

// All ranges over (index, value) pairs of the live elements.
func (l List[T]) All() iter.Seq2[int, T] {
	return enumerator.Seq(l.live())
}

// Pin returns the address of element 0, or nil for an empty list.
// The pointer dangles once the list is disposed.
func (l List[T]) Pin() *T {
	if l.count == 0 {
		return nil
	}
	return &l.buf.Slice()[0]
}

// Unsafe borrows the live elements [0, Count) directly.
func (l List[T]) Unsafe() []T {
	return l.live()
}

func (l List[T]) live() []T {
	if l.count == 0 {
		return nil
	}
	return l.buf.Slice()[:l.count:l.count]
}

// Dispose releases the buffer and turns l into the void list. Disposing a
// void or already disposed list is a no-op.
func (l *List[T]) Dispose() error {
	err := l.buf.Free()
	*l = List[T]{}
	return err
}

// Equal compares identity: same buffer, capacity and count. Lists with equal
// contents in different buffers are not equal.
func (l List[T]) Equal(other List[T]) bool {
	return l == other
}

// Hash is the identity hash consistent with Equal.
func (l List[T]) Hash() uint64 {
	return native.Hash(l.buf.Addr(), l.buf.Len(), l.count)
}

func (l List[T]) String() string {
	return fmt.Sprintf("List[%s][Count: %d | Capacity: %d]", native.ElementName[T](), l.count, l.buf.Len())
}
