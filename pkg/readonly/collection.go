// Package readonly provides Collection, a read-only window over a native
// buffer. Views handed out by the containers borrow the container's memory
// and never free it; a view built with FromSlice owns a private copy and
// releases it on Dispose.
package readonly

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/i5heu/GoNativeCollections/internal/native"
	"github.com/i5heu/GoNativeCollections/pkg/enumerator"
	nerrors "github.com/i5heu/GoNativeCollections/pkg/errors"
)

// Collection is a read-only view of count contiguous elements.
// The zero value is the void view.
type Collection[T any] struct {
	items []T
	owner native.Block[T]
}

// Void returns the empty, buffer-less view.
func Void[T any]() Collection[T] {
	return Collection[T]{}
}

// Borrow wraps items without taking ownership. The view is valid only while
// the memory behind items is; an empty items yields the void view.
func Borrow[T any](items []T) Collection[T] {
	if len(items) == 0 {
		return Collection[T]{}
	}
	return Collection[T]{items: items[:len(items):len(items)]}
}

// FromSlice copies src into freshly allocated native memory owned by the view.
func FromSlice[T any](src []T) (Collection[T], error) {
	b, err := native.AllocCopy(src)
	if err != nil {
		return Collection[T]{}, err
	}
	return Collection[T]{items: b.Slice(), owner: b}, nil
}

// RangeOf cuts a borrowed sub-view out of live.
//
// It fails with the void view when start is outside [0, len(live)) or length
// is not positive. When fewer than length elements remain, allOrNothing
// refuses the request and partial mode clamps it to what is available.
func RangeOf[T any](live []T, start, length int, allOrNothing bool) (Collection[T], bool) {
	if start < 0 || start >= len(live) || length <= 0 {
		return Collection[T]{}, false
	}

	available := len(live) - start
	if length > available {
		if allOrNothing {
			return Collection[T]{}, false
		}
		length = available
	}

	return Borrow(live[start : start+length]), true
}

// Count is the number of visible elements.
func (c Collection[T]) Count() int {
	return len(c.items)
}

// ByteCount is Count in bytes.
func (c Collection[T]) ByteCount() int {
	return len(c.items) * native.SizeOf[T]()
}

// IsEmpty reports whether the view has no elements.
func (c Collection[T]) IsEmpty() bool {
	return len(c.items) == 0
}

// Owned reports whether Dispose releases memory.
func (c Collection[T]) Owned() bool {
	return !c.owner.IsVoid()
}

// Get returns the element at index, or an out-of-range error when index is
// outside [0, Count).
func (c Collection[T]) Get(index int) (T, error) {
	if index < 0 || index >= len(c.items) {
		var zero T
		return zero, nerrors.OutOfRange("readonly.Get", index, len(c.items))
	}
	return c.items[index], nil
}

// TryGet is Get reporting failure as false and the zero value.
func (c Collection[T]) TryGet(index int) (T, bool) {
	if index < 0 || index >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[index], true
}

// TryGetRange returns a borrowed sub-view; see RangeOf.
func (c Collection[T]) TryGetRange(start, length int, allOrNothing bool) (Collection[T], bool) {
	return RangeOf(c.items, start, length, allOrNothing)
}

// Enumerator returns a single-pass walker over the view.
func (c Collection[T]) Enumerator() enumerator.Enumerator[T] {
	return enumerator.New(c.items)
}

// All ranges over (index, value) pairs.
func (c Collection[T]) All() iter.Seq2[int, T] {
	return enumerator.Seq(c.items)
}

// Pin returns the address of the first element, nil when empty.
// The pointer is unsafe to use after the underlying buffer is released.
func (c Collection[T]) Pin() *T {
	if len(c.items) == 0 {
		return nil
	}
	return &c.items[0]
}

// Unsafe exposes the viewed elements directly. Writes through the returned
// slice land in the source buffer.
func (c Collection[T]) Unsafe() []T {
	return c.items
}

// Dispose releases the memory when the view owns it and resets the view to
// void. Borrowed views never free.
func (c *Collection[T]) Dispose() error {
	err := c.owner.Free()
	*c = Collection[T]{}
	return err
}

func (c Collection[T]) addr() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(c.items)))
}

// Equal reports whether both views address the same memory with the same count.
func (c Collection[T]) Equal(other Collection[T]) bool {
	return c.addr() == other.addr() && len(c.items) == len(other.items)
}

// Hash is the identity hash of the view.
func (c Collection[T]) Hash() uint64 {
	return native.Hash(c.addr(), len(c.items))
}

func (c Collection[T]) String() string {
	return fmt.Sprintf("Collection[%s][Count: %d]", native.ElementName[T](), len(c.items))
}
