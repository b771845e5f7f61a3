// Package nativestack implements Stack, a fixed-capacity LIFO whose elements
// live in off-heap memory.
package nativestack

import (
	"fmt"
	"iter"

	"github.com/i5heu/GoNativeCollections/internal/native"
	"github.com/i5heu/GoNativeCollections/pkg/enumerator"
	nerrors "github.com/i5heu/GoNativeCollections/pkg/errors"
	"github.com/i5heu/GoNativeCollections/pkg/readonly"
)

// Stack is a bounded LIFO stack. The zero value is the void stack.
type Stack[T any] struct {
	buf   native.Block[T]
	count int
}

// Void returns the zero-capacity sentinel stack.
func Void[T any]() Stack[T] {
	return Stack[T]{}
}

// New allocates an empty stack with room for capacity elements.
func New[T any](capacity int) (Stack[T], error) {
	buf, err := native.Alloc[T](capacity)
	if err != nil {
		return Stack[T]{}, err
	}
	return Stack[T]{buf: buf}, nil
}

// FromSlice copies src into a full stack; the last element of src is on top.
func FromSlice[T any](src []T) (Stack[T], error) {
	buf, err := native.AllocCopy(src)
	if err != nil {
		return Stack[T]{}, err
	}
	return Stack[T]{buf: buf, count: len(src)}, nil
}

func (s Stack[T]) Capacity() int         { return s.buf.Len() }
func (s Stack[T]) Count() int            { return s.count }
func (s Stack[T]) ByteCapacity() int     { return s.buf.ByteLen() }
func (s Stack[T]) CurrentByteCount() int { return s.count * native.SizeOf[T]() }
func (s Stack[T]) IsEmpty() bool         { return s.count == 0 }
func (s Stack[T]) IsFull() bool          { return s.count == s.buf.Len() }

// Push places item on top, failing with an out-of-range error when full.
func (s *Stack[T]) Push(item T) error {
	if s.count >= s.buf.Len() {
		return nerrors.Full("nativestack.Push", s.buf.Len())
	}
	s.buf.Slice()[s.count] = item
	s.count++
	return nil
}

// TryPush is Push reporting a full stack as false.
func (s *Stack[T]) TryPush(item T) bool {
	if s.count >= s.buf.Len() {
		return false
	}
	s.buf.Slice()[s.count] = item
	s.count++
	return true
}

// Pop removes and returns the top element, failing with an
// invalid-operation error when empty.
func (s *Stack[T]) Pop() (T, error) {
	if s.count == 0 {
		var zero T
		return zero, nerrors.Empty("nativestack.Pop")
	}
	s.count--
	return s.buf.Slice()[s.count], nil
}

// TryPop is Pop reporting an empty stack as false and the zero value.
func (s *Stack[T]) TryPop() (T, bool) {
	if s.count == 0 {
		var zero T
		return zero, false
	}
	s.count--
	return s.buf.Slice()[s.count], true
}

// Peek returns the top element without removing it.
func (s Stack[T]) Peek() (T, error) {
	if s.count == 0 {
		var zero T
		return zero, nerrors.Empty("nativestack.Peek")
	}
	return s.buf.Slice()[s.count-1], nil
}

// TryPeek is Peek reporting an empty stack as false and the zero value.
func (s Stack[T]) TryPeek() (T, bool) {
	if s.count == 0 {
		var zero T
		return zero, false
	}
	return s.buf.Slice()[s.count-1], true
}

// Clear drops every element without releasing the buffer.
func (s *Stack[T]) Clear() {
	s.count = 0
}

// AsReadOnly borrows the live elements, bottom first.
func (s Stack[T]) AsReadOnly() readonly.Collection[T] {
	return readonly.Borrow(s.live())
}

// Enumerator walks the live elements from bottom to top.
func (s Stack[T]) Enumerator() enumerator.Enumerator[T] {
	return enumerator.New(s.live())
}

// All ranges over (index, value) from bottom to top.
func (s Stack[T]) All() iter.Seq2[int, T] {
	return enumerator.Seq(s.live())
}

// Pin returns the address of the bottom element, nil when empty.
func (s Stack[T]) Pin() *T {
	if s.count == 0 {
		return nil
	}
	return &s.buf.Slice()[0]
}

// Unsafe borrows the live elements directly, bottom first.
func (s Stack[T]) Unsafe() []T {
	return s.live()
}

func (s Stack[T]) live() []T {
	if s.count == 0 {
		return nil
	}
	return s.buf.Slice()[:s.count:s.count]
}

// Dispose releases the buffer and turns s into the void stack.
func (s *Stack[T]) Dispose() error {
	err := s.buf.Free()
	*s = Stack[T]{}
	return err
}

// Equal compares identity: same buffer, capacity and count.
func (s Stack[T]) Equal(other Stack[T]) bool {
	return s == other
}

// Hash is the identity hash consistent with Equal.
func (s Stack[T]) Hash() uint64 {
	return native.Hash(s.buf.Addr(), s.buf.Len(), s.count)
}

func (s Stack[T]) String() string {
	return fmt.Sprintf("Stack[%s][Count: %d | Capacity: %d]", native.ElementName[T](), s.count, s.buf.Len())
}
