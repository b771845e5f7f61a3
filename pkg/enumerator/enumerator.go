// Package enumerator provides the forward index walker shared by every
// native collection.
package enumerator

import "iter"

// Enumerator walks [0, count) of a borrowed buffer exactly once.
// It is invalidated when the source container is disposed, and for a queue
// when the queue is calibrated again; use after that is undefined.
type Enumerator[T any] struct {
	items []T
	index int
}

// New returns an enumerator positioned before the first element of items.
func New[T any](items []T) Enumerator[T] {
	return Enumerator[T]{items: items, index: -1}
}

// MoveNext advances to the next element and reports whether one exists.
func (e *Enumerator[T]) MoveNext() bool {
	next := e.index + 1
	if next >= len(e.items) {
		return false
	}
	e.index = next
	return true
}

// Current returns the element at the current position.
// It must only be called after MoveNext returned true.
func (e *Enumerator[T]) Current() T {
	return e.items[e.index]
}

// Index is the current position, -1 before the first MoveNext.
func (e *Enumerator[T]) Index() int {
	return e.index
}

// Len is the number of elements the enumerator walks.
func (e *Enumerator[T]) Len() int {
	return len(e.items)
}

// All drains the enumerator as a range-over-func sequence of (index, value).
func (e *Enumerator[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for e.MoveNext() {
			if !yield(e.index, e.items[e.index]) {
				return
			}
		}
	}
}

// Seq ranges over items without an intermediate enumerator value.
func Seq[T any](items []T) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values ranges over the elements of items.
func Values[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}
