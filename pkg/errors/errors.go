package errors

import (
	"strconv"
	"strings"
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfRange       Kind = "out_of_range"      // index past capacity, append when full
	KindInvalidOperation Kind = "invalid_operation" // read/remove from an empty container
	KindAllocation       Kind = "allocation"        // backing memory could not be obtained
	KindUnsupported      Kind = "unsupported"       // element type is not fixed-layout
)

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrOutOfRange       = newError(KindOutOfRange, "")
	ErrInvalidOperation = newError(KindInvalidOperation, "")
	ErrAllocation       = newError(KindAllocation, "")
	ErrUnsupported      = newError(KindUnsupported, "")
)

// Error is the structured error returned by container operations.
// Index, Capacity and Count are -1 when they do not apply.
type Error struct {
	Cause    error
	Kind     Kind
	Op       string
	Type     string
	Detail   string
	Index    int
	Capacity int
	Count    int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))

	if e.Type != "" {
		b.WriteString(" [")
		b.WriteString(e.Type)
		b.WriteByte(']')
	}

	if e.Index >= 0 {
		b.WriteString(" index ")
		b.WriteString(strconv.Itoa(e.Index))
	}
	if e.Count >= 0 {
		b.WriteString(" count ")
		b.WriteString(strconv.Itoa(e.Count))
	}
	if e.Capacity >= 0 {
		b.WriteString(" capacity ")
		b.WriteString(strconv.Itoa(e.Capacity))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func newError(kind Kind, op string) *Error {
	return &Error{
		Kind:     kind,
		Op:       op,
		Index:    -1,
		Capacity: -1,
		Count:    -1,
	}
}

// OutOfRange reports an index or append position outside [0, capacity).
func OutOfRange(op string, index, capacity int) *Error {
	e := newError(KindOutOfRange, op)
	e.Index = index
	e.Capacity = capacity
	return e
}

// Full reports an append against a container whose count equals its capacity.
func Full(op string, capacity int) *Error {
	e := newError(KindOutOfRange, op)
	e.Count = capacity
	e.Capacity = capacity
	e.Detail = "container is full"
	return e
}

// Empty reports a read or remove against a container with no live elements.
func Empty(op string) *Error {
	e := newError(KindInvalidOperation, op)
	e.Count = 0
	e.Detail = "container is empty"
	return e
}

// Unsupported reports an element type that cannot live in native memory.
func Unsupported(typeName, detail string) *Error {
	e := newError(KindUnsupported, "alloc")
	e.Type = typeName
	e.Detail = detail
	return e
}

// Allocation reports a refused or impossible allocation.
func Allocation(typeName string, capacity int, cause error) *Error {
	e := newError(KindAllocation, "alloc")
	e.Type = typeName
	e.Capacity = capacity
	e.Cause = cause
	return e
}

// Release reports a failure returning backing memory to the system.
func Release(typeName string, capacity int, cause error) *Error {
	e := newError(KindAllocation, "free")
	e.Type = typeName
	e.Capacity = capacity
	e.Cause = cause
	return e
}
