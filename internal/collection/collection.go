package collection

// These interfaces are compile-time contracts. Containers are used through
// their concrete types on hot paths; the interfaces exist so tests and the
// bench harness can assert matching signatures and drive every
// implementation the same way.

// Sized is the capacity/count surface shared by every bounded container.
type Sized interface {
	// Capacity is fixed at construction and never changes.
	Capacity() int

	// Count is the number of live elements, 0 <= Count <= Capacity.
	Count() int

	IsEmpty() bool
	IsFull() bool
}

// Container is a native container that owns its buffer.
type Container interface {
	Sized

	ByteCapacity() int
	CurrentByteCount() int

	// Dispose releases the buffer once; later calls are no-ops.
	Dispose() error

	String() string
}

// FIFO is the non-failing first-in-first-out surface.
type FIFO[T any] interface {
	TryEnqueue(T) bool
	TryDequeue() (T, bool)
}

// LIFO is the non-failing last-in-first-out surface.
type LIFO[T any] interface {
	TryPush(T) bool
	TryPop() (T, bool)
}

// Queue is the full surface of a native queue.
type Queue[T any] interface {
	Container
	FIFO[T]

	Enqueue(T) error
	Dequeue() (T, error)
	Peek() (T, error)
	TryPeek() (T, bool)

	// Calibrate realigns the live window to physical slot 0.
	Calibrate()
}

// Stack is the full surface of a native stack.
type Stack[T any] interface {
	Container
	LIFO[T]

	Push(T) error
	Pop() (T, error)
	Peek() (T, error)
	TryPeek() (T, bool)
}

// List is the full surface of a native list.
type List[T any] interface {
	Container

	Add(T) error
	TryAdd(T) bool
	TryAddRange(items []T, allOrNothing bool) bool
	Get(index int) (T, error)
	Set(index int, item T) error
	TryGet(index int) (T, bool)
}
