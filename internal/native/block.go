package native

import (
	"errors"
	"math"
	"unsafe"

	"go.uber.org/zap"

	nerrors "github.com/i5heu/GoNativeCollections/pkg/errors"
)

var errSizeOverflow = errors.New("capacity times element size overflows int")

// Block is an owning handle to off-heap memory holding n elements of T.
// The zero value is the void block. Block values are comparable; two blocks
// are equal iff they address the same memory with the same length.
type Block[T any] struct {
	ptr unsafe.Pointer
	n   int
}

// Alloc obtains zero-filled memory for n elements of T.
// n <= 0 yields the void block without touching the allocator.
func Alloc[T any](n int) (Block[T], error) {
	if err := CheckElement[T](); err != nil {
		return Block[T]{}, err
	}
	if n <= 0 {
		return Block[T]{}, nil
	}

	size := SizeOf[T]()
	if n > math.MaxInt/size {
		return Block[T]{}, nerrors.Allocation(ElementName[T](), n, errSizeOverflow)
	}

	ptr, err := sysAlloc(n * size)
	if err != nil {
		return Block[T]{}, nerrors.Allocation(ElementName[T](), n, err)
	}
	stats.recordAlloc(n * size)

	Logger().Debug("block allocated",
		zap.String("type", ElementName[T]()),
		zap.Int("capacity", n),
		zap.Int("bytes", n*size),
		zap.Uintptr("addr", uintptr(ptr)))

	return Block[T]{ptr: ptr, n: n}, nil
}

// AllocCopy allocates a block sized to src and bulk-copies src into it.
// An empty src yields the void block.
func AllocCopy[T any](src []T) (Block[T], error) {
	b, err := Alloc[T](len(src))
	if err != nil {
		return Block[T]{}, err
	}
	copy(b.Slice(), src)
	return b, nil
}

// Free releases the memory and resets b to the void block.
// Freeing the void block, or a block already freed through this handle, is a no-op.
func (b *Block[T]) Free() error {
	if b.ptr == nil {
		*b = Block[T]{}
		return nil
	}

	ptr, n := b.ptr, b.n
	size := n * SizeOf[T]()
	*b = Block[T]{}

	if err := sysFree(ptr, size); err != nil {
		Logger().Warn("block release failed",
			zap.String("type", ElementName[T]()),
			zap.Uintptr("addr", uintptr(ptr)),
			zap.Error(err))
		return nerrors.Release(ElementName[T](), n, err)
	}
	stats.recordFree(size)

	Logger().Debug("block released",
		zap.String("type", ElementName[T]()),
		zap.Int("capacity", n),
		zap.Uintptr("addr", uintptr(ptr)))

	return nil
}

// Slice borrows the whole block as a slice of length Len.
// The slice is only valid until Free; the void block returns nil.
func (b Block[T]) Slice() []T {
	if b.ptr == nil {
		return nil
	}
	return unsafe.Slice((*T)(b.ptr), b.n)
}

// Addr is the address of the first element, 0 for the void block.
func (b Block[T]) Addr() uintptr {
	return uintptr(b.ptr)
}

// Len is the capacity in elements.
func (b Block[T]) Len() int {
	return b.n
}

// ByteLen is the capacity in bytes.
func (b Block[T]) ByteLen() int {
	return b.n * SizeOf[T]()
}

// IsVoid reports whether b holds no memory.
func (b Block[T]) IsVoid() bool {
	return b.ptr == nil
}
