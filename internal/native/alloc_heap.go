//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package native

import (
	"errors"
	"sync"
	"unsafe"
)

var errUnknownBlock = errors.New("address was not allocated by this package")

// Platforms without anonymous mappings fall back to Go memory. The registry
// keeps each block reachable until it is freed explicitly, so release is still
// deterministic from the container's point of view.
var pinned = struct {
	sync.Mutex
	blocks map[uintptr][]uint64
}{blocks: make(map[uintptr][]uint64)}

func sysAlloc(size int) (unsafe.Pointer, error) {
	words := make([]uint64, (size+7)/8)
	ptr := unsafe.Pointer(unsafe.SliceData(words))

	pinned.Lock()
	pinned.blocks[uintptr(ptr)] = words
	pinned.Unlock()

	return ptr, nil
}

func sysFree(ptr unsafe.Pointer, _ int) error {
	pinned.Lock()
	defer pinned.Unlock()

	if _, ok := pinned.blocks[uintptr(ptr)]; !ok {
		return errUnknownBlock
	}
	delete(pinned.blocks, uintptr(ptr))
	return nil
}
