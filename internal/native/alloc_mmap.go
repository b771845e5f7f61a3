//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package native

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func sysAlloc(size int) (unsafe.Pointer, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(unsafe.SliceData(b)), nil
}

// sysFree hands the mapping back. unix.Munmap looks mappings up by the
// address of their first and last byte, so rebuilding the slice from the
// original pointer and size is sufficient.
func sysFree(ptr unsafe.Pointer, size int) error {
	return unix.Munmap(unsafe.Slice((*byte)(ptr), size))
}
