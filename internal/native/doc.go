// Package native implements the buffer ownership model shared by every
// collection in this module.
//
// A Block is a contiguous run of capacity×sizeof(T) bytes obtained outside the
// Go heap (an anonymous private mapping on unix systems), so the garbage
// collector never scans or moves it. Each Block is owned by exactly one
// container value at a time and is released exactly once through Free, which
// also resets the Block to the zero value. The zero Block is the void
// sentinel: no memory, capacity zero, and freeing it is a no-op.
//
// Only fixed-layout, pointer-free element types are accepted (see
// CheckElement). Copying such values byte-for-byte is always valid, which is
// what lets the containers relocate and release elements without tracking
// any nested ownership.
//
// Nothing here is safe for concurrent use.
package native
