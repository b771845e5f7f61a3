// Package errors provides the structured error type returned by the native
// collections.
//
// Container operations fail in exactly two ways: an index or append that lands
// outside the fixed capacity (KindOutOfRange), or a read/remove against an
// empty queue or stack (KindInvalidOperation). Construction can additionally
// fail when the element type is not a fixed-layout value type
// (KindUnsupported) or when the off-heap allocation is refused
// (KindAllocation).
//
// Match on the kind with the standard library:
//
//	if errors.Is(err, nerrors.ErrOutOfRange) {
//		// full or bad index
//	}
//
// The Try… variants on every container convert the two operational kinds
// into a boolean result, so callers on hot paths never build an error value.
package errors
