package native

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash combines a buffer address with bookkeeping fields. It is the identity
// hash of a container: it never looks at element contents.
func Hash(addr uintptr, fields ...int) uint64 {
	buf := make([]byte, 0, 8*(1+len(fields)))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(addr))
	for _, f := range fields {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(f))
	}
	return xxhash.Sum64(buf)
}
