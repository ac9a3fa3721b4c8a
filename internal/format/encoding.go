package format

import "encoding/binary"

// Binary encoding utilities for little-endian integers.
//
// Small-object block headers are embedded directly in the pool buffer,
// so their fields are read and written at byte offsets rather than
// through Go structs.
//
// Implementation: Uses encoding/binary.LittleEndian. The compiler
// inlines and optimizes these calls; unsafe pointer variants provide no
// measurable benefit.

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off uint32, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off uint32) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}
